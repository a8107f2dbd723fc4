package router

import (
	"github.com/google/uuid"

	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
)

// RouterData is the uniform envelope threaded through a connector-integration
// call (spec §4.1, GLOSSARY "Envelope"): it carries per-call context, the
// flow-specific request, and — after the call — the flow-specific response
// or a ConnectorError. A value is built once per adapter call and never
// reused; adapters never mutate one in place, they hand back a new one
// (handle_response "returns a new envelope with response populated").
type RouterData[Req any, Resp any] struct {
	Flow              valueobjects.Flow
	ConnectorAuthType ConnectorAuthType

	PaymentID              string
	MerchantID             string
	AttemptID              uuid.UUID
	ConnectorTransactionID *string
	ConnectorName          string

	Amount   int64
	Currency valueobjects.Currency

	Request  Req
	Response *Resp

	// ResponseErr is set instead of Response when handle_response or the
	// execution engine determined the call failed at the connector layer.
	ResponseErr *routererrors.ConnectorError
}

// WithResponse returns a copy of d with Response populated and ResponseErr
// cleared, the shape handle_response produces on a successful projection.
func (d RouterData[Req, Resp]) WithResponse(resp Resp) RouterData[Req, Resp] {
	d.Response = &resp
	d.ResponseErr = nil
	return d
}

// WithError returns a copy of d carrying a ConnectorError instead of a
// response.
func (d RouterData[Req, Resp]) WithError(err *routererrors.ConnectorError) RouterData[Req, Resp] {
	d.Response = nil
	d.ResponseErr = err
	return d
}

// Failed reports whether this envelope carries a ConnectorError.
func (d RouterData[Req, Resp]) Failed() bool {
	return d.ResponseErr != nil
}

// ErrorResponse is the shape get_error_response parses an acquirer's error
// body into (spec §4.1). The Stripe adapter's parser fills a missing code
// or message with the sentinel constants; translateConnectorErr in
// internal/operations applies the same defaults again when it builds the
// ApiErrorResponse.
type ErrorResponse struct {
	Code    string
	Message string
	Reason  *string
}
