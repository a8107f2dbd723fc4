// Package connector defines the connector-integration contract (spec
// §4.1): the trait-like interface every acquirer adapter implements, once
// per flow, plus the adapter registry that resolves an adapter id to its
// flow implementations (spec §6, §9).
package connector

import (
	"net/http"

	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

// Header is one (name, value) pair contributed by GetAuthHeader/GetHeaders.
type Header struct {
	Name  string
	Value string
}

// FlowConnector is the per-flow connector-integration contract (spec
// §4.1). An adapter implements this once for every (flow, request,
// response) triple it supports; dispatch at the call site is by flow tag,
// never by inspecting a runtime enum inside the adapter.
type FlowConnector[Req any, Resp any] interface {
	// ID returns the adapter's stable registry identifier, e.g. "stripe".
	ID() string

	// BaseURL derives the root URL to use from the adapter registry
	// configuration (spec §6).
	BaseURL(cfg *config.ConnectorsConfig) (string, error)

	// GetAuthHeader produces the adapter's auth header(s) from the
	// envelope's credential. It fails with FailedToObtainAuthType if auth
	// does not match the shape this adapter accepts.
	GetAuthHeader(auth router.ConnectorAuthType) ([]Header, error)

	// GetContentType returns the Content-Type this adapter sends.
	GetContentType() string

	// GetHeaders composes the full header set: content-type, auth
	// header(s), and the routing-trace header when configured.
	GetHeaders(data *router.RouterData[Req, Resp], cfg *config.ConnectorsConfig) ([]Header, error)

	// GetURL derives the full endpoint for this call. Fails with
	// FailedToObtainIntegrationURL if a required acquirer-side id is
	// absent (capture/void/sync act on an existing resource).
	GetURL(data *router.RouterData[Req, Resp], cfg *config.ConnectorsConfig) (string, error)

	// GetRequestBody serialises the flow-specific request. Fails with
	// RequestEncodingFailed.
	GetRequestBody(data *router.RouterData[Req, Resp]) (string, error)

	// Method returns the HTTP method for this flow (spec §4.1 table).
	Method() string

	// BuildRequest composes method+url+headers+body. A nil request means
	// "skip the external call, treat as synthetic success" — used by
	// flows that short-circuit.
	BuildRequest(data *router.RouterData[Req, Resp], cfg *config.ConnectorsConfig) (*http.Request, error)

	// HandleResponse parses the acquirer's success body, maps the
	// acquirer-side status onto the neutral enum, and returns a new
	// envelope with Response populated. Fails with
	// ResponseDeserializationFailed or ResponseHandlingFailed.
	HandleResponse(data *router.RouterData[Req, Resp], rawResponse []byte) (*router.RouterData[Req, Resp], error)

	// GetErrorResponse parses the acquirer's error payload. Missing
	// fields default to NO_ERROR_CODE / NO_ERROR_MESSAGE inside the
	// adapter's implementation, before the ErrorResponse is returned.
	GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error)
}
