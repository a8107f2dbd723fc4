package stripe

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
)

// RefundExecuteAdapter implements connector.RefundExecuteConnector:
// creates a Stripe refund against a charged PaymentIntent.
type RefundExecuteAdapter struct{ base }

var _ connector.RefundExecuteConnector = RefundExecuteAdapter{}

func (a RefundExecuteAdapter) GetHeaders(data *router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return headersFor(a.base, data.ConnectorAuthType, cfg)
}

func (a RefundExecuteAdapter) GetURL(data *router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse], cfg *config.ConnectorsConfig) (string, error) {
	baseURL, err := a.BaseURL(cfg)
	if err != nil {
		return "", err
	}
	return refundsURL(baseURL), nil
}

func (a RefundExecuteAdapter) Method() string {
	return http.MethodPost
}

func (a RefundExecuteAdapter) GetRequestBody(data *router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse]) (string, error) {
	req := data.Request
	if req.ConnectorTransactionID == "" {
		return "", routererrors.NewConnectorError(routererrors.RequestEncodingFailed, "refund_execute requires a connector_transaction_id", nil)
	}

	values := url.Values{}
	values.Set("payment_intent", req.ConnectorTransactionID)
	values.Set("amount", strconv.FormatInt(req.RefundAmount, 10))
	if req.Currency != "" {
		values.Set("currency", strings.ToLower(req.Currency.String()))
	}
	if req.RefundID != "" {
		values.Set("metadata[refund_id]", req.RefundID)
	}

	return urlEncode(values), nil
}

func (a RefundExecuteAdapter) BuildRequest(data *router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	urlStr, err := a.GetURL(data, cfg)
	if err != nil {
		return nil, err
	}
	headers, err := a.GetHeaders(data, cfg)
	if err != nil {
		return nil, err
	}
	body, err := a.GetRequestBody(data)
	if err != nil {
		return nil, err
	}
	return doBuildRequest(a.Method(), urlStr, headers, body)
}

func (a RefundExecuteAdapter) HandleResponse(data *router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse], rawResponse []byte) (*router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse], error) {
	var r stripe.Refund
	if err := decodeJSON(rawResponse, &r); err != nil {
		return nil, err
	}
	out := data.WithResponse(connector.RefundExecuteResponse{
		ConnectorRefundID: r.ID,
		Status:            mapRefundStatus(r.Status),
	})
	return &out, nil
}
