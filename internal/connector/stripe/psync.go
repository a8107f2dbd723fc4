package stripe

import (
	"net/http"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
)

// PSyncAdapter implements connector.PSyncConnector: a GET fetching the
// current state of a PaymentIntent, the reconciliation path used both for
// polling and for a webhook-triggered re-sync.
type PSyncAdapter struct{ base }

var _ connector.PSyncConnector = PSyncAdapter{}

func (a PSyncAdapter) GetHeaders(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return headersFor(a.base, data.ConnectorAuthType, cfg)
}

func (a PSyncAdapter) GetURL(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], cfg *config.ConnectorsConfig) (string, error) {
	baseURL, err := a.BaseURL(cfg)
	if err != nil {
		return "", err
	}
	id := data.Request.ConnectorTransactionID
	if id == "" {
		return "", routererrors.NewConnectorError(routererrors.FailedToObtainIntegrationURL, "psync requires a connector_transaction_id", nil)
	}
	return intentURL(baseURL, id), nil
}

func (a PSyncAdapter) Method() string {
	return http.MethodGet
}

func (a PSyncAdapter) GetRequestBody(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse]) (string, error) {
	return "", nil
}

func (a PSyncAdapter) BuildRequest(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	urlStr, err := a.GetURL(data, cfg)
	if err != nil {
		return nil, err
	}
	headers, err := a.GetHeaders(data, cfg)
	if err != nil {
		return nil, err
	}
	return doBuildRequest(a.Method(), urlStr, headers, "")
}

func (a PSyncAdapter) HandleResponse(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], rawResponse []byte) (*router.RouterData[connector.PSyncRequest, connector.PSyncResponse], error) {
	var pi stripe.PaymentIntent
	if err := decodeJSON(rawResponse, &pi); err != nil {
		return nil, err
	}
	out := data.WithResponse(connector.PSyncResponse{
		ConnectorTransactionID: pi.ID,
		Status:                 mapPaymentIntentStatus(pi.Status),
	})
	return &out, nil
}
