package stripe

import (
	"net/http"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
)

// VoidAdapter implements connector.VoidConnector: cancels a PaymentIntent
// that has not yet been captured.
type VoidAdapter struct{ base }

var _ connector.VoidConnector = VoidAdapter{}

func (a VoidAdapter) GetHeaders(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return headersFor(a.base, data.ConnectorAuthType, cfg)
}

func (a VoidAdapter) GetURL(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], cfg *config.ConnectorsConfig) (string, error) {
	baseURL, err := a.BaseURL(cfg)
	if err != nil {
		return "", err
	}
	id := data.Request.ConnectorTransactionID
	if id == "" {
		return "", routererrors.NewConnectorError(routererrors.FailedToObtainIntegrationURL, "void requires a connector_transaction_id", nil)
	}
	return intentURL(baseURL, id) + "/cancel", nil
}

func (a VoidAdapter) Method() string {
	return http.MethodPost
}

func (a VoidAdapter) GetRequestBody(data *router.RouterData[connector.VoidRequest, connector.VoidResponse]) (string, error) {
	return "", nil
}

func (a VoidAdapter) BuildRequest(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
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

func (a VoidAdapter) HandleResponse(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], rawResponse []byte) (*router.RouterData[connector.VoidRequest, connector.VoidResponse], error) {
	var pi stripe.PaymentIntent
	if err := decodeJSON(rawResponse, &pi); err != nil {
		return nil, err
	}
	out := data.WithResponse(connector.VoidResponse{
		ConnectorTransactionID: pi.ID,
		Status:                 mapPaymentIntentStatus(pi.Status),
	})
	return &out, nil
}
