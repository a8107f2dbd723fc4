package stripe

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
)

// CaptureAdapter implements connector.CaptureConnector: captures a
// previously authorized PaymentIntent, optionally for less than the full
// authorized amount (partial capture).
type CaptureAdapter struct{ base }

var _ connector.CaptureConnector = CaptureAdapter{}

func (a CaptureAdapter) GetHeaders(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return headersFor(a.base, data.ConnectorAuthType, cfg)
}

func (a CaptureAdapter) GetURL(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], cfg *config.ConnectorsConfig) (string, error) {
	baseURL, err := a.BaseURL(cfg)
	if err != nil {
		return "", err
	}
	id := data.Request.ConnectorTransactionID
	if id == "" {
		return "", routererrors.NewConnectorError(routererrors.FailedToObtainIntegrationURL, "capture requires a connector_transaction_id", nil)
	}
	return intentURL(baseURL, id) + "/capture", nil
}

func (a CaptureAdapter) Method() string {
	return http.MethodPost
}

func (a CaptureAdapter) GetRequestBody(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse]) (string, error) {
	values := url.Values{}
	if data.Request.AmountToCapture > 0 {
		values.Set("amount_to_capture", strconv.FormatInt(data.Request.AmountToCapture, 10))
	}
	return urlEncode(values), nil
}

func (a CaptureAdapter) BuildRequest(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
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

func (a CaptureAdapter) HandleResponse(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], rawResponse []byte) (*router.RouterData[connector.CaptureRequest, connector.CaptureResponse], error) {
	var pi stripe.PaymentIntent
	if err := decodeJSON(rawResponse, &pi); err != nil {
		return nil, err
	}
	out := data.WithResponse(connector.CaptureResponse{
		ConnectorTransactionID: pi.ID,
		Status:                 mapPaymentIntentStatus(pi.Status),
	})
	return &out, nil
}
