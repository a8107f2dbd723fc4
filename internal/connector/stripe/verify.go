package stripe

import (
	"net/http"
	"net/url"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

// VerifyAdapter implements connector.VerifyConnector: creates and
// confirms a zero-amount Stripe SetupIntent to produce a reusable
// mandate, rather than moving money (spec §4.1, original's
// setup_intents flow).
type VerifyAdapter struct{ base }

var _ connector.VerifyConnector = VerifyAdapter{}

func (a VerifyAdapter) GetHeaders(data *router.RouterData[connector.VerifyRequest, connector.VerifyResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return headersFor(a.base, data.ConnectorAuthType, cfg)
}

func (a VerifyAdapter) GetURL(data *router.RouterData[connector.VerifyRequest, connector.VerifyResponse], cfg *config.ConnectorsConfig) (string, error) {
	baseURL, err := a.BaseURL(cfg)
	if err != nil {
		return "", err
	}
	return setupIntentsURL(baseURL), nil
}

func (a VerifyAdapter) Method() string {
	return http.MethodPost
}

func (a VerifyAdapter) GetRequestBody(data *router.RouterData[connector.VerifyRequest, connector.VerifyResponse]) (string, error) {
	req := data.Request

	values := url.Values{}
	values.Set("confirm", "true")
	values.Set("usage", "off_session")
	if req.CustomerID != "" {
		values.Set("customer", req.CustomerID)
	}
	if req.Card != nil {
		values.Set("payment_method_data[type]", "card")
		values.Set("payment_method_data[card][number]", req.Card.Number)
		values.Set("payment_method_data[card][exp_month]", req.Card.ExpiryMonth)
		values.Set("payment_method_data[card][exp_year]", req.Card.ExpiryYear)
		values.Set("payment_method_data[card][cvc]", req.Card.CVC)
	}

	return urlEncode(values), nil
}

func (a VerifyAdapter) BuildRequest(data *router.RouterData[connector.VerifyRequest, connector.VerifyResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
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

func (a VerifyAdapter) HandleResponse(data *router.RouterData[connector.VerifyRequest, connector.VerifyResponse], rawResponse []byte) (*router.RouterData[connector.VerifyRequest, connector.VerifyResponse], error) {
	var si stripe.SetupIntent
	if err := decodeJSON(rawResponse, &si); err != nil {
		return nil, err
	}

	resp := connector.VerifyResponse{
		ConnectorTransactionID: si.ID,
		Status:                 mapSetupIntentStatus(si.Status),
	}
	if si.PaymentMethod != nil {
		mandate := si.PaymentMethod.ID
		resp.MandateReference = &mandate
	}

	out := data.WithResponse(resp)
	return &out, nil
}
