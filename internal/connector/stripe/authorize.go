package stripe

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

// AuthorizeAdapter implements connector.AuthorizeConnector: creates and
// confirms a Stripe PaymentIntent in one call (confirmation_method=manual,
// confirm=true), the original's PaymentIntentRequest shape.
type AuthorizeAdapter struct{ base }

var _ connector.AuthorizeConnector = AuthorizeAdapter{}

func (a AuthorizeAdapter) GetHeaders(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return headersFor(a.base, data.ConnectorAuthType, cfg)
}

func (a AuthorizeAdapter) GetURL(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], cfg *config.ConnectorsConfig) (string, error) {
	baseURL, err := a.BaseURL(cfg)
	if err != nil {
		return "", err
	}
	return intentsURL(baseURL), nil
}

func (a AuthorizeAdapter) Method() string {
	return http.MethodPost
}

// GetRequestBody form-encodes a PaymentIntent create call. off_session
// plus mandate lets a stored-credential authorization run without a
// redirect round trip.
func (a AuthorizeAdapter) GetRequestBody(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse]) (string, error) {
	req := data.Request

	values := url.Values{}
	values.Set("amount", strconv.FormatInt(req.Amount, 10))
	values.Set("currency", strings.ToLower(req.Currency.String()))
	values.Set("confirmation_method", "manual")
	values.Set("confirm", "true")
	values.Set("capture_method", stripeCaptureMethod(req.CaptureMethod))

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
	if req.MandateID != nil {
		values.Set("mandate", *req.MandateID)
		values.Set("off_session", "true")
	}
	for k, v := range req.Metadata {
		values.Set("metadata["+k+"]", v)
	}

	return urlEncode(values), nil
}

func (a AuthorizeAdapter) BuildRequest(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
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

func (a AuthorizeAdapter) HandleResponse(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], rawResponse []byte) (*router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], error) {
	var pi stripe.PaymentIntent
	if err := decodeJSON(rawResponse, &pi); err != nil {
		return nil, err
	}

	resp := connector.AuthorizeResponse{
		ConnectorTransactionID: pi.ID,
		Status:                 mapPaymentIntentStatus(pi.Status),
	}
	if pi.NextAction != nil && pi.NextAction.RedirectToURL != nil {
		u := pi.NextAction.RedirectToURL.URL
		resp.RedirectURL = &u
	}

	out := data.WithResponse(resp)
	return &out, nil
}

func stripeCaptureMethod(m valueobjects.CaptureMethod) string {
	if m.RequiresManualCapture() {
		return "manual"
	}
	return "automatic"
}
