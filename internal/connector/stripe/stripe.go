// Package stripe implements the connector-integration contract
// (internal/connector) for Stripe: the seven flow adapters, the
// StripePaymentStatus/StripeSetupStatus -> AttemptStatus projection
// tables, and request/response encoding in Stripe's
// application/x-www-form-urlencoded wire format.
//
// Stripe's own Go SDK (stripe-go/v76) is used only for its response DTOs
// (stripe.PaymentIntent, stripe.Refund, stripe.Error, ...) — every outbound
// call is a hand-built *http.Request, since the contract requires this
// adapter to own get_headers/get_url/build_request itself rather than
// delegating to the SDK's own API client.
package stripe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/stripe/stripe-go/v76"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
)

const adapterID = "stripe"

// base carries the five connector-integration methods that do not vary by
// flow (id, base_url, get_content_type, get_auth_header,
// get_error_response). Each flow embeds it rather than repeating these
// five methods seven times; Go gives a concrete type only one method of a
// given name, so the per-flow methods that DO vary in signature
// (get_headers, get_url, get_request_body, method, build_request,
// handle_response) live on distinct flow-scoped types in their own files
// instead of on a single do-everything Stripe type.
type base struct{}

func (base) ID() string {
	return adapterID
}

func (base) BaseURL(cfg *config.ConnectorsConfig) (string, error) {
	entry, ok := cfg.Entries[adapterID]
	if !ok {
		return "", routererrors.NewConnectorError(routererrors.FailedToObtainIntegrationURL, "no base_url configured for stripe", nil)
	}
	return entry.BaseURL, nil
}

func (base) GetContentType() string {
	return "application/x-www-form-urlencoded"
}

// GetAuthHeader extracts the bearer token Stripe expects from the
// envelope's credential. Stripe only ever accepts a HeaderKey; any other
// shape is a misconfigured merchant account.
func (base) GetAuthHeader(auth router.ConnectorAuthType) ([]connector.Header, error) {
	key, ok := auth.(router.HeaderKey)
	if !ok {
		return nil, routererrors.NewConnectorError(routererrors.FailedToObtainAuthType, "stripe requires a HeaderKey credential", nil)
	}
	return []connector.Header{
		{Name: "Authorization", Value: "Bearer " + key.APIKey},
	}, nil
}

func (base) GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	return getErrorResponse(rawBytes)
}

// GetFlowType parses a redirect-return query string (spec §6, §8 scenario
// 6) — the form a merchant's browser is bounced back with after an
// off-session authentication step, shaped as
// `payment_intent=pi_...&redirect_status=succeeded`. Presence of
// redirect_status means Stripe already resolved the authentication and a
// fresh PSync should apply Pending directly rather than call out again;
// its absence means the flow is mid-redirect and PSync should Trigger as
// normal.
//
// Mapping individual redirect_status values (succeeded, failed, ...) onto
// distinct AttemptStatus values beyond bare presence is not implemented;
// spec §9 leaves that unspecified rather than have it guessed.
func GetFlowType(queryParams string) (router.CallConnectorAction, error) {
	values, err := url.ParseQuery(queryParams)
	if err != nil {
		return router.CallConnectorAction{}, routererrors.NewConnectorError(routererrors.ResponseDeserializationFailed, "malformed redirect-return query string", err)
	}

	if values.Get("redirect_status") != "" {
		return router.StatusUpdate(valueobjects.AttemptStatusPending), nil
	}
	return router.Trigger(), nil
}

// headersFor composes the common header set (content-type, auth, optional
// X-Router) shared by every flow's get_headers.
func headersFor(b base, auth router.ConnectorAuthType, cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	header := []connector.Header{{Name: "Content-Type", Value: b.GetContentType()}}
	authHeaders, err := b.GetAuthHeader(auth)
	if err != nil {
		return nil, err
	}
	header = append(header, authHeaders...)
	return routerHeader(cfg, header), nil
}

// doBuildRequest is the shared build_request body: resolve url, headers
// and body through the flow's own methods, then hand-build the request.
func doBuildRequest(method, urlStr string, headers []connector.Header, body string) (*http.Request, error) {
	return newFormRequest(method, urlStr, headers, body)
}

// routerHeader appends the X-Router trace header when the registry
// configures a non-empty value (SPEC_FULL.md §D: default empty/inert).
func routerHeader(cfg *config.ConnectorsConfig, headers []connector.Header) []connector.Header {
	if cfg.RouterHeaderValue == "" {
		return headers
	}
	return append(headers, connector.Header{Name: "X-Router", Value: cfg.RouterHeaderValue})
}

// stripeErrorBody mirrors Stripe's {"error": {...}} envelope for decoding
// with stripe-go's own stripe.Error DTO.
type stripeErrorBody struct {
	Error stripe.Error `json:"error"`
}

// getErrorResponse parses a Stripe error body, shared by all seven flows
// (every flow's get_error_response does exactly this in the original).
// Missing code/message fall back to the NO_ERROR_CODE/NO_ERROR_MESSAGE
// sentinels at this layer, matching the original's unwrap_or_else.
func getErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	var body stripeErrorBody
	if err := json.Unmarshal(rawBytes, &body); err != nil {
		return router.ErrorResponse{}, routererrors.NewConnectorError(routererrors.ResponseDeserializationFailed, "failed to decode stripe error response", err)
	}

	code := string(body.Error.Code)
	if code == "" {
		code = routererrors.NoErrorCode
	}
	message := body.Error.Msg
	if message == "" {
		message = routererrors.NoErrorMessage
	}

	return router.ErrorResponse{Code: code, Message: message}, nil
}

func urlEncode(values url.Values) string {
	return values.Encode()
}

// newFormRequest hand-builds a *http.Request carrying a
// form-url-encoded body and the given headers — the adapter never hands
// the call off to stripe-go's own API client.
func newFormRequest(method, urlStr string, headers []connector.Header, body string) (*http.Request, error) {
	req, err := http.NewRequest(method, urlStr, strings.NewReader(body))
	if err != nil {
		return nil, routererrors.NewConnectorError(routererrors.RequestEncodingFailed, "failed to construct stripe http request", err)
	}
	for _, h := range headers {
		req.Header.Set(h.Name, h.Value)
	}
	return req, nil
}

// decodeJSON decodes a Stripe success response body into a stripe-go DTO.
func decodeJSON[T any](raw []byte, out *T) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return routererrors.NewConnectorError(routererrors.ResponseDeserializationFailed, "failed to decode stripe response", err)
	}
	return nil
}

func intentURL(baseURL, id string) string {
	return fmt.Sprintf("%sv1/payment_intents/%s", baseURL, id)
}

func intentsURL(baseURL string) string {
	return fmt.Sprintf("%sv1/payment_intents", baseURL)
}

func setupIntentsURL(baseURL string) string {
	return fmt.Sprintf("%sv1/setup_intents", baseURL)
}

func refundsURL(baseURL string) string {
	return fmt.Sprintf("%sv1/refunds", baseURL)
}

func refundURL(baseURL, id string) string {
	return fmt.Sprintf("%sv1/refunds/%s", baseURL, id)
}

// mapPaymentIntentStatus projects Stripe's PaymentIntent status onto the
// neutral AttemptStatus, the larger table named in SPEC_FULL.md §C
// (requires_action, requires_payment_method, requires_confirmation and
// processing included, beyond the single case spec.md's scenario 1
// exercises).
func mapPaymentIntentStatus(status stripe.PaymentIntentStatus) valueobjects.AttemptStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return valueobjects.AttemptStatusCharged
	case stripe.PaymentIntentStatusCanceled:
		return valueobjects.AttemptStatusVoided
	case stripe.PaymentIntentStatusProcessing:
		return valueobjects.AttemptStatusPending
	case stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		return valueobjects.AttemptStatusAuthenticationPending
	case stripe.PaymentIntentStatusRequiresCapture:
		return valueobjects.AttemptStatusAuthorized
	default:
		return valueobjects.AttemptStatusPending
	}
}

// mapSetupIntentStatus projects Stripe's SetupIntent status (the Verify
// flow's wire object) onto AttemptStatus.
func mapSetupIntentStatus(status stripe.SetupIntentStatus) valueobjects.AttemptStatus {
	switch status {
	case stripe.SetupIntentStatusSucceeded:
		return valueobjects.AttemptStatusCharged
	case stripe.SetupIntentStatusCanceled:
		return valueobjects.AttemptStatusVoided
	case stripe.SetupIntentStatusProcessing:
		return valueobjects.AttemptStatusPending
	case stripe.SetupIntentStatusRequiresAction,
		stripe.SetupIntentStatusRequiresConfirmation,
		stripe.SetupIntentStatusRequiresPaymentMethod:
		return valueobjects.AttemptStatusAuthenticationPending
	default:
		return valueobjects.AttemptStatusPending
	}
}

// mapRefundStatus projects Stripe's Refund status onto the neutral
// RefundStatus enum.
func mapRefundStatus(status stripe.RefundStatus) valueobjects.RefundStatus {
	switch status {
	case stripe.RefundStatusSucceeded:
		return valueobjects.RefundStatusSuccess
	case stripe.RefundStatusFailed:
		return valueobjects.RefundStatusFailure
	case stripe.RefundStatusCanceled:
		return valueobjects.RefundStatusFailure
	default:
		return valueobjects.RefundStatusPending
	}
}

// New builds the Stripe adapter bundle for registration with
// connector.Registry — one small per-flow type per entry, sharing base's
// id/base_url/content_type/auth/error-response behaviour.
func New() connector.Adapter {
	return connector.Adapter{
		Authorize:        AuthorizeAdapter{},
		Capture:          CaptureAdapter{},
		PSync:            PSyncAdapter{},
		Void:             VoidAdapter{},
		Verify:           VerifyAdapter{},
		RefundExecute:    RefundExecuteAdapter{},
		RefundSync:       RefundSyncAdapter{},
		RedirectResponse: GetFlowType,
	}
}
