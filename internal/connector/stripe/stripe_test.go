package stripe

import (
	"net/url"
	"testing"

	"github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

func testCfg() *config.ConnectorsConfig {
	return &config.ConnectorsConfig{
		Entries: map[string]config.ConnectorEntry{
			"stripe": {BaseURL: "https://api.stripe.com/"},
		},
	}
}

func TestMapPaymentIntentStatus(t *testing.T) {
	cases := map[stripe.PaymentIntentStatus]valueobjects.AttemptStatus{
		stripe.PaymentIntentStatusSucceeded:              valueobjects.AttemptStatusCharged,
		stripe.PaymentIntentStatusCanceled:                valueobjects.AttemptStatusVoided,
		stripe.PaymentIntentStatusProcessing:              valueobjects.AttemptStatusPending,
		stripe.PaymentIntentStatusRequiresAction:          valueobjects.AttemptStatusAuthenticationPending,
		stripe.PaymentIntentStatusRequiresConfirmation:    valueobjects.AttemptStatusAuthenticationPending,
		stripe.PaymentIntentStatusRequiresPaymentMethod:   valueobjects.AttemptStatusAuthenticationPending,
		stripe.PaymentIntentStatusRequiresCapture:         valueobjects.AttemptStatusAuthorized,
	}
	for stripeStatus, want := range cases {
		assert.Equal(t, want, mapPaymentIntentStatus(stripeStatus), "stripe status %s", stripeStatus)
	}
}

func TestMapRefundStatus(t *testing.T) {
	assert.Equal(t, valueobjects.RefundStatusSuccess, mapRefundStatus(stripe.RefundStatusSucceeded))
	assert.Equal(t, valueobjects.RefundStatusFailure, mapRefundStatus(stripe.RefundStatusFailed))
	assert.Equal(t, valueobjects.RefundStatusPending, mapRefundStatus(stripe.RefundStatusPending))
}

func TestGetErrorResponse_FallsBackToSentinelsWhenFieldsMissing(t *testing.T) {
	resp, err := getErrorResponse([]byte(`{"error":{"type":"card_error"}}`))

	require.NoError(t, err)
	assert.Equal(t, "NO_ERROR_CODE", resp.Code)
	assert.Equal(t, "NO_ERROR_MESSAGE", resp.Message)
}

func TestGetErrorResponse_CarriesCodeAndMessage(t *testing.T) {
	resp, err := getErrorResponse([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))

	require.NoError(t, err)
	assert.Equal(t, "card_declined", resp.Code)
	assert.Equal(t, "Your card was declined.", resp.Message)
}

func TestAuthorizeAdapter_GetAuthHeaderRejectsNonHeaderKey(t *testing.T) {
	a := AuthorizeAdapter{}

	_, err := a.GetAuthHeader(router.BodyKey{APIKey: "x", Key1: "y"})

	assert.Error(t, err)
}

func TestAuthorizeAdapter_GetURL(t *testing.T) {
	a := AuthorizeAdapter{}
	data := &router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse]{
		ConnectorAuthType: router.HeaderKey{APIKey: "sk_test_123"},
		Request:           connector.AuthorizeRequest{Amount: 1000, Currency: "USD"},
	}

	got, err := a.GetURL(data, testCfg())

	require.NoError(t, err)
	assert.Equal(t, "https://api.stripe.com/v1/payment_intents", got)
}

func TestAuthorizeAdapter_GetRequestBodyEncodesAmountAndCurrency(t *testing.T) {
	a := AuthorizeAdapter{}
	data := &router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse]{
		Request: connector.AuthorizeRequest{
			Amount:        1500,
			Currency:      "USD",
			CaptureMethod: valueobjects.CaptureMethodManual,
		},
	}

	body, err := a.GetRequestBody(data)
	require.NoError(t, err)

	values, err := url.ParseQuery(body)
	require.NoError(t, err)
	assert.Equal(t, "1500", values.Get("amount"))
	assert.Equal(t, "usd", values.Get("currency"))
	assert.Equal(t, "manual", values.Get("capture_method"))
	assert.Equal(t, "true", values.Get("confirm"))
}

func TestCaptureAdapter_GetURLRequiresTransactionID(t *testing.T) {
	a := CaptureAdapter{}
	data := &router.RouterData[connector.CaptureRequest, connector.CaptureResponse]{
		Request: connector.CaptureRequest{},
	}

	_, err := a.GetURL(data, testCfg())

	assert.Error(t, err)
}

func TestCaptureAdapter_GetURL(t *testing.T) {
	a := CaptureAdapter{}
	data := &router.RouterData[connector.CaptureRequest, connector.CaptureResponse]{
		Request: connector.CaptureRequest{ConnectorTransactionID: "pi_123"},
	}

	got, err := a.GetURL(data, testCfg())

	require.NoError(t, err)
	assert.Equal(t, "https://api.stripe.com/v1/payment_intents/pi_123/capture", got)
}

func TestPSyncAdapter_MethodIsGet(t *testing.T) {
	assert.Equal(t, "GET", PSyncAdapter{}.Method())
}

func TestVoidAdapter_GetURL(t *testing.T) {
	a := VoidAdapter{}
	data := &router.RouterData[connector.VoidRequest, connector.VoidResponse]{
		Request: connector.VoidRequest{ConnectorTransactionID: "pi_123"},
	}

	got, err := a.GetURL(data, testCfg())

	require.NoError(t, err)
	assert.Equal(t, "https://api.stripe.com/v1/payment_intents/pi_123/cancel", got)
}

func TestRefundSyncAdapter_GetURLRequiresRefundID(t *testing.T) {
	a := RefundSyncAdapter{}
	data := &router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse]{}

	_, err := a.GetURL(data, testCfg())

	assert.Error(t, err)
}

func TestNew_BuildsAllSevenFlows(t *testing.T) {
	adapter := New()

	assert.NotNil(t, adapter.Authorize)
	assert.NotNil(t, adapter.Capture)
	assert.NotNil(t, adapter.PSync)
	assert.NotNil(t, adapter.Void)
	assert.NotNil(t, adapter.Verify)
	assert.NotNil(t, adapter.RefundExecute)
	assert.NotNil(t, adapter.RefundSync)
	assert.NotNil(t, adapter.RedirectResponse)
}

// TestGetFlowType_ScenarioSix exercises both branches of spec §8 scenario
// 6: a redirect return carrying redirect_status resolves to a status
// update that skips the acquirer call, one without it still triggers a
// fresh PSync.
func TestGetFlowType_ScenarioSix(t *testing.T) {
	action, err := GetFlowType("payment_intent=pi_abc&redirect_status=succeeded")
	require.NoError(t, err)
	assert.Equal(t, router.ActionStatusUpdate, action.Kind)
	assert.Equal(t, valueobjects.AttemptStatusPending, action.Status)

	action, err = GetFlowType("payment_intent=pi_abc")
	require.NoError(t, err)
	assert.Equal(t, router.ActionTrigger, action.Kind)
}

func TestGetFlowType_MalformedQueryIsAnError(t *testing.T) {
	_, err := GetFlowType("%zz")

	assert.Error(t, err)
}
