package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newPaymentHandlerForBindingTests builds a PaymentHandler with every
// operation nil. That's fine for these tests: each one exercises only the
// ShouldBindJSON failure path, which returns before the handler ever
// touches an operation.
func newPaymentHandlerForBindingTests() *PaymentHandler {
	return NewPaymentHandler(nil, nil, nil, nil, nil, nil, nil)
}

func postJSON(h gin.HandlerFunc, body string, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	h(c)
	return w
}

func TestPaymentHandler_CreatePayment_InvalidBody(t *testing.T) {
	h := newPaymentHandlerForBindingTests()
	w := postJSON(h.CreatePayment, "{not-json", nil)
	assert.Equal(t, 400, w.Code)
}

func TestPaymentHandler_CapturePayment_InvalidBody(t *testing.T) {
	h := newPaymentHandlerForBindingTests()
	w := postJSON(h.CapturePayment, "{not-json", gin.Params{{Key: "payment_id", Value: "pay_1"}})
	assert.Equal(t, 400, w.Code)
}

func TestPaymentHandler_CreateMandate_InvalidBody(t *testing.T) {
	h := newPaymentHandlerForBindingTests()
	w := postJSON(h.CreateMandate, "{not-json", nil)
	assert.Equal(t, 400, w.Code)
}

func TestPaymentHandler_CreateRefund_InvalidBody(t *testing.T) {
	h := newPaymentHandlerForBindingTests()
	w := postJSON(h.CreateRefund, "{not-json", nil)
	assert.Equal(t, 400, w.Code)
}

func TestPaymentHandler_GetPayment_UsesPathAndQueryParams(t *testing.T) {
	// GetPayment never reaches ShouldBindJSON, so it will call h.psync and
	// panic on the nil operation if param plumbing is broken elsewhere;
	// here we only assert the handler doesn't panic building the request
	// by recovering and checking we got as far as invoking the operation.
	h := newPaymentHandlerForBindingTests()
	defer func() {
		r := recover()
		assert.NotNil(t, r, "expected a nil-pointer panic once request plumbing reaches h.psync.Execute")
	}()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/v1/payments/pay_1?merchant_id=merch_1", nil)
	c.Params = gin.Params{{Key: "payment_id", Value: "pay_1"}}

	h.GetPayment(c)
}

func TestPaymentHandler_RedirectReturn_UsesPathQueryAndRawQueryString(t *testing.T) {
	// RedirectReturn never binds JSON either; it reaches h.psync.HandleRedirect
	// directly, so a nil PSyncOperation proves the same thing GetPayment's
	// test does for HandleRedirect's raw-query-string plumbing.
	h := newPaymentHandlerForBindingTests()
	defer func() {
		r := recover()
		assert.NotNil(t, r, "expected a nil-pointer panic once request plumbing reaches h.psync.HandleRedirect")
	}()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/v1/payments/pay_1/redirect?merchant_id=merch_1&payment_intent=pi_abc&redirect_status=succeeded", nil)
	c.Params = gin.Params{{Key: "payment_id", Value: "pay_1"}}

	h.RedirectReturn(c)
}
