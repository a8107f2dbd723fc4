package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paylinkhq/router-core/internal/operations"
	"github.com/paylinkhq/router-core/pkg/logger"
	"github.com/paylinkhq/router-core/pkg/utils"
)

// PaymentHandler wires the seven operation-pipeline flows (spec §4.2-§4.4)
// to their HTTP surface, one method per flow, in the teacher's
// PaymentHandler shape.
type PaymentHandler struct {
	authorize    *operations.AuthorizeOperation
	capture      *operations.CaptureOperation
	psync        *operations.PSyncOperation
	void         *operations.VoidOperation
	verify       *operations.VerifyOperation
	refundExec   *operations.RefundExecuteOperation
	refundSync   *operations.RefundSyncOperation
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	authorize *operations.AuthorizeOperation,
	capture *operations.CaptureOperation,
	psync *operations.PSyncOperation,
	void *operations.VoidOperation,
	verify *operations.VerifyOperation,
	refundExec *operations.RefundExecuteOperation,
	refundSync *operations.RefundSyncOperation,
) *PaymentHandler {
	return &PaymentHandler{
		authorize:  authorize,
		capture:    capture,
		psync:      psync,
		void:       void,
		verify:     verify,
		refundExec: refundExec,
		refundSync: refundSync,
	}
}

// CreatePayment handles POST /payments — the Authorize flow.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req operations.AuthorizePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	attempt, err := h.authorize.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("authorize failed", map[string]interface{}{"payment_id": req.PaymentID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "payment created", attempt)
}

// CapturePayment handles POST /payments/:payment_id/capture.
func (h *PaymentHandler) CapturePayment(c *gin.Context) {
	var req operations.CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}
	req.PaymentID = c.Param("payment_id")

	attempt, err := h.capture.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("capture failed", map[string]interface{}{"payment_id": req.PaymentID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment captured", attempt)
}

// GetPayment handles GET /payments/:payment_id — the PSync flow.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	req := operations.PSyncRequest{
		PaymentID:  c.Param("payment_id"),
		MerchantID: c.Query("merchant_id"),
	}

	attempt, err := h.psync.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("psync failed", map[string]interface{}{"payment_id": req.PaymentID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment retrieved", attempt)
}

// RedirectReturn handles GET /payments/:payment_id/redirect — the browser
// bounce-back after an off-session authentication step. It classifies the
// acquirer's redirect query string (spec §6, §8 scenario 6) into a
// CallConnectorAction and replays PSync honoring it.
func (h *PaymentHandler) RedirectReturn(c *gin.Context) {
	paymentID := c.Param("payment_id")
	merchantID := c.Query("merchant_id")

	attempt, err := h.psync.HandleRedirect(c.Request.Context(), paymentID, merchantID, c.Request.URL.RawQuery)
	if err != nil {
		logger.Error("redirect-return handling failed", map[string]interface{}{"payment_id": paymentID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "redirect processed", attempt)
}

// VoidPayment handles POST /payments/:payment_id/void.
func (h *PaymentHandler) VoidPayment(c *gin.Context) {
	req := operations.VoidPaymentRequest{
		PaymentID:  c.Param("payment_id"),
		MerchantID: c.Query("merchant_id"),
	}

	attempt, err := h.void.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("void failed", map[string]interface{}{"payment_id": req.PaymentID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment voided", attempt)
}

// CreateMandate handles POST /mandates — the Verify flow.
func (h *PaymentHandler) CreateMandate(c *gin.Context) {
	var req operations.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	mandate, err := h.verify.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("verify failed", map[string]interface{}{"payment_id": req.PaymentID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "mandate created", mandate)
}

// CreateRefund handles POST /refunds — the RefundExecute flow.
func (h *PaymentHandler) CreateRefund(c *gin.Context) {
	var req operations.RefundExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	refund, err := h.refundExec.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("refund_execute failed", map[string]interface{}{"payment_id": req.PaymentID, "refund_id": req.RefundID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "refund created", refund)
}

// GetRefund handles GET /refunds/:refund_id — the RefundSync flow.
func (h *PaymentHandler) GetRefund(c *gin.Context) {
	req := operations.RefundSyncRequest{
		RefundID:   c.Param("refund_id"),
		MerchantID: c.Query("merchant_id"),
	}

	refund, err := h.refundSync.Execute(c.Request.Context(), req)
	if err != nil {
		logger.Error("refund_sync failed", map[string]interface{}{"refund_id": req.RefundID, "error": err.Error()})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "refund retrieved", refund)
}
