package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paylinkhq/router-core/internal/webhook"
	"github.com/paylinkhq/router-core/pkg/logger"
	"github.com/paylinkhq/router-core/pkg/utils"
)

// WebhookHandler handles inbound acquirer webhook deliveries (spec §4.5),
// mirroring the teacher's ProcessWebhook handler shape but keyed by
// adapter/merchant path parameters instead of a single fixed provider.
type WebhookHandler struct {
	processor *webhook.Processor
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(processor *webhook.Processor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

// ProcessWebhook handles POST /webhooks/:adapter_id/:merchant_id.
func (h *WebhookHandler) ProcessWebhook(c *gin.Context) {
	adapterID := c.Param("adapter_id")
	merchantID := c.Param("merchant_id")

	body, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "failed to read request body")
		return
	}

	signatureHeader := c.GetHeader("Stripe-Signature")
	if signatureHeader == "" {
		utils.BadRequest(c, "missing signature header")
		return
	}

	logger.Info("processing webhook", map[string]interface{}{
		"adapter_id":  adapterID,
		"merchant_id": merchantID,
		"body_length": len(body),
	})

	result, err := h.processor.Process(c.Request.Context(), adapterID, merchantID, body, signatureHeader)
	if err != nil {
		logger.Error("webhook processing failed", map[string]interface{}{
			"adapter_id":  adapterID,
			"merchant_id": merchantID,
			"error":       err.Error(),
		})
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "webhook processed", result)
}
