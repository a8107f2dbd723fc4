package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/paylinkhq/router-core/internal/interfaces/http/handlers"
	"github.com/paylinkhq/router-core/internal/interfaces/http/middleware"
	"github.com/paylinkhq/router-core/pkg/metrics"
)

// Router assembles every handler group this core exposes, in the
// teacher's per-domain routes-file shape collapsed into one registrar
// since this service has a single REST surface (no versioned multi-app
// split like the teacher's dating backend).
type Router struct {
	payment *handlers.PaymentHandler
	webhook *handlers.WebhookHandler
	health  *handlers.HealthHandler
}

// NewRouter creates a new Router.
func NewRouter(payment *handlers.PaymentHandler, webhook *handlers.WebhookHandler, health *handlers.HealthHandler) *Router {
	return &Router{payment: payment, webhook: webhook, health: health}
}

// Register wires every route onto engine, along with the request-id,
// logging and recovery middleware chain.
func (r *Router) Register(engine *gin.Engine) {
	engine.Use(middleware.RequestID(), middleware.Recovery(), middleware.Logging())

	engine.GET("/health/live", r.health.Liveness)
	engine.GET("/health/ready", r.health.Readiness)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := engine.Group("/v1")
	{
		payments := v1.Group("/payments")
		{
			payments.POST("", r.payment.CreatePayment)
			payments.GET("/:payment_id", r.payment.GetPayment)
			payments.POST("/:payment_id/capture", r.payment.CapturePayment)
			payments.POST("/:payment_id/void", r.payment.VoidPayment)
			payments.GET("/:payment_id/redirect", r.payment.RedirectReturn)
		}

		mandates := v1.Group("/mandates")
		{
			mandates.POST("", r.payment.CreateMandate)
		}

		refunds := v1.Group("/refunds")
		{
			refunds.POST("", r.payment.CreateRefund)
			refunds.GET("/:refund_id", r.payment.GetRefund)
		}

		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/:adapter_id/:merchant_id", r.webhook.ProcessWebhook)
		}
	}
}
