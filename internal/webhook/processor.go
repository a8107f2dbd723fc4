package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/paylinkhq/router-core/internal/domain/repositories"
	"github.com/paylinkhq/router-core/internal/operations"
	"github.com/paylinkhq/router-core/internal/router"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
	"github.com/paylinkhq/router-core/pkg/logger"
	"github.com/paylinkhq/router-core/pkg/metrics"
)

// dedupTTLSeconds bounds how long a processed event's dedup marker is kept;
// acquirers are expected to stop retrying well within a day.
const dedupTTLSeconds = 86400

// Result reports what Process did with an inbound event, for the HTTP
// handler to turn into a response.
type Result struct {
	EventType    EventType
	ReferenceID  string
	Deduplicated bool
}

// Processor verifies, classifies, deduplicates, and replays a webhook
// through the ordinary operation pipeline (spec §4.5): a webhook never
// applies the acquirer's claimed status directly, it only triggers the
// same PSync/RefundSync an operator-initiated poll would run, so
// webhook-driven and polling-driven state updates go through the same FSM
// transition checks. A payment webhook runs PSync with fromWebhook=true,
// which skips PSync's non-terminal-intent admissibility check.
type Processor struct {
	verifier   *Verifier
	attempts   repositories.PaymentAttemptRepository
	refunds    repositories.RefundRepository
	dedup      repositories.KeyValueStore
	psync      *operations.PSyncOperation
	refundSync *operations.RefundSyncOperation
}

func NewProcessor(
	verifier *Verifier,
	attempts repositories.PaymentAttemptRepository,
	refunds repositories.RefundRepository,
	dedup repositories.KeyValueStore,
	psync *operations.PSyncOperation,
	refundSync *operations.RefundSyncOperation,
) *Processor {
	return &Processor{
		verifier:   verifier,
		attempts:   attempts,
		refunds:    refunds,
		dedup:      dedup,
		psync:      psync,
		refundSync: refundSync,
	}
}

// Process verifies the signature, classifies the event, and (unless it is
// a duplicate or an endpoint-verification ping) replays it through the
// corresponding sync operation.
func (p *Processor) Process(ctx context.Context, adapterID, merchantID string, body []byte, signatureHeader string) (*Result, error) {
	if err := p.verifier.Verify(ctx, adapterID, merchantID, body, signatureHeader); err != nil {
		metrics.RecordWebhookVerification(adapterID, false)
		return nil, err
	}
	metrics.RecordWebhookVerification(adapterID, true)

	event, err := ParseEvent(body)
	if err != nil {
		return nil, err
	}

	if event.Type == EventEndpointVerification {
		return &Result{EventType: event.Type}, nil
	}

	dedupKey := fmt.Sprintf("webhook_processed_%s_%s_%s", adapterID, event.Type, event.ReferenceID)
	if _, err := p.dedup.GetKey(ctx, dedupKey); err == nil {
		logger.Info("duplicate webhook event ignored", map[string]interface{}{"adapter_id": adapterID, "event_type": event.Type, "reference_id": event.ReferenceID})
		metrics.RecordWebhookDeduplicated(adapterID)
		return &Result{EventType: event.Type, ReferenceID: event.ReferenceID, Deduplicated: true}, nil
	}

	if err := p.synthesize(ctx, event); err != nil {
		return nil, err
	}

	if err := p.dedup.SetKey(ctx, dedupKey, []byte("1"), dedupTTLSeconds); err != nil {
		logger.Warn("failed to record webhook dedup marker", map[string]interface{}{"error": err.Error()})
	}

	return &Result{EventType: event.Type, ReferenceID: event.ReferenceID}, nil
}

func (p *Processor) synthesize(ctx context.Context, event *ParsedEvent) error {
	switch event.Type {
	case EventPaymentIntentSuccess, EventPaymentIntentFailure, EventPaymentIntentRequiresAction:
		return p.syncPayment(ctx, event.ReferenceID)
	case EventRefundSuccess, EventRefundFailure:
		return p.syncRefund(ctx, event.ReferenceID)
	default:
		return apierrors.NewConnectorError(apierrors.WebhookEventTypeNotFound, "no synthesis routing for event type", nil)
	}
}

func (p *Processor) syncPayment(ctx context.Context, connectorTransactionID string) error {
	attempt, err := p.attempts.FindByConnectorTransactionID(ctx, connectorTransactionID)
	if err != nil {
		return translateStorageErr(err)
	}
	_, err = p.psync.ExecuteWithAction(ctx, operations.PSyncRequest{
		PaymentID:  attempt.PaymentID,
		MerchantID: attempt.MerchantID,
	}, true, router.Trigger())
	return err
}

func (p *Processor) syncRefund(ctx context.Context, connectorRefundID string) error {
	refund, err := p.refunds.FindByPgRefundID(ctx, connectorRefundID)
	if err != nil {
		return translateStorageErr(err)
	}
	_, err = p.refundSync.Execute(ctx, operations.RefundSyncRequest{
		MerchantID: refund.MerchantID,
		RefundID:   refund.RefundID,
	})
	return err
}

// translateStorageErr mirrors internal/operations' unexported helper of
// the same name: repository lookups here can fail the same way they do
// inside an operation, and the webhook entrypoint needs the same
// ApiErrorResponse mapping.
func translateStorageErr(err error) error {
	if err == nil {
		return nil
	}
	var storageErr *apierrors.StorageError
	if errors.As(err, &storageErr) {
		return apierrors.FromStorageError(storageErr)
	}
	return apierrors.ErrInternalServer(err)
}
