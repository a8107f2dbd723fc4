package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/connector/execution"
	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/internal/router/statemachine"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
	"github.com/paylinkhq/router-core/pkg/metrics"
)

// PSyncRequest is the merchant-facing (or webhook-driven) PSync request.
type PSyncRequest struct {
	PaymentID  string `json:"payment_id" validate:"required"`
	MerchantID string `json:"merchant_id" validate:"required"`
}

// PSyncOperation implements the PSync flow. Unlike Authorize/Capture/Void,
// PSync also runs with a pre-decided CallConnectorAction (spec §4.3):
// HandleRedirect passes the action the adapter's redirect classifier
// returns (StatusUpdate applies a status without a fresh acquirer call,
// Avoid returns the attempt unchanged), internal/webhook always passes
// Trigger with fromWebhook=true after dropping duplicate events itself,
// and a merchant-initiated status poll is Trigger.
type PSyncOperation struct {
	deps *Dependencies
}

func NewPSyncOperation(deps *Dependencies) *PSyncOperation {
	return &PSyncOperation{deps: deps}
}

// Execute runs a merchant-initiated PSync poll (always Trigger, never
// from a webhook).
func (op *PSyncOperation) Execute(ctx context.Context, req PSyncRequest) (*entities.PaymentAttempt, error) {
	return op.ExecuteWithAction(ctx, req, false, router.Trigger())
}

// ExecuteWithAction runs PSync honoring the CallConnectorAction the
// caller (internal/webhook, for the fromWebhook=true case) already
// decided.
func (op *PSyncOperation) ExecuteWithAction(ctx context.Context, req PSyncRequest, fromWebhook bool, action router.CallConnectorAction) (psyncResult *entities.PaymentAttempt, err error) {
	logFlow("psync", map[string]interface{}{"payment_id": req.PaymentID, "merchant_id": req.MerchantID, "from_webhook": fromWebhook, "action": action.Kind})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("psync", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
	}()

	if err := validate.Struct(req); err != nil {
		return nil, apierrors.ErrInvalidRequestData(err.Error())
	}

	merchant, err := op.deps.loadMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	intent, attempt, err := op.deps.loadIntentAndAttempt(ctx, req.PaymentID, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.ValidatePSyncAdmissibility(intent, fromWebhook); err != nil {
		return nil, err
	}

	switch action.Kind {
	case router.ActionAvoid:
		return attempt, nil
	case router.ActionStatusUpdate:
		return op.applyStatus(ctx, intent, attempt, action.Status, nil)
	default:
		// fall through to Trigger
	}

	if attempt.ConnectorTransactionID == nil {
		return nil, apierrors.ErrInvalidRequestData("attempt has no connector_transaction_id to sync")
	}

	auth, err := resolveAuthType(merchant)
	if err != nil {
		return nil, err
	}
	adapterID := connectorID(merchant)
	connectorName = adapterID
	adapter, err := op.deps.Registry.Get(adapterID)
	if err != nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q: %v", adapterID, err))
	}
	if adapter.PSync == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support psync", adapterID))
	}

	routerData := router.RouterData[connector.PSyncRequest, connector.PSyncResponse]{
		Flow:                   valueobjects.FlowPSync,
		ConnectorAuthType:      auth,
		PaymentID:              req.PaymentID,
		MerchantID:             req.MerchantID,
		AttemptID:              attempt.ID,
		ConnectorTransactionID: attempt.ConnectorTransactionID,
		ConnectorName:          adapterID,
		Amount:                 attempt.Amount,
		Currency:               attempt.Currency,
		Request:                connector.PSyncRequest{ConnectorTransactionID: *attempt.ConnectorTransactionID},
	}

	httpReq, err := adapter.PSync.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, apierrors.ErrInternalServer(err)
	}

	result := execution.Execute[connector.PSyncRequest, connector.PSyncResponse](ctx, op.deps.Engine, adapter.PSync, httpReq, routerData)

	if result.Failed() {
		// A sync call failing does not move the attempt to Failure — the
		// acquirer may simply be unreachable; the attempt keeps its last
		// known state and the caller sees the propagated error.
		return nil, apierrors.FromConnectorError(result.ResponseErr)
	}

	return op.applyStatus(ctx, intent, attempt, result.Response.Status, &result.Response.ConnectorTransactionID)
}

// HandleRedirect resolves the merchant's connector, asks its adapter to
// classify the redirect-return query string into a CallConnectorAction
// (spec §6, §8 scenario 6), and replays PSync honoring that action — the
// HTTP redirect-callback endpoint's sole job, so a browser bounce-back
// goes through the same admissibility checks any other PSync does.
func (op *PSyncOperation) HandleRedirect(ctx context.Context, paymentID, merchantID, queryParams string) (*entities.PaymentAttempt, error) {
	merchant, err := op.deps.loadMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	adapterID := connectorID(merchant)
	adapter, err := op.deps.Registry.Get(adapterID)
	if err != nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q: %v", adapterID, err))
	}
	if adapter.RedirectResponse == nil {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("connector %q does not support redirect-return handling", adapterID))
	}

	action, err := adapter.RedirectResponse(queryParams)
	if err != nil {
		connErr, ok := err.(*apierrors.ConnectorError)
		if !ok {
			return nil, apierrors.ErrInternalServer(err)
		}
		return nil, apierrors.FromConnectorError(connErr)
	}

	return op.ExecuteWithAction(ctx, PSyncRequest{PaymentID: paymentID, MerchantID: merchantID}, false, action)
}

func (op *PSyncOperation) applyStatus(ctx context.Context, intent *entities.PaymentIntent, attempt *entities.PaymentAttempt, status valueobjects.AttemptStatus, connectorTransactionID *string) (*entities.PaymentAttempt, error) {
	if !attempt.ApplyProjection(status, connectorTransactionID, nil) {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("attempt %s cannot absorb projected status %s", attempt.ID, status))
	}
	if err := op.deps.Attempts.Update(ctx, attempt); err != nil {
		return nil, translateStorageErr(err)
	}
	intent.TransitionTo(intentStatusFor(status))
	if err := op.deps.Intents.Update(ctx, intent); err != nil {
		return nil, translateStorageErr(err)
	}
	return attempt, nil
}
