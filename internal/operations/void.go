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

// VoidPaymentRequest is the merchant-facing Void request DTO.
type VoidPaymentRequest struct {
	PaymentID  string `json:"payment_id" validate:"required"`
	MerchantID string `json:"merchant_id" validate:"required"`
}

// VoidOperation implements the Void flow.
type VoidOperation struct {
	deps *Dependencies
}

func NewVoidOperation(deps *Dependencies) *VoidOperation {
	return &VoidOperation{deps: deps}
}

func (op *VoidOperation) Execute(ctx context.Context, req VoidPaymentRequest) (voidResult *entities.PaymentAttempt, err error) {
	logFlow("void", map[string]interface{}{"payment_id": req.PaymentID, "merchant_id": req.MerchantID})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("void", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
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
	if err := statemachine.ValidateVoidAdmissibility(intent); err != nil {
		return nil, err
	}
	if attempt.ConnectorTransactionID == nil {
		return nil, apierrors.ErrInvalidRequestData("attempt has no connector_transaction_id to void")
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
	if adapter.Void == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support void", adapterID))
	}

	routerData := router.RouterData[connector.VoidRequest, connector.VoidResponse]{
		Flow:                   valueobjects.FlowVoid,
		ConnectorAuthType:      auth,
		PaymentID:              req.PaymentID,
		MerchantID:             req.MerchantID,
		AttemptID:              attempt.ID,
		ConnectorTransactionID: attempt.ConnectorTransactionID,
		ConnectorName:          adapterID,
		Amount:                 attempt.Amount,
		Currency:               attempt.Currency,
		Request:                connector.VoidRequest{ConnectorTransactionID: *attempt.ConnectorTransactionID},
	}

	httpReq, err := adapter.Void.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, translateBuildErr(err, apierrors.ErrPaymentCaptureFailed)
	}

	result := execution.Execute[connector.VoidRequest, connector.VoidResponse](ctx, op.deps.Engine, adapter.Void, httpReq, routerData)

	if result.Failed() {
		return nil, translateConnectorErr(result.ResponseErr, apierrors.ErrPaymentCaptureFailed)
	}

	resp := result.Response
	if !attempt.ApplyProjection(resp.Status, &resp.ConnectorTransactionID, nil) {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("attempt %s cannot absorb projected status %s", attempt.ID, resp.Status))
	}
	if err := op.deps.Attempts.Update(ctx, attempt); err != nil {
		return nil, translateStorageErr(err)
	}
	intent.TransitionTo(intentStatusFor(resp.Status))
	if err := op.deps.Intents.Update(ctx, intent); err != nil {
		return nil, translateStorageErr(err)
	}
	return attempt, nil
}
