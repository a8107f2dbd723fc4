package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/connector/execution"
	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/internal/router/statemachine"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
	"github.com/paylinkhq/router-core/pkg/metrics"
)

// RefundExecuteRequest is the merchant-facing refund request DTO.
type RefundExecuteRequest struct {
	PaymentID    string `json:"payment_id" validate:"required"`
	MerchantID   string `json:"merchant_id" validate:"required"`
	RefundID     string `json:"refund_id" validate:"required"`
	RefundAmount int64  `json:"refund_amount" validate:"required,gt=0"`
}

// RefundExecuteOperation implements the RefundExecute flow.
type RefundExecuteOperation struct {
	deps *Dependencies
}

func NewRefundExecuteOperation(deps *Dependencies) *RefundExecuteOperation {
	return &RefundExecuteOperation{deps: deps}
}

func (op *RefundExecuteOperation) Execute(ctx context.Context, req RefundExecuteRequest) (refundResult *entities.Refund, err error) {
	logFlow("refund_execute", map[string]interface{}{"payment_id": req.PaymentID, "merchant_id": req.MerchantID, "refund_id": req.RefundID})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("refund_execute", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
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
	if attempt.ConnectorTransactionID == nil {
		return nil, apierrors.ErrInvalidRequestData("attempt has no connector_transaction_id to refund")
	}

	priorRefunds, err := op.deps.Refunds.ListByTransactionID(ctx, *attempt.ConnectorTransactionID)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	priorAmount := statemachine.SumRefundedAmount(priorRefunds)

	if err := statemachine.ValidateRefundExecuteAdmissibility(intent, attempt, priorAmount, req.RefundAmount); err != nil {
		return nil, err
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
	if adapter.RefundExecute == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support refund_execute", adapterID))
	}

	refund := &entities.Refund{
		InternalReferenceID: uuid.NewString(),
		RefundID:            req.RefundID,
		PaymentID:           req.PaymentID,
		MerchantID:          req.MerchantID,
		TransactionID:       *attempt.ConnectorTransactionID,
		Connector:           adapterID,
		RefundType:          valueobjects.RefundTypeRegular,
		TotalAmount:         attempt.Amount,
		RefundAmount:        req.RefundAmount,
		Currency:            attempt.Currency,
		RefundStatus:        valueobjects.RefundStatusPending,
	}
	if !refund.ValidateAmount() {
		return nil, apierrors.ErrInvalidRequestData("refund_amount exceeds total_amount")
	}
	if err := op.deps.Refunds.Create(ctx, refund); err != nil {
		return nil, translateStorageErr(err)
	}

	routerData := router.RouterData[connector.RefundExecuteRequest, connector.RefundExecuteResponse]{
		Flow:                   valueobjects.FlowRefundExecute,
		ConnectorAuthType:      auth,
		PaymentID:              req.PaymentID,
		MerchantID:             req.MerchantID,
		ConnectorTransactionID: attempt.ConnectorTransactionID,
		ConnectorName:          adapterID,
		Amount:                 req.RefundAmount,
		Currency:               attempt.Currency,
		Request: connector.RefundExecuteRequest{
			ConnectorTransactionID: *attempt.ConnectorTransactionID,
			RefundID:               refund.InternalReferenceID,
			RefundAmount:           req.RefundAmount,
			Currency:               attempt.Currency,
		},
	}

	httpReq, err := adapter.RefundExecute.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, translateBuildErr(err, apierrors.ErrRefundFailed)
	}

	result := execution.Execute[connector.RefundExecuteRequest, connector.RefundExecuteResponse](ctx, op.deps.Engine, adapter.RefundExecute, httpReq, routerData)

	if result.Failed() {
		msg := result.ResponseErr.Message
		if !refund.ApplyProjection(valueobjects.RefundStatusFailure, nil, &msg) {
			return nil, apierrors.ErrInternalServer(fmt.Errorf("refund %s cannot absorb a failure projection from status %s", refund.ID, refund.RefundStatus))
		}
		if err := op.deps.Refunds.Update(ctx, refund); err != nil {
			return nil, translateStorageErr(err)
		}
		return nil, translateConnectorErr(result.ResponseErr, apierrors.ErrRefundFailed)
	}

	resp := result.Response
	if !refund.ApplyProjection(resp.Status, &resp.ConnectorRefundID, nil) {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("refund %s cannot absorb projected status %s", refund.ID, resp.Status))
	}
	refund.SentToGateway = true
	if err := op.deps.Refunds.Update(ctx, refund); err != nil {
		return nil, translateStorageErr(err)
	}
	return refund, nil
}
