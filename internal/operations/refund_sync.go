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

// RefundSyncRequest is the merchant-facing (or webhook-driven) refund
// status poll request.
type RefundSyncRequest struct {
	MerchantID string `json:"merchant_id" validate:"required"`
	RefundID   string `json:"refund_id" validate:"required"`
}

// RefundSyncOperation implements the RefundSync flow.
type RefundSyncOperation struct {
	deps *Dependencies
}

func NewRefundSyncOperation(deps *Dependencies) *RefundSyncOperation {
	return &RefundSyncOperation{deps: deps}
}

func (op *RefundSyncOperation) Execute(ctx context.Context, req RefundSyncRequest) (refundResult *entities.Refund, err error) {
	logFlow("refund_sync", map[string]interface{}{"merchant_id": req.MerchantID, "refund_id": req.RefundID})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("refund_sync", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
	}()

	if err := validate.Struct(req); err != nil {
		return nil, apierrors.ErrInvalidRequestData(err.Error())
	}

	merchant, err := op.deps.loadMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	refund, err := op.deps.Refunds.FindByMerchantIDRefundID(ctx, req.MerchantID, req.RefundID)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	if err := statemachine.ValidateRefundSyncAdmissibility(refund); err != nil {
		return nil, err
	}
	if refund.PgRefundID == nil {
		return nil, apierrors.ErrInvalidRequestData("refund has no pg_refund_id to sync")
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
	if adapter.RefundSync == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support refund_sync", adapterID))
	}

	routerData := router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse]{
		Flow:              valueobjects.FlowRefundSync,
		ConnectorAuthType: auth,
		MerchantID:        req.MerchantID,
		ConnectorName:     adapterID,
		Currency:          refund.Currency,
		Request:           connector.RefundSyncRequest{ConnectorRefundID: *refund.PgRefundID},
	}

	httpReq, err := adapter.RefundSync.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, apierrors.ErrInternalServer(err)
	}

	result := execution.Execute[connector.RefundSyncRequest, connector.RefundSyncResponse](ctx, op.deps.Engine, adapter.RefundSync, httpReq, routerData)

	if result.Failed() {
		return nil, translateConnectorErr(result.ResponseErr, apierrors.ErrRefundFailed)
	}

	resp := result.Response
	if !refund.ApplyProjection(resp.Status, &resp.ConnectorRefundID, nil) {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("refund %s cannot absorb projected status %s", refund.ID, resp.Status))
	}
	if err := op.deps.Refunds.Update(ctx, refund); err != nil {
		return nil, translateStorageErr(err)
	}
	return refund, nil
}
