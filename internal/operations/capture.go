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

// CapturePaymentRequest is the merchant-facing Capture request DTO.
type CapturePaymentRequest struct {
	PaymentID       string `json:"payment_id" validate:"required"`
	MerchantID      string `json:"merchant_id" validate:"required"`
	AmountToCapture int64  `json:"amount_to_capture" validate:"required,gt=0"`
}

// CaptureOperation implements the Capture flow.
type CaptureOperation struct {
	deps *Dependencies
}

func NewCaptureOperation(deps *Dependencies) *CaptureOperation {
	return &CaptureOperation{deps: deps}
}

func (op *CaptureOperation) Execute(ctx context.Context, req CapturePaymentRequest) (captureResult *entities.PaymentAttempt, err error) {
	logFlow("capture", map[string]interface{}{"payment_id": req.PaymentID, "merchant_id": req.MerchantID})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("capture", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
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
	if err := statemachine.ValidateCaptureAdmissibility(intent, attempt, req.AmountToCapture); err != nil {
		return nil, err
	}
	if attempt.ConnectorTransactionID == nil {
		return nil, apierrors.ErrInvalidRequestData("attempt has no connector_transaction_id to capture")
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
	if adapter.Capture == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support capture", adapterID))
	}

	amountToCapture := req.AmountToCapture
	attempt.AmountToCapture = &amountToCapture

	routerData := router.RouterData[connector.CaptureRequest, connector.CaptureResponse]{
		Flow:                   valueobjects.FlowCapture,
		ConnectorAuthType:      auth,
		PaymentID:              req.PaymentID,
		MerchantID:             req.MerchantID,
		AttemptID:              attempt.ID,
		ConnectorTransactionID: attempt.ConnectorTransactionID,
		ConnectorName:          adapterID,
		Amount:                 attempt.Amount,
		Currency:               attempt.Currency,
		Request: connector.CaptureRequest{
			ConnectorTransactionID: *attempt.ConnectorTransactionID,
			AmountToCapture:        req.AmountToCapture,
			Currency:               attempt.Currency,
		},
	}

	httpReq, err := adapter.Capture.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, translateBuildErr(err, apierrors.ErrPaymentCaptureFailed)
	}

	result := execution.Execute[connector.CaptureRequest, connector.CaptureResponse](ctx, op.deps.Engine, adapter.Capture, httpReq, routerData)

	if result.Failed() {
		if !attempt.ApplyProjection(valueobjects.AttemptStatusFailure, nil, &result.ResponseErr.Message) {
			return nil, apierrors.ErrInternalServer(fmt.Errorf("attempt %s cannot absorb a failure projection from status %s", attempt.ID, attempt.Status))
		}
		if err := op.deps.Attempts.Update(ctx, attempt); err != nil {
			return nil, translateStorageErr(err)
		}
		return nil, translateConnectorErr(result.ResponseErr, apierrors.ErrPaymentCaptureFailed)
	}

	resp := result.Response
	if !attempt.ApplyProjection(resp.Status, &resp.ConnectorTransactionID, nil) {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("attempt %s cannot absorb projected status %s", attempt.ID, resp.Status))
	}
	if err := op.deps.Attempts.Update(ctx, attempt); err != nil {
		return nil, translateStorageErr(err)
	}
	op.deps.persistConnectorResponse(ctx, attempt.PaymentID, attempt.MerchantID, attempt.TxnID, attempt.ConnectorName, resp)

	intent.TransitionTo(intentStatusFor(resp.Status))
	if err := op.deps.Intents.Update(ctx, intent); err != nil {
		return nil, translateStorageErr(err)
	}

	return attempt, nil
}
