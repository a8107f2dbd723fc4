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

// VerifyPaymentRequest is the merchant-facing Verify (mandate setup)
// request DTO.
type VerifyPaymentRequest struct {
	PaymentID         string     `json:"payment_id" validate:"required"`
	MerchantID        string     `json:"merchant_id" validate:"required"`
	CustomerID        string     `json:"customer_id" validate:"required"`
	Currency          string     `json:"currency" validate:"required,len=3"`
	PaymentMethodType string     `json:"payment_method_type" validate:"required"`
	Card              *CardInput `json:"card"`
	MandateID         string     `json:"mandate_id" validate:"required"`
	MaximumAmount     *int64     `json:"maximum_amount"`
}

// VerifyOperation implements the Verify flow: sets up a mandate rather
// than moving money, sharing Authorize's admissibility precondition.
type VerifyOperation struct {
	deps *Dependencies
}

func NewVerifyOperation(deps *Dependencies) *VerifyOperation {
	return &VerifyOperation{deps: deps}
}

func (op *VerifyOperation) Execute(ctx context.Context, req VerifyPaymentRequest) (verifyResult *entities.Mandate, err error) {
	logFlow("verify", map[string]interface{}{"payment_id": req.PaymentID, "merchant_id": req.MerchantID})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("verify", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
	}()

	if err := validate.Struct(req); err != nil {
		return nil, apierrors.ErrInvalidRequestData(err.Error())
	}

	merchant, err := op.deps.loadMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}

	intent, err := op.deps.Intents.FindByPaymentIDMerchantID(ctx, req.PaymentID, req.MerchantID)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	if err := statemachine.ValidateVerifyAdmissibility(intent); err != nil {
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
	if adapter.Verify == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support verify", adapterID))
	}

	var card *connector.CardDetails
	if req.Card != nil {
		card = &connector.CardDetails{
			Number:      req.Card.Number,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
			CVC:         req.Card.CVC,
			HolderName:  req.Card.HolderName,
		}
	}

	attemptID, _ := newTxnID()
	routerData := router.RouterData[connector.VerifyRequest, connector.VerifyResponse]{
		Flow:              valueobjects.FlowVerify,
		ConnectorAuthType: auth,
		PaymentID:         req.PaymentID,
		MerchantID:        req.MerchantID,
		AttemptID:         attemptID,
		ConnectorName:     adapterID,
		Currency:          valueobjects.Normalize(req.Currency),
		Request: connector.VerifyRequest{
			CustomerID:        req.CustomerID,
			Currency:          valueobjects.Normalize(req.Currency),
			PaymentMethodType: req.PaymentMethodType,
			Card:              card,
		},
	}

	httpReq, err := adapter.Verify.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, translateBuildErr(err, apierrors.ErrPaymentAuthorizationFailed)
	}

	result := execution.Execute[connector.VerifyRequest, connector.VerifyResponse](ctx, op.deps.Engine, adapter.Verify, httpReq, routerData)

	if result.Failed() {
		return nil, translateConnectorErr(result.ResponseErr, apierrors.ErrPaymentAuthorizationFailed)
	}

	resp := result.Response
	mandate := &entities.Mandate{
		MandateID:            req.MandateID,
		MerchantID:           req.MerchantID,
		CustomerID:           req.CustomerID,
		PaymentMethodID:      resp.ConnectorTransactionID,
		NetworkTransactionID: resp.MandateReference,
		MandateType:          entities.MandateTypeMultiUse,
		MandateStatus:        mandateStatusFor(resp.Status),
		MaximumAmount:        req.MaximumAmount,
	}
	if err := op.deps.Mandates.Create(ctx, mandate); err != nil {
		return nil, translateStorageErr(err)
	}
	return mandate, nil
}

// mandateStatusFor derives the mandate's initial status from the Verify
// call's projected AttemptStatus: only a charged/authorized setup_intent
// produced an active, debitable mandate.
func mandateStatusFor(status valueobjects.AttemptStatus) entities.MandateStatus {
	switch status {
	case valueobjects.AttemptStatusCharged, valueobjects.AttemptStatusAuthorized:
		return entities.MandateStatusActive
	default:
		return entities.MandateStatusInactive
	}
}
