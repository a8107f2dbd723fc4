package operations

import (
	"context"
	"errors"
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

// CardInput is the inbound card payload shape every flow that needs fresh
// card data shares.
type CardInput struct {
	Number      string `json:"number" validate:"required"`
	ExpiryMonth string `json:"expiry_month" validate:"required"`
	ExpiryYear  string `json:"expiry_year" validate:"required"`
	CVC         string `json:"cvc" validate:"required"`
	HolderName  string `json:"holder_name"`
}

// AuthorizePaymentRequest is the merchant-facing Authorize request DTO
// (spec §4.2 CreatePaymentRequest shape), validated by struct tag before
// any admissibility check runs.
type AuthorizePaymentRequest struct {
	PaymentID         string            `json:"payment_id" validate:"required"`
	MerchantID        string            `json:"merchant_id" validate:"required"`
	CustomerID        string            `json:"customer_id"`
	Amount            int64             `json:"amount" validate:"required,gt=0"`
	Currency          string            `json:"currency" validate:"required,len=3"`
	CaptureMethod     string            `json:"capture_method" validate:"omitempty,oneof=automatic manual manual_multiple scheduled"`
	PaymentMethodType string            `json:"payment_method_type" validate:"required"`
	Card              *CardInput        `json:"card"`
	MandateID         *string           `json:"mandate_id"`
	OffSession        bool              `json:"off_session"`
	Metadata          map[string]string `json:"metadata"`
}

// AuthorizeOperation implements the Authorize flow's four pipeline stages.
type AuthorizeOperation struct {
	deps *Dependencies
}

func NewAuthorizeOperation(deps *Dependencies) *AuthorizeOperation {
	return &AuthorizeOperation{deps: deps}
}

// Execute runs validate_request, get_trackers, to_domain and
// update_trackers for one Authorize call, in that order.
func (op *AuthorizeOperation) Execute(ctx context.Context, req AuthorizePaymentRequest) (attemptResult *entities.PaymentAttempt, err error) {
	logFlow("authorize", map[string]interface{}{"payment_id": req.PaymentID, "merchant_id": req.MerchantID})

	start := time.Now()
	connectorName := "unknown"
	defer func() {
		metrics.RecordOperation("authorize", connectorName, float64(time.Since(start).Microseconds())/1000, err == nil)
	}()

	if err := validate.Struct(req); err != nil {
		return nil, apierrors.ErrInvalidRequestData(err.Error())
	}

	data, err := op.getTrackers(ctx, req)
	if err != nil {
		return nil, err
	}

	routerReq, auth, adapterID, err := op.toDomain(ctx, data, req)
	if err != nil {
		return nil, err
	}
	connectorName = adapterID

	adapter, err := op.deps.Registry.Get(adapterID)
	if err != nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q: %v", adapterID, err))
	}
	if adapter.Authorize == nil {
		return nil, apierrors.ErrInvalidRequestData(fmt.Sprintf("connector %q does not support authorize", adapterID))
	}

	routerData := router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse]{
		Flow:              valueobjects.FlowAuthorize,
		ConnectorAuthType: auth,
		PaymentID:         req.PaymentID,
		MerchantID:        req.MerchantID,
		AttemptID:         data.Attempt.ID,
		ConnectorName:     adapterID,
		Amount:            req.Amount,
		Currency:          valueobjects.Normalize(req.Currency),
		Request:           routerReq,
	}

	httpReq, err := adapter.Authorize.BuildRequest(&routerData, op.deps.ConnectorsConfig)
	if err != nil {
		return nil, translateBuildErr(err, apierrors.ErrPaymentAuthorizationFailed)
	}

	result := execution.Execute[connector.AuthorizeRequest, connector.AuthorizeResponse](ctx, op.deps.Engine, adapter.Authorize, httpReq, routerData)

	return op.updateTrackers(ctx, data, result)
}

// getTrackers resolves the merchant account and the (possibly new) intent,
// and checks Authorize admissibility against the intent's current status.
func (op *AuthorizeOperation) getTrackers(ctx context.Context, req AuthorizePaymentRequest) (*PaymentData, error) {
	merchant, err := op.deps.loadMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}

	intent, err := op.deps.Intents.FindByPaymentIDMerchantID(ctx, req.PaymentID, req.MerchantID)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return nil, translateStorageErr(err)
		}
		intent = &entities.PaymentIntent{
			PaymentID:  req.PaymentID,
			MerchantID: req.MerchantID,
			Status:     valueobjects.IntentStatusRequiresPaymentMethod,
			Amount:     req.Amount,
			Currency:   valueobjects.Normalize(req.Currency),
		}
		if err := op.deps.Intents.Create(ctx, intent); err != nil {
			return nil, translateStorageErr(err)
		}
	}

	if err := statemachine.ValidateAuthorizeAdmissibility(intent); err != nil {
		return nil, err
	}

	return &PaymentData{Intent: intent, Merchant: merchant}, nil
}

// toDomain builds the attempt row, an ephemeral temp-card record when card
// data was supplied, and the connector-level AuthorizeRequest.
func (op *AuthorizeOperation) toDomain(ctx context.Context, data *PaymentData, req AuthorizePaymentRequest) (connector.AuthorizeRequest, router.ConnectorAuthType, string, error) {
	auth, err := resolveAuthType(data.Merchant)
	if err != nil {
		return connector.AuthorizeRequest{}, nil, "", err
	}
	adapterID := connectorID(data.Merchant)

	attemptID, txnID := newTxnID()
	captureMethod := valueobjects.CaptureMethod(req.CaptureMethod)
	if captureMethod == "" {
		captureMethod = valueobjects.CaptureMethodAutomatic
	}

	attempt := &entities.PaymentAttempt{
		ID:                 attemptID,
		PaymentID:           req.PaymentID,
		MerchantID:          req.MerchantID,
		TxnID:               txnID,
		ConnectorName:       adapterID,
		Status:              valueobjects.AttemptStatusStarted,
		Amount:              req.Amount,
		Currency:            valueobjects.Normalize(req.Currency),
		CaptureMethod:       captureMethod,
		PaymentMethod:       valueobjects.PaymentMethodType(req.PaymentMethodType),
		AuthenticationType:  valueobjects.AuthenticationTypeNoThreeDS,
	}
	if err := op.deps.Attempts.Create(ctx, attempt); err != nil {
		return connector.AuthorizeRequest{}, nil, "", translateStorageErr(err)
	}
	data.Attempt = attempt

	var card *connector.CardDetails
	if req.Card != nil {
		if err := op.deps.TempCards.Create(ctx, &entities.TempCard{
			TxnID:          txnID,
			CardNumber:     req.Card.Number,
			ExpiryMonth:    req.Card.ExpiryMonth,
			ExpiryYear:     req.Card.ExpiryYear,
			CVC:            req.Card.CVC,
			CardHolderName: &req.Card.HolderName,
		}); err != nil {
			return connector.AuthorizeRequest{}, nil, "", translateStorageErr(err)
		}
		card = &connector.CardDetails{
			Number:      req.Card.Number,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
			CVC:         req.Card.CVC,
			HolderName:  req.Card.HolderName,
		}
	}

	routerReq := connector.AuthorizeRequest{
		PaymentID:         req.PaymentID,
		CustomerID:        req.CustomerID,
		Amount:            req.Amount,
		Currency:          valueobjects.Normalize(req.Currency),
		CaptureMethod:     captureMethod,
		PaymentMethodType: req.PaymentMethodType,
		Card:              card,
		MandateID:         req.MandateID,
		OffSession:        req.OffSession,
		Metadata:          req.Metadata,
	}
	return routerReq, auth, adapterID, nil
}

// updateTrackers applies the connector's projected status to the attempt
// and derives the intent's new status, persisting both.
func (op *AuthorizeOperation) updateTrackers(ctx context.Context, data *PaymentData, result router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse]) (*entities.PaymentAttempt, error) {
	if result.Failed() {
		if !data.Attempt.ApplyProjection(valueobjects.AttemptStatusFailure, nil, &result.ResponseErr.Message) {
			return nil, apierrors.ErrInternalServer(fmt.Errorf("attempt %s cannot absorb a failure projection from status %s", data.Attempt.ID, data.Attempt.Status))
		}
		if err := op.deps.Attempts.Update(ctx, data.Attempt); err != nil {
			return nil, translateStorageErr(err)
		}
		data.Intent.TransitionTo(valueobjects.IntentStatusFailed)
		if err := op.deps.Intents.Update(ctx, data.Intent); err != nil {
			return nil, translateStorageErr(err)
		}
		return nil, translateConnectorErr(result.ResponseErr, apierrors.ErrPaymentAuthorizationFailed)
	}

	resp := result.Response
	if !data.Attempt.ApplyProjection(resp.Status, &resp.ConnectorTransactionID, nil) {
		return nil, apierrors.ErrInternalServer(fmt.Errorf("attempt %s cannot absorb projected status %s", data.Attempt.ID, resp.Status))
	}
	if err := op.deps.Attempts.Update(ctx, data.Attempt); err != nil {
		return nil, translateStorageErr(err)
	}
	op.deps.persistConnectorResponse(ctx, data.Intent.PaymentID, data.Intent.MerchantID, data.Attempt.TxnID, data.Attempt.ConnectorName, resp)

	data.Intent.TransitionTo(intentStatusFor(resp.Status))
	if err := op.deps.Intents.Update(ctx, data.Intent); err != nil {
		return nil, translateStorageErr(err)
	}

	return data.Attempt, nil
}

// intentStatusFor derives the PaymentIntent status an attempt's projected
// AttemptStatus implies, per spec §3/§4.4.
func intentStatusFor(status valueobjects.AttemptStatus) valueobjects.IntentStatus {
	switch status {
	case valueobjects.AttemptStatusCharged:
		return valueobjects.IntentStatusSucceeded
	case valueobjects.AttemptStatusAuthorized:
		return valueobjects.IntentStatusRequiresCapture
	case valueobjects.AttemptStatusAuthenticationPending:
		return valueobjects.IntentStatusRequiresConfirmation
	case valueobjects.AttemptStatusVoided:
		return valueobjects.IntentStatusCancelled
	case valueobjects.AttemptStatusFailure:
		return valueobjects.IntentStatusFailed
	default:
		return valueobjects.IntentStatusProcessing
	}
}

// translateBuildErr maps a BuildRequest-time ConnectorError (auth/URL/
// encoding failures that never reach the acquirer) onto the flow-specific
// ApiErrorResponse, using the NO_ERROR_CODE sentinel as the code and the
// ConnectorError's own message.
func translateBuildErr(err error, onFailure func(code, message string) *apierrors.ApiErrorResponse) error {
	var connErr *apierrors.ConnectorError
	if errors.As(err, &connErr) {
		return onFailure(apierrors.NoErrorCode, connErr.Message)
	}
	return apierrors.ErrInternalServer(err)
}
