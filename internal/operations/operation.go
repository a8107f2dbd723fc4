// Package operations implements the payment operation pipeline named in
// spec §4.2: one operation per flow, each composing the same four stages
// (validate_request, get_trackers, to_domain, update_trackers) over the
// shared working record threaded end-to-end, PaymentData.
package operations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/connector/execution"
	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
	"github.com/paylinkhq/router-core/pkg/logger"
)

// validate is shared across every operation's validate_request stage,
// checking the struct-tag rules on the inbound DTO before any
// business-rule (admissibility) check runs, per SPEC_FULL.md §B.
var validate = validator.New()

// PaymentData is the shared working record threaded through one
// operation's four stages (spec §4.2, GLOSSARY). An operation populates
// it in get_trackers, reads and extends it in to_domain, and persists the
// parts it touched in update_trackers; it is never shared across
// operations or persisted as a whole.
type PaymentData struct {
	Intent            *entities.PaymentIntent
	Attempt           *entities.PaymentAttempt
	ConnectorResponse *entities.ConnectorResponse
	Refund            *entities.Refund
	Merchant          *entities.MerchantAccount
}

// Dependencies bundles every repository port and the execution engine an
// operation needs. One instance is shared across all seven operations;
// cmd/router constructs it once at startup.
type Dependencies struct {
	Intents            repositories.PaymentIntentRepository
	Attempts           repositories.PaymentAttemptRepository
	ConnectorResponses repositories.ConnectorResponseRepository
	Refunds            repositories.RefundRepository
	Merchants          repositories.MerchantAccountRepository
	TempCards          repositories.TempCardRepository
	Mandates           repositories.MandateRepository
	Registry           *connector.Registry
	Engine             *execution.Engine
	ConnectorsConfig   *config.ConnectorsConfig
}

// loadMerchant resolves the merchant account get_trackers needs to derive
// ConnectorAuthType and the adapter id to dispatch to. Every operation's
// get_trackers stage starts here.
func (d *Dependencies) loadMerchant(ctx context.Context, merchantID string) (*entities.MerchantAccount, error) {
	merchant, err := d.Merchants.FindByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	return merchant, nil
}

// resolveAuthType parses the merchant's stored credential blob into the
// concrete ConnectorAuthType the adapter expects.
func resolveAuthType(merchant *entities.MerchantAccount) (router.ConnectorAuthType, error) {
	auth, err := router.UnmarshalConnectorAuthType(merchant.ConnectorAuthType)
	if err != nil {
		return nil, apierrors.ErrInternalServer(err)
	}
	return auth, nil
}

// connectorID picks the adapter this call targets. The core does not
// implement multi-connector routing rules (out of scope per spec §1);
// every operation dispatches to the merchant's configured default.
func connectorID(merchant *entities.MerchantAccount) string {
	return merchant.DefaultConnector
}

// newTxnID generates the per-attempt transaction id used both as the
// PaymentAttempt.TxnID secondary key and as RouterData.AttemptID.
func newTxnID() (uuid.UUID, string) {
	id := uuid.New()
	return id, id.String()
}

// loadIntentAndAttempt resolves the intent and its most recent attempt —
// the get_trackers starting point shared by Capture, PSync, Void and
// RefundExecute, which all act on an already-Authorized intent rather than
// creating one.
func (d *Dependencies) loadIntentAndAttempt(ctx context.Context, paymentID, merchantID string) (*entities.PaymentIntent, *entities.PaymentAttempt, error) {
	intent, err := d.Intents.FindByPaymentIDMerchantID(ctx, paymentID, merchantID)
	if err != nil {
		return nil, nil, translateStorageErr(err)
	}
	attempt, err := d.Attempts.FindLatestByPaymentIDMerchantID(ctx, paymentID, merchantID)
	if err != nil {
		return nil, nil, translateStorageErr(err)
	}
	return intent, attempt, nil
}

// persistConnectorResponse upserts the last-seen acquirer projection for an
// attempt (spec §3's ConnectorResponse entity, "one row per attempt,
// UpdateTrackers overwrites it in place"). Marshaling failures are logged
// and swallowed rather than failing the call: losing the stored projection
// never blocks the payment result the caller already has in hand.
func (d *Dependencies) persistConnectorResponse(ctx context.Context, paymentID, merchantID, txnID, connectorName string, resp interface{}) {
	encoded, err := json.Marshal(resp)
	if err != nil {
		logger.Error("failed to encode connector response for storage", map[string]interface{}{"txn_id": txnID, "error": err.Error()})
		return
	}
	encodedStr := string(encoded)
	record := &entities.ConnectorResponse{
		PaymentID:     paymentID,
		MerchantID:    merchantID,
		TxnID:         txnID,
		ConnectorName: connectorName,
		EncodedData:   &encodedStr,
	}
	if err := d.ConnectorResponses.Upsert(ctx, record); err != nil {
		logger.Error("failed to persist connector response", map[string]interface{}{"txn_id": txnID, "error": err.Error()})
	}
}

// translateStorageErr maps a repository error onto ApiErrorResponse via
// pkg/errors, falling back to a generic internal error when the
// repository didn't return one of the three non-mixing kinds.
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

// translateConnectorErr maps the ConnectorError the execution engine
// attaches to RouterData.ResponseErr onto the flow-specific
// ApiErrorResponse variant named in spec §7 — this is the one piece of
// translation the flow-agnostic execution engine cannot do itself, since
// only the operation knows whether a failed call was an authorization, a
// capture, or a refund.
func translateConnectorErr(err *apierrors.ConnectorError, onAcquirerFailure func(code, message string) *apierrors.ApiErrorResponse) error {
	if err.Kind == apierrors.ResponseHandlingFailed {
		code := err.Code
		if code == "" {
			code = apierrors.NoErrorCode
		}
		message := err.Message
		if message == "" {
			message = apierrors.NoErrorMessage
		}
		return onAcquirerFailure(code, message)
	}
	return apierrors.FromConnectorError(err)
}

// logFlow emits the structured per-call log line every operation writes
// at the start of Execute, in the teacher's logger.Info(msg, fields) idiom.
func logFlow(flow string, fields map[string]interface{}) {
	logger.Info(fmt.Sprintf("operation: %s", flow), fields)
}
