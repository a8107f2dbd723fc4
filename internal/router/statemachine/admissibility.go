// Package statemachine implements the admissibility checks and status
// projection rules named in spec §4.4: the predicates that must hold over
// current intent/attempt/refund state before a flow may proceed, and the
// rules that govern how a fresh acquirer-reported status may update that
// state.
package statemachine

import (
	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

// ValidateAuthorizeAdmissibility enforces the Authorize precondition: the
// intent must be awaiting a payment method or a confirmation.
func ValidateAuthorizeAdmissibility(intent *entities.PaymentIntent) error {
	switch intent.Status {
	case valueobjects.IntentStatusRequiresPaymentMethod, valueobjects.IntentStatusRequiresConfirmation:
		return nil
	default:
		return apierrors.ErrInvalidRequestData("intent is not awaiting authorization: status=" + intent.Status.String())
	}
}

// ValidateCaptureAdmissibility enforces the Capture precondition: the
// intent must be awaiting capture, the attempt's capture method must permit
// manual capture, and 0 < amountToCapture <= intent.Amount.
func ValidateCaptureAdmissibility(intent *entities.PaymentIntent, attempt *entities.PaymentAttempt, amountToCapture int64) error {
	if intent.Status != valueobjects.IntentStatusRequiresCapture {
		return apierrors.ErrInvalidRequestData("intent is not awaiting capture: status=" + intent.Status.String())
	}
	if !attempt.CaptureMethod.RequiresManualCapture() {
		return apierrors.ErrInvalidRequestData("attempt capture method does not support manual capture")
	}
	if amountToCapture <= 0 || amountToCapture > intent.Amount {
		return apierrors.ErrInvalidRequestData("amount_to_capture must be > 0 and <= intent.amount")
	}
	return nil
}

// ValidateVoidAdmissibility enforces the Void precondition: the intent
// must be awaiting capture or awaiting confirmation.
func ValidateVoidAdmissibility(intent *entities.PaymentIntent) error {
	switch intent.Status {
	case valueobjects.IntentStatusRequiresCapture, valueobjects.IntentStatusRequiresConfirmation:
		return nil
	default:
		return apierrors.ErrInvalidRequestData("intent cannot be voided from status=" + intent.Status.String())
	}
}

// ValidatePSyncAdmissibility is intentionally permissive: PSync is allowed
// for any non-terminal intent, and additionally on demand when triggered
// by a verified webhook (spec §4.4: "any non-terminal or on-demand from
// webhook"). The webhook-driven case is expressed by the fromWebhook flag
// rather than a special status: when it is set, the check passes without
// looking at the intent.
func ValidatePSyncAdmissibility(intent *entities.PaymentIntent, fromWebhook bool) error {
	if fromWebhook {
		return nil
	}
	if intent.IsTerminal() {
		return apierrors.ErrInvalidRequestData("intent is in a terminal state: status=" + intent.Status.String())
	}
	return nil
}

// ValidateVerifyAdmissibility enforces the Verify precondition. Verify sets
// up a mandate rather than moving money, so it shares Authorize's
// precondition: the intent must not already be settled.
func ValidateVerifyAdmissibility(intent *entities.PaymentIntent) error {
	return ValidateAuthorizeAdmissibility(intent)
}

// ValidateRefundExecuteAdmissibility enforces the RefundExecute
// precondition: the intent must be Succeeded, the attempt must be Charged,
// and the sum of prior non-failed refunds plus the new refund amount must
// not exceed the attempt amount.
func ValidateRefundExecuteAdmissibility(intent *entities.PaymentIntent, attempt *entities.PaymentAttempt, priorRefundedAmount, newRefundAmount int64) error {
	if intent.Status != valueobjects.IntentStatusSucceeded {
		return apierrors.ErrInvalidRequestData("intent is not succeeded: status=" + intent.Status.String())
	}
	if attempt.Status != valueobjects.AttemptStatusCharged {
		return apierrors.ErrInvalidRequestData("attempt is not charged: status=" + attempt.Status.String())
	}
	if newRefundAmount <= 0 {
		return apierrors.ErrInvalidRequestData("refund_amount must be > 0")
	}
	if priorRefundedAmount+newRefundAmount > attempt.Amount {
		return apierrors.ErrInvalidRequestData("refund amount exceeds remaining attempt balance")
	}
	return nil
}

// ValidateRefundSyncAdmissibility enforces the RefundSync precondition:
// the refund must still be pending reconciliation with the acquirer.
func ValidateRefundSyncAdmissibility(refund *entities.Refund) error {
	if refund.RefundStatus != valueobjects.RefundStatusPending {
		return apierrors.ErrInvalidRequestData("refund is not pending: status=" + refund.RefundStatus.String())
	}
	return nil
}

// SumRefundedAmount sums the refund_amount of every refund that still
// counts toward the attempt's total per valueobjects.RefundStatus.CountsTowardTotal
// (Success, Pending, ManualReview) — the guard named in spec §3/§8
// ("Refund bound").
func SumRefundedAmount(refunds []*entities.Refund) int64 {
	var total int64
	for _, r := range refunds {
		if r.RefundStatus.CountsTowardTotal() {
			total += r.RefundAmount
		}
	}
	return total
}
