package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ApiErrorResponse is the user-visible error kind (spec §7); it is the only
// one of the three kinds that carries an HTTP status, and it is never
// mixed with ConnectorError or StorageError at the boundary where a handler
// writes a response — the pipeline translates at the edge instead.
type ApiErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	cause   error
}

func (e *ApiErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *ApiErrorResponse) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status code to write for this error.
func (e *ApiErrorResponse) StatusCode() int {
	return e.Code
}

func newAPIError(code int, kind, message, details string) *ApiErrorResponse {
	return &ApiErrorResponse{Code: code, Kind: kind, Message: message, Details: details}
}

// Sentinel constructors, one per variant named in spec §7.

func ErrPaymentNotFound() *ApiErrorResponse {
	return newAPIError(http.StatusNotFound, "payment_not_found", "Payment not found", "")
}

func ErrMissingRequiredField(name string) *ApiErrorResponse {
	return newAPIError(http.StatusBadRequest, "missing_required_field", "Missing required field", name)
}

func ErrInvalidRequestData(message string) *ApiErrorResponse {
	return newAPIError(http.StatusBadRequest, "invalid_request_data", "Invalid request data", message)
}

func ErrPaymentAuthorizationFailed(code, message string) *ApiErrorResponse {
	return newAPIError(http.StatusBadGateway, "payment_authorization_failed", message, code)
}

func ErrPaymentCaptureFailed(code, message string) *ApiErrorResponse {
	return newAPIError(http.StatusBadGateway, "payment_capture_failed", message, code)
}

func ErrRefundFailed(code, message string) *ApiErrorResponse {
	return newAPIError(http.StatusBadGateway, "refund_failed", message, code)
}

func ErrInternalServer(cause error) *ApiErrorResponse {
	e := newAPIError(http.StatusInternalServerError, "internal_server_error", "Internal server error", "")
	e.cause = cause
	return e
}

// FromConnectorError translates a ConnectorError at the pipeline boundary
// into the ApiErrorResponse shape a handler can write, per the propagation
// policy in spec §7.
func FromConnectorError(err *ConnectorError) *ApiErrorResponse {
	switch err.Kind {
	case RequestTimeoutReceived:
		e := newAPIError(http.StatusGatewayTimeout, "request_timeout", "Connector request timed out", "")
		e.cause = err
		return e
	case WebhookSignatureNotFound, WebhookSourceVerificationFailed, WebhookVerificationSecretNotFound,
		WebhookReferenceIDNotFound, WebhookEventTypeNotFound, WebhookResourceObjectNotFound:
		e := newAPIError(http.StatusBadRequest, string(err.Kind), err.Message, "")
		e.cause = err
		return e
	default:
		e := ErrInternalServer(err)
		e.Details = err.Message
		return e
	}
}

// FromStorageError translates a StorageError at the pipeline boundary,
// per spec §7 ("StorageError::NotFound on intent lookup -> PaymentNotFound").
func FromStorageError(err *StorageError) *ApiErrorResponse {
	switch err.Kind {
	case DatabaseNotFound:
		e := ErrPaymentNotFound()
		e.cause = err
		return e
	default:
		e := ErrInternalServer(err)
		return e
	}
}

// IsAPIError reports whether err is (or wraps) an ApiErrorResponse.
func IsAPIError(err error) bool {
	var apiErr *ApiErrorResponse
	return errors.As(err, &apiErr)
}

// GetAPIError extracts the ApiErrorResponse from err, defaulting to an
// internal server error when err is of another kind entirely.
func GetAPIError(err error) *ApiErrorResponse {
	var apiErr *ApiErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternalServer(err)
}

// NO_ERROR_CODE and NO_ERROR_MESSAGE are the sentinel fallbacks spec §7
// names for acquirer error responses lacking a code/message.
const (
	NoErrorCode    = "NO_ERROR_CODE"
	NoErrorMessage = "NO_ERROR_MESSAGE"
)
