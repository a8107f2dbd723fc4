package errors

import "fmt"

// ConnectorErrorKind enumerates the ConnectorError variants named in spec §7.
type ConnectorErrorKind string

const (
	FailedToObtainAuthType         ConnectorErrorKind = "failed_to_obtain_auth_type"
	RequestEncodingFailed          ConnectorErrorKind = "request_encoding_failed"
	ResponseDeserializationFailed  ConnectorErrorKind = "response_deserialization_failed"
	ResponseHandlingFailed         ConnectorErrorKind = "response_handling_failed"
	FailedToObtainIntegrationURL   ConnectorErrorKind = "failed_to_obtain_integration_url"
	RequestTimeoutReceived         ConnectorErrorKind = "request_timeout_received"
	WebhookSignatureNotFound       ConnectorErrorKind = "webhook_signature_not_found"
	WebhookSourceVerificationFailed ConnectorErrorKind = "webhook_source_verification_failed"
	WebhookVerificationSecretNotFound ConnectorErrorKind = "webhook_verification_secret_not_found"
	WebhookReferenceIDNotFound     ConnectorErrorKind = "webhook_reference_id_not_found"
	WebhookEventTypeNotFound       ConnectorErrorKind = "webhook_event_type_not_found"
	WebhookResourceObjectNotFound  ConnectorErrorKind = "webhook_resource_object_not_found"
	Unimplemented                  ConnectorErrorKind = "unimplemented"
	TransportFailed                ConnectorErrorKind = "transport_failed"
)

// ConnectorError is raised by an adapter or the transport layer (spec §7).
// It never carries an HTTP status of its own — the pipeline boundary
// translates it into an ApiErrorResponse. Code carries the acquirer's own
// error code when Kind is ResponseHandlingFailed (an adapter-parsed
// ErrorResponse); it is empty for every other kind.
type ConnectorError struct {
	Kind    ConnectorErrorKind
	Code    string
	Message string
	Cause   error
}

func (e *ConnectorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ConnectorError) Unwrap() error {
	return e.Cause
}

// NewConnectorError constructs a ConnectorError, preserving the cause chain.
func NewConnectorError(kind ConnectorErrorKind, message string, cause error) *ConnectorError {
	return &ConnectorError{Kind: kind, Message: message, Cause: cause}
}

// NewAcquirerError constructs the ResponseHandlingFailed ConnectorError
// raised when the execution engine feeds a non-2xx body through an
// adapter's GetErrorResponse: code and message are the acquirer's own,
// carried as-is so the pipeline boundary can build the flow-specific
// ApiErrorResponse (PaymentAuthorizationFailed/PaymentCaptureFailed/
// RefundFailed) without losing which acquirer code caused it.
func NewAcquirerError(code, message string) *ConnectorError {
	return &ConnectorError{Kind: ResponseHandlingFailed, Code: code, Message: message}
}

// Is supports errors.Is comparison by kind, ignoring message/cause.
func (e *ConnectorError) Is(target error) bool {
	t, ok := target.(*ConnectorError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
