package connector

import "github.com/paylinkhq/router-core/internal/domain/valueobjects"

// CardDetails is the neutral card shape operations pass into Authorize and
// Verify requests. An adapter maps this onto whatever wire shape its
// acquirer expects.
type CardDetails struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
	HolderName  string
}

// AuthorizeRequest is the neutral request DTO for the Authorize flow
// (spec §4.1, §4.2).
type AuthorizeRequest struct {
	PaymentID         string
	CustomerID        string
	Amount            int64
	Currency          valueobjects.Currency
	CaptureMethod     valueobjects.CaptureMethod
	PaymentMethodType string
	Card              *CardDetails
	MandateID         *string
	OffSession        bool
	Metadata          map[string]string
}

// AuthorizeResponse is the neutral response DTO handle_response produces
// for Authorize.
type AuthorizeResponse struct {
	ConnectorTransactionID string
	Status                 valueobjects.AttemptStatus
	RedirectURL            *string
	MandateReference       *string
}

// CaptureRequest is the neutral request DTO for the Capture flow.
type CaptureRequest struct {
	ConnectorTransactionID string
	AmountToCapture        int64
	Currency               valueobjects.Currency
}

// CaptureResponse is the neutral response DTO for Capture.
type CaptureResponse struct {
	ConnectorTransactionID string
	Status                 valueobjects.AttemptStatus
}

// PSyncRequest is the neutral request DTO for the PSync flow.
type PSyncRequest struct {
	ConnectorTransactionID string
}

// PSyncResponse is the neutral response DTO for PSync.
type PSyncResponse struct {
	ConnectorTransactionID string
	Status                 valueobjects.AttemptStatus
}

// VoidRequest is the neutral request DTO for the Void flow.
type VoidRequest struct {
	ConnectorTransactionID string
}

// VoidResponse is the neutral response DTO for Void.
type VoidResponse struct {
	ConnectorTransactionID string
	Status                 valueobjects.AttemptStatus
}

// VerifyRequest is the neutral request DTO for the Verify flow: a
// zero-amount setup intended to produce a reusable mandate rather than move
// money.
type VerifyRequest struct {
	CustomerID        string
	Currency          valueobjects.Currency
	PaymentMethodType string
	Card              *CardDetails
}

// VerifyResponse is the neutral response DTO for Verify.
type VerifyResponse struct {
	ConnectorTransactionID string
	MandateReference       *string
	Status                 valueobjects.AttemptStatus
}

// RefundExecuteRequest is the neutral request DTO for the RefundExecute
// flow.
type RefundExecuteRequest struct {
	ConnectorTransactionID string
	RefundID               string
	RefundAmount           int64
	Currency               valueobjects.Currency
}

// RefundExecuteResponse is the neutral response DTO for RefundExecute.
type RefundExecuteResponse struct {
	ConnectorRefundID string
	Status            valueobjects.RefundStatus
}

// RefundSyncRequest is the neutral request DTO for the RefundSync flow.
type RefundSyncRequest struct {
	ConnectorRefundID string
}

// RefundSyncResponse is the neutral response DTO for RefundSync.
type RefundSyncResponse struct {
	ConnectorRefundID string
	Status            valueobjects.RefundStatus
}

// The seven flow-scoped aliases below instantiate FlowConnector for each
// flow named in spec §4.1's table, rather than forcing every adapter
// method to juggle a single do-everything interface.
type (
	AuthorizeConnector     = FlowConnector[AuthorizeRequest, AuthorizeResponse]
	CaptureConnector       = FlowConnector[CaptureRequest, CaptureResponse]
	PSyncConnector         = FlowConnector[PSyncRequest, PSyncResponse]
	VoidConnector          = FlowConnector[VoidRequest, VoidResponse]
	VerifyConnector        = FlowConnector[VerifyRequest, VerifyResponse]
	RefundExecuteConnector = FlowConnector[RefundExecuteRequest, RefundExecuteResponse]
	RefundSyncConnector    = FlowConnector[RefundSyncRequest, RefundSyncResponse]
)
