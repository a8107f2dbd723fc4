package operations

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/paylinkhq/router-core/internal/domain/entities"
)

type mockIntents struct{ mock.Mock }

func (m *mockIntents) Create(ctx context.Context, intent *entities.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}
func (m *mockIntents) Update(ctx context.Context, intent *entities.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}
func (m *mockIntents) FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*entities.PaymentIntent, error) {
	args := m.Called(ctx, paymentID, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentIntent), args.Error(1)
}

type mockAttempts struct{ mock.Mock }

func (m *mockAttempts) Create(ctx context.Context, attempt *entities.PaymentAttempt) error {
	return m.Called(ctx, attempt).Error(0)
}
func (m *mockAttempts) Update(ctx context.Context, attempt *entities.PaymentAttempt) error {
	return m.Called(ctx, attempt).Error(0)
}
func (m *mockAttempts) FindLatestByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*entities.PaymentAttempt, error) {
	args := m.Called(ctx, paymentID, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentAttempt), args.Error(1)
}
func (m *mockAttempts) FindByTxnID(ctx context.Context, txnID string) (*entities.PaymentAttempt, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentAttempt), args.Error(1)
}
func (m *mockAttempts) FindByConnectorTransactionID(ctx context.Context, connectorTransactionID string) (*entities.PaymentAttempt, error) {
	args := m.Called(ctx, connectorTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentAttempt), args.Error(1)
}

type mockConnectorResponses struct{ mock.Mock }

func (m *mockConnectorResponses) Upsert(ctx context.Context, response *entities.ConnectorResponse) error {
	return m.Called(ctx, response).Error(0)
}
func (m *mockConnectorResponses) FindByTxnID(ctx context.Context, paymentID, merchantID, txnID string) (*entities.ConnectorResponse, error) {
	args := m.Called(ctx, paymentID, merchantID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ConnectorResponse), args.Error(1)
}

type mockRefunds struct{ mock.Mock }

func (m *mockRefunds) Create(ctx context.Context, refund *entities.Refund) error {
	return m.Called(ctx, refund).Error(0)
}
func (m *mockRefunds) Update(ctx context.Context, refund *entities.Refund) error {
	return m.Called(ctx, refund).Error(0)
}
func (m *mockRefunds) FindByInternalReferenceID(ctx context.Context, internalReferenceID string) (*entities.Refund, error) {
	args := m.Called(ctx, internalReferenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Refund), args.Error(1)
}
func (m *mockRefunds) FindByMerchantIDRefundID(ctx context.Context, merchantID, refundID string) (*entities.Refund, error) {
	args := m.Called(ctx, merchantID, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Refund), args.Error(1)
}
func (m *mockRefunds) FindByPgRefundID(ctx context.Context, pgRefundID string) (*entities.Refund, error) {
	args := m.Called(ctx, pgRefundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Refund), args.Error(1)
}
func (m *mockRefunds) ListByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) ([]*entities.Refund, error) {
	args := m.Called(ctx, paymentID, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Refund), args.Error(1)
}
func (m *mockRefunds) ListByTransactionID(ctx context.Context, transactionID string) ([]*entities.Refund, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Refund), args.Error(1)
}

type mockMandates struct{ mock.Mock }

func (m *mockMandates) Create(ctx context.Context, mandate *entities.Mandate) error {
	return m.Called(ctx, mandate).Error(0)
}
func (m *mockMandates) Update(ctx context.Context, mandate *entities.Mandate) error {
	return m.Called(ctx, mandate).Error(0)
}
func (m *mockMandates) FindByMerchantIDMandateID(ctx context.Context, merchantID, mandateID string) (*entities.Mandate, error) {
	args := m.Called(ctx, merchantID, mandateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mandate), args.Error(1)
}
func (m *mockMandates) ListByMerchantIDCustomerID(ctx context.Context, merchantID, customerID string) ([]*entities.Mandate, error) {
	args := m.Called(ctx, merchantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mandate), args.Error(1)
}

type mockTempCards struct{ mock.Mock }

func (m *mockTempCards) Create(ctx context.Context, card *entities.TempCard) error {
	return m.Called(ctx, card).Error(0)
}
func (m *mockTempCards) FindByTxnID(ctx context.Context, txnID string) (*entities.TempCard, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TempCard), args.Error(1)
}
func (m *mockTempCards) FindByID(ctx context.Context, id int64) (*entities.TempCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TempCard), args.Error(1)
}
func (m *mockTempCards) DeleteByTxnID(ctx context.Context, txnID string) error {
	return m.Called(ctx, txnID).Error(0)
}

type mockMerchants struct{ mock.Mock }

func (m *mockMerchants) FindByMerchantID(ctx context.Context, merchantID string) (*entities.MerchantAccount, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MerchantAccount), args.Error(1)
}
