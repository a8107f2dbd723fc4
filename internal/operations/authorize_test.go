package operations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/connector/execution"
	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/valueobjects"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

func newTestMerchant() *entities.MerchantAccount {
	auth, _ := router.MarshalConnectorAuthType(router.HeaderKey{APIKey: "sk_test"})
	return &entities.MerchantAccount{
		MerchantID:        "merchant_1",
		DefaultConnector:  "stub",
		ConnectorAuthType: auth,
	}
}

func newTestDeps(t *testing.T, intents *mockIntents, attempts *mockAttempts, merchants *mockMerchants, tempCards *mockTempCards) *Dependencies {
	reg := connector.NewRegistry(&config.ConnectorsConfig{
		Entries: map[string]config.ConnectorEntry{"stub": {BaseURL: "http://stub.test"}},
	})
	connResponses := &mockConnectorResponses{}
	connResponses.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	return &Dependencies{
		Intents:            intents,
		Attempts:           attempts,
		Merchants:          merchants,
		TempCards:          tempCards,
		ConnectorResponses: connResponses,
		Registry:           reg,
		Engine:              execution.NewEngine(&config.HTTPClientConfig{}),
	}
}

func TestAuthorizeOperation_Success(t *testing.T) {
	intents := &mockIntents{}
	attempts := &mockAttempts{}
	merchants := &mockMerchants{}
	tempCards := &mockTempCards{}

	merchant := newTestMerchant()
	merchants.On("FindByMerchantID", mock.Anything, "merchant_1").Return(merchant, nil)
	intents.On("FindByPaymentIDMerchantID", mock.Anything, "pay_1", "merchant_1").
		Return(nil, apierrors.NewStorageError(apierrors.DatabaseNotFound, "not found", nil))
	intents.On("Create", mock.Anything, mock.AnythingOfType("*entities.PaymentIntent")).Return(nil)
	attempts.On("Create", mock.Anything, mock.AnythingOfType("*entities.PaymentAttempt")).Return(nil)
	attempts.On("Update", mock.Anything, mock.AnythingOfType("*entities.PaymentAttempt")).Return(nil)
	intents.On("Update", mock.Anything, mock.AnythingOfType("*entities.PaymentIntent")).Return(nil)
	tempCards.On("Create", mock.Anything, mock.AnythingOfType("*entities.TempCard")).Return(nil)

	deps := newTestDeps(t, intents, attempts, merchants, tempCards)
	srv := newStubServer(t, 200)
	stub := &stubAuthorize{
		serverURL:    srv.URL,
		nextResponse: connector.AuthorizeResponse{ConnectorTransactionID: "ch_123", Status: valueobjects.AttemptStatusCharged},
	}
	deps.Registry.Register("stub", connector.Adapter{Authorize: stub})

	op := NewAuthorizeOperation(deps)
	req := AuthorizePaymentRequest{
		PaymentID:         "pay_1",
		MerchantID:        "merchant_1",
		Amount:            1000,
		Currency:          "usd",
		PaymentMethodType: "card",
		Card: &CardInput{
			Number:      "4242424242424242",
			ExpiryMonth: "12",
			ExpiryYear:  "2030",
			CVC:         "123",
		},
	}

	attempt, err := op.Execute(context.Background(), req)
	assert.NoError(t, err)
	assert.NotNil(t, attempt)
	assert.Equal(t, valueobjects.AttemptStatusCharged, attempt.Status)
	assert.Equal(t, "ch_123", *attempt.ConnectorTransactionID)

	intents.AssertExpectations(t)
	attempts.AssertExpectations(t)
	merchants.AssertExpectations(t)
	tempCards.AssertExpectations(t)
}

func TestAuthorizeOperation_AcquirerFailure(t *testing.T) {
	intents := &mockIntents{}
	attempts := &mockAttempts{}
	merchants := &mockMerchants{}
	tempCards := &mockTempCards{}

	merchant := newTestMerchant()
	existingIntent := &entities.PaymentIntent{
		PaymentID:  "pay_2",
		MerchantID: "merchant_1",
		Status:     valueobjects.IntentStatusRequiresPaymentMethod,
		Amount:     500,
		Currency:   "USD",
	}
	merchants.On("FindByMerchantID", mock.Anything, "merchant_1").Return(merchant, nil)
	intents.On("FindByPaymentIDMerchantID", mock.Anything, "pay_2", "merchant_1").Return(existingIntent, nil)
	attempts.On("Create", mock.Anything, mock.AnythingOfType("*entities.PaymentAttempt")).Return(nil)
	attempts.On("Update", mock.Anything, mock.AnythingOfType("*entities.PaymentAttempt")).Return(nil)
	intents.On("Update", mock.Anything, mock.AnythingOfType("*entities.PaymentIntent")).Return(nil)

	deps := newTestDeps(t, intents, attempts, merchants, tempCards)
	srv := newStubServer(t, 402)
	stub := &stubAuthorize{
		serverURL:   srv.URL,
		nextErrResp: router.ErrorResponse{Code: "card_declined", Message: "Your card was declined."},
	}
	deps.Registry.Register("stub", connector.Adapter{Authorize: stub})

	op := NewAuthorizeOperation(deps)
	req := AuthorizePaymentRequest{
		PaymentID:         "pay_2",
		MerchantID:        "merchant_1",
		Amount:            500,
		Currency:          "usd",
		PaymentMethodType: "card",
	}

	attempt, err := op.Execute(context.Background(), req)
	assert.Nil(t, attempt)
	var apiErr *apierrors.ApiErrorResponse
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "payment_authorization_failed", apiErr.Kind)
	assert.Contains(t, apiErr.Message, "declined")

	intents.AssertExpectations(t)
	attempts.AssertExpectations(t)
	merchants.AssertExpectations(t)
}

func TestAuthorizeOperation_RejectsWhenIntentNotAwaitingAuthorization(t *testing.T) {
	intents := &mockIntents{}
	attempts := &mockAttempts{}
	merchants := &mockMerchants{}
	tempCards := &mockTempCards{}

	merchant := newTestMerchant()
	settledIntent := &entities.PaymentIntent{
		PaymentID:  "pay_3",
		MerchantID: "merchant_1",
		Status:     valueobjects.IntentStatusSucceeded,
		Amount:     500,
		Currency:   "USD",
	}
	merchants.On("FindByMerchantID", mock.Anything, "merchant_1").Return(merchant, nil)
	intents.On("FindByPaymentIDMerchantID", mock.Anything, "pay_3", "merchant_1").Return(settledIntent, nil)

	deps := newTestDeps(t, intents, attempts, merchants, tempCards)

	op := NewAuthorizeOperation(deps)
	req := AuthorizePaymentRequest{
		PaymentID:         "pay_3",
		MerchantID:        "merchant_1",
		Amount:            500,
		Currency:          "usd",
		PaymentMethodType: "card",
	}

	attempt, err := op.Execute(context.Background(), req)
	assert.Nil(t, attempt)
	var apiErr *apierrors.ApiErrorResponse
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid_request_data", apiErr.Kind)

	attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthorizeOperation_RejectsMissingRequiredFields(t *testing.T) {
	deps := newTestDeps(t, &mockIntents{}, &mockAttempts{}, &mockMerchants{}, &mockTempCards{})
	op := NewAuthorizeOperation(deps)

	_, err := op.Execute(context.Background(), AuthorizePaymentRequest{})
	var apiErr *apierrors.ApiErrorResponse
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid_request_data", apiErr.Kind)
}
