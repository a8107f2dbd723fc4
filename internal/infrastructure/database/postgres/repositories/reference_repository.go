package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/domain/repositories"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

type merchantAccountRepository struct {
	db *gorm.DB
}

// NewMerchantAccountRepository adapts gorm into repositories.MerchantAccountRepository.
func NewMerchantAccountRepository(db *gorm.DB) repositories.MerchantAccountRepository {
	return &merchantAccountRepository{db: db}
}

func (r *merchantAccountRepository) FindByMerchantID(ctx context.Context, merchantID string) (*entities.MerchantAccount, error) {
	var merchant entities.MerchantAccount
	err := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID).First(&merchant).Error
	if err != nil {
		return nil, translateErr(err, "merchant account not found")
	}
	return &merchant, nil
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository adapts gorm into repositories.CustomerRepository.
func NewCustomerRepository(db *gorm.DB) repositories.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByCustomerID(ctx context.Context, customerID string) (*entities.Customer, error) {
	var customer entities.Customer
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&customer).Error
	if err != nil {
		return nil, translateErr(err, "customer not found")
	}
	return &customer, nil
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository adapts gorm into repositories.AddressRepository.
func NewAddressRepository(db *gorm.DB) repositories.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) FindByID(ctx context.Context, id string) (*entities.Address, error) {
	addressID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierrors.NewStorageError(apierrors.DatabaseOthers, "invalid address id", err)
	}
	var address entities.Address
	if err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&address).Error; err != nil {
		return nil, translateErr(err, "address not found")
	}
	return &address, nil
}
