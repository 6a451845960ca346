package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type MerchantService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewMerchantService(store domain.Store, logger *slog.Logger) *MerchantService {
	return &MerchantService{
		store:  store,
		logger: logger,
	}
}

type CreateMerchantRequest struct {
	Name              string
	Email             string
	AuthenticationKey string
	AmountAccount     decimal.Decimal
	IsActive          *bool
}

func (s *MerchantService) CreateMerchant(req *CreateMerchantRequest) (*domain.Merchant, error) {
	if req.Name == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "name is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.AuthenticationKey == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "authentication_key is required")
	}
	if req.AmountAccount.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidAmount, "initial amount_account must not be negative")
	}

	merchant := &domain.Merchant{
		Name:              req.Name,
		Email:             req.Email,
		IsActive:          true,
		AuthenticationKey: req.AuthenticationKey,
		AmountAccount:     req.AmountAccount,
	}
	if req.IsActive != nil {
		merchant.IsActive = *req.IsActive
	}

	if err := s.store.Merchants().CreateMerchant(merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

func (s *MerchantService) GetMerchant(id int64) (*domain.Merchant, error) {
	merchant, err := s.store.Merchants().GetMerchantByID(id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, errors.ErrMerchantNotFound
	}
	return merchant, nil
}

func (s *MerchantService) ListMerchants(offset, limit int) ([]domain.Merchant, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Merchants().ListMerchants(offset, limit)
}

func (s *MerchantService) UpdateMerchant(id int64, update *domain.MerchantUpdate) (*domain.Merchant, error) {
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	if update.AmountAccount != nil && update.AmountAccount.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidAmount, "amount_account must not be negative")
	}

	merchant, err := s.store.Merchants().GetMerchantByID(id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, errors.ErrMerchantNotFound
	}

	update.ApplyTo(merchant)
	if err := s.store.Merchants().SaveMerchant(merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}
