package service

import (
	"log/slog"
	"net/mail"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type CustomerService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewCustomerService(store domain.Store, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: logger,
	}
}

type CreateCustomerRequest struct {
	Name           string
	Email          string
	Address        string
	HashCreditCard string
	IsActive       *bool
}

func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest) (*domain.Customer, error) {
	if req.Name == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "name is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.HashCreditCard == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "hash_credit_card is required")
	}

	customer := &domain.Customer{
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		HashCreditCard: req.HashCreditCard,
		IsActive:       true,
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := s.store.Customers().CreateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(id int64) (*domain.Customer, error) {
	customer, err := s.store.Customers().GetCustomerByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(offset, limit int) ([]domain.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Customers().ListCustomers(offset, limit)
}

func (s *CustomerService) UpdateCustomer(id int64, update *domain.CustomerUpdate) (*domain.Customer, error) {
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}

	customer, err := s.store.Customers().GetCustomerByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.ErrCustomerNotFound
	}

	update.ApplyTo(customer)
	if err := s.store.Customers().SaveCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.NewAppError(errors.InvalidInput, "invalid email format").WithDetails(err.Error())
	}
	return nil
}
