package service

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type TransactionService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewTransactionService(store domain.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

type CreateTransactionRequest struct {
	MerchantID     int64
	CustomerID     int64
	Amount         decimal.Decimal
	Currency       string
	HashCreditCard string
}

// CreateTransaction records a new pending transaction and assigns it a fresh
// opaque token. The card hash is snapshotted here; processing compares it
// against the customer's hash at processing time.
func (s *TransactionService) CreateTransaction(req *CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if len(req.Currency) != 3 {
		return nil, errors.NewAppError(errors.InvalidInput, "currency must be a 3-character code")
	}
	if req.HashCreditCard == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "hash_credit_card is required")
	}

	customer, err := s.store.Customers().GetCustomerByID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.ErrCustomerNotFound
	}

	merchant, err := s.store.Merchants().GetMerchantByID(req.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, errors.ErrMerchantNotFound
	}

	tx := &domain.Transaction{
		MerchantID:     req.MerchantID,
		CustomerID:     req.CustomerID,
		Amount:         req.Amount,
		Currency:       strings.ToUpper(req.Currency),
		State:          domain.StatePending,
		HashCreditCard: req.HashCreditCard,
		Token:          uuid.NewString(),
	}

	if err := s.store.Transactions().CreateTransaction(tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		"transaction_id", tx.ID,
		"token", tx.Token,
		"merchant_id", tx.MerchantID,
		"customer_id", tx.CustomerID,
		"amount", tx.Amount,
		"currency", tx.Currency)
	return tx, nil
}

func (s *TransactionService) GetTransactionByID(id int64) (*domain.Transaction, error) {
	tx, err := s.store.Transactions().GetTransactionByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.ErrTransactionNotFound
	}
	return tx, nil
}

func (s *TransactionService) GetTransactionByToken(token string) (*domain.Transaction, error) {
	tx, err := s.store.Transactions().GetTransactionByToken(token)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.ErrTransactionNotFound
	}
	return tx, nil
}

func (s *TransactionService) GetTransactionsByMerchantID(merchantID int64) ([]domain.Transaction, error) {
	return s.store.Transactions().GetTransactionsByMerchantID(merchantID)
}

func (s *TransactionService) GetTransactionsByCustomerID(customerID int64) ([]domain.Transaction, error) {
	return s.store.Transactions().GetTransactionsByCustomerID(customerID)
}

// UpdateTransaction merges the named fields into an existing transaction.
// The token and timestamps are never client-writable.
func (s *TransactionService) UpdateTransaction(id int64, update *domain.TransactionUpdate) (*domain.Transaction, error) {
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
	}
	if update.Currency != nil && len(*update.Currency) != 3 {
		return nil, errors.NewAppError(errors.InvalidInput, "currency must be a 3-character code")
	}

	tx, err := s.store.Transactions().GetTransactionByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.ErrTransactionNotFound
	}

	update.ApplyTo(tx)
	if err := s.store.Transactions().SaveTransaction(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return errors.ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return errors.ErrInvalidAmount.WithDetails("at most two decimal places are allowed")
	}
	return nil
}
