package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type transactionRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewTransactionRepository(db SQLExecutor, logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

const transactionColumns = `id, merchant_id, customer_id, amount, currency, state, hash_credit_card, token, created_at, updated_at`

func (r *transactionRepository) CreateTransaction(tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions
		(merchant_id, customer_id, amount, currency, state, hash_credit_card, token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		tx.MerchantID,
		tx.CustomerID,
		tx.Amount.String(),
		tx.Currency,
		tx.State,
		tx.HashCreditCard,
		tx.Token,
		now,
		now,
	).Scan(&tx.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation on token
			r.logger.Warn("Duplicate transaction token", "token", tx.Token)
			return errors.NewAppError(errors.InternalError, "transaction token collision").WithDetails(err.Error())
		}
		r.logger.Error("Failed to create transaction",
			"merchant_id", tx.MerchantID,
			"customer_id", tx.CustomerID,
			"amount", tx.Amount,
			"error", err)
		return errors.NewAppError(errors.InternalError, "failed to create transaction").WithDetails(err.Error())
	}

	tx.CreatedAt = now
	tx.UpdatedAt = now
	r.logger.Info("Transaction created", "transaction_id", tx.ID, "token", tx.Token)
	return nil
}

func (r *transactionRepository) GetTransactionByID(id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(query, id)
}

func (r *transactionRepository) GetTransactionByToken(token string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE token = $1`
	return r.scanTransaction(query, token)
}

func (r *transactionRepository) GetTransactionByTokenForUpdate(token string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE token = $1 FOR UPDATE`
	return r.scanTransaction(query, token)
}

func (r *transactionRepository) scanTransaction(query string, arg interface{}) (*domain.Transaction, error) {
	var tx domain.Transaction
	var amountStr string

	err := r.db.QueryRow(query, arg).Scan(
		&tx.ID,
		&tx.MerchantID,
		&tx.CustomerID,
		&amountStr,
		&tx.Currency,
		&tx.State,
		&tx.HashCreditCard,
		&tx.Token,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get transaction", "arg", arg, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get transaction").WithDetails(err.Error())
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse amount").WithDetails(err.Error())
	}
	tx.Amount = amount

	return &tx, nil
}

func (r *transactionRepository) GetTransactionsByMerchantID(merchantID int64) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE merchant_id = $1 ORDER BY id`
	return r.listTransactions(query, merchantID)
}

func (r *transactionRepository) GetTransactionsByCustomerID(customerID int64) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE customer_id = $1 ORDER BY id`
	return r.listTransactions(query, customerID)
}

func (r *transactionRepository) listTransactions(query string, arg interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		r.logger.Error("Failed to list transactions", "arg", arg, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var amountStr string
		if err := rows.Scan(
			&tx.ID,
			&tx.MerchantID,
			&tx.CustomerID,
			&amountStr,
			&tx.Currency,
			&tx.State,
			&tx.HashCreditCard,
			&tx.Token,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		); err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to scan transaction").WithDetails(err.Error())
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to parse amount").WithDetails(err.Error())
		}
		tx.Amount = amount
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to list transactions").WithDetails(err.Error())
	}
	return transactions, nil
}

func (r *transactionRepository) SaveTransaction(tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET merchant_id = $1, customer_id = $2, amount = $3, currency = $4, state = $5, hash_credit_card = $6, updated_at = $7
		WHERE id = $8
	`

	now := time.Now()
	result, err := r.db.Exec(
		query,
		tx.MerchantID,
		tx.CustomerID,
		tx.Amount.String(),
		tx.Currency,
		tx.State,
		tx.HashCreditCard,
		now,
		tx.ID,
	)
	if err != nil {
		r.logger.Error("Failed to save transaction", "transaction_id", tx.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to save transaction").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}
	if rowsAffected == 0 {
		return errors.ErrTransactionNotFound
	}

	tx.UpdatedAt = now
	r.logger.Info("Transaction saved", "transaction_id", tx.ID, "state", tx.State)
	return nil
}
