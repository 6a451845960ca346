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

type merchantRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewMerchantRepository(db SQLExecutor, logger *slog.Logger) domain.MerchantRepository {
	return &merchantRepository{
		db:     db,
		logger: logger,
	}
}

func (r *merchantRepository) CreateMerchant(m *domain.Merchant) error {
	query := `
		INSERT INTO merchants (name, email, is_active, authentication_key, amount_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		m.Name,
		m.Email,
		m.IsActive,
		m.AuthenticationKey,
		m.AmountAccount.String(),
		now,
		now,
	).Scan(&m.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			r.logger.Warn("Duplicate merchant email", "email", m.Email)
			return errors.ErrDuplicateEmail
		}
		r.logger.Error("Failed to create merchant", "email", m.Email, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create merchant").WithDetails(err.Error())
	}

	m.CreatedAt = now
	m.UpdatedAt = now
	r.logger.Info("Merchant created", "merchant_id", m.ID)
	return nil
}

func (r *merchantRepository) GetMerchantByID(id int64) (*domain.Merchant, error) {
	query := `
		SELECT id, name, email, is_active, authentication_key, amount_account, created_at, updated_at
		FROM merchants WHERE id = $1
	`

	return r.scanMerchant(query, id)
}

func (r *merchantRepository) GetMerchantByIDForUpdate(id int64) (*domain.Merchant, error) {
	query := `
		SELECT id, name, email, is_active, authentication_key, amount_account, created_at, updated_at
		FROM merchants WHERE id = $1 FOR UPDATE
	`

	return r.scanMerchant(query, id)
}

func (r *merchantRepository) scanMerchant(query string, id int64) (*domain.Merchant, error) {
	var m domain.Merchant
	var amountStr string

	err := r.db.QueryRow(query, id).Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.IsActive,
		&m.AuthenticationKey,
		&amountStr,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get merchant", "merchant_id", id, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get merchant").WithDetails(err.Error())
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		r.logger.Error("Failed to parse merchant balance", "merchant_id", id, "balance_str", amountStr, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to parse merchant balance").WithDetails(err.Error())
	}

	m.AmountAccount = amount
	return &m, nil
}

func (r *merchantRepository) ListMerchants(offset, limit int) ([]domain.Merchant, error) {
	query := `
		SELECT id, name, email, is_active, authentication_key, amount_account, created_at, updated_at
		FROM merchants ORDER BY id OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(query, offset, limit)
	if err != nil {
		r.logger.Error("Failed to list merchants", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list merchants").WithDetails(err.Error())
	}
	defer rows.Close()

	var merchants []domain.Merchant
	for rows.Next() {
		var m domain.Merchant
		var amountStr string
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.IsActive,
			&m.AuthenticationKey,
			&amountStr,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to scan merchant").WithDetails(err.Error())
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to parse merchant balance").WithDetails(err.Error())
		}
		m.AmountAccount = amount
		merchants = append(merchants, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to list merchants").WithDetails(err.Error())
	}
	return merchants, nil
}

func (r *merchantRepository) SaveMerchant(m *domain.Merchant) error {
	query := `
		UPDATE merchants
		SET name = $1, email = $2, is_active = $3, authentication_key = $4, amount_account = $5, updated_at = $6
		WHERE id = $7
	`

	now := time.Now()
	result, err := r.db.Exec(query, m.Name, m.Email, m.IsActive, m.AuthenticationKey, m.AmountAccount.String(), now, m.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.ErrDuplicateEmail
		}
		r.logger.Error("Failed to save merchant", "merchant_id", m.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to save merchant").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}
	if rowsAffected == 0 {
		return errors.ErrMerchantNotFound
	}

	m.UpdatedAt = now
	r.logger.Info("Merchant saved", "merchant_id", m.ID, "amount_account", m.AmountAccount)
	return nil
}
