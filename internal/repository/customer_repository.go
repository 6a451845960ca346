package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type customerRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewCustomerRepository(db SQLExecutor, logger *slog.Logger) domain.CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *customerRepository) CreateCustomer(c *domain.Customer) error {
	query := `
		INSERT INTO customers (name, email, address, hash_credit_card, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		c.Name,
		c.Email,
		c.Address,
		c.HashCreditCard,
		c.IsActive,
		now,
		now,
	).Scan(&c.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			r.logger.Warn("Duplicate customer email", "email", c.Email)
			return errors.ErrDuplicateEmail
		}
		r.logger.Error("Failed to create customer", "email", c.Email, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create customer").WithDetails(err.Error())
	}

	c.CreatedAt = now
	c.UpdatedAt = now
	r.logger.Info("Customer created", "customer_id", c.ID)
	return nil
}

func (r *customerRepository) GetCustomerByID(id int64) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, COALESCE(address, ''), hash_credit_card, is_active, created_at, updated_at
		FROM customers WHERE id = $1
	`

	var c domain.Customer
	err := r.db.QueryRow(query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Address,
		&c.HashCreditCard,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get customer", "customer_id", id, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get customer").WithDetails(err.Error())
	}

	return &c, nil
}

func (r *customerRepository) ListCustomers(offset, limit int) ([]domain.Customer, error) {
	query := `
		SELECT id, name, email, COALESCE(address, ''), hash_credit_card, is_active, created_at, updated_at
		FROM customers ORDER BY id OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(query, offset, limit)
	if err != nil {
		r.logger.Error("Failed to list customers", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list customers").WithDetails(err.Error())
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Address,
			&c.HashCreditCard,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to scan customer").WithDetails(err.Error())
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to list customers").WithDetails(err.Error())
	}
	return customers, nil
}

func (r *customerRepository) SaveCustomer(c *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, address = $3, hash_credit_card = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`

	now := time.Now()
	result, err := r.db.Exec(query, c.Name, c.Email, c.Address, c.HashCreditCard, c.IsActive, now, c.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.ErrDuplicateEmail
		}
		r.logger.Error("Failed to save customer", "customer_id", c.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to save customer").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}
	if rowsAffected == 0 {
		return errors.ErrCustomerNotFound
	}

	c.UpdatedAt = now
	return nil
}
