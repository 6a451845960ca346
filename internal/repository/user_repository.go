package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type userRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewUserRepository(db SQLExecutor, logger *slog.Logger) domain.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) CreateUser(u *domain.User) error {
	query := `
		INSERT INTO users (username, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(query, u.Username, u.Password, now, now).Scan(&u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			r.logger.Warn("Duplicate username", "username", u.Username)
			return errors.ErrDuplicateUser
		}
		r.logger.Error("Failed to create user", "username", u.Username, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create user").WithDetails(err.Error())
	}

	u.CreatedAt = now
	u.UpdatedAt = now
	r.logger.Info("User created", "user_id", u.ID)
	return nil
}

func (r *userRepository) GetUserByID(id int64) (*domain.User, error) {
	query := `SELECT id, username, password, created_at, updated_at FROM users WHERE id = $1`
	return r.scanUser(query, id)
}

func (r *userRepository) GetUserByUsername(username string) (*domain.User, error) {
	query := `SELECT id, username, password, created_at, updated_at FROM users WHERE username = $1`
	return r.scanUser(query, username)
}

func (r *userRepository) scanUser(query string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get user", "arg", arg, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get user").WithDetails(err.Error())
	}
	return &u, nil
}

func (r *userRepository) SaveUser(u *domain.User) error {
	query := `UPDATE users SET username = $1, password = $2, updated_at = $3 WHERE id = $4`

	now := time.Now()
	result, err := r.db.Exec(query, u.Username, u.Password, now, u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.ErrDuplicateUser
		}
		r.logger.Error("Failed to save user", "user_id", u.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to save user").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}
	if rowsAffected == 0 {
		return errors.ErrUserNotFound
	}

	u.UpdatedAt = now
	return nil
}

func (r *userRepository) CreateAccessToken(t *domain.AccessToken) error {
	query := `
		INSERT INTO tokens (access_token, token_type, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(query, t.AccessToken, t.TokenType, t.UserID, now, now).Scan(&t.ID)
	if err != nil {
		r.logger.Error("Failed to store access token", "user_id", t.UserID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to store access token").WithDetails(err.Error())
	}

	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

func (r *userRepository) GetAccessToken(token string) (*domain.AccessToken, error) {
	query := `SELECT id, access_token, token_type, user_id, created_at, updated_at FROM tokens WHERE access_token = $1`

	var t domain.AccessToken
	err := r.db.QueryRow(query, token).Scan(
		&t.ID,
		&t.AccessToken,
		&t.TokenType,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get access token", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get access token").WithDetails(err.Error())
	}
	return &t, nil
}
