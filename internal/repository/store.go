package repository

import (
	"database/sql"
	"log/slog"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

// Store provides a unified interface for all repository operations with
// transaction support. It implements domain.Store.
type Store struct {
	executor SQLExecutor
	logger   *slog.Logger
}

var _ domain.Store = (*Store)(nil)

// NewStore creates a new Store instance
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		executor: db,
		logger:   logger,
	}
}

func (s *Store) Customers() domain.CustomerRepository {
	return NewCustomerRepository(s.executor, s.logger)
}

func (s *Store) Merchants() domain.MerchantRepository {
	return NewMerchantRepository(s.executor, s.logger)
}

func (s *Store) Transactions() domain.TransactionRepository {
	return NewTransactionRepository(s.executor, s.logger)
}

func (s *Store) Users() domain.UserRepository {
	return NewUserRepository(s.executor, s.logger)
}

func (s *Store) AuditLogs() domain.AuditLogRepository {
	return NewAuditLogRepository(s.executor, s.logger)
}

// WithTransaction executes a function within a database transaction. Row
// locks taken by ForUpdate reads inside fn hold until commit or rollback.
func (s *Store) WithTransaction(fn func(domain.Store) error) error {
	// Only sql.DB can begin transactions; nested units reuse the outer one.
	db, ok := s.executor.(*sql.DB)
	if !ok {
		return fn(s)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to begin transaction").WithDetails(err.Error())
	}

	txStore := &Store{
		executor: &TxWrapper{Tx: tx},
		logger:   s.logger,
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewAppError(errors.InternalError, "failed to commit transaction").WithDetails(err.Error())
	}
	return nil
}
