package repository

import (
	"log/slog"
	"time"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

type auditLogRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAuditLogRepository(db SQLExecutor, logger *slog.Logger) domain.AuditLogRepository {
	return &auditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *auditLogRepository) CreateAuditLog(entry *domain.AuditLog) error {
	query := `
		INSERT INTO audit_log (user_id, activity_type, bearer_token, ip_address, path, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	err := r.db.QueryRow(
		query,
		entry.UserID,
		entry.ActivityType,
		entry.BearerToken,
		entry.IPAddress,
		entry.Path,
		entry.Timestamp,
	).Scan(&entry.ID)

	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to create audit log").WithDetails(err.Error())
	}
	return nil
}
