// internal/services/audit_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/utils"
)

// AuditEntry is one reconciliation outcome reported by an editor.
type AuditEntry struct {
	Collection models.Collection
	Action     string
	ResourceID string
	Outcome    models.ReconcileOutcome
	Err        error
	// Keys are the collection's item keys after the change.
	Keys []string
}

type Auditor interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService persists reconciliation outcomes. Writes happen off the
// request path; a nil database turns it into a logger.
type AuditService struct {
	db      *gorm.DB
	timeout time.Duration
	log     *logrus.Entry
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db:      db,
		timeout: 5 * time.Second,
		log:     logrus.WithField("component", "audit"),
	}
}

func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	requestID := RequestIDFromContext(ctx)
	fields := logrus.Fields{
		"collection": entry.Collection,
		"action":     entry.Action,
		"resource":   entry.ResourceID,
		"outcome":    entry.Outcome,
		"request_id": requestID,
	}
	if entry.Err != nil {
		s.log.WithFields(fields).WithError(entry.Err).Warn("Homepage change not applied")
	} else {
		s.log.WithFields(fields).Info("Homepage change reconciled")
	}

	if s.db == nil {
		return
	}

	record := &models.AuditLog{
		Collection: entry.Collection,
		Action:     entry.Action,
		ResourceID: entry.ResourceID,
		Outcome:    entry.Outcome,
		RequestID:  requestID,
		ProductIDs: entry.Keys,
		Details: models.JSONB{
			"item_count": len(entry.Keys),
		},
	}
	if entry.Err != nil {
		record.Error = entry.Err.Error()
		var netErr *NetworkError
		if errors.As(entry.Err, &netErr) {
			record.Details["upstream_status"] = netErr.StatusCode
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
			s.log.WithError(err).Error("Failed to write audit log")
		}
	}()
}

// List returns audit records, newest first by default.
func (s *AuditService) List(ctx context.Context, params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	if s.db == nil {
		return []models.AuditLog{}, 0, nil
	}

	query := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if params.Collection != "" {
		query = query.Where("collection = ?", params.Collection)
	}
	if params.Outcome != "" {
		query = query.Where("outcome = ?", params.Outcome)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "collection", "action", "outcome"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
