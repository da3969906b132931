// Package failurerepo persists escalated failures awaiting operator review.
package failurerepo

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormFailureSink implements FailureSink using GORM.
type GormFailureSink struct {
	db *gorm.DB
}

// NewGormFailureSink creates a new GORM failure sink.
func NewGormFailureSink(db *gorm.DB) *GormFailureSink {
	return &GormFailureSink{db: db}
}

// Escalate stores a failure record for manual intervention.
func (s *GormFailureSink) Escalate(ctx context.Context, failure audit.Failure) error {
	dto := fromDomain(failure)
	return s.db.WithContext(ctx).Create(&dto).Error
}
