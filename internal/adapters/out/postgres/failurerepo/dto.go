package failurerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/audit"
)

// FailureDTO is the persistence model for an escalated process failure.
type FailureDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	RelatedID   string    `gorm:"index"`
	ProcessName string    `gorm:"not null"`
	Details     string    `gorm:"type:text"`
	Payload     string    `gorm:"type:text"`
	Timestamp   time.Time `gorm:"index;not null"`
}

// TableName returns the name of the table in the database.
func (FailureDTO) TableName() string {
	return "process_failures"
}

func fromDomain(failure audit.Failure) FailureDTO {
	ts := failure.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return FailureDTO{
		RelatedID:   failure.RelatedID,
		ProcessName: failure.ProcessName,
		Details:     failure.Details,
		Payload:     failure.Payload,
		Timestamp:   ts,
	}
}
