package auditrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/audit"
)

// APICallDTO is the persistence model for one audited external call.
type APICallDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Service        string    `gorm:"not null"`
	Operation      string    `gorm:"not null"`
	RelatedID      string    `gorm:"index"`
	RequestPayload string    `gorm:"type:text"`
	ResponseBody   string    `gorm:"type:text"`
	StatusCode     int
	Success        bool      `gorm:"not null"`
	Timestamp      time.Time `gorm:"index;not null"`
}

// TableName returns the name of the table in the database.
func (APICallDTO) TableName() string {
	return "api_calls"
}

func fromDomain(call audit.APICall) APICallDTO {
	ts := call.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return APICallDTO{
		Service:        call.Service,
		Operation:      call.Operation,
		RelatedID:      call.RelatedID,
		RequestPayload: call.RequestPayload,
		ResponseBody:   call.ResponseBody,
		StatusCode:     call.StatusCode,
		Success:        call.Success,
		Timestamp:      ts,
	}
}
