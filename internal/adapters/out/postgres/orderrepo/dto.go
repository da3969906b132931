// Package orderrepo provides data transfer objects and mapping functions for
// order persistence, including the append-only status ledger. The ledger
// table is insert-only: the repository exposes no update or delete for it.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting orders. The raw
// marketplace document is stored as jsonb and never rewritten by the engine.
type OrderDTO struct {
	OrderID      string `gorm:"primaryKey"`
	RawOrderData []byte `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusEventDTO represents one row of the append-only status ledger. Rows
// are inserted and read, never updated or deleted. The id sequence provides
// the tie-break for events sharing a timestamp.
type StatusEventDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"index;not null"`
	Status    string `gorm:"not null"`
	Notes     string
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the database table name for the status ledger.
func (StatusEventDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(ord *order.Order) OrderDTO {
	return OrderDTO{
		OrderID:      ord.ID(),
		RawOrderData: ord.RawPayload(),
		CreatedAt:    ord.CreatedAt(),
		UpdatedAt:    ord.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(dto.OrderID, dto.RawOrderData, dto.CreatedAt, dto.UpdatedAt)
}

func eventToDomain(dto StatusEventDTO) order.StatusEvent {
	return order.StatusEvent{
		Seq:       dto.ID,
		OrderID:   dto.OrderID,
		Status:    order.Status(dto.Status),
		Note:      dto.Notes,
		Timestamp: dto.Timestamp,
	}
}
