// Package shipmentrepo provides persistence for shipment claims. The
// order_id uniqueness constraint declared here is the engine's duplicate
// prevention mechanism: claiming is an atomic insert-if-absent, never a
// check-then-insert.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for shipment claims.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         string    `gorm:"uniqueIndex;not null"`
	TrackingPin     *string   `gorm:"uniqueIndex"`
	LabelURL        *string
	LabelPath       *string
	CarrierResponse *string `gorm:"type:text"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:              s.ID(),
		OrderID:         s.OrderID(),
		TrackingPin:     s.TrackingPin(),
		LabelURL:        s.LabelURL(),
		LabelPath:       s.LabelPath(),
		CarrierResponse: s.CarrierResponse(),
		CreatedAt:       s.CreatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	return shipment.RestoreShipment(
		dto.ID,
		dto.OrderID,
		dto.TrackingPin,
		dto.LabelURL,
		dto.LabelPath,
		dto.CarrierResponse,
		dto.CreatedAt,
	)
}
