package shipmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = pq.ErrorCode("23505")

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Claim inserts the shipment row. A unique-constraint rejection means a
// concurrent invocation already holds the claim and is reported as
// ports.ErrOrderAlreadyClaimed for the caller to skip the order.
func (r *GormShipmentRepository) Claim(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrOrderAlreadyClaimed
		}
		return err
	}
	return nil
}

// Update persists the label attachment onto an existing claim.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByOrderID retrieves the claim for an order.
func (r *GormShipmentRepository) GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment of order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a claim. Operator release flow only.
func (r *GormShipmentRepository) Delete(ctx context.Context, orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	result := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&ShipmentDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment of order", orderID)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
