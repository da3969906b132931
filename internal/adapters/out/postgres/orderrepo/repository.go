package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// latestStatusCTE ranks each order's ledger events newest first. rn = 1 is
// the current status; timestamp ties are broken by insertion order (id).
const latestStatusCTE = `
	WITH latest_status AS (
		SELECT
			order_id,
			status,
			ROW_NUMBER() OVER (PARTITION BY order_id ORDER BY timestamp DESC, id DESC) AS rn
		FROM order_status_history
	)
`

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database. Ingestion boundary only.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by its marketplace identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// AppendStatus inserts one immutable ledger event. There is no corresponding
// update or delete; re-running a stage can only ever add newer events.
func (r *GormOrderRepository) AppendStatus(ctx context.Context, orderID string, status order.Status, note string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	if err := status.Validate(); err != nil {
		return err
	}

	dto := StatusEventDTO{
		OrderID: orderID,
		Status:  status.String(),
		Notes:   note,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// CurrentStatus derives the order's current status from its latest ledger
// event.
func (r *GormOrderRepository) CurrentStatus(ctx context.Context, orderID string) (order.Status, error) {
	if orderID == "" {
		return "", errs.NewValueIsRequiredError("orderID")
	}

	var dto StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp DESC, id DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("status of order", orderID)
		}
		return "", err
	}

	return order.Status(dto.Status), nil
}

// History returns the full ledger for an order, oldest first.
func (r *GormOrderRepository) History(ctx context.Context, orderID string) ([]order.StatusEvent, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, eventToDomain(dto))
	}
	return events, nil
}

// SelectByCurrentStatus retrieves all orders whose latest ledger event
// carries the given status.
func (r *GormOrderRepository) SelectByCurrentStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Raw(latestStatusCTE+`
		SELECT o.*
		FROM orders o
		JOIN latest_status ls ON o.order_id = ls.order_id
		WHERE ls.rn = 1 AND ls.status = ?
		ORDER BY o.order_id
	`, status.String()).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// SelectShippable retrieves orders whose current status is Accepted and
// which have no shipment claim. The LEFT JOIN / IS NULL predicate is what
// keeps failed shipments from being re-selected automatically.
func (r *GormOrderRepository) SelectShippable(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Raw(latestStatusCTE+`
		SELECT o.*
		FROM orders o
		JOIN latest_status ls ON o.order_id = ls.order_id
		LEFT JOIN shipments s ON o.order_id = s.order_id
		WHERE ls.rn = 1 AND ls.status = ? AND s.id IS NULL
		ORDER BY o.order_id
	`, order.Accepted.String()).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
