package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
	ErrOrderHistoryOrderIDIsRequired = errors.New("order id is required")
)

// GetOrderHistoryQuery retrieves the full status ledger of one order.
// Returns every recorded transition in ledger order for auditing and
// operator review.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery("BB-1001")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderHistoryQueryHandler(db)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//
//	for _, event := range history {
//	    fmt.Printf("%s  %s  %s\n", event.Timestamp, event.Status, event.Note)
//	}
type GetOrderHistoryQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's status ledger.
func NewGetOrderHistoryQuery(orderID string) (GetOrderHistoryQuery, error) {
	if orderID == "" {
		return GetOrderHistoryQuery{}, ErrOrderHistoryOrderIDIsRequired
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the marketplace order identifier being queried.
func (q GetOrderHistoryQuery) OrderID() string {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse represents one status ledger event. The Seq
// field carries the insertion order and breaks ties between events sharing
// a timestamp.
type GetOrderHistoryQueryResponse struct {
	Seq       int64
	Status    order.Status
	Note      string
	Timestamp time.Time
}
