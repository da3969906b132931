package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the status ledger of one order straight
// from the database. The read side bypasses the repositories on purpose: it
// returns plain rows, not rehydrated aggregates.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery("BB-1001")
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order history: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d ledger events\n", len(history))
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the order's ledger events in
// recording order, oldest first. An order with no ledger yields an empty
// slice, not an error.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			notes,
			timestamp
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY timestamp, id
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetOrderHistoryQueryResponse
		var status string

		err = rows.Scan(
			&event.Seq,
			&status,
			&event.Note,
			&event.Timestamp,
		)
		if err != nil {
			return nil, err
		}

		event.Status = order.Status(status)
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
