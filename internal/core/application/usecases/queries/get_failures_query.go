package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetFailuresQueryIsNotConstructed = errors.New(
		"GetFailuresQuery must be created via NewGetFailuresQuery constructor",
	)
)

// GetFailuresQuery retrieves escalated process failures, newest first.
// Operators work this list to decide which orders to release back into
// the pipeline or to settle by hand.
//
// Example:
//
//	query := NewGetFailuresQuery()
//	handler := NewGetFailuresQueryHandler(db)
//
//	failures, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get failures: %w", err)
//	}
//
//	fmt.Printf("Found %d escalated failures\n", len(failures))
type GetFailuresQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFailuresQuery creates a query to retrieve escalated failures.
// This is a parameterless query that fetches the whole failure backlog.
func NewGetFailuresQuery() GetFailuresQuery {
	return GetFailuresQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFailuresQueryIsNotConstructed if validation fails.
func (q GetFailuresQuery) Validate() error {
	return q.guard.Validate(ErrGetFailuresQueryIsNotConstructed)
}

// GetFailuresQueryResponse represents one escalated failure record.
type GetFailuresQueryResponse struct {
	ID          int64
	RelatedID   string
	ProcessName string
	Details     string
	Timestamp   time.Time
}
