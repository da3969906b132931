package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetFailuresQueryHandler reads escalated process failures from the database.
//
// Example:
//
//	handler := NewGetFailuresQueryHandler(db)
//	query := NewGetFailuresQuery()
//
//	failures, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get failures: %v", err)
//	    return err
//	}
//
//	for _, f := range failures {
//	    fmt.Printf("%s  %s  %s\n", f.Timestamp, f.ProcessName, f.RelatedID)
//	}
type GetFailuresQueryHandler struct {
	db *gorm.DB
}

// NewGetFailuresQueryHandler creates a handler for failure backlog queries.
// Requires a GORM database connection for query execution.
func NewGetFailuresQueryHandler(db *gorm.DB) GetFailuresQueryHandler {
	return GetFailuresQueryHandler{db: db}
}

// Handle executes the query and returns all escalated failures ordered
// newest first. The payload column is excluded; operators fetch the raw
// order document through the order itself when they need it.
func (h GetFailuresQueryHandler) Handle(
	ctx context.Context,
	query GetFailuresQuery,
) ([]GetFailuresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	failures := make([]GetFailuresQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			related_id,
			process_name,
			details,
			timestamp
		FROM process_failures
		ORDER BY timestamp DESC, id DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var failure GetFailuresQueryResponse

		err = rows.Scan(
			&failure.ID,
			&failure.RelatedID,
			&failure.ProcessName,
			&failure.Details,
			&failure.Timestamp,
		)
		if err != nil {
			return nil, err
		}

		failures = append(failures, failure)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return failures, nil
}
