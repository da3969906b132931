package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusEvent is one ledger row in an order history response.
type StatusEvent struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Failure is one escalated failure in the backlog response.
type Failure struct {
	ID          int64     `json:"id"`
	OrderID     string    `json:"order_id"`
	ProcessName string    `json:"process_name"`
	Details     string    `json:"details"`
	Timestamp   time.Time `json:"timestamp"`
}

// Server exposes the operator read surface and the manual release action.
// It coordinates between HTTP handlers and application use cases; all
// pipeline work itself runs on the job scheduler, not through this API.
type Server struct {
	// Command handlers
	releaseShipmentHandler commands.ReleaseShipmentCommandHandler

	// Query handlers
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
	getFailuresHandler     queries.GetFailuresQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	releaseShipmentHandler commands.ReleaseShipmentCommandHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getFailuresHandler queries.GetFailuresQueryHandler,
) *Server {
	return &Server{
		releaseShipmentHandler: releaseShipmentHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
		getFailuresHandler:     getFailuresHandler,
	}
}

// RegisterRoutes attaches the server's endpoints to an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/orders/:id/history", s.GetOrderHistory)
	e.GET("/api/v1/failures", s.GetFailures)
	e.POST("/api/v1/orders/:id/release", s.ReleaseShipment)
}

// GetHealth handles GET /health - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the full
// status ledger of one order, oldest event first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	query, err := queries.NewGetOrderHistoryQuery(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order history",
		})
	}

	response := make([]StatusEvent, len(history))
	for i, event := range history {
		response[i] = StatusEvent{
			Status:    string(event.Status),
			Note:      event.Note,
			Timestamp: event.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetFailures handles GET /api/v1/failures - returns the escalated failure
// backlog, newest first.
func (s *Server) GetFailures(ctx echo.Context) error {
	query := queries.NewGetFailuresQuery()

	failures, err := s.getFailuresHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve failures",
		})
	}

	response := make([]Failure, len(failures))
	for i, failure := range failures {
		response[i] = Failure{
			ID:          failure.ID,
			OrderID:     failure.RelatedID,
			ProcessName: failure.ProcessName,
			Details:     failure.Details,
			Timestamp:   failure.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReleaseShipment handles POST /api/v1/orders/:id/release - voids the failed
// carrier shipment of an order and returns the order to the shippable set.
func (s *Server) ReleaseShipment(ctx echo.Context) error {
	cmd, err := commands.NewReleaseShipmentCommand(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	if handleErr := s.releaseShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrValidation):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order is not in a releasable state: " + handleErr.Error(),
			})
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order or shipment not found",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to release shipment",
			})
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}
