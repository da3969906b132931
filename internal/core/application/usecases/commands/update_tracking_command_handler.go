package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateTrackingCommandHandler runs the tracking stage. For each order whose
// current status is label_created it submits the tracking pin to the
// marketplace and confirms the shipment, then the ledger moves to shipped.
//
// Submitting the tracking pin is idempotent at the marketplace, so the stage
// keeps no intermediate status between the two calls: a re-run after a crash
// simply submits the same pin again.
type UpdateTrackingCommandHandler struct {
	uowFactory  ShippingUoWFactory
	marketplace ports.MarketplaceClient
	auditLog    ports.AuditLog
	logger      *slog.Logger
}

// NewUpdateTrackingCommandHandler creates a handler for the tracking stage.
func NewUpdateTrackingCommandHandler(
	uowFactory ShippingUoWFactory,
	marketplace ports.MarketplaceClient,
	auditLog ports.AuditLog,
	logger *slog.Logger,
) UpdateTrackingCommandHandler {
	return UpdateTrackingCommandHandler{
		uowFactory:  uowFactory,
		marketplace: marketplace,
		auditLog:    auditLog,
		logger:      logger.With("component", "tracking"),
	}
}

// Handle processes the tracking command.
func (h *UpdateTrackingCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.uowFactory.Create().OrderRepository().SelectByCurrentStatus(ctx, order.LabelCreated)
	if err != nil {
		return err
	}

	h.logger.Info("tracking stage started", "orders", len(orders))

	for _, ord := range orders {
		h.handleOrder(ctx, ord)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

func (h *UpdateTrackingCommandHandler) handleOrder(ctx context.Context, ord *order.Order) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while updating tracking", "order_id", ord.ID(), "panic", r)
			_ = h.finalizeFailure(ctx, ord, fmt.Sprintf("unexpected panic during tracking update: %v", r))
		}
	}()

	if err := h.processOrder(ctx, ord); err != nil {
		h.logger.Error("tracking update failed", "order_id", ord.ID(), "error", err)
	}
}

func (h *UpdateTrackingCommandHandler) processOrder(ctx context.Context, ord *order.Order) error {
	claim, err := h.uowFactory.Create().ShipmentRepository().GetByOrderID(ctx, ord.ID())
	if err != nil {
		return h.finalizeFailure(ctx, ord, fmt.Sprintf("no shipment claim found: %s", err))
	}

	if !claim.HasLabel() {
		return h.finalizeFailure(ctx, ord, "shipment claim has no tracking pin")
	}

	pin := *claim.TrackingPin()

	exchange, trackErr := h.marketplace.SetTracking(ctx, ord.ID(), pin)
	h.recordCall(ctx, "SetTracking", ord.ID(), exchange, trackErr == nil)
	if trackErr != nil {
		return h.finalizeFailure(ctx, ord, fmt.Sprintf("tracking submission failed: %s", trackErr))
	}

	exchange, shipErr := h.marketplace.MarkShipped(ctx, ord.ID())
	h.recordCall(ctx, "MarkShipped", ord.ID(), exchange, shipErr == nil)
	if shipErr != nil {
		return h.finalizeFailure(ctx, ord, fmt.Sprintf("ship confirmation failed: %s", shipErr))
	}

	h.logger.Info("order shipped", "order_id", ord.ID(), "tracking_pin", pin)
	return h.appendStatus(ctx, ord.ID(), order.Shipped, fmt.Sprintf("tracking pin: %s", pin))
}

func (h *UpdateTrackingCommandHandler) appendStatus(ctx context.Context, orderID string, status order.Status, note string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().AppendStatus(ctx, orderID, status, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateTrackingCommandHandler) finalizeFailure(ctx context.Context, ord *order.Order, details string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().AppendStatus(ctx, ord.ID(), order.TrackingFailed, details); err != nil {
		return err
	}

	if err := uow.FailureSink().Escalate(ctx, audit.Failure{
		RelatedID:   ord.ID(),
		ProcessName: audit.ProcessTrackingUpdate,
		Details:     details,
		Payload:     string(ord.RawPayload()),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateTrackingCommandHandler) recordCall(ctx context.Context, operation, orderID string, exchange ports.Exchange, success bool) {
	err := h.auditLog.Record(ctx, audit.APICall{
		Service:        audit.ServiceMarketplace,
		Operation:      operation,
		RelatedID:      orderID,
		RequestPayload: exchange.RequestPayload,
		ResponseBody:   exchange.ResponseBody,
		StatusCode:     exchange.StatusCode,
		Success:        success,
	})
	if err != nil {
		h.logger.Error("audit write failed", "order_id", orderID, "operation", operation, "error", err)
	}
}
