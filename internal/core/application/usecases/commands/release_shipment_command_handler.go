package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ReleaseShipmentCommandHandler handles the operator release flow. A failed
// shipment claim normally keeps its order out of the shippable set forever;
// releasing it voids the carrier shipment, removes the claim and moves the
// ledger back to accepted so the next pipeline pass retries the order.
//
// This is the only code path that ever deletes a shipment claim.
type ReleaseShipmentCommandHandler struct {
	uowFactory ShippingUoWFactory
	carrier    ports.CarrierClient
	auditLog   ports.AuditLog
	logger     *slog.Logger
}

// NewReleaseShipmentCommandHandler creates a handler for operator shipment
// releases.
func NewReleaseShipmentCommandHandler(
	uowFactory ShippingUoWFactory,
	carrier ports.CarrierClient,
	auditLog ports.AuditLog,
	logger *slog.Logger,
) ReleaseShipmentCommandHandler {
	return ReleaseShipmentCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		auditLog:   auditLog,
		logger:     logger.With("component", "release"),
	}
}

// Handle processes the release command. The claim is only removed after the
// carrier shipment is successfully voided; a failed void aborts the release
// so no live shipment is orphaned.
func (h *ReleaseShipmentCommandHandler) Handle(ctx context.Context, cmd ReleaseShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	reader := h.uowFactory.Create()

	status, err := reader.OrderRepository().CurrentStatus(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if status != order.ShippingFailed && status != order.TrackingFailed {
		return errs.NewValidationError("release", fmt.Sprintf("order is in status %s, not a failed shipping state", status))
	}

	claim, err := reader.ShipmentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if claim.HasLabel() {
		exchange, voidErr := h.carrier.VoidShipment(ctx, *claim.LabelURL())
		h.recordCall(ctx, "VoidShipment", cmd.OrderID(), exchange, voidErr == nil)
		if voidErr != nil {
			return fmt.Errorf("void carrier shipment: %w", voidErr)
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	note := "shipment claim released by operator"
	if err := uow.OrderRepository().AppendStatus(ctx, cmd.OrderID(), order.Accepted, note); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("shipment released", "order_id", cmd.OrderID())
	return nil
}

func (h *ReleaseShipmentCommandHandler) recordCall(ctx context.Context, operation, orderID string, exchange ports.Exchange, success bool) {
	err := h.auditLog.Record(ctx, audit.APICall{
		Service:        audit.ServiceCarrier,
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
