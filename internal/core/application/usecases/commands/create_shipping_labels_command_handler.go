package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// LabelPolicy tunes the retry behavior of the shipping stage.
type LabelPolicy struct {
	// MaxAttempts bounds carrier calls per order per run. Only transport
	// failures consume attempts; validation gate failures are terminal on
	// the first hit.
	MaxAttempts int

	// RetryDelay is how long to wait between attempts.
	RetryDelay time.Duration
}

// DefaultLabelPolicy returns the production retry settings.
func DefaultLabelPolicy() LabelPolicy {
	return LabelPolicy{
		MaxAttempts: 3,
		RetryDelay:  10 * time.Second,
	}
}

// CreateShippingLabelsCommandHandler runs the shipping stage. For each
// accepted order with no shipment claim it first claims the order with a
// unique insert, then creates a carrier shipment, downloads the label and
// passes it through two validation gates before the ledger moves to
// label_created.
//
// The claim comes before any carrier call: when two invocations race, the
// storage constraint lets exactly one proceed, so an order can never get
// two labels. A claim that ends in failure is kept deliberately; it holds
// the order out of the shippable set until an operator releases it.
type CreateShippingLabelsCommandHandler struct {
	uowFactory ShippingUoWFactory
	carrier    ports.CarrierClient
	labels     ports.LabelStore
	inspector  ports.LabelInspector
	auditLog   ports.AuditLog
	policy     LabelPolicy
	logger     *slog.Logger
}

// NewCreateShippingLabelsCommandHandler creates a handler for the shipping
// stage. A zero attempt budget falls back to the default policy.
func NewCreateShippingLabelsCommandHandler(
	uowFactory ShippingUoWFactory,
	carrier ports.CarrierClient,
	labels ports.LabelStore,
	inspector ports.LabelInspector,
	auditLog ports.AuditLog,
	policy LabelPolicy,
	logger *slog.Logger,
) CreateShippingLabelsCommandHandler {
	if policy.MaxAttempts <= 0 {
		policy = DefaultLabelPolicy()
	}

	return CreateShippingLabelsCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		labels:     labels,
		inspector:  inspector,
		auditLog:   auditLog,
		policy:     policy,
		logger:     logger.With("component", "shipping"),
	}
}

// Handle processes the shipping command.
func (h *CreateShippingLabelsCommandHandler) Handle(ctx context.Context, cmd CreateShippingLabelsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.uowFactory.Create().OrderRepository().SelectShippable(ctx)
	if err != nil {
		return err
	}

	h.logger.Info("shipping stage started", "orders", len(orders))

	for _, ord := range orders {
		h.handleOrder(ctx, ord)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

func (h *CreateShippingLabelsCommandHandler) handleOrder(ctx context.Context, ord *order.Order) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while creating label", "order_id", ord.ID(), "panic", r)
			_ = h.finalizeFailure(ctx, ord, fmt.Sprintf("unexpected panic during label creation: %v", r))
		}
	}()

	if err := h.processOrder(ctx, ord); err != nil {
		h.logger.Error("label creation failed", "order_id", ord.ID(), "error", err)
	}
}

func (h *CreateShippingLabelsCommandHandler) processOrder(ctx context.Context, ord *order.Order) error {
	claim, err := shipment.NewShipment(ord.ID())
	if err != nil {
		return err
	}

	// Claim first, call the carrier after. The insert commits immediately so
	// a concurrent run sees it.
	if err := h.uowFactory.Create().ShipmentRepository().Claim(ctx, claim); err != nil {
		if errors.Is(err, ports.ErrOrderAlreadyClaimed) {
			h.logger.Info("order already claimed, skipping", "order_id", ord.ID())
			return nil
		}
		return err
	}

	address, err := ord.ShippingAddress()
	if err != nil {
		return h.finalizeFailure(ctx, ord, fmt.Sprintf("order has no usable shipping address: %s", err))
	}

	for attempt := 1; attempt <= h.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := waitFor(ctx, h.policy.RetryDelay); err != nil {
				return err
			}
		}

		done, err := h.attemptLabel(ctx, ord, claim, address)
		if done || err != nil {
			return err
		}

		h.logger.Warn("label creation attempt failed",
			"order_id", ord.ID(), "attempt", attempt, "max_attempts", h.policy.MaxAttempts)
	}

	exhausted := errs.NewRetryExhaustedError("label creation", h.policy.MaxAttempts, "no validated label")
	return h.finalizeFailure(ctx, ord, exhausted.Error())
}

// attemptLabel runs one full carrier round: create shipment, validate the
// response against the order, download and validate the label. Returns
// done=true when the order reached a terminal outcome (success or validation
// failure); done=false means the attempt may be retried.
func (h *CreateShippingLabelsCommandHandler) attemptLabel(
	ctx context.Context,
	ord *order.Order,
	claim *shipment.Shipment,
	address order.ShippingAddress,
) (bool, error) {
	result, exchange, createErr := h.carrier.CreateShipment(ctx, ord)
	h.recordCall(ctx, "CreateShipment", ord.ID(), exchange, createErr == nil)

	if createErr != nil {
		h.logger.Warn("create shipment call failed", "order_id", ord.ID(), "error", createErr)
		return false, nil
	}

	// Structural gate: the carrier's destination echo must match the order.
	// On mismatch the carrier record is wrong; no further carrier call is
	// made for this order.
	if !address.MatchesRecipient(result.RecipientName, result.RecipientPostalCode) {
		details := fmt.Sprintf(
			"carrier destination does not match order: name %q, postal code %q",
			result.RecipientName, result.RecipientPostalCode,
		)
		return true, h.finalizeFailure(ctx, ord, details)
	}

	artifact, exchange, fetchErr := h.carrier.FetchLabel(ctx, result.LabelURL)
	h.recordCall(ctx, "FetchLabel", ord.ID(), exchange, fetchErr == nil)

	if fetchErr != nil {
		h.logger.Warn("label download failed", "order_id", ord.ID(), "error", fetchErr)
		return false, nil
	}

	path, err := h.labels.Store(ord.ID(), artifact)
	if err != nil {
		h.logger.Warn("label store failed", "order_id", ord.ID(), "error", err)
		return false, nil
	}

	// Content gate: the artifact must carry the tracking pin.
	found, err := h.inspector.ContainsTrackingPin(artifact, result.TrackingPin)
	if err != nil || !found {
		details := fmt.Sprintf("label artifact failed content validation (tracking pin %s)", result.TrackingPin)
		if err != nil {
			details = fmt.Sprintf("%s: %s", details, err)
		}
		return true, h.finalizeFailure(ctx, ord, details)
	}

	if err := claim.AttachLabel(result.TrackingPin, result.LabelURL, path, result.ResponseDocument); err != nil {
		return true, err
	}

	return true, h.finalizeSuccess(ctx, ord, claim, result.TrackingPin)
}

// finalizeSuccess commits the label attachment and the ledger event together.
func (h *CreateShippingLabelsCommandHandler) finalizeSuccess(
	ctx context.Context,
	ord *order.Order,
	claim *shipment.Shipment,
	trackingPin string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Update(ctx, claim); err != nil {
		return err
	}

	note := fmt.Sprintf("tracking pin: %s", trackingPin)
	if err := uow.OrderRepository().AppendStatus(ctx, ord.ID(), order.LabelCreated, note); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("label created", "order_id", ord.ID(), "tracking_pin", trackingPin)
	return nil
}

// finalizeFailure commits the terminal failure atomically. The shipment
// claim is intentionally left in place.
func (h *CreateShippingLabelsCommandHandler) finalizeFailure(ctx context.Context, ord *order.Order, details string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().AppendStatus(ctx, ord.ID(), order.ShippingFailed, details); err != nil {
		return err
	}

	if err := uow.FailureSink().Escalate(ctx, audit.Failure{
		RelatedID:   ord.ID(),
		ProcessName: audit.ProcessShippingLabelCreation,
		Details:     details,
		Payload:     string(ord.RawPayload()),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateShippingLabelsCommandHandler) recordCall(ctx context.Context, operation, orderID string, exchange ports.Exchange, success bool) {
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
