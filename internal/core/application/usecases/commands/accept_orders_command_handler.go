package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AcceptancePolicy tunes the confirmation loop of the acceptance stage.
type AcceptancePolicy struct {
	// SettleDelay is how long to wait before each state poll, giving the
	// marketplace time to process the acceptance.
	SettleDelay time.Duration

	// MaxValidationAttempts bounds the number of state polls per order.
	MaxValidationAttempts int
}

// DefaultAcceptancePolicy returns the production confirmation settings.
func DefaultAcceptancePolicy() AcceptancePolicy {
	return AcceptancePolicy{
		SettleDelay:           60 * time.Second,
		MaxValidationAttempts: 3,
	}
}

// AcceptOrdersCommandHandler runs the acceptance stage. For each order whose
// current status is pending_acceptance it confirms all order lines with the
// marketplace exactly once, then polls the marketplace state until the order
// settles as accepted or cancelled, or the poll budget runs out.
//
// One order's failure never stops the batch: each order is processed in
// isolation, terminal failures are escalated and recorded on the ledger, and
// the handler moves on.
type AcceptOrdersCommandHandler struct {
	uowFactory  OrderUoWFactory
	marketplace ports.MarketplaceClient
	auditLog    ports.AuditLog
	policy      AcceptancePolicy
	logger      *slog.Logger
}

// NewAcceptOrdersCommandHandler creates a handler for the acceptance stage.
// A zero poll budget falls back to the default policy.
func NewAcceptOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	marketplace ports.MarketplaceClient,
	auditLog ports.AuditLog,
	policy AcceptancePolicy,
	logger *slog.Logger,
) AcceptOrdersCommandHandler {
	if policy.MaxValidationAttempts <= 0 {
		policy = DefaultAcceptancePolicy()
	}

	return AcceptOrdersCommandHandler{
		uowFactory:  uowFactory,
		marketplace: marketplace,
		auditLog:    auditLog,
		policy:      policy,
		logger:      logger.With("component", "acceptance"),
	}
}

// Handle processes the acceptance command. Selecting the work list is the
// only operation that can fail the whole batch; everything after that is
// per-order.
func (h *AcceptOrdersCommandHandler) Handle(ctx context.Context, cmd AcceptOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.uowFactory.Create().OrderRepository().SelectByCurrentStatus(ctx, order.PendingAcceptance)
	if err != nil {
		return err
	}

	h.logger.Info("acceptance stage started", "orders", len(orders))

	for _, ord := range orders {
		h.handleOrder(ctx, ord)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

// handleOrder isolates one order: a panic or error here is escalated and
// logged without affecting the rest of the batch.
func (h *AcceptOrdersCommandHandler) handleOrder(ctx context.Context, ord *order.Order) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while accepting order", "order_id", ord.ID(), "panic", r)
			_ = h.finalizeFailure(ctx, ord, fmt.Sprintf("unexpected panic during acceptance: %v", r))
		}
	}()

	if err := h.processOrder(ctx, ord); err != nil {
		h.logger.Error("order acceptance failed", "order_id", ord.ID(), "error", err)
	}
}

func (h *AcceptOrdersCommandHandler) processOrder(ctx context.Context, ord *order.Order) error {
	// Exactly one accept call per order per run.
	exchange, acceptErr := h.marketplace.AcceptOrder(ctx, ord)
	h.recordCall(ctx, "AcceptOrder", ord.ID(), exchange, acceptErr == nil)

	if acceptErr != nil {
		return h.finalizeFailure(ctx, ord, fmt.Sprintf("accept request failed: %s", acceptErr))
	}

	// The escalation record carries the last state the marketplace actually
	// reported, so an operator sees what the order looked like when the
	// budget ran out.
	lastObserved := "no state observed"

	for attempt := 1; attempt <= h.policy.MaxValidationAttempts; attempt++ {
		if err := waitFor(ctx, h.policy.SettleDelay); err != nil {
			return err
		}

		state, exchange, stateErr := h.marketplace.GetOrderState(ctx, ord.ID())
		h.recordCall(ctx, "GetOrderState", ord.ID(), exchange, stateErr == nil)

		if stateErr != nil {
			h.logger.Warn("state poll failed",
				"order_id", ord.ID(), "attempt", attempt, "error", stateErr)
			lastObserved = fmt.Sprintf("state poll failed: %s", stateErr)
			continue
		}

		switch state.Class {
		case ports.StateAccepted:
			h.logger.Info("order accepted", "order_id", ord.ID(), "marketplace_state", state.Raw)
			return h.appendStatus(ctx, ord.ID(), order.Accepted, fmt.Sprintf("marketplace state: %s", state.Raw))

		case ports.StateCancelled:
			// A marketplace cancellation is a clean terminal outcome, not a
			// failure to escalate.
			h.logger.Info("order cancelled by marketplace", "order_id", ord.ID())
			return h.appendStatus(ctx, ord.ID(), order.Cancelled, fmt.Sprintf("marketplace state: %s", state.Raw))

		case ports.StatePending:
			h.logger.Info("order not settled yet",
				"order_id", ord.ID(), "attempt", attempt, "marketplace_state", state.Raw)
			lastObserved = state.Raw
		}
	}

	exhausted := errs.NewRetryExhaustedError("acceptance confirmation", h.policy.MaxValidationAttempts, lastObserved)
	return h.finalizeFailure(ctx, ord, exhausted.Error())
}

// appendStatus writes a single ledger event in its own transaction.
func (h *AcceptOrdersCommandHandler) appendStatus(ctx context.Context, orderID string, status order.Status, note string) error {
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

// finalizeFailure commits the terminal failure atomically: the ledger event
// and the escalation record land together.
func (h *AcceptOrdersCommandHandler) finalizeFailure(ctx context.Context, ord *order.Order, details string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().AppendStatus(ctx, ord.ID(), order.AcceptanceFailed, details); err != nil {
		return err
	}

	if err := uow.FailureSink().Escalate(ctx, audit.Failure{
		RelatedID:   ord.ID(),
		ProcessName: audit.ProcessOrderAcceptance,
		Details:     details,
		Payload:     string(ord.RawPayload()),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// recordCall audits one marketplace exchange. Audit failures are logged and
// swallowed: a broken audit write must not abort order processing.
func (h *AcceptOrdersCommandHandler) recordCall(ctx context.Context, operation, orderID string, exchange ports.Exchange, success bool) {
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
