package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// RunPipelineCommandHandler orchestrates one pipeline pass. The three stages
// run sequentially in lifecycle order, each inside its own isolation
// boundary: a stage that fails or panics is reported, and the next stage
// still runs. An order accepted in this pass is shipped in this pass.
type RunPipelineCommandHandler struct {
	acceptance AcceptOrdersCommandHandler
	shipping   CreateShippingLabelsCommandHandler
	tracking   UpdateTrackingCommandHandler
	logger     *slog.Logger
}

// NewRunPipelineCommandHandler creates the pipeline orchestrator from the
// three stage handlers.
func NewRunPipelineCommandHandler(
	acceptance AcceptOrdersCommandHandler,
	shipping CreateShippingLabelsCommandHandler,
	tracking UpdateTrackingCommandHandler,
	logger *slog.Logger,
) RunPipelineCommandHandler {
	return RunPipelineCommandHandler{
		acceptance: acceptance,
		shipping:   shipping,
		tracking:   tracking,
		logger:     logger.With("component", "pipeline"),
	}
}

// Handle runs acceptance, shipping and tracking in order and returns the
// joined stage errors, if any.
func (h *RunPipelineCommandHandler) Handle(ctx context.Context, cmd RunPipelineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.logger.Info("pipeline pass started")

	err := errors.Join(
		h.runStage(ctx, "acceptance", func(ctx context.Context) error {
			acceptCmd := NewAcceptOrdersCommand()
			return h.acceptance.Handle(ctx, acceptCmd)
		}),
		h.runStage(ctx, "shipping", func(ctx context.Context) error {
			labelCmd := NewCreateShippingLabelsCommand()
			return h.shipping.Handle(ctx, labelCmd)
		}),
		h.runStage(ctx, "tracking", func(ctx context.Context) error {
			trackCmd := NewUpdateTrackingCommand()
			return h.tracking.Handle(ctx, trackCmd)
		}),
	)

	h.logger.Info("pipeline pass finished")
	return err
}

// runStage executes one stage behind a panic barrier. A panicking stage is
// converted into an error so the remaining stages still run.
func (h *RunPipelineCommandHandler) runStage(ctx context.Context, name string, stage func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("stage panicked", "stage", name, "panic", r)
			err = fmt.Errorf("stage %s panicked: %v", name, r)
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err := stage(ctx); err != nil {
		h.logger.Error("stage failed", "stage", name, "error", err)
		return fmt.Errorf("stage %s: %w", name, err)
	}

	return nil
}
