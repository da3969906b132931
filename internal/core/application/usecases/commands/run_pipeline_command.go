package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRunPipelineCommandIsNotConstructed = errors.New(
	"RunPipelineCommand must be created via NewRunPipelineCommand constructor",
)

// RunPipelineCommand triggers one full pipeline pass: acceptance, shipping
// and tracking, in that order.
type RunPipelineCommand struct {
	guard guard.ConstructorGuard
}

// NewRunPipelineCommand creates a command to run one pipeline pass.
func NewRunPipelineCommand() RunPipelineCommand {
	return RunPipelineCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRunPipelineCommandIsNotConstructed if validation fails.
func (c *RunPipelineCommand) Validate() error {
	return c.guard.Validate(ErrRunPipelineCommandIsNotConstructed)
}
