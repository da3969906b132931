package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrUpdateTrackingCommandIsNotConstructed = errors.New(
	"UpdateTrackingCommand must be created via NewUpdateTrackingCommand constructor",
)

// UpdateTrackingCommand triggers the tracking stage: every order with a
// validated label gets its tracking pin submitted to the marketplace and is
// confirmed as shipped.
type UpdateTrackingCommand struct {
	guard guard.ConstructorGuard
}

// NewUpdateTrackingCommand creates a command to run the tracking stage.
// This is a parameterless batch command.
func NewUpdateTrackingCommand() UpdateTrackingCommand {
	return UpdateTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateTrackingCommandIsNotConstructed if validation fails.
func (c *UpdateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingCommandIsNotConstructed)
}
