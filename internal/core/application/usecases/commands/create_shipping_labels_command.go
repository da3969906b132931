package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrCreateShippingLabelsCommandIsNotConstructed = errors.New(
	"CreateShippingLabelsCommand must be created via NewCreateShippingLabelsCommand constructor",
)

// CreateShippingLabelsCommand triggers the shipping stage: every accepted,
// unclaimed order gets a carrier shipment, a validated label and a tracking
// pin.
type CreateShippingLabelsCommand struct {
	guard guard.ConstructorGuard
}

// NewCreateShippingLabelsCommand creates a command to run the shipping
// stage. This is a parameterless batch command.
func NewCreateShippingLabelsCommand() CreateShippingLabelsCommand {
	return CreateShippingLabelsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShippingLabelsCommandIsNotConstructed if validation fails.
func (c *CreateShippingLabelsCommand) Validate() error {
	return c.guard.Validate(ErrCreateShippingLabelsCommandIsNotConstructed)
}
