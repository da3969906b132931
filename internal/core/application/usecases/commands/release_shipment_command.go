package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrReleaseShipmentCommandIsNotConstructed = errors.New(
		"ReleaseShipmentCommand must be created via NewReleaseShipmentCommand constructor",
	)
	ErrOrderIDIsRequired = errors.New("order id is required")
)

// ReleaseShipmentCommand represents an operator's request to release a
// failed shipment claim: the carrier shipment is voided, the claim removed
// and the order made shippable again.
//
// Example:
//
//	cmd, err := NewReleaseShipmentCommand("BB-1001")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("release failed: %w", err)
//	}
type ReleaseShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewReleaseShipmentCommand creates a command to release the shipment claim
// of the given order.
func NewReleaseShipmentCommand(orderID string) (ReleaseShipmentCommand, error) {
	command := ReleaseShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return ReleaseShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseShipmentCommandIsNotConstructed if validation fails.
func (c ReleaseShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReleaseShipmentCommandIsNotConstructed)
}

// OrderID returns the marketplace identifier of the order to release.
func (c ReleaseShipmentCommand) OrderID() string {
	return c.orderID
}

func (c *ReleaseShipmentCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}

	c.orderID = orderID
	return nil
}
