package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOrdersCommandIsNotConstructed = errors.New(
	"AcceptOrdersCommand must be created via NewAcceptOrdersCommand constructor",
)

// AcceptOrdersCommand triggers the acceptance stage: every order whose
// current ledger status is pending_acceptance is confirmed with the
// marketplace and polled until it settles.
//
// Example:
//
//	cmd := NewAcceptOrdersCommand()
//	handler := NewAcceptOrdersCommandHandler(uowFactory, client, auditLog, policy, logger)
//
//	// Run periodically from the pipeline scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("acceptance stage failed: %v", err)
//	}
type AcceptOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAcceptOrdersCommand creates a command to run the acceptance stage.
// This is a parameterless batch command.
func NewAcceptOrdersCommand() AcceptOrdersCommand {
	return AcceptOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOrdersCommandIsNotConstructed if validation fails.
func (c *AcceptOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrdersCommandIsNotConstructed)
}
