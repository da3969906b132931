package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrdersCommand_Validate_WhenConstructedProperly_ShouldReturnNoError(t *testing.T) {
	cmd := commands.NewAcceptOrdersCommand()
	require.NoError(t, cmd.Validate())
}

func TestAcceptOrdersCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.AcceptOrdersCommand // zero-value command

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrAcceptOrdersCommandIsNotConstructed, err)
}

func TestCreateShippingLabelsCommand_Validate_WhenConstructedProperly_ShouldReturnNoError(t *testing.T) {
	cmd := commands.NewCreateShippingLabelsCommand()
	require.NoError(t, cmd.Validate())
}

func TestCreateShippingLabelsCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.CreateShippingLabelsCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrCreateShippingLabelsCommandIsNotConstructed, err)
}

func TestUpdateTrackingCommand_Validate_WhenConstructedProperly_ShouldReturnNoError(t *testing.T) {
	cmd := commands.NewUpdateTrackingCommand()
	require.NoError(t, cmd.Validate())
}

func TestUpdateTrackingCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.UpdateTrackingCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrUpdateTrackingCommandIsNotConstructed, err)
}

func TestRunPipelineCommand_Validate_WhenConstructedProperly_ShouldReturnNoError(t *testing.T) {
	cmd := commands.NewRunPipelineCommand()
	require.NoError(t, cmd.Validate())
}

func TestRunPipelineCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.RunPipelineCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrRunPipelineCommandIsNotConstructed, err)
}

func TestReleaseShipmentCommand_New_WithOrderID_ShouldSucceed(t *testing.T) {
	cmd, err := commands.NewReleaseShipmentCommand("BB-1001")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "BB-1001", cmd.OrderID())
}

func TestReleaseShipmentCommand_New_WithoutOrderID_ShouldFail(t *testing.T) {
	_, err := commands.NewReleaseShipmentCommand("")

	assert.ErrorIs(t, err, commands.ErrOrderIDIsRequired)
}

func TestReleaseShipmentCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.ReleaseShipmentCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrReleaseShipmentCommandIsNotConstructed, err)
}
