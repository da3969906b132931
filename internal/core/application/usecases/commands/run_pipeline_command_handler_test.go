package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pipelineFixture wires real stage handlers over shared mocks so a pipeline
// pass exercises the same composition the application runs.
type pipelineFixture struct {
	orders      *MockOrderRepository
	shipments   *MockShipmentRepository
	failures    *MockFailureSink
	marketplace *MockMarketplaceClient
	carrier     *MockCarrierClient
	handler     commands.RunPipelineCommandHandler
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		orders:      new(MockOrderRepository),
		shipments:   new(MockShipmentRepository),
		failures:    new(MockFailureSink),
		marketplace: new(MockMarketplaceClient),
		carrier:     new(MockCarrierClient),
	}

	auditLog := new(MockAuditLog)
	auditLog.On("Record", mock.Anything, mock.Anything).Return(nil)

	uow := newTransactionalUoW(f.orders, f.shipments, f.failures)
	orderFactory := OrderUoWFactoryFunc(func() commands.OrderUoW { return uow })
	shippingFactory := ShippingUoWFactoryFunc(func() commands.ShippingUoW { return uow })

	labels := new(MockLabelStore)
	inspector := new(MockLabelInspector)

	acceptance := commands.NewAcceptOrdersCommandHandler(
		orderFactory, f.marketplace, auditLog, fastAcceptancePolicy(), discardLogger())
	shipping := commands.NewCreateShippingLabelsCommandHandler(
		shippingFactory, f.carrier, labels, inspector, auditLog, fastLabelPolicy(), discardLogger())
	tracking := commands.NewUpdateTrackingCommandHandler(
		shippingFactory, f.marketplace, auditLog, discardLogger())

	f.handler = commands.NewRunPipelineCommandHandler(acceptance, shipping, tracking, discardLogger())
	return f
}

func TestRunPipelineCommandHandler_Handle_RunsStagesInLifecycleOrder(t *testing.T) {
	// Arrange
	f := newPipelineFixture(t)

	var stages []string
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.PendingAcceptance).
		Run(func(mock.Arguments) { stages = append(stages, "acceptance") }).
		Return(nil, nil).Once()
	f.orders.On("SelectShippable", mock.Anything).
		Run(func(mock.Arguments) { stages = append(stages, "shipping") }).
		Return(nil, nil).Once()
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.LabelCreated).
		Run(func(mock.Arguments) { stages = append(stages, "tracking") }).
		Return(nil, nil).Once()

	// Act
	err := f.handler.Handle(context.Background(), commands.NewRunPipelineCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"acceptance", "shipping", "tracking"}, stages)
}

func TestRunPipelineCommandHandler_Handle_FailedStageDoesNotStopLaterStages(t *testing.T) {
	// Arrange
	f := newPipelineFixture(t)

	batchErr := errors.New("connection reset")
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.PendingAcceptance).
		Return(nil, batchErr).Once()
	f.orders.On("SelectShippable", mock.Anything).Return(nil, nil).Once()
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.LabelCreated).
		Return(nil, nil).Once()

	// Act
	err := f.handler.Handle(context.Background(), commands.NewRunPipelineCommand())

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, batchErr)
	assert.ErrorContains(t, err, "stage acceptance")
	f.orders.AssertExpectations(t)
}

func TestRunPipelineCommandHandler_Handle_JoinsErrorsFromMultipleStages(t *testing.T) {
	// Arrange
	f := newPipelineFixture(t)

	acceptErr := errors.New("acceptance batch unavailable")
	trackErr := errors.New("tracking batch unavailable")
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.PendingAcceptance).
		Return(nil, acceptErr).Once()
	f.orders.On("SelectShippable", mock.Anything).Return(nil, nil).Once()
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.LabelCreated).
		Return(nil, trackErr).Once()

	// Act
	err := f.handler.Handle(context.Background(), commands.NewRunPipelineCommand())

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, acceptErr)
	assert.ErrorIs(t, err, trackErr)
}

func TestRunPipelineCommandHandler_Handle_PanickingStage_DoesNotPreventLaterStages(t *testing.T) {
	// Arrange
	f := newPipelineFixture(t)

	// The acceptance batch query panics before any per-order isolation kicks
	// in, so the recovery under test is the stage barrier itself
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.PendingAcceptance).
		Run(func(mock.Arguments) { panic("ledger connection lost") }).
		Return(nil, nil).Once()
	f.orders.On("SelectShippable", mock.Anything).Return(nil, nil).Once()
	f.orders.On("SelectByCurrentStatus", mock.Anything, order.LabelCreated).
		Return(nil, nil).Once()

	// Act
	err := f.handler.Handle(context.Background(), commands.NewRunPipelineCommand())

	// Assert
	require.Error(t, err)
	assert.ErrorContains(t, err, "stage acceptance panicked")
	assert.ErrorContains(t, err, "ledger connection lost")

	// The shipping and tracking stages still ran
	f.orders.AssertExpectations(t)
}

func TestRunPipelineCommandHandler_Handle_CancelledContext_SkipsStages(t *testing.T) {
	// Arrange
	f := newPipelineFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := f.handler.Handle(ctx, commands.NewRunPipelineCommand())

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	f.orders.AssertNotCalled(t, "SelectByCurrentStatus", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "SelectShippable", mock.Anything)
}

func TestRunPipelineCommandHandler_Handle_InvalidCommand_ReturnsError(t *testing.T) {
	f := newPipelineFixture(t)

	var cmd commands.RunPipelineCommand // zero-value command
	err := f.handler.Handle(context.Background(), cmd)

	assert.ErrorIs(t, err, commands.ErrRunPipelineCommandIsNotConstructed)
}
