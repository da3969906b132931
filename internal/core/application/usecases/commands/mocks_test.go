package commands_test

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AppendStatus(ctx context.Context, orderID string, status order.Status, note string) error {
	args := m.Called(ctx, orderID, status, note)
	return args.Error(0)
}

func (m *MockOrderRepository) CurrentStatus(ctx context.Context, orderID string) (order.Status, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(order.Status), args.Error(1)
}

func (m *MockOrderRepository) History(ctx context.Context, orderID string) ([]order.StatusEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusEvent), args.Error(1)
}

func (m *MockOrderRepository) SelectByCurrentStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) SelectShippable(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Claim(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockFailureSink struct{ mock.Mock }

func (m *MockFailureSink) Escalate(ctx context.Context, failure audit.Failure) error {
	args := m.Called(ctx, failure)
	return args.Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Record(ctx context.Context, call audit.APICall) error {
	args := m.Called(ctx, call)
	return args.Error(0)
}

type MockMarketplaceClient struct{ mock.Mock }

func (m *MockMarketplaceClient) AcceptOrder(ctx context.Context, ord *order.Order) (ports.Exchange, error) {
	args := m.Called(ctx, ord)
	return args.Get(0).(ports.Exchange), args.Error(1)
}

func (m *MockMarketplaceClient) GetOrderState(ctx context.Context, orderID string) (ports.OrderState, ports.Exchange, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.OrderState), args.Get(1).(ports.Exchange), args.Error(2)
}

func (m *MockMarketplaceClient) SetTracking(ctx context.Context, orderID, trackingPin string) (ports.Exchange, error) {
	args := m.Called(ctx, orderID, trackingPin)
	return args.Get(0).(ports.Exchange), args.Error(1)
}

func (m *MockMarketplaceClient) MarkShipped(ctx context.Context, orderID string) (ports.Exchange, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.Exchange), args.Error(1)
}

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) CreateShipment(ctx context.Context, ord *order.Order) (ports.CreateShipmentResult, ports.Exchange, error) {
	args := m.Called(ctx, ord)
	return args.Get(0).(ports.CreateShipmentResult), args.Get(1).(ports.Exchange), args.Error(2)
}

func (m *MockCarrierClient) FetchLabel(ctx context.Context, labelURL string) ([]byte, ports.Exchange, error) {
	args := m.Called(ctx, labelURL)
	if args.Get(0) == nil {
		return nil, args.Get(1).(ports.Exchange), args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(ports.Exchange), args.Error(2)
}

func (m *MockCarrierClient) VoidShipment(ctx context.Context, labelURL string) (ports.Exchange, error) {
	args := m.Called(ctx, labelURL)
	return args.Get(0).(ports.Exchange), args.Error(1)
}

type MockLabelStore struct{ mock.Mock }

func (m *MockLabelStore) Store(orderID string, artifact []byte) (string, error) {
	args := m.Called(orderID, artifact)
	return args.String(0), args.Error(1)
}

type MockLabelInspector struct{ mock.Mock }

func (m *MockLabelInspector) ContainsTrackingPin(artifact []byte, trackingPin string) (bool, error) {
	args := m.Called(artifact, trackingPin)
	return args.Bool(0), args.Error(1)
}

// MockUnitOfWork satisfies both OrderUoW and ShippingUoW.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUnitOfWork) FailureSink() ports.FailureSink {
	args := m.Called()
	return args.Get(0).(ports.FailureSink)
}

type OrderUoWFactoryFunc func() commands.OrderUoW

func (f OrderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

type ShippingUoWFactoryFunc func() commands.ShippingUoW

func (f ShippingUoWFactoryFunc) Create() commands.ShippingUoW { return f() }

// newTransactionalUoW wires a unit of work mock that accepts any number of
// transactions against the given repositories.
func newTransactionalUoW(orders *MockOrderRepository, shipments *MockShipmentRepository, failures *MockFailureSink) *MockUnitOfWork {
	uow := new(MockUnitOfWork)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	if orders != nil {
		uow.On("OrderRepository").Return(orders)
	}
	if shipments != nil {
		uow.On("ShipmentRepository").Return(shipments)
	}
	if failures != nil {
		uow.On("FailureSink").Return(failures)
	}
	return uow
}
