package orderrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers, with particular focus on the
// latest-status derivation that every pipeline stage relies on.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema. Shipments are included because the shippable
	// query joins against the claims table.
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusEventDTO{},
		&shipmentrepo.ShipmentDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_status_history, shipments").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("BB-1001")

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, "BB-1001")
	suite.Require().NoError(err)

	suite.Equal("BB-1001", retrievedOrder.ID())
	suite.JSONEq(string(originalOrder.RawPayload()), string(retrievedOrder.RawPayload()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, "BB-MISSING")

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAppendStatus_BuildsLedgerInOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.AppendStatus(ctx, "BB-1001", order.PendingAcceptance, "imported"))
	suite.Require().NoError(suite.repository.AppendStatus(ctx, "BB-1001", order.Accepted, "marketplace confirmed"))
	suite.Require().NoError(suite.repository.AppendStatus(ctx, "BB-1001", order.LabelCreated, ""))

	history, err := suite.repository.History(ctx, "BB-1001")
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)

	suite.Equal(order.PendingAcceptance, history[0].Status)
	suite.Equal(order.Accepted, history[1].Status)
	suite.Equal(order.LabelCreated, history[2].Status)
	suite.Equal("marketplace confirmed", history[1].Note)

	// Earlier entries survive later appends untouched
	current, err := suite.repository.CurrentStatus(ctx, "BB-1001")
	suite.Require().NoError(err)
	suite.Equal(order.LabelCreated, current)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCurrentStatus_EqualTimestamps_LatestInsertWins() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two ledger entries sharing one timestamp; insertion order decides.
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.insertStatusAt("BB-1001", order.PendingAcceptance, ts)
	suite.insertStatusAt("BB-1001", order.Accepted, ts)

	current, err := suite.repository.CurrentStatus(ctx, "BB-1001")
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, current)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCurrentStatus_NoLedger_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	_, err := suite.repository.CurrentStatus(ctx, "BB-1001")
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSelectByCurrentStatus_OnlyLatestEntryCounts() {
	ctx := context.Background()

	// pending -> accepted: must not be selected as pending anymore
	progressed := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, progressed))
	suite.appendStatuses("BB-1001", order.PendingAcceptance, order.Accepted)

	// still pending
	pending := suite.createTestOrder("BB-1002")
	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.appendStatuses("BB-1002", order.PendingAcceptance)

	// terminal failure
	failed := suite.createTestOrder("BB-1003")
	suite.Require().NoError(suite.repository.Add(ctx, failed))
	suite.appendStatuses("BB-1003", order.PendingAcceptance, order.AcceptanceFailed)

	pendingOrders, err := suite.repository.SelectByCurrentStatus(ctx, order.PendingAcceptance)
	suite.Require().NoError(err)
	suite.Require().Len(pendingOrders, 1)
	suite.Equal("BB-1002", pendingOrders[0].ID())

	acceptedOrders, err := suite.repository.SelectByCurrentStatus(ctx, order.Accepted)
	suite.Require().NoError(err)
	suite.Require().Len(acceptedOrders, 1)
	suite.Equal("BB-1001", acceptedOrders[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSelectByCurrentStatus_NoMatches_ReturnsEmptySlice() {
	ctx := context.Background()

	orders, err := suite.repository.SelectByCurrentStatus(ctx, order.Shipped)
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSelectShippable_ExcludesClaimedOrders() {
	ctx := context.Background()

	// accepted, unclaimed: shippable
	unclaimed := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, unclaimed))
	suite.appendStatuses("BB-1001", order.PendingAcceptance, order.Accepted)

	// accepted, but a claim exists
	claimed := suite.createTestOrder("BB-1002")
	suite.Require().NoError(suite.repository.Add(ctx, claimed))
	suite.appendStatuses("BB-1002", order.PendingAcceptance, order.Accepted)
	suite.claimOrder(ctx, "BB-1002")

	// not accepted at all
	pending := suite.createTestOrder("BB-1003")
	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.appendStatuses("BB-1003", order.PendingAcceptance)

	shippable, err := suite.repository.SelectShippable(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(shippable, 1)
	suite.Equal("BB-1001", shippable[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSelectShippable_ClaimWithFailedStatus_StaysExcluded() {
	ctx := context.Background()

	// A claim left behind by a failed label run keeps the order out of the
	// shippable set until an operator releases it.
	failed := suite.createTestOrder("BB-1001")
	suite.Require().NoError(suite.repository.Add(ctx, failed))
	suite.appendStatuses("BB-1001", order.PendingAcceptance, order.Accepted, order.ShippingFailed)
	suite.claimOrder(ctx, "BB-1001")

	shippable, err := suite.repository.SelectShippable(ctx)
	suite.Require().NoError(err)
	suite.Empty(shippable)
}

// appendStatuses appends ledger entries in sequence with distinct timestamps.
func (suite *OrderRepositoryIntegrationTestSuite) appendStatuses(orderID string, statuses ...order.Status) {
	base := time.Now().UTC().Add(-time.Duration(len(statuses)) * time.Second)
	for i, status := range statuses {
		suite.insertStatusAt(orderID, status, base.Add(time.Duration(i)*time.Second))
	}
}

// insertStatusAt inserts a ledger row with an explicit timestamp.
func (suite *OrderRepositoryIntegrationTestSuite) insertStatusAt(orderID string, status order.Status, ts time.Time) {
	err := suite.db.Exec(
		"INSERT INTO order_status_history (order_id, status, notes, timestamp) VALUES (?, ?, ?, ?)",
		orderID, status.String(), "", ts,
	).Error
	suite.Require().NoError(err)
}

// claimOrder inserts a shipment claim for the order.
func (suite *OrderRepositoryIntegrationTestSuite) claimOrder(ctx context.Context, orderID string) {
	claim, err := shipment.NewShipment(orderID)
	suite.Require().NoError(err)
	repo := shipmentrepo.NewGormShipmentRepository(suite.db)
	suite.Require().NoError(repo.Claim(ctx, claim))
}

// createTestOrder creates a basic test order with a minimal raw payload.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(id string) *order.Order {
	payload := fmt.Sprintf(`{
		"order_id": %q,
		"customer": {
			"shipping_address": {
				"firstname": "Jane",
				"lastname": "Doe",
				"street_1": "100 Queen St W",
				"city": "Toronto",
				"state": "ON",
				"zip_code": "M5H 2N2"
			}
		},
		"order_lines": [{"order_line_id": "%s-1", "offer_sku": "SKU-42", "quantity": 1}]
	}`, id, id)

	testOrder, err := order.NewOrder(id, []byte(payload))
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
