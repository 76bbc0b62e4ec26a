package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"mparcel/internal/adapters/out/postgres/orderrepo"
	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence behavior
// against a real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)

	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	phone, err := kernel.NewPhone("0712345678")
	suite.Require().NoError(err)
	amount, err := kernel.NewMoney(500)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		order.NewOrderID(createdAt),
		"Alice Wanjiku",
		phone,
		"Westlands, Nairobi",
		"Kilimani, Nairobi",
		amount,
		kernel.NewUUID(),
		order.Metadata{VehicleType: "motorbike"},
		createdAt,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	original := suite.newOrder(time.Now().UTC().Truncate(time.Millisecond))

	err := suite.repository.Add(ctx, original)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(original.ID()))
	suite.Equal(original.CustomerName(), restored.CustomerName())
	suite.Equal("254712345678", restored.CustomerPhone().String())
	suite.Equal(order.StatusPending, restored.Status())
	suite.Equal(order.PaymentUnpaid, restored.PaymentStatus())
	suite.Equal("motorbike", restored.Metadata().VehicleType)
	suite.Nil(restored.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()
	missingID := order.NewOrderID(time.Now())

	_, err := suite.repository.Get(ctx, missingID)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStateChanges() {
	ctx := context.Background()
	aggregate := suite.newOrder(time.Now().UTC().Truncate(time.Millisecond))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	courierID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Assign(courierID))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusInTransit, restored.Status())
	suite.Require().NotNil(restored.CourierID())
	suite.True(restored.CourierID().IsEqual(courierID))

	// clearing the courier must persist the NULL
	suite.Require().NoError(aggregate.ClearCourier())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err = suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, restored.Status())
	suite.Nil(restored.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetUnpaid_ExcludesSettledOrders() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	unpaid := suite.newOrder(base)
	settled := suite.newOrder(base.Add(time.Second))
	suite.Require().NoError(settled.MarkPaid("SDK7TQ81XX"))

	suite.Require().NoError(suite.repository.Add(ctx, unpaid))
	suite.Require().NoError(suite.repository.Add(ctx, settled))

	candidates, err := suite.repository.GetUnpaid(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.True(candidates[0].ID().IsEqual(unpaid.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestMarkPaid_ConditionalWrite() {
	ctx := context.Background()
	aggregate := suite.newOrder(time.Now().UTC().Truncate(time.Millisecond))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	won, err := suite.repository.MarkPaid(ctx, aggregate.ID(), "SDK7TQ81XX")
	suite.Require().NoError(err)
	suite.True(won)

	// second settle loses the race and must not overwrite the receipt
	won, err = suite.repository.MarkPaid(ctx, aggregate.ID(), "OTHER_RECEIPT")
	suite.Require().NoError(err)
	suite.False(won)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentReconciled, restored.PaymentStatus())
	suite.Equal("SDK7TQ81XX", restored.MpesaReceipt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSettleCashOnDelivery_ConditionalWrite() {
	ctx := context.Background()
	aggregate := suite.newOrder(time.Now().UTC().Truncate(time.Millisecond))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	won, err := suite.repository.SettleCashOnDelivery(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(won)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentPaid, restored.PaymentStatus())
	suite.Empty(restored.MpesaReceipt())

	// a late callback cannot re-settle a cash payment
	won, err = suite.repository.MarkPaid(ctx, aggregate.ID(), "SDK7TQ81XX")
	suite.Require().NoError(err)
	suite.False(won)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PreservesConcurrentSettlement() {
	ctx := context.Background()
	aggregate := suite.newOrder(time.Now().UTC().Truncate(time.Millisecond))
	suite.Require().NoError(aggregate.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// a callback settles the payment while the courier still holds the
	// pre-settlement snapshot
	won, err := suite.repository.MarkPaid(ctx, aggregate.ID(), "SDK7TQ81XX")
	suite.Require().NoError(err)
	suite.True(won)

	suite.Require().NoError(aggregate.Deliver("proofs/handover.jpg", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivered, restored.Status())
	suite.Equal("proofs/handover.jpg", restored.DeliveryProof())
	// the stale snapshot's payment axis must not clobber the settlement
	suite.Equal(order.PaymentReconciled, restored.PaymentStatus())
	suite.Equal("SDK7TQ81XX", restored.MpesaReceipt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrder() {
	ctx := context.Background()
	aggregate := suite.newOrder(time.Now().UTC().Truncate(time.Millisecond))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Delete(ctx, aggregate.ID()))

	_, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Delete(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByMerchant_ScopesAndSorts() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	mine := suite.newOrder(base)
	newerMine, err := order.NewOrder(
		order.NewOrderID(base.Add(time.Second)),
		"Bob Kamau",
		mine.CustomerPhone(),
		"CBD, Nairobi",
		"Karen, Nairobi",
		mine.Amount(),
		mine.MerchantID(),
		order.Metadata{},
		base.Add(time.Second),
	)
	suite.Require().NoError(err)
	foreign := suite.newOrder(base.Add(2 * time.Second))

	suite.Require().NoError(suite.repository.Add(ctx, mine))
	suite.Require().NoError(suite.repository.Add(ctx, newerMine))
	suite.Require().NoError(suite.repository.Add(ctx, foreign))

	orders, err := suite.repository.GetByMerchant(ctx, mine.MerchantID().String())
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.True(orders[0].ID().IsEqual(newerMine.ID()))
	suite.True(orders[1].ID().IsEqual(mine.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
