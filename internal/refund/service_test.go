package refund

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/birchwood/internal/apperr"
	"github.com/example/birchwood/internal/database"
	"github.com/example/birchwood/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every session sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, total int64) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNumber:   "ORD-" + uuid.NewString()[:8],
		Status:        models.OrderStatusPaid,
		RefundStatus:  models.RefundStatusNone,
		PlacedAt:      time.Now(),
		CustomerName:  "Ellen Marsh",
		CustomerEmail: "ellen@example.com",
		TotalAmount:   total,
		Currency:      "GBP",
		PaymentMethod: models.PaymentMethodCard,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func reloadOrder(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", id).Error)
	return &order
}

func TestCreateRefund(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 50000)

	created, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 20000, Reason: "damaged leg"})
	require.NoError(t, err)
	assert.Equal(t, models.RefundPending, created.Status)
	assert.Equal(t, models.RefundMethodOriginal, created.Method)
	assert.Equal(t, int64(20000), created.Amount)

	// A pending refund does not change the order aggregate.
	assert.Equal(t, models.RefundStatusNone, reloadOrder(t, db, order.ID).RefundStatus)
}

func TestCreateRefundValidationFailures(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 50000)

	_, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 0})
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "refund amount must be greater than zero")

	_, err = svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 60000})
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "refund amount exceeds order total")

	_, err = svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 100, Method: "store_credit"})
	require.ErrorAs(t, err, &validation)

	var count int64
	require.NoError(t, db.Model(&models.Refund{}).Count(&count).Error)
	assert.Zero(t, count, "failed validations must leave no partial writes")
}

func TestCreateRefundUnknownOrder(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	_, err := svc.Create(context.Background(), CreateParams{OrderID: uuid.New(), Amount: 100})
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateRefundRespectsHistory(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 1000)

	first, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 700})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, first.ID)
	require.NoError(t, err)

	// 700 committed; a further 400 would oversubscribe the order.
	_, err = svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 400})
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "refund amount exceeds refundable amount")

	// Exactly the remainder fits.
	_, err = svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 300})
	require.NoError(t, err)
}

func TestApproveRequiresPending(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 1000)

	created, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 500})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundApproved, approved.Status)

	// Approving twice is an invalid transition.
	_, err = svc.Approve(ctx, created.ID)
	var invalidState *apperr.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, models.RefundApproved, invalidState.Current)
}

func TestProcessRequiresApproved(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 1000)

	created, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 500})
	require.NoError(t, err)

	// Straight to processed is forbidden, and the order aggregate is untouched.
	_, err = svc.Process(ctx, created.ID)
	var invalidState *apperr.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, models.RefundStatusNone, reloadOrder(t, db, order.ID).RefundStatus)

	_, err = svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	processed, err := svc.Process(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundProcessed, processed.Status)

	// Processing twice is also forbidden.
	_, err = svc.Process(ctx, created.ID)
	require.ErrorAs(t, err, &invalidState)
}

func TestApproveUnknownRefund(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	_, err := svc.Approve(context.Background(), uuid.New())
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPartialThenFullRefundLifecycle(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 50000)

	refundA, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 20000, Reason: "scratched top"})
	require.NoError(t, err)
	assert.Equal(t, models.RefundPending, refundA.Status)

	_, err = svc.Approve(ctx, refundA.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusPartial, reloadOrder(t, db, order.ID).RefundStatus)

	// Exactly the remaining 30000 fits.
	refundB, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 30000, Reason: "order cancelled in transit"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, refundB.ID)
	require.NoError(t, err)
	_, err = svc.Process(ctx, refundA.ID)
	require.NoError(t, err)
	_, err = svc.Process(ctx, refundB.ID)
	require.NoError(t, err)

	final := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.RefundStatusFull, final.RefundStatus)

	// Any further refund attempt is rejected.
	_, err = svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 1})
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)

	// Committed refunds never exceed the order total.
	var committed int64
	require.NoError(t, db.Model(&models.Refund{}).
		Where("order_id = ? AND status IN ?", order.ID, []string{models.RefundApproved, models.RefundProcessed}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&committed).Error)
	assert.LessOrEqual(t, committed, final.TotalAmount)
}

func TestApproveRejectsOversubscribedPendingRefunds(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 1000)

	// Pending refunds reserve nothing, so both requests are accepted.
	first, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 700})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 700})
	require.NoError(t, err)

	// Only one of them can become committed money.
	_, err = svc.Approve(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, second.ID)
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "refund amount exceeds refundable amount")

	// The rejected refund stays pending and the aggregate stays partial.
	var rejected models.Refund
	require.NoError(t, db.First(&rejected, "id = ?", second.ID).Error)
	assert.Equal(t, models.RefundPending, rejected.Status)
	assert.Equal(t, models.RefundStatusPartial, reloadOrder(t, db, order.ID).RefundStatus)

	var committed int64
	require.NoError(t, db.Model(&models.Refund{}).
		Where("order_id = ? AND status IN ?", order.ID, []string{models.RefundApproved, models.RefundProcessed}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&committed).Error)
	assert.LessOrEqual(t, committed, order.TotalAmount)

	// A smaller second refund that fits the remainder still goes through.
	third, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 300})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusFull, reloadOrder(t, db, order.ID).RefundStatus)
}

func TestListByOrderNewestFirst(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 10000)

	first, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 1000})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 2000})
	require.NoError(t, err)

	refunds, err := svc.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, refunds, 2)
	assert.Equal(t, second.ID, refunds[0].ID)
	assert.Equal(t, first.ID, refunds[1].ID)
}

func TestListPaginates(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()
	order := seedOrder(t, db, 100000)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, CreateParams{OrderID: order.ID, Amount: 100})
		require.NoError(t, err)
	}

	refunds, total, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, refunds, 2)
}
