package stock

import (
	"context"
	"io"
	"testing"

	"github.com/avendra/hotelops-backend/internal/audit"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.InventoryItem{}, &models.InventoryTransaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc := NewService(testTxRunner{db: gdb}, NewRepository(gdb), logg, audit.Noop(), nil)
	return svc, gdb
}

func seedItem(t *testing.T, gdb *gorm.DB, hotelID uuid.UUID, qty, reorder string) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		ID:           uuid.New(),
		HotelID:      hotelID,
		Name:         "basmati rice",
		BaseUnit:     enums.StockUnitGram,
		BaseStockQty: decimal.RequireFromString(qty),
		ReorderLevel: decimal.RequireFromString(reorder),
	}
	if err := gdb.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func reloadItem(t *testing.T, gdb *gorm.DB, id uuid.UUID) *models.InventoryItem {
	t.Helper()
	var item models.InventoryItem
	if err := gdb.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	return &item
}

func TestApplyTransactionReceiveThenIssue(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	actorID := uuid.New()
	item := seedItem(t, gdb, hotelID, "1000", "100")

	res, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionReceive,
		Qty:     decimal.RequireFromString("500"),
		ActorID: actorID,
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if !res.NewQty.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("expected qty 1500 after receive, got %s", res.NewQty)
	}
	if !res.Transaction.QtyBase.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected ledger delta +500, got %s", res.Transaction.QtyBase)
	}

	res, err = svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionIssue,
		Qty:     decimal.RequireFromString("400"),
		ActorID: actorID,
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !res.NewQty.Equal(decimal.RequireFromString("1100")) {
		t.Fatalf("expected qty 1100 after issue, got %s", res.NewQty)
	}
	if !res.Transaction.QtyBase.Equal(decimal.RequireFromString("-400")) {
		t.Fatalf("expected ledger delta -400, got %s", res.Transaction.QtyBase)
	}

	reloaded := reloadItem(t, gdb, item.ID)
	if !reloaded.BaseStockQty.Equal(decimal.RequireFromString("1100")) {
		t.Fatalf("persisted qty mismatch: %s", reloaded.BaseStockQty)
	}

	// Committed entries must sum to the net change against the seeded value.
	var deltas []decimal.Decimal
	var rows []models.InventoryTransaction
	if err := gdb.Find(&rows, "item_id = ?", item.ID).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	sum := decimal.Zero
	for _, row := range rows {
		deltas = append(deltas, row.QtyBase)
		sum = sum.Add(row.QtyBase)
	}
	if len(deltas) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(deltas))
	}
	if !sum.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("ledger sum should be +100, got %s", sum)
	}
}

func TestApplyTransactionInsufficientStockLeavesNoTrace(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	item := seedItem(t, gdb, hotelID, "300", "0")

	_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionIssue,
		Qty:     decimal.RequireFromString("301"),
		ActorID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}

	reloaded := reloadItem(t, gdb, item.ID)
	if !reloaded.BaseStockQty.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("rejected transaction changed stock: %s", reloaded.BaseStockQty)
	}
	var count int64
	if err := gdb.Model(&models.InventoryTransaction{}).Where("item_id = ?", item.ID).Count(&count).Error; err != nil {
		t.Fatalf("count ledger: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected transaction left %d ledger entries", count)
	}

	// Draining exactly to zero is allowed.
	res, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionIssue,
		Qty:     decimal.RequireFromString("300"),
		ActorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("drain to zero: %v", err)
	}
	if !res.NewQty.IsZero() {
		t.Fatalf("expected zero stock, got %s", res.NewQty)
	}
}

func TestApplyTransactionAdjustmentSignRules(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	item := seedItem(t, gdb, hotelID, "100", "0")

	_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionAdjustment,
		Qty:     decimal.Zero,
		ActorID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for zero adjustment, got %v", err)
	}

	res, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionAdjustment,
		Qty:     decimal.RequireFromString("-40"),
		ActorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("negative adjustment: %v", err)
	}
	if !res.NewQty.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected qty 60, got %s", res.NewQty)
	}

	_, err = svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionReceive,
		Qty:     decimal.RequireFromString("-5"),
		ActorID: uuid.New(),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for negative receive, got %v", err)
	}
}

type countingTxRunner struct {
	inner testTxRunner
	calls int
}

func (r *countingTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.calls++
	return r.inner.WithTx(ctx, fn)
}

func TestApplyTransactionValidatesBeforeOpeningTx(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	runner := &countingTxRunner{inner: testTxRunner{db: gdb}}
	svc := NewService(runner, NewRepository(gdb), logg, audit.Noop(), nil)
	item := seedItem(t, gdb, uuid.New(), "100", "0")

	_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: item.HotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionIssue,
		Qty:     decimal.RequireFromString("-10"),
		ActorID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if runner.calls != 0 {
		t.Fatalf("malformed movement opened %d transaction(s)", runner.calls)
	}

	_, err = svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: item.HotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionType("melt"),
		Qty:     decimal.RequireFromString("10"),
		ActorID: uuid.New(),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for unknown type, got %v", err)
	}
	if runner.calls != 0 {
		t.Fatalf("unknown type opened %d transaction(s)", runner.calls)
	}
}

func TestApplyTransactionTenantScoping(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	item := seedItem(t, gdb, uuid.New(), "50", "0")

	_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: uuid.New(), // different hotel
		ItemID:  item.ID,
		Type:    enums.StockTransactionIssue,
		Qty:     decimal.RequireFromString("10"),
		ActorID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for cross-tenant item, got %v", err)
	}

	_, err = svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: item.HotelID,
		ItemID:  uuid.New(),
		Type:    enums.StockTransactionIssue,
		Qty:     decimal.RequireFromString("10"),
		ActorID: uuid.New(),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown item, got %v", err)
	}
}

func TestApplyTransactionLowStockFlag(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	item := seedItem(t, gdb, hotelID, "120", "100")

	res, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
		HotelID: hotelID,
		ItemID:  item.ID,
		Type:    enums.StockTransactionWastage,
		Qty:     decimal.RequireFromString("30"),
		ActorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("wastage: %v", err)
	}
	if !res.LowStock {
		t.Fatalf("expected low stock flag at qty %s with reorder level 100", res.NewQty)
	}
}

func TestListTransactionsPagination(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	item := seedItem(t, gdb, hotelID, "1000", "0")

	for i := 0; i < 3; i++ {
		_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionInput{
			HotelID: hotelID,
			ItemID:  item.ID,
			Type:    enums.StockTransactionIssue,
			Qty:     decimal.RequireFromString("10"),
			ActorID: uuid.New(),
		})
		if err != nil {
			t.Fatalf("seed ledger entry %d: %v", i, err)
		}
	}

	page, err := svc.ListTransactions(context.Background(), hotelID, item.ID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(page.Transactions) != 2 {
		t.Fatalf("expected 2 rows on first page, got %d", len(page.Transactions))
	}
	if page.NextCursor == "" {
		t.Fatalf("expected a next cursor")
	}

	page, err = svc.ListTransactions(context.Background(), hotelID, item.ID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(page.Transactions) != 1 {
		t.Fatalf("expected 1 row on second page, got %d", len(page.Transactions))
	}
	if page.NextCursor != "" {
		t.Fatalf("expected no cursor past the last page, got %q", page.NextCursor)
	}

	_, err = svc.ListTransactions(context.Background(), uuid.New(), item.ID, pagination.Params{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND listing cross-tenant, got %v", err)
	}
}
