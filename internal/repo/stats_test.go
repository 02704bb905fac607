package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

func newStatsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:statsrepo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Transaction{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestLedgerStats_Empty(t *testing.T) {
	db := newStatsDB(t)

	count, last, err := LedgerStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("LedgerStats: %v", err)
	}
	if count != 0 || last != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, last)
	}
}

func TestLedgerStats_CountAndLatest(t *testing.T) {
	db := newStatsDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		rec := &domain.Transaction{
			ID:        fmt.Sprintf("t%d", i),
			UserID:    "u1",
			Type:      domain.TxPurchase,
			Amount:    100,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	// Other users don't count.
	other := &domain.Transaction{ID: "x", UserID: "u2", Type: domain.TxPurchase, Amount: 1, CreatedAt: base.Add(time.Hour)}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed other: %v", err)
	}

	count, last, err := LedgerStats(ctx, db, "u1")
	if err != nil {
		t.Fatalf("LedgerStats: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d; want 3", count)
	}
	if last == nil || !last.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("lastEntry = %v; want %v", last, base.Add(2*time.Minute))
	}
}
