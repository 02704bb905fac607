package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

func newCreditDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:creditrepo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Credit{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestGetCreditBalance_NoRow(t *testing.T) {
	db := newCreditDB(t)

	bal, err := GetCreditBalance(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("GetCreditBalance: %v", err)
	}
	if bal != 0 {
		t.Fatalf("balance = %d; want 0 for missing row", bal)
	}
}

func TestAddCredits_CreatesThenAccumulates(t *testing.T) {
	db := newCreditDB(t)
	ctx := context.Background()

	bal, err := AddCredits(ctx, db, "u1", 300)
	if err != nil {
		t.Fatalf("AddCredits: %v", err)
	}
	if bal != 300 {
		t.Fatalf("balance = %d; want 300", bal)
	}

	bal, err = AddCredits(ctx, db, "u1", 200)
	if err != nil {
		t.Fatalf("AddCredits (second): %v", err)
	}
	if bal != 500 {
		t.Fatalf("balance = %d; want 500", bal)
	}

	// Exactly one row per user.
	var cnt int64
	if err := db.Model(&domain.Credit{}).Where("user_id = ?", "u1").Count(&cnt).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("rows = %d; want 1", cnt)
	}
}

func TestAddCredits_RejectsNonPositive(t *testing.T) {
	db := newCreditDB(t)

	for _, amt := range []int64{0, -5} {
		if _, err := AddCredits(context.Background(), db, "u1", amt); !errors.Is(err, ErrNonPositiveAmount) {
			t.Fatalf("AddCredits(%d): expected ErrNonPositiveAmount, got %v", amt, err)
		}
	}
}

func TestDeductCredits_GuardedUpdate(t *testing.T) {
	db := newCreditDB(t)
	ctx := context.Background()

	if _, err := AddCredits(ctx, db, "u1", 100); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bal, err := DeductCredits(ctx, db, "u1", 60)
	if err != nil {
		t.Fatalf("DeductCredits: %v", err)
	}
	if bal != 40 {
		t.Fatalf("balance = %d; want 40", bal)
	}

	// Over-deduction fails and leaves the balance untouched.
	if _, err := DeductCredits(ctx, db, "u1", 41); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	bal, _ = GetCreditBalance(ctx, db, "u1")
	if bal != 40 {
		t.Fatalf("balance changed on failed deduct: %d", bal)
	}

	// Deducting from a user with no row at all is also insufficient.
	if _, err := DeductCredits(ctx, db, "ghost", 1); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance for missing row, got %v", err)
	}

	if _, err := DeductCredits(ctx, db, "u1", 0); !errors.Is(err, ErrNonPositiveAmount) {
		t.Fatalf("expected ErrNonPositiveAmount, got %v", err)
	}
}
