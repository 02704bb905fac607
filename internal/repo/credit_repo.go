// Package repo implements the data persistence layer for the ledger entities,
// backed by GORM. This file provides the credit-ledger repository: each user
// owns at most one credits row holding their unallocated balance.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business policy, only guarded persistence.
//
// Error semantics:
//   - AddCredits / DeductCredits reject amount <= 0 with ErrNonPositiveAmount.
//   - DeductCredits returns ErrInsufficientBalance when the guarded decrement
//     matches no row; the balance is never driven negative.
//   - On other DB errors the raw gorm error is propagated.
//
// Neither mutator is idempotent on its own; callers invoke them exactly once
// per logical event inside the orchestrating transaction, where the
// transactions table's idempotency key provides replay protection.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

// GetCreditBalance returns the user's unallocated credit balance, or 0 when
// the user has no credits row yet. On DB error, it returns the error.
func GetCreditBalance(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var row domain.Credit
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Credits, nil
}

// AddCredits increases the user's balance by amount, creating the credits row
// on first purchase. The increment is applied atomically via an upsert
// (INSERT ... ON CONFLICT(user_id) DO UPDATE credits = credits + amount), so
// concurrent additions cannot lose updates. Returns the new balance.
func AddCredits(ctx context.Context, db *gorm.DB, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	now := time.Now().UTC()
	row := &domain.Credit{UserID: userID, Credits: amount, CreatedAt: now, UpdatedAt: now}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"credits":    gorm.Expr("credits + ?", amount),
				"updated_at": now,
			}),
		}).
		Create(row).Error
	if err != nil {
		return 0, err
	}
	return GetCreditBalance(ctx, db, userID)
}

// DeductCredits decreases the user's balance by amount via a guarded UPDATE
// (WHERE credits >= amount). When the guard matches no row, because the
// balance is too low or absent, it returns ErrInsufficientBalance and leaves the balance
// untouched. Returns the new balance on success.
func DeductCredits(ctx context.Context, db *gorm.DB, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	res := db.WithContext(ctx).
		Model(&domain.Credit{}).
		Where("user_id = ? AND credits >= ?", userID, amount).
		Updates(map[string]any{
			"credits":    gorm.Expr("credits - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrInsufficientBalance
	}
	return GetCreditBalance(ctx, db, userID)
}
