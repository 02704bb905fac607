// Package repo implements the data persistence layer for the ledger entities,
// backed by GORM. This file provides the token-balance repository: one row
// per (user_id, model_id) holding the tokens allocated to that model.
//
// Error semantics:
//   - IncreaseTokens / DecreaseTokens reject amount <= 0 with
//     ErrNonPositiveAmount.
//   - DecreaseTokens distinguishes a missing row (ErrNotFound, the caller has
//     never allocated to this model) from an existing row that is too small
//     (ErrInsufficientBalance).
//   - On other DB errors the raw gorm error is propagated.
//
// The category-capacity ceiling is deliberately NOT enforced here; that
// policy lives in one place, the allocation engine, which validates projected
// category totals before calling IncreaseTokens.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

// GetTokenBalance returns the allocated tokens for (userID, modelID), or 0
// when no row exists yet. On DB error, it returns the error.
func GetTokenBalance(ctx context.Context, db *gorm.DB, userID, modelID string) (int64, error) {
	var row domain.TokenBalance
	err := db.WithContext(ctx).
		Where("user_id = ? AND model_id = ?", userID, modelID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.AllocatedTokens, nil
}

// ListTokenBalances returns all token balances owned by userID, ordered by
// model ID for stable output. It returns an empty slice if the user has no
// allocations yet.
func ListTokenBalances(ctx context.Context, db *gorm.DB, userID string) ([]domain.TokenBalance, error) {
	var out []domain.TokenBalance
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("model_id asc").
		Find(&out).Error
	return out, err
}

// SumTokens returns the total allocated tokens userID holds across the given
// models. The caller supplies the model set (the pricing catalog knows which
// models form a category; this layer does not). An empty model set sums to 0.
func SumTokens(ctx context.Context, db *gorm.DB, userID string, modelIDs []string) (int64, error) {
	if len(modelIDs) == 0 {
		return 0, nil
	}
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.TokenBalance{}).
		Where("user_id = ? AND model_id IN ?", userID, modelIDs).
		Select("COALESCE(SUM(allocated_tokens), 0)").
		Scan(&total).Error
	return total, err
}

// IncreaseTokens adds amount tokens to (userID, modelID), creating the row on
// first allocation. The increment is applied atomically via an upsert on the
// (user_id, model_id) unique index. Returns the new balance.
func IncreaseTokens(ctx context.Context, db *gorm.DB, userID, modelID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	now := time.Now().UTC()
	row := &domain.TokenBalance{
		ID:              uuid.NewString(),
		UserID:          userID,
		ModelID:         modelID,
		AllocatedTokens: amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "model_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"allocated_tokens": gorm.Expr("allocated_tokens + ?", amount),
				"updated_at":       now,
			}),
		}).
		Create(row).Error
	if err != nil {
		return 0, err
	}
	return GetTokenBalance(ctx, db, userID, modelID)
}

// DecreaseTokens removes amount tokens from (userID, modelID) via a guarded
// UPDATE (WHERE allocated_tokens >= amount). A missing row yields ErrNotFound;
// an existing row with too few tokens yields ErrInsufficientBalance. The
// balance is never driven negative. Returns the new balance on success.
func DecreaseTokens(ctx context.Context, db *gorm.DB, userID, modelID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	res := db.WithContext(ctx).
		Model(&domain.TokenBalance{}).
		Where("user_id = ? AND model_id = ? AND allocated_tokens >= ?", userID, modelID, amount).
		Updates(map[string]any{
			"allocated_tokens": gorm.Expr("allocated_tokens - ?", amount),
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish "never allocated" from "not enough left".
		var cnt int64
		if err := db.WithContext(ctx).
			Model(&domain.TokenBalance{}).
			Where("user_id = ? AND model_id = ?", userID, modelID).
			Count(&cnt).Error; err != nil {
			return 0, err
		}
		if cnt == 0 {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientBalance
	}
	return GetTokenBalance(ctx, db, userID, modelID)
}
