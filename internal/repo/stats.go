// Package repo implements the data persistence layer for the ledger entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

// LedgerStats returns aggregate metadata for a user's transaction log: the
// total number of entries and the timestamp of the most recent one.
//
// Because the log is append-only, (count, lastEntry) changes if and only if
// the ledger changed, which makes the pair a cheap, correct ETag source for
// the transaction-history endpoint. When the user has no entries, the
// returned count is 0 and lastEntry is nil.
//
// Return values:
//   - count:     total transactions for userID
//   - lastEntry: pointer to the greatest CreatedAt, or nil if no rows
//   - err:       database error, if any
func LedgerStats(ctx context.Context, db *gorm.DB, userID string) (count int64, lastEntry *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Transaction{}).Where("user_id = ?", userID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
