// Package repo implements the data persistence layer for the ledger entities,
// backed by GORM. This file provides read and seed helpers for the pricing
// table. The engine never writes prices at runtime; rows are maintained by an
// external price-management process and read once at startup into the
// immutable pricing catalog.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

// ListPricing returns every pricing row, ordered by model ID.
func ListPricing(ctx context.Context, db *gorm.DB) ([]domain.Pricing, error) {
	var out []domain.Pricing
	err := db.WithContext(ctx).Order("model_id asc").Find(&out).Error
	return out, err
}

// SeedPricing installs the given rows only when the pricing table is empty. A non-empty table is left untouched so an operator-managed
// price list is never overwritten. Returns true when rows were inserted.
func SeedPricing(ctx context.Context, db *gorm.DB, rows []domain.Pricing) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Pricing{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 || len(rows) == 0 {
		return false, nil
	}
	now := time.Now().UTC()
	for i := range rows {
		rows[i].CreatedAt = now
		rows[i].UpdatedAt = now
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return false, err
	}
	return true, nil
}
