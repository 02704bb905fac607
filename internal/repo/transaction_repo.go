// Package repo implements the data persistence layer for the ledger entities,
// backed by GORM. This file provides the transaction-log repository: the
// append-only record of every balance-changing event.
//
// Rows are immutable once written; no update or delete helper exists here.
// The unique index on idempotency_key is the sole enforcement point for
// purchase idempotency; AppendTransaction maps the resulting conflict to
// ErrDuplicate instead of pre-checking, so two concurrent identical purchase
// submissions cannot race past a read-then-write check.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

// AppendTransaction writes one immutable ledger entry and returns it.
//
// amount must be strictly positive (ErrNonPositiveAmount otherwise). modelID,
// idempotencyKey, and metadata are optional; when idempotencyKey collides
// with an existing row the append is rejected with ErrDuplicate and no row
// is created.
func AppendTransaction(ctx context.Context, db *gorm.DB, userID, txType string, amount int64, modelID, idempotencyKey, metadata *string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	rec := &domain.Transaction{
		ID:             uuid.NewString(),
		UserID:         userID,
		Type:           txType,
		Amount:         amount,
		ModelID:        modelID,
		IdempotencyKey: idempotencyKey,
		Metadata:       metadata,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// FindTransactionByKey returns the transaction recorded under the given
// idempotency key, or ErrNotFound.
func FindTransactionByKey(ctx context.Context, db *gorm.DB, key string) (*domain.Transaction, error) {
	var rec domain.Transaction
	err := db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CountTransactions returns the total number of ledger entries for userID.
func CountTransactions(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListTransactionsPage returns a page of the user's ledger, most recent
// first. Ties on created_at are broken by id so the order is stable across
// pages. Use CountTransactions for pagination metadata.
func ListTransactionsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SumTransactionAmounts totals the amounts of one transaction type for a
// user, optionally scoped to a model (pass nil for purchase entries, which
// carry no model). Reconciliation checks are built on this: current balances
// must always equal the signed sums of the log.
func SumTransactionAmounts(ctx context.Context, db *gorm.DB, userID, txType string, modelID *string) (int64, error) {
	q := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType)
	if modelID != nil {
		q = q.Where("model_id = ?", *modelID)
	}
	var total int64
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
