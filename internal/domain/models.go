// Package domain defines the persistence models for the credit/token ledger:
// per-user credit balances, per-model token balances, the pricing table, and
// the append-only transaction log. These types are mapped with GORM and form
// the core data layer of the billing backend.
package domain

import (
	"time"
)

// Transaction types recorded in the ledger. Every balance-changing event is
// represented by exactly one immutable Transaction row of one of these types.
const (
	TxPurchase    = "purchase"
	TxAllocation  = "allocation"
	TxConsumption = "consumption"
)

// Pricing categories. Models in the same category share one capacity ceiling
// per user (see pricing.CategoryCapacity).
const (
	CategoryQuick = "quick"
	CategoryThink = "think"
)

// Credit holds a user's single unallocated-credit balance. One row per user,
// created on first purchase. Mutated only by AddCredits (increase) and
// AllocateCredits (decrease); the balance can never go negative.
//
// Fields:
//   - UserID: owner identifier, primary key (one balance per user).
//   - Credits: current unallocated credits (>= 0, enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Credit struct {
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);primaryKey"`
	Credits   int64     `json:"credits"    gorm:"not null;default:0;check:credits >= 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Credit.
func (Credit) TableName() string { return "credits" }

// TokenBalance holds the tokens a user has allocated to one model. Unique per
// (user_id, model_id); created on first allocation for that model, increased
// by AllocateCredits, decreased by ConsumeTokens.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID / ModelID: owner and model; unique together (ux_user_model).
//   - AllocatedTokens: current balance (>= 0, enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type TokenBalance struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	UserID          string    `json:"user_id"          gorm:"type:varchar(64);not null;uniqueIndex:ux_user_model,priority:1"`
	ModelID         string    `json:"model_id"         gorm:"type:varchar(128);not null;uniqueIndex:ux_user_model,priority:2"`
	AllocatedTokens int64     `json:"allocated_tokens" gorm:"not null;default:0;check:allocated_tokens >= 0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for TokenBalance.
func (TokenBalance) TableName() string { return "token_balances" }

// Pricing is one row of the model price table. Read-only to the engine; rows
// are maintained by an external price-management process and loaded into an
// immutable pricing.Catalog at startup.
//
// Fields:
//   - ModelID: model identifier, primary key.
//   - PricePerMillionTokens: credits per 1,000,000 tokens (> 0).
//   - Category: "quick" or "think" (enforced by DB constraint).
type Pricing struct {
	ModelID               string    `json:"model_id"                 gorm:"type:varchar(128);primaryKey"`
	PricePerMillionTokens int64     `json:"price_per_million_tokens" gorm:"not null;check:price_per_million_tokens > 0"`
	Category              string    `json:"category"                 gorm:"type:varchar(16);not null;check:category IN ('quick','think')"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName returns the database table name for Pricing.
func (Pricing) TableName() string { return "pricing" }

// Transaction is one immutable entry of the append-only ledger. Rows are never
// updated or deleted; they are the audit trail that justifies every balance
// and the structural idempotency mechanism for purchases (unique index on
// idempotency_key where non-null; SQLite and Postgres both allow multiple
// NULLs under a unique index).
//
// Amount semantics by type:
//   - purchase:    credits added.
//   - allocation:  tokens granted to ModelID; Metadata carries {"credits": n}
//     so the credit side of the ledger reconciles too.
//   - consumption: tokens spent on ModelID; Metadata carries
//     {"input_tokens": i, "output_tokens": o}.
type Transaction struct {
	ID             string    `json:"id"                        gorm:"type:char(36);primaryKey"`
	UserID         string    `json:"user_id"                   gorm:"type:varchar(64);not null;index:idx_user_txs,priority:1"`
	Type           string    `json:"type"                      gorm:"type:varchar(16);not null;check:type IN ('purchase','allocation','consumption')"`
	Amount         int64     `json:"amount"                    gorm:"not null;check:amount > 0"`
	ModelID        *string   `json:"model_id,omitempty"        gorm:"type:varchar(128)"`
	IdempotencyKey *string   `json:"idempotency_key,omitempty" gorm:"type:varchar(200);uniqueIndex:ux_tx_idem_key"`
	Metadata       *string   `json:"metadata,omitempty"        gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"                gorm:"index:idx_user_txs,priority:2"`
}

// TableName returns the database table name for Transaction.
func (Transaction) TableName() string { return "transactions" }
