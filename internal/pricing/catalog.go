// Package pricing provides an immutable, concurrency-safe catalog of per-model
// prices and categories, plus the pure credit↔token conversion math used by
// the allocation engine. It is intentionally small and dependency-free, but
// engineered with production-grade ergonomics:
//
//   - No logging and no I/O in the library (callers load rows and log)
//   - Immutable, read-only catalog after construction (safe for concurrent use
//     and safe to call inside any database transaction)
//   - Startup-time validation: every entry must have a positive price and a
//     known category, and model identifiers must be unique
//   - Deterministic integer math (floor division, no floating point)
//
// Conversion uses a fixed unit of 1,000,000 tokens: a model priced at P
// credits per million tokens yields floor(credits / P × 1,000,000) tokens for
// a given credit spend.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// TokensPerUnit is the pricing unit: prices are expressed in credits per this
// many tokens.
const TokensPerUnit = 1_000_000

// Categories group models that share one per-user capacity ceiling.
const (
	CategoryQuick = "quick"
	CategoryThink = "think"
)

// CategoryCapacity is the maximum number of tokens a user may hold in total
// across all models of a category, at any instant.
var CategoryCapacity = map[string]int64{
	CategoryQuick: 5_000_000,
	CategoryThink: 1_000_000,
}

// Sentinel errors returned by catalog lookups and conversion math.
var (
	// ErrUnknownModel indicates a model identifier absent from the catalog.
	ErrUnknownModel = errors.New("unknown model")

	// ErrNegativeAmount indicates a negative credit or token quantity was
	// passed to a conversion; this is a caller precondition violation.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrAmountTooLarge indicates a quantity whose conversion would overflow
	// 64-bit integer math.
	ErrAmountTooLarge = errors.New("amount too large")
)

// Entry is one model's pricing row: price in credits per million tokens and
// the capacity category the model belongs to.
type Entry struct {
	ModelID               string
	PricePerMillionTokens int64
	Category              string
}

// Catalog is the validated, read-only pricing table keyed by model ID.
// Construct it once at process start with NewCatalog and inject it; the
// zero value is not usable.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog validates entries and builds an immutable catalog.
//
// Validation rules:
//   - model IDs must be non-empty and unique
//   - prices must be strictly positive
//   - every category must be one with a known capacity ceiling
func NewCatalog(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errors.New("pricing: catalog must not be empty")
	}
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.ModelID == "" {
			return nil, errors.New("pricing: entry with empty model id")
		}
		if _, dup := m[e.ModelID]; dup {
			return nil, fmt.Errorf("pricing: duplicate model %q", e.ModelID)
		}
		if e.PricePerMillionTokens <= 0 {
			return nil, fmt.Errorf("pricing: model %q has non-positive price %d", e.ModelID, e.PricePerMillionTokens)
		}
		if _, ok := CategoryCapacity[e.Category]; !ok {
			return nil, fmt.Errorf("pricing: model %q has unknown category %q", e.ModelID, e.Category)
		}
		m[e.ModelID] = e
	}
	return &Catalog{entries: m}, nil
}

// Lookup returns the pricing entry for modelID, or ErrUnknownModel.
func (c *Catalog) Lookup(modelID string) (Entry, error) {
	e, ok := c.entries[modelID]
	if !ok {
		return Entry{}, fmt.Errorf("pricing: %w: %s", ErrUnknownModel, modelID)
	}
	return e, nil
}

// Models returns all entries sorted by model ID (stable order for display
// and tests).
func (c *Catalog) Models() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out
}

// ModelsIn returns the IDs of all catalog models in the given category,
// sorted. The allocation engine uses this set to compute per-category token
// totals; category membership is knowledge this package owns, not the store.
func (c *Catalog) ModelsIn(category string) []string {
	var out []string
	for id, e := range c.entries {
		if e.Category == category {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// TokensFromCredits converts a credit spend into whole tokens for modelID:
// floor(credits / price × 1,000,000). Negative credits are a precondition
// violation (ErrNegativeAmount).
func (c *Catalog) TokensFromCredits(modelID string, credits int64) (int64, error) {
	e, err := c.Lookup(modelID)
	if err != nil {
		return 0, err
	}
	if credits < 0 {
		return 0, ErrNegativeAmount
	}
	if credits > math.MaxInt64/TokensPerUnit {
		return 0, ErrAmountTooLarge
	}
	return credits * TokensPerUnit / e.PricePerMillionTokens, nil
}

// CreditsFromTokens converts a token quantity back into credits for modelID:
// floor(tokens / 1,000,000 × price). Negative tokens are a precondition
// violation (ErrNegativeAmount).
func (c *Catalog) CreditsFromTokens(modelID string, tokens int64) (int64, error) {
	e, err := c.Lookup(modelID)
	if err != nil {
		return 0, err
	}
	if tokens < 0 {
		return 0, ErrNegativeAmount
	}
	if tokens > math.MaxInt64/e.PricePerMillionTokens {
		return 0, ErrAmountTooLarge
	}
	return tokens * e.PricePerMillionTokens / TokensPerUnit, nil
}

// Capacity returns the per-user token ceiling for a category, or 0 for an
// unknown category (NewCatalog guarantees engine code never sees one).
func Capacity(category string) int64 {
	return CategoryCapacity[category]
}

// DefaultEntries is the built-in price list installed by the startup seed when
// the pricing table is empty. Prices are credits per million tokens.
func DefaultEntries() []Entry {
	return []Entry{
		{ModelID: "gemini-2.5-flash", PricePerMillionTokens: 255, Category: CategoryQuick},
		{ModelID: "gemini-2.5-flash-lite", PricePerMillionTokens: 100, Category: CategoryQuick},
		{ModelID: "gemini-2.5-pro", PricePerMillionTokens: 1250, Category: CategoryThink},
		{ModelID: "o4-mini", PricePerMillionTokens: 1100, Category: CategoryThink},
	}
}
