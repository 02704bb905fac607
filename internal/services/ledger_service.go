// Package services – LedgerService
//
// This file implements LedgerService, the application-level component that
// owns the movement of value between purchased credits, per-model token
// balances, and the append-only transaction log. Its three mutating
// operations (AddCredits, AllocateCredits, ConsumeTokens) each run as a
// single database transaction: every read-check-write step commits together
// or not at all, so a failure never leaves partial state behind.
//
// Value flows one way: purchase → credit balance → allocation → token balance
// → consumption, and every transition is represented by exactly one immutable
// transaction row.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include user/model identifiers and amounts where applicable.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-credits-backend/internal/domain"
	"github.com/tbourn/go-credits-backend/internal/pricing"
	"github.com/tbourn/go-credits-backend/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LedgerService coordinates the credit ledger, token balances, pricing
// catalog, and transaction log behind the three public billing operations.
type LedgerService struct {
	// DB is the GORM handle used for persistence. Each public operation opens
	// its own transaction on it.
	DB *gorm.DB
	// Catalog is the immutable pricing table, constructed once at startup.
	Catalog *pricing.Catalog
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(db *gorm.DB, catalog *pricing.Catalog) *LedgerService {
	return &LedgerService{DB: db, Catalog: catalog}
}

// AllocationItem is one requested conversion of credits into tokens for a
// specific model.
type AllocationItem struct {
	ModelID string `json:"model_id"`
	Credits int64  `json:"credits"`
}

// ModelTokens pairs a model with its current allocated-token balance.
type ModelTokens struct {
	ModelID string `json:"model_id"`
	Tokens  int64  `json:"tokens"`
}

// AllocationResult reports the state after a successful allocation batch:
// the remaining credit balance and the new token balance of every model the
// batch touched.
type AllocationResult struct {
	Credits  int64         `json:"credits"`
	Balances []ModelTokens `json:"balances"`
}

// BalanceSummary is a read-only snapshot of a user's economy: unallocated
// credits plus every per-model token balance.
type BalanceSummary struct {
	Credits int64                 `json:"credits"`
	Tokens  []domain.TokenBalance `json:"tokens"`
}

// AddCredits records a verified purchase: it appends a purchase entry keyed
// by the platform transaction identifier and increases the user's credit
// balance, atomically. Replaying the same idempotency key fails the whole
// operation with ErrDuplicateTransaction and adds nothing; the append is
// attempted first, so the unique index on the log is what prevents double
// crediting, not a read-then-write check.
//
// metadata, when non-nil, is stored verbatim on the purchase entry (e.g. the
// platform name or product SKU from the purchase fact).
//
// Returns the new credit balance.
func (s *LedgerService) AddCredits(ctx context.Context, userID string, amount int64, idempotencyKey string, metadata map[string]any) (int64, error) {
	tr := otel.Tracer("services/LedgerService")
	ctx, span := tr.Start(ctx, "AddCredits",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int64("credits.amount", amount),
		),
	)
	defer span.End()

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return 0, ErrMissingIdempotencyKey
	}
	meta, err := encodeMetadata(metadata)
	if err != nil {
		return 0, err
	}

	var newBalance int64
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Append the purchase entry; the unique key is the idempotency gate.
		if _, err := repo.AppendTransaction(ctx, tx, userID, domain.TxPurchase, amount, nil, &idempotencyKey, meta); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrDuplicateTransaction
			}
			return err
		}
		// 2) Credit the ledger.
		bal, err := repo.AddCredits(ctx, tx, userID, amount)
		if err != nil {
			return err
		}
		newBalance = bal
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// AllocateCredits converts credits into per-model tokens, all-or-nothing
// across the whole batch.
//
// Semantics and validation:
//   - The batch must be non-empty and every item's credits strictly positive;
//     otherwise ErrInvalidAmount (a spend too small to buy one whole token is
//     rejected the same way).
//   - The batch total must not exceed the unallocated balance; otherwise
//     ErrInsufficientCredits with no state change.
//   - Items are checked in the order given: each item's tokens are added to a
//     running per-category total (seeded from the stored balances), and the
//     first item that would breach its category ceiling aborts the entire
//     batch with ErrCapacityExceeded.
//   - Only after every item passes are the token increases, the per-model
//     allocation entries, and the single credit deduction applied.
//
// Returns the remaining credit balance and the new token balance of every
// model the batch touched, sorted by model ID.
func (s *LedgerService) AllocateCredits(ctx context.Context, userID string, items []AllocationItem) (*AllocationResult, error) {
	tr := otel.Tracer("services/LedgerService")
	ctx, span := tr.Start(ctx, "AllocateCredits",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("allocations.count", len(items)),
		),
	)
	defer span.End()

	if len(items) == 0 {
		return nil, ErrInvalidAmount
	}
	var total int64
	for _, it := range items {
		if it.Credits <= 0 {
			return nil, ErrInvalidAmount
		}
		total += it.Credits
	}

	var result AllocationResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) The whole batch must fit the unallocated balance.
		balance, err := repo.GetCreditBalance(ctx, tx, userID)
		if err != nil {
			return err
		}
		if total > balance {
			return ErrInsufficientCredits
		}

		// 2) Check every item before touching anything. Category totals are
		// read once and projected forward across the batch so earlier items
		// count against later ones.
		type plannedItem struct {
			modelID string
			credits int64
			tokens  int64
		}
		planned := make([]plannedItem, 0, len(items))
		categoryTotals := make(map[string]int64)
		for _, it := range items {
			tokens, err := s.tokensFor(it.ModelID, it.Credits)
			if err != nil {
				return err
			}
			entry, err := s.Catalog.Lookup(it.ModelID)
			if err != nil {
				return ErrUnknownModel
			}
			base, seen := categoryTotals[entry.Category]
			if !seen {
				base, err = repo.SumTokens(ctx, tx, userID, s.Catalog.ModelsIn(entry.Category))
				if err != nil {
					return err
				}
			}
			projected := base + tokens
			if projected > pricing.Capacity(entry.Category) {
				return ErrCapacityExceeded
			}
			categoryTotals[entry.Category] = projected
			planned = append(planned, plannedItem{modelID: it.ModelID, credits: it.Credits, tokens: tokens})
		}

		// 3) Apply: token increases, one allocation entry per item, then the
		// single credit deduction.
		balances := make(map[string]int64, len(planned))
		for _, p := range planned {
			bal, err := repo.IncreaseTokens(ctx, tx, userID, p.modelID, p.tokens)
			if err != nil {
				return err
			}
			balances[p.modelID] = bal

			meta, err := encodeMetadata(map[string]any{"credits": p.credits})
			if err != nil {
				return err
			}
			modelID := p.modelID
			if _, err := repo.AppendTransaction(ctx, tx, userID, domain.TxAllocation, p.tokens, &modelID, nil, meta); err != nil {
				return err
			}
		}
		newBalance, err := repo.DeductCredits(ctx, tx, userID, total)
		if err != nil {
			if errors.Is(err, repo.ErrInsufficientBalance) {
				return ErrInsufficientCredits
			}
			return err
		}

		result.Credits = newBalance
		result.Balances = make([]ModelTokens, 0, len(balances))
		for modelID, bal := range balances {
			result.Balances = append(result.Balances, ModelTokens{ModelID: modelID, Tokens: bal})
		}
		sort.Slice(result.Balances, func(i, j int) bool {
			return result.Balances[i].ModelID < result.Balances[j].ModelID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ConsumeTokens spends previously allocated tokens after an AI invocation has
// measured its actual usage. Both token counts must be non-negative and their
// sum strictly positive (ErrInvalidAmount otherwise). A model the user never
// allocated to yields ErrNoBalance; a balance too small for the total yields
// ErrInsufficientTokens; in both cases no consumption entry is written.
//
// Returns the remaining token balance for the model.
func (s *LedgerService) ConsumeTokens(ctx context.Context, userID, modelID string, inputTokens, outputTokens int64) (int64, error) {
	tr := otel.Tracer("services/LedgerService")
	ctx, span := tr.Start(ctx, "ConsumeTokens",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("model.id", modelID),
			attribute.Int64("tokens.input", inputTokens),
			attribute.Int64("tokens.output", outputTokens),
		),
	)
	defer span.End()

	if inputTokens < 0 || outputTokens < 0 {
		return 0, ErrInvalidAmount
	}
	total := inputTokens + outputTokens
	if total <= 0 {
		return 0, ErrInvalidAmount
	}

	var remaining int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bal, err := repo.DecreaseTokens(ctx, tx, userID, modelID, total)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNoBalance
			}
			if errors.Is(err, repo.ErrInsufficientBalance) {
				return ErrInsufficientTokens
			}
			return err
		}
		remaining = bal

		meta, err := encodeMetadata(map[string]any{
			"input_tokens":  inputTokens,
			"output_tokens": outputTokens,
		})
		if err != nil {
			return err
		}
		_, err = repo.AppendTransaction(ctx, tx, userID, domain.TxConsumption, total, &modelID, nil, meta)
		return err
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// Balances returns the user's current credit balance and every per-model
// token balance. Callers use it to re-derive state after any failed
// operation; failures never leave partial state, so a plain read suffices.
func (s *LedgerService) Balances(ctx context.Context, userID string) (*BalanceSummary, error) {
	tr := otel.Tracer("services/LedgerService")
	ctx, span := tr.Start(ctx, "Balances",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	credits, err := repo.GetCreditBalance(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	tokens, err := repo.ListTokenBalances(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = []domain.TokenBalance{}
	}
	return &BalanceSummary{Credits: credits, Tokens: tokens}, nil
}

// ListTransactionsPage returns a page of the user's ledger history, most
// recent first. It applies defaults for invalid page/pageSize and returns the
// total count for pagination metadata.
func (s *LedgerService) ListTransactionsPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Transaction, int64, error) {
	tr := otel.Tracer("services/LedgerService")
	ctx, span := tr.Start(ctx, "ListTransactionsPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountTransactions(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Transaction{}, 0, nil
	}

	items, err := repo.ListTransactionsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// tokensFor converts one item's credit spend into tokens, translating the
// catalog's sentinels into service-level errors. A spend that floors to zero
// tokens is rejected: a zero-amount allocation entry would be meaningless in
// the ledger (and violates the log's amount > 0 constraint).
func (s *LedgerService) tokensFor(modelID string, credits int64) (int64, error) {
	tokens, err := s.Catalog.TokensFromCredits(modelID, credits)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownModel) {
			return 0, ErrUnknownModel
		}
		return 0, ErrInvalidAmount
	}
	if tokens == 0 {
		return 0, ErrInvalidAmount
	}
	return tokens, nil
}

// encodeMetadata marshals optional metadata to a JSON string for storage on a
// transaction row. Nil or empty input stores NULL.
func encodeMetadata(m map[string]any) (*string, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
