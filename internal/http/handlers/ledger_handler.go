// Ledger HTTP handlers: shared scaffolding.
//
// This file defines the service contract consumed by the billing endpoints,
// the Handlers container, and small helpers (user identity extraction,
// pagination clamping) shared across the endpoint files:
//   - credits_handler.go       POST /credits, GET /balance
//   - allocations_handler.go   POST /allocations
//   - usage_handler.go         POST /usage
//   - transactions_handler.go  GET  /transactions
//
// Handlers are transport-thin: they validate input, call the application
// service, and translate results into HTTP responses.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-credits-backend/internal/domain"
	"github.com/tbourn/go-credits-backend/internal/services"
	"github.com/tbourn/go-credits-backend/internal/utils"
)

//
// Service contract (context-aware)
//

// LedgerService defines the billing operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type LedgerService interface {
	// AddCredits records a verified purchase and returns the new credit balance.
	AddCredits(ctx context.Context, userID string, amount int64, idempotencyKey string, metadata map[string]any) (int64, error)
	// AllocateCredits converts credits into per-model tokens, all-or-nothing.
	AllocateCredits(ctx context.Context, userID string, items []services.AllocationItem) (*services.AllocationResult, error)
	// ConsumeTokens spends allocated tokens and returns the remaining balance.
	ConsumeTokens(ctx context.Context, userID, modelID string, inputTokens, outputTokens int64) (int64, error)
	// Balances returns the user's credit balance and all token balances.
	Balances(ctx context.Context, userID string) (*services.BalanceSummary, error)
	// ListTransactionsPage returns a page of ledger history and the total count.
	ListTransactionsPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Transaction, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the billing API. It depends on the
// abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	ledgerSvc LedgerService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(ledgerSvc LedgerService) *Handlers {
	return &Handlers{ledgerSvc: ledgerSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// Pagination is the standard pagination envelope embedded in list responses.
type Pagination struct {
	// Page is the 1-based page number of this result set.
	Page int `json:"page" example:"1"`
	// PageSize is the number of items requested per page.
	PageSize int `json:"page_size" example:"20"`
	// Total is the total number of items across all pages.
	Total int64 `json:"total" example:"42"`
	// TotalPages is the number of pages at the current page size.
	TotalPages int `json:"total_pages" example:"3"`
	// HasNext indicates whether another page exists after this one.
	HasNext bool `json:"has_next" example:"true"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
