// Credit HTTP handlers.
//
// This file exposes the REST endpoints for the purchased-credit pool:
//   - POST /credits   (record a verified in-app purchase)
//   - GET  /balance   (current credits + per-model token balances)
//
// Purchase verification against the platform store happens upstream; by the
// time a request reaches POST /credits it carries a platform-issued
// transaction identifier, which doubles as the idempotency key that makes
// retries safe.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-credits-backend/internal/http/middleware"
	"github.com/tbourn/go-credits-backend/internal/services"
)

// AddCreditsRequest is the JSON payload for recording a verified purchase.
type AddCreditsRequest struct {
	// Amount is the number of credits the verified purchase grants.
	Amount int64 `json:"amount" binding:"required,gt=0" example:"300"`
	// PlatformTransactionID is the store-issued transaction identifier; it is
	// the idempotency key for this purchase. Falls back to the
	// Idempotency-Key header when omitted.
	PlatformTransactionID string `json:"platform_transaction_id" example:"GPA.3345-1234-5678-90123"`
	// Metadata optionally carries purchase-fact details (platform, SKU, ...).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AddCreditsResponse reports the credit balance after a successful purchase.
type AddCreditsResponse struct {
	// Balance is the user's unallocated credit balance after the purchase.
	Balance int64 `json:"balance" example:"300"`
}

// AddCredits godoc
// @ID          addCredits
// @Summary     Record a verified purchase
// @Description Adds prepaid credits from a verified in-app purchase. Replaying the same platform transaction id is rejected with 409 and adds nothing.
// @Tags        Credits
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Fallback idempotency key when the body carries no platform transaction id"
// @Param       body             body    handlers.AddCreditsRequest true "Purchase fact"
//
// @Success     201  {object} handlers.AddCreditsResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid amount or missing idempotency key"
// @Failure     409  {object} handlers.ErrorResponse "Duplicate platform transaction"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /credits [post]
func (h *Handlers) AddCredits(c *gin.Context) {
	var req AddCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidAmount, "amount must be a positive integer")
		return
	}

	key := strings.TrimSpace(req.PlatformTransactionID)
	if key == "" {
		// Header fallback, validated and stashed by the idempotency middleware.
		key, _ = middleware.GetIdempotencyKey(c)
	}

	uid := userID(c)
	balance, err := h.ledgerSvc.AddCredits(c.Request.Context(), uid, req.Amount, key, req.Metadata)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			fail(c, http.StatusBadRequest, ErrCodeInvalidAmount, "amount must be a positive integer")
		case services.ErrMissingIdempotencyKey:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "platform_transaction_id is required")
		case services.ErrDuplicateTransaction:
			fail(c, http.StatusConflict, ErrCodeDuplicateTransaction, "purchase already recorded")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, AddCreditsResponse{Balance: balance})
}

// TokenBalanceView is one model's token balance in the balance snapshot.
type TokenBalanceView struct {
	ModelID         string `json:"model_id" example:"gemini-2.5-flash"`
	AllocatedTokens int64  `json:"allocated_tokens" example:"1000000"`
}

// BalanceResponse is the full economy snapshot for the current user.
type BalanceResponse struct {
	// Credits is the unallocated credit balance.
	Credits int64 `json:"credits" example:"45"`
	// Tokens lists every per-model token balance, sorted by model id.
	Tokens []TokenBalanceView `json:"tokens"`
}

// GetBalance godoc
// @ID          getBalance
// @Summary     Current balances
// @Description Returns the user's unallocated credits and every per-model token balance. Safe to call after any failed operation; failures never leave partial state.
// @Tags        Credits
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object} handlers.BalanceResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /balance [get]
func (h *Handlers) GetBalance(c *gin.Context) {
	uid := userID(c)

	sum, err := h.ledgerSvc.Balances(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	resp := BalanceResponse{
		Credits: sum.Credits,
		Tokens:  make([]TokenBalanceView, 0, len(sum.Tokens)),
	}
	for _, tb := range sum.Tokens {
		resp.Tokens = append(resp.Tokens, TokenBalanceView{
			ModelID:         tb.ModelID,
			AllocatedTokens: tb.AllocatedTokens,
		})
	}
	ok(c, http.StatusOK, resp)
}
