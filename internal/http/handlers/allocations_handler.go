// Allocation HTTP handlers.
//
// This file exposes the REST endpoint that converts prepaid credits into
// per-model token balances:
//   - POST /allocations  (all-or-nothing batch conversion)
//
// A batch either applies completely or not at all: any item failing a
// balance or category-capacity check aborts the entire request with no state
// change, so clients can safely re-read balances afterwards.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-credits-backend/internal/services"
)

// AllocationItemRequest is one requested credit-to-token conversion.
type AllocationItemRequest struct {
	// ModelID names the target model from the pricing catalog.
	ModelID string `json:"model_id" binding:"required" example:"gemini-2.5-flash"`
	// Credits is the credit spend for this model (must buy at least 1 token).
	Credits int64 `json:"credits" binding:"required,gt=0" example:"255"`
}

// AllocateCreditsRequest is the JSON payload for an allocation batch.
type AllocateCreditsRequest struct {
	// Allocations is the non-empty batch, applied in order.
	Allocations []AllocationItemRequest `json:"allocations" binding:"required,min=1,dive"`
}

// AllocateCreditsResponse reports balances after a successful batch.
type AllocateCreditsResponse struct {
	// Credits is the remaining unallocated credit balance.
	Credits int64 `json:"credits" example:"45"`
	// Balances holds the new token balance of every model the batch touched.
	Balances []services.ModelTokens `json:"balances"`
}

// AllocateCredits godoc
// @ID          allocateCredits
// @Summary     Convert credits into model tokens
// @Description Converts credits into per-model token balances, all-or-nothing across the batch. Category ceilings (quick: 5M, think: 1M tokens per user) are enforced over the projected batch totals.
// @Tags        Allocations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.AllocateCreditsRequest true "Allocation batch"
//
// @Success     200  {object} handlers.AllocateCreditsResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid batch or amount"
// @Failure     402  {object} handlers.ErrorResponse "Insufficient credits"
// @Failure     404  {object} handlers.ErrorResponse "Unknown model"
// @Failure     409  {object} handlers.ErrorResponse "Category capacity exceeded"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /allocations [post]
func (h *Handlers) AllocateCredits(c *gin.Context) {
	var req AllocateCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidAmount, "allocations must be a non-empty list of {model_id, credits > 0}")
		return
	}

	items := make([]services.AllocationItem, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		items = append(items, services.AllocationItem{ModelID: a.ModelID, Credits: a.Credits})
	}

	uid := userID(c)
	res, err := h.ledgerSvc.AllocateCredits(c.Request.Context(), uid, items)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			fail(c, http.StatusBadRequest, ErrCodeInvalidAmount, "every allocation must spend enough credits for at least one token")
		case services.ErrInsufficientCredits:
			fail(c, http.StatusPaymentRequired, ErrCodeInsufficientCredits, "not enough credits for this allocation")
		case services.ErrUnknownModel:
			fail(c, http.StatusNotFound, ErrCodeUnknownModel, "model not found in pricing catalog")
		case services.ErrCapacityExceeded:
			fail(c, http.StatusConflict, ErrCodeCapacityExceeded, "allocation would exceed the category token ceiling")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, AllocateCreditsResponse{Credits: res.Credits, Balances: res.Balances})
}
