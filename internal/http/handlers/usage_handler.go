// Usage HTTP handlers.
//
// This file exposes the REST endpoint that spends allocated tokens after an
// AI invocation has measured its actual usage:
//   - POST /usage
//
// The caller (the LLM invocation pipeline) reports input and output token
// counts; their sum is deducted from the model's balance and recorded as one
// consumption entry. On any failure nothing is deducted and nothing is
// recorded.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-credits-backend/internal/services"
)

// ConsumeTokensRequest is the JSON payload reporting measured usage.
type ConsumeTokensRequest struct {
	// ModelID names the model whose token balance is charged.
	ModelID string `json:"model_id" binding:"required" example:"gemini-2.5-flash"`
	// InputTokens is the measured prompt-side token count (>= 0).
	InputTokens int64 `json:"input_tokens" binding:"min=0" example:"400000"`
	// OutputTokens is the measured completion-side token count (>= 0).
	OutputTokens int64 `json:"output_tokens" binding:"min=0" example:"400000"`
}

// ConsumeTokensResponse reports the model balance after the deduction.
type ConsumeTokensResponse struct {
	// RemainingTokens is the model's token balance after this usage.
	RemainingTokens int64 `json:"remaining_tokens" example:"200000"`
}

// ConsumeTokens godoc
// @ID          consumeTokens
// @Summary     Spend allocated tokens
// @Description Deducts input+output tokens from the model's allocated balance and appends one consumption entry to the ledger. The total must be positive.
// @Tags        Usage
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.ConsumeTokensRequest true "Measured usage"
//
// @Success     200  {object} handlers.ConsumeTokensResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid token counts"
// @Failure     402  {object} handlers.ErrorResponse "Insufficient tokens"
// @Failure     404  {object} handlers.ErrorResponse "No balance for model"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /usage [post]
func (h *Handlers) ConsumeTokens(c *gin.Context) {
	var req ConsumeTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidAmount, "input_tokens and output_tokens must be non-negative")
		return
	}

	uid := userID(c)
	remaining, err := h.ledgerSvc.ConsumeTokens(c.Request.Context(), uid, req.ModelID, req.InputTokens, req.OutputTokens)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			fail(c, http.StatusBadRequest, ErrCodeInvalidAmount, "token counts must be non-negative and sum to more than zero")
		case services.ErrNoBalance:
			fail(c, http.StatusNotFound, ErrCodeNoBalance, "no token balance for this model")
		case services.ErrInsufficientTokens:
			fail(c, http.StatusPaymentRequired, ErrCodeInsufficientTokens, "not enough tokens for this usage")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, ConsumeTokensResponse{RemainingTokens: remaining})
}
