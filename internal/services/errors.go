// Package services defines the business logic of the credit/token ledger.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Ledger-related errors.
var (
	// ErrInvalidAmount is returned when a caller supplies a non-positive or
	// otherwise malformed quantity (empty allocation batch, negative token
	// counts, a credit spend too small to buy a single token). It is raised
	// before any mutation.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMissingIdempotencyKey is returned when a purchase arrives without a
	// platform transaction identifier to deduplicate on.
	ErrMissingIdempotencyKey = errors.New("idempotency key is required")

	// ErrInsufficientCredits is returned when an allocation batch requests
	// more credits than the user's unallocated balance holds.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInsufficientTokens is returned when a consumption exceeds the tokens
	// allocated to the model.
	ErrInsufficientTokens = errors.New("insufficient tokens")

	// ErrNoBalance is returned when a consumption targets a model the user
	// has never allocated tokens to.
	ErrNoBalance = errors.New("no token balance for model")

	// ErrCapacityExceeded is returned when an allocation would push the
	// user's total tokens in a category above the category ceiling. The whole
	// batch is rejected, not just the offending item.
	ErrCapacityExceeded = errors.New("category capacity exceeded")

	// ErrDuplicateTransaction is returned when a purchase replays an
	// idempotency key already present in the transaction log. No credits are
	// added on replay.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrUnknownModel is returned when an allocation names a model absent
	// from the pricing catalog. This is a configuration/data problem, not a
	// billing one.
	ErrUnknownModel = errors.New("unknown model")
)
