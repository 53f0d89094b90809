package domain

import "errors"

var (
	// ErrNotFound is returned when a budget, transaction, campaign or alert
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount is returned for non-positive or malformed amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidID is returned for malformed identifiers.
	ErrInvalidID = errors.New("malformed identifier")

	// ErrInsufficientBalance is returned when a deduction exceeds the
	// budget's current balance. No state is changed.
	ErrInsufficientBalance = errors.New("insufficient budget balance")

	// ErrDuplicateTransaction is returned when a cashback transaction with
	// the same (merchant_id, original_transaction_id) pair already exists.
	ErrDuplicateTransaction = errors.New("cashback transaction already exists for original transaction")

	// ErrInvalidStateTransition is returned for illegal lifecycle moves on
	// cashback transactions or campaigns.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrConcurrencyConflict is returned when a row lock could not be
	// acquired within the store's lock timeout. Callers may retry with
	// backoff.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)
