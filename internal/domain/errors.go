package domain

import "errors"

var (
	// ErrFoodNotFound is returned when a search, detail or barcode lookup
	// yields no usable food. All provider-side failures (transport, decode,
	// missing fields, no positive-mass serving) collapse to this at the
	// client boundary.
	ErrFoodNotFound = errors.New("food not found")

	// ErrProviderFailure is returned when a nutrition provider request fails
	// at the transport or status-code level.
	ErrProviderFailure = errors.New("nutrition provider request failed")

	// ErrTokenFailure is returned when an access token cannot be acquired.
	ErrTokenFailure = errors.New("access token acquisition failed")

	// ErrLedgerWrite is returned when a ledger write does not complete.
	ErrLedgerWrite = errors.New("ledger write failed")

	// ErrInvalidMeal is returned for a meal name outside the four buckets.
	ErrInvalidMeal = errors.New("invalid meal name")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
