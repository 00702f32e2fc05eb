package game

import "errors"

// All game errors are local and non-fatal: the worst outcome of any of them
// is that the requested action did not happen.
var (
	// ErrTokenNotFound: a collect named a token id the cache does not hold.
	ErrTokenNotFound = errors.New("token not found in cache")

	// ErrDuplicateToken: a deposit would place a token id already present
	// in the container. Token ids are globally unique, so this always
	// indicates a caller bug rather than a legal game state.
	ErrDuplicateToken = errors.New("token already present")

	// ErrEmptyInventory: deposit requested with nothing held.
	ErrEmptyInventory = errors.New("inventory is empty")

	// ErrCacheNotVisible: the named cell has no materialized cache.
	ErrCacheNotVisible = errors.New("no visible cache at cell")

	// ErrTrackingUnavailable: no geolocation source is configured; the
	// tracking toggle degrades to a no-op.
	ErrTrackingUnavailable = errors.New("location tracking unavailable")
)
