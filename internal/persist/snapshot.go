package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// The four logical save keys. Each is independently optional on load:
// a missing or malformed key leaves the corresponding in-memory state at
// its default and never aborts loading the rest.
const (
	KeyInventory = "inventory"
	KeyPosition  = "position"
	KeyDirectory = "directory"
	KeyTrail     = "trail"
)

// LatLng is a persisted geographic point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SessionState is the logical shape of a saved session. Nil fields mean
// "not present in the store".
type SessionState struct {
	Inventory []string            // ordered token ids
	Position  *LatLng             // current player position
	Directory map[string][]string // "i,j" → ordered token ids
	Trail     []LatLng            // append-only movement trail
}

// SaveSession writes all four keys for a slot. Writes are synchronous;
// the caller's mutation handler does not return until they complete.
func SaveSession(ctx context.Context, store Store, slot string, st SessionState) error {
	entries := []struct {
		key string
		val any
	}{
		{KeyInventory, st.Inventory},
		{KeyPosition, st.Position},
		{KeyDirectory, st.Directory},
		{KeyTrail, st.Trail},
	}
	for _, e := range entries {
		data, err := json.Marshal(e.val)
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.key, err)
		}
		if err := store.Put(ctx, slot, e.key, data); err != nil {
			return fmt.Errorf("save %s: %w", e.key, err)
		}
	}
	return nil
}

// LoadSession reads whatever is present for a slot. Malformed entries are
// skipped with a warning; store read errors are returned.
func LoadSession(ctx context.Context, store Store, slot string, log *zap.Logger) (SessionState, error) {
	var st SessionState

	if data, ok, err := store.Get(ctx, slot, KeyInventory); err != nil {
		return st, fmt.Errorf("load %s: %w", KeyInventory, err)
	} else if ok {
		if err := json.Unmarshal(data, &st.Inventory); err != nil {
			log.Warn("skipping malformed save entry",
				zap.String("key", KeyInventory), zap.Error(err))
			st.Inventory = nil
		}
	}

	if data, ok, err := store.Get(ctx, slot, KeyPosition); err != nil {
		return st, fmt.Errorf("load %s: %w", KeyPosition, err)
	} else if ok {
		if err := json.Unmarshal(data, &st.Position); err != nil {
			log.Warn("skipping malformed save entry",
				zap.String("key", KeyPosition), zap.Error(err))
			st.Position = nil
		}
	}

	if data, ok, err := store.Get(ctx, slot, KeyDirectory); err != nil {
		return st, fmt.Errorf("load %s: %w", KeyDirectory, err)
	} else if ok {
		if err := json.Unmarshal(data, &st.Directory); err != nil {
			log.Warn("skipping malformed save entry",
				zap.String("key", KeyDirectory), zap.Error(err))
			st.Directory = nil
		}
	}

	if data, ok, err := store.Get(ctx, slot, KeyTrail); err != nil {
		return st, fmt.Errorf("load %s: %w", KeyTrail, err)
	} else if ok {
		if err := json.Unmarshal(data, &st.Trail); err != nil {
			log.Warn("skipping malformed save entry",
				zap.String("key", KeyTrail), zap.Error(err))
			st.Trail = nil
		}
	}

	return st, nil
}
