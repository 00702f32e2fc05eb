// Package persist is the storage boundary. The game only ever sees an
// opaque key-value store of serialized snapshots; whether that is a map in
// memory or a Postgres table is a deployment decision.
package persist

import "context"

// Store is an opaque key-value store of save data, namespaced by slot (one
// slot per game session).
type Store interface {
	Get(ctx context.Context, slot, key string) (data []byte, ok bool, err error)
	Put(ctx context.Context, slot, key string, data []byte) error
	Clear(ctx context.Context, slot string) error
}
