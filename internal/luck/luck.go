// Package luck provides the deterministic pseudo-random oracle behind all
// procedural cache placement. The same key always yields the same value,
// within a run and across restarts, so cache locations never need to be
// persisted; only mutated cache contents are.
package luck

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Oracle maps a string key to a stable value in [0,1).
type Oracle interface {
	Luck(key string) float64
}

// HashOracle derives values by hashing the key with BLAKE2b, salted by a
// fixed world seed. Different seeds give independent worlds.
type HashOracle struct {
	seed string
}

func New(seed string) *HashOracle {
	return &HashOracle{seed: seed}
}

// Luck hashes seed|key and scales the top 53 bits into [0,1).
func (o *HashOracle) Luck(key string) float64 {
	sum := blake2b.Sum256([]byte(o.seed + "|" + key))
	v := binary.BigEndian.Uint64(sum[:8])
	return float64(v>>11) / (1 << 53)
}
