package game

import (
	"github.com/paulmach/orb"

	"github.com/geocoin/server/internal/geo"
)

// Memento is an ordered snapshot of a cache's token ids. It is the entire
// persisted state of a cache: restoring a fresh cache from a memento and
// re-serializing it must reproduce the memento exactly.
type Memento []string

// Equal reports whether two mementos hold the same ids in the same order.
func (m Memento) Equal(other Memento) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m Memento) Clone() Memento {
	if m == nil {
		return nil
	}
	out := make(Memento, len(m))
	copy(out, m)
	return out
}

// Cache is the in-memory state of one cell's token cache. Identity is the
// owning cell; the anchor point is the cell's bound center. Not safe for
// concurrent use; callers serialize access (the session owns mutation).
type Cache struct {
	cell     geo.Cell
	location orb.Point
	tokens   []Token
}

func NewCache(cell geo.Cell, location orb.Point, tokens []Token) *Cache {
	c := &Cache{cell: cell, location: location}
	c.tokens = append(c.tokens, tokens...)
	return c
}

func (c *Cache) Cell() geo.Cell      { return c.cell }
func (c *Cache) Location() orb.Point { return c.location }
func (c *Cache) Len() int            { return len(c.tokens) }

// Tokens returns a copy of the held tokens in order.
func (c *Cache) Tokens() []Token {
	out := make([]Token, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Has reports whether the cache currently holds the given token id.
func (c *Cache) Has(tokenID string) bool {
	for _, t := range c.tokens {
		if t.ID == tokenID {
			return true
		}
	}
	return false
}

// Serialize produces the ordered id list. Side-effect free.
func (c *Cache) Serialize() Memento {
	m := make(Memento, len(c.tokens))
	for i, t := range c.tokens {
		m[i] = t.ID
	}
	return m
}

// Restore replaces the token set with tokens reconstructed from the
// memento. Reconstruction is by id only; token identity is solely the id
// string, so nothing is lost.
func (c *Cache) Restore(m Memento) {
	c.tokens = make([]Token, len(m))
	for i, id := range m {
		c.tokens[i] = Token{ID: id}
	}
}

// Collect removes and returns the token with the given id, or fails with
// ErrTokenNotFound. A miss never changes state.
func (c *Cache) Collect(tokenID string) (Token, error) {
	for i, t := range c.tokens {
		if t.ID == tokenID {
			c.tokens = append(c.tokens[:i], c.tokens[i+1:]...)
			return t, nil
		}
	}
	return Token{}, ErrTokenNotFound
}

// Deposit appends a token. A token id already present is rejected with
// ErrDuplicateToken: ids are globally unique, so a duplicate means the
// caller is trying to clone a token.
func (c *Cache) Deposit(t Token) error {
	if c.Has(t.ID) {
		return ErrDuplicateToken
	}
	c.tokens = append(c.tokens, t)
	return nil
}
