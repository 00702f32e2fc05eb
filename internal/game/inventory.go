package game

// Inventory holds the player's tokens in collection order. Deposits hand
// back the earliest-collected token first (FIFO). That is a policy, not
// an accident of storage.
type Inventory struct {
	tokens []Token
}

func NewInventory() *Inventory {
	return &Inventory{tokens: make([]Token, 0, 8)}
}

func (inv *Inventory) Len() int { return len(inv.tokens) }

// Tokens returns a copy of the held tokens in collection order.
func (inv *Inventory) Tokens() []Token {
	out := make([]Token, len(inv.tokens))
	copy(out, inv.tokens)
	return out
}

// IDs returns the held token ids in collection order.
func (inv *Inventory) IDs() []string {
	out := make([]string, len(inv.tokens))
	for i, t := range inv.tokens {
		out[i] = t.ID
	}
	return out
}

// Has reports whether the inventory holds the given token id.
func (inv *Inventory) Has(tokenID string) bool {
	for _, t := range inv.tokens {
		if t.ID == tokenID {
			return true
		}
	}
	return false
}

// Collect appends a token. Duplicate ids are rejected for the same reason
// caches reject them.
func (inv *Inventory) Collect(t Token) error {
	if inv.Has(t.ID) {
		return ErrDuplicateToken
	}
	inv.tokens = append(inv.tokens, t)
	return nil
}

// DepositOldest removes and returns the earliest-collected token, or fails
// with ErrEmptyInventory.
func (inv *Inventory) DepositOldest() (Token, error) {
	if len(inv.tokens) == 0 {
		return Token{}, ErrEmptyInventory
	}
	t := inv.tokens[0]
	inv.tokens = inv.tokens[1:]
	return t, nil
}

// pushFront returns a token to the head of the queue, undoing a
// DepositOldest whose hand-off failed.
func (inv *Inventory) pushFront(t Token) {
	inv.tokens = append([]Token{t}, inv.tokens...)
}

// Load replaces the held tokens from a persisted id list.
func (inv *Inventory) Load(ids []string) {
	inv.tokens = make([]Token, len(ids))
	for i, id := range ids {
		inv.tokens[i] = Token{ID: id}
	}
}

// Clear empties the inventory. Full game reset only.
func (inv *Inventory) Clear() {
	inv.tokens = inv.tokens[:0]
}
