package game

import (
	"fmt"

	"github.com/geocoin/server/internal/geo"
)

// Token is a uniquely identified collectible. Identity is the id string
// alone ("<i>:<j>#<k>", where (i,j) is the minting cell and k the zero-based
// mint index); equality is string equality. A token lives in exactly one
// container at a time: a cache or the player inventory.
type Token struct {
	ID string
}

// MintToken builds the k-th token for a cell.
func MintToken(c geo.Cell, k int) Token {
	return Token{ID: fmt.Sprintf("%d:%d#%d", c.I, c.J, k)}
}
