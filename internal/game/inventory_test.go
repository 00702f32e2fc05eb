package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryFIFO(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Collect(Token{ID: "A"}))
	require.NoError(t, inv.Collect(Token{ID: "B"}))
	require.NoError(t, inv.Collect(Token{ID: "C"}))

	// Earliest-collected comes back first, every time.
	for _, want := range []string{"A", "B", "C"} {
		tok, err := inv.DepositOldest()
		require.NoError(t, err)
		assert.Equal(t, want, tok.ID)
	}
	assert.Zero(t, inv.Len())
}

func TestDepositOldestEmpty(t *testing.T) {
	inv := NewInventory()
	_, err := inv.DepositOldest()
	require.ErrorIs(t, err, ErrEmptyInventory)
}

func TestInventoryRejectsDuplicate(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Collect(Token{ID: "A"}))
	require.ErrorIs(t, inv.Collect(Token{ID: "A"}), ErrDuplicateToken)
	assert.Equal(t, 1, inv.Len())
}

func TestInventoryIDsOrdered(t *testing.T) {
	inv := NewInventory()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, inv.Collect(Token{ID: id}))
	}
	assert.Equal(t, []string{"c", "a", "b"}, inv.IDs())
}

func TestInventoryLoadAndClear(t *testing.T) {
	inv := NewInventory()
	inv.Load([]string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, inv.IDs())

	inv.Clear()
	assert.Zero(t, inv.Len())
}

func TestInventoryPushFront(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Collect(Token{ID: "B"}))
	inv.pushFront(Token{ID: "A"})

	tok, err := inv.DepositOldest()
	require.NoError(t, err)
	assert.Equal(t, "A", tok.ID)
}
