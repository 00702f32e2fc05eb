package game

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocoin/server/internal/geo"
)

func TestDirectoryPutGet(t *testing.T) {
	d := NewDirectory()
	assert.False(t, d.Has("0,0"))

	d.Put("0,0", Memento{"0:0#0", "0:0#1"})
	require.True(t, d.Has("0,0"))

	m, ok := d.Get("0,0")
	require.True(t, ok)
	assert.True(t, m.Equal(Memento{"0:0#0", "0:0#1"}))
}

func TestDirectoryCopiesOnPutAndGet(t *testing.T) {
	d := NewDirectory()
	src := Memento{"a"}
	d.Put("1,1", src)
	src[0] = "mutated"

	m, _ := d.Get("1,1")
	assert.Equal(t, "a", m[0])

	m[0] = "also mutated"
	again, _ := d.Get("1,1")
	assert.Equal(t, "a", again[0])
}

func TestDirectoryHydrateSerializeIsIdentity(t *testing.T) {
	// For any entry, hydrating a cache and re-serializing must yield an
	// equal memento; that is the load-bearing persistence invariant.
	d := NewDirectory()
	d.Put("2,3", Memento{"2:3#0", "2:3#1", "2:3#2"})

	m, ok := d.Get("2,3")
	require.True(t, ok)

	c := NewCache(geo.Cell{I: 2, J: 3}, orb.Point{}, nil)
	c.Restore(m)
	again, _ := d.Get("2,3")
	assert.True(t, c.Serialize().Equal(again))
}

func TestDirectorySnapshotLoad(t *testing.T) {
	d := NewDirectory()
	d.Put("0,0", Memento{"0:0#0"})
	d.Put("1,-1", Memento{})

	snap := d.Snapshot()
	assert.Len(t, snap, 2)

	restored := NewDirectory()
	restored.Load(snap)
	assert.Equal(t, 2, restored.Len())
	m, ok := restored.Get("0,0")
	require.True(t, ok)
	assert.True(t, m.Equal(Memento{"0:0#0"}))
}

func TestDirectoryClear(t *testing.T) {
	d := NewDirectory()
	d.Put("0,0", Memento{"x"})
	d.Clear()
	assert.Zero(t, d.Len())
	assert.False(t, d.Has("0,0"))
}
