package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	saved := SessionState{
		Inventory: []string{"0:0#0", "3:-2#1"},
		Position:  &LatLng{Lat: 36.9894, Lng: -122.0627},
		Directory: map[string][]string{
			"0,0":  {"0:0#1", "0:0#2"},
			"3,-2": {},
		},
		Trail: []LatLng{{Lat: 0, Lng: 0}, {Lat: 0.0001, Lng: 0}},
	}
	require.NoError(t, SaveSession(ctx, store, "slot-a", saved))

	loaded, err := LoadSession(ctx, store, "slot-a", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, saved.Inventory, loaded.Inventory)
	assert.Equal(t, saved.Position, loaded.Position)
	assert.Equal(t, saved.Directory, loaded.Directory)
	assert.Equal(t, saved.Trail, loaded.Trail)
}

func TestLoadEmptySlot(t *testing.T) {
	loaded, err := LoadSession(context.Background(), NewMemStore(), "nothing", zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, loaded.Inventory)
	assert.Nil(t, loaded.Position)
	assert.Nil(t, loaded.Directory)
	assert.Nil(t, loaded.Trail)
}

func TestLoadSkipsMalformedEntries(t *testing.T) {
	// A corrupt entry is dropped with a warning; the rest still loads.
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, store.Put(ctx, "s", KeyInventory, []byte(`{"not":"a list"}`)))
	require.NoError(t, store.Put(ctx, "s", KeyPosition, []byte(`{"lat":1,"lng":2}`)))
	require.NoError(t, store.Put(ctx, "s", KeyDirectory, []byte(`garbage`)))
	require.NoError(t, store.Put(ctx, "s", KeyTrail, []byte(`[{"lat":0,"lng":0}]`)))

	loaded, err := LoadSession(ctx, store, "s", zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, loaded.Inventory)
	assert.Nil(t, loaded.Directory)
	require.NotNil(t, loaded.Position)
	assert.Equal(t, 1.0, loaded.Position.Lat)
	assert.Len(t, loaded.Trail, 1)
}

func TestSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, SaveSession(ctx, store, "a", SessionState{Inventory: []string{"x"}}))
	require.NoError(t, SaveSession(ctx, store, "b", SessionState{Inventory: []string{"y"}}))

	a, err := LoadSession(ctx, store, "a", zap.NewNop())
	require.NoError(t, err)
	b, err := LoadSession(ctx, store, "b", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, a.Inventory)
	assert.Equal(t, []string{"y"}, b.Inventory)
}
