package game

// Directory is the authoritative record of cache state, keyed by cell key
// ("i,j"). Entries exist only for cells that rolled a cache; they are
// created on first encounter, overwritten on every mutation, and removed
// only by a full reset. Materialized caches are transient views hydrated
// from, and written back to, this map.
type Directory struct {
	entries map[string]Memento
}

func NewDirectory() *Directory {
	return &Directory{entries: make(map[string]Memento)}
}

func (d *Directory) Has(cellKey string) bool {
	_, ok := d.entries[cellKey]
	return ok
}

// Get returns a copy of the memento for a cell, if present.
func (d *Directory) Get(cellKey string) (Memento, bool) {
	m, ok := d.entries[cellKey]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Put overwrites the entry for a cell. The stored memento is a copy; later
// mutation of the argument cannot corrupt directory state.
func (d *Directory) Put(cellKey string, m Memento) {
	d.entries[cellKey] = m.Clone()
}

func (d *Directory) Len() int { return len(d.entries) }

// Clear drops every entry. Full game reset only.
func (d *Directory) Clear() {
	d.entries = make(map[string]Memento)
}

// Snapshot returns a deep copy of all entries, for persistence.
func (d *Directory) Snapshot() map[string][]string {
	out := make(map[string][]string, len(d.entries))
	for k, m := range d.entries {
		out[k] = m.Clone()
	}
	return out
}

// Load replaces all entries from a persisted snapshot.
func (d *Directory) Load(entries map[string][]string) {
	d.entries = make(map[string]Memento, len(entries))
	for k, ids := range entries {
		d.entries[k] = Memento(ids).Clone()
	}
}
