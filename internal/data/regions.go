// Package data loads static game tables from YAML files.
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Region is a named play area anchor. Sessions start at the anchor of the
// configured region.
type Region struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

// RegionTable holds all known play areas, keyed by name.
type RegionTable struct {
	regions map[string]Region
}

type regionsFile struct {
	Regions []Region `yaml:"regions"`
}

// LoadRegions reads a YAML region table. A missing file is not an error:
// the built-in table is returned so the server runs with zero data files.
func LoadRegions(path string) (*RegionTable, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return builtinRegions(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read regions %s: %w", path, err)
	}
	var f regionsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse regions %s: %w", path, err)
	}
	t := builtinRegions()
	for _, r := range f.Regions {
		if r.Name == "" {
			return nil, fmt.Errorf("parse regions %s: region with empty name", path)
		}
		t.regions[r.Name] = r
	}
	return t, nil
}

// Get looks up a region by name.
func (t *RegionTable) Get(name string) (Region, bool) {
	r, ok := t.regions[name]
	return r, ok
}

// Len returns the number of known regions.
func (t *RegionTable) Len() int { return len(t.regions) }

func builtinRegions() *RegionTable {
	t := &RegionTable{regions: make(map[string]Region)}
	for _, r := range []Region{
		// The original play area anchor.
		{Name: "oakes", Lat: 36.98949379578401, Lng: -122.06277128548504},
		{Name: "null-island", Lat: 0, Lng: 0},
	} {
		t.regions[r.Name] = r
	}
	return t
}
