// Package item defines the item domain model: static definitions loaded from
// YAML and runtime instances with per-kind behavior.
package item

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind is the closed set of item categories. Per-kind behavior dispatches on
// Kind plus capability queries instead of a type hierarchy.
type Kind string

// Item kinds.
const (
	KindKey        Kind = "key"
	KindGear       Kind = "gear"
	KindConsumable Kind = "consumable"
	KindAmmo       Kind = "ammo"
	KindWeapon     Kind = "weapon"
	KindTool       Kind = "tool"
	KindLight      Kind = "light"
	KindMisc       Kind = "misc"
)

// validKinds is the set of valid Def kinds.
var validKinds = map[Kind]bool{
	KindKey:        true,
	KindGear:       true,
	KindConsumable: true,
	KindAmmo:       true,
	KindWeapon:     true,
	KindTool:       true,
	KindLight:      true,
	KindMisc:       true,
}

// Def defines the static properties of an item loaded from YAML.
type Def struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Kind        Kind   `yaml:"kind"`
	// HealAmount is the health restored when a consumable is used.
	HealAmount int `yaml:"heal_amount"`
	// Damage is the per-hit damage when a weapon is equipped.
	Damage int `yaml:"damage"`
	// Rounds is the starting ammunition count for ammo items.
	Rounds int `yaml:"rounds"`
	// MaxBattery is the charge ceiling for light items.
	MaxBattery int `yaml:"max_battery"`
	// ConsumedOnUse marks items removed from the inventory after a use.
	ConsumedOnUse bool `yaml:"consumed_on_use"`
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of key, gear, consumable, ammo, weapon, tool, light, misc; got %q", d.Kind))
	}
	if d.HealAmount < 0 {
		errs = append(errs, errors.New("HealAmount must be >= 0"))
	}
	if d.Damage < 0 {
		errs = append(errs, errors.New("Damage must be >= 0"))
	}
	if d.Kind == KindAmmo && d.Rounds < 1 {
		errs = append(errs, errors.New("Rounds must be >= 1 when Kind is ammo"))
	}
	if d.Kind == KindWeapon && d.Damage == 0 {
		errs = append(errs, errors.New("Damage is required when Kind is weapon"))
	}
	if d.Kind == KindLight && d.MaxBattery < 1 {
		errs = append(errs, errors.New("MaxBattery must be >= 1 when Kind is light"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadDefs reads all *.yaml and *.yml files from dir, parses each as a Def,
// validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDefs: cannot read directory %q: %w", dir, err)
	}

	var defs []*Def
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot read file %q: %w", path, err)
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadDefs: invalid item in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

// Registry indexes item definitions by ID and by lowercased name.
type Registry struct {
	byID   map[string]*Def
	byName map[string]*Def
}

// NewRegistry builds a Registry from the given definitions.
//
// Postcondition: returns a Registry, or an error on duplicate IDs or names.
func NewRegistry(defs []*Def) (*Registry, error) {
	r := &Registry{
		byID:   make(map[string]*Def, len(defs)),
		byName: make(map[string]*Def, len(defs)),
	}
	for _, d := range defs {
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate item ID: %q", d.ID)
		}
		name := normalizeName(d.Name)
		if existing, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("duplicate item name %q: IDs %q and %q", d.Name, existing.ID, d.ID)
		}
		r.byID[d.ID] = d
		r.byName[name] = d
	}
	return r, nil
}

// Def returns the definition with the given ID.
//
// Postcondition: Returns (def, true) if found, or (nil, false) otherwise.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// DefByName returns the definition whose name matches, case-insensitively.
func (r *Registry) DefByName(name string) (*Def, bool) {
	d, ok := r.byName[normalizeName(name)]
	return d, ok
}
