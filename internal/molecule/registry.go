package molecule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/molsim/internal/element"
)

// Registry holds the sealed templates. It is built once and passed by
// reference to whoever spawns molecules.
type Registry struct {
	byKey   map[string]*Template
	ordered []*Template
}

type recipe func(c *element.Catalog) *Builder

var recipes = []recipe{
	func(c *element.Catalog) *Builder {
		return NewBuilder("helium", "Helium", KindCovalent).
			Atom(c.MustLookup("He"), true)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("oxygen", "Oxygen", KindCovalent).
			Atom(c.MustLookup("O"), true).
			Atom(c.MustLookup("O"), true).
			Bond(0, 1, 2, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("hydrogen", "Hydrogen", KindCovalent).
			Atom(c.MustLookup("H"), true).
			Atom(c.MustLookup("H"), true).
			Bond(0, 1, 1, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("nitrogen", "Nitrogen", KindCovalent).
			Atom(c.MustLookup("N"), true).
			Atom(c.MustLookup("N"), true).
			Bond(0, 1, 3, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("water", "Water", KindCovalent).
			Atom(c.MustLookup("O"), true).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Bond(0, 1, 1, Covalent).
			Bond(0, 2, 1, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("carbon-monoxide", "Carbon Monoxide", KindCovalent).
			Atom(c.MustLookup("C"), true).
			Atom(c.MustLookup("O"), true).
			Bond(0, 1, 3, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("carbon-dioxide", "Carbon Dioxide", KindCovalent).
			Atom(c.MustLookup("C"), true).
			Atom(c.MustLookup("O"), false).
			Atom(c.MustLookup("O"), false).
			Bond(0, 1, 2, Covalent).
			Bond(0, 2, 2, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("methane", "Methane", KindCovalent).
			Atom(c.MustLookup("C"), true).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Bond(0, 1, 1, Covalent).
			Bond(0, 2, 1, Covalent).
			Bond(0, 3, 1, Covalent).
			Bond(0, 4, 1, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("ethanol", "Ethanol", KindCovalent).
			Atom(c.MustLookup("C"), true).
			Atom(c.MustLookup("C"), true).
			Atom(c.MustLookup("O"), true).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Bond(0, 1, 1, Covalent).
			Bond(1, 2, 1, Covalent).
			Bond(0, 3, 1, Covalent).
			Bond(0, 4, 1, Covalent).
			Bond(0, 5, 1, Covalent).
			Bond(1, 6, 1, Covalent).
			Bond(1, 7, 1, Covalent).
			Bond(2, 8, 1, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("hydrogen-fluoride", "Hydrogen Fluoride", KindCovalent).
			Atom(c.MustLookup("F"), true).
			Atom(c.MustLookup("H"), false).
			Bond(0, 1, 1, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("ammonia", "Ammonia", KindCovalent).
			Atom(c.MustLookup("N"), true).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Atom(c.MustLookup("H"), false).
			Bond(0, 1, 1, Covalent).
			Bond(0, 2, 1, Covalent).
			Bond(0, 3, 1, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("sulfur-dioxide", "Sulfur Dioxide", KindCovalent).
			Atom(c.MustLookup("S"), true).
			Atom(c.MustLookup("O"), false).
			Atom(c.MustLookup("O"), false).
			Bond(0, 1, 2, Covalent).
			Bond(0, 2, 2, Covalent)
	},
	func(c *element.Catalog) *Builder {
		return withLigands(NewBuilder("boron-trifluoride", "Boron Trifluoride", KindCovalent),
			c.MustLookup("B"), c.MustLookup("F"), 3)
	},
	func(c *element.Catalog) *Builder {
		return withLigands(NewBuilder("sulfur-tetrafluoride", "Sulfur Tetrafluoride", KindCovalent),
			c.MustLookup("S"), c.MustLookup("F"), 4)
	},
	func(c *element.Catalog) *Builder {
		return withLigands(NewBuilder("chlorine-trifluoride", "Chlorine Trifluoride", KindCovalent),
			c.MustLookup("Cl"), c.MustLookup("F"), 3)
	},
	func(c *element.Catalog) *Builder {
		return withLigands(NewBuilder("phosphorus-pentachloride", "Phosphorus Pentachloride", KindCovalent),
			c.MustLookup("P"), c.MustLookup("Cl"), 5)
	},
	func(c *element.Catalog) *Builder {
		return withLigands(NewBuilder("sulfur-hexafluoride", "Sulfur Hexafluoride", KindCovalent),
			c.MustLookup("S"), c.MustLookup("F"), 6)
	},

	// ionic templates carry no bonds: each atom is a free particle
	func(c *element.Catalog) *Builder {
		return NewBuilder("sodium-chloride", "Sodium Chloride", KindIonic).
			Atom(c.MustLookup("Na"), true).
			Atom(c.MustLookup("Cl"), true)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("potassium-chloride", "Potassium Chloride", KindIonic).
			Atom(c.MustLookup("K"), true).
			Atom(c.MustLookup("Cl"), true)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("calcium-fluoride", "Calcium Fluoride", KindIonic).
			Atom(c.MustLookup("Ca"), true).
			Atom(c.MustLookup("F"), false).
			Atom(c.MustLookup("F"), false)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("beryllium-oxide", "Beryllium Oxide", KindIonic).
			Atom(c.MustLookup("Be"), true).
			Atom(c.MustLookup("O"), true)
	},
	func(c *element.Catalog) *Builder {
		return NewBuilder("magnesium-oxide", "Magnesium Oxide", KindIonic).
			Atom(c.MustLookup("Mg"), true).
			Atom(c.MustLookup("O"), true)
	},
}

// withLigands adds one central atom single-bonded to n copies of ligand.
func withLigands(b *Builder, center, ligand *element.Element, n int) *Builder {
	b.Atom(center, true)
	for i := 1; i <= n; i++ {
		b.Atom(ligand, false).Bond(0, i, 1, Covalent)
	}
	return b
}

// NewRegistry builds every template against the given catalog.
func NewRegistry(c *element.Catalog) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*Template, len(recipes))}
	for _, build := range recipes {
		tpl, err := build(c).Build()
		if err != nil {
			return nil, fmt.Errorf("build template: %w", err)
		}
		if err := r.Add(tpl); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a sealed template under its key.
func (r *Registry) Add(t *Template) error {
	key := normalizeKey(t.Key)
	if key == "" {
		key = normalizeKey(t.Name)
	}
	if _, dup := r.byKey[key]; dup {
		return fmt.Errorf("molecule: duplicate template %q", key)
	}
	r.byKey[key] = t
	r.ordered = append(r.ordered, t)
	return nil
}

// Get resolves a key ("carbon-dioxide") or a display name ("Carbon Dioxide").
func (r *Registry) Get(name string) (*Template, error) {
	if t, ok := r.byKey[normalizeKey(name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMolecule, name)
}

// All returns the templates in registration order.
func (r *Registry) All() []*Template {
	out := make([]*Template, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Keys returns the sorted template keys.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.Join(strings.Fields(s), "-")
}
