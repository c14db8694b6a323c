package element

import (
	"sort"
	"strings"
	"sync"
)

// CPK colors, https://sciencenotes.org/molecule-atom-colors-cpk-colors/
var table = []Element{
	{1, "H", "Hydrogen", 1.008, 1, 2, 120, 31, 2.20, 72.8, 0xffffff},
	{2, "He", "Helium", 4.0026, 2, 2, 140, 28, 0, 0, 0xd9ffff},
	{3, "Li", "Lithium", 6.94, 1, 8, 182, 128, 0.98, 59.6, 0xcc80ff},
	{4, "Be", "Beryllium", 9.0122, 2, 8, 153, 96, 1.57, 0, 0xc2ff00},
	{5, "B", "Boron", 10.81, 3, 8, 192, 84, 2.04, 26.7, 0xffb5b5},
	{6, "C", "Carbon", 12.011, 4, 8, 170, 75, 2.55, 153.9, 0x909090},
	{7, "N", "Nitrogen", 14.007, 5, 8, 155, 71, 3.04, 7, 0x3050f8},
	{8, "O", "Oxygen", 15.999, 6, 8, 152, 66, 3.44, 141, 0xff0d0d},
	{9, "F", "Fluorine", 18.9984, 7, 8, 147, 57, 3.98, 328, 0x90e050},
	{10, "Ne", "Neon", 20.1797, 8, 8, 154, 58, 0, 0, 0xb3e3f5},
	{11, "Na", "Sodium", 22.9897, 1, 8, 227, 166, 0.93, 52.8, 0xab5cf2},
	{12, "Mg", "Magnesium", 24.305, 2, 8, 173, 141, 1.31, 0, 0x8aff00},
	{13, "Al", "Aluminum", 26.9815, 3, 8, 184, 121, 1.61, 42.5, 0xbfa6a6},
	{14, "Si", "Silicon", 28.085, 4, 8, 210, 111, 1.90, 133.6, 0xf0c8a0},
	{15, "P", "Phosphorus", 30.9738, 5, 8, 180, 107, 2.19, 72, 0xff8000},
	{16, "S", "Sulfur", 32.06, 6, 8, 180, 105, 2.58, 200, 0xffff30},
	{17, "Cl", "Chlorine", 35.45, 7, 8, 175, 102, 3.16, 349, 0x1ff01f},
	{18, "Ar", "Argon", 39.948, 8, 8, 188, 106, 0, 0, 0x80d1e3},
	{19, "K", "Potassium", 39.0983, 1, 8, 275, 203, 0.82, 48.4, 0x8f40d4},
	{20, "Ca", "Calcium", 40.078, 2, 8, 231, 176, 1.0, 2.37, 0x3dff00},
}

// Catalog is the read-only element registry. Elements are compared by pointer
// identity, so every consumer must resolve them through the same catalog.
type Catalog struct {
	bySymbol map[string]*Element
	byNumber map[int]*Element
	ordered  []*Element
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog, built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = newCatalog(table)
	})
	return defaultCatalog
}

func newCatalog(src []Element) *Catalog {
	c := &Catalog{
		bySymbol: make(map[string]*Element, len(src)),
		byNumber: make(map[int]*Element, len(src)),
		ordered:  make([]*Element, 0, len(src)),
	}
	for i := range src {
		e := src[i]
		c.bySymbol[strings.ToLower(e.Symbol)] = &e
		c.byNumber[e.AtomicNumber] = &e
		c.ordered = append(c.ordered, &e)
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].AtomicNumber < c.ordered[j].AtomicNumber
	})
	return c
}

// Lookup finds an element by symbol, case-insensitively.
func (c *Catalog) Lookup(symbol string) (*Element, bool) {
	e, ok := c.bySymbol[strings.ToLower(symbol)]
	return e, ok
}

// MustLookup panics on an unknown symbol. Only for static tables.
func (c *Catalog) MustLookup(symbol string) *Element {
	e, ok := c.Lookup(symbol)
	if !ok {
		panic("element: unknown symbol " + symbol)
	}
	return e
}

func (c *Catalog) ByNumber(n int) (*Element, bool) {
	e, ok := c.byNumber[n]
	return e, ok
}

// All returns the elements ordered by atomic number.
func (c *Catalog) All() []*Element {
	out := make([]*Element, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *Catalog) Len() int { return len(c.ordered) }
