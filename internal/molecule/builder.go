package molecule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/molsim/internal/element"
)

// Builder assembles a template: add atoms, add bonds, then Build once.
// The first failure is kept and reported by Build, so calls can be chained.
type Builder struct {
	tpl    *Template
	err    error
	sealed bool
}

func NewBuilder(key, name string, kind Kind) *Builder {
	return &Builder{tpl: &Template{Key: key, Name: name, Kind: kind}}
}

// Atom appends a site. A nil element is accepted; bonds to it degrade to zero
// polarity and length.
func (b *Builder) Atom(el *element.Element, central bool) *Builder {
	if b.sealed {
		b.fail(ErrSealed)
		return b
	}
	site := &AtomSite{Element: el, Central: central, index: len(b.tpl.Sites), rotation: mgl64.QuatIdent()}
	b.tpl.Sites = append(b.tpl.Sites, site)
	if el != nil {
		b.tpl.Mass += el.AtomicMass
	}
	return b
}

// Bond links sites i and j.
func (b *Builder) Bond(i, j, order int, typ BondType) *Builder {
	switch {
	case b.sealed:
		b.fail(ErrSealed)
		return b
	case i < 0 || j < 0 || i >= len(b.tpl.Sites) || j >= len(b.tpl.Sites):
		b.fail(fmt.Errorf("%w: %d-%d in %q", ErrSiteIndex, i, j, b.tpl.Name))
		return b
	case i == j:
		b.fail(fmt.Errorf("%w: site %d in %q", ErrSelfBond, i, b.tpl.Name))
		return b
	case order < 1 || order > 3:
		b.fail(fmt.Errorf("%w: got %d in %q", ErrInvalidBondOrder, order, b.tpl.Name))
		return b
	}

	s1, s2 := b.tpl.Sites[i], b.tpl.Sites[j]
	bond := newBond(s1, s2, order, typ)
	s1.Bonds = append(s1.Bonds, bond)
	s2.Bonds = append(s2.Bonds, bond)
	b.tpl.Bonds = append(b.tpl.Bonds, bond)
	if isHydrogenBond(s1.Element, s2.Element) {
		b.tpl.HydrogenBonding = true
	}
	return b
}

// Build solves the geometry and seals the template.
func (b *Builder) Build() (*Template, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.sealed {
		return nil, ErrSealed
	}
	b.solveGeometry()
	b.sealed = true
	return b.tpl, nil
}

// MustBuild is Build for static tables.
func (b *Builder) MustBuild() *Template {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) solveGeometry() {
	for _, s := range b.tpl.Sites {
		if s.Central {
			solve(s)
		}
	}
	var dipole mgl64.Vec3
	for _, s := range b.tpl.Sites {
		if !s.Central {
			continue
		}
		for _, bond := range s.Bonds {
			p1, ok1 := bond.Site1.Position()
			p2, ok2 := bond.Site2.Position()
			if !ok1 || !ok2 {
				continue
			}
			dipole = dipole.Add(unit(p1.Sub(p2)).Mul(bond.Polarity))
		}
	}
	b.tpl.DipoleMoment = dipole
}

var hydrogenBondPartners = map[string]bool{"F": true, "O": true, "N": true}

func isHydrogenBond(a, b *element.Element) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Symbol == "H" && hydrogenBondPartners[b.Symbol] ||
		b.Symbol == "H" && hydrogenBondPartners[a.Symbol]
}

func unit(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func formula(sites []*AtomSite) string {
	counts := make(map[string]int)
	for _, s := range sites {
		if s.Element != nil {
			counts[s.Element.Symbol]++
		}
	}
	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	_, hasCarbon := counts["C"]
	sort.Slice(symbols, func(i, j int) bool {
		if hasCarbon {
			ri, rj := hillRank(symbols[i]), hillRank(symbols[j])
			if ri != rj {
				return ri < rj
			}
		}
		return symbols[i] < symbols[j]
	})

	var sb strings.Builder
	for _, sym := range symbols {
		sb.WriteString(sym)
		if n := counts[sym]; n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

func hillRank(sym string) int {
	switch sym {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}
