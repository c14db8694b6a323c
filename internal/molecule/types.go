package molecule

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/molsim/internal/element"
)

type BondType int

const (
	Ionic BondType = iota
	Covalent
	Metallic
)

func (t BondType) String() string {
	switch t {
	case Ionic:
		return "ionic"
	case Covalent:
		return "covalent"
	case Metallic:
		return "metallic"
	default:
		return "unknown"
	}
}

// Kind selects how the engine treats a template's atoms: covalent templates
// move as rigid bodies, ionic ones as independent free particles.
type Kind int

const (
	KindCovalent Kind = iota
	KindIonic
	KindMetallic
)

func (k Kind) String() string {
	switch k {
	case KindCovalent:
		return "covalent"
	case KindIonic:
		return "ionic"
	case KindMetallic:
		return "metallic"
	default:
		return "unknown"
	}
}

// AtomSite is one atom's role within a template.
type AtomSite struct {
	Element      *element.Element
	Central      bool
	Bonds        []*Bond
	StericNumber int
	LonePairs    int

	index    int
	position *mgl64.Vec3
	rotation mgl64.Quat
}

func (s *AtomSite) Index() int { return s.index }

// Position returns the local-frame position and whether the solver placed it.
func (s *AtomSite) Position() (mgl64.Vec3, bool) {
	if s.position == nil {
		return mgl64.Vec3{}, false
	}
	return *s.position, true
}

func (s *AtomSite) Placed() bool { return s.position != nil }

// Rotation is the local orientation the solver used for this center.
func (s *AtomSite) Rotation() mgl64.Quat { return s.rotation }

// place assigns the local position once; later calls are ignored.
func (s *AtomSite) place(p mgl64.Vec3) {
	if s.position != nil {
		return
	}
	s.position = &p
}

// Bond connects two sites of the same template.
type Bond struct {
	Site1, Site2 *AtomSite
	Order        int
	Type         BondType
	Polarity     float64
	Length       float64
}

func newBond(s1, s2 *AtomSite, order int, typ BondType) *Bond {
	b := &Bond{Site1: s1, Site2: s2, Order: order, Type: typ}
	if s1.Element != nil && s2.Element != nil {
		// positive polarity leaves site1 with the partial negative charge
		b.Polarity = s1.Element.Electronegativity - s2.Element.Electronegativity
		b.Length = s1.Element.VanDerWaalsRadius + s2.Element.VanDerWaalsRadius - 17.5*float64(order)
	}
	return b
}

// Other returns the endpoint that is not s.
func (b *Bond) Other(s *AtomSite) *AtomSite {
	if b.Site1 == s {
		return b.Site2
	}
	return b.Site1
}

// Template is a sealed molecule definition shared by every instance of that
// molecule kind. Nothing mutates it after Build returns.
type Template struct {
	Key             string
	Name            string
	Kind            Kind
	Sites           []*AtomSite
	Bonds           []*Bond
	Mass            float64
	DipoleMoment    mgl64.Vec3
	HydrogenBonding bool
}

// Centers returns the central sites in declaration order.
func (t *Template) Centers() []*AtomSite {
	out := make([]*AtomSite, 0, len(t.Sites))
	for _, s := range t.Sites {
		if s.Central {
			out = append(out, s)
		}
	}
	return out
}

// Formula renders a Hill-ordered formula, e.g. "C2H6O".
func (t *Template) Formula() string {
	return formula(t.Sites)
}
