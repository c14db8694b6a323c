package viz

import (
	"github.com/san-kum/molsim/internal/engine"
)

const (
	boxColor     = "#444466"
	unknownColor = "#cccccc"
	atomScale    = 0.35
)

// BuildScene fills w with the bounds box, every bond as two halves colored
// by the element at each end, and every atom as a sphere. The engine is only
// read.
func BuildScene(w *Wireframe, e *engine.Engine) {
	w.Clear()
	w.AddBox(e.Params().Bounds, boxColor)

	for _, inst := range e.Instances() {
		for _, b := range inst.Template.Bonds {
			p1, p2 := inst.BondEndpoints(b)
			mid := p1.Add(p2).Mul(0.5)
			w.AddEdge(p1, mid, siteColor(inst.Atoms[b.Site1.Index()]))
			w.AddEdge(mid, p2, siteColor(inst.Atoms[b.Site2.Index()]))
		}
		for _, a := range inst.Atoms {
			r := 0.0
			if a.Site.Element != nil {
				r = a.Site.Element.VanDerWaalsRadius * atomScale
			}
			w.AddSphere(a.Position, r, siteColor(a))
		}
	}
}

func siteColor(a engine.AtomState) string {
	if a.Site == nil || a.Site.Element == nil {
		return unknownColor
	}
	return a.Site.Element.Hex()
}
