package element

import "fmt"

// Element holds the per-element constants used by the geometry solver and the
// force models. Radii are in picometres, mass in g/mol.
type Element struct {
	AtomicNumber      int
	Symbol            string
	Name              string
	AtomicMass        float64
	ValenceElectrons  int
	MaxValenceOrbital int
	VanDerWaalsRadius float64
	CovalentRadius    float64
	Electronegativity float64
	ElectronAffinity  float64
	Color             uint32
}

// FormalCharge estimates the ionic charge from the octet rule.
func (e *Element) FormalCharge() int {
	if e.ValenceElectrons > 4 {
		return e.ValenceElectrons - 8
	}
	return e.ValenceElectrons
}

// RGB splits the display color into its channels.
func (e *Element) RGB() (r, g, b uint8) {
	return uint8(e.Color >> 16), uint8(e.Color >> 8), uint8(e.Color)
}

// Hex returns the display color as "#rrggbb".
func (e *Element) Hex() string {
	return fmt.Sprintf("#%06x", e.Color&0xffffff)
}

func (e *Element) String() string { return e.Symbol }
