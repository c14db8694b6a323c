package metrics

import (
	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/kinetics"
)

// ThermalBand is the fraction of observations in which every body moved
// within [v_thermal/2, 2 v_thermal].
type ThermalBand struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewThermalBand() *ThermalBand {
	return &ThermalBand{
		name:      "thermal_band",
		tolerance: 1e-9,
	}
}

func (s *ThermalBand) Name() string {
	return s.name
}

func (s *ThermalBand) Observe(e *engine.Engine) {
	s.samples++
	for _, b := range e.Bodies() {
		vt := kinetics.ThermalVelocity(e.Temperature(), b.Mass)
		speed := b.Velocity.Len()
		if speed < vt/2*(1-s.tolerance) || speed > vt*2*(1+s.tolerance) {
			s.violations++
			break
		}
	}
}

func (s *ThermalBand) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *ThermalBand) Reset() {
	s.violations = 0
	s.samples = 0
}
