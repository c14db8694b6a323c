package metrics

import (
	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/kinetics"
	"github.com/san-kum/molsim/internal/sim"
)

// All returns a fresh set of every observable.
func All() []sim.Metric {
	return []sim.Metric{
		NewMeanSpeed(),
		NewKineticTemperature(),
		NewCollisions(),
		NewWallHits(),
		NewThermalBand(),
	}
}

// MeanSpeed is the mean body speed (pm/s) at the latest observation.
type MeanSpeed struct {
	name  string
	value float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(e *engine.Engine) {
	bodies := e.Bodies()
	if len(bodies) == 0 {
		m.value = 0
		return
	}
	sum := 0.0
	for _, b := range bodies {
		sum += b.Velocity.Len()
	}
	m.value = sum / float64(len(bodies))
}

func (m *MeanSpeed) Value() float64 { return m.value }
func (m *MeanSpeed) Reset()         { m.value = 0 }

// KineticTemperature inverts the thermal-speed relation per body and averages
// the result, giving the temperature the population actually moves at.
type KineticTemperature struct {
	name  string
	value float64
}

func NewKineticTemperature() *KineticTemperature {
	return &KineticTemperature{name: "kinetic_temperature"}
}

func (k *KineticTemperature) Name() string { return k.name }

func (k *KineticTemperature) Observe(e *engine.Engine) {
	bodies := e.Bodies()
	if len(bodies) == 0 {
		k.value = 0
		return
	}
	sum := 0.0
	for _, b := range bodies {
		sum += kinetics.TemperatureFromSpeed(b.Velocity.Len(), b.Mass)
	}
	k.value = sum / float64(len(bodies))
}

func (k *KineticTemperature) Value() float64 { return k.value }
func (k *KineticTemperature) Reset()         { k.value = 0 }
