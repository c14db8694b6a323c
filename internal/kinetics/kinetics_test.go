package kinetics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestThermalVelocity(t *testing.T) {
	// water at 273 K: sqrt(3 * 8.314 * 273 / 0.018015)
	v := ThermalVelocity(273, 18.015)
	assert.InDelta(t, 614.8, v, 0.5)

	tests := []struct {
		name string
		temp float64
		mass float64
	}{
		{"zero mass", 300, 0},
		{"zero temperature and mass", 0, 0},
		{"negative temperature", -10, 18},
		{"negative mass", 300, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, ThermalVelocity(tt.temp, tt.mass))
		})
	}

	assert.Equal(t, 0.0, ThermalVelocity(0, 18))
}

func TestTemperatureFromSpeed(t *testing.T) {
	v := ThermalVelocity(500, 32)
	assert.InDelta(t, 500, TemperatureFromSpeed(v, 32), 1e-9)
	assert.Equal(t, 0.0, TemperatureFromSpeed(100, 0))
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, 1.0, AmuToKg(KgToAmu(1.0)), 1e-12)
	assert.Equal(t, 2500.0, KgToG(2.5))
	assert.Equal(t, 0.0025, GToKg(2.5))
	assert.Equal(t, 273.0, CelsiusToKelvin(0))
	assert.Equal(t, -273.0, KelvinToCelsius(0))
	assert.Equal(t, 25.0, KelvinToCelsius(CelsiusToKelvin(25)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0, 1, 2))
	assert.Equal(t, 2.0, Clamp(5, 1, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 1, 2))
}

func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := RandRange(rng, -3, 5)
		assert.GreaterOrEqual(t, v, -3.0)
		assert.Less(t, v, 5.0)

		n := RandInt(rng, 2, 4)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 4)
	}
	assert.Equal(t, 3.0, RandRange(rng, 3, 3))
	assert.Equal(t, 3, RandInt(rng, 3, 1))
}

func TestRandomVector(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lo, hi := mgl64.Vec3{-1, -2, -3}, mgl64.Vec3{1, 2, 3}
	for i := 0; i < 200; i++ {
		v := RandomVector(rng, lo, hi)
		for a := 0; a < 3; a++ {
			assert.GreaterOrEqual(t, v[a], lo[a])
			assert.Less(t, v[a], hi[a])
		}
	}
}

func TestRandomUnitVectorAndOrientation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var sum mgl64.Vec3
	const n = 4000
	for i := 0; i < n; i++ {
		u := RandomUnitVector(rng)
		assert.InDelta(t, 1.0, u.Len(), 1e-9)
		sum = sum.Add(u)

		q := RandomOrientation(rng)
		assert.InDelta(t, 1.0, q.Len(), 1e-9)
	}
	// an isotropic sample averages out near the origin
	assert.Less(t, sum.Len()/n, 0.05)
	assert.False(t, math.IsNaN(sum.Len()))
}
