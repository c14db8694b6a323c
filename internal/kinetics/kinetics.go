// Package kinetics holds the unit conversions and kinetic-theory helpers shared
// by the geometry solver and the engine.
package kinetics

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	GasConstant      = 8.314    // J / (mol K)
	AvogadroNumber   = 6.022e23 // 1 / mol
	ZeroCelsius      = 273.0    // K
	gramsPerKilogram = 1000.0
)

func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// RandRange returns a uniform value in [lo, hi).
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// RandInt returns a uniform integer in [lo, hi].
func RandInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// RandomVector samples each axis uniformly inside [lo, hi).
func RandomVector(rng *rand.Rand, lo, hi mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		RandRange(rng, lo[0], hi[0]),
		RandRange(rng, lo[1], hi[1]),
		RandRange(rng, lo[2], hi[2]),
	}
}

// RandomUnitVector samples a direction uniformly on the unit sphere.
func RandomUnitVector(rng *rand.Rand) mgl64.Vec3 {
	z := RandRange(rng, -1, 1)
	phi := RandRange(rng, 0, 2*math.Pi)
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(phi), r * math.Sin(phi), z}
}

// RandomOrientation picks a uniform axis and a uniform angle in [0, 2π).
func RandomOrientation(rng *rand.Rand) mgl64.Quat {
	axis := RandomUnitVector(rng)
	angle := RandRange(rng, 0, 2*math.Pi)
	return mgl64.QuatRotate(angle, axis).Normalize()
}

func KgToAmu(kg float64) float64 { return kg * gramsPerKilogram * AvogadroNumber }
func AmuToKg(amu float64) float64 { return amu / (gramsPerKilogram * AvogadroNumber) }
func KgToG(kg float64) float64    { return kg * gramsPerKilogram }
func GToKg(g float64) float64     { return g / gramsPerKilogram }

func CelsiusToKelvin(c float64) float64 { return c + ZeroCelsius }
func KelvinToCelsius(k float64) float64 { return k - ZeroCelsius }

// ThermalVelocity is sqrt(3RT/m) with m given in g/mol. Results that are not
// finite (zero or negative mass, negative temperature) collapse to 0.
func ThermalVelocity(temperature, massG float64) float64 {
	v := math.Sqrt(3 * GasConstant * temperature / GToKg(massG))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// TemperatureFromSpeed inverts ThermalVelocity.
func TemperatureFromSpeed(speed, massG float64) float64 {
	if massG <= 0 {
		return 0
	}
	return speed * speed * GToKg(massG) / (3 * GasConstant)
}
