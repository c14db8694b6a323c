package engine

import "github.com/go-gl/mathgl/mgl64"

// Params holds the engine's tuning. Distances are in pm, masses in g/mol and
// temperatures in K.
type Params struct {
	TickStep    float64
	SpeedFactor float64

	Bounds      mgl64.Vec3
	RepelFactor float64

	Restitution    float64
	MoleculeRadius float64
	MinDistance    float64

	IonConstant      float64
	DipoleConstant   float64
	HydrogenConstant float64
	LDFConstant      float64

	InitialTemperature float64
	InitialPressure    float64

	// SpinRate scales the random angular velocity given to spawned rigid
	// molecules. Zero spawns them without spin.
	SpinRate float64
}

func DefaultParams() Params {
	return Params{
		TickStep:           0.02,
		SpeedFactor:        2,
		Bounds:             mgl64.Vec3{2000, 2000, 2000},
		RepelFactor:        10,
		Restitution:        0.5,
		MoleculeRadius:     250,
		MinDistance:        1,
		IonConstant:        1e8,
		DipoleConstant:     1e5,
		HydrogenConstant:   1e8,
		LDFConstant:        1e3,
		InitialTemperature: 273,
		InitialPressure:    1,
	}
}
