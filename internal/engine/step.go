package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/molsim/internal/element"
	"github.com/san-kum/molsim/internal/kinetics"
)

// Step advances one tick: pairwise forces, boundary containment, then
// integration. It does nothing while dt is 0.
func (e *Engine) Step() {
	if e.dt == 0 {
		return
	}
	e.stats.Collisions = 0
	e.stats.WallHits = 0

	e.accumulate()
	e.contain()
	e.integrate()

	e.stats.Ticks++
}

func (e *Engine) accumulate() {
	rigid := make([]*Instance, 0, len(e.instances))
	var ions []*AtomState
	for _, inst := range e.instances {
		if !inst.Ionic() {
			rigid = append(rigid, inst)
			continue
		}
		for i := range inst.Atoms {
			if inst.Atoms[i].Site.Element != nil {
				ions = append(ions, &inst.Atoms[i])
			}
		}
	}

	for i := 0; i < len(rigid); i++ {
		for j := i + 1; j < len(rigid); j++ {
			e.interactMolecules(rigid[i], rigid[j])
		}
	}
	for i := 0; i < len(ions); i++ {
		for j := i + 1; j < len(ions); j++ {
			e.interactIons(ions[i], ions[j])
		}
	}
}

func (e *Engine) interactMolecules(a, b *Instance) {
	delta := b.Position.Sub(a.Position)
	d := delta.Len()
	dir := unit(delta)

	contact := 2 * e.params.MoleculeRadius
	if d < contact {
		e.collide(&a.Position, &a.Velocity, &b.Position, &b.Velocity, dir, contact-d)
		return
	}

	var hydrogen float64
	if a.Template.HydrogenBonding && b.Template.HydrogenBonding {
		hydrogen = 1
	}
	dipoles := a.Template.DipoleMoment.Len() * b.Template.DipoleMoment.Len()
	strength := e.params.LDFConstant + e.params.DipoleConstant*dipoles + e.params.HydrogenConstant*hydrogen

	d2 := e.distSq(d)
	a.Velocity = a.Velocity.Add(dir.Mul(accel(strength, d2, a.Template.Mass)))
	b.Velocity = b.Velocity.Sub(dir.Mul(accel(strength, d2, b.Template.Mass)))
}

func (e *Engine) interactIons(a, b *AtomState) {
	ea, eb := a.Site.Element, b.Site.Element
	delta := b.Position.Sub(a.Position)
	d := delta.Len()
	dir := unit(delta)

	contact := ea.VanDerWaalsRadius + eb.VanDerWaalsRadius
	if d < contact {
		e.collide(&a.Position, &a.Velocity, &b.Position, &b.Velocity, dir, contact-d)
		return
	}

	strength := e.params.LDFConstant + e.params.IonConstant*ionicStrength(ea, eb)

	d2 := e.distSq(d)
	a.Velocity = a.Velocity.Add(dir.Mul(accel(strength, d2, ea.AtomicMass)))
	b.Velocity = b.Velocity.Sub(dir.Mul(accel(strength, d2, eb.AtomicMass)))
}

// collide reverses and damps both velocities and separates the bodies by the
// overlap, half each. dir points from a to b.
func (e *Engine) collide(pa, va, pb, vb *mgl64.Vec3, dir mgl64.Vec3, overlap float64) {
	*va = va.Mul(-e.params.Restitution)
	*vb = vb.Mul(-e.params.Restitution)
	push := dir.Mul(overlap / 2)
	*pa = pa.Sub(push)
	*pb = pb.Add(push)
	e.stats.Collisions++
}

// ionicStrength is positive for opposite formal charges (attraction) and
// negative for like charges.
func ionicStrength(a, b *element.Element) float64 {
	c1, c2 := a.FormalCharge(), b.FormalCharge()
	mag := math.Abs(float64(c1 + c2))
	if sign(c1) == sign(c2) {
		return -mag
	}
	return mag
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func (e *Engine) distSq(d float64) float64 {
	d = math.Max(d, e.params.MinDistance)
	return d * d
}

func accel(strength, d2, mass float64) float64 {
	if mass <= 0 || d2 <= 0 {
		return 0
	}
	return strength / (d2 * mass)
}

func (e *Engine) contain() {
	for _, inst := range e.instances {
		if !inst.Ionic() {
			e.containBody(inst.Position, &inst.Velocity)
			continue
		}
		for i := range inst.Atoms {
			e.containBody(inst.Atoms[i].Position, &inst.Atoms[i].Velocity)
		}
	}
}

// containBody pushes v inward on every axis where p is outside the bounds,
// proportionally to the penetration depth.
func (e *Engine) containBody(p mgl64.Vec3, v *mgl64.Vec3) {
	hit := false
	for axis := 0; axis < 3; axis++ {
		limit := e.params.Bounds[axis]
		switch {
		case p[axis] < -limit:
			(*v)[axis] += e.params.RepelFactor * (-limit - p[axis])
			hit = true
		case p[axis] > limit:
			(*v)[axis] -= e.params.RepelFactor * (p[axis] - limit)
			hit = true
		}
	}
	if hit {
		e.stats.WallHits++
	}
}

func (e *Engine) integrate() {
	for _, inst := range e.instances {
		if inst.Ionic() {
			for i := range inst.Atoms {
				a := &inst.Atoms[i]
				if a.Site.Element == nil {
					continue
				}
				a.Velocity = e.clampSpeed(a.Velocity, a.Mass())
				a.Position = a.Position.Add(a.Velocity.Mul(e.dt))
			}
			continue
		}

		inst.Velocity = e.clampSpeed(inst.Velocity, inst.Template.Mass)
		inst.Position = inst.Position.Add(inst.Velocity.Mul(e.dt))
		inst.Rotation = spin(inst.AngularVelocity, e.dt).Mul(inst.Rotation).Normalize()
		inst.sync()
	}
}

// clampSpeed keeps |v| within [v_thermal/2, 2 v_thermal]. A body at rest is
// sent off in a random direction.
func (e *Engine) clampSpeed(v mgl64.Vec3, massG float64) mgl64.Vec3 {
	vt := kinetics.ThermalVelocity(e.temperature, massG)
	speed := v.Len()
	target := kinetics.Clamp(speed, vt/2, vt*2)
	if target == speed {
		return v
	}
	if speed == 0 {
		return kinetics.RandomUnitVector(e.rng).Mul(target)
	}
	return v.Mul(target / speed)
}

// spin is the rotation by |w| dt about w.
func spin(w mgl64.Vec3, dt float64) mgl64.Quat {
	dr := w.Mul(dt)
	theta := dr.Len()
	if theta == 0 {
		return mgl64.QuatIdent()
	}
	s, c := math.Sincos(theta / 2)
	return mgl64.Quat{W: c, V: dr.Mul(s / theta)}
}

func unit(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
