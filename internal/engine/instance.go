package engine

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/molsim/internal/molecule"
)

// AtomState is the world-frame state of one site of an instance. Rigid
// instances derive it from the body transform; ionic instances integrate it
// as a free particle.
type AtomState struct {
	Site     *molecule.AtomSite
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Mass of the atom in g/mol, or 0 when its element is unresolved.
func (a *AtomState) Mass() float64 {
	if a.Site == nil || a.Site.Element == nil {
		return 0
	}
	return a.Site.Element.AtomicMass
}

// Instance is a live occurrence of a template.
type Instance struct {
	Template *molecule.Template

	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Rotation        mgl64.Quat
	AngularVelocity mgl64.Vec3

	Atoms []AtomState
}

// NewInstance places tpl at pos. Every atom of an ionic template starts at
// its local offset from pos with velocity vel; callers usually scatter them
// afterwards.
func NewInstance(tpl *molecule.Template, pos, vel mgl64.Vec3, rot mgl64.Quat) *Instance {
	inst := &Instance{
		Template: tpl,
		Position: pos,
		Velocity: vel,
		Rotation: rot.Normalize(),
		Atoms:    make([]AtomState, len(tpl.Sites)),
	}
	for i, site := range tpl.Sites {
		local, _ := site.Position()
		inst.Atoms[i] = AtomState{Site: site, Position: pos.Add(local), Velocity: vel}
	}
	inst.sync()
	return inst
}

// Ionic reports whether the atoms move as independent free particles.
func (in *Instance) Ionic() bool {
	return in.Template.Kind == molecule.KindIonic
}

// AtomPosition is the world position of site i.
func (in *Instance) AtomPosition(i int) mgl64.Vec3 {
	return in.Atoms[i].Position
}

// BondEndpoints returns the world positions of both ends of b, which must
// belong to this instance's template.
func (in *Instance) BondEndpoints(b *molecule.Bond) (mgl64.Vec3, mgl64.Vec3) {
	return in.Atoms[b.Site1.Index()].Position, in.Atoms[b.Site2.Index()].Position
}

// sync derives atom states from the rigid body transform.
func (in *Instance) sync() {
	if in.Ionic() {
		return
	}
	for i := range in.Atoms {
		local, _ := in.Atoms[i].Site.Position()
		r := in.Rotation.Rotate(local)
		in.Atoms[i].Position = in.Position.Add(r)
		in.Atoms[i].Velocity = in.Velocity.Add(in.AngularVelocity.Cross(r))
	}
}
