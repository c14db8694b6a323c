package engine_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/kinetics"
	"github.com/san-kum/molsim/internal/molecule"
)

type snapshot struct {
	pos []mgl64.Vec3
	vel []mgl64.Vec3
	rot []mgl64.Quat
}

func capture(e *engine.Engine) snapshot {
	var s snapshot
	for _, inst := range e.Instances() {
		s.pos = append(s.pos, inst.Position)
		s.vel = append(s.vel, inst.Velocity)
		s.rot = append(s.rot, inst.Rotation)
		for _, a := range inst.Atoms {
			s.pos = append(s.pos, a.Position)
			s.vel = append(s.vel, a.Velocity)
		}
	}
	return s
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func place(e *engine.Engine, tpl *molecule.Template, pos, vel mgl64.Vec3) *engine.Instance {
	inst := engine.NewInstance(tpl, pos, vel, mgl64.QuatIdent())
	e.Add(inst)
	return inst
}

var _ = Describe("Engine", func() {
	var (
		e      *engine.Engine
		params engine.Params
	)

	BeforeEach(func() {
		params = engine.DefaultParams()
		e = engine.New(engine.WithSeed(42))
	})

	Describe("lifecycle", func() {
		It("starts stopped and paused at the initial conditions", func() {
			Expect(e.State()).To(Equal(engine.Stopped))
			Expect(e.IsStarted()).To(BeFalse())
			Expect(e.IsPaused()).To(BeTrue())
			Expect(e.Temperature()).To(Equal(273.0))
			Expect(e.Pressure()).To(Equal(1.0))
			Expect(e.SpeedMultiplier()).To(Equal(1.0))
			Expect(e.Dt()).To(BeZero())
		})

		It("uses tickStep times the multiplier while active", func() {
			e.Start()
			Expect(e.State()).To(Equal(engine.Active))
			Expect(e.Dt()).To(BeNumerically("~", params.TickStep, 1e-15))

			e.SpeedUp()
			e.SpeedUp()
			e.SpeedUp()
			Expect(e.SpeedMultiplier()).To(BeNumerically("~", 8, 1e-12))
			Expect(e.Dt()).To(BeNumerically("~", params.TickStep*e.SpeedMultiplier(), 1e-15))

			e.SlowDown()
			Expect(e.Dt()).To(BeNumerically("~", params.TickStep*4, 1e-15))

			e.ResetSpeed()
			Expect(e.SpeedMultiplier()).To(Equal(1.0))
			Expect(e.Dt()).To(BeNumerically("~", params.TickStep, 1e-15))
		})

		It("restores the multiplier after speedUp then slowDown", func() {
			e.Start()
			for i := 0; i < 5; i++ {
				e.SpeedUp()
				e.SlowDown()
			}
			Expect(e.SpeedMultiplier()).To(BeNumerically("~", 1, 1e-12))
			Expect(e.Dt()).To(BeNumerically("~", params.TickStep, 1e-15))
		})

		It("keeps dt at zero while paused and picks up speed changes on resume", func() {
			e.Start()
			e.Pause()
			e.Pause()
			Expect(e.State()).To(Equal(engine.Paused))
			Expect(e.Dt()).To(BeZero())

			e.SpeedUp()
			Expect(e.Dt()).To(BeZero())
			Expect(e.SpeedMultiplier()).To(Equal(2.0))

			e.Resume()
			e.Resume()
			Expect(e.State()).To(Equal(engine.Active))
			Expect(e.Dt()).To(BeNumerically("~", params.TickStep*2, 1e-15))
		})

		It("ignores resume while stopped", func() {
			e.Resume()
			Expect(e.State()).To(Equal(engine.Stopped))
			Expect(e.Dt()).To(BeZero())
		})

		It("restores temperature and pressure and clears instances on stop", func() {
			e.Start()
			e.SetTemperature(812)
			e.Spawn(template("water"))
			e.Spawn(template("sodium-chloride"))
			e.Step()

			e.Stop()
			Expect(e.Temperature()).To(Equal(params.InitialTemperature))
			Expect(e.Pressure()).To(Equal(params.InitialPressure))
			Expect(e.Len()).To(BeZero())
			Expect(e.Stats()).To(Equal(engine.Stats{}))
			Expect(e.State()).To(Equal(engine.Stopped))

			e.Stop()
			Expect(e.Temperature()).To(Equal(params.InitialTemperature))
		})

		It("treats negative temperatures as zero", func() {
			e.SetTemperature(-40)
			Expect(e.Temperature()).To(BeZero())
			e.SetTemperature(math.NaN())
			Expect(e.Temperature()).To(BeZero())
		})
	})

	Describe("pause", func() {
		It("leaves every instance bit-for-bit unchanged", func() {
			for _, name := range []string{"water", "ethanol", "methane", "calcium-fluoride"} {
				e.Spawn(template(name))
			}
			e.Start()
			for i := 0; i < 5; i++ {
				e.Step()
			}
			e.Pause()

			before := capture(e)
			for i := 0; i < 100; i++ {
				e.Step()
			}
			Expect(capture(e)).To(Equal(before))
		})

		It("does nothing before start", func() {
			e.Spawn(template("water"))
			before := capture(e)
			e.Step()
			Expect(capture(e)).To(Equal(before))
			Expect(e.Stats().Ticks).To(BeZero())
		})
	})

	Describe("spawn", func() {
		It("gives a rigid molecule a thermal velocity inside the bounds", func() {
			water := template("water")
			inst := e.Spawn(water)

			Expect(e.Len()).To(Equal(1))
			Expect(inst.Velocity.Len()).To(BeNumerically("~", kinetics.ThermalVelocity(273, water.Mass), 1e-9))
			Expect(inst.Rotation.Len()).To(BeNumerically("~", 1, 1e-9))
			for axis := 0; axis < 3; axis++ {
				Expect(math.Abs(inst.Position[axis])).To(BeNumerically("<=", params.Bounds[axis]))
			}
		})

		It("scatters ionic atoms individually", func() {
			inst := e.Spawn(template("calcium-fluoride"))
			Expect(inst.Atoms).To(HaveLen(3))
			for _, a := range inst.Atoms {
				Expect(a.Velocity.Len()).To(BeNumerically("~", kinetics.ThermalVelocity(273, a.Mass()), 1e-9))
				for axis := 0; axis < 3; axis++ {
					Expect(math.Abs(a.Position[axis])).To(BeNumerically("<=", params.Bounds[axis]))
				}
			}
			Expect(inst.Atoms[1].Position).NotTo(Equal(inst.Atoms[2].Position))
		})

		It("samples random velocities at the thermal speed", func() {
			e.SetTemperature(500)
			v := e.RandomVelocity(32)
			Expect(v.Len()).To(BeNumerically("~", kinetics.ThermalVelocity(500, 32), 1e-9))
			Expect(e.RandomVelocity(0).Len()).To(BeZero())
		})
	})

	Describe("thermal clamp", func() {
		It("keeps every body within half and double the thermal speed", func() {
			params.Bounds = mgl64.Vec3{1e6, 1e6, 1e6}
			e = engine.New(engine.WithParams(params), engine.WithSeed(7))
			e.SetTemperature(350)
			for i := 0; i < 6; i++ {
				e.Spawn(template("methane"))
				e.Spawn(template("water"))
			}
			e.Spawn(template("calcium-fluoride"))
			e.Start()

			for tick := 0; tick < 40; tick++ {
				e.Step()
				for _, b := range e.Bodies() {
					vt := kinetics.ThermalVelocity(350, b.Mass)
					speed := b.Velocity.Len()
					Expect(speed).To(BeNumerically(">=", vt/2*(1-1e-9)))
					Expect(speed).To(BeNumerically("<=", vt*2*(1+1e-9)))
				}
			}
		})

		It("sends a body at rest off at half the thermal speed", func() {
			inst := place(e, template("water"), mgl64.Vec3{}, mgl64.Vec3{})
			e.Start()
			e.Step()
			vt := kinetics.ThermalVelocity(273, inst.Template.Mass)
			Expect(inst.Velocity.Len()).To(BeNumerically("~", vt/2, 1e-9))
		})
	})

	Describe("boundary containment", func() {
		It("pushes a molecule past +x back in proportion to the depth", func() {
			water := template("water")
			shallow := place(e, water, mgl64.Vec3{params.Bounds.X() + 50, 0, 0}, mgl64.Vec3{})
			e.Start()
			e.Step()
			Expect(e.Stats().WallHits).To(Equal(1))

			deep := engine.New(engine.WithSeed(42))
			far := place(deep, water, mgl64.Vec3{params.Bounds.X() + 100, 0, 0}, mgl64.Vec3{})
			deep.Start()
			deep.Step()

			Expect(shallow.Velocity.X()).To(BeNumerically("<", 0))
			Expect(shallow.Velocity.X()).To(BeNumerically("~", -params.RepelFactor*50, 1e-9))
			Expect(far.Velocity.X()).To(BeNumerically("~", -params.RepelFactor*100, 1e-9))
			Expect(far.Velocity.X() / shallow.Velocity.X()).To(BeNumerically("~", 2, 1e-12))
			Expect(shallow.Velocity.Y()).To(BeZero())
			Expect(shallow.Velocity.Z()).To(BeZero())
		})

		It("applies the same rule to free ions", func() {
			inst := engine.NewInstance(template("sodium-chloride"), mgl64.Vec3{}, mgl64.Vec3{}, mgl64.QuatIdent())
			inst.Atoms[0].Position = mgl64.Vec3{0, -params.Bounds.Y() - 50, 0}
			inst.Atoms[1].Position = mgl64.Vec3{1500, 1500, 0}
			e.Add(inst)
			e.Start()
			e.Step()

			Expect(inst.Atoms[0].Velocity.Y()).To(BeNumerically("~", params.RepelFactor*50, 1e-3))
			Expect(e.Stats().WallHits).To(Equal(1))
		})
	})

	Describe("collisions", func() {
		It("bounces overlapping molecules apart", func() {
			water := template("water")
			a := place(e, water, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{400, 0, 0})
			b := place(e, water, mgl64.Vec3{300, 0, 0}, mgl64.Vec3{-400, 0, 0})
			e.Start()
			e.Step()

			Expect(e.Stats().Collisions).To(Equal(1))
			Expect(a.Velocity.X()).To(BeNumerically("<", 0))
			Expect(b.Velocity.X()).To(BeNumerically(">", 0))
			Expect(b.Position.X() - a.Position.X()).To(BeNumerically(">=", 2*params.MoleculeRadius))
		})

		It("stays finite for coincident molecules", func() {
			water := template("water")
			place(e, water, mgl64.Vec3{10, 20, 30}, mgl64.Vec3{100, 0, 0})
			place(e, water, mgl64.Vec3{10, 20, 30}, mgl64.Vec3{0, 100, 0})
			e.Start()
			e.Step()
			for _, b := range e.Bodies() {
				Expect(finite(b.Position)).To(BeTrue())
				Expect(finite(b.Velocity)).To(BeTrue())
			}
		})

		It("stays finite without a contact radius", func() {
			params.MoleculeRadius = 0
			e = engine.New(engine.WithParams(params), engine.WithSeed(1))
			water := template("water")
			place(e, water, mgl64.Vec3{}, mgl64.Vec3{100, 0, 0})
			place(e, water, mgl64.Vec3{}, mgl64.Vec3{0, 100, 0})
			e.Start()
			e.Step()
			Expect(e.Stats().Collisions).To(BeZero())
			for _, b := range e.Bodies() {
				Expect(finite(b.Position)).To(BeTrue())
				Expect(finite(b.Velocity)).To(BeTrue())
			}
		})
	})

	Describe("ionic forces", func() {
		It("attracts opposite charges and repels like ones", func() {
			inst := engine.NewInstance(template("calcium-fluoride"), mgl64.Vec3{}, mgl64.Vec3{}, mgl64.QuatIdent())
			ca, f1, f2 := &inst.Atoms[0], &inst.Atoms[1], &inst.Atoms[2]
			ca.Position = mgl64.Vec3{0, 0, 0}
			f1.Position = mgl64.Vec3{1000, 0, 0}
			f2.Position = mgl64.Vec3{0, 1000, 0}
			e.Add(inst)
			e.Start()
			e.Step()

			Expect(ca.Velocity.X()).To(BeNumerically(">", 0))
			Expect(ca.Velocity.Y()).To(BeNumerically("~", ca.Velocity.X(), 1e-6))
			Expect(ca.Velocity.Z()).To(BeNumerically("~", 0, 1e-9))
			Expect(f1.Velocity.Y()).To(BeNumerically("<", 0))
			Expect(f2.Velocity.X()).To(BeNumerically("<", 0))
		})

		It("acts across instances", func() {
			params.Bounds = mgl64.Vec3{1e7, 1e7, 1e7}
			e = engine.New(engine.WithParams(params), engine.WithSeed(3))
			kcl := template("potassium-chloride")

			left := engine.NewInstance(kcl, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.QuatIdent())
			left.Atoms[0].Position = mgl64.Vec3{0, 0, 0}
			left.Atoms[1].Position = mgl64.Vec3{0, 0, 1e6}
			right := engine.NewInstance(kcl, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.QuatIdent())
			right.Atoms[0].Position = mgl64.Vec3{1000, 0, 0}
			right.Atoms[1].Position = mgl64.Vec3{0, 0, -1e6}
			e.Add(left)
			e.Add(right)
			e.Start()
			e.Step()

			Expect(left.Atoms[0].Velocity.X()).To(BeNumerically("<", 0))
			Expect(right.Atoms[0].Velocity.X()).To(BeNumerically(">", 0))
		})
	})

	Describe("rotation", func() {
		It("left-multiplies the incremental rotation", func() {
			water := template("water")
			r0 := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
			inst := engine.NewInstance(water, mgl64.Vec3{}, mgl64.Vec3{500, 0, 0}, r0)
			inst.AngularVelocity = mgl64.Vec3{0, 0, math.Pi}
			e.Add(inst)
			e.Start()
			e.Step()

			want := mgl64.QuatRotate(math.Pi*params.TickStep, mgl64.Vec3{0, 0, 1}).Mul(r0)
			Expect(inst.Rotation.ApproxEqualThreshold(want, 1e-12)).To(BeTrue())
			Expect(inst.Rotation.Len()).To(BeNumerically("~", 1, 1e-12))

			for i, site := range water.Sites {
				local, ok := site.Position()
				Expect(ok).To(BeTrue())
				want := inst.Position.Add(inst.Rotation.Rotate(local))
				Expect(inst.AtomPosition(i).ApproxEqualThreshold(want, 1e-9)).To(BeTrue())
			}

			p1, p2 := inst.BondEndpoints(water.Bonds[0])
			Expect(p1.Sub(p2).Len()).To(BeNumerically("~", water.Bonds[0].Length, 1e-9))
		})
	})
})
