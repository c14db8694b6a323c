// Package engine advances a population of rigid covalent molecules and free
// ions through fixed ticks. It has no clock of its own: a scheduler calls Step.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/molsim/internal/kinetics"
	"github.com/san-kum/molsim/internal/molecule"
	"go.uber.org/zap"
)

type State int

const (
	Stopped State = iota
	Active
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Active:
		return "active"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Stats counts events of the most recent tick, plus the number of ticks that
// did work since the last Stop.
type Stats struct {
	Collisions int
	WallHits   int
	Ticks      uint64
}

type Engine struct {
	params Params
	log    *zap.Logger
	rng    *rand.Rand

	temperature     float64
	pressure        float64
	started         bool
	paused          bool
	speedMultiplier float64
	dt              float64

	instances []*Instance
	stats     Stats
}

type Option func(*Engine)

func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New returns a stopped engine at the initial temperature and pressure.
func New(opts ...Option) *Engine {
	e := &Engine{
		params:          DefaultParams(),
		log:             zap.NewNop(),
		speedMultiplier: 1,
		paused:          true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.temperature = e.params.InitialTemperature
	e.pressure = e.params.InitialPressure
	return e
}

func (e *Engine) Start() {
	e.started = true
	e.paused = false
	e.refreshDt()
	e.log.Debug("engine started", zap.Float64("dt", e.dt), zap.Float64("temperature", e.temperature))
}

// Stop returns to Stopped, restores the initial temperature and pressure and
// destroys every live instance.
func (e *Engine) Stop() {
	e.started = false
	e.paused = true
	e.temperature = e.params.InitialTemperature
	e.pressure = e.params.InitialPressure
	e.instances = nil
	e.stats = Stats{}
	e.refreshDt()
	e.log.Debug("engine stopped")
}

func (e *Engine) Pause() {
	e.paused = true
	e.refreshDt()
	e.log.Debug("engine paused")
}

// Resume unpauses a started engine. It does nothing while stopped.
func (e *Engine) Resume() {
	if !e.started {
		return
	}
	e.paused = false
	e.refreshDt()
	e.log.Debug("engine resumed", zap.Float64("dt", e.dt))
}

func (e *Engine) SpeedUp() {
	e.speedMultiplier *= e.params.SpeedFactor
	e.refreshDt()
	e.log.Debug("speed changed", zap.Float64("multiplier", e.speedMultiplier))
}

func (e *Engine) SlowDown() {
	e.speedMultiplier /= e.params.SpeedFactor
	e.refreshDt()
	e.log.Debug("speed changed", zap.Float64("multiplier", e.speedMultiplier))
}

func (e *Engine) ResetSpeed() {
	e.speedMultiplier = 1
	e.refreshDt()
	e.log.Debug("speed reset")
}

func (e *Engine) refreshDt() {
	if e.started && !e.paused {
		e.dt = e.params.TickStep * e.speedMultiplier
		return
	}
	e.dt = 0
}

func (e *Engine) State() State {
	switch {
	case !e.started:
		return Stopped
	case e.paused:
		return Paused
	default:
		return Active
	}
}

func (e *Engine) IsStarted() bool          { return e.started }
func (e *Engine) IsPaused() bool           { return e.paused }
func (e *Engine) SpeedMultiplier() float64 { return e.speedMultiplier }
func (e *Engine) Dt() float64              { return e.dt }
func (e *Engine) Temperature() float64     { return e.temperature }
func (e *Engine) Pressure() float64        { return e.pressure }
func (e *Engine) Params() Params           { return e.params }
func (e *Engine) Stats() Stats             { return e.stats }
func (e *Engine) Len() int                 { return len(e.instances) }

// SetTemperature sets the thermostat in K. Negative and NaN values are
// treated as 0.
func (e *Engine) SetTemperature(k float64) {
	if math.IsNaN(k) || k < 0 {
		k = 0
	}
	e.temperature = k
}

// Instances returns the live instances. The slice is a copy; the instances
// are not and must only be read between steps.
func (e *Engine) Instances() []*Instance {
	out := make([]*Instance, len(e.instances))
	copy(out, e.instances)
	return out
}

func (e *Engine) Add(inst *Instance) {
	if inst == nil || inst.Template == nil {
		return
	}
	e.instances = append(e.instances, inst)
}

// RandomPosition samples a point uniformly inside the bounds box.
func (e *Engine) RandomPosition() mgl64.Vec3 {
	b := e.params.Bounds
	return kinetics.RandomVector(e.rng, b.Mul(-1), b)
}

// RandomVelocity is a uniform direction scaled to the thermal speed of a body
// of the given mass at the current temperature.
func (e *Engine) RandomVelocity(massG float64) mgl64.Vec3 {
	return kinetics.RandomUnitVector(e.rng).Mul(kinetics.ThermalVelocity(e.temperature, massG))
}

// Spawn creates an instance of tpl at a random place and adds it. Rigid
// molecules get a random orientation; ionic atoms are scattered individually.
func (e *Engine) Spawn(tpl *molecule.Template) *Instance {
	inst := NewInstance(tpl, e.RandomPosition(), e.RandomVelocity(tpl.Mass), kinetics.RandomOrientation(e.rng))
	if inst.Ionic() {
		for i := range inst.Atoms {
			a := &inst.Atoms[i]
			a.Position = e.RandomPosition()
			a.Velocity = e.RandomVelocity(a.Mass())
		}
	} else if e.params.SpinRate > 0 {
		inst.AngularVelocity = kinetics.RandomUnitVector(e.rng).Mul(e.params.SpinRate)
		inst.sync()
	}
	e.Add(inst)
	return inst
}

// Body is one independently moving mass: a rigid instance or a free ion.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mass     float64
}

func (e *Engine) Bodies() []Body {
	out := make([]Body, 0, len(e.instances))
	for _, inst := range e.instances {
		if !inst.Ionic() {
			out = append(out, Body{Position: inst.Position, Velocity: inst.Velocity, Mass: inst.Template.Mass})
			continue
		}
		for i := range inst.Atoms {
			a := &inst.Atoms[i]
			out = append(out, Body{Position: a.Position, Velocity: a.Velocity, Mass: a.Mass()})
		}
	}
	return out
}
