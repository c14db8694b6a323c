package sim

import (
	"fmt"

	"github.com/san-kum/molsim/internal/engine"
)

type Metric interface {
	Name() string
	Observe(e *engine.Engine)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(e *engine.Engine, tick int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(e *engine.Engine, tick int)

func (f ObserverFunc) OnStep(e *engine.Engine, tick int) { f(e, tick) }

type Spawn struct {
	Molecule string
	Count    int
}

type Config struct {
	Ticks       int
	Temperature float64
	// Speed is the number of speed-ups applied before the first tick;
	// negative values slow down instead.
	Speed       int
	Spawn       []Spawn
	SampleEvery int
}

func (c Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must be non-negative, got %f", c.Temperature)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %d", c.SampleEvery)
	}
	for _, s := range c.Spawn {
		if s.Count < 0 {
			return fmt.Errorf("spawn count for %q must be non-negative, got %d", s.Molecule, s.Count)
		}
	}
	return nil
}

type Result struct {
	TicksTaken int
	SimTime    float64
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	Collisions int
	WallHits   int
	Instances  int
}
