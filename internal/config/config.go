package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/logging"
	"github.com/san-kum/molsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicks       = 500
	DefaultTemperature = 273.0
	DefaultSampleEvery = 10
)

type Config struct {
	Seed        int64          `yaml:"seed"`
	Ticks       int            `yaml:"ticks"`
	Temperature float64        `yaml:"temperature"`
	Speed       int            `yaml:"speed"`
	SampleEvery int            `yaml:"sample_every"`
	Spawn       []SpawnConfig  `yaml:"spawn"`
	Engine      EngineConfig   `yaml:"engine"`
	Log         logging.Config `yaml:"log"`
}

type SpawnConfig struct {
	Molecule string `yaml:"molecule"`
	Count    int    `yaml:"count"`
}

type EngineConfig struct {
	TickStep         float64   `yaml:"tick_step"`
	SpeedFactor      float64   `yaml:"speed_factor"`
	Bounds           []float64 `yaml:"bounds,flow"`
	RepelFactor      float64   `yaml:"repel_factor"`
	Restitution      float64   `yaml:"restitution"`
	MoleculeRadius   float64   `yaml:"molecule_radius"`
	MinDistance      float64   `yaml:"min_distance"`
	IonConstant      float64   `yaml:"ion_constant"`
	DipoleConstant   float64   `yaml:"dipole_constant"`
	HydrogenConstant float64   `yaml:"hydrogen_constant"`
	LDFConstant      float64   `yaml:"ldf_constant"`
	SpinRate         float64   `yaml:"spin_rate"`
}

func DefaultEngineConfig() EngineConfig {
	p := engine.DefaultParams()
	return EngineConfig{
		TickStep:         p.TickStep,
		SpeedFactor:      p.SpeedFactor,
		Bounds:           []float64{p.Bounds.X(), p.Bounds.Y(), p.Bounds.Z()},
		RepelFactor:      p.RepelFactor,
		Restitution:      p.Restitution,
		MoleculeRadius:   p.MoleculeRadius,
		MinDistance:      p.MinDistance,
		IonConstant:      p.IonConstant,
		DipoleConstant:   p.DipoleConstant,
		HydrogenConstant: p.HydrogenConstant,
		LDFConstant:      p.LDFConstant,
		SpinRate:         p.SpinRate,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Seed:        1,
		Ticks:       DefaultTicks,
		Temperature: DefaultTemperature,
		SampleEvery: DefaultSampleEvery,
		Spawn: []SpawnConfig{
			{Molecule: "water", Count: 8},
			{Molecule: "carbon-dioxide", Count: 4},
		},
		Engine: DefaultEngineConfig(),
		Log:    logging.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must be non-negative, got %f", c.Temperature)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample_every must be non-negative, got %d", c.SampleEvery)
	}
	for _, s := range c.Spawn {
		if s.Molecule == "" {
			return fmt.Errorf("spawn entry without a molecule")
		}
		if s.Count < 0 {
			return fmt.Errorf("spawn count for %q must be non-negative, got %d", s.Molecule, s.Count)
		}
	}

	e := c.Engine
	if e.TickStep <= 0 {
		return fmt.Errorf("engine.tick_step must be positive, got %f", e.TickStep)
	}
	if e.SpeedFactor <= 0 {
		return fmt.Errorf("engine.speed_factor must be positive, got %f", e.SpeedFactor)
	}
	if len(e.Bounds) != 3 {
		return fmt.Errorf("engine.bounds needs 3 values, got %d", len(e.Bounds))
	}
	for _, b := range e.Bounds {
		if b <= 0 {
			return fmt.Errorf("engine.bounds must be positive, got %v", e.Bounds)
		}
	}
	if e.Restitution < 0 || e.Restitution > 1 {
		return fmt.Errorf("engine.restitution must be in [0, 1], got %f", e.Restitution)
	}
	if e.MoleculeRadius < 0 {
		return fmt.Errorf("engine.molecule_radius must be non-negative, got %f", e.MoleculeRadius)
	}
	if e.MinDistance <= 0 {
		return fmt.Errorf("engine.min_distance must be positive, got %f", e.MinDistance)
	}
	return nil
}

// EngineParams converts the engine section. Bounds must already be validated.
func (c *Config) EngineParams() engine.Params {
	p := engine.DefaultParams()
	e := c.Engine
	p.TickStep = e.TickStep
	p.SpeedFactor = e.SpeedFactor
	if len(e.Bounds) == 3 {
		p.Bounds = mgl64.Vec3{e.Bounds[0], e.Bounds[1], e.Bounds[2]}
	}
	p.RepelFactor = e.RepelFactor
	p.Restitution = e.Restitution
	p.MoleculeRadius = e.MoleculeRadius
	p.MinDistance = e.MinDistance
	p.IonConstant = e.IonConstant
	p.DipoleConstant = e.DipoleConstant
	p.HydrogenConstant = e.HydrogenConstant
	p.LDFConstant = e.LDFConstant
	p.SpinRate = e.SpinRate
	return p
}

func (c *Config) SimConfig() sim.Config {
	spawn := make([]sim.Spawn, len(c.Spawn))
	for i, s := range c.Spawn {
		spawn[i] = sim.Spawn{Molecule: s.Molecule, Count: s.Count}
	}
	return sim.Config{
		Ticks:       c.Ticks,
		Temperature: c.Temperature,
		Speed:       c.Speed,
		Spawn:       spawn,
		SampleEvery: c.SampleEvery,
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Spawn = append([]SpawnConfig(nil), c.Spawn...)
	out.Engine.Bounds = append([]float64(nil), c.Engine.Bounds...)
	out.Log.OutputPaths = append([]string(nil), c.Log.OutputPaths...)
	return &out
}
