package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/molecule"
	"go.uber.org/zap"
)

// Simulator is a headless fixed-tick scheduler around one engine.
type Simulator struct {
	eng       *engine.Engine
	reg       *molecule.Registry
	log       *zap.Logger
	metrics   []Metric
	observers []Observer
}

func New(eng *engine.Engine, reg *molecule.Registry, log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{
		eng:       eng,
		reg:       reg,
		log:       log,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Engine() *engine.Engine { return s.eng }

// Populate spawns every requested molecule into the engine.
func (s *Simulator) Populate(spawn []Spawn) error {
	for _, sp := range spawn {
		tpl, err := s.reg.Get(sp.Molecule)
		if err != nil {
			return fmt.Errorf("populate: %w", err)
		}
		for i := 0; i < sp.Count; i++ {
			s.eng.Spawn(tpl)
		}
		s.log.Debug("spawned", zap.String("molecule", tpl.Key), zap.Int("count", sp.Count))
	}
	return nil
}

// Run starts the engine and steps it cfg.Ticks times. Cancellation is only
// checked between ticks; a cancelled run returns the partial result with the
// context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every == 0 {
		every = 1
	}
	result := &Result{
		Times:   make([]float64, 0, cfg.Ticks/every+1),
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if cfg.Temperature > 0 {
		s.eng.SetTemperature(cfg.Temperature)
	}
	if err := s.Populate(cfg.Spawn); err != nil {
		return nil, err
	}
	s.eng.Start()
	for i := 0; i < cfg.Speed; i++ {
		s.eng.SpeedUp()
	}
	for i := 0; i > cfg.Speed; i-- {
		s.eng.SlowDown()
	}

	s.log.Info("run started",
		zap.Int("ticks", cfg.Ticks),
		zap.Int("instances", s.eng.Len()),
		zap.Float64("temperature", s.eng.Temperature()),
		zap.Float64("dt", s.eng.Dt()),
	)

	t := 0.0
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, t)
			s.log.Warn("run cancelled", zap.Int("ticks", result.TicksTaken))
			return result, ctx.Err()
		default:
		}

		s.eng.Step()
		t += s.eng.Dt()
		result.TicksTaken++

		stats := s.eng.Stats()
		result.Collisions += stats.Collisions
		result.WallHits += stats.WallHits

		for _, m := range s.metrics {
			m.Observe(s.eng)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.eng, i)
		}

		if (i+1)%every == 0 {
			result.Times = append(result.Times, t)
			for _, m := range s.metrics {
				result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
			}
		}
	}
	s.finish(result, t)
	s.log.Info("run finished",
		zap.Int("ticks", result.TicksTaken),
		zap.Int("collisions", result.Collisions),
		zap.Int("wall_hits", result.WallHits),
	)
	return result, nil
}

func (s *Simulator) finish(result *Result, t float64) {
	result.SimTime = t
	result.Instances = s.eng.Len()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
