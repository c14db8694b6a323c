package sim

import (
	"context"

	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/molecule"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent engines that differ only in their seed. Each run
// owns its engine, so runs proceed in parallel without sharing state.
type Ensemble struct {
	reg       *molecule.Registry
	params    engine.Params
	log       *zap.Logger
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

func NewEnsemble(reg *molecule.Registry, params engine.Params, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		reg:       reg,
		params:    params,
		log:       zap.NewNop(),
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

func (e *Ensemble) WithLogger(l *zap.Logger) *Ensemble {
	if l != nil {
		e.log = l
	}
	return e
}

// WithMetrics sets the factory that gives every run its own metric set.
func (e *Ensemble) WithMetrics(f func() []Metric) *Ensemble {
	e.metrics = f
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]*Result, e.numRuns)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			log := e.log.With(zap.Int("run", idx), zap.Int64("seed", seed))
			eng := engine.New(engine.WithParams(e.params), engine.WithSeed(seed), engine.WithLogger(log))

			s := New(eng, e.reg, log)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(gctx, cfg)
			results[idx] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
