package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/chemlab/internal/sim"
)

// Ensemble repeats one experiment with consecutive seeds in parallel. Each
// run gets its own session and its own metrics from newMetrics. At least one
// run is made.
type Ensemble struct {
	cfg        Config
	reg        *Registry
	numRuns    int
	newMetrics func() []sim.Metric
}

func NewEnsemble(cfg Config, reg *Registry, numRuns int, newMetrics func() []sim.Metric) *Ensemble {
	if numRuns < 1 {
		numRuns = 1
	}
	if reg == nil {
		reg = NewRegistry()
	}
	return &Ensemble{cfg: cfg, reg: reg, numRuns: numRuns, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.cfg.Seed + int64(idx)

			var metrics []sim.Metric
			if e.newMetrics != nil {
				metrics = e.newMetrics()
			}
			exp := New(cfgCopy, e.reg)
			if err := exp.Setup(nil, metrics...); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
