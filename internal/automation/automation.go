package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one topic for a fixed number of ticks
type ScenarioStep struct {
	Topic  string             `yaml:"topic"`
	Ticks  int                `yaml:"ticks"`
	Seed   int64              `yaml:"seed"`
	Params map[string]float64 `yaml:"params"`
	Edits  []Edit             `yaml:"edits"`
	SaveAs string             `yaml:"save_as"`
}

// Edit writes a parameter just before the given tick is stepped
type Edit struct {
	Tick  int     `yaml:"tick"`
	Param string  `yaml:"param"`
	Value float64 `yaml:"value"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, step := range scenario.Steps {
		if step.Topic == "" {
			return nil, fmt.Errorf("step %d: missing topic", i+1)
		}
		if step.Ticks <= 0 {
			return nil, fmt.Errorf("step %d: ticks must be positive", i+1)
		}
	}
	return &scenario, nil
}

// editsHook applies edits in tick order.
func editsHook(edits []Edit) experiment.Hook {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })
	return func(tick int, s *sim.Session) error {
		for _, e := range sorted {
			if e.Tick != tick {
				continue
			}
			if _, err := s.SetParam(e.Param, e.Value); err != nil {
				return fmt.Errorf("edit at tick %d: %w", tick, err)
			}
		}
		return nil
	}
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger logging.Logger) ([]experiment.Result, error) {
	logger = logging.OrNoop(logger)
	results := make([]experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info(ctx, "running scenario step",
			logging.Int("step", i+1),
			logging.Int("of", len(scenario.Steps)),
			logging.String("topic", step.Topic),
		)

		exp := experiment.New(experiment.Config{
			Topic:  step.Topic,
			Ticks:  step.Ticks,
			Seed:   step.Seed,
			Params: step.Params,
		}, registry)
		if err := exp.Setup(nil); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		if len(step.Edits) > 0 {
			exp.OnTick(editsHook(step.Edits))
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, *result)
	}

	return results, nil
}

// ParameterSweep runs one topic across a range of values of one parameter
type ParameterSweep struct {
	Topic     string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
	Fixed     map[string]float64
}

// SweepResult holds the outputs of the last tick of one sweep run
type SweepResult struct {
	ParamValue float64        `json:"param"`
	Final      dynamo.Outputs `json:"final"`
}

// TitrationCurve sweeps the burette reading from empty to full in drop
// sized steps with dropping disabled, so each run reports the pH at exactly
// that volume.
func TitrationCurve() *ParameterSweep {
	return &ParameterSweep{
		Topic:     "titration",
		ParamName: "volume",
		ParamMin:  0,
		ParamMax:  50,
		NumSteps:  101,
		Ticks:     1,
		Fixed:     map[string]float64{"dropping": 0},
	}
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger logging.Logger) ([]SweepResult, error) {
	logger = logging.OrNoop(logger)
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}
	ticks := sweep.Ticks
	if ticks < 1 {
		ticks = 1
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		params := make(map[string]float64, len(sweep.Fixed)+1)
		for k, v := range sweep.Fixed {
			params[k] = v
		}
		params[sweep.ParamName] = paramVal

		exp := experiment.New(experiment.Config{Topic: sweep.Topic, Ticks: ticks, Params: params}, registry)
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		var final dynamo.Outputs
		if s, ok := result.Final(); ok {
			final = s.Outputs
		}
		results = append(results, SweepResult{ParamValue: paramVal, Final: final})

		logger.Debug(ctx, "sweep point", logging.Int("step", i+1), logging.String("param", sweep.ParamName), logging.Float("value", paramVal))
	}

	return results, nil
}

// MonteCarloConfig perturbs the base parameters of a topic at random
type MonteCarloConfig struct {
	Topic        string
	Base         map[string]float64
	Perturbation float64
	NumTrials    int
	Ticks        int
	Seed         int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID int                `json:"trial"`
	Params  map[string]float64 `json:"params"`
	Final   dynamo.Outputs     `json:"final"`
	Stable  bool               `json:"stable"` // every tick produced finite outputs
}

// RunMonteCarlo executes trials with randomly perturbed parameters. Values
// outside a parameter's range are clamped by the store as usual.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry, logger logging.Logger) ([]MonteCarloResult, error) {
	logger = logging.OrNoop(logger)
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	names := make([]string, 0, len(cfg.Base))
	for name := range cfg.Base {
		names = append(names, name)
	}
	sort.Strings(names)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		params := make(map[string]float64, len(names))
		for _, name := range names {
			params[name] = cfg.Base[name] + (rng.Float64()-0.5)*2*cfg.Perturbation
		}

		exp := experiment.New(experiment.Config{
			Topic:  cfg.Topic,
			Ticks:  cfg.Ticks,
			Seed:   rng.Int63(),
			Params: params,
		}, registry)
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		stable := err == nil
		if err != nil && ctx.Err() != nil {
			return results, err
		}

		var final dynamo.Outputs
		if s, ok := result.Final(); ok {
			final = s.Outputs
		}
		for _, p := range exp.Session().Params() {
			if _, ok := params[p.Name]; ok {
				params[p.Name] = p.Value
			}
		}
		results = append(results, MonteCarloResult{
			TrialID: trial,
			Params:  params,
			Final:   final,
			Stable:  stable,
		})

		if (trial+1)%10 == 0 {
			logger.Info(ctx, "monte carlo progress", logging.Int("done", trial+1), logging.Int("trials", cfg.NumTrials))
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
