package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/automation"
	"github.com/san-kum/chemlab/internal/config"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/sim"
)

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Topic:           cfg.Topic,
		Ticks:           cfg.Ticks,
		Seed:            cfg.Seed,
		HistoryCapacity: cfg.HistoryCapacity,
		Params:          cfg.Params,
	}
}

// runHeadless steps the configured topic without the wall clock.
func runHeadless(ctx context.Context, registry *experiment.Registry, cfg *config.Config) (*experiment.Result, *sim.Session, error) {
	exp := experiment.New(experimentConfig(cfg), registry)
	if err := exp.Setup([]sim.Option{sim.WithLogger(logging.NewFromEnv())}); err != nil {
		return nil, nil, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return result, exp.Session(), fmt.Errorf("run failed: %w", err)
	}
	return result, exp.Session(), nil
}

func runTopic(cmd *cobra.Command, registry *experiment.Registry, args []string) error {
	cfg, err := resolveConfig(cmd, registry, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if numRuns > 1 {
		return runEnsemble(ctx, registry, cfg)
	}

	result, session, err := runHeadless(ctx, registry, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("topic: %s (%s)\n", result.Topic, result.Kind)
	fmt.Printf("ticks: %d\n\n", len(result.Samples))

	if final, ok := result.Final(); ok {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "OUTPUT\tFINAL")
		for _, k := range final.Outputs.Keys() {
			fmt.Fprintf(w, "%s\t%.4f\n", k, final.Outputs[k])
		}
		w.Flush()
		fmt.Println()
	}

	printMetrics(result.Metrics)

	for _, e := range result.Events {
		fmt.Printf("event at tick %d: %s\n", e.Tick, e.Name)
	}
	labels := session.Snapshot().Labels
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, labels[name])
	}

	if plotKey != "" {
		return plotSeries(result.Window, plotKey)
	}
	return nil
}

func runEnsemble(ctx context.Context, registry *experiment.Registry, cfg *config.Config) error {
	kind := registry.KindFor(cfg.Topic)
	ensemble := experiment.NewEnsemble(experimentConfig(cfg), registry, numRuns, func() []sim.Metric {
		return registry.DefaultMetrics(kind)
	})
	results, err := ensemble.Run(ctx)
	if err != nil {
		return err
	}

	sums := make(map[string]float64)
	for _, r := range results {
		for k, v := range r.Metrics {
			sums[k] += v
		}
	}
	fmt.Printf("topic: %s (%s), %d runs from seed %d\n\n", cfg.Topic, kind, len(results), cfg.Seed)
	means := make(map[string]float64, len(sums))
	for k, v := range sums {
		means[k] = v / float64(len(results))
	}
	printMetrics(means)
	return nil
}

func printMetrics(metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range sortedKeys(metrics) {
		fmt.Fprintf(w, "%s\t%.4f\n", k, metrics[k])
	}
	w.Flush()
	fmt.Println()
}

func plotSeries(samples []dynamo.Sample, key string) error {
	data := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v, ok := s.Outputs[key]; ok && !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("no output named %q", key)
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(key),
	))
	return nil
}

func runSweep(cmd *cobra.Command, registry *experiment.Registry, args []string) error {
	sweep := automation.TitrationCurve()
	if len(args) > 0 {
		sweep.Topic = args[0]
	}
	if sweepParam != "" {
		sweep.ParamName = sweepParam
		sweep.ParamMin = sweepMin
		sweep.ParamMax = sweepMax
		sweep.NumSteps = sweepSteps
		sweep.Ticks = sweepTicks
		sweep.Fixed = nil
	} else if registry.KindFor(sweep.Topic) != registry.KindFor("titration") {
		return fmt.Errorf("--param is required for topic %s", sweep.Topic)
	}

	fixed, err := parseSets(sets)
	if err != nil {
		return err
	}
	if len(fixed) > 0 {
		if sweep.Fixed == nil {
			sweep.Fixed = make(map[string]float64, len(fixed))
		}
		for k, v := range fixed {
			sweep.Fixed[k] = v
		}
	}

	results, err := automation.RunSweep(cmd.Context(), sweep, registry, logging.NewFromEnv())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", sweep.ParamName, sweepKey)
	data := make([]float64, 0, len(results))
	for _, r := range results {
		v, ok := r.Final[sweepKey]
		if !ok {
			return fmt.Errorf("no output named %q", sweepKey)
		}
		data = append(data, v)
		fmt.Fprintf(w, "%.3f\t%.4f\n", r.ParamValue, v)
	}
	w.Flush()

	if len(data) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", sweepKey, sweep.ParamName)),
		))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, registry *experiment.Registry, topic string) error {
	base, err := parseSets(sets)
	if err != nil {
		return err
	}
	if len(base) == 0 {
		probe := sim.NewSession(topic, registry.New(topic, seed))
		for _, p := range probe.Params() {
			if p.Step > 0 && p.Max > p.Min {
				base[p.Name] = p.Value
			}
		}
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Topic:        topic,
		Base:         base,
		Perturbation: perturbation,
		NumTrials:    trials,
		Ticks:        ticks,
		Seed:         seed,
	}, registry, logging.NewFromEnv())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("topic: %s, %d trials\n", topic, len(results))
	fmt.Printf("stable:   %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	return nil
}

func runScenario(cmd *cobra.Command, registry *experiment.Registry, path string) error {
	scenario, err := automation.LoadScenario(path)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("  %s\n", scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(cmd.Context(), scenario, registry, logging.NewFromEnv())
	for i, r := range results {
		fmt.Printf("step %d: %s, %d ticks\n", i+1, r.Topic, len(r.Samples))
		for _, k := range sortedKeys(r.Metrics) {
			fmt.Printf("  %-20s %.4f\n", k, r.Metrics[k])
		}
		if saveAs := scenario.Steps[i].SaveAs; saveAs != "" {
			if werr := writeResultFile(saveAs, &r); werr != nil {
				return werr
			}
			fmt.Printf("  saved to %s\n", saveAs)
		}
	}
	return err
}
