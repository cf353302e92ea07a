package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/config"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/sim"
	"github.com/san-kum/chemlab/internal/tutor"
	"github.com/san-kum/chemlab/internal/viz"
)

var (
	ticks        int
	seed         int64
	interval     time.Duration
	capacity     int
	configFile   string
	preset       string
	sets         []string
	plotKey      string
	theme        string
	numRuns      int
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	sweepTicks   int
	sweepKey     string
	trials       int
	perturbation float64
	outFile      string
	apiKey       string
)

func main() {
	registry := experiment.NewRegistry()

	rootCmd := &cobra.Command{
		Use:   "chemlab",
		Short: "interactive chemistry demonstrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			viz.SetTheme(theme)
			return viz.RunInteractive(topicEntries(registry), func(topic string) *sim.Session {
				return sim.NewSession(topic, registry.New(topic, seed))
			})
		},
	}
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for particle demos")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "lab", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	addRunFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
		cmd.Flags().IntVar(&capacity, "history", 0, "history capacity (0 keeps the simulation default)")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use a named parameter preset")
		cmd.Flags().StringArrayVar(&sets, "set", nil, "override a parameter, name=value (repeatable)")
	}

	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "list knowledge topics and their simulations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tNAME\tKIND")
			for _, e := range topicEntries(registry) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, e.Kind)
			}
			return w.Flush()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [topic]",
		Short: "run a topic headless and print metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopic(cmd, registry, args)
		},
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&plotKey, "plot", "", "plot this output over the history window")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "run an ensemble of seeds and average the metrics")

	liveCmd := &cobra.Command{
		Use:   "live [topic]",
		Short: "run a topic with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, registry, args)
			if err != nil {
				return err
			}
			session, err := newSession(registry, cfg)
			if err != nil {
				return err
			}
			viz.SetTheme(theme)
			return viz.RunLive(session)
		},
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().DurationVar(&interval, "interval", 0, "tick interval (0 keeps the simulation default)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [topic]",
		Short: "sweep one parameter and plot an output (defaults to the titration curve)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, registry, args)
		},
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of values")
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", 1, "ticks per run")
	sweepCmd.Flags().StringVar(&sweepKey, "plot", "ph", "output to plot")
	sweepCmd.Flags().StringArrayVar(&sets, "set", nil, "fix a parameter, name=value (repeatable)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [topic]",
		Short: "run trials with randomly perturbed parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonteCarlo(cmd, registry, args[0])
		},
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturb", 0.5, "maximum perturbation per parameter")
	monteCarloCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per trial")
	monteCarloCmd.Flags().StringArrayVar(&sets, "set", nil, "base parameter value, name=value (repeatable)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, registry, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [topic]",
		Short: "run a topic and write its history window as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, registry, args, formatCSV)
		},
	}
	exportJSONCmd := &cobra.Command{
		Use:   "export-json [topic]",
		Short: "run a topic and write its history window as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, registry, args, formatJSON)
		},
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [topic]",
		Short: "run a topic and draw its final snapshot, or one output series, as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, registry, args, formatSVG)
		},
	}
	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd, exportSVGCmd} {
		addRunFlags(c)
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}
	exportSVGCmd.Flags().StringVar(&plotKey, "series", "", "plot this output instead of the snapshot")

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets for a simulation kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := string(registry.KindFor(args[0]))
			presets := config.ListPresets(kind)
			if len(presets) == 0 {
				fmt.Printf("no presets for kind: %s\n", kind)
				return nil
			}
			fmt.Printf("presets for %s:\n", kind)
			for _, p := range presets {
				fmt.Printf("  %-18s %s\n", p, formatParams(config.GetPreset(kind, p)))
			}
			return nil
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask [topic] [question]",
		Short: "ask the chemistry tutor a question",
		Args:  cobra.MinimumNArgs(2),
		RunE:  askTutor,
	}
	askCmd.Flags().StringVar(&apiKey, "api-key", "", "tutor API key (default $CHEMLAB_TUTOR_API_KEY)")

	hintsCmd := &cobra.Command{
		Use:   "hints [topic]",
		Short: "show study hints for a topic",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(tutor.Name(args[0]))
			for _, h := range tutor.Hints(args[0]) {
				fmt.Printf("  • %s\n", h)
			}
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the tutor proxy, topics and live session streams over HTTP",
		RunE:  serve,
	}

	rootCmd.AddCommand(topicsCmd, runCmd, liveCmd, sweepCmd, monteCarloCmd, scenarioCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, askCmd, hintsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func topicEntries(registry *experiment.Registry) []viz.Entry {
	topics := registry.Topics()
	entries := make([]viz.Entry, 0, len(topics))
	for _, id := range topics {
		entries = append(entries, viz.Entry{ID: id, Name: tutor.Name(id), Kind: registry.KindFor(id).String()})
	}
	return entries
}

// resolveConfig builds the run config. Parameters layer as preset, then
// config file, then --set; explicit flags override the run settings.
func resolveConfig(cmd *cobra.Command, registry *experiment.Registry, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Topic = args[0]
	}

	if preset != "" {
		kind := registry.KindFor(cfg.Topic).String()
		params := config.GetPreset(kind, preset)
		if params == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		cfg = cfg.Merge(params)
	}

	overrides, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		base := cfg.Params
		cfg.Params = overrides
		cfg = cfg.Merge(base)
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") || configFile == "" {
		cfg.Ticks = ticks
	}
	if flags.Changed("history") {
		cfg.HistoryCapacity = capacity
	} else if configFile == "" {
		// zero keeps the simulation's own window
		cfg.HistoryCapacity = 0
	}
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if cfg.Seed == 0 || flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

func parseSets(values []string) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for _, kv := range values {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", kv, err)
		}
		out[name] = v
	}
	return out, nil
}

func formatParams(params map[string]float64) string {
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// newSession builds an unscheduled session with the config applied.
func newSession(registry *experiment.Registry, cfg *config.Config) (*sim.Session, error) {
	var opts []sim.Option
	if cfg.Interval > 0 {
		opts = append(opts, sim.WithInterval(cfg.Interval))
	}
	if cfg.HistoryCapacity > 0 {
		opts = append(opts, sim.WithHistoryCapacity(cfg.HistoryCapacity))
	}
	session := sim.NewSession(cfg.Topic, registry.New(cfg.Topic, cfg.Seed), opts...)
	for _, name := range sortedKeys(cfg.Params) {
		if _, err := session.SetParam(name, cfg.Params[name]); err != nil {
			return nil, err
		}
	}
	session.Settle()
	return session, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
