package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/partfield/internal/compute"
	"github.com/san-kum/partfield/internal/config"
	"github.com/san-kum/partfield/internal/gui"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/sim"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	// trace
	savePlot     bool
	noSave       bool
	scenarioFile string
	svgPath      string

	// tune
	axes       []string
	tuneMetric string

	// bench
	benchFrames int

	// config
	writePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "partfield",
		Short:         "interactive 2d particle field",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
		RunE: runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partfield", "data directory for trace runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the field in the terminal",
		RunE:  runTUI,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark compute backends",
		RunE:  benchBackends,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 120, "frames per backend")

	traceCmd := &cobra.Command{
		Use:   "trace [script]",
		Short: "run a scripted cursor sequence headlessly",
		Long: `Run a cursor script without a window and record telemetry.

Steps are mode@x,y:frames separated by spaces or semicolons, in world units:

  partfield trace "attract@1280,720:120 none:60 repel@1280,720:1 orbit@1280,720:240"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTrace,
	}
	traceCmd.Flags().BoolVar(&savePlot, "plot", true, "plot mean speed after the run")
	traceCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store telemetry")
	traceCmd.Flags().StringVar(&scenarioFile, "scenario", "", "read the script from a scenario file (yaml)")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write the final field to this svg file")

	tuneCmd := &cobra.Command{
		Use:   "tune [script]",
		Short: "grid search config parameters against a trace metric",
		Example: `  partfield tune "attract@320,180:120" --preset small \
    --axis friction=0.9,0.95,0.99 --axis spatial_interval=4,8 --metric out_of_bounds`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTune,
	}
	tuneCmd.Flags().StringArrayVar(&axes, "axis", nil, "parameter axis name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "mean_speed", "metric to minimize")
	tuneCmd.Flags().StringVar(&scenarioFile, "scenario", "", "read the script from a scenario file (yaml)")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list trace runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot trace run telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write each metric to <path>_<metric>.svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "also write it to this path")

	rootCmd.AddCommand(tuiCmd, benchCmd, traceCmd, tuneCmd, runsCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Resolve(configFile, preset)
}

// newSimulator wires the configured backend and a pooled store. The caller
// owns the backend and must clean it up.
func newSimulator(cfg *config.Config) (*sim.Simulator, compute.Backend, error) {
	backend, err := compute.New(cfg.Backend, cfg.Workers)
	if err != nil {
		return nil, nil, err
	}
	store := particles.NewStore(particles.NewPool())
	return sim.New(cfg.Constants(), store, backend, sim.Options{ValidateState: cfg.ValidateState}), backend, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, backend, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	defer backend.Cleanup()

	slog.Info("starting window", "width", cfg.Width, "height", cfg.Height, "backend", backend.Name())
	return gui.Run(s, gui.Options{
		Width:  int(cfg.Width),
		Height: int(cfg.Height),
		FPS:    cfg.FPS,
	}, slog.Default())
}
