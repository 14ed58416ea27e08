package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/partfield/internal/automation"
	"github.com/san-kum/partfield/internal/compute"
	"github.com/san-kum/partfield/internal/config"
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/experiment"
	"github.com/san-kum/partfield/internal/export"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/metrics"
	"github.com/san-kum/partfield/internal/optim"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/sim"
	"github.com/san-kum/partfield/internal/storage"
	"github.com/san-kum/partfield/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runTUI(cmd *cobra.Command, args []string) error {
	// A full-size lattice is far denser than a terminal can show.
	if configFile == "" && preset == "" {
		preset = "small"
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, backend, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	defer backend.Cleanup()
	s.AddMetric(metrics.NewKineticEnergy())

	// Logs would tear the alternate screen.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return viz.Run(s, cfg.Bounds(), cfg.FPS, logger)
}

func benchBackends(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bounds := cfg.Bounds()
	center := input.Command{Mode: input.ModeOrbit, Target: bounds.Center()}

	fmt.Printf("benchmarking %.0fx%.0f, interval %g\n\n", bounds.Width, bounds.Height, cfg.SpatialInterval)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tPARTICLES/SEC")

	for _, name := range compute.Names() {
		bcfg := *cfg
		bcfg.Backend = name
		s, backend, err := newSimulator(&bcfg)
		if err != nil {
			return err
		}

		n, err := s.Start(bounds)
		if err != nil {
			backend.Cleanup()
			return err
		}

		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			if err := s.Step(center, bounds); err != nil {
				backend.Cleanup()
				return err
			}
		}
		elapsed := time.Since(start)
		s.Stop()
		backend.Cleanup()

		fps := float64(benchFrames) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.1f\t%.0f\n",
			name, n, benchFrames, elapsed.Round(time.Millisecond), fps, fps*float64(n))
	}

	return w.Flush()
}

// loadScript reads the cursor script from the argument or from the scenario
// file. A scenario preset applies when --preset was not given.
func loadScript(args []string) ([]experiment.Step, error) {
	switch {
	case scenarioFile != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a script or --scenario, not both")
	case scenarioFile != "":
		sc, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return nil, err
		}
		if preset == "" {
			preset = sc.Preset
		}
		slog.Info("scenario loaded", "name", sc.Name, "steps", len(sc.Steps))
		return sc.Script()
	case len(args) == 1:
		return experiment.ParseScript(args[0])
	}
	return nil, fmt.Errorf("missing script")
}

func runTrace(cmd *cobra.Command, args []string) error {
	steps, err := loadScript(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, backend, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	defer backend.Cleanup()

	expCfg := experiment.Config{
		Preset: preset,
		Bounds: cfg.Bounds(),
		Script: steps,
	}
	if svgPath != "" {
		expCfg.Final = func(ps []particles.Particle, bounds dynamo.Rect) {
			svg := export.FieldToSVG(ps, bounds, 160, 45, 4)
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				slog.Error("svg export failed", "path", svgPath, "err", err)
				return
			}
			slog.Info("field exported", "path", svgPath)
		}
	}

	exp := experiment.New(expCfg)
	if err := exp.Setup(s); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("trace started", "steps", len(steps), "frames", experiment.TotalFrames(steps))
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("particles: %d\n", result.Particles)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("elapsed: %v\n", result.Elapsed.Round(time.Millisecond))
	for _, name := range result.Series.Names {
		fmt.Printf("%s: %.4f\n", name, result.Metrics[name])
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}

		script := make([]string, len(steps))
		for i, step := range steps {
			script[i] = step.String()
		}
		runID, err := st.Save(storage.RunMetadata{
			Preset:    preset,
			Width:     float64(cfg.Width),
			Height:    float64(cfg.Height),
			Particles: result.Particles,
			Backend:   backend.Name(),
			Script:    strings.Join(script, " "),
			ElapsedMs: float64(result.Elapsed.Microseconds()) / 1000,
		}, result.Series)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}

	if savePlot && result.Series.Len() > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Series.Values["mean_speed"],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean speed per frame"),
		))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	steps, err := loadScript(args)
	if err != nil {
		return err
	}
	base, err := loadConfig()
	if err != nil {
		return err
	}
	if len(axes) == 0 {
		return fmt.Errorf("at least one --axis is required (one of %s)", strings.Join(config.ParamNames(), ", "))
	}

	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, a := range axes {
		name, values, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	backend, err := compute.New(base.Backend, base.Workers)
	if err != nil {
		return err
	}
	defer backend.Cleanup()
	pool := particles.NewPool()

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		s := sim.New(cfg.Constants(), particles.NewStore(pool), backend, sim.Options{ValidateState: cfg.ValidateState})
		exp := experiment.New(experiment.Config{Preset: preset, Bounds: cfg.Bounds(), Script: steps})
		return exp, exp.Setup(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(names, ranges)
	best, val, err := g.Search(ctx, build, tuneMetric)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(tuneMetric))
	for _, tr := range g.Trials() {
		row := make([]string, 0, len(names)+1)
		for _, n := range names {
			row = append(row, fmt.Sprintf("%g", tr.Params[n]))
		}
		if tr.Err != nil {
			row = append(row, "error: "+tr.Err.Error())
		} else {
			row = append(row, fmt.Sprintf("%.4f", tr.Metrics[tuneMetric]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(best))
	for _, k := range optim.SortedKeys(best) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, best[k]))
	}
	fmt.Printf("\nbest: %s (%s %.4f)\n", strings.Join(parts, " "), tuneMetric, val)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPARTICLES\tFRAMES\tBACKEND\tMEAN SPEED")

	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.4f\n",
			run.ID,
			name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Frames,
			run.Backend,
			run.Metrics["mean_speed"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tel, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}
	if tel.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s\n", meta.Script)
	fmt.Printf("frames: %d\n\n", tel.Len())

	for _, name := range tel.Names {
		graph := asciigraph.Plot(tel.Values[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(name, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgPath != "" {
			path := fmt.Sprintf("%s_%s.svg", svgPath, name)
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(tel.Values[name], 800, 240, "#00ff88")), 0644); err != nil {
				return err
			}
			slog.Info("plot exported", "path", path)
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSIZE\tINTERVAL\tFRICTION\tPARTICLES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		b := p.Bounds()
		cols, rows := particles.GridSize(b, p.SpatialInterval)
		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%g\t%g\t%d\n",
			name, b.Width, b.Height, p.SpatialInterval, p.Friction, cols*rows)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		slog.Info("config written", "path", writePath)
	}
	return nil
}
