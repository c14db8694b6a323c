package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/element"
	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/export"
	"github.com/san-kum/molsim/internal/logging"
	"github.com/san-kum/molsim/internal/metrics"
	"github.com/san-kum/molsim/internal/molecule"
	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/storage"
	"github.com/san-kum/molsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir     string
	configFile  string
	preset      string
	seed        int64
	ticks       int
	temperature float64
	logLevel    string
	logFormat   string
	save        bool
	numRuns     int
	svgOut      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "molsim",
		Short: "real-time molecular dynamics in the terminal",
		RunE:  runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".molsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: console or json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and print its metrics",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks")
	runCmd.Flags().Float64Var(&temperature, "temperature", 0, "temperature in K")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same setup with consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")
	ensembleCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks")
	ensembleCmd.Flags().Float64Var(&temperature, "temperature", 0, "temperature in K")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive 3d view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	moleculesCmd := &cobra.Command{
		Use:   "molecules",
		Short: "list molecule templates",
		Args:  cobra.NoArgs,
		RunE:  listMolecules,
	}

	elementsCmd := &cobra.Command{
		Use:   "elements",
		Short: "list the element catalog",
		Args:  cobra.NoArgs,
		RunE:  listElements,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tTEMP\tTICKS\tSPAWN")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				spawn := make([]string, len(cfg.Spawn))
				for i, s := range cfg.Spawn {
					spawn[i] = fmt.Sprintf("%dx %s", s.Count, s.Molecule)
				}
				fmt.Fprintf(w, "%s\t%.0fK\t%d\t%s\n", name, cfg.Temperature, cfg.Ticks, strings.Join(spawn, ", "))
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the mean speed series to this SVG file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the final frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks")
	snapshotCmd.Flags().Float64Var(&temperature, "temperature", 0, "temperature in K")
	snapshotCmd.Flags().StringVar(&svgOut, "out", "molsim.svg", "output file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, liveCmd, moleculesCmd, elementsCmd, presetsCmd, listCmd, plotCmd, snapshotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, then the preset, then the config file, then
// flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if seed != 0 {
		cfg.Seed = seed
	}
	if f := cmd.Flags().Lookup("ticks"); f != nil && f.Changed {
		cfg.Ticks = ticks
	}
	if f := cmd.Flags().Lookup("temperature"); f != nil && f.Changed {
		cfg.Temperature = temperature
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *molecule.Registry, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, err := molecule.NewRegistry(element.Default())
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, reg, log, nil
}

func runLabel() string {
	if preset != "" {
		return preset
	}
	return "run"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, reg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng := engine.New(engine.WithParams(cfg.EngineParams()), engine.WithSeed(cfg.Seed), engine.WithLogger(log))
	s := sim.New(eng, reg, log)
	for _, m := range metrics.All() {
		s.AddMetric(m)
	}

	start := time.Now()
	result, err := s.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed %d ticks in %v\n", result.TicksTaken, elapsed)
	fmt.Printf("simulated time: %.3fs, molecules: %d\n\n", result.SimTime, result.Instances)
	printMetrics(result)
	plotSeries(result.Series, 8, 70, "mean_speed", "kinetic_temperature")

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunInfo{
			Label:       runLabel(),
			Seed:        cfg.Seed,
			Ticks:       cfg.Ticks,
			Temperature: cfg.Temperature,
			Spawn:       cfg.SimConfig().Spawn,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func printMetrics(result *sim.Result) {
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	w.Flush()
	fmt.Println()
}

func plotSeries(series map[string][]float64, height, width int, names ...string) {
	for _, name := range names {
		data := series[name]
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, reg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(reg, cfg.EngineParams(), numRuns, cfg.Seed).
		WithLogger(log).
		WithMetrics(metrics.All)

	start := time.Now()
	results, err := ens.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}
	fmt.Printf("%d runs in %v\n\n", len(results), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN SPEED\tKINETIC T\tCOLLISIONS\tWALL HITS\tIN BAND")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%d\t%d\t%.2f\n",
			cfg.Seed+int64(i),
			r.Metrics["mean_speed"],
			r.Metrics["kinetic_temperature"],
			r.Collisions,
			r.WallHits,
			r.Metrics["thermal_band"],
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := molecule.NewRegistry(element.Default())
	if err != nil {
		return err
	}

	// stderr shares the terminal with the view, so only log when a file is
	// configured.
	log := zap.NewNop()
	if len(cfg.Log.OutputPaths) > 0 {
		if log, err = logging.New(cfg.Log); err != nil {
			return err
		}
	}
	defer log.Sync()

	eng := engine.New(engine.WithParams(cfg.EngineParams()), engine.WithSeed(cfg.Seed), engine.WithLogger(log))
	if cfg.Temperature > 0 {
		eng.SetTemperature(cfg.Temperature)
	}
	s := sim.New(eng, reg, log)
	if err := s.Populate(cfg.SimConfig().Spawn); err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(eng, reg, log), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listMolecules(cmd *cobra.Command, args []string) error {
	reg, err := molecule.NewRegistry(element.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tFORMULA\tKIND\tGEOMETRY\tMASS\tDIPOLE\tH-BOND")
	for _, tpl := range reg.All() {
		geometry := "-"
		if centers := tpl.Centers(); len(centers) > 0 {
			geometry = centers[0].Geometry()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.3f\t%.3f\t%v\n",
			tpl.Key,
			tpl.Name,
			tpl.Formula(),
			tpl.Kind,
			geometry,
			tpl.Mass,
			tpl.DipoleMoment.Len(),
			tpl.HydrogenBonding,
		)
	}
	return w.Flush()
}

func listElements(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Z\tSYMBOL\tNAME\tMASS\tEN\tVDW\tVALENCE\tCHARGE")
	for _, el := range element.Default().All() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%.2f\t%.0f\t%d\t%+d\n",
			el.AtomicNumber,
			el.Symbol,
			el.Name,
			el.AtomicMass,
			el.Electronegativity,
			el.VanDerWaalsRadius,
			el.ValenceElectrons,
			el.FormalCharge(),
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tTICKS\tTEMP\tMOLECULES\tCOLLISIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0fK\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.TicksTaken,
			run.Temperature,
			run.Instances,
			run.Collisions,
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
	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d over %.3fs\n\n", len(times), meta.SimTime)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	plotSeries(series, 10, 80, names...)

	if svgOut != "" {
		svg := export.SeriesToSVG(times, series["mean_speed"], 800, 300, "#00ccff")
		if svg == "" {
			return fmt.Errorf("not enough mean_speed samples for an SVG")
		}
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, reg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	eng := engine.New(engine.WithParams(cfg.EngineParams()), engine.WithSeed(cfg.Seed), engine.WithLogger(log))
	s := sim.New(eng, reg, log)
	if _, err := s.Run(context.Background(), cfg.SimConfig()); err != nil {
		return err
	}

	b := eng.Params().Bounds
	canvas := viz.NewCanvas(80, 40)
	scene := viz.NewWireframe()
	viz.BuildScene(scene, eng)
	viz.Render3D(canvas, scene, viz.NewCamera(max(b.X(), b.Y(), b.Z())))

	if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(canvas, 4)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d molecules after %d ticks)\n", svgOut, eng.Len(), cfg.Ticks)
	return nil
}
