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

	"github.com/StendArts/Astronomic-Objects/internal/analysis"
	"github.com/StendArts/Astronomic-Objects/internal/config"
	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/export"
	"github.com/StendArts/Astronomic-Objects/internal/metrics"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"github.com/StendArts/Astronomic-Objects/internal/scenario"
	"github.com/StendArts/Astronomic-Objects/internal/sim"
	"github.com/StendArts/Astronomic-Objects/internal/storage"
	"github.com/StendArts/Astronomic-Objects/internal/view"
	"github.com/StendArts/Astronomic-Objects/internal/viz"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

var (
	dataDir  string
	logLevel string
	logger   log.Logger = log.NewNopLogger()

	configFile string
	years      float64
	days       float64
	steps      int
	workers    int
	center     string
	noSave     bool
	playAfter  bool

	trail     float64
	seconds   float64
	frameRate float64
	theme     string

	dumpPreset string
	stepList   []int

	svgOut    string
	svgWidth  int
	svgHeight int

	chaosBody string
	epsilon   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "astrosim",
		Short:         "n-body gravity and radiative temperature simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".astrosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error|none)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation from a preset or config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&years, "years", 0, "simulated duration in years")
	runCmd.Flags().Float64Var(&days, "days", 0, "simulated duration in days")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of steps")
	runCmd.Flags().IntVar(&workers, "workers", 1, "goroutines per step")
	runCmd.Flags().StringVar(&center, "center", "", "body to centre playback on")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&playAfter, "play", false, "play the run back when done")
	addPlayFlags(runCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in systems",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&dumpPreset, "dump", "", "print the named preset as a yaml config")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot temperatures and distances of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&center, "center", "", "body distances are measured from")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	playCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "animate a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}
	playCmd.Flags().StringVar(&center, "center", "", "body fixed at the centre")
	addPlayFlags(playCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [preset]",
		Short: "compare energy drift of one system at several step counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runConverge,
	}
	convergeCmd.Flags().IntSliceVar(&stepList, "steps", []int{100, 1000, 10000}, "step counts to compare")
	convergeCmd.Flags().Float64Var(&years, "years", 0, "simulated duration in years")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the orbits of a stored run as an SVG image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	exportSVGCmd.Flags().StringVar(&center, "center", "", "body fixed at the centre")

	chaosCmd := &cobra.Command{
		Use:   "chaos [preset]",
		Short: "estimate the divergence rate of a perturbed body",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runChaos,
	}
	chaosCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	chaosCmd.Flags().StringVar(&chaosBody, "body", "", "body to perturb (default the last one)")
	chaosCmd.Flags().Float64Var(&epsilon, "eps", 1, "initial displacement in km")
	chaosCmd.Flags().Float64Var(&years, "years", 0, "simulated duration in years")
	chaosCmd.Flags().IntVar(&steps, "steps", 0, "number of steps")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, playCmd, convergeCmd, chaosCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&trail, "trail", 0, "fraction of each trajectory shown behind the body (0 for none)")
	cmd.Flags().Float64Var(&seconds, "seconds", 0, "playback length in seconds")
	cmd.Flags().Float64Var(&frameRate, "fps", 30, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", "night", "panel theme ("+strings.Join(viz.ThemeNames(), "|")+")")
}

// loadConfig resolves the run description: a config file wins over a
// preset, and the default is the Earth and Sun.
func loadConfig(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	name := "earth-sun"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("years") {
		cfg.DurationSeconds, cfg.DurationDays, cfg.DurationYears = 0, 0, years
	}
	if cmd.Flags().Changed("days") {
		cfg.DurationSeconds, cfg.DurationDays, cfg.DurationYears = 0, days, 0
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("center") {
		cfg.Center = center
	}
	if cmd.Flags().Changed("trail") {
		cfg.Trail = trail
	}

	sys, runCfg, err := cfg.Build()
	if err != nil {
		return err
	}

	opts := []sim.Option{sim.WithLogger(logger)}
	for _, m := range metrics.Defaults(sys) {
		opts = append(opts, sim.WithMetric(m))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %d bodies, %d steps of %.0fs...\n", cfg.Name, sys.Len(), runCfg.Steps, runCfg.Dt())
	start := time.Now()

	h, err := sim.New(sys, opts...).Run(ctx, runCfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.NewMetadata(cfg.Name, h)
		meta.Workers = runCfg.Workers
		meta.Center = cfg.Center
		meta.Trail = cfg.Trail
		runID, err := st.Save(meta, h)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printSummary(h)

	if playAfter {
		return viz.Play(h, playerConfig(cmd, cfg.Name, cfg.Center, cfg.Trail, cfg.Playback))
	}
	return nil
}

func printSummary(h *dynamo.History) {
	last := h.Len() - 1
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nBODY\tX (km)\tY (km)\tZ (km)\tT (°C)")
	for _, name := range h.Order {
		p := h.Positions(name)[last]
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.1f\n", name, p.X, p.Y, p.Z, h.Temperatures(name)[last]-physics.KelvinOffset)
	}
	w.Flush()

	names := make([]string, 0, len(h.Metrics))
	for name := range h.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, h.Metrics[name])
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	if dumpPreset != "" {
		cfg := config.GetPreset(dumpPreset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", dumpPreset)
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDURATION\tSTEPS\tDESCRIPTION")
	for _, name := range scenario.Names() {
		sc, err := scenario.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n", sc.Name, len(sc.Bodies), formatDuration(sc.Duration), sc.Steps, sc.Description)
	}
	return w.Flush()
}

func formatDuration(s float64) string {
	if s >= physics.SecondsPerYear {
		return fmt.Sprintf("%.4gy", s/physics.SecondsPerYear)
	}
	return fmt.Sprintf("%.4gd", s/physics.SecondsPerDay)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tDURATION\tSTEPS\tENERGY DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%.3g\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			formatDuration(run.Duration),
			run.Steps,
			run.Metrics["energy_drift"],
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

	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	if h.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d over %s\n\n", h.Len(), formatDuration(h.Duration))

	for _, name := range h.Order {
		temps := h.Temperatures(name)
		if floats.Max(temps) == floats.Min(temps) {
			fmt.Printf("%s: constant %.1f°C\n\n", name, temps[0]-physics.KelvinOffset)
			continue
		}
		graph := asciigraph.Plot(view.Celsius(temps),
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(name+" temperature (°C)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	ref := center
	if ref == "" {
		ref = meta.Center
	}
	if ref == "" {
		return nil
	}
	rel, err := view.Recenter(h, ref)
	if err != nil {
		return err
	}
	for _, name := range rel.Order {
		if name == ref {
			continue
		}
		dist := view.Distances(rel.Positions(name))
		graph := asciigraph.Plot(dist,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s distance to %s (km)", name, ref)),
		)
		fmt.Println(graph)
		if p, err := analysis.DominantPeriod(dist, h.Dt); err == nil {
			fmt.Printf("dominant period: %s\n", formatDuration(p))
		}
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, h)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	h, err := storage.New(dataDir).LoadHistory(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return export.TrajectoriesSVG(out, h, export.SVGOptions{
		Width:     svgWidth,
		Height:    svgHeight,
		Center:    center,
		MaxPoints: 2000,
	})
}

// playerConfig takes the trail from the run unless --trail is given. A run
// without a trail shows the full trajectory.
func playerConfig(cmd *cobra.Command, title, centre string, tr, playback float64) viz.PlayerConfig {
	if tr == 0 {
		tr = viz.FullTrail
	}
	pc := viz.PlayerConfig{
		Title:   title,
		Center:  centre,
		Trail:   tr,
		Seconds: playback,
		FPS:     frameRate,
		Theme:   theme,
	}
	if cmd.Flags().Changed("trail") {
		pc.Trail = trail
	}
	if cmd.Flags().Changed("seconds") {
		pc.Seconds = seconds
	}
	return pc
}

func playRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	centre := meta.Center
	if cmd.Flags().Changed("center") {
		centre = center
	}
	playback := 0.0
	if sc, err := scenario.Get(meta.Scenario); err == nil {
		playback = sc.Playback
	}
	return viz.Play(h, playerConfig(cmd, meta.Scenario, centre, meta.Trail, playback))
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("years") {
		cfg.DurationSeconds, cfg.DurationDays, cfg.DurationYears = 0, 0, years
	}

	sys, base, err := cfg.Build()
	if err != nil {
		return err
	}

	cfgs := make([]dynamo.Config, len(stepList))
	for i, n := range stepList {
		cfgs[i] = base
		cfgs[i].Steps = n
	}

	ens := sim.NewEnsemble(sys, func() []sim.Option {
		return []sim.Option{
			sim.WithLogger(logger),
			sim.WithMetric(metrics.NewEnergyDrift()),
			sim.WithMetric(metrics.NewMomentumDrift()),
		}
	})

	level.Info(logger).Log("msg", "converge", "scenario", cfg.Name, "runs", len(cfgs))
	start := time.Now()
	hs, err := ens.Run(context.Background(), cfgs)
	if err != nil {
		return err
	}
	fmt.Printf("%d runs in %v\n\n", len(hs), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tDT\tENERGY DRIFT\tMOMENTUM DRIFT")
	for i, h := range hs {
		fmt.Fprintf(w, "%d\t%s\t%.3e\t%.3e\n", cfgs[i].Steps, formatDuration(h.Dt), h.Metrics["energy_drift"], h.Metrics["momentum_drift"])
	}
	return w.Flush()
}

func runChaos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("years") {
		cfg.DurationSeconds, cfg.DurationDays, cfg.DurationYears = 0, 0, years
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}

	sys, runCfg, err := cfg.Build()
	if err != nil {
		return err
	}
	body := chaosBody
	if body == "" {
		names := sys.Names()
		body = names[len(names)-1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level.Info(logger).Log("msg", "chaos", "scenario", cfg.Name, "body", body, "eps_km", epsilon)
	d, err := analysis.LyapunovExponent(ctx, sys, body, epsilon, runCfg, func() []sim.Option {
		return []sim.Option{sim.WithLogger(logger)}
	})
	if err != nil {
		return err
	}

	last := len(d.Separation) - 1
	fmt.Printf("%s in %s, perturbed by %g km\n", body, cfg.Name, d.Perturbation)
	fmt.Printf("final separation: %.4g km\n", d.Separation[last])
	fmt.Printf("exponent: %.4g per year\n\n", d.Exponent*physics.SecondsPerYear)

	graph := asciigraph.Plot(d.Separation,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("separation (km)"),
	)
	fmt.Println(graph)
	return nil
}
