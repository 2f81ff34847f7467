package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sonorbit/internal/audio"
	"github.com/san-kum/sonorbit/internal/config"
	"github.com/san-kum/sonorbit/internal/export"
	"github.com/san-kum/sonorbit/internal/gravity"
	"github.com/san-kum/sonorbit/internal/metrics"
	"github.com/san-kum/sonorbit/internal/spectrum"
	"github.com/san-kum/sonorbit/internal/store"
	"github.com/san-kum/sonorbit/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	scenario   string
	seed       int64
	duration   float64
	frameRate  int
	mode       string
	field      string
	outFile    string
	svgScale   float64
	comets     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sonorbit",
		Short: "audio-reactive orbital pattern engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command is given.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sonorbit", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset name")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "random seed")
	rootCmd.PersistentFlags().StringVar(&scenario, "scenario", "", "scripted scenario file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the session",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (default from config)")
	runCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (default from config)")
	runCmd.Flags().StringVar(&mode, "mode", "", "legacy or reactive (default from config)")
	runCmd.Flags().BoolVar(&comets, "comets", true, "spawn comets periodically")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (default from config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded field over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "volume", "field: volume|pitch|bass|mid|treble|pulse_bass|pulse_mid|pulse_treble|gm|timescale")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export recorded trails as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")
	exportCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg dot scale")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the per-frame pipeline",
		RunE:  benchPipeline,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if seed != 0 {
		cfg.Seed = seed
		cfg.Gravity.Seed = seed
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if frameRate > 0 {
		cfg.FrameRate = frameRate
	}
	if mode != "" {
		cfg.Mode = mode
	}
	return cfg, cfg.Validate()
}

func buildEngine(cfg *config.Config) (*audio.Analyzer, *gravity.System, error) {
	analyzer, err := audio.NewAnalyzer(cfg.BandConfigs(), cfg.HistoryLen)
	if err != nil {
		return nil, nil, err
	}
	system, err := gravity.NewSystem(cfg.Gravity)
	if err != nil {
		return nil, nil, err
	}
	system.SetMode(cfg.GravityMode())
	return analyzer, system, nil
}

func buildSource(cfg *config.Config) (spectrum.Source, error) {
	if scenario != "" {
		sc, err := spectrum.LoadScenario(scenario)
		if err != nil {
			return nil, err
		}
		return spectrum.NewScriptSource(sc, cfg.Seed), nil
	}
	synth := spectrum.NewSynth(cfg.Seed)
	synth.BPM = cfg.Synth.BPM
	synth.Bass = cfg.Synth.Bass
	synth.Mid = cfg.Synth.Mid
	synth.Treble = cfg.Synth.Treble
	return synth, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	analyzer, system, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	observers := []metrics.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewBeatRate(),
		metrics.NewTenseRatio(),
	}

	totalFrames := int(cfg.Duration * float64(cfg.FrameRate))
	dtMs := 1000.0 / float64(cfg.FrameRate)
	cometEvery := cfg.FrameRate * 5

	frames := make([]store.FrameRecord, 0, totalFrames)
	bodies := make([]store.BodyRecord, 0, totalFrames)

	start := time.Now()
	for i := 0; i < totalFrames; i++ {
		tMs := float64(i) * dtMs

		snap := analyzer.Update(source.Next(tMs), tMs)
		system.Update(&snap)

		if comets && cometEvery > 0 && i%cometEvery == 0 {
			system.SpawnComet()
		}

		for _, m := range observers {
			m.Observe(system, &snap, tMs)
		}

		frames = append(frames, store.FrameRecord{TMs: tMs, Snapshot: snap, Modulation: system.Modulation()})
		if i%3 == 0 {
			for _, b := range system.Bodies() {
				bodies = append(bodies, store.BodyRecord{TMs: tMs, Name: b.Name, Pos: b.Pos, Vel: b.Vel, Life: b.Life})
			}
		}
	}
	elapsed := time.Since(start)

	meta := store.RunMetadata{
		Preset:    preset,
		Mode:      cfg.Mode,
		Seed:      cfg.Seed,
		FrameRate: cfg.FrameRate,
		Duration:  cfg.Duration,
		Metrics:   make(map[string]float64),
	}
	for _, m := range observers {
		meta.Metrics[m.Name()] = m.Value()
	}

	runID, err := st.Save(meta, frames, bodies)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d frames in %v\n", runID, totalFrames, elapsed.Round(time.Millisecond))
	for _, m := range observers {
		fmt.Printf("  %-14s %.4f\n", m.Name(), m.Value())
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	analyzer, system, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	model := viz.NewModel(analyzer, system, source, cfg.FrameRate)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tDURATION\tBEAT/MIN\tENERGY DRIFT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1fs\t%.1f\t%.4f\n",
			r.ID, r.Mode, r.Duration, r.Metrics["beat_rate"], r.Metrics["energy_drift"])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	values := make([]float64, 0, len(frames))
	for _, fr := range frames {
		values = append(values, frameField(fr, field))
	}

	fmt.Println(asciigraph.Plot(values, asciigraph.Height(12), asciigraph.Width(90), asciigraph.Caption(field)))
	return nil
}

func frameField(fr store.FrameRecord, name string) float64 {
	switch name {
	case "pitch":
		return fr.Snapshot.Pitch
	case "bass":
		return fr.Snapshot.Smooth[audio.Bass]
	case "mid":
		return fr.Snapshot.Smooth[audio.Mid]
	case "treble":
		return fr.Snapshot.Smooth[audio.Treble]
	case "pulse_bass":
		return fr.Snapshot.Pulses[audio.Bass]
	case "pulse_mid":
		return fr.Snapshot.Pulses[audio.Mid]
	case "pulse_treble":
		return fr.Snapshot.Pulses[audio.Treble]
	case "gm":
		return fr.Modulation.GMMultiplier
	case "timescale":
		return fr.Modulation.TimeScale
	default:
		return fr.Snapshot.Volume
	}
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := store.New(dataDir)
	bodies, err := st.LoadBodies(args[0])
	if err != nil {
		return err
	}

	colors := map[string]string{"sun": "#ffd54f"}
	for _, p := range cfg.Gravity.Planets {
		colors[p.Name] = p.Color
	}

	canvas := viz.NewCanvas(120, 40, cfg.Gravity.Width, cfg.Gravity.Height)
	for _, b := range bodies {
		color, ok := colors[b.Name]
		if !ok {
			color = "#e0f7fa"
		}
		canvas.Plot(b.Pos, color)
	}

	out := outFile
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(export.CanvasToSVG(canvas, svgScale)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d body samples)\n", out, len(bodies))
	return nil
}

func benchPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	analyzer, system, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		system.SpawnComet()
	}

	const n = 100000
	start := time.Now()
	for i := 0; i < n; i++ {
		tMs := float64(i) * 16.667
		snap := analyzer.Update(source.Next(tMs), tMs)
		system.Update(&snap)
	}
	elapsed := time.Since(start)

	fmt.Printf("%d frames in %v (%.0f ns/frame, %.0fx realtime at 60fps)\n",
		n, elapsed.Round(time.Millisecond),
		float64(elapsed.Nanoseconds())/n,
		(float64(n)/60.0)/elapsed.Seconds())
	return nil
}
