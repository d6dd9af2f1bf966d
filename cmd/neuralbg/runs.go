package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/neuralbg/internal/automation"
	"github.com/san-kum/neuralbg/internal/config"
	"github.com/san-kum/neuralbg/internal/export"
	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/metrics"
	"github.com/san-kum/neuralbg/internal/sim"
	"github.com/san-kum/neuralbg/internal/storage"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	w, h, label, err := viewportSize()
	if err != nil {
		return err
	}
	s := resolveSeed(cfg.Seed)

	host := sim.NewHeadless(w, h, cfg.FieldTheme())
	ctrl := field.NewController(host, field.WithRand(newRand(s)), field.WithLogger(logger))
	ctrl.Initialize(&sim.Discard{})
	defer ctrl.Destroy()
	if x, y, ok := pointerFlag(cmd); ok {
		host.MovePointer(x, y)
	}

	runner := sim.New(host, ctrl)
	series := metrics.Default()
	for _, m := range series {
		runner.AddMetric(m)
	}
	stability := metrics.NewStability()
	runner.AddMetric(stability)
	recorder := &metrics.Recorder{}
	runner.AddObserver(recorder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %gx%g (%s, %s) for %d frames...\n", w, h, ctrl.Device(), cfg.Theme, runFrames)
	result, err := runner.Run(ctx, sim.Config{Frames: runFrames, FPS: cfg.FPS, ValidateState: validate})
	if err != nil {
		return err
	}
	fmt.Printf("completed %d frames in %v\n", result.Frames, result.Elapsed)
	for _, e := range result.Errors {
		fmt.Printf("invalid state: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	printSummaries(series)
	fmt.Printf("  %-14s %.4f\n", stability.Name(), stability.Value())

	if edges := metrics.Column(recorder.Rows, "edges"); len(edges) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(edges, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("connections per frame")))
	}

	if noSave {
		return nil
	}
	meta := storage.RunMetadata{
		Label:   label,
		Seed:    s,
		Width:   w,
		Height:  h,
		Device:  ctrl.Device().String(),
		Theme:   cfg.Theme,
		Frames:  result.Frames,
		FPS:     cfg.FPS,
		Metrics: result.Metrics,
	}
	runID, err := saveRun(cfg, meta, recorder.Rows)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func printSummaries(series []metrics.Series) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  METRIC\tMEAN\tSTDDEV\tMIN\tMAX\tP90")
	for _, m := range series {
		s := metrics.Summarize(m.Series())
		fmt.Fprintf(w, "  %s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n", m.Name(), s.Mean, s.StdDev, s.Min, s.Max, s.P90)
	}
	w.Flush()
}

func saveRun(cfg *config.Config, meta storage.RunMetadata, rows []metrics.Row) (string, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(meta, rows)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, h, _, err := viewportSize()
	if err != nil {
		return err
	}
	if renderFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", renderFrames)
	}

	host := sim.NewHeadless(w, h, cfg.FieldTheme())
	ctrl := field.NewController(host, field.WithRand(newRand(resolveSeed(cfg.Seed))))
	out := export.NewSVG(cfg.FieldTheme())
	ctrl.Initialize(out)
	defer ctrl.Destroy()

	runner := sim.New(host, ctrl)
	if _, err := runner.Run(context.Background(), sim.Config{Frames: renderFrames, FPS: cfg.FPS}); err != nil {
		return err
	}
	if err := out.WriteFile(outFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles, %d connections)\n", outFile, len(ctrl.Particles()), ctrl.Edges())
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Seed == 0 || cmd.Flags().Changed("seed") {
		sc.Seed = cfg.Seed
	}
	if sc.Theme == "" {
		sc.Theme = cfg.Theme
	}
	if sc.FPS == 0 {
		sc.FPS = cfg.FPS
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := automation.RunScenario(ctx, sc, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tVIEWPORT\tDEVICE\tTHEME\tFRAMES\tPARTICLES\tEDGES\tSPEED")
	for _, st := range report.Steps {
		fmt.Fprintf(w, "%d\t%s\t%gx%g\t%s\t%s\t%d\t%.0f\t%.1f\t%.4f\n",
			st.Index, st.Name, st.Width, st.Height, st.Device, st.Theme, st.Frames,
			st.Summaries["population"].Mean, st.Summaries["edges"].Mean, st.Summaries["mean_speed"].Mean)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, st := range report.Steps {
		for _, e := range st.Errors {
			fmt.Printf("step %d: invalid state: %v\n", st.Index, e)
		}
	}

	if noSave || len(report.Steps) == 0 {
		return nil
	}
	last := report.Steps[len(report.Steps)-1]
	label := sc.Name
	if label == "" {
		label = "scenario"
	}
	meta := storage.RunMetadata{
		Label:   label,
		Seed:    report.Seed,
		Width:   last.Width,
		Height:  last.Height,
		Device:  last.Device.String(),
		Theme:   string(last.Theme),
		Frames:  len(report.Rows),
		FPS:     sc.FPS,
		Metrics: scenarioMetrics(report),
	}
	runID, err := saveRun(cfg, meta, report.Rows)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

// scenarioMetrics averages each metric over all recorded frames.
func scenarioMetrics(report *automation.Report) map[string]float64 {
	out := make(map[string]float64)
	for _, name := range metrics.Columns() {
		out[name] = metrics.Summarize(metrics.Column(report.Rows, name)).Mean
	}
	return out
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, h, _, err := viewportSize()
	if err != nil {
		return err
	}

	tc := &automation.TrialConfig{
		Width:     w,
		Height:    h,
		Frames:    trialFrames,
		FPS:       cfg.FPS,
		NumTrials: trials,
		Seed:      cfg.Seed,
	}
	if x, y, ok := pointerFlag(cmd); ok {
		tc.Pointer = &automation.Position{X: x, Y: y}
	}

	start := time.Now()
	results, err := automation.RunTrials(context.Background(), tc)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRIAL\tSEED\tPARTICLES\tMEAN EDGES\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%v\n", r.TrialID, r.Seed, r.Particles, r.MeanEdges, r.Stable)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	stable, unstable := automation.TrialStats(results)
	fmt.Printf("\n%d stable, %d unstable in %v\n", stable, unstable, time.Since(start))
	if unstable > 0 {
		return fmt.Errorf("%d trials left the valid state", unstable)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tVIEWPORT\tDEVICE\tTHEME\tFRAMES\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%gx%g\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Device,
			run.Theme,
			run.Frames,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("viewport: %gx%g (%s, %s)\n", meta.Width, meta.Height, meta.Device, meta.Theme)
	fmt.Printf("frames: %d\n\n", len(rows))

	columns := metrics.Columns()
	if plotColumn != "" {
		columns = []string{plotColumn}
	}
	for _, name := range columns {
		data := metrics.Column(rows, name)
		if data == nil {
			return fmt.Errorf("unknown column: %s (available: %v)", name, metrics.Columns())
		}
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(name)))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}
	data := metrics.Column(rows, analyzeColumn)
	if data == nil {
		return fmt.Errorf("unknown column: %s (available: %v)", analyzeColumn, metrics.Columns())
	}
	if len(data) < 4 {
		return fmt.Errorf("need at least 4 frames, got %d", len(data))
	}

	ps := metrics.PowerSpectrum(data, float64(meta.FPS))
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("column: %s, %d frames at %d fps\n\n", analyzeColumn, len(data), meta.FPS)
	fmt.Println(asciigraph.Plot(ps.Power[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", analyzeColumn)),
	))
	if freq, power, ok := ps.Dominant(); ok {
		fmt.Printf("\ndominant frequency: %.3f Hz (amplitude %.4f)\n", freq, power)
	} else {
		fmt.Println("\nno oscillation: the series is flat")
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rows, err := storage.New(cfg.DataDir).LoadRows(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, rows)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}
	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, *meta, rows); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
		return nil
	}
	return storage.WriteJSON(os.Stdout, *meta, rows)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tVIEWPORT\tDEVICE\tPARTICLES")
	for _, name := range config.ListPresets() {
		vp := config.GetPreset(name)
		d := field.DeviceFor(vp.Width)
		fmt.Fprintf(w, "%s\t%gx%g\t%s\t%d\n", name, vp.Width, vp.Height, d, field.Count(vp.Width, vp.Height, d))
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writeConfig {
		if err := config.Save(configFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configFile)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
