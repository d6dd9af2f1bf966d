package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/neuralbg/internal/config"
)

var (
	configFile string
	dataDir    string
	seed       int64
	theme      string
	verbose    bool
	logFile    string
	// Headless runs
	runFrames    int
	renderFrames int
	trialFrames  int
	fps          int
	width        float64
	height       float64
	preset       string
	pointerX     float64
	pointerY     float64
	validate     bool
	noSave       bool
	outFile      string
	jsonOut      string
	trials       int
	// Plot and analyze
	plotColumn    string
	analyzeColumn string
	// Config
	writeConfig bool
)

// main registers the neuralbg commands. With no subcommand it opens the
// configured interactive backend.
func main() {
	rootCmd := &cobra.Command{
		Use:           "neuralbg",
		Short:         "animated particle network background",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackend(cmd, "")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", config.DefaultPath, "config file path (yaml)")
	pf.StringVar(&dataDir, "data", "", "data directory (overrides config)")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 for time based")
	pf.StringVar(&theme, "theme", "", "dark or light (overrides config)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the field in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackend(cmd, "tui")
		},
	}
	tuiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a raylib window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackend(cmd, "gui")
		},
	}
	guiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	screenCmd := &cobra.Command{
		Use:   "screen",
		Short: "run the field in an ebiten window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackend(cmd, "screen")
		},
	}
	screenCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the field headless and record metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addViewportFlags(runCmd)
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to run")
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate of the simulated clock")
	runCmd.Flags().Float64Var(&pointerX, "pointer-x", 0, "park the pointer at this x")
	runCmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "park the pointer at this y")
	runCmd.Flags().BoolVar(&validate, "validate", true, "stop on an invalid particle")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save a run record")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a frame to SVG",
		Args:  cobra.NoArgs,
		RunE:  renderSVG,
	}
	addViewportFlags(renderCmd)
	renderCmd.Flags().IntVar(&renderFrames, "frames", 1, "frames to run before capturing")
	renderCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate of the simulated clock")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "frame.svg", "output file")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a yaml scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save a run record")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "run independently seeded fields and check they stay valid",
		Args:  cobra.NoArgs,
		RunE:  runTrials,
	}
	addViewportFlags(trialsCmd)
	trialsCmd.Flags().IntVar(&trials, "trials", 10, "number of trials")
	trialsCmd.Flags().IntVar(&trialFrames, "frames", 300, "frames per trial")
	trialsCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate of the simulated clock")
	trialsCmd.Flags().Float64Var(&pointerX, "pointer-x", 0, "park the pointer at this x")
	trialsCmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "park the pointer at this y")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "", "plot only this column")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run record to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "write to this file instead of stdout")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeColumn, "column", "edges", "metric column to analyze")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list viewport presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config",
		RunE:  showConfig,
	}
	configCmd.Flags().BoolVar(&writeConfig, "write", false, "write it to the config path")

	rootCmd.AddCommand(tuiCmd, guiCmd, screenCmd, runCmd, renderCmd, scenarioCmd, trialsCmd,
		listCmd, plotCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, presetsCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", 1920, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 1080, "viewport height")
	cmd.Flags().StringVar(&preset, "preset", "", "viewport preset (see presets)")
}
