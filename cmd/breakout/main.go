// breakout is a terminal breakout game with a deterministic, replayable
// simulation.
//
// Usage:
//
//	breakout list               - List available variants
//	breakout play [variant]     - Play a variant (default: classic)
//	breakout menu               - Pick variants interactively
//	breakout serve              - Start SSH server for remote play
//	breakout scores <variant>   - Show the best runs for a variant
//	breakout layout             - Print the wall generated for a seed
//	breakout sim                - Run the autopilot without a terminal
//	breakout replay <file>      - Re-simulate a saved run
//	breakout config             - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Display frame rate (default: 60)
//	--seed <value>        - Level seed (0 = random)
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom breakout.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - Break the wall in your terminal",
	Long: `Breakout is a terminal brick breaker. Every wall is generated from a
seed and every run can be saved and replayed tick for tick.

Available commands:
  list     - Show the available variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  layout   - Print the wall for a seed
  sim      - Headless autopilot run
  replay   - Re-simulate a saved run
  config   - Print the default configuration

Examples:
  breakout play
  breakout play daily --difficulty hard
  breakout play --seed 42
  breakout sim --seed 42 --save
  breakout replay ~/.arcade/replays/classic-<id>.yaml`,
	PersistentPreRun: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display frame rate (the simulation keeps its own tick rate)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Level seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the global flags before any command runs.
func setup(cmd *cobra.Command, _ []string) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Interactive commands own the terminal, so they only log to a file.
	var out io.Writer = os.Stderr
	if cmd.Annotations["terminal"] == "tui" {
		out = io.Discard
	}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", openErr)
			os.Exit(1)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "breakout",
	})

	breakout.SetLogger(logger)
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(preset)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// openStore opens the runs database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("running without storage", "err", err)
		return nil
	}
	return store
}
