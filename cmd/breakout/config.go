package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
)

var flagConfigEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in breakout.yaml. Save it to
~/.arcade/configs/breakout.yaml or pass it with --config to customize.

With --effective, print the configuration after --config and
--difficulty have been applied.

Examples:
  breakout config > ~/.arcade/configs/breakout.yaml
  breakout config --effective --difficulty hard`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigEffective, "effective", false, "Print the loaded configuration instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigEffective {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := breakout.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
