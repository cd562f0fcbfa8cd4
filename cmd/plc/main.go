package main

import (
	"fmt"
	"os"

	"github.com/PrincessGod/plc/internal/config"
	"github.com/PrincessGod/plc/internal/logging"
	"github.com/PrincessGod/plc/version"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "plc",
	Short: "Distance and area measurement on the WGS84 globe",
	Long: `plc computes the distances and areas the interactive globe measure tools
show, and replays scripted measuring sessions against an in-memory scene.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	opts := cfg.Logging()
	if verbose {
		opts.Level = "debug"
	}
	return logging.New(opts)
}

func heading(title string) string {
	out := termenv.NewOutput(os.Stdout)
	return out.String(title).Bold().Foreground(out.Color("6")).String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
