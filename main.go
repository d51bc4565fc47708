// stagehand runs 2D levels built from YAML descriptors, tengo scripts and
// TMX maps on a Chipmunk physics world.
//
// Usage:
//
//	stagehand run            - open the game window
//	stagehand check          - play every level headlessly and report errors
//
// Global flags:
//
//	--config <path>  - YAML config file (defaults are built in)
//	--debug          - debug logging and the frame counter overlay
package main

import (
	"fmt"
	"os"

	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "stagehand",
	Short:         "Play physics platformer levels",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and overlay")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the config named by --config and applies --debug.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDebug {
		cfg.Debug.Enabled = true
		cfg.Debug.LogLevel = "debug"
	}
	common.SetLogLevel(cfg.Debug.LogLevel)
	return cfg, nil
}
