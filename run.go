package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stagehand/assets"
	"github.com/milk9111/stagehand/audio"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/config"
	"github.com/milk9111/stagehand/level"
	"github.com/milk9111/stagehand/levels"
	"github.com/milk9111/stagehand/platform"
	"github.com/milk9111/stagehand/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	flagLevel int
	flagWatch bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the game window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("level") {
			cfg.Game.StartLevel = flagLevel
		}
		if flagWatch {
			cfg.Game.Watch = true
		}
		return runGame(cfg)
	},
}

func init() {
	runCmd.Flags().IntVar(&flagLevel, "level", -1, "Start at this level index instead of the splash screen")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels when content files change")
}

func runGame(cfg config.Config) error {
	logger := common.Logger("main")

	catalog, err := levels.LoadCatalog(levels.Source{Dir: cfg.Game.ContentDir})
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	store := assets.Store{Dir: cfg.Game.AssetsDir}
	sounds := audio.NewLibrary()
	if _, err := platform.LoadSounds(store, sounds); err != nil {
		logger.Warn("sounds unavailable", "err", err)
	}

	opts := level.Options{
		Width:    float64(cfg.Window.Width),
		Height:   float64(cfg.Window.Height),
		GravityX: cfg.Physics.GravityX,
		GravityY: cfg.Physics.GravityY,
		Sounds:   sounds,
	}
	if cfg.Debug.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := telemetry.New(reg)
		if err != nil {
			return err
		}
		opts.Observer = metrics
		opts.StageObserver = metrics
		srv := telemetry.Serve(cfg.Debug.MetricsAddr, reg)
		defer srv.Close()
	}

	m := level.NewManager(catalog.Content(), opts)
	if i := cfg.Game.StartLevel; i >= 0 && i < catalog.Len() {
		m.DoPlay(i)
	} else {
		m.DoSplash()
	}

	gameOpts := platform.Options{
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Step:    cfg.Physics.Step,
		Debug:   cfg.Debug.Enabled,
		Catalog: catalog,
	}
	if cfg.Game.Watch {
		w, err := watchContent(cfg.Game.ContentDir)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			defer w.Close()
			gameOpts.Watcher = w
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(math.Round(1 / cfg.Physics.Step)))

	game := platform.NewGame(m, platform.NewRenderer(store), gameOpts)
	return ebiten.RunGame(game)
}

// watchContent watches the content directory and its script and map
// folders.
func watchContent(dir string) (*levels.Watcher, error) {
	dirs := []string{dir}
	for _, sub := range []string{"scripts", "maps"} {
		p := filepath.Join(dir, sub)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	return levels.NewWatcher(dirs...)
}
