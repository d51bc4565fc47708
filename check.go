package main

import (
	"fmt"
	"io"

	"github.com/milk9111/stagehand/config"
	"github.com/milk9111/stagehand/level"
	"github.com/milk9111/stagehand/levels"
	"github.com/milk9111/stagehand/script"
	"github.com/spf13/cobra"
)

var flagFrames int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Play every level headlessly and report errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return checkLevels(cfg, flagFrames, cmd.OutOrStdout())
	},
}

func init() {
	checkCmd.Flags().IntVar(&flagFrames, "frames", 300, "Frames to simulate per level")
}

// checkLevels builds each catalog level in a headless manager and steps it
// for frames frames, or until it ends.
func checkLevels(cfg config.Config, frames int, out io.Writer) error {
	src := levels.Source{Dir: cfg.Game.ContentDir}
	catalog, err := levels.LoadCatalog(src)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	failed := 0
	for i := 0; i < catalog.Len(); i++ {
		d, err := catalog.Descriptor(i)
		if err != nil {
			return err
		}
		if err := checkLevel(cfg, src, d, frames, out); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", d.Name, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, catalog.Len())
	}
	return nil
}

func checkLevel(cfg config.Config, src levels.Source, d *levels.Descriptor, frames int, out io.Writer) error {
	if d.Script != "" {
		data, err := src.Read(d.Script)
		if err != nil {
			return err
		}
		if err := script.Check(d.Script, data); err != nil {
			return err
		}
	}

	var built *levels.Built
	var buildErr error
	m := level.NewManager(level.Content{Levels: 1, Play: func(l *level.Level, _ int) {
		built, buildErr = levels.Build(l, d, src)
	}}, level.Options{
		Width:    float64(cfg.Window.Width),
		Height:   float64(cfg.Window.Height),
		GravityX: cfg.Physics.GravityX,
		GravityY: cfg.Physics.GravityY,
	})
	m.DoPlay(0)
	if buildErr != nil {
		return buildErr
	}

	n := 0
	for ; n < frames && m.Mode() == level.Play; n++ {
		m.Tick(cfg.Physics.Step)
	}
	fmt.Fprintf(out, "ok   %s: %d actors, %s after %d frames\n", d.Name, len(built.Actors), m.Mode(), n)
	return nil
}
