package platform

import (
	"fmt"

	"github.com/charmbracelet/log"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/stagehand/assets"
	"github.com/milk9111/stagehand/audio"
	"github.com/milk9111/stagehand/common"
)

// clip adapts an ebiten player to audio.Sound.
type clip struct {
	name   string
	player *ebaudio.Player
	logger *log.Logger
}

func (c *clip) Play() {
	if err := c.player.Rewind(); err != nil {
		c.logger.Warn("rewind", "name", c.name, "err", err)
	}
	c.player.Play()
}

func (c *clip) Stop() {
	c.player.Pause()
}

// LoadSounds registers every sound in store with lib and returns how many
// were loaded. Sounds that fail to decode are logged and skipped.
func LoadSounds(store assets.Store, lib *audio.Library) (int, error) {
	names, err := store.SoundNames()
	if err != nil {
		return 0, fmt.Errorf("load sounds: %w", err)
	}
	logger := common.Logger("audio")
	n := 0
	for _, name := range names {
		p, err := store.Player(name)
		if err != nil {
			logger.Warn("skipping sound", "name", name, "err", err)
			continue
		}
		lib.Register(name, &clip{name: name, player: p, logger: logger})
		n++
	}
	logger.Debug("sounds loaded", "count", n)
	return n, nil
}
