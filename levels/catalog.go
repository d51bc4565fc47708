package levels

import (
	"fmt"
	"image/color"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/input"
	"github.com/milk9111/stagehand/level"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the index read by LoadCatalog.
const CatalogFile = "catalog.yaml"

// Catalog is the ordered set of levels plus the text of the menu screens.
type Catalog struct {
	Title  string   `yaml:"title"`
	Help   []string `yaml:"help"`
	Levels []string `yaml:"levels"`

	src    Source
	mu     sync.RWMutex
	descs  []*Descriptor
	logger *log.Logger
}

// LoadCatalog reads the catalog and every level it lists.
func LoadCatalog(src Source) (*Catalog, error) {
	c := &Catalog{src: src, logger: common.Logger("levels")}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rereads the catalog and its levels. On error the previous
// content is kept.
func (c *Catalog) Reload() error {
	data, err := c.src.Read(CatalogFile)
	if err != nil {
		return err
	}
	var next Catalog
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("levels: unmarshal %s: %w", CatalogFile, err)
	}
	descs := make([]*Descriptor, 0, len(next.Levels))
	for _, name := range next.Levels {
		d, err := LoadDescriptor(c.src, name)
		if err != nil {
			return err
		}
		descs = append(descs, d)
	}

	c.mu.Lock()
	c.Title, c.Help, c.Levels = next.Title, next.Help, next.Levels
	c.descs = descs
	c.mu.Unlock()
	c.logger.Debug("catalog loaded", "levels", len(descs))
	return nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.descs)
}

// Refresh reloads the catalog and restarts m on the new content: the
// current level is replayed and menu screens are rebuilt. On a reload error
// m keeps running the old content.
func (c *Catalog) Refresh(m *level.Manager) error {
	if err := c.Reload(); err != nil {
		return err
	}
	m.SetContent(c.Content())
	switch mode := m.Mode(); mode {
	case level.Play:
		m.DoPlay(m.Index(level.Play))
	case level.Chooser:
		m.DoChooser(m.Index(level.Chooser))
	case level.Help:
		m.DoHelp(m.Index(level.Help))
	case level.Splash:
		m.DoSplash()
	}
	c.logger.Info("content reloaded", "mode", m.Mode())
	return nil
}

// Descriptor returns level i.
func (c *Catalog) Descriptor(i int) (*Descriptor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.descs) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownLevel, i)
	}
	return c.descs[i], nil
}

// Source returns where the catalog reads content from.
func (c *Catalog) Source() Source {
	return c.src
}

// Content builds the screens of the game from the catalog: a title splash,
// help pages, a level chooser and the levels themselves.
func (c *Catalog) Content() level.Content {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return level.Content{
		Levels:         len(c.descs),
		HelpScreens:    len(c.Help),
		ChooserScreens: 1,
		Splash:         c.splash,
		Help:           c.help,
		Chooser:        c.chooser,
		Play:           c.play,
	}
}

func (c *Catalog) splash(l *level.Level) {
	w, h := l.Manager().Size()
	c.mu.RLock()
	title, helpPages := c.Title, len(c.Help)
	c.mu.RUnlock()

	l.AddText(w/2, h/3, 48, color.White, title).Text().Centered = true
	prompt := l.AddText(w/2, h/2, 20, color.White, "press any key")
	prompt.Text().Centered = true
	prompt.FadeIn(1)

	m := l.Manager()
	if helpPages > 0 {
		l.AddText(w/2, h/2+40, 14, color.White, "h for help").Text().Centered = true
		l.OnKeyDown("h", func() { m.DoHelp(0) })
	}
	l.Input().OnAnyKey(func() { m.DoChooser(0) })
	l.OnClick(func(x, y float64) { m.DoChooser(0) })
}

func (c *Catalog) help(l *level.Level, i int) {
	w, h := l.Manager().Size()
	c.mu.RLock()
	var page string
	if i >= 0 && i < len(c.Help) {
		page = c.Help[i]
	}
	pages := len(c.Help)
	c.mu.RUnlock()

	l.AddText(w/2, h/2, 20, color.White, page).Text().Centered = true
	m := l.Manager()
	next := func() {
		if i+1 < pages {
			m.DoHelp(i + 1)
			return
		}
		m.DoSplash()
	}
	l.Input().OnAnyKey(next)
	l.OnClick(func(x, y float64) { next() })
}

// chooser lists the levels. Number keys pick a level, and so does clicking
// its line.
func (c *Catalog) chooser(l *level.Level, _ int) {
	w, _ := l.Manager().Size()
	c.mu.RLock()
	names := make([]string, len(c.descs))
	for i, d := range c.descs {
		names[i] = d.Name
	}
	c.mu.RUnlock()

	const top, row = 80.0, 36.0
	l.AddText(w/2, top-40, 28, color.White, "choose a level").Text().Centered = true
	m := l.Manager()
	for i, name := range names {
		i := i
		y := top + float64(i)*row
		l.AddText(w/4, y, 20, color.White, fmt.Sprintf("%d. %s", i+1, name))
		l.AddRegion(&input.Region{X: w / 4, Y: y, W: w / 2, H: row, Down: func(x, y float64) { m.DoPlay(i) }})
		if i < 9 {
			l.OnKeyDown(input.Key(strconv.Itoa(i+1)), func() { m.DoPlay(i) })
		}
	}
	l.OnKeyDown("escape", m.DoSplash)
}

func (c *Catalog) play(l *level.Level, i int) {
	d, err := c.Descriptor(i)
	if err != nil {
		c.logger.Error("play", "index", i, "err", err)
		return
	}
	if _, err := Build(l, d, c.src); err != nil {
		c.logger.Error("build level", "level", d.Name, "err", err)
	}
}
