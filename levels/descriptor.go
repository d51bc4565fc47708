package levels

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/milk9111/stagehand/actor"
	"gopkg.in/yaml.v3"
)

// Descriptor is one level in YAML form.
type Descriptor struct {
	Name    string       `yaml:"name"`
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Gravity *actor.Point `yaml:"gravity"`
	// Edges walls the level in at its width and height.
	Edges  bool       `yaml:"edges"`
	Camera CameraSpec `yaml:"camera"`
	Music  string     `yaml:"music"`

	Victory       VictorySpec `yaml:"victory"`
	LoseCountdown float64     `yaml:"lose_countdown"`
	WinCountdown  float64     `yaml:"win_countdown"`
	WinText       string      `yaml:"win_text"`
	LoseText      string      `yaml:"lose_text"`

	Heroes       []actor.Spec `yaml:"heroes"`
	Enemies      []actor.Spec `yaml:"enemies"`
	Obstacles    []actor.Spec `yaml:"obstacles"`
	Goodies      []actor.Spec `yaml:"goodies"`
	Destinations []actor.Spec `yaml:"destinations"`

	Projectiles *PoolSpec    `yaml:"projectiles"`
	Controls    ControlsSpec `yaml:"controls"`
	HUD         []HUDSpec    `yaml:"hud"`

	Script  string `yaml:"script"`
	Tilemap string `yaml:"tilemap"`
}

type CameraSpec struct {
	// Chase follows the first hero.
	Chase    bool        `yaml:"chase"`
	Offset   actor.Point `yaml:"offset"`
	Zoom     float64     `yaml:"zoom"`
	ZoomTime float64     `yaml:"zoom_time"`
	Smooth   float64     `yaml:"smooth"`
}

// VictorySpec picks the win condition. Mode is destination (the default),
// goodies or enemies.
type VictorySpec struct {
	Mode    string `yaml:"mode"`
	Heroes  int    `yaml:"heroes"`
	Goodies []int  `yaml:"goodies"`
	// Enemies is the number to defeat; -1 means all of them.
	Enemies int `yaml:"enemies"`
}

type PoolSpec struct {
	Size               int         `yaml:"size"`
	W                  float64     `yaml:"w"`
	H                  float64     `yaml:"h"`
	Image              string      `yaml:"image"`
	Shape              string      `yaml:"shape"`
	Damage             int         `yaml:"damage"`
	Range              float64     `yaml:"range"`
	Z                  int         `yaml:"z"`
	Gravity            bool        `yaml:"gravity"`
	DisappearOnCollide bool        `yaml:"disappear_on_collide"`
	DisappearSound     string      `yaml:"disappear_sound"`
	ThrowSound         string      `yaml:"throw_sound"`
	Limit              int         `yaml:"limit"`
	Speed              float64     `yaml:"speed"`
	Rotate             bool        `yaml:"rotate"`
	Offset             actor.Point `yaml:"offset"`
	Velocity           actor.Point `yaml:"velocity"`
}

// ControlsSpec binds keys to the first hero. Empty keys are not bound.
type ControlsSpec struct {
	Left  string  `yaml:"left"`
	Right string  `yaml:"right"`
	Jump  string  `yaml:"jump"`
	Crawl string  `yaml:"crawl"`
	Throw string  `yaml:"throw"`
	Speed float64 `yaml:"speed"`
	// Aim throws toward the pointer on click.
	Aim bool `yaml:"aim"`
}

// HUDSpec is one HUD text. Kind is text, goodies, countdown or stopwatch.
type HUDSpec struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Size   float64 `yaml:"size"`
	Text   string  `yaml:"text"`
	Goodie int     `yaml:"goodie"`
	Color  string  `yaml:"color"`
}

// ParseDescriptor decodes and validates a descriptor.
func ParseDescriptor(name string, data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if d.Name == "" {
		d.Name = name
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &d, nil
}

// LoadDescriptor reads and parses name from src.
func LoadDescriptor(src Source, name string) (*Descriptor, error) {
	data, err := src.Read(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
	}
	if err != nil {
		return nil, err
	}
	return ParseDescriptor(name, data)
}

func (d *Descriptor) Validate() error {
	switch d.Victory.Mode {
	case "", "destination", "goodies", "enemies":
	default:
		return fmt.Errorf("unknown victory mode %q", d.Victory.Mode)
	}
	if len(d.Victory.Goodies) > 4 {
		return fmt.Errorf("victory goodies has %d entries, at most 4", len(d.Victory.Goodies))
	}
	for _, h := range d.HUD {
		switch h.Kind {
		case "", "text", "goodies", "countdown", "stopwatch":
		default:
			return fmt.Errorf("unknown hud kind %q", h.Kind)
		}
	}
	return nil
}
