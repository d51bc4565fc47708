// Package assets resolves the images and sounds named by level content.
// Files under a Store's Dir win over the embedded copies.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed images/*.png sounds/*.wav
var FS embed.FS

const (
	imageDir = "images"
	soundDir = "sounds"

	SampleRate = 44100

	// LoopSuffix marks sounds that repeat until stopped, such as music.
	LoopSuffix = "_loop"
)

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context. Ebiten allows only one.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// Store reads assets from Dir, then from Embedded (FS when nil).
type Store struct {
	Dir      string
	Embedded fs.FS
}

func (s Store) embedded() fs.FS {
	if s.Embedded != nil {
		return s.Embedded
	}
	return FS
}

// ReadFile loads an asset by its assets-relative path.
func (s Store) ReadFile(name string) ([]byte, error) {
	clean := cleanAssetPath(name)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty name: %w", fs.ErrNotExist)
	}
	if s.Dir != "" {
		if b, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	b, err := fs.ReadFile(s.embedded(), clean)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return b, nil
}

// Image decodes the image a sprite names, e.g. "hero.png".
func (s Store) Image(name string) (*ebiten.Image, error) {
	b, err := s.ReadFile(ImagePath(name))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// SoundNames lists the sounds available, by the names content uses.
func (s Store) SoundNames() ([]string, error) {
	seen := make(map[string]bool)
	entries, err := fs.ReadDir(s.embedded(), soundDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("assets: list sounds: %w", err)
	}
	for _, e := range entries {
		if name, ok := soundName(e.Name()); ok {
			seen[name] = true
		}
	}
	if s.Dir != "" {
		if disk, err := os.ReadDir(filepath.Join(s.Dir, soundDir)); err == nil {
			for _, e := range disk {
				if name, ok := soundName(e.Name()); ok {
					seen[name] = true
				}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Player decodes a sound into a player. Sounds named with LoopSuffix loop.
func (s Store) Player(name string) (*audio.Player, error) {
	b, err := s.ReadFile(SoundPath(name))
	if err != nil {
		return nil, err
	}
	ctx := Context()
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %q: %w", name, err)
	}
	if strings.HasSuffix(name, LoopSuffix) {
		return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	}
	return ctx.NewPlayer(stream)
}

// ImagePath maps a sprite image name to its assets path.
func ImagePath(name string) string {
	clean := cleanAssetPath(name)
	if clean == "" || strings.Contains(clean, "/") {
		return clean
	}
	return path.Join(imageDir, clean)
}

// SoundPath maps a sound name to its assets path. A missing extension
// means wav.
func SoundPath(name string) string {
	clean := cleanAssetPath(name)
	if clean == "" {
		return ""
	}
	if path.Ext(clean) == "" {
		clean += ".wav"
	}
	if strings.Contains(clean, "/") {
		return clean
	}
	return path.Join(soundDir, clean)
}

func soundName(file string) (string, bool) {
	if !strings.EqualFold(path.Ext(file), ".wav") {
		return "", false
	}
	return strings.TrimSuffix(file, path.Ext(file)), true
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if filepath.IsAbs(p) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "assets/")
}
