package audio

import (
	"sync"

	"github.com/milk9111/stagehand/common"
)

// Sound is a playable clip. Implementations come from the platform layer;
// tests use fakes.
type Sound interface {
	Play()
	Stop()
}

// Silent is a Sound that does nothing. It stands in for missing clips.
type Silent struct{}

func (Silent) Play() {}
func (Silent) Stop() {}

// Library resolves sound names registered at load time.
type Library struct {
	mu     sync.Mutex
	sounds map[string]Sound
	missed map[string]bool
}

func NewLibrary() *Library {
	return &Library{
		sounds: make(map[string]Sound),
		missed: make(map[string]bool),
	}
}

// Register adds or replaces the sound for name.
func (l *Library) Register(name string, s Sound) {
	if l == nil || name == "" || s == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sounds[name] = s
	delete(l.missed, name)
}

// Get returns the sound registered for name. An empty name yields nil so
// callers can treat "no sound configured" as distinct from a miss. Unknown
// names are logged once and resolve to Silent.
func (l *Library) Get(name string) Sound {
	if l == nil || name == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.sounds[name]; ok {
		return s
	}
	if !l.missed[name] {
		l.missed[name] = true
		common.Logger("audio").Warn("missing sound", "name", name)
	}
	return Silent{}
}

func (l *Library) Has(name string) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.sounds[name]
	return ok
}

// Names returns the registered names in no particular order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.sounds))
	for name := range l.sounds {
		out = append(out, name)
	}
	return out
}
