package audio

// Music tracks the single background loop of the current level.
type Music struct {
	lib     *Library
	current Sound
	name    string
}

func NewMusic(lib *Library) *Music {
	return &Music{lib: lib}
}

// Play starts name, stopping whatever was playing before. Playing the track
// that is already running leaves it alone.
func (m *Music) Play(name string) {
	if m == nil {
		return
	}
	if name == m.name && m.current != nil {
		return
	}
	m.Stop()
	s := m.lib.Get(name)
	if s == nil {
		return
	}
	m.current = s
	m.name = name
	s.Play()
}

// Stop halts the current track, if any.
func (m *Music) Stop() {
	if m == nil || m.current == nil {
		return
	}
	m.current.Stop()
	m.current = nil
	m.name = ""
}

func (m *Music) Current() string {
	if m == nil {
		return ""
	}
	return m.name
}
