package level

// Mode is a state of the level manager.
type Mode int

const (
	Splash Mode = iota
	Help
	Chooser
	Store
	Play
	Win
	Lose
)

func (m Mode) String() string {
	switch m {
	case Splash:
		return "splash"
	case Help:
		return "help"
	case Chooser:
		return "chooser"
	case Store:
		return "store"
	case Play:
		return "play"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Content builds the screens of each mode. Callbacks receive a fresh Level
// whose scenes are empty. A nil callback leaves the screen empty.
type Content struct {
	Levels         int
	HelpScreens    int
	ChooserScreens int
	StoreScreens   int

	Splash  func(l *Level)
	Help    func(l *Level, i int)
	Chooser func(l *Level, i int)
	Store   func(l *Level, i int)
	Play    func(l *Level, i int)
}
