package level

import (
	"github.com/google/uuid"
	"github.com/milk9111/stagehand/actor"
)

// countdownOff marks an inactive countdown. Countdowns end the level as
// soon as they drop below zero, so no running countdown reaches it.
const countdownOff = -100.0

// EnemyCountAll makes an enemy-count victory require every created enemy.
const EnemyCountAll = -1

// Victory selects how a level is won.
type Victory int

const (
	VictoryDestination Victory = iota
	VictoryGoodieCount
	VictoryEnemyCount
)

func (v Victory) String() string {
	switch v {
	case VictoryDestination:
		return "destination"
	case VictoryGoodieCount:
		return "goodiecount"
	case VictoryEnemyCount:
		return "enemycount"
	default:
		return "unknown"
	}
}

const (
	defaultWinText  = "Good Job"
	defaultLoseText = "Try Again"
)

// Session is the state of one attempt at a level. A new one is created on
// every transition, so counters never leak between levels.
type Session struct {
	id  uuid.UUID
	end func(won bool)

	goodies         [4]int
	enemiesCreated  int
	enemiesDefeated int
	heroesCreated   int
	heroesDefeated  int
	arrivals        int

	victory        Victory
	victoryHeroes  int
	victoryGoodies [4]int
	victoryEnemies int

	loseCountdown float64
	winCountdown  float64
	elapsed       float64

	winText  string
	loseText string
}

// NewSession creates a session that calls end when a victory or defeat
// condition is met. The default victory is one hero reaching a destination.
func NewSession(end func(won bool)) *Session {
	return &Session{
		id:            uuid.New(),
		end:           end,
		victory:       VictoryDestination,
		victoryHeroes: 1,
		loseCountdown: countdownOff,
		winCountdown:  countdownOff,
		winText:       defaultWinText,
		loseText:      defaultLoseText,
	}
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) Victory() Victory     { return s.victory }
func (s *Session) GoodieCounts() [4]int { return s.goodies }
func (s *Session) EnemiesCreated() int  { return s.enemiesCreated }
func (s *Session) EnemiesDefeated() int { return s.enemiesDefeated }
func (s *Session) HeroesCreated() int   { return s.heroesCreated }
func (s *Session) HeroesDefeated() int  { return s.heroesDefeated }
func (s *Session) Arrivals() int        { return s.arrivals }
func (s *Session) Elapsed() float64     { return s.elapsed }
func (s *Session) WinText() string      { return s.winText }
func (s *Session) LoseText() string     { return s.loseText }
func (s *Session) SetWinText(t string)  { s.winText = t }
func (s *Session) SetLoseText(t string) { s.loseText = t }

// SetVictoryDestination wins the level once heroes heroes have arrived.
func (s *Session) SetVictoryDestination(heroes int) {
	s.victory = VictoryDestination
	s.victoryHeroes = heroes
}

// SetVictoryGoodieCount wins the level once every collected goodie count
// reaches the matching target.
func (s *Session) SetVictoryGoodieCount(target [4]int) {
	s.victory = VictoryGoodieCount
	s.victoryGoodies = target
}

// SetVictoryEnemyCount wins the level once enemies enemies are defeated, or
// all of them for EnemyCountAll.
func (s *Session) SetVictoryEnemyCount(enemies int) {
	s.victory = VictoryEnemyCount
	s.victoryEnemies = enemies
}

// SetLoseCountdown loses the level after seconds. A negative value turns
// the countdown off.
func (s *Session) SetLoseCountdown(seconds float64) {
	if seconds < 0 {
		seconds = countdownOff
	}
	s.loseCountdown = seconds
}

// SetWinCountdown wins the level after seconds. A negative value turns the
// countdown off.
func (s *Session) SetWinCountdown(seconds float64) {
	if seconds < 0 {
		seconds = countdownOff
	}
	s.winCountdown = seconds
}

// LoseCountdown returns the seconds left, and false when inactive.
func (s *Session) LoseCountdown() (float64, bool) {
	return s.loseCountdown, s.loseCountdown != countdownOff
}

// WinCountdown returns the seconds left, and false when inactive.
func (s *Session) WinCountdown() (float64, bool) {
	return s.winCountdown, s.winCountdown != countdownOff
}

// tick advances the stopwatch and countdowns. It reports the outcome when a
// countdown expires.
func (s *Session) tick(dt float64) (ended, won bool) {
	s.elapsed += dt
	if s.loseCountdown != countdownOff {
		s.loseCountdown -= dt
		if s.loseCountdown < 0 {
			s.loseCountdown = countdownOff
			return true, false
		}
	}
	if s.winCountdown != countdownOff {
		s.winCountdown -= dt
		if s.winCountdown < 0 {
			s.winCountdown = countdownOff
			return true, true
		}
	}
	return false, false
}

func (s *Session) finish(won bool) {
	if s.end != nil {
		s.end(won)
	}
}

func (s *Session) GoodieCollected(score [4]int) {
	for i := range score {
		s.goodies[i] += score[i]
	}
	if s.victory != VictoryGoodieCount {
		return
	}
	for i := range s.goodies {
		if s.goodies[i] < s.victoryGoodies[i] {
			return
		}
	}
	s.finish(true)
}

func (s *Session) EnemyCreated() {
	s.enemiesCreated++
}

func (s *Session) EnemyDefeated(e *actor.Enemy) {
	s.enemiesDefeated++
	if s.victory != VictoryEnemyCount {
		return
	}
	if s.victoryEnemies == EnemyCountAll {
		if s.enemiesDefeated == s.enemiesCreated {
			s.finish(true)
		}
		return
	}
	if s.enemiesDefeated >= s.victoryEnemies {
		s.finish(true)
	}
}

func (s *Session) HeroCreated() {
	s.heroesCreated++
}

// HeroDefeated loses the level when a must-survive hero falls, or when no
// hero is left to play. An enemy's defeat message replaces the lose text
// in the second case.
func (s *Session) HeroDefeated(h *actor.Hero, by *actor.Enemy) {
	s.heroesDefeated++
	if h != nil && h.MustSurvive {
		s.finish(false)
		return
	}
	if s.heroesDefeated+s.arrivals < s.heroesCreated {
		return
	}
	if by != nil && by.DefeatMessage != "" {
		s.loseText = by.DefeatMessage
	}
	s.finish(false)
}

func (s *Session) DestinationArrived(d *actor.Destination) {
	s.arrivals++
	if s.victory == VictoryDestination && s.arrivals >= s.victoryHeroes {
		s.finish(true)
	}
}
