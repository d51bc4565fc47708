package actor

import "math"

// Hero is the player-controlled actor.
type Hero struct {
	*Actor

	// MustSurvive ends the level in a loss as soon as this hero is defeated.
	MustSurvive bool
	// MultiJump lets the hero jump again while in the air.
	MultiJump bool
	JumpX     float64
	JumpY     float64
	JumpSound string

	strength   int
	invincible float64
	inAir      bool
	crawling   bool

	onStrength func(h *Hero, old int)
}

func (h *Hero) Strength() int       { return h.strength }
func (h *Hero) Invincible() float64 { return h.invincible }
func (h *Hero) InAir() bool         { return h.inAir }
func (h *Hero) Crawling() bool      { return h.crawling }

// SetStrength changes strength and fires the strength callback when the
// value actually changes.
func (h *Hero) SetStrength(s int) {
	if s < 0 {
		s = 0
	}
	old := h.strength
	h.strength = s
	if old != s && h.onStrength != nil {
		h.onStrength(h, old)
	}
}

// OnStrengthChange registers fn to run after every strength change.
func (h *Hero) OnStrengthChange(fn func(h *Hero, old int)) {
	h.onStrength = fn
}

// AddInvincibility extends the invincible time by seconds.
func (h *Hero) AddInvincibility(seconds float64) {
	h.invincible = math.Max(0, h.invincible+seconds)
}

func (h *Hero) SetInAir(on bool) {
	h.inAir = on
}

// SetJumpImpulses sets the velocity a jump adds.
func (h *Hero) SetJumpImpulses(x, y float64) {
	h.JumpX, h.JumpY = x, y
}

// Jump adds the jump impulse to the velocity. A hero already in the air
// can only jump again when MultiJump is set.
func (h *Hero) Jump() {
	if !h.enabled || h.inAir {
		return
	}
	h.AddVelocity(h.JumpX, h.JumpY)
	if !h.MultiJump {
		h.inAir = true
	}
	h.stage.playSound(h.JumpSound)
}

// Crawl lies the hero down, or stands it back up.
func (h *Hero) Crawl(on bool) {
	if h.crawling == on {
		return
	}
	h.crawling = on
	if on {
		h.SetRotation(-math.Pi / 2)
	} else {
		h.SetRotation(0)
	}
}

func (h *Hero) tick(dt float64) {
	if h.invincible > 0 {
		h.invincible = math.Max(0, h.invincible-dt)
	}
}

// defeat removes the hero and reports it to the rules.
func (h *Hero) defeat(by *Enemy) {
	if !h.enabled {
		return
	}
	h.Remove(false)
	if h.stage.rules != nil {
		h.stage.rules.HeroDefeated(h, by)
	}
}

// onCollide resolves a collision where the hero is dominant.
func (h *Hero) onCollide(other *Actor, c Collision) {
	switch other.role {
	case RoleEnemy:
		h.collideEnemy(other.enemy)
	case RoleDestination:
		h.collideDestination(other.destination)
	case RoleObstacle:
		h.collideObstacle(other.obstacle, c)
	case RoleGoodie:
		h.collideGoodie(other.goodie)
	}
}

func (h *Hero) collideEnemy(e *Enemy) {
	switch {
	case e.AlwaysDamages:
		h.defeat(e)
	case h.invincible > 0:
		if !e.ImmuneToInvincibility {
			e.Defeat(true)
		}
	case h.crawling && e.DefeatByCrawl:
		e.Defeat(true)
	case h.inAir && e.DefeatByJump && h.clears(e):
		e.Defeat(true)
	case e.Damage >= h.strength:
		h.defeat(e)
	default:
		h.SetStrength(h.strength - e.Damage)
		e.Defeat(true)
	}
}

// clears reports whether the hero's bottom edge is at or above the
// enemy's vertical midpoint.
func (h *Hero) clears(e *Enemy) bool {
	_, hy := h.Position()
	_, ey := e.Position()
	return hy+h.h <= ey+e.h/2
}

func (h *Hero) collideDestination(d *Destination) {
	if !h.enabled || d.holding >= d.Capacity {
		return
	}
	if h.stage.rules != nil {
		have := h.stage.rules.GoodieCounts()
		for i := range have {
			if have[i] < d.Activation[i] {
				return
			}
		}
	}
	h.Remove(true)
	d.holding++
	h.stage.playSound(d.ArrivalSound)
	if h.stage.rules != nil {
		h.stage.rules.DestinationArrived(d)
	}
}

func (h *Hero) collideObstacle(o *Obstacle, c Collision) {
	o.playCollideSound()
	if o.OnHero != nil {
		o.OnHero(o, h, c)
	}
	if (h.inAir || h.MultiJump) && !c.OtherSensor && !o.NoJumpReenable {
		h.inAir = false
	}
}

func (h *Hero) collideGoodie(g *Goodie) {
	g.Remove(false)
	if g.OnCollect != nil {
		g.OnCollect(g, h)
	}
	if h.stage.rules != nil {
		h.stage.rules.GoodieCollected(g.Score)
	}
	if g.StrengthBoost != 0 {
		h.SetStrength(h.strength + g.StrengthBoost)
	}
	if g.Invincibility > 0 {
		h.AddInvincibility(g.Invincibility)
	}
}
