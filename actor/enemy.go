package actor

// Enemy damages heroes on contact.
type Enemy struct {
	*Actor

	Damage                int
	DefeatByCrawl         bool
	DefeatByJump          bool
	ImmuneToInvincibility bool
	AlwaysDamages         bool
	// DefeatMessage replaces the lose text when this enemy defeats the last
	// hero.
	DefeatMessage string
	OnDefeat      func(e *Enemy)
}

// Defeat removes the enemy. increaseScore counts it toward the level's
// enemy total. Defeating an enemy that is already gone does nothing.
func (e *Enemy) Defeat(increaseScore bool) {
	if !e.enabled {
		return
	}
	e.Remove(false)
	if increaseScore && e.stage.rules != nil {
		e.stage.rules.EnemyDefeated(e)
	}
	if e.OnDefeat != nil {
		e.OnDefeat(e)
	}
}

func (e *Enemy) onCollide(other *Actor, c Collision) {
	switch other.role {
	case RoleObstacle:
		if o := other.obstacle; o.OnEnemy != nil {
			o.OnEnemy(o, e, c)
		}
	case RoleProjectile:
		p := other.projectile
		if !p.enabled {
			return
		}
		e.Damage -= p.Damage
		if e.Damage <= 0 {
			p.Remove(true)
			e.Defeat(true)
		} else {
			p.Remove(false)
		}
	}
}
