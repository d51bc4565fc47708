package actor

// Obstacle is scenery. Its callbacks let content react to whatever hits it.
type Obstacle struct {
	*Actor

	OnHero       func(o *Obstacle, h *Hero, c Collision)
	OnEnemy      func(o *Obstacle, e *Enemy, c Collision)
	OnProjectile func(o *Obstacle, p *Projectile, c Collision)

	// NoJumpReenable keeps a hero in the air after touching this obstacle.
	NoJumpReenable bool

	CollideSound string
	// CollideDelay is the minimum time in seconds between collide sounds.
	CollideDelay float64

	lastSound float64
}

func (o *Obstacle) playCollideSound() {
	if o.CollideSound == "" {
		return
	}
	now := o.stage.scene.Elapsed()
	if now-o.lastSound < o.CollideDelay {
		return
	}
	o.lastSound = now
	o.stage.playSound(o.CollideSound)
}
