package actor

import (
	"math"

	"github.com/milk9111/stagehand/common"
)

// Projectile is a thrown actor owned by a ProjectilePool slot.
type Projectile struct {
	*Actor

	Damage int
	// DisappearOnCollide removes the projectile when it hits another
	// projectile.
	DisappearOnCollide bool
	// Range is the distance from the throw origin after which the
	// projectile is removed silently. Zero means unlimited.
	Range float64

	originX, originY float64
}

func (p *Projectile) onCollide(other *Actor, c Collision) {
	if other.role == RoleObstacle && other.obstacle.OnProjectile != nil {
		other.obstacle.OnProjectile(other.obstacle, p, c)
		return
	}
	if other.role == RoleProjectile && !p.DisappearOnCollide {
		return
	}
	if c.OtherSensor {
		return
	}
	p.Remove(false)
}

func (p *Projectile) tick() {
	if !p.enabled || p.Range <= 0 {
		return
	}
	cx, cy := p.Center()
	if math.Hypot(cx-p.originX, cy-p.originY) > p.Range {
		p.Remove(true)
	}
}

func (p *Projectile) launch(cx, cy, vx, vy float64, rotate bool) {
	p.revive(cx, cy)
	p.originX, p.originY = cx, cy
	p.body.SetVelocity(vx, vy)
	if rotate && (vx != 0 || vy != 0) {
		p.SetRotation(math.Atan2(vy, vx))
	}
}

// PoolConfig describes the projectiles a pool pre-allocates.
type PoolConfig struct {
	Size   int
	W, H   float64
	Image  string
	Shape  Geometry
	Damage int
	Range  float64
	Z      int
	// Gravity lets projectiles fall.
	Gravity            bool
	DisappearOnCollide bool
	DisappearSound     string
	ThrowSound         string
}

// ProjectilePool recycles a fixed set of projectiles in round-robin order.
type ProjectilePool struct {
	stage       *Stage
	projectiles []*Projectile
	next        int

	// remaining is the number of throws left; -1 means unlimited.
	remaining  int
	fixedSpeed float64
	rotate     bool
	throwSound string

	launches int
	dropped  int
}

// NewProjectilePool creates cfg.Size disabled projectiles in the stage's
// scene.
func NewProjectilePool(s *Stage, cfg PoolConfig) *ProjectilePool {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	if cfg.W <= 0 || cfg.H <= 0 {
		cfg.W, cfg.H = 8, 8
	}
	if cfg.Damage == 0 {
		cfg.Damage = 1
	}
	pool := &ProjectilePool{
		stage:      s,
		remaining:  -1,
		throwSound: cfg.ThrowSound,
	}
	for i := 0; i < cfg.Size; i++ {
		p := s.makeProjectile(cfg.W, cfg.H, cfg.Image, cfg.Shape)
		p.Damage = cfg.Damage
		p.Range = cfg.Range
		p.DisappearOnCollide = cfg.DisappearOnCollide
		p.SetDisappearSound(cfg.DisappearSound)
		if cfg.Gravity {
			p.body.SetGravityScale(1)
		}
		if cfg.Z != 0 {
			p.SetZIndex(cfg.Z)
		}
		pool.projectiles = append(pool.projectiles, p)
	}
	return pool
}

// SetLimit caps the number of throws. -1 removes the cap.
func (pp *ProjectilePool) SetLimit(n int) {
	if n < -1 {
		n = -1
	}
	pp.remaining = n
}

func (pp *ProjectilePool) Remaining() int { return pp.remaining }
func (pp *ProjectilePool) Launches() int  { return pp.launches }
func (pp *ProjectilePool) Dropped() int   { return pp.dropped }

// SetFixedVelocity makes ThrowAt use speed regardless of the distance to the
// target. Zero restores distance-proportional throws.
func (pp *ProjectilePool) SetFixedVelocity(speed float64) {
	pp.fixedSpeed = speed
}

// SetRotateWithVelocity turns projectiles to face their direction of
// travel when thrown.
func (pp *ProjectilePool) SetRotateWithVelocity(on bool) {
	pp.rotate = on
}

func (pp *ProjectilePool) SetThrowSound(name string) {
	pp.throwSound = name
}

// Projectiles returns the pool's slots.
func (pp *ProjectilePool) Projectiles() []*Projectile {
	return pp.projectiles
}

// InFlight counts enabled projectiles.
func (pp *ProjectilePool) InFlight() int {
	n := 0
	for _, p := range pp.projectiles {
		if p.enabled {
			n++
		}
	}
	return n
}

// ThrowFixed launches the next projectile from the thrower's center plus
// the offset with velocity (vx, vy).
func (pp *ProjectilePool) ThrowFixed(from *Actor, offX, offY, vx, vy float64) bool {
	return pp.throw(from, offX, offY, func(cx, cy float64) (float64, float64) {
		return vx, vy
	})
}

// ThrowAt launches the next projectile toward (tx, ty). The velocity is the
// vector to the target, or that direction at the fixed speed if one is set.
func (pp *ProjectilePool) ThrowAt(from *Actor, offX, offY, tx, ty float64) bool {
	return pp.throw(from, offX, offY, func(cx, cy float64) (float64, float64) {
		dx, dy := tx-cx, ty-cy
		if pp.fixedSpeed > 0 {
			nx, ny := common.Normalize(dx, dy)
			return nx * pp.fixedSpeed, ny * pp.fixedSpeed
		}
		return dx, dy
	})
}

func (pp *ProjectilePool) throw(from *Actor, offX, offY float64, velocity func(cx, cy float64) (float64, float64)) bool {
	if from == nil || len(pp.projectiles) == 0 {
		return false
	}
	if pp.remaining == 0 {
		pp.drop()
		return false
	}
	p := pp.projectiles[pp.next]
	if p.enabled {
		pp.drop()
		return false
	}
	pp.next = (pp.next + 1) % len(pp.projectiles)

	fx, fy := from.Center()
	cx, cy := fx+offX, fy+offY
	vx, vy := velocity(cx, cy)
	p.launch(cx, cy, vx, vy, pp.rotate)

	pp.stage.playSound(pp.throwSound)
	if pp.remaining > 0 {
		pp.remaining--
	}
	pp.launches++
	pp.stage.observer.Throw(false)
	return true
}

func (pp *ProjectilePool) drop() {
	pp.dropped++
	pp.stage.observer.Throw(true)
}
