package actor

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stagehand/audio"
	"github.com/milk9111/stagehand/physics"
	"github.com/milk9111/stagehand/render"
	"github.com/milk9111/stagehand/scene"
)

// Rules receives the game accounting triggered by collisions. The level
// session implements it.
type Rules interface {
	// GoodieCounts returns the goodies collected so far, per type.
	GoodieCounts() [4]int
	GoodieCollected(score [4]int)
	EnemyCreated()
	EnemyDefeated(e *Enemy)
	HeroCreated()
	// HeroDefeated is called once per defeated hero. by is nil when the
	// hero was not defeated by an enemy.
	HeroDefeated(h *Hero, by *Enemy)
	DestinationArrived(d *Destination)
}

// Observer is told about dispatch activity. The telemetry package
// implements it.
type Observer interface {
	Collision(dominant, other Role)
	Throw(dropped bool)
}

type nopObserver struct{}

func (nopObserver) Collision(dominant, other Role) {}
func (nopObserver) Throw(dropped bool)             {}

// Geometry builds the physics shape for an actor filling a w by h box.
type Geometry func(w, h float64) physics.ShapeDef

// AsBox fills the whole box.
func AsBox(w, h float64) physics.ShapeDef {
	return physics.Box{W: w, H: h}
}

// AsCircle uses the largest circle that fits the box.
func AsCircle(w, h float64) physics.ShapeDef {
	return physics.Circle{R: math.Min(w, h) / 2}
}

// AsPolygon uses the given vertices, as x,y pairs relative to the center of
// the box. An odd trailing coordinate is ignored.
func AsPolygon(coords ...float64) Geometry {
	verts := make([]cp.Vector, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		verts = append(verts, cp.Vector{X: coords[i], Y: coords[i+1]})
	}
	return func(w, h float64) physics.ShapeDef {
		if len(verts) < 3 {
			return AsBox(w, h)
		}
		return physics.Polygon{Verts: verts}
	}
}

// Stage creates actors inside a scene and wires them to the collision
// dispatcher and the level rules.
type Stage struct {
	scene      *scene.Scene
	rules      Rules
	sounds     *audio.Library
	registry   *Registry
	dispatcher *Dispatcher
	observer   Observer
}

// NewStage installs a dispatcher as the contact listener of sc's world.
// rules and sounds may be nil.
func NewStage(sc *scene.Scene, rules Rules, sounds *audio.Library) *Stage {
	s := &Stage{
		scene:    sc,
		rules:    rules,
		sounds:   sounds,
		registry: NewRegistry(),
		observer: nopObserver{},
	}
	s.dispatcher = &Dispatcher{stage: s}
	sc.World().SetListener(s.dispatcher)
	return s
}

func (s *Stage) Scene() *scene.Scene     { return s.scene }
func (s *Stage) Registry() *Registry     { return s.registry }
func (s *Stage) Dispatcher() *Dispatcher { return s.dispatcher }
func (s *Stage) Sounds() *audio.Library  { return s.sounds }
func (s *Stage) World() *physics.World   { return s.scene.World() }
func (s *Stage) Camera() *render.Camera  { return s.scene.Camera() }

// SetObserver replaces the dispatch observer. nil restores the no-op one.
func (s *Stage) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	s.observer = o
}

func (s *Stage) playSound(name string) {
	if snd := s.sounds.Get(name); snd != nil {
		snd.Play()
	}
}

// newActor creates the body and sprite for an actor whose top-left corner
// is at (x, y).
func (s *Stage) newActor(role Role, x, y, w, h float64, image string, geom Geometry, def physics.BodyDef) *Actor {
	if geom == nil {
		geom = AsBox
	}
	def.Shape = geom(w, h)
	def.X = x + w/2
	def.Y = y + h/2

	a := &Actor{
		role:    role,
		stage:   s,
		body:    s.scene.World().CreateBody(def),
		sprite:  render.NewSprite(image, w, h),
		w:       w,
		h:       h,
		enabled: true,
	}
	s.registry.add(a)
	s.scene.Add(a, 0)
	a.syncSprite()
	return a
}

// MakeHero creates a dynamic hero with strength 1.
func (s *Stage) MakeHero(x, y, w, h float64, image string, geom Geometry) *Hero {
	a := s.newActor(RoleHero, x, y, w, h, image, geom, physics.BodyDef{Type: physics.Dynamic, Density: 1, Friction: 0.3})
	hero := &Hero{Actor: a, strength: 1}
	a.hero = hero
	if s.rules != nil {
		s.rules.HeroCreated()
	}
	return hero
}

// MakeEnemy creates a static enemy with damage 2.
func (s *Stage) MakeEnemy(x, y, w, h float64, image string, geom Geometry) *Enemy {
	a := s.newActor(RoleEnemy, x, y, w, h, image, geom, physics.BodyDef{Type: physics.Static, Density: 1, Friction: 0.3})
	e := &Enemy{Actor: a, Damage: 2}
	a.enemy = e
	if s.rules != nil {
		s.rules.EnemyCreated()
	}
	return e
}

// MakeObstacle creates a static obstacle.
func (s *Stage) MakeObstacle(x, y, w, h float64, image string, geom Geometry) *Obstacle {
	a := s.newActor(RoleObstacle, x, y, w, h, image, geom, physics.BodyDef{Type: physics.Static, Density: 1, Friction: 0.8})
	o := &Obstacle{Actor: a, lastSound: math.Inf(-1)}
	a.obstacle = o
	return o
}

// MakeGoodie creates a static sensor goodie worth one of the first type.
func (s *Stage) MakeGoodie(x, y, w, h float64, image string, geom Geometry) *Goodie {
	a := s.newActor(RoleGoodie, x, y, w, h, image, geom, physics.BodyDef{Type: physics.Static, Density: 1, Sensor: true})
	g := &Goodie{Actor: a, Score: [4]int{1, 0, 0, 0}}
	a.goodie = g
	return g
}

// MakeDestination creates a static sensor destination that holds one hero.
func (s *Stage) MakeDestination(x, y, w, h float64, image string, geom Geometry) *Destination {
	a := s.newActor(RoleDestination, x, y, w, h, image, geom, physics.BodyDef{Type: physics.Static, Density: 1, Sensor: true})
	d := &Destination{Actor: a, Capacity: 1}
	a.destination = d
	return d
}

// makeProjectile creates a disabled projectile for a pool.
func (s *Stage) makeProjectile(w, h float64, image string, geom Geometry) *Projectile {
	a := s.newActor(RoleProjectile, -w*4, -h*4, w, h, image, geom, physics.BodyDef{Type: physics.Dynamic, Density: 1})
	p := &Projectile{Actor: a, Damage: 1, DisappearOnCollide: true}
	a.projectile = p
	a.body.SetBullet(true)
	a.body.SetGravityScale(0)
	a.Remove(true)
	return p
}
