package actor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Point is an x,y pair in level data.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PhysicsSpec struct {
	Density    float64 `yaml:"density"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

// Spec is the data form of an actor. Role-specific fields are ignored by
// the other roles.
type Spec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Image string  `yaml:"image"`
	// Shape is box, circle or polygon. Polygon reads Points.
	Shape  string    `yaml:"shape"`
	Points []float64 `yaml:"points"`

	Z             int          `yaml:"z"`
	PassThrough   int          `yaml:"pass_through"`
	OneSided      string       `yaml:"one_sided"`
	Rotation      float64      `yaml:"rotation"`
	RotationSpeed float64      `yaml:"rotation_speed"`
	FixedRotation bool         `yaml:"fixed_rotation"`
	Physics       *PhysicsSpec `yaml:"physics"`
	GravityScale  *float64     `yaml:"gravity_scale"`
	Velocity      *Point       `yaml:"velocity"`
	CameraOffset  *Point       `yaml:"camera_offset"`

	Route      []Point `yaml:"route"`
	RouteSpeed float64 `yaml:"route_speed"`
	RouteLoop  bool    `yaml:"route_loop"`

	AppearDelay    float64 `yaml:"appear_delay"`
	DisappearDelay float64 `yaml:"disappear_delay"`
	DisappearSound string  `yaml:"disappear_sound"`

	Strength    int     `yaml:"strength"`
	MustSurvive bool    `yaml:"must_survive"`
	MultiJump   bool    `yaml:"multi_jump"`
	Jump        *Point  `yaml:"jump"`
	JumpSound   string  `yaml:"jump_sound"`
	Invincible  float64 `yaml:"invincible"`

	Damage                int    `yaml:"damage"`
	DefeatByJump          bool   `yaml:"defeat_by_jump"`
	DefeatByCrawl         bool   `yaml:"defeat_by_crawl"`
	ImmuneToInvincibility bool   `yaml:"immune_to_invincibility"`
	AlwaysDamages         bool   `yaml:"always_damages"`
	DefeatMessage         string `yaml:"defeat_message"`

	CollideSound   string  `yaml:"collide_sound"`
	CollideDelay   float64 `yaml:"collide_delay"`
	NoJumpReenable bool    `yaml:"no_jump_reenable"`

	Score         []int   `yaml:"score"`
	StrengthBoost int     `yaml:"strength_boost"`
	Invincibility float64 `yaml:"invincibility"`

	Capacity     int    `yaml:"capacity"`
	Activation   []int  `yaml:"activation"`
	ArrivalSound string `yaml:"arrival_sound"`
}

// DecodeSpec converts loosely typed data, such as a decoded script map,
// into a Spec by way of its YAML form.
func DecodeSpec(raw any) (Spec, error) {
	var spec Spec
	if raw == nil {
		return spec, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return spec, err
	}
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// ParseRole maps a role name, singular or plural, to a Role.
func ParseRole(name string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hero", "heroes":
		return RoleHero, true
	case "enemy", "enemies":
		return RoleEnemy, true
	case "obstacle", "obstacles":
		return RoleObstacle, true
	case "goodie", "goodies":
		return RoleGoodie, true
	case "destination", "destinations":
		return RoleDestination, true
	case "projectile", "projectiles":
		return RoleProjectile, true
	default:
		return RoleObstacle, false
	}
}

func (sp Spec) geometry() Geometry {
	switch strings.ToLower(sp.Shape) {
	case "circle":
		return AsCircle
	case "polygon":
		return AsPolygon(sp.Points...)
	default:
		return AsBox
	}
}

func toScore(v []int) [4]int {
	var out [4]int
	copy(out[:], v)
	return out
}

// Spawn builds an actor of the given role from sp. Projectiles only come
// from pools and cannot be spawned directly.
func (s *Stage) Spawn(role Role, sp Spec) (*Actor, error) {
	if sp.W <= 0 || sp.H <= 0 {
		return nil, fmt.Errorf("spawn %s: size %vx%v", role, sp.W, sp.H)
	}
	geom := sp.geometry()

	var a *Actor
	switch role {
	case RoleHero:
		h := s.MakeHero(sp.X, sp.Y, sp.W, sp.H, sp.Image, geom)
		if sp.Strength > 0 {
			h.SetStrength(sp.Strength)
		}
		h.MustSurvive = sp.MustSurvive
		h.MultiJump = sp.MultiJump
		if sp.Jump != nil {
			h.SetJumpImpulses(sp.Jump.X, sp.Jump.Y)
		}
		h.JumpSound = sp.JumpSound
		if sp.Invincible > 0 {
			h.AddInvincibility(sp.Invincible)
		}
		a = h.Actor
	case RoleEnemy:
		e := s.MakeEnemy(sp.X, sp.Y, sp.W, sp.H, sp.Image, geom)
		if sp.Damage != 0 {
			e.Damage = sp.Damage
		}
		e.DefeatByJump = sp.DefeatByJump
		e.DefeatByCrawl = sp.DefeatByCrawl
		e.ImmuneToInvincibility = sp.ImmuneToInvincibility
		e.AlwaysDamages = sp.AlwaysDamages
		e.DefeatMessage = sp.DefeatMessage
		a = e.Actor
	case RoleObstacle:
		o := s.MakeObstacle(sp.X, sp.Y, sp.W, sp.H, sp.Image, geom)
		o.CollideSound = sp.CollideSound
		o.CollideDelay = sp.CollideDelay
		o.NoJumpReenable = sp.NoJumpReenable
		a = o.Actor
	case RoleGoodie:
		g := s.MakeGoodie(sp.X, sp.Y, sp.W, sp.H, sp.Image, geom)
		if len(sp.Score) > 0 {
			g.Score = toScore(sp.Score)
		}
		g.StrengthBoost = sp.StrengthBoost
		g.Invincibility = sp.Invincibility
		a = g.Actor
	case RoleDestination:
		d := s.MakeDestination(sp.X, sp.Y, sp.W, sp.H, sp.Image, geom)
		if sp.Capacity > 0 {
			d.Capacity = sp.Capacity
		}
		d.Activation = toScore(sp.Activation)
		d.ArrivalSound = sp.ArrivalSound
		a = d.Actor
	default:
		return nil, fmt.Errorf("spawn %s: role cannot be spawned directly", role)
	}

	sp.apply(a)
	return a, nil
}

func (sp Spec) apply(a *Actor) {
	if sp.Physics != nil {
		a.SetPhysics(sp.Physics.Density, sp.Physics.Elasticity, sp.Physics.Friction)
	}
	if sp.GravityScale != nil {
		a.SetGravityScale(*sp.GravityScale)
	}
	if sp.FixedRotation {
		a.DisableRotation()
	}
	if sp.Rotation != 0 {
		a.SetRotation(sp.Rotation)
	}
	if sp.Z != 0 {
		a.SetZIndex(sp.Z)
	}
	a.SetPassThrough(sp.PassThrough)
	a.SetOneSided(ParseSide(sp.OneSided))
	if sp.CameraOffset != nil {
		a.SetCameraOffset(sp.CameraOffset.X, sp.CameraOffset.Y)
	}
	a.SetDisappearSound(sp.DisappearSound)
	if sp.Velocity != nil {
		a.UpdateVelocity(sp.Velocity.X, sp.Velocity.Y)
	}
	if sp.RotationSpeed != 0 {
		a.SetRotationSpeed(sp.RotationSpeed)
	}
	if len(sp.Route) > 0 {
		r := NewRoute(sp.Route[0].X, sp.Route[0].Y)
		for _, p := range sp.Route[1:] {
			r = r.To(p.X, p.Y)
		}
		a.SetRoute(r, sp.RouteSpeed, sp.RouteLoop)
	}
	if sp.AppearDelay > 0 {
		a.SetAppearDelay(sp.AppearDelay)
	}
	if sp.DisappearDelay > 0 {
		a.SetDisappearDelay(sp.DisappearDelay, false)
	}
}
