package levels

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/stagehand/actor"
	"github.com/milk9111/stagehand/input"
	"github.com/milk9111/stagehand/level"
	"github.com/milk9111/stagehand/script"
	"github.com/milk9111/stagehand/tilemap"
	"golang.org/x/image/colornames"
)

const defaultMoveSpeed = 150

// Built is what Build put into a level.
type Built struct {
	Heroes []*actor.Hero
	Actors []*actor.Actor
	Pool   *actor.ProjectilePool
	Script *script.Runtime
}

// Build fills l from d. Scripts and tilemaps named by d are read from src.
func Build(l *level.Level, d *Descriptor, src Source) (*Built, error) {
	b := &Built{}
	width, height := d.Width, d.Height

	if d.Gravity != nil {
		l.SetGravity(d.Gravity.X, d.Gravity.Y)
	}
	if d.Music != "" {
		l.SetMusic(d.Music)
	}
	applyVictory(l, d.Victory)
	if d.LoseCountdown > 0 {
		l.SetLoseCountdown(d.LoseCountdown)
	}
	if d.WinCountdown > 0 {
		l.SetWinCountdown(d.WinCountdown)
	}
	if d.WinText != "" {
		l.SetWinText(d.WinText)
	}
	if d.LoseText != "" {
		l.SetLoseText(d.LoseText)
	}

	if d.Tilemap != "" {
		fsys, name := src.FS(d.Tilemap)
		layout, err := tilemap.Load(fsys, name)
		if err != nil {
			return b, err
		}
		if width <= 0 || height <= 0 {
			width, height = layout.Width, layout.Height
		}
		for _, p := range layout.Actors {
			if err := b.spawn(l, p.Role, p.Spec); err != nil {
				return b, fmt.Errorf("%s: %w", d.Tilemap, err)
			}
		}
	}

	groups := []struct {
		role  actor.Role
		specs []actor.Spec
	}{
		{actor.RoleObstacle, d.Obstacles},
		{actor.RoleGoodie, d.Goodies},
		{actor.RoleDestination, d.Destinations},
		{actor.RoleEnemy, d.Enemies},
		{actor.RoleHero, d.Heroes},
	}
	for _, g := range groups {
		for i, sp := range g.specs {
			if err := b.spawn(l, g.role, sp); err != nil {
				return b, fmt.Errorf("%s %d: %w", g.role, i, err)
			}
		}
	}

	if width > 0 && height > 0 {
		l.SetCameraBounds(width, height)
		if d.Edges {
			l.AddWorldEdges(width, height)
		}
	}
	applyCamera(l, d.Camera, b.Heroes)

	if d.Projectiles != nil {
		b.Pool = newPool(l, *d.Projectiles)
	}
	if len(b.Heroes) > 0 {
		bindControls(l, d.Controls, b.Heroes[0], b.Pool, d.Projectiles)
	}
	for _, h := range d.HUD {
		addHUD(l, h)
	}

	if d.Script != "" {
		data, err := src.Read(d.Script)
		if err != nil {
			return b, err
		}
		rt, err := script.Attach(l, d.Script, data)
		if err != nil {
			return b, err
		}
		b.Script = rt
	}
	return b, nil
}

func (b *Built) spawn(l *level.Level, role actor.Role, sp actor.Spec) error {
	a, err := l.Stage().Spawn(role, sp)
	if err != nil {
		return err
	}
	b.Actors = append(b.Actors, a)
	if h := a.Hero(); h != nil {
		b.Heroes = append(b.Heroes, h)
	}
	return nil
}

func applyVictory(l *level.Level, v VictorySpec) {
	switch v.Mode {
	case "goodies":
		var target [4]int
		copy(target[:], v.Goodies)
		l.SetVictoryGoodieCount(target)
	case "enemies":
		n := v.Enemies
		if n == 0 {
			n = level.EnemyCountAll
		}
		l.SetVictoryEnemyCount(n)
	default:
		heroes := v.Heroes
		if heroes <= 0 {
			heroes = 1
		}
		l.SetVictoryDestination(heroes)
	}
}

func applyCamera(l *level.Level, c CameraSpec, heroes []*actor.Hero) {
	cam := l.World().Camera()
	if c.Smooth > 0 {
		cam.SetSmooth(c.Smooth)
	}
	if c.Zoom > 0 {
		if c.ZoomTime > 0 {
			l.ZoomTo(c.Zoom, c.ZoomTime)
		} else {
			l.SetZoom(c.Zoom)
		}
	}
	if c.Chase && len(heroes) > 0 {
		h := heroes[0]
		h.SetCameraOffset(c.Offset.X, c.Offset.Y)
		l.ChaseActor(h.Actor)
	}
}

func newPool(l *level.Level, p PoolSpec) *actor.ProjectilePool {
	geom := actor.AsBox
	if strings.EqualFold(p.Shape, "circle") {
		geom = actor.AsCircle
	}
	pool := actor.NewProjectilePool(l.Stage(), actor.PoolConfig{
		Size:               p.Size,
		W:                  p.W,
		H:                  p.H,
		Image:              p.Image,
		Shape:              geom,
		Damage:             p.Damage,
		Range:              p.Range,
		Z:                  p.Z,
		Gravity:            p.Gravity,
		DisappearOnCollide: p.DisappearOnCollide,
		DisappearSound:     p.DisappearSound,
		ThrowSound:         p.ThrowSound,
	})
	if p.Limit > 0 {
		pool.SetLimit(p.Limit)
	}
	if p.Speed > 0 {
		pool.SetFixedVelocity(p.Speed)
	}
	pool.SetRotateWithVelocity(p.Rotate)
	return pool
}

// bindControls wires c to hero. Horizontal keys set the hero's x velocity
// while held and remember the facing used to mirror throws.
func bindControls(l *level.Level, c ControlsSpec, hero *actor.Hero, pool *actor.ProjectilePool, ps *PoolSpec) {
	speed := c.Speed
	if speed <= 0 {
		speed = defaultMoveSpeed
	}
	facing := 1.0

	move := func(dir float64) func(dt float64) {
		return func(dt float64) {
			if !hero.Enabled() {
				return
			}
			facing = dir
			_, vy := hero.Velocity()
			hero.UpdateVelocity(dir*speed, vy)
		}
	}
	stop := func() {
		if !hero.Enabled() {
			return
		}
		_, vy := hero.Velocity()
		hero.UpdateVelocity(0, vy)
	}
	if c.Left != "" {
		l.OnKeyHold(input.Key(c.Left), move(-1))
		l.OnKeyUp(input.Key(c.Left), stop)
	}
	if c.Right != "" {
		l.OnKeyHold(input.Key(c.Right), move(1))
		l.OnKeyUp(input.Key(c.Right), stop)
	}
	if c.Jump != "" {
		l.OnKeyDown(input.Key(c.Jump), hero.Jump)
	}
	if c.Crawl != "" {
		l.OnKeyDown(input.Key(c.Crawl), func() { hero.Crawl(true) })
		l.OnKeyUp(input.Key(c.Crawl), func() { hero.Crawl(false) })
	}

	if pool == nil || ps == nil {
		return
	}
	if c.Throw != "" {
		l.OnKeyDown(input.Key(c.Throw), func() {
			pool.ThrowFixed(hero.Actor, ps.Offset.X*facing, ps.Offset.Y, ps.Velocity.X*facing, ps.Velocity.Y)
		})
	}
	if c.Aim {
		cam := l.World().Camera()
		l.OnClick(func(x, y float64) {
			wx, wy := cam.ScreenToWorld(x, y)
			pool.ThrowAt(hero.Actor, ps.Offset.X, ps.Offset.Y, wx, wy)
		})
	}
}

func addHUD(l *level.Level, h HUDSpec) *level.Display {
	size := h.Size
	if size <= 0 {
		size = 16
	}
	c := parseColor(h.Color)
	switch h.Kind {
	case "goodies":
		return l.AddGoodieDisplay(h.Goodie, h.X, h.Y, size, c, h.Text)
	case "countdown":
		return l.AddCountdownDisplay(h.X, h.Y, size, c)
	case "stopwatch":
		return l.AddStopwatchDisplay(h.X, h.Y, size, c)
	default:
		return l.AddText(h.X, h.Y, size, c, h.Text)
	}
}

// parseColor looks name up in the SVG colour names. Unknown names are
// white.
func parseColor(name string) color.Color {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return color.White
}
