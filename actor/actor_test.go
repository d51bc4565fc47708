package actor

import (
	"testing"

	"github.com/milk9111/stagehand/audio"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/physics"
	"github.com/milk9111/stagehand/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRules struct {
	goodies         [4]int
	enemiesCreated  int
	enemiesDefeated int
	heroesCreated   int
	heroesDefeated  int
	arrivals        int
	defeatedBy      *Enemy
	log             []string
}

func (r *fakeRules) GoodieCounts() [4]int { return r.goodies }

func (r *fakeRules) GoodieCollected(score [4]int) {
	for i := range score {
		r.goodies[i] += score[i]
	}
	r.log = append(r.log, "goodie")
}

func (r *fakeRules) EnemyCreated() { r.enemiesCreated++ }

func (r *fakeRules) EnemyDefeated(e *Enemy) {
	r.enemiesDefeated++
	r.log = append(r.log, "enemy")
}

func (r *fakeRules) HeroCreated() { r.heroesCreated++ }

func (r *fakeRules) HeroDefeated(h *Hero, by *Enemy) {
	r.heroesDefeated++
	r.defeatedBy = by
	r.log = append(r.log, "hero")
}

func (r *fakeRules) DestinationArrived(d *Destination) {
	r.arrivals++
	r.log = append(r.log, "arrival")
}

type countingSound struct{ plays int }

func (c *countingSound) Play() { c.plays++ }
func (c *countingSound) Stop() {}

type recordingObserver struct {
	collisions [][2]Role
	throws     int
	drops      int
}

func (o *recordingObserver) Collision(dominant, other Role) {
	o.collisions = append(o.collisions, [2]Role{dominant, other})
}

func (o *recordingObserver) Throw(dropped bool) {
	if dropped {
		o.drops++
		return
	}
	o.throws++
}

func newTestStage(t *testing.T) (*Stage, *fakeRules, *audio.Library) {
	t.Helper()
	sc := scene.New("world", 0, 0, common.BaseWidth, common.BaseHeight)
	rules := &fakeRules{}
	lib := audio.NewLibrary()
	return NewStage(sc, rules, lib), rules, lib
}

// collide reports a begin contact between a and b as the physics world
// would, then runs the scene so queued collisions resolve.
func collide(s *Stage, a, b *Actor) {
	s.dispatcher.BeginContact(&physics.Contact{
		A:        a.body,
		B:        b.body,
		FixtureA: a.body.Fixture(),
		FixtureB: b.body.Fixture(),
	})
	s.scene.Step(common.FixedStep)
}

func TestRemoveIsIdempotent(t *testing.T) {
	s, _, lib := newTestStage(t)
	snd := &countingSound{}
	lib.Register("poof", snd)

	g := s.MakeGoodie(10, 10, 5, 5, "coin.png", AsCircle)
	g.SetDisappearSound("poof")

	g.Remove(false)
	vx, vy := g.Velocity()
	first := []any{g.Enabled(), g.Body().Active(), g.Sprite().Visible(), snd.plays, vx, vy}

	g.Remove(false)
	vx, vy = g.Velocity()
	second := []any{g.Enabled(), g.Body().Active(), g.Sprite().Visible(), snd.plays, vx, vy}

	assert.Equal(t, first, second)
	assert.False(t, g.Enabled())
	assert.Equal(t, 1, snd.plays)
}

func TestPairsWithoutActiveRoleAreIgnored(t *testing.T) {
	s, rules, _ := newTestStage(t)
	var called bool
	o := s.MakeObstacle(0, 0, 10, 10, "", AsBox)
	o.OnHero = func(*Obstacle, *Hero, Collision) { called = true }
	o.OnEnemy = func(*Obstacle, *Enemy, Collision) { called = true }
	o.OnProjectile = func(*Obstacle, *Projectile, Collision) { called = true }
	g := s.MakeGoodie(100, 0, 10, 10, "", AsBox)
	g.OnCollect = func(*Goodie, *Hero) { called = true }
	d := s.MakeDestination(200, 0, 10, 10, "", AsBox)

	pairs := [][2]*Actor{
		{o.Actor, g.Actor},
		{g.Actor, o.Actor},
		{o.Actor, d.Actor},
		{d.Actor, g.Actor},
	}
	for _, p := range pairs {
		s.dispatcher.BeginContact(&physics.Contact{A: p[0].body, B: p[1].body})
		assert.Zero(t, s.scene.PendingOnce())
	}
	s.scene.Step(common.FixedStep)

	assert.False(t, called)
	assert.True(t, g.Enabled())
	assert.Empty(t, rules.log)
}

func TestNonActorContactIgnored(t *testing.T) {
	s, _, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	s.dispatcher.BeginContact(&physics.Contact{A: h.body, B: nil})
	s.dispatcher.PreSolve(&physics.Contact{A: nil, B: h.body})
	assert.Zero(t, s.scene.PendingOnce())
}

func TestDominantSelectionIsSymmetric(t *testing.T) {
	s, _, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	h2 := s.MakeHero(50, 0, 10, 10, "", AsBox)
	e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)
	pool := NewProjectilePool(s, PoolConfig{Size: 1})
	p := pool.Projectiles()[0]
	o := s.MakeObstacle(200, 0, 10, 10, "", AsBox)
	g := s.MakeGoodie(300, 0, 10, 10, "", AsBox)

	cases := []struct {
		name string
		a, b *Actor
		want *Actor
	}{
		{"hero_enemy", h.Actor, e.Actor, h.Actor},
		{"hero_projectile", h.Actor, p.Actor, h.Actor},
		{"enemy_projectile", e.Actor, p.Actor, e.Actor},
		{"enemy_obstacle", e.Actor, o.Actor, e.Actor},
		{"projectile_goodie", p.Actor, g.Actor, p.Actor},
		{"hero_hero", h.Actor, h2.Actor, h.Actor},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d1, o1, ok1 := dominant(c.a, c.b)
			d2, o2, ok2 := dominant(c.b, c.a)
			require.True(t, ok1)
			require.True(t, ok2)
			assert.Same(t, c.want, d1)
			assert.Same(t, d1, d2)
			assert.Same(t, o1, o2)
		})
	}

	_, _, ok := dominant(o.Actor, g.Actor)
	assert.False(t, ok)
}

func TestCollisionIsDeferredUntilAfterStep(t *testing.T) {
	s, rules, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)

	s.dispatcher.BeginContact(&physics.Contact{A: e.body, B: h.body})
	assert.True(t, h.Enabled(), "collision must not resolve inside the contact callback")
	assert.Equal(t, 1, s.scene.PendingOnce())

	s.scene.Step(common.FixedStep)
	assert.False(t, h.Enabled())
	assert.Equal(t, 1, rules.heroesDefeated)
}

func TestDefaultHeroLosesToDefaultEnemy(t *testing.T) {
	s, rules, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)
	require.Equal(t, 1, h.Strength())
	require.Equal(t, 2, e.Damage)

	collide(s, h.Actor, e.Actor)
	collide(s, e.Actor, h.Actor)

	assert.False(t, h.Enabled())
	assert.True(t, e.Enabled())
	assert.Equal(t, 1, rules.heroesDefeated)
	assert.Same(t, e, rules.defeatedBy)
	assert.Zero(t, rules.enemiesDefeated)
}

func TestHeroEnemyRules(t *testing.T) {
	cases := []struct {
		name        string
		setup       func(h *Hero, e *Enemy)
		heroAlive   bool
		enemyAlive  bool
		strength    int
		enemyScored int
	}{
		{
			name:       "always_damages_beats_invincibility",
			setup:      func(h *Hero, e *Enemy) { e.AlwaysDamages = true; h.AddInvincibility(5); h.SetStrength(10) },
			heroAlive:  false,
			enemyAlive: true,
			strength:   10,
		},
		{
			name:        "invincible_defeats",
			setup:       func(h *Hero, e *Enemy) { h.AddInvincibility(5) },
			heroAlive:   true,
			enemyAlive:  false,
			strength:    1,
			enemyScored: 1,
		},
		{
			name:       "immune_to_invincibility",
			setup:      func(h *Hero, e *Enemy) { h.AddInvincibility(5); e.ImmuneToInvincibility = true },
			heroAlive:  true,
			enemyAlive: true,
			strength:   1,
		},
		{
			name:        "crawl_defeats",
			setup:       func(h *Hero, e *Enemy) { h.Crawl(true); e.DefeatByCrawl = true },
			heroAlive:   true,
			enemyAlive:  false,
			strength:    1,
			enemyScored: 1,
		},
		{
			name:       "crawl_without_flag",
			setup:      func(h *Hero, e *Enemy) { h.Crawl(true) },
			heroAlive:  false,
			enemyAlive: true,
			strength:   1,
		},
		{
			name:        "strength_absorbs_damage",
			setup:       func(h *Hero, e *Enemy) { h.SetStrength(5) },
			heroAlive:   true,
			enemyAlive:  false,
			strength:    3,
			enemyScored: 1,
		},
		{
			name:       "damage_equal_to_strength",
			setup:      func(h *Hero, e *Enemy) { h.SetStrength(2) },
			heroAlive:  false,
			enemyAlive: true,
			strength:   2,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, rules, _ := newTestStage(t)
			h := s.MakeHero(0, 0, 10, 10, "", AsBox)
			e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)
			c.setup(h, e)

			collide(s, h.Actor, e.Actor)

			assert.Equal(t, c.heroAlive, h.Enabled())
			assert.Equal(t, c.enemyAlive, e.Enabled())
			assert.Equal(t, c.strength, h.Strength())
			assert.Equal(t, c.enemyScored, rules.enemiesDefeated)
			if !c.heroAlive {
				assert.Equal(t, 1, rules.heroesDefeated)
			}
		})
	}
}

func TestStrengthCallback(t *testing.T) {
	s, _, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)
	h.SetStrength(5)

	var olds []int
	h.OnStrengthChange(func(h *Hero, old int) { olds = append(olds, old) })
	collide(s, h.Actor, e.Actor)

	assert.Equal(t, []int{5}, olds)
	assert.Equal(t, 3, h.Strength())
}

func TestEnemyDefeatCallbackAndScore(t *testing.T) {
	s, rules, _ := newTestStage(t)
	e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)
	var calls int
	e.OnDefeat = func(*Enemy) { calls++ }

	e.Defeat(false)
	e.Defeat(true)

	assert.Equal(t, 1, calls)
	assert.Zero(t, rules.enemiesDefeated)
	assert.Equal(t, 1, rules.enemiesCreated)
}

// The hero clears a jump when its bottom edge is at or above the enemy's
// vertical midpoint (y grows downward).
func TestJumpDefeatBoundary(t *testing.T) {
	cases := []struct {
		name       string
		heroY      float64
		enemyAlive bool
		heroAlive  bool
	}{
		{"clears_at_midpoint", 95, false, true},
		{"clears_well_above", 80, false, true},
		{"just_fails", 95.5, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestStage(t)
			e := s.MakeEnemy(100, 100, 10, 10, "", AsBox)
			e.DefeatByJump = true
			h := s.MakeHero(400, c.heroY, 10, 10, "", AsBox)
			h.SetInAir(true)

			collide(s, h.Actor, e.Actor)

			assert.Equal(t, c.enemyAlive, e.Enabled())
			assert.Equal(t, c.heroAlive, h.Enabled())
		})
	}
}

func TestGoodieCollection(t *testing.T) {
	s, rules, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	g := s.MakeGoodie(100, 0, 10, 10, "", AsBox)
	g.Score = [4]int{1, 2, 0, 0}
	g.StrengthBoost = 2
	g.Invincibility = 3
	g.OnCollect = func(*Goodie, *Hero) { rules.log = append(rules.log, "collect") }

	collide(s, g.Actor, h.Actor)

	assert.False(t, g.Enabled())
	assert.Equal(t, [4]int{1, 2, 0, 0}, rules.goodies)
	assert.Equal(t, []string{"collect", "goodie"}, rules.log)
	assert.Equal(t, 3, h.Strength())
	assert.InDelta(t, 3.0, h.Invincible(), 1e-9)
}

func TestInvincibilityCountsDownInRender(t *testing.T) {
	s, _, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	h.AddInvincibility(0.5)
	s.scene.Render(0.3)
	assert.InDelta(t, 0.2, h.Invincible(), 1e-9)
	s.scene.Render(0.3)
	assert.Zero(t, h.Invincible())
}

func TestDestination(t *testing.T) {
	s, rules, lib := newTestStage(t)
	snd := &countingSound{}
	lib.Register("arrive", snd)

	d := s.MakeDestination(100, 0, 10, 10, "", AsBox)
	d.Activation = [4]int{1, 0, 0, 0}
	d.ArrivalSound = "arrive"
	h1 := s.MakeHero(0, 0, 10, 10, "", AsBox)
	h2 := s.MakeHero(20, 0, 10, 10, "", AsBox)

	collide(s, h1.Actor, d.Actor)
	assert.True(t, h1.Enabled(), "thresholds not met")
	assert.Zero(t, d.Holding())

	rules.goodies[0] = 1
	collide(s, h1.Actor, d.Actor)
	assert.False(t, h1.Enabled())
	assert.Equal(t, 1, d.Holding())
	assert.Equal(t, 1, rules.arrivals)
	assert.Equal(t, 1, snd.plays)
	assert.Zero(t, rules.heroesDefeated)

	collide(s, h2.Actor, d.Actor)
	assert.True(t, h2.Enabled(), "destination is full")
	assert.Equal(t, 1, rules.arrivals)
}

func TestObstacleReenablesJump(t *testing.T) {
	cases := []struct {
		name      string
		setup     func(o *Obstacle)
		wantInAir bool
	}{
		{"solid", func(o *Obstacle) {}, false},
		{"no_reenable", func(o *Obstacle) { o.NoJumpReenable = true }, true},
		{"sensor", func(o *Obstacle) { o.SetCollisionsEnabled(false) }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestStage(t)
			h := s.MakeHero(0, 0, 10, 10, "", AsBox)
			o := s.MakeObstacle(0, 100, 100, 10, "", AsBox)
			c.setup(o)
			var hits int
			o.OnHero = func(*Obstacle, *Hero, Collision) { hits++ }
			h.SetJumpImpulses(0, -100)
			h.Jump()
			require.True(t, h.InAir())

			collide(s, h.Actor, o.Actor)

			assert.Equal(t, 1, hits)
			assert.Equal(t, c.wantInAir, h.InAir())
		})
	}
}

func TestJumpNeedsGround(t *testing.T) {
	s, _, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	h.SetJumpImpulses(0, -100)
	h.Jump()
	h.Jump()
	_, vy := h.Velocity()
	assert.InDelta(t, -100, vy, 1e-9)

	h.MultiJump = true
	h.SetInAir(false)
	h.Jump()
	h.Jump()
	_, vy = h.Velocity()
	assert.InDelta(t, -300, vy, 1e-9)
}

func TestObstacleCollideSoundDelay(t *testing.T) {
	s, _, lib := newTestStage(t)
	snd := &countingSound{}
	lib.Register("thud", snd)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	o := s.MakeObstacle(0, 100, 100, 10, "", AsBox)
	o.CollideSound = "thud"
	o.CollideDelay = 1

	collide(s, h.Actor, o.Actor)
	collide(s, h.Actor, o.Actor)
	assert.Equal(t, 1, snd.plays)

	for i := 0; i < 70; i++ {
		s.scene.Step(common.FixedStep)
	}
	collide(s, h.Actor, o.Actor)
	assert.Equal(t, 2, snd.plays)
}

func TestObstacleEnemyCallback(t *testing.T) {
	s, _, _ := newTestStage(t)
	e := s.MakeEnemy(0, 0, 10, 10, "", AsBox)
	o := s.MakeObstacle(0, 100, 100, 10, "", AsBox)
	var got *Enemy
	o.OnEnemy = func(_ *Obstacle, e *Enemy, _ Collision) { got = e }

	collide(s, o.Actor, e.Actor)
	assert.Same(t, e, got)
}

func TestEnemyProjectileDamage(t *testing.T) {
	s, rules, lib := newTestStage(t)
	snd := &countingSound{}
	lib.Register("pop", snd)
	e := s.MakeEnemy(300, 0, 10, 10, "", AsBox)
	pool := NewProjectilePool(s, PoolConfig{Size: 2, Damage: 1, DisappearSound: "pop"})
	thrower := s.MakeHero(0, 0, 10, 10, "", AsBox)

	require.True(t, pool.ThrowFixed(thrower.Actor, 0, 0, 0, 0))
	p1 := pool.Projectiles()[0]
	collide(s, p1.Actor, e.Actor)
	assert.False(t, p1.Enabled())
	assert.True(t, e.Enabled())
	assert.Equal(t, 1, e.Damage)
	assert.Equal(t, 1, snd.plays, "surviving enemy removes the projectile loudly")

	require.True(t, pool.ThrowFixed(thrower.Actor, 0, 0, 0, 0))
	p2 := pool.Projectiles()[1]
	collide(s, e.Actor, p2.Actor)
	assert.False(t, p2.Enabled())
	assert.False(t, e.Enabled())
	assert.Equal(t, 1, snd.plays, "defeating projectile is removed quietly")
	assert.Equal(t, 1, rules.enemiesDefeated)
}

func TestProjectileRules(t *testing.T) {
	cases := []struct {
		name      string
		other     func(s *Stage) *Actor
		wantAlive bool
	}{
		{"obstacle_callback_keeps_projectile", func(s *Stage) *Actor {
			o := s.MakeObstacle(500, 0, 10, 10, "", AsBox)
			o.OnProjectile = func(*Obstacle, *Projectile, Collision) {}
			return o.Actor
		}, true},
		{"plain_obstacle_removes", func(s *Stage) *Actor {
			return s.MakeObstacle(500, 0, 10, 10, "", AsBox).Actor
		}, false},
		{"sensor_goodie_ignored", func(s *Stage) *Actor {
			return s.MakeGoodie(500, 0, 10, 10, "", AsBox).Actor
		}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestStage(t)
			pool := NewProjectilePool(s, PoolConfig{Size: 1})
			thrower := s.MakeHero(0, 0, 10, 10, "", AsBox)
			require.True(t, pool.ThrowFixed(thrower.Actor, 0, 0, 0, 0))
			p := pool.Projectiles()[0]

			collide(s, p.Actor, c.other(s))
			assert.Equal(t, c.wantAlive, p.Enabled())
		})
	}
}

func TestProjectileVsProjectile(t *testing.T) {
	for _, disappear := range []bool{true, false} {
		s, _, _ := newTestStage(t)
		pool := NewProjectilePool(s, PoolConfig{Size: 2, DisappearOnCollide: disappear})
		thrower := s.MakeHero(0, 0, 10, 10, "", AsBox)
		require.True(t, pool.ThrowFixed(thrower.Actor, 0, 0, 0, 0))
		require.True(t, pool.ThrowFixed(thrower.Actor, 100, 0, 0, 0))
		ps := pool.Projectiles()

		collide(s, ps[0].Actor, ps[1].Actor)
		assert.Equal(t, !disappear, ps[0].Enabled())
	}
}

func TestDisabledActorsSkipQueuedCollision(t *testing.T) {
	s, rules, _ := newTestStage(t)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	e := s.MakeEnemy(100, 0, 10, 10, "", AsBox)

	s.dispatcher.BeginContact(&physics.Contact{A: h.body, B: e.body})
	e.Remove(true)
	s.scene.Step(common.FixedStep)

	assert.True(t, h.Enabled())
	assert.Zero(t, rules.heroesDefeated)
}

func TestObserverSeesResolvedCollisions(t *testing.T) {
	s, _, _ := newTestStage(t)
	obs := &recordingObserver{}
	s.SetObserver(obs)
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	g := s.MakeGoodie(100, 0, 10, 10, "", AsBox)

	collide(s, g.Actor, h.Actor)
	assert.Equal(t, [][2]Role{{RoleHero, RoleGoodie}}, obs.collisions)
}

func TestPreSolvePassThrough(t *testing.T) {
	s, _, _ := newTestStage(t)
	a := s.MakeObstacle(0, 0, 10, 10, "", AsBox)
	b := s.MakeHero(0, 0, 10, 10, "", AsBox)

	cases := []struct {
		name   string
		ga, gb int
		want   bool
	}{
		{"same_group", 3, 3, false},
		{"different_groups", 3, 4, true},
		{"zero_group", 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a.SetPassThrough(c.ga)
			b.SetPassThrough(c.gb)
			contact := &physics.Contact{A: a.body, B: b.body}
			s.dispatcher.PreSolve(contact)
			assert.Equal(t, c.want, contact.Enabled())
		})
	}
}

func TestPreSolveOneSided(t *testing.T) {
	cases := []struct {
		name        string
		side        Side
		vx, vy      float64
		wantEnabled bool
	}{
		{"top_moving_up_passes", SideTop, 0, -50, false},
		{"top_moving_down_blocks", SideTop, 0, 50, true},
		{"right_moving_right_passes", SideRight, 50, 0, false},
		{"right_moving_left_blocks", SideRight, -50, 0, true},
		{"bottom_moving_down_passes", SideBottom, 0, 50, false},
		{"bottom_moving_up_blocks", SideBottom, 0, -50, true},
		{"left_moving_left_passes", SideLeft, -50, 0, false},
		{"left_moving_right_blocks", SideLeft, 50, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestStage(t)
			platform := s.MakeObstacle(0, 100, 100, 10, "", AsBox)
			platform.SetOneSided(c.side)
			mover := s.MakeHero(0, 0, 10, 10, "", AsBox)
			mover.Body().SetVelocity(c.vx, c.vy)

			for _, contact := range []*physics.Contact{
				{A: platform.body, B: mover.body},
				{A: mover.body, B: platform.body},
			} {
				s.dispatcher.PreSolve(contact)
				assert.Equal(t, c.wantEnabled, contact.Enabled())
			}
		})
	}
}

func TestPreSolveBothOneSidedIgnored(t *testing.T) {
	s, _, _ := newTestStage(t)
	a := s.MakeObstacle(0, 100, 100, 10, "", AsBox)
	b := s.MakeHero(0, 0, 10, 10, "", AsBox)
	a.SetOneSided(SideTop)
	b.SetOneSided(SideTop)
	b.Body().SetVelocity(0, -50)
	contact := &physics.Contact{A: a.body, B: b.body}
	s.dispatcher.PreSolve(contact)
	assert.True(t, contact.Enabled())
}

func TestUpdateVelocityPromotesStatic(t *testing.T) {
	s, _, _ := newTestStage(t)
	o := s.MakeObstacle(0, 0, 10, 10, "", AsBox)
	other := s.MakeObstacle(20, 0, 10, 10, "", AsBox)
	other.SetDynamic()
	o.WeldTo(other.Actor)
	require.Len(t, o.Body().Joints(), 1)

	o.UpdateVelocity(5, 0)

	assert.Equal(t, physics.Kinematic, o.Body().Type())
	assert.Empty(t, o.Body().Joints())
	vx, _ := o.Velocity()
	assert.Equal(t, 5.0, vx)
}

func TestSetCollisionsEnabledTogglesSensor(t *testing.T) {
	s, _, _ := newTestStage(t)
	o := s.MakeObstacle(0, 0, 10, 10, "", AsBox)
	o.SetCollisionsEnabled(false)
	assert.True(t, o.Body().Fixture().Sensor())
	o.SetCollisionsEnabled(true)
	assert.False(t, o.Body().Fixture().Sensor())
}

func TestResizeToSameBoxKeepsState(t *testing.T) {
	s, _, _ := newTestStage(t)
	h := s.MakeHero(10, 20, 30, 40, "", AsBox)
	h.SetGravityScale(0.5)
	h.SetDamping(0.2, 0.1)
	h.SetRotation(0.3)
	h.Body().SetVelocity(3, 4)
	h.Body().SetAngularVelocity(0.7)
	h.SetPhysics(2, 0.4, 0.6)
	oldBody := h.Body()

	x, y := h.Position()
	w, hh := h.Size()
	h.Resize(x, y, w, hh)

	nb := h.Body()
	require.NotSame(t, oldBody, nb)
	assert.False(t, oldBody.Active())
	vx, vy := h.Velocity()
	assert.InDelta(t, 3, vx, 1e-9)
	assert.InDelta(t, 4, vy, 1e-9)
	assert.InDelta(t, 0.3, h.Rotation(), 1e-9)
	assert.InDelta(t, 0.7, nb.AngularVelocity(), 1e-9)
	assert.Equal(t, 0.5, nb.GravityScale())
	assert.Equal(t, 0.2, nb.LinearDamping())
	assert.Equal(t, 0.1, nb.AngularDamping())
	assert.Equal(t, 2.0, nb.Fixture().Density())
	assert.Equal(t, 0.4, nb.Fixture().Restitution())
	assert.Equal(t, 0.6, nb.Fixture().Friction())
	nx, ny := h.Position()
	assert.InDelta(t, x, nx, 1e-9)
	assert.InDelta(t, y, ny, 1e-9)

	assert.Same(t, h.Actor, s.registry.ByBody(nb))
	assert.Nil(t, s.registry.ByBody(oldBody))
}

func TestResizeChangesBox(t *testing.T) {
	s, _, _ := newTestStage(t)
	o := s.MakeObstacle(0, 0, 10, 10, "", AsCircle)
	o.Resize(5, 5, 20, 20)
	w, h := o.Body().Shape().Bounds()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 20.0, h)
	assert.Equal(t, 20.0, o.Sprite().W)
	x, y := o.Position()
	assert.InDelta(t, 5, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)
}

func TestZIndexClamped(t *testing.T) {
	s, _, _ := newTestStage(t)
	o := s.MakeObstacle(0, 0, 10, 10, "", AsBox)
	o.SetZIndex(9)
	assert.Equal(t, scene.MaxZ, o.ZIndex())
	o.SetZIndex(-9)
	assert.Equal(t, scene.MinZ, o.ZIndex())
}

func TestAppearAndDisappearDelay(t *testing.T) {
	s, _, _ := newTestStage(t)
	o := s.MakeObstacle(0, 0, 10, 10, "", AsBox)
	o.SetAppearDelay(0.5)
	assert.False(t, o.Enabled())

	g := s.MakeGoodie(100, 0, 10, 10, "", AsBox)
	g.SetDisappearDelay(0.25, true)

	for i := 0; i < 60; i++ {
		s.scene.Step(common.FixedStep)
	}
	assert.True(t, o.Enabled())
	assert.True(t, o.Body().Active())
	assert.False(t, g.Enabled())
}

func TestChaseSteersTowardTarget(t *testing.T) {
	s, _, _ := newTestStage(t)
	target := s.MakeHero(100, 0, 10, 10, "", AsBox)
	chaser := s.MakeEnemy(0, 0, 10, 10, "", AsBox)
	chaser.SetChase(target.Actor, 20, false, true)

	s.scene.Step(common.FixedStep)
	vx, vy := chaser.Velocity()
	assert.InDelta(t, 20, vx, 1e-6)
	assert.InDelta(t, 0, vy, 1e-6)

	chaser.Remove(true)
	assert.Equal(t, 0, len(chaser.behavior))
}
