package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSpecFromLooseMap(t *testing.T) {
	raw := map[string]any{
		"x":            10,
		"y":            20.5,
		"w":            16,
		"h":            32,
		"image":        "hero.png",
		"must_survive": true,
		"jump":         map[string]any{"x": 0, "y": -300},
		"route":        []any{map[string]any{"x": 0, "y": 0}, map[string]any{"x": 50, "y": 0}},
		"score":        []any{0, 2},
	}
	sp, err := DecodeSpec(raw)
	require.NoError(t, err)
	assert.Equal(t, 10.0, sp.X)
	assert.Equal(t, 20.5, sp.Y)
	assert.True(t, sp.MustSurvive)
	require.NotNil(t, sp.Jump)
	assert.Equal(t, -300.0, sp.Jump.Y)
	assert.Len(t, sp.Route, 2)
	assert.Equal(t, []int{0, 2}, sp.Score)

	empty, err := DecodeSpec(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.W)
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"hero", RoleHero, true},
		{"Enemies", RoleEnemy, true},
		{" goodies ", RoleGoodie, true},
		{"destination", RoleDestination, true},
		{"obstacles", RoleObstacle, true},
		{"ladder", RoleObstacle, false},
	}
	for _, c := range cases {
		got, ok := ParseRole(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		if ok {
			assert.Equal(t, c.want, got, c.in)
		}
	}
}

func TestSpawnAppliesRoleFields(t *testing.T) {
	s, rules, _ := newTestStage(t)

	a, err := s.Spawn(RoleHero, Spec{X: 0, Y: 0, W: 10, H: 20, Strength: 3, MultiJump: true, Jump: &Point{Y: -200}})
	require.NoError(t, err)
	require.NotNil(t, a.Hero())
	assert.Equal(t, 3, a.Hero().Strength())
	assert.True(t, a.Hero().MultiJump)
	assert.Equal(t, -200.0, a.Hero().JumpY)
	assert.Equal(t, 1, rules.heroesCreated)

	a, err = s.Spawn(RoleEnemy, Spec{X: 50, W: 10, H: 10, Damage: 5, DefeatByJump: true, DefeatMessage: "bitten"})
	require.NoError(t, err)
	assert.Equal(t, 5, a.Enemy().Damage)
	assert.True(t, a.Enemy().DefeatByJump)
	assert.Equal(t, "bitten", a.Enemy().DefeatMessage)

	a, err = s.Spawn(RoleGoodie, Spec{X: 100, W: 8, H: 8, Shape: "circle", Score: []int{0, 0, 3}})
	require.NoError(t, err)
	assert.Equal(t, [4]int{0, 0, 3, 0}, a.Goodie().Score)

	a, err = s.Spawn(RoleGoodie, Spec{X: 120, W: 8, H: 8})
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 0, 0, 0}, a.Goodie().Score, "default score is kept")

	a, err = s.Spawn(RoleDestination, Spec{X: 200, W: 20, H: 20, Capacity: 2, Activation: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Destination().Capacity)
	assert.Equal(t, [4]int{1, 0, 0, 0}, a.Destination().Activation)

	a, err = s.Spawn(RoleObstacle, Spec{X: 0, Y: 300, W: 200, H: 10, OneSided: "top", PassThrough: 4, Z: 9, NoJumpReenable: true})
	require.NoError(t, err)
	assert.Equal(t, SideTop, a.Side())
	assert.Equal(t, 4, a.PassThrough())
	assert.Equal(t, 2, a.ZIndex())
	assert.True(t, a.Obstacle().NoJumpReenable)
}

func TestSpawnRejects(t *testing.T) {
	s, _, _ := newTestStage(t)
	_, err := s.Spawn(RoleHero, Spec{W: 0, H: 10})
	assert.Error(t, err)
	_, err = s.Spawn(RoleProjectile, Spec{W: 4, H: 4})
	assert.Error(t, err)
}

func TestSpawnWithRouteMovesActor(t *testing.T) {
	s, _, _ := newTestStage(t)
	a, err := s.Spawn(RoleObstacle, Spec{W: 10, H: 10, Route: []Point{{0, 0}, {100, 0}}, RouteSpeed: 60})
	require.NoError(t, err)
	require.NotNil(t, a.RouteDriver())
	for i := 0; i < 30; i++ {
		s.Scene().Step(1.0 / 60)
	}
	x, _ := a.Position()
	assert.Greater(t, x, 10.0)
}
