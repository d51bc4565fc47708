package actor

import (
	"math"
	"testing"

	"github.com/milk9111/stagehand/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolOfOneDropsThrowWhileInFlight(t *testing.T) {
	s, _, lib := newTestStage(t)
	snd := &countingSound{}
	lib.Register("whoosh", snd)
	obs := &recordingObserver{}
	s.SetObserver(obs)

	pool := NewProjectilePool(s, PoolConfig{Size: 1, ThrowSound: "whoosh"})
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)

	assert.True(t, pool.ThrowFixed(h.Actor, 20, 0, 100, 0))
	assert.False(t, pool.ThrowFixed(h.Actor, 20, 0, 100, 0))
	assert.Equal(t, 1, pool.InFlight())
	assert.Equal(t, 1, pool.Launches())

	pool.Projectiles()[0].Remove(true)
	assert.True(t, pool.ThrowFixed(h.Actor, 20, 0, 100, 0))
	assert.Equal(t, 2, pool.Launches())
	assert.Equal(t, 1, pool.Dropped())
	assert.Equal(t, 2, snd.plays)
	assert.Equal(t, 2, obs.throws)
	assert.Equal(t, 1, obs.drops)
}

func TestPoolRoundRobin(t *testing.T) {
	s, _, _ := newTestStage(t)
	pool := NewProjectilePool(s, PoolConfig{Size: 3})
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)

	for i := 0; i < 3; i++ {
		require.True(t, pool.ThrowFixed(h.Actor, 0, float64(i*50), 0, 0))
	}
	assert.Equal(t, 3, pool.InFlight())
	assert.False(t, pool.ThrowFixed(h.Actor, 0, 0, 0, 0))

	pool.Projectiles()[1].Remove(true)
	assert.False(t, pool.ThrowFixed(h.Actor, 0, 0, 0, 0), "next slot is 0, still in flight")
	pool.Projectiles()[0].Remove(true)
	assert.True(t, pool.ThrowFixed(h.Actor, 0, 0, 0, 0))
}

func TestPoolLimit(t *testing.T) {
	s, _, _ := newTestStage(t)
	pool := NewProjectilePool(s, PoolConfig{Size: 2})
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	pool.SetLimit(1)

	assert.True(t, pool.ThrowFixed(h.Actor, 0, 0, 1, 0))
	assert.Equal(t, 0, pool.Remaining())
	assert.False(t, pool.ThrowFixed(h.Actor, 0, 0, 1, 0))

	pool.SetLimit(-1)
	assert.True(t, pool.ThrowFixed(h.Actor, 0, 0, 1, 0))
	assert.Equal(t, -1, pool.Remaining())
}

func TestThrowAt(t *testing.T) {
	cases := []struct {
		name       string
		fixed      float64
		wantVX     float64
		wantVY     float64
		wantRotate float64
	}{
		{"distance_proportional", 0, 30, 40, math.Atan2(40, 30)},
		{"fixed_magnitude", 10, 6, 8, math.Atan2(8, 6)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestStage(t)
			pool := NewProjectilePool(s, PoolConfig{Size: 1})
			pool.SetFixedVelocity(c.fixed)
			pool.SetRotateWithVelocity(true)
			h := s.MakeHero(0, 0, 10, 10, "", AsBox)

			// thrower center is (5, 5)
			require.True(t, pool.ThrowAt(h.Actor, 0, 0, 35, 45))
			p := pool.Projectiles()[0]
			vx, vy := p.Velocity()
			assert.InDelta(t, c.wantVX, vx, 1e-9)
			assert.InDelta(t, c.wantVY, vy, 1e-9)
			assert.InDelta(t, c.wantRotate, p.Rotation(), 1e-9)
		})
	}
}

func TestProjectileRange(t *testing.T) {
	s, _, _ := newTestStage(t)
	pool := NewProjectilePool(s, PoolConfig{Size: 1, Range: 20})
	h := s.MakeHero(0, 0, 10, 10, "", AsBox)
	require.True(t, pool.ThrowFixed(h.Actor, 0, 100, 600, 0))
	p := pool.Projectiles()[0]

	for i := 0; i < 10 && p.Enabled(); i++ {
		s.scene.Step(common.FixedStep)
		s.scene.Render(common.FixedStep)
	}
	assert.False(t, p.Enabled())
}
