package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestTailAccumulate(t *testing.T) {
	tail := &TailComponent{SpawnInterval: 0.1, Lifespan: 1, FadeFraction: 0.5}

	assert.Equal(t, 0, tail.Accumulate(0.05, mgl64.Vec3{}))
	assert.Equal(t, 2, tail.Accumulate(0.2, mgl64.Vec3{0, 1, 0}))
	assert.Equal(t, 2, tail.Active)
	assert.Equal(t, 2, tail.Cursor)
	assert.InDelta(t, 0.05, tail.SpawnAccumulator, 1e-9)
}

func TestTailEmitOverwritesOldest(t *testing.T) {
	tail := &TailComponent{Lifespan: 1}
	for i := 0; i < MaxTailParticles+3; i++ {
		tail.Emit(mgl64.Vec3{float64(i), 0, 0})
	}

	assert.Equal(t, MaxTailParticles, tail.Active)
	assert.Equal(t, 3, tail.Cursor)
	assert.Equal(t, float64(MaxTailParticles), tail.Particles[0].Position.X())
}

func TestTailDecay(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   float64
		wantAlive int
		wantAlpha float64
	}{
		{"淡出窗口之前", 0.4, 1, 1},
		{"淡出一半", 0.75, 1, 0.5},
		{"寿命耗尽", 1.2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tail := &TailComponent{Lifespan: 1, FadeFraction: 0.5}
			tail.Emit(mgl64.Vec3{})

			assert.Equal(t, tt.wantAlive, tail.Decay(tt.elapsed))
			assert.InDelta(t, tt.wantAlpha, tail.Particles[0].Alpha, 1e-9)
		})
	}
}

func TestProjectileOutOfBounds(t *testing.T) {
	player := &ProjectileComponent{Side: SidePlayer, Bound: 20}
	alien := &ProjectileComponent{Side: SideAlien, Bound: -10}

	assert.False(t, player.OutOfBounds(20))
	assert.True(t, player.OutOfBounds(20.1))
	assert.False(t, alien.OutOfBounds(-10))
	assert.True(t, alien.OutOfBounds(-10.1))
}

func TestEntityKindIsCombatant(t *testing.T) {
	combatants := map[EntityKind]bool{
		KindPlayer:       true,
		KindAlien:        true,
		KindMothership:   true,
		KindPlayerBullet: false,
		KindAlienBullet:  false,
		KindExplosion:    false,
		KindBarrier:      false,
	}
	for kind, want := range combatants {
		assert.Equal(t, want, kind.IsCombatant(), kind.String())
	}
	assert.Equal(t, "EntityKind(42)", EntityKind(42).String())
}

func TestCombatantIsAlive(t *testing.T) {
	assert.True(t, (&CombatantComponent{Lives: 1}).IsAlive())
	assert.False(t, (&CombatantComponent{Lives: 0}).IsAlive())
	assert.False(t, (&CombatantComponent{Lives: 2, Destroyed: true}).IsAlive())
}
