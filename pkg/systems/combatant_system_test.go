package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHitStateMachine N 次命中后恰好终结一次，之后的命中全部为空操作
func TestHitStateMachine(t *testing.T) {
	tests := []struct {
		name  string
		spawn func(w *testWorld, t *testing.T) ecs.EntityID
		lives int
		kind  components.EntityKind
	}{
		{"外星人", func(w *testWorld, t *testing.T) ecs.EntityID { return w.spawnAlien(t, mgl64.Vec3{0, 5, 0}) }, 3, components.KindAlien},
		{"母舰", func(w *testWorld, t *testing.T) ecs.EntityID { return w.spawnMothership(t) }, 7, components.KindMothership},
		{"玩家", func(w *testWorld, t *testing.T) ecs.EntityID { return w.spawnPlayer(t) }, 3, components.KindPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, 1)
			id := tt.spawn(w, t)
			w.queue.Clear()

			for i := 1; i < tt.lives; i++ {
				require.False(t, w.combatants.Hit(id), "第 %d 次命中不应终结", i)
				assert.Equal(t, tt.lives-i, w.combatant(id).Lives)
			}
			require.True(t, w.combatants.Hit(id), "第 N 次命中应终结")

			for i := 0; i < 5; i++ {
				assert.False(t, w.combatants.Hit(id), "终结后的命中是空操作")
			}

			c := w.combatant(id)
			assert.True(t, c.Destroyed)
			assert.Equal(t, 0, c.Lives, "lives 不会为负")

			destroyed := w.pendingOf(events.EventCombatantDestroyed)
			require.Len(t, destroyed, 1, "终结事件只发出一次")
			assert.Equal(t, tt.kind, destroyed[0].Kind)
			assert.Equal(t, id, destroyed[0].Entity)

			visual, _ := ecs.GetComponent[*components.VisualComponent](w.em, id)
			assert.True(t, visual.Removed, "终结时移除可视对象")
		})
	}
}

func TestHitIgnoresNonCombatants(t *testing.T) {
	w := newTestWorld(t, 1)
	bullet := w.spawnPlayerBullet(t, mgl64.Vec3{0, 0, 0})

	assert.False(t, w.combatants.Hit(bullet))
	assert.False(t, w.combatants.Hit(ecs.EntityID(9999)))
	assert.Equal(t, 0, w.queue.Len())
}

func TestMothershipHitExplosions(t *testing.T) {
	w := newTestWorld(t, 1)
	id := w.spawnMothership(t)
	w.queue.Clear()

	rotBefore := w.transform(id).Rotation.Z()
	w.combatants.Hit(id)

	small := w.pendingOf(events.EventSpawnExplosion)
	require.Len(t, small, 1, "非致命命中产生小爆炸")
	assert.Equal(t, 10, small[0].Particles)
	assert.Equal(t, 1.0, small[0].Size)
	assert.LessOrEqual(t, abs(w.transform(id).Rotation.Z()-rotBefore), 0.125)

	w.queue.Clear()
	w.combatant(id).Lives = 1
	require.True(t, w.combatants.Hit(id))

	big := w.pendingOf(events.EventSpawnExplosion)
	require.Len(t, big, 1, "终结时产生大爆炸")
	assert.Equal(t, 20, big[0].Particles)
	assert.Equal(t, 2.0, big[0].Size)
}

func TestAlienMovementAndEdge(t *testing.T) {
	w := newTestWorld(t, 1)
	w.cfg.Alien.FireChance = 0
	id := w.spawnAlien(t, mgl64.Vec3{0, 5, 0})

	w.combatants.Update(1.0 / 60)
	assert.InDelta(t, 0.01, w.transform(id).Position.X(), 1e-9, "每 tick 移动 speed")

	w.transform(id).Position = mgl64.Vec3{19.995, 5, 0}
	w.combatants.Update(1.0 / 60)

	assert.Equal(t, -1.0, w.combatant(id).Direction, "越过边缘后掉头")
	assert.InDelta(t, 3.0, w.transform(id).Position.Y(), 1e-9, "掉头时下降 2")
}

func TestAlienFiring(t *testing.T) {
	w := newTestWorld(t, 1)
	w.cfg.Alien.FireChance = 1
	id := w.spawnAlien(t, mgl64.Vec3{0, 5, 0})

	w.combatants.Update(0.016)
	shots := w.pendingOf(events.EventSpawnAlienBullet)
	require.Len(t, shots, 1)

	cooldown := w.combatant(id).BulletCooldown
	assert.GreaterOrEqual(t, cooldown, 2.0)
	assert.Less(t, cooldown, 4.0)

	w.queue.Clear()
	w.combatants.Update(0.016)
	assert.Empty(t, w.pendingOf(events.EventSpawnAlienBullet), "冷却期间不开火")

	w.cfg.Alien.FireChance = 0
	w.combatant(id).BulletCooldown = 0
	w.combatants.Update(0.016)
	assert.Empty(t, w.pendingOf(events.EventSpawnAlienBullet), "概率为 0 时不开火")
}

func TestMothershipAlternatesVolleys(t *testing.T) {
	w := newTestWorld(t, 1)
	id := w.spawnMothership(t)
	w.queue.Clear()

	expected := []int{2, 1, 2, 1}
	for i, want := range expected {
		w.combatant(id).BulletCooldown = 0
		w.combatants.Update(0.016)

		shots := w.pendingOf(events.EventSpawnAlienBullet)
		require.Len(t, shots, want, "第 %d 次齐射", i+1)
		assert.InDelta(t, 1.0, w.combatant(id).BulletCooldown, 1e-9)

		pos := w.transform(id).Position
		if want == 2 {
			assert.InDelta(t, pos.X()-2.5, shots[0].Position.X(), 1e-9)
			assert.InDelta(t, pos.X()+2.5, shots[1].Position.X(), 1e-9)
		} else {
			assert.InDelta(t, pos.X(), shots[0].Position.X(), 1e-9)
		}
		assert.InDelta(t, pos.Y()-2, shots[0].Position.Y(), 1e-9)
		w.queue.Clear()
	}

	ms, _ := ecs.GetComponent[*components.MothershipComponent](w.em, id)
	assert.Equal(t, 4, ms.Volleys)
}

func TestMothershipBouncesWithoutDescending(t *testing.T) {
	w := newTestWorld(t, 1)
	id := w.spawnMothership(t)
	w.combatant(id).BulletCooldown = 100

	dir := w.combatant(id).Direction
	w.combatants.Update(1.0 / 60)

	assert.Equal(t, -dir, w.combatant(id).Direction, "从边缘出现后立即掉头")
	assert.Equal(t, 8.0, w.transform(id).Position.Y())
}

func TestCombatantWaitsForVisual(t *testing.T) {
	w := newTestWorld(t, 1)
	w.renderer.Deferred = true
	id := w.spawnAlien(t, mgl64.Vec3{0, 5, 0})

	w.combatants.Update(0.033)
	assert.Equal(t, 0.0, w.transform(id).Position.X(), "未就绪时不移动")

	w.renderer.MarkReady()
	w.visuals.PollReady()
	w.combatants.Update(0.033)
	assert.Greater(t, w.transform(id).Position.X(), 0.0)
}

func TestPlayerMovementClamped(t *testing.T) {
	w := newTestWorld(t, 1)
	id := w.spawnPlayer(t)
	control, _ := ecs.GetComponent[*components.PlayerControlComponent](w.em, id)

	control.MoveAxis = 1
	w.combatants.Update(1.0 / 60)
	assert.InDelta(t, w.cfg.Player.Speed, w.transform(id).Position.X(), 1e-9)

	for i := 0; i < 1000; i++ {
		w.combatants.Update(0.033)
	}
	assert.Equal(t, w.cfg.Player.MaxX, w.transform(id).Position.X())

	control.MoveAxis = -1
	for i := 0; i < 1000; i++ {
		w.combatants.Update(0.033)
	}
	assert.Equal(t, w.cfg.Player.MinX, w.transform(id).Position.X())
	assert.Equal(t, w.cfg.Player.LaneY, w.transform(id).Position.Y())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
