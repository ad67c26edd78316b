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

func alienPositions(w *testWorld) []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, id := range w.waves.alienEntities() {
		out = append(out, w.transform(id).Position)
	}
	return out
}

func motherships(w *testWorld) int {
	return len(ecs.GetEntitiesWith1[*components.MothershipComponent](w.em))
}

func TestStartWaveGrid(t *testing.T) {
	var reference []mgl64.Vec3

	for _, seed := range []int64{1, 7, 42} {
		w := newTestWorld(t, seed)
		w.waves.StartWave()

		assert.Equal(t, 1, w.state.Wave)
		assert.Equal(t, 15, w.waves.AliveAliens())

		for _, id := range w.waves.alienEntities() {
			kind, _ := ecs.GetComponent[*components.KindComponent](w.em, id)
			assert.Contains(t, w.cfg.Alien.Types, kind.Variant)
		}

		started := w.pendingOf(events.EventWaveStarted)
		require.Len(t, started, 1)
		assert.Equal(t, 1, started[0].Wave)

		positions := alienPositions(w)
		if reference == nil {
			reference = positions
			continue
		}
		assert.Equal(t, reference, positions, "网格位置与随机种子无关")
	}

	require.Len(t, reference, 15)
	assert.Equal(t, mgl64.Vec3{-10, 5, 0}, reference[0])
	assert.Equal(t, mgl64.Vec3{10, 11, 0}, reference[14])
}

func TestStartWaveReplacesAliens(t *testing.T) {
	w := newTestWorld(t, 1)
	w.waves.StartWave()
	first := w.waves.alienEntities()

	w.waves.StartWave()

	assert.Equal(t, 2, w.state.Wave)
	assert.Equal(t, 15, w.waves.AliveAliens())
	for _, id := range first {
		assert.False(t, w.em.IsAlive(id))
	}
}

// TestLastAlienSpawnsMothership 消灭最后一个外星人：加分、爆炸、唯一母舰
func TestLastAlienSpawnsMothership(t *testing.T) {
	w := newTestWorld(t, 1)
	alien := w.spawnAlien(t, mgl64.Vec3{0, 5, 0})

	for i := 0; i < 3; i++ {
		w.combatants.Hit(alien)
	}
	w.dispatch()

	assert.Equal(t, 30, w.state.Score)
	assert.False(t, w.em.IsAlive(alien))
	assert.Equal(t, 0, w.waves.AliveAliens())
	assert.True(t, w.state.HasMothership())
	assert.Equal(t, 1, motherships(w))
	assert.Equal(t, 1, w.explosions.ActiveCount())
}

func TestSimultaneousKillsSpawnOneMothership(t *testing.T) {
	w := newTestWorld(t, 1)
	a := w.spawnAlien(t, mgl64.Vec3{-5, 5, 0})
	b := w.spawnAlien(t, mgl64.Vec3{5, 5, 0})
	w.combatant(a).Lives = 1
	w.combatant(b).Lives = 1

	require.True(t, w.combatants.Hit(a))
	require.True(t, w.combatants.Hit(b))
	w.dispatch()

	assert.Equal(t, 60, w.state.Score)
	assert.Equal(t, 1, motherships(w))
}

func TestMothershipSpawnsOnlyAfterLastAlien(t *testing.T) {
	w := newTestWorld(t, 1)
	a := w.spawnAlien(t, mgl64.Vec3{-5, 5, 0})
	w.spawnAlien(t, mgl64.Vec3{5, 5, 0})
	w.combatant(a).Lives = 1

	w.combatants.Hit(a)
	w.dispatch()

	assert.False(t, w.state.HasMothership())
	assert.Equal(t, 0, motherships(w))
}

// TestMothershipDestroyedStartsNextWave 母舰被摧毁：加分、两次爆炸、清除引用、下一波
func TestMothershipDestroyedStartsNextWave(t *testing.T) {
	w := newTestWorld(t, 1)
	ms := w.spawnMothership(t)
	w.dispatch()
	w.combatant(ms).Lives = 1

	require.True(t, w.combatants.Hit(ms))
	w.dispatch()

	assert.Equal(t, 50, w.state.Score)
	assert.False(t, w.state.HasMothership())
	assert.False(t, w.em.IsAlive(ms))
	assert.Equal(t, 0, motherships(w))
	assert.Equal(t, 1, w.state.Wave)
	assert.Equal(t, 15, w.waves.AliveAliens())
	assert.Equal(t, 2, w.explosions.ActiveCount(), "终结爆炸加奖励爆炸")
}

func TestSpawnMothershipIsSingleton(t *testing.T) {
	w := newTestWorld(t, 1)
	first := w.spawnMothership(t)
	w.waves.SpawnMothership()

	assert.Equal(t, first, w.state.Mothership)
	assert.Equal(t, 1, motherships(w))
}

func TestPlayerDestroyedEndsGameOnce(t *testing.T) {
	w := newTestWorld(t, 1)
	player := w.spawnPlayer(t)

	for i := 0; i < 3; i++ {
		w.combatants.Hit(player)
	}
	w.dispatch()

	assert.True(t, w.state.GameOver)
	assert.False(t, w.em.IsAlive(player))
	assert.Equal(t, 1, w.gameOvers)
	assert.Equal(t, 1, w.explosions.ActiveCount())

	w.waves.OnPlayerDestroyed(mgl64.Vec3{})
	w.dispatch()
	assert.Equal(t, 1, w.gameOvers, "游戏结束只通知一次")
}
