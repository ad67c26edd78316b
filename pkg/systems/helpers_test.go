package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/entities"
	"github.com/gonewx/invaders/pkg/events"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testWorld 组装所有系统，事件处理方式与 BattleScene 一致
type testWorld struct {
	em       *ecs.EntityManager
	renderer *game.HeadlessRenderer
	cfg      *config.GameConfig
	state    *game.GameState
	queue    *events.EventQueue
	router   *events.Router
	rng      *rand.Rand

	visuals     *VisualSystem
	combatants  *CombatantSystem
	projectiles *ProjectileSystem
	explosions  *ExplosionSystem
	collisions  *CollisionSystem
	waves       *WaveSystem

	gameOvers int
}

func newTestWorld(t *testing.T, seed int64) *testWorld {
	t.Helper()
	w := &testWorld{
		em:       ecs.NewEntityManager(),
		renderer: game.NewHeadlessRenderer(),
		cfg:      config.DefaultGameConfig(),
		state:    game.NewGameState(),
		queue:    events.NewEventQueue(),
		rng:      rand.New(rand.NewSource(seed)),
	}
	logger := zap.NewNop()
	w.router = events.NewRouter(w.queue, logger)

	w.visuals = NewVisualSystem(w.em, w.renderer, logger)
	w.combatants = NewCombatantSystem(w.em, w.cfg, w.queue, w.visuals, w.rng, logger)
	w.projectiles = NewProjectileSystem(w.em, w.cfg, w.visuals, logger)
	w.explosions = NewExplosionSystem(w.em, w.renderer, w.cfg, w.rng, logger)
	w.collisions = NewCollisionSystem(w.em, w.cfg, w.queue, w.combatants, w.projectiles, w.explosions, w.visuals, logger)
	w.waves = NewWaveSystem(w.em, w.renderer, w.cfg, w.state, w.queue, w.visuals, w.rng, logger)

	w.waves.Subscribe(w.router)
	w.router.Subscribe(events.EventSpawnExplosion, func(ev events.GameEvent) {
		w.explosions.Spawn(ev.Position, ev.Particles, ev.Size)
	})
	w.router.Subscribe(events.EventSpawnAlienBullet, func(ev events.GameEvent) {
		_, err := entities.NewAlienBullet(w.em, w.renderer, w.cfg, ev.Position, w.rng)
		require.NoError(t, err)
	})
	w.router.Subscribe(events.EventScoreAwarded, func(ev events.GameEvent) {
		w.state.AddScore(ev.Points)
	})
	w.router.Subscribe(events.EventGameOver, func(events.GameEvent) {
		w.gameOvers++
	})
	return w
}

func (w *testWorld) dispatch() {
	w.router.DispatchAll()
}

// pendingOf 统计队列中指定类型的事件
func (w *testWorld) pendingOf(t events.EventType) []events.GameEvent {
	var out []events.GameEvent
	w.queue.Pending(func(ev events.GameEvent) bool {
		if ev.Type == t {
			out = append(out, ev)
		}
		return true
	})
	return out
}

func (w *testWorld) spawnPlayer(t *testing.T) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlayer(w.em, w.renderer, w.cfg)
	require.NoError(t, err)
	w.state.Player = id
	return id
}

func (w *testWorld) spawnAlien(t *testing.T, pos mgl64.Vec3) ecs.EntityID {
	t.Helper()
	id, err := entities.NewAlien(w.em, w.renderer, w.cfg, pos, "Alien_1")
	require.NoError(t, err)
	return id
}

func (w *testWorld) spawnMothership(t *testing.T) ecs.EntityID {
	t.Helper()
	w.waves.SpawnMothership()
	require.NotZero(t, w.state.Mothership)
	return w.state.Mothership
}

func (w *testWorld) spawnPlayerBullet(t *testing.T, at mgl64.Vec3) ecs.EntityID {
	t.Helper()
	// 工厂会加上发射偏移，这里抵消掉以便精确放置
	id, err := entities.NewPlayerBullet(w.em, w.renderer, w.cfg, at.Sub(mgl64.Vec3{0, w.cfg.PlayerBullet.Offset, 0}))
	require.NoError(t, err)
	return id
}

func (w *testWorld) spawnAlienBullet(t *testing.T, at mgl64.Vec3, tilt float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewAlienBullet(w.em, w.renderer, w.cfg, at.Sub(mgl64.Vec3{0, w.cfg.AlienBullet.Offset, 0}), w.rng)
	require.NoError(t, err)
	w.transform(id).Rotation = mgl64.Vec3{0, 0, tilt}
	return id
}

func (w *testWorld) transform(id ecs.EntityID) *components.TransformComponent {
	t, _ := ecs.GetComponent[*components.TransformComponent](w.em, id)
	return t
}

func (w *testWorld) combatant(id ecs.EntityID) *components.CombatantComponent {
	c, _ := ecs.GetComponent[*components.CombatantComponent](w.em, id)
	return c
}

func (w *testWorld) projectile(id ecs.EntityID) *components.ProjectileComponent {
	p, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
	return p
}
