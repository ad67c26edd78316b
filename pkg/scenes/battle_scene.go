package scenes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/entities"
	"github.com/gonewx/invaders/pkg/events"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/systems"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

// BattleScene 一局游戏的帧循环编排者
//
// 每帧执行顺序：
//  1. 夹取 delta，查询可视对象就绪状态
//  2. 推进战斗单位、子弹、爆炸
//  3. 分发意图事件，然后做碰撞检测，再次分发
//  4. 清理已处置的实体并释放其可视对象
//  5. 把实体状态同步给渲染方
//
// 所有实体集合只在本场景内修改。系统只发出意图事件，
// 由场景注册的处理函数落实生成、加分和通知。
type BattleScene struct {
	em       *ecs.EntityManager
	cfg      *config.GameConfig
	renderer game.Renderer
	state    *game.GameState
	queue    *events.EventQueue
	router   *events.Router
	rng      *rand.Rand
	logger   *zap.Logger

	visuals     *systems.VisualSystem
	combatants  *systems.CombatantSystem
	projectiles *systems.ProjectileSystem
	explosions  *systems.ExplosionSystem
	collisions  *systems.CollisionSystem
	waves       *systems.WaveSystem

	observers []game.Observer
	sound     game.SoundPlayer
}

// NewBattleScene 创建战斗场景并开始第一局
//
// 开局产生的事件（第一波开始等）留在队列中，在第一次 Update 时分发，
// 因此在此之后注册的观察者也能收到。
//
// 参数:
//   - renderer: 渲染协作方
//   - cfg: 游戏配置，nil 时使用默认配置
//   - rng: 随机数源，nil 时按 cfg.Simulation.Seed 创建（0 表示使用当前时间）
//   - logger: 日志器，可为 nil
func NewBattleScene(renderer game.Renderer, cfg *config.GameConfig, rng *rand.Rand, logger *zap.Logger) (*BattleScene, error) {
	if renderer == nil {
		return nil, fmt.Errorf("renderer cannot be nil")
	}
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if rng == nil {
		seed := cfg.Simulation.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	logger = utils.LoggerOrNop(logger)

	s := &BattleScene{
		em:       ecs.NewEntityManager(),
		cfg:      cfg,
		renderer: renderer,
		state:    game.NewGameState(),
		queue:    events.NewEventQueue(),
		rng:      rng,
		logger:   logger.Named("BattleScene"),
	}
	s.router = events.NewRouter(s.queue, logger)

	s.visuals = systems.NewVisualSystem(s.em, renderer, logger)
	s.combatants = systems.NewCombatantSystem(s.em, cfg, s.queue, s.visuals, rng, logger)
	s.projectiles = systems.NewProjectileSystem(s.em, cfg, s.visuals, logger)
	s.explosions = systems.NewExplosionSystem(s.em, renderer, cfg, rng, logger)
	s.collisions = systems.NewCollisionSystem(s.em, cfg, s.queue, s.combatants, s.projectiles, s.explosions, s.visuals, logger)
	s.waves = systems.NewWaveSystem(s.em, renderer, cfg, s.state, s.queue, s.visuals, rng, logger)

	s.subscribe()
	s.startSession()

	return s, nil
}

func (s *BattleScene) subscribe() {
	s.waves.Subscribe(s.router)

	s.router.Subscribe(events.EventSpawnExplosion, func(ev events.GameEvent) {
		s.explosions.Spawn(ev.Position, ev.Particles, ev.Size)
	})
	s.router.Subscribe(events.EventSpawnAlienBullet, func(ev events.GameEvent) {
		if _, err := entities.NewAlienBullet(s.em, s.renderer, s.cfg, ev.Position, s.rng); err != nil {
			s.logger.Warn("failed to spawn alien bullet", zap.Error(err))
		}
	})
	s.router.Subscribe(events.EventBarrierDestroyed, func(ev events.GameEvent) {
		s.em.DestroyEntity(ev.Entity)
	})
	s.router.Subscribe(events.EventScoreAwarded, func(ev events.GameEvent) {
		total := s.state.AddScore(ev.Points)
		for _, o := range s.observers {
			o.OnScoreChanged(total)
		}
	})
	s.router.Subscribe(events.EventWaveStarted, func(ev events.GameEvent) {
		for _, o := range s.observers {
			o.OnWaveStarted(ev.Wave)
		}
	})
	s.router.Subscribe(events.EventGameOver, func(events.GameEvent) {
		// 读取分发时的得分，同一帧中更早的加分事件已经结算
		for _, o := range s.observers {
			o.OnGameOver(s.state.Score)
		}
	})
	s.router.Subscribe(events.EventSound, func(ev events.GameEvent) {
		if s.sound != nil {
			s.sound.Play(ev.Sound)
		}
	})
}

// startSession 生成玩家、掩体和第一波外星人
func (s *BattleScene) startSession() {
	player, err := entities.NewPlayer(s.em, s.renderer, s.cfg)
	if err != nil {
		s.logger.Error("failed to spawn player", zap.Error(err))
	}
	s.state.Player = player

	for _, placement := range s.cfg.Barriers.Positions {
		if _, err := entities.NewBarrier(s.em, s.renderer, s.cfg, placement); err != nil {
			s.logger.Warn("failed to spawn barrier", zap.Error(err))
		}
	}

	s.waves.StartWave()
}

// Update 推进一帧
// 游戏结束后不再做任何事
func (s *BattleScene) Update(deltaTime float64) {
	if s.state.GameOver {
		return
	}
	deltaTime = utils.Clamp(deltaTime, 0, s.cfg.Simulation.MaxDelta)

	s.visuals.PollReady()

	s.combatants.Update(deltaTime)
	s.projectiles.Update(deltaTime)
	s.explosions.Update(deltaTime)
	s.router.DispatchAll()

	s.collisions.Update()
	s.router.DispatchAll()

	s.prune()
	s.visuals.Sync()
}

// prune 帧末清理：已处置的子弹和爆炸，以及本帧被标记删除的实体
func (s *BattleScene) prune() {
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](s.em) {
		if p, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id); p.Disposed {
			s.em.DestroyEntity(id)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.em) {
		if e, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id); e.Disposed {
			s.em.DestroyEntity(id)
		}
	}

	for _, id := range s.em.PendingDestroy() {
		s.visuals.Release(id)
	}
	s.em.RemoveMarkedEntities()
}

// SpawnPlayerBullet 在指定位置发射一颗玩家子弹
// 射速限制由宿主负责。游戏结束后返回 0
func (s *BattleScene) SpawnPlayerBullet(pos mgl64.Vec3) ecs.EntityID {
	if s.state.GameOver {
		return 0
	}
	id, err := entities.NewPlayerBullet(s.em, s.renderer, s.cfg, pos)
	if err != nil {
		s.logger.Warn("failed to spawn player bullet", zap.Error(err))
		return 0
	}
	s.queue.Push(events.PlaySound(events.SoundShoot))
	return id
}

// FirePlayerBullet 从玩家当前位置发射子弹
// 玩家不存在或已终结时返回 0
func (s *BattleScene) FirePlayerBullet() ecs.EntityID {
	c, ok := ecs.GetComponent[*components.CombatantComponent](s.em, s.state.Player)
	if !ok || c.Destroyed {
		return 0
	}
	t, _ := ecs.GetComponent[*components.TransformComponent](s.em, s.state.Player)
	return s.SpawnPlayerBullet(t.Position)
}

// SetPlayerInput 设置玩家水平移动输入，取值被限制在 [-1, 1]
func (s *BattleScene) SetPlayerInput(axis float64) {
	if control, ok := ecs.GetComponent[*components.PlayerControlComponent](s.em, s.state.Player); ok {
		control.MoveAxis = utils.Clamp(axis, -1, 1)
	}
}

// Hit 对实体造成一次伤害并立即结算后果
// 返回本次调用是否导致终结
func (s *BattleScene) Hit(id ecs.EntityID) bool {
	destroyed := s.combatants.Hit(id)
	s.router.DispatchAll()
	// 终结玩家会设置 GameOver，之后的 Update 不再清理，所以这里直接清理
	s.prune()
	return destroyed
}

// AddObserver 注册进度观察者
func (s *BattleScene) AddObserver(o game.Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// SetSoundPlayer 设置音效播放方，nil 表示静音
func (s *BattleScene) SetSoundPlayer(p game.SoundPlayer) {
	s.sound = p
}

// Reset 丢弃当前局的全部实体并重新开局
// 观察者和音效播放方保持不变
func (s *BattleScene) Reset() {
	s.prune()
	for _, id := range s.em.GetEntitiesWith() {
		s.visuals.Release(id)
	}
	s.em.Clear()
	s.queue.Clear()
	s.state.Reset()

	s.startSession()
	s.logger.Info("session reset")
}

// Score 当前得分
func (s *BattleScene) Score() int {
	return s.state.Score
}

// Wave 当前波次
func (s *BattleScene) Wave() int {
	return s.state.Wave
}

// IsGameOver 本局是否已结束
func (s *BattleScene) IsGameOver() bool {
	return s.state.GameOver
}

// Player 玩家实体，玩家被摧毁后为已删除的ID
func (s *BattleScene) Player() ecs.EntityID {
	return s.state.Player
}

// PlayerLives 玩家剩余生命，玩家不存在时为 0
func (s *BattleScene) PlayerLives() int {
	if c, ok := ecs.GetComponent[*components.CombatantComponent](s.em, s.state.Player); ok {
		return c.Lives
	}
	return 0
}

// AliveAliens 当前波次剩余的外星人数量
func (s *BattleScene) AliveAliens() int {
	return s.waves.AliveAliens()
}

// HasMothership 当前是否有母舰
func (s *BattleScene) HasMothership() bool {
	return s.state.HasMothership()
}
