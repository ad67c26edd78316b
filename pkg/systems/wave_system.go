package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/entities"
	"github.com/gonewx/invaders/pkg/events"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

// WaveSystem 外星人波次与母舰的推进策略
//
// 进度循环：
//  1. StartWave 生成 Rows x Columns 网格的外星人
//  2. 最后一个外星人被消灭且没有母舰时，生成唯一的母舰
//  3. 母舰被摧毁后加分并立即开始下一波
//
// 难度不随波次变化，每一波只是重新生成。
type WaveSystem struct {
	em       *ecs.EntityManager
	renderer game.Renderer
	cfg      *config.GameConfig
	state    *game.GameState
	queue    *events.EventQueue
	visuals  *VisualSystem
	rng      *rand.Rand
	logger   *zap.Logger
}

// NewWaveSystem 创建波次系统
func NewWaveSystem(
	em *ecs.EntityManager,
	renderer game.Renderer,
	cfg *config.GameConfig,
	state *game.GameState,
	queue *events.EventQueue,
	visuals *VisualSystem,
	rng *rand.Rand,
	logger *zap.Logger,
) *WaveSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaveSystem{
		em:       em,
		renderer: renderer,
		cfg:      cfg,
		state:    state,
		queue:    queue,
		visuals:  visuals,
		rng:      rng,
		logger:   logger.Named("WaveSystem"),
	}
}

// Subscribe 注册战斗单位终结事件的处理
func (s *WaveSystem) Subscribe(router *events.Router) {
	router.Subscribe(events.EventCombatantDestroyed, func(ev events.GameEvent) {
		switch ev.Kind {
		case components.KindAlien:
			s.OnAlienDestroyed(ev.Entity, ev.Position)
		case components.KindMothership:
			s.OnMothershipDestroyed()
		case components.KindPlayer:
			s.OnPlayerDestroyed(ev.Position)
		case components.KindPlayerBullet, components.KindAlienBullet, components.KindExplosion, components.KindBarrier:
			s.logger.Warn("unexpected destroyed kind", zap.Stringer("kind", ev.Kind))
		}
	})
}

// StartWave 开始新的一波
// 清空现有外星人，在固定网格上重新生成，外星人类型从配置的类型集合中均匀随机选取
func (s *WaveSystem) StartWave() {
	wave := s.state.NextWave()

	for _, id := range s.alienEntities() {
		s.visuals.RemoveMain(id)
		s.em.DestroyEntity(id)
	}

	wc := s.cfg.Wave
	layout := utils.GridLayout{
		Rows:       wc.Rows,
		Columns:    wc.Columns,
		ColSpacing: wc.ColSpacing,
		RowSpacing: wc.RowSpacing,
		BaseY:      wc.BaseY,
	}
	types := s.cfg.Alien.Types
	for _, pos := range layout.Slots() {
		variant := types[s.rng.Intn(len(types))]
		if _, err := entities.NewAlien(s.em, s.renderer, s.cfg, pos, variant); err != nil {
			s.logger.Error("failed to spawn alien", zap.Error(err))
		}
	}

	s.queue.Push(events.WaveStarted(wave))
	s.logger.Info("wave started", zap.Int("wave", wave), zap.Int("aliens", s.AliveAliens()))
}

// OnAlienDestroyed 外星人被消灭：加分、移出集合、原地爆炸
// 集合清空且没有母舰时生成母舰
func (s *WaveSystem) OnAlienDestroyed(id ecs.EntityID, pos mgl64.Vec3) {
	if !s.em.IsAlive(id) {
		return
	}
	s.em.DestroyEntity(id)

	s.queue.Push(events.ScoreAwarded(s.cfg.Alien.Points))
	preset := s.cfg.Explosions.AlienDestroyed
	s.queue.Push(events.SpawnExplosion(pos, preset.Particles, preset.Size))

	remaining := s.AliveAliens()
	s.logger.Debug("alien destroyed", zap.Int("remaining", remaining))

	if remaining == 0 && !s.state.HasMothership() {
		s.SpawnMothership()
	}
}

// SpawnMothership 生成母舰，已有母舰时不做任何事
func (s *WaveSystem) SpawnMothership() {
	if s.state.HasMothership() {
		return
	}
	id, err := entities.NewMothership(s.em, s.renderer, s.cfg, s.rng)
	if err != nil {
		s.logger.Error("failed to spawn mothership", zap.Error(err))
		return
	}
	s.state.Mothership = id
	s.queue.Push(events.PlaySound(events.SoundMothership))
	s.logger.Info("mothership spawned", zap.Int("wave", s.state.Wave))
}

// OnMothershipDestroyed 母舰被摧毁：加分、大爆炸、清除引用、开始下一波
func (s *WaveSystem) OnMothershipDestroyed() {
	s.queue.Push(events.ScoreAwarded(s.cfg.Mothership.Points))

	if id := s.state.Mothership; id != 0 {
		if t, ok := ecs.GetComponent[*components.TransformComponent](s.em, id); ok {
			preset := s.cfg.Explosions.MothershipBonus
			s.queue.Push(events.SpawnExplosion(t.Position, preset.Particles, preset.Size))
		}
		s.em.DestroyEntity(id)
	}
	s.state.Mothership = 0

	s.StartWave()
}

// OnPlayerDestroyed 玩家被摧毁：大爆炸并结束本局
// 游戏结束事件每局只发出一次
func (s *WaveSystem) OnPlayerDestroyed(pos mgl64.Vec3) {
	preset := s.cfg.Explosions.PlayerDestroyed
	s.queue.Push(events.SpawnExplosion(pos, preset.Particles, preset.Size))

	if s.state.Player != 0 {
		s.em.DestroyEntity(s.state.Player)
	}
	if s.state.GameOver {
		return
	}
	s.state.GameOver = true
	s.queue.Push(events.PlaySound(events.SoundGameOver))
	s.queue.Push(events.GameOver())
	s.logger.Info("game over", zap.Int("wave", s.state.Wave))
}

// AliveAliens 返回尚未终结的外星人数量
func (s *WaveSystem) AliveAliens() int {
	n := 0
	for _, id := range s.alienEntities() {
		c, _ := ecs.GetComponent[*components.CombatantComponent](s.em, id)
		if !c.Destroyed {
			n++
		}
	}
	return n
}

// alienEntities 当前集合中的外星人（含本帧已终结但尚未结算的）
func (s *WaveSystem) alienEntities() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.KindComponent, *components.CombatantComponent](s.em)
	aliens := ids[:0]
	for _, id := range ids {
		kind, _ := ecs.GetComponent[*components.KindComponent](s.em, id)
		if kind.Kind == components.KindAlien {
			aliens = append(aliens, id)
		}
	}
	return aliens
}
