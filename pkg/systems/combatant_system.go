package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/events"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

// CombatantSystem 推进玩家、外星人和母舰，并实现 Hit 状态机
//
// 状态：Alive(lives>0) → Damaged(lives>0，受击扰动) → Destroyed(终结)
// 终结后的 Hit 调用全部为空操作，lives 不会被观察到为负数。
type CombatantSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameConfig
	queue   *events.EventQueue
	visuals *VisualSystem
	rng     *rand.Rand
	logger  *zap.Logger
}

// NewCombatantSystem 创建战斗单位系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - queue: 意图队列，开火、爆炸和终结都以事件形式发出
//   - visuals: 可视同步系统，用于在终结时移除主体可视对象
//   - rng: 随机数源
//   - logger: 日志器，可为 nil
func NewCombatantSystem(em *ecs.EntityManager, cfg *config.GameConfig, queue *events.EventQueue, visuals *VisualSystem, rng *rand.Rand, logger *zap.Logger) *CombatantSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatantSystem{
		em:      em,
		cfg:     cfg,
		queue:   queue,
		visuals: visuals,
		rng:     rng,
		logger:  logger.Named("CombatantSystem"),
	}
}

// Update 按创建顺序推进所有战斗单位
// 可视对象未就绪或已终结的单位保持静止
func (s *CombatantSystem) Update(deltaTime float64) {
	ticks := deltaTime * s.cfg.Simulation.TickRate

	ids := ecs.GetEntitiesWith4[
		*components.KindComponent,
		*components.CombatantComponent,
		*components.TransformComponent,
		*components.VisualComponent,
	](s.em)
	for _, id := range ids {
		kind, _ := ecs.GetComponent[*components.KindComponent](s.em, id)
		combatant, _ := ecs.GetComponent[*components.CombatantComponent](s.em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.em, id)

		if combatant.Destroyed || !visual.Live() {
			continue
		}

		switch kind.Kind {
		case components.KindPlayer:
			s.updatePlayer(id, combatant, transform, ticks)
		case components.KindAlien:
			s.updateAlien(combatant, transform, deltaTime, ticks)
		case components.KindMothership:
			s.updateMothership(id, combatant, transform, deltaTime, ticks)
		case components.KindPlayerBullet, components.KindAlienBullet, components.KindExplosion, components.KindBarrier:
			// 不是战斗单位
		}
	}
}

func (s *CombatantSystem) updatePlayer(id ecs.EntityID, c *components.CombatantComponent, t *components.TransformComponent, ticks float64) {
	control, ok := ecs.GetComponent[*components.PlayerControlComponent](s.em, id)
	if !ok || control.MoveAxis == 0 {
		return
	}
	x := t.Position.X() + control.MoveAxis*c.Speed*ticks
	t.Position[0] = utils.Clamp(x, control.MinX, control.MaxX)
	t.Position[1] = control.LaneY
}

func (s *CombatantSystem) updateAlien(c *components.CombatantComponent, t *components.TransformComponent, deltaTime, ticks float64) {
	ac := s.cfg.Alien

	t.Position[0] += c.Speed * c.Direction * ticks
	if math.Abs(t.Position.X()) > ac.EdgeX {
		c.Direction = -c.Direction
		t.Position[1] -= ac.Descent
	}

	c.BulletCooldown -= deltaTime
	if c.BulletCooldown <= 0 && s.rng.Float64() < ac.FireChance {
		s.queue.Push(events.SpawnAlienBullet(t.Position))
		s.queue.Push(events.PlaySound(events.SoundAlienShoot))
		c.BulletCooldown = ac.CooldownMin + s.rng.Float64()*ac.CooldownJitter
	}
}

func (s *CombatantSystem) updateMothership(id ecs.EntityID, c *components.CombatantComponent, t *components.TransformComponent, deltaTime, ticks float64) {
	mc := s.cfg.Mothership

	t.Position[0] += c.Speed * c.Direction * ticks
	if math.Abs(t.Position.X()) > mc.EdgeX {
		c.Direction = -c.Direction
	}

	c.BulletCooldown -= deltaTime
	if c.BulletCooldown > 0 {
		return
	}

	ms, ok := ecs.GetComponent[*components.MothershipComponent](s.em, id)
	if !ok {
		ms = &components.MothershipComponent{NextSpread: true}
		ecs.AddComponent(s.em, id, ms)
	}

	if ms.NextSpread {
		s.queue.Push(events.SpawnAlienBullet(t.Position.Add(mgl64.Vec3{-mc.SpreadOffsetX, mc.MuzzleOffsetY, 0})))
		s.queue.Push(events.SpawnAlienBullet(t.Position.Add(mgl64.Vec3{mc.SpreadOffsetX, mc.MuzzleOffsetY, 0})))
	} else {
		s.queue.Push(events.SpawnAlienBullet(t.Position.Add(mgl64.Vec3{0, mc.MuzzleOffsetY, 0})))
	}
	s.queue.Push(events.PlaySound(events.SoundAlienShoot))

	ms.NextSpread = !ms.NextSpread
	ms.Volleys++
	c.BulletCooldown = mc.Cooldown
}

// Hit 对战斗单位造成一次伤害
//
// 参数:
//   - id: 目标实体
//
// 返回:
//   - bool: 本次调用是否导致终结。目标不存在、不是战斗单位或已终结时返回 false
func (s *CombatantSystem) Hit(id ecs.EntityID) bool {
	combatant, ok := ecs.GetComponent[*components.CombatantComponent](s.em, id)
	if !ok || combatant.Destroyed {
		return false
	}
	kind, ok := ecs.GetComponent[*components.KindComponent](s.em, id)
	if !ok || !kind.Kind.IsCombatant() {
		return false
	}
	transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)

	combatant.Lives--
	if combatant.Lives > 0 {
		s.react(kind.Kind, transform)
		s.queue.Push(events.PlaySound(events.SoundHit))
		s.logger.Debug("combatant hit",
			zap.Uint64("entity", uint64(id)),
			zap.Stringer("kind", kind.Kind),
			zap.Int("lives", combatant.Lives))
		return false
	}

	combatant.Lives = 0
	combatant.Destroyed = true
	s.visuals.RemoveMain(id)

	pos := transform.Position
	if kind.Kind == components.KindMothership {
		preset := s.cfg.Explosions.MothershipDestroyed
		s.queue.Push(events.SpawnExplosion(pos, preset.Particles, preset.Size))
	}
	s.queue.Push(events.CombatantDestroyed(id, kind.Kind, pos))
	s.queue.Push(events.PlaySound(events.SoundExplosion))

	s.logger.Debug("combatant destroyed",
		zap.Uint64("entity", uint64(id)),
		zap.Stringer("kind", kind.Kind))
	return true
}

// react 非致命命中时的视觉反应
func (s *CombatantSystem) react(kind components.EntityKind, t *components.TransformComponent) {
	switch kind {
	case components.KindAlien:
		t.Rotation[0] += (s.rng.Float64() - 0.5) * s.cfg.Alien.HitJitter
	case components.KindPlayer:
		t.Rotation[0] += (s.rng.Float64() - 0.5) * s.cfg.Player.HitJitter
	case components.KindMothership:
		t.Rotation[2] += (s.rng.Float64() - 0.5) * s.cfg.Mothership.HitJitter
		preset := s.cfg.Explosions.MothershipHit
		s.queue.Push(events.SpawnExplosion(t.Position, preset.Particles, preset.Size))
	case components.KindPlayerBullet, components.KindAlienBullet, components.KindExplosion, components.KindBarrier:
	}
}
