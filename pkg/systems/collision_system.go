package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/events"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

// CollisionSystem 在所有实体移动之后检测子弹命中
//
// 每颗子弹沿飞行方向发出一条固定长度的短射线（近似子弹厚度加单帧位移），
// 只处理射线上最近的命中。子弹按创建顺序处理：先玩家子弹，后外星人子弹。
// 本轮中已被终结的子弹和目标会被后续检测跳过。
type CollisionSystem struct {
	em          *ecs.EntityManager
	cfg         *config.GameConfig
	queue       *events.EventQueue
	combatants  *CombatantSystem
	projectiles *ProjectileSystem
	explosions  *ExplosionSystem
	visuals     *VisualSystem
	logger      *zap.Logger
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(
	em *ecs.EntityManager,
	cfg *config.GameConfig,
	queue *events.EventQueue,
	combatants *CombatantSystem,
	projectiles *ProjectileSystem,
	explosions *ExplosionSystem,
	visuals *VisualSystem,
	logger *zap.Logger,
) *CollisionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollisionSystem{
		em:          em,
		cfg:         cfg,
		queue:       queue,
		combatants:  combatants,
		projectiles: projectiles,
		explosions:  explosions,
		visuals:     visuals,
		logger:      logger.Named("CollisionSystem"),
	}
}

// rayHit 一次射线命中
type rayHit struct {
	target ecs.EntityID
	kind   components.EntityKind
	point  mgl64.Vec3
	dist   float64
}

// Update 执行一轮碰撞检测
func (s *CollisionSystem) Update() {
	bullets := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.TransformComponent,
		*components.VisualComponent,
	](s.em)

	// 玩家子弹 → 外星人、母舰、掩体
	s.resolve(bullets, components.SidePlayer, s.cfg.Explosions.PlayerBulletHit, func(k components.EntityKind) bool {
		return k == components.KindAlien || k == components.KindMothership || k == components.KindBarrier
	})

	// 外星人子弹 → 玩家、掩体
	s.resolve(bullets, components.SideAlien, s.cfg.Explosions.AlienBulletHit, func(k components.EntityKind) bool {
		return k == components.KindPlayer || k == components.KindBarrier
	})
}

func (s *CollisionSystem) resolve(bullets []ecs.EntityID, side components.Side, preset config.ExplosionPreset, targets func(components.EntityKind) bool) {
	for _, id := range bullets {
		projectile, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id)
		if projectile.Side != side || projectile.Destroyed || projectile.Disposed {
			continue
		}
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.em, id)
		if !visual.Live() {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)

		ray := utils.NewRay(transform.Position, TravelDirection(projectile, transform), 0, s.cfg.Collision.RayLength)
		hit, ok := s.nearestHit(ray, targets)
		if !ok {
			continue
		}

		if !s.explosionNear(hit.point) {
			s.queue.Push(events.SpawnExplosion(hit.point, preset.Particles, preset.Size))
		}
		s.projectiles.DestroyProjectile(id)
		s.handleCollision(hit)

		s.logger.Debug("bullet hit",
			zap.Uint64("bullet", uint64(id)),
			zap.Stringer("side", side),
			zap.Uint64("target", uint64(hit.target)),
			zap.Stringer("kind", hit.kind))
	}
}

// nearestHit 在所有可命中目标的碰撞盒中找出射线上最近的交点
func (s *CollisionSystem) nearestHit(ray utils.Ray, accept func(components.EntityKind) bool) (rayHit, bool) {
	best := rayHit{dist: math.Inf(1)}
	found := false

	ids := ecs.GetEntitiesWith4[
		*components.KindComponent,
		*components.HitboxComponent,
		*components.TransformComponent,
		*components.VisualComponent,
	](s.em)

	for _, id := range ids {
		kind, _ := ecs.GetComponent[*components.KindComponent](s.em, id)
		if !accept(kind.Kind) || !s.targetable(id, kind.Kind) {
			continue
		}
		hitbox, _ := ecs.GetComponent[*components.HitboxComponent](s.em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		scale := scaleOf(transform)

		for _, part := range hitbox.Parts {
			lo := transform.Position.Add(part.Min.Mul(scale))
			hi := transform.Position.Add(part.Max.Mul(scale))
			if t, ok := ray.IntersectAABB(lo, hi); ok && t < best.dist {
				best = rayHit{target: id, kind: kind.Kind, point: ray.At(t), dist: t}
				found = true
			}
		}
	}
	return best, found
}

// targetable 目标必须有存活的可视对象且尚未终结
func (s *CollisionSystem) targetable(id ecs.EntityID, kind components.EntityKind) bool {
	visual, _ := ecs.GetComponent[*components.VisualComponent](s.em, id)
	if !visual.Live() {
		return false
	}
	switch kind {
	case components.KindPlayer, components.KindAlien, components.KindMothership:
		c, ok := ecs.GetComponent[*components.CombatantComponent](s.em, id)
		return ok && !c.Destroyed
	case components.KindBarrier:
		b, ok := ecs.GetComponent[*components.BarrierComponent](s.em, id)
		return ok && !b.Destroyed
	case components.KindPlayerBullet, components.KindAlienBullet, components.KindExplosion:
		return false
	default:
		return false
	}
}

// explosionNear 命中点附近是否已有爆炸（包括本帧已请求但尚未生成的）
func (s *CollisionSystem) explosionNear(point mgl64.Vec3) bool {
	radius := s.cfg.Collision.DedupRadius
	if s.explosions.HasNearby(point, radius) {
		return true
	}
	near := false
	s.queue.Pending(func(ev events.GameEvent) bool {
		if ev.Type == events.EventSpawnExplosion && ev.Position.Sub(point).Len() < radius {
			near = true
			return false
		}
		return true
	})
	return near
}

// handleCollision 按目标种类分派命中结果
func (s *CollisionSystem) handleCollision(hit rayHit) {
	switch hit.kind {
	case components.KindPlayer, components.KindAlien, components.KindMothership:
		s.combatants.Hit(hit.target)
	case components.KindBarrier:
		s.destroyBarrier(hit.target)
	case components.KindPlayerBullet, components.KindAlienBullet, components.KindExplosion:
		// 子弹和爆炸不会成为射线目标
	}
}

// destroyBarrier 掩体被任意子弹击中即销毁，不经过 Hit 状态机
func (s *CollisionSystem) destroyBarrier(id ecs.EntityID) {
	barrier, ok := ecs.GetComponent[*components.BarrierComponent](s.em, id)
	if !ok || barrier.Destroyed {
		return
	}
	barrier.Destroyed = true
	s.visuals.RemoveMain(id)
	s.queue.Push(events.BarrierDestroyed(id))
}
