package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

// ProjectileSystem 推进子弹并管理其生命周期
//
// 子弹有两条终结路径：飞出边界（脱靶）和命中目标，两者都只会设置一次 Destroyed。
// 玩家子弹在 Destroyed 时立即 Disposed；外星人子弹要等拖尾粒子全部消散。
type ProjectileSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameConfig
	visuals *VisualSystem
	logger  *zap.Logger
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(em *ecs.EntityManager, cfg *config.GameConfig, visuals *VisualSystem, logger *zap.Logger) *ProjectileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectileSystem{
		em:      em,
		cfg:     cfg,
		visuals: visuals,
		logger:  logger.Named("ProjectileSystem"),
	}
}

// Update 推进所有未处置的子弹
func (s *ProjectileSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.TransformComponent,
		*components.VisualComponent,
	](s.em)

	for _, id := range ids {
		projectile, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id)
		if projectile.Disposed {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.em, id)
		tail, hasTail := ecs.GetComponent[*components.TailComponent](s.em, id)

		if !projectile.Destroyed {
			switch {
			case visual.Handle == 0:
				// 可视对象加载失败，子弹永远不会出现，直接走脱靶路径
				s.DestroyProjectile(id)
			case visual.Live():
				transform.Position = transform.Position.Add(s.displacement(projectile, transform, deltaTime))
				if hasTail {
					tail.Accumulate(deltaTime, transform.Position)
				}
				if projectile.OutOfBounds(transform.Position.Y()) {
					s.DestroyProjectile(id)
				}
			}
		}

		if hasTail {
			tail.Decay(deltaTime)
		}

		if projectile.Destroyed && (!hasTail || tail.Active == 0) {
			projectile.Disposed = true
		}
	}
}

// displacement 计算本帧位移
// 玩家子弹以"每 tick"速度竖直上升；外星人子弹以每秒速度沿自身朝向飞行
func (s *ProjectileSystem) displacement(p *components.ProjectileComponent, t *components.TransformComponent, deltaTime float64) mgl64.Vec3 {
	if p.Side == components.SidePlayer {
		return mgl64.Vec3{0, p.Speed * deltaTime * s.cfg.Simulation.TickRate, 0}
	}
	return utils.RotateZ(mgl64.Vec3{0, p.Speed, 0}, t.Rotation.Z()).Mul(deltaTime)
}

// DestroyProjectile 终结子弹（命中或脱靶），重复调用是空操作
// 主体可视对象立即移除；拖尾继续衰减直到消散
func (s *ProjectileSystem) DestroyProjectile(id ecs.EntityID) {
	projectile, ok := ecs.GetComponent[*components.ProjectileComponent](s.em, id)
	if !ok || projectile.Destroyed {
		return
	}
	projectile.Destroyed = true
	s.visuals.RemoveMain(id)

	tail, hasTail := ecs.GetComponent[*components.TailComponent](s.em, id)
	if !hasTail || tail.Active == 0 {
		projectile.Disposed = true
	}
}

// TravelDirection 返回子弹当前的飞行方向（单位向量）
func TravelDirection(p *components.ProjectileComponent, t *components.TransformComponent) mgl64.Vec3 {
	if p.Side == components.SidePlayer {
		return mgl64.Vec3{0, 1, 0}
	}
	return utils.RotateZ(mgl64.Vec3{0, -1, 0}, t.Rotation.Z())
}
