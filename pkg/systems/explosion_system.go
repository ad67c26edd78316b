package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/entities"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

// ExplosionSystem 生成并推进爆炸粒子
//
// 粒子时长以 60fps tick 计：每帧扣除 delta*TickRate。
// 最后 FadeTicks 个 tick 内透明度线性降到 0，缩放在整个寿命内从 1 线性降到 EndScale。
// 粒子集合为空的爆炸标记为 Disposed，由场景在帧末清理。
type ExplosionSystem struct {
	em       *ecs.EntityManager
	renderer game.Renderer
	cfg      *config.GameConfig
	rng      *rand.Rand
	logger   *zap.Logger
}

// NewExplosionSystem 创建爆炸系统
func NewExplosionSystem(em *ecs.EntityManager, renderer game.Renderer, cfg *config.GameConfig, rng *rand.Rand, logger *zap.Logger) *ExplosionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplosionSystem{
		em:       em,
		renderer: renderer,
		cfg:      cfg,
		rng:      rng,
		logger:   logger.Named("ExplosionSystem"),
	}
}

// Spawn 在指定位置生成一次爆炸
// 返回爆炸实体ID，创建失败时返回 0
func (s *ExplosionSystem) Spawn(pos mgl64.Vec3, particles int, size float64) ecs.EntityID {
	id, err := entities.NewExplosion(s.em, s.renderer, s.cfg, pos, particles, size, s.rng)
	if err != nil {
		s.logger.Warn("failed to spawn explosion", zap.Error(err))
		return 0
	}
	return id
}

// Update 推进所有爆炸的粒子
func (s *ExplosionSystem) Update(deltaTime float64) {
	xc := s.cfg.Explosions
	ticks := deltaTime * s.cfg.Simulation.TickRate

	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.em) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		if explosion.Disposed {
			continue
		}

		alive := explosion.Particles[:0]
		for _, p := range explosion.Particles {
			p.Duration -= ticks
			if p.Duration <= 0 {
				if p.Visual != 0 {
					s.renderer.RemoveVisual(p.Visual)
				}
				continue
			}

			progress := 1 - p.Duration/p.TotalDuration
			p.Alpha = utils.TailFade(p.Duration, xc.FadeTicks)
			p.Scale = utils.Lerp(1, xc.EndScale, progress)
			p.Position = p.Position.Add(p.MovementVector.Mul(p.Velocity * ticks))
			spin := p.RotationVelocity * ticks
			p.Rotation = p.Rotation.Add(mgl64.Vec3{spin, spin, spin})

			alive = append(alive, p)
		}
		// 清掉尾部残留，避免已释放粒子的句柄被再次引用
		for i := len(alive); i < len(explosion.Particles); i++ {
			explosion.Particles[i] = components.ExplosionParticle{}
		}
		explosion.Particles = alive

		if len(explosion.Particles) == 0 {
			explosion.Disposed = true
		}
	}
}

// HasNearby 判断是否已有未处置的爆炸位于 pos 的 radius 范围内
func (s *ExplosionSystem) HasNearby(pos mgl64.Vec3, radius float64) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.em) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		if explosion.Disposed {
			continue
		}
		if explosion.Origin.Sub(pos).Len() < radius {
			return true
		}
	}
	return false
}

// ActiveCount 返回未处置的爆炸数量
func (s *ExplosionSystem) ActiveCount() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.em) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		if !explosion.Disposed {
			n++
		}
	}
	return n
}
