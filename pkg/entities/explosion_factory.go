package entities

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/game"
)

// NewExplosion 创建一次粒子爆发
//
// 每个粒子沿随机单位向量飞散，初始位置已沿该向量偏移 velocity*numParticles/OffsetDivisor，
// 因此粒子越多，爆炸的初始半径越大。
//
// 参数:
//   - origin: 爆炸中心
//   - numParticles: 粒子数量，<= 0 时创建一个空爆炸（下一帧即被清理）
//   - maxSize: 粒子尺寸基准，实际边长为 maxSize/SizeDivisor
//   - rng: 随机数源
func NewExplosion(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig, origin mgl64.Vec3, numParticles int, maxSize float64, rng *rand.Rand) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}
	if rng == nil {
		return 0, fmt.Errorf("random source cannot be nil")
	}

	xc := cfg.Explosions
	explosion := &components.ExplosionComponent{
		Origin:    origin,
		MaxSize:   maxSize,
		Particles: make([]components.ExplosionParticle, 0, max(numParticles, 0)),
	}

	size := maxSize / xc.SizeDivisor
	for i := 0; i < numParticles; i++ {
		velocity := rng.Float64() * xc.MaxVelocity
		movement := randomUnitVector(rng)
		pos := origin.Add(movement.Mul(velocity * float64(numParticles) / xc.OffsetDivisor))

		explosion.Particles = append(explosion.Particles, components.ExplosionParticle{
			Position:       pos,
			MovementVector: movement,
			Rotation: mgl64.Vec3{
				rng.Float64() * 2 * math.Pi,
				rng.Float64() * 2 * math.Pi,
				rng.Float64() * 2 * math.Pi,
			},
			Velocity:         velocity,
			RotationVelocity: rng.Float64() * xc.MaxRotationVelocity,
			Duration:         xc.ParticleDuration,
			TotalDuration:    xc.ParticleDuration,
			Size:             size,
			Scale:            1,
			Alpha:            1,
			Visual:           r.SpawnVisual(components.VisualExplosionParticle, pos, ""),
		})
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindExplosion})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: origin, Scale: 1})
	ecs.AddComponent(em, id, explosion)

	return id, nil
}

// randomUnitVector 各分量取 [-0.5, 0.5) 后归一化
// 极小概率出现零向量，此时退化为竖直向上
func randomUnitVector(rng *rand.Rand) mgl64.Vec3 {
	v := mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
	if v.Len() < 1e-9 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
