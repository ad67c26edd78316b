package entities

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/game"
)

// NewPlayerBullet 创建玩家子弹实体
// 子弹出现在发射点上方 Offset 处，竖直向上飞行
//
// 参数:
//   - origin: 发射点（通常是玩家飞船位置）
//
// 返回:
//   - ecs.EntityID: 子弹实体ID，失败时返回 0
//   - error: 参数为空时返回错误
func NewPlayerBullet(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig, origin mgl64.Vec3) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}

	bc := cfg.PlayerBullet
	pos := origin.Add(mgl64.Vec3{0, bc.Offset, 0})

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindPlayerBullet})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Scale: 1})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Side:  components.SidePlayer,
		Speed: bc.Speed,
		Bound: bc.MaxY,
	})
	attachVisual(em, r, id, components.VisualPlayerBullet, pos, "")

	return id, nil
}

// NewAlienBullet 创建外星人子弹实体
// 子弹带有 ±Arc/2 的随机偏角，并附带拖尾发射器
func NewAlienBullet(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig, origin mgl64.Vec3, rng *rand.Rand) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}
	if rng == nil {
		return 0, fmt.Errorf("random source cannot be nil")
	}

	bc := cfg.AlienBullet
	pos := origin.Add(mgl64.Vec3{0, bc.Offset, 0})
	tilt := rng.Float64()*bc.Arc - bc.Arc/2

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindAlienBullet})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pos,
		Rotation: mgl64.Vec3{0, 0, tilt},
		Scale:    1,
	})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Side:  components.SideAlien,
		Speed: bc.Speed,
		Bound: bc.MinY,
	})
	ecs.AddComponent(em, id, &components.TailComponent{
		SpawnInterval: 1 / bc.TailSpawnRate,
		Lifespan:      bc.TailLifespan,
		FadeFraction:  bc.TailFadeFraction,
	})

	visual := attachVisual(em, r, id, components.VisualAlienBullet, pos, "")
	visual.TailHandle = r.SpawnVisual(components.VisualBulletTail, pos, "")

	return id, nil
}
