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

// NewPlayer 创建玩家飞船实体
// 玩家位于航道中央，生命数来自配置
//
// 参数:
//   - em: 实体管理器
//   - r: 渲染协作方
//   - cfg: 游戏配置
//
// 返回:
//   - ecs.EntityID: 玩家实体ID，失败时返回 0
//   - error: 参数为空时返回错误
func NewPlayer(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}

	pc := cfg.Player
	pos := mgl64.Vec3{(pc.MinX + pc.MaxX) / 2, pc.LaneY, 0}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindPlayer})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Scale: 1})
	ecs.AddComponent(em, id, &components.CombatantComponent{
		Lives:     pc.Lives,
		MaxLives:  pc.Lives,
		Speed:     pc.Speed,
		Direction: 1,
	})
	ecs.AddComponent(em, id, &components.PlayerControlComponent{
		MinX:  pc.MinX,
		MaxX:  pc.MaxX,
		LaneY: pc.LaneY,
	})
	ecs.AddComponent(em, id, boxHitbox(pc.Hitbox))
	attachVisual(em, r, id, components.VisualPlayer, pos, "")

	return id, nil
}

// NewAlien 创建普通外星人实体
//
// 参数:
//   - pos: 网格槽位坐标
//   - variant: 外星人类型（如 "Alien_1"），决定外观
func NewAlien(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig, pos mgl64.Vec3, variant string) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}

	ac := cfg.Alien
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindAlien, Variant: variant})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Scale: 1})
	ecs.AddComponent(em, id, &components.CombatantComponent{
		Lives:     ac.Lives,
		MaxLives:  ac.Lives,
		Speed:     ac.Speed,
		Direction: 1,
	})
	ecs.AddComponent(em, id, boxHitbox(ac.Hitbox))
	attachVisual(em, r, id, components.VisualAlien, pos, variant)

	return id, nil
}

// NewMothership 创建母舰实体
// 母舰从随机一侧的屏幕边缘出现，先开火的是双发散射
func NewMothership(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig, rng *rand.Rand) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}
	if rng == nil {
		return 0, fmt.Errorf("random source cannot be nil")
	}

	mc := cfg.Mothership
	direction := -1.0
	if rng.Float64() > 0.5 {
		direction = 1
	}
	pos := mgl64.Vec3{direction * mc.SpawnX, mc.SpawnY, 0}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindMothership})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Scale: 1})
	ecs.AddComponent(em, id, &components.CombatantComponent{
		Lives:     mc.Lives,
		MaxLives:  mc.Lives,
		Speed:     mc.Speed,
		Direction: direction,
	})
	ecs.AddComponent(em, id, &components.MothershipComponent{NextSpread: true})
	ecs.AddComponent(em, id, mothershipHitbox(mc.Hitbox))
	attachVisual(em, r, id, components.VisualMothership, pos, "")

	return id, nil
}

// mothershipHitbox 母舰由船体和顶部舱室两部分组成
func mothershipHitbox(hc config.HitboxConfig) *components.HitboxComponent {
	hull := components.HitPart{
		Min: mgl64.Vec3{-hc.HalfWidth, -hc.HalfHeight, -hc.HalfDepth},
		Max: mgl64.Vec3{hc.HalfWidth, 0, hc.HalfDepth},
	}
	dome := components.HitPart{
		Min: mgl64.Vec3{-hc.HalfWidth / 2, 0, -hc.HalfDepth / 2},
		Max: mgl64.Vec3{hc.HalfWidth / 2, hc.HalfHeight, hc.HalfDepth / 2},
	}
	return &components.HitboxComponent{Parts: []components.HitPart{hull, dome}}
}

// NewBarrier 创建掩体实体
func NewBarrier(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig, placement config.BarrierPlacement) (ecs.EntityID, error) {
	if err := checkDeps(em, r, cfg); err != nil {
		return 0, err
	}

	pos := mgl64.Vec3{placement.X, placement.Y, 0}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindBarrier})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Scale: 1})
	ecs.AddComponent(em, id, &components.BarrierComponent{})
	ecs.AddComponent(em, id, boxHitbox(cfg.Barriers.Hitbox))
	attachVisual(em, r, id, components.VisualBarrier, pos, "")

	return id, nil
}

func checkDeps(em *ecs.EntityManager, r game.Renderer, cfg *config.GameConfig) error {
	if em == nil {
		return fmt.Errorf("entity manager cannot be nil")
	}
	if r == nil {
		return fmt.Errorf("renderer cannot be nil")
	}
	if cfg == nil {
		return fmt.Errorf("game config cannot be nil")
	}
	return nil
}
