package entities

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/game"
)

// attachVisual 向渲染协作方请求可视对象并挂到实体上
// 句柄为 0（加载失败）时实体仍然创建，只是永远不会就绪
func attachVisual(em *ecs.EntityManager, r game.Renderer, id ecs.EntityID, kind components.VisualKind, pos mgl64.Vec3, variant string) *components.VisualComponent {
	h := r.SpawnVisual(kind, pos, variant)
	visual := &components.VisualComponent{
		Kind:   kind,
		Handle: h,
		Ready:  h != 0 && r.IsReady(h),
	}
	ecs.AddComponent(em, id, visual)
	return visual
}

// boxHitbox 由半尺寸生成以原点为中心的单个碰撞盒
func boxHitbox(hc config.HitboxConfig) *components.HitboxComponent {
	half := mgl64.Vec3{hc.HalfWidth, hc.HalfHeight, hc.HalfDepth}
	return &components.HitboxComponent{
		Parts: []components.HitPart{{Min: half.Mul(-1), Max: half}},
	}
}
