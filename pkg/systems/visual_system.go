package systems

import (
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/ecs"
	"github.com/gonewx/invaders/pkg/game"
	"go.uber.org/zap"
)

// VisualSystem 负责实体与渲染协作方之间的同步
//
//   - PollReady：在帧首查询异步加载的可视对象是否就绪
//   - Sync：在帧末把位置、旋转、透明度推送给渲染方
//   - RemoveMain / Release：移除可视对象，重复调用是安全的
type VisualSystem struct {
	em       *ecs.EntityManager
	renderer game.Renderer
	logger   *zap.Logger
}

// NewVisualSystem 创建可视同步系统
func NewVisualSystem(em *ecs.EntityManager, renderer game.Renderer, logger *zap.Logger) *VisualSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisualSystem{
		em:       em,
		renderer: renderer,
		logger:   logger.Named("VisualSystem"),
	}
}

// PollReady 更新所有未就绪可视对象的就绪状态
// 句柄为 0 的实体永远不会就绪
func (s *VisualSystem) PollReady() {
	for _, id := range ecs.GetEntitiesWith1[*components.VisualComponent](s.em) {
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.em, id)
		if visual.Ready || visual.Removed || visual.Handle == 0 {
			continue
		}
		if s.renderer.IsReady(visual.Handle) {
			visual.Ready = true
			s.logger.Debug("visual ready",
				zap.Uint64("entity", uint64(id)),
				zap.Stringer("kind", visual.Kind))
		}
	}
}

// Sync 把所有存活实体的状态推送给渲染方
func (s *VisualSystem) Sync() {
	for _, id := range ecs.GetEntitiesWith2[*components.VisualComponent, *components.TransformComponent](s.em) {
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)

		if visual.Live() {
			s.renderer.SyncVisual(visual.Handle, game.VisualState{
				Position: transform.Position,
				Rotation: transform.Rotation,
				Scale:    scaleOf(transform),
				Alpha:    1,
			})
		}

		if visual.TailHandle != 0 {
			if tail, ok := ecs.GetComponent[*components.TailComponent](s.em, id); ok {
				s.renderer.SyncVisual(visual.TailHandle, game.VisualState{
					Scale: 1,
					Alpha: 1,
					Tail:  tail.Particles[:],
				})
			}
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.em) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		for i := range explosion.Particles {
			p := &explosion.Particles[i]
			if p.Visual == 0 {
				continue
			}
			s.renderer.SyncVisual(p.Visual, game.VisualState{
				Position: p.Position,
				Rotation: p.Rotation,
				Scale:    p.Scale,
				Alpha:    p.Alpha,
			})
		}
	}
}

// RemoveMain 移除实体的主体可视对象，拖尾保持不变
func (s *VisualSystem) RemoveMain(id ecs.EntityID) {
	visual, ok := ecs.GetComponent[*components.VisualComponent](s.em, id)
	if !ok || visual.Removed {
		return
	}
	visual.Removed = true
	if visual.Handle != 0 {
		s.renderer.RemoveVisual(visual.Handle)
	}
}

// Release 释放实体持有的全部可视对象（主体、拖尾、爆炸粒子）
// 在实体被真正删除前调用，组件此时仍可读取
func (s *VisualSystem) Release(id ecs.EntityID) {
	s.RemoveMain(id)

	if visual, ok := ecs.GetComponent[*components.VisualComponent](s.em, id); ok && visual.TailHandle != 0 {
		s.renderer.RemoveVisual(visual.TailHandle)
		visual.TailHandle = 0
	}

	if explosion, ok := ecs.GetComponent[*components.ExplosionComponent](s.em, id); ok {
		for i := range explosion.Particles {
			if h := explosion.Particles[i].Visual; h != 0 {
				s.renderer.RemoveVisual(h)
				explosion.Particles[i].Visual = 0
			}
		}
	}
}

// scaleOf 返回变换的缩放，0 视为 1
func scaleOf(t *components.TransformComponent) float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}
