package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
)

// VisualState 每帧同步给渲染协作方的可视状态
type VisualState struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
	Alpha    float64

	// Tail 仅外星人子弹的拖尾使用（只读视图，渲染方不得保留）
	Tail []components.TailParticle
}

// Renderer 渲染协作方
//
// 模拟核心只通过此接口与渲染层交互：
//   - SpawnVisual 返回不透明句柄，0 表示加载失败，实体将永远不参与移动和碰撞
//   - 可视对象可以异步加载，IsReady 为 false 期间实体保持静止
//   - RemoveVisual 对同一句柄重复调用必须是安全的
type Renderer interface {
	SpawnVisual(kind components.VisualKind, pos mgl64.Vec3, variant string) components.VisualHandle
	IsReady(handle components.VisualHandle) bool
	SyncVisual(handle components.VisualHandle, state VisualState)
	RemoveVisual(handle components.VisualHandle)
}
