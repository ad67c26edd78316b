package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
)

// HeadlessVisual 无界面渲染器中的一个可视对象
type HeadlessVisual struct {
	Kind    components.VisualKind
	Variant string
	State   VisualState
	Ready   bool
	Removed bool
}

// HeadlessRenderer 不绘制任何内容的渲染器
// 记录所有调用，用于测试和无界面运行（如服务器端回放）
type HeadlessRenderer struct {
	nextHandle components.VisualHandle
	visuals    map[components.VisualHandle]*HeadlessVisual

	// Failing 中的类别 SpawnVisual 返回 0，模拟资源加载失败
	Failing map[components.VisualKind]bool
	// Deferred 为 true 时新建的可视对象处于未就绪状态，需要调用 MarkReady
	Deferred bool

	SpawnCount  int
	RemoveCount int
}

// NewHeadlessRenderer 创建无界面渲染器
func NewHeadlessRenderer() *HeadlessRenderer {
	return &HeadlessRenderer{
		nextHandle: 1,
		visuals:    make(map[components.VisualHandle]*HeadlessVisual),
		Failing:    make(map[components.VisualKind]bool),
	}
}

// SpawnVisual 实现 Renderer
func (r *HeadlessRenderer) SpawnVisual(kind components.VisualKind, pos mgl64.Vec3, variant string) components.VisualHandle {
	if r.Failing[kind] {
		return 0
	}
	h := r.nextHandle
	r.nextHandle++
	r.visuals[h] = &HeadlessVisual{
		Kind:    kind,
		Variant: variant,
		State:   VisualState{Position: pos, Scale: 1, Alpha: 1},
		Ready:   !r.Deferred,
	}
	r.SpawnCount++
	return h
}

// IsReady 实现 Renderer
func (r *HeadlessRenderer) IsReady(h components.VisualHandle) bool {
	v, ok := r.visuals[h]
	return ok && v.Ready && !v.Removed
}

// SyncVisual 实现 Renderer
func (r *HeadlessRenderer) SyncVisual(h components.VisualHandle, state VisualState) {
	if v, ok := r.visuals[h]; ok && !v.Removed {
		v.State = state
	}
}

// RemoveVisual 实现 Renderer
func (r *HeadlessRenderer) RemoveVisual(h components.VisualHandle) {
	if v, ok := r.visuals[h]; ok && !v.Removed {
		v.Removed = true
		r.RemoveCount++
	}
}

// MarkReady 将所有未就绪的可视对象标记为就绪
func (r *HeadlessRenderer) MarkReady() {
	for _, v := range r.visuals {
		v.Ready = true
	}
}

// Visual 返回句柄对应的可视对象
func (r *HeadlessRenderer) Visual(h components.VisualHandle) (*HeadlessVisual, bool) {
	v, ok := r.visuals[h]
	return v, ok
}

// LiveCount 返回指定类别中未被移除的可视对象数量
func (r *HeadlessRenderer) LiveCount(kind components.VisualKind) int {
	n := 0
	for _, v := range r.visuals {
		if v.Kind == kind && !v.Removed {
			n++
		}
	}
	return n
}
