package game

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
)

// VisualEntry 宿主渲染器中的一个可视对象
type VisualEntry struct {
	Handle  components.VisualHandle
	Kind    components.VisualKind
	Variant string
	State   VisualState

	tail [components.MaxTailParticles]components.TailParticle
}

// VisualTable 宿主渲染器共用的可视对象表
//
// 可视对象由程序绘制，创建即就绪。移除的对象立即从表中删除。
// SyncVisual 收到的拖尾会被复制，不持有调用方的切片。
type VisualTable struct {
	next    components.VisualHandle
	entries map[components.VisualHandle]*VisualEntry
}

// NewVisualTable 创建空表
func NewVisualTable() *VisualTable {
	return &VisualTable{
		next:    1,
		entries: make(map[components.VisualHandle]*VisualEntry),
	}
}

// SpawnVisual 实现 Renderer
func (t *VisualTable) SpawnVisual(kind components.VisualKind, pos mgl64.Vec3, variant string) components.VisualHandle {
	h := t.next
	t.next++
	t.entries[h] = &VisualEntry{
		Handle:  h,
		Kind:    kind,
		Variant: variant,
		State:   VisualState{Position: pos, Scale: 1, Alpha: 1},
	}
	return h
}

// IsReady 实现 Renderer
func (t *VisualTable) IsReady(h components.VisualHandle) bool {
	_, ok := t.entries[h]
	return ok
}

// SyncVisual 实现 Renderer
func (t *VisualTable) SyncVisual(h components.VisualHandle, state VisualState) {
	e, ok := t.entries[h]
	if !ok {
		return
	}
	n := copy(e.tail[:], state.Tail)
	state.Tail = e.tail[:n]
	e.State = state
}

// RemoveVisual 实现 Renderer
func (t *VisualTable) RemoveVisual(h components.VisualHandle) {
	delete(t.entries, h)
}

// Len 当前可视对象数量
func (t *VisualTable) Len() int {
	return len(t.entries)
}

// Each 按类别、再按创建顺序遍历所有可视对象
// 类别顺序即绘制层次：拖尾和掩体在下，爆炸粒子在最上
func (t *VisualTable) Each(fn func(e *VisualEntry)) {
	list := make([]*VisualEntry, 0, len(t.entries))
	for _, e := range t.entries {
		list = append(list, e)
	}
	slices.SortFunc(list, func(a, b *VisualEntry) int {
		if la, lb := drawLayer(a.Kind), drawLayer(b.Kind); la != lb {
			return la - lb
		}
		return int(a.Handle) - int(b.Handle)
	})
	for _, e := range list {
		fn(e)
	}
}

func drawLayer(kind components.VisualKind) int {
	switch kind {
	case components.VisualBulletTail:
		return 0
	case components.VisualBarrier:
		return 1
	case components.VisualPlayer, components.VisualAlien, components.VisualMothership:
		return 2
	case components.VisualPlayerBullet, components.VisualAlienBullet:
		return 3
	case components.VisualExplosionParticle:
		return 4
	default:
		return 2
	}
}
