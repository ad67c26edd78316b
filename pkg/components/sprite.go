package components

// VisualHandle 渲染协作方返回的不透明句柄
// 0 表示没有可用的可视对象（加载失败或尚未创建）
type VisualHandle uint64

// VisualKind 可视对象类别，渲染协作方据此决定模型和材质
type VisualKind int

const (
	VisualPlayer VisualKind = iota
	VisualAlien
	VisualMothership
	VisualPlayerBullet
	VisualAlienBullet
	VisualBulletTail
	VisualExplosionParticle
	VisualBarrier
)

// String 返回类别名称
func (k VisualKind) String() string {
	switch k {
	case VisualPlayer:
		return "player"
	case VisualAlien:
		return "alien"
	case VisualMothership:
		return "mothership"
	case VisualPlayerBullet:
		return "playerbullet"
	case VisualAlienBullet:
		return "alienbullet"
	case VisualBulletTail:
		return "bullettail"
	case VisualExplosionParticle:
		return "explosionparticle"
	case VisualBarrier:
		return "barrier"
	default:
		return "unknown"
	}
}

// VisualComponent 实体与其可视对象的绑定
//
// 可视对象可能异步加载：Ready 为 false 时实体不移动、不参与碰撞。
// Removed 为 true 表示主体已从场景移除（如外星人子弹命中后，拖尾仍在）。
type VisualComponent struct {
	Kind       VisualKind
	Handle     VisualHandle
	TailHandle VisualHandle // 仅外星人子弹使用
	Ready      bool
	Removed    bool
}

// Live 判断可视对象是否已就绪且仍在场景中
func (v *VisualComponent) Live() bool {
	return v.Handle != 0 && v.Ready && !v.Removed
}
