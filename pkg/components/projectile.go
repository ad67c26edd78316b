package components

// ProjectileComponent 子弹状态
//
// 生命周期：
//   - Destroyed：命中或飞出边界（"命中"与"脱靶"两条路径都只设置一次）
//   - Disposed：可以从集合中移除。玩家子弹在 Destroyed 的同一刻 Disposed；
//     外星人子弹要等拖尾粒子全部消散后才 Disposed
type ProjectileComponent struct {
	Side      Side
	Speed     float64 // 带符号速度，正值向上
	Bound     float64 // 越界阈值：玩家子弹 y > Bound，外星人子弹 y < Bound
	Destroyed bool
	Disposed  bool
}

// OutOfBounds 判断给定高度是否越过该子弹的边界
func (p *ProjectileComponent) OutOfBounds(y float64) bool {
	if p.Side == SidePlayer {
		return y > p.Bound
	}
	return y < p.Bound
}
