package components

import "github.com/go-gl/mathgl/mgl64"

// HitPart 一个轴对齐的碰撞盒，坐标相对于实体位置（未缩放）
// 一个实体可以由多个部件组成，对应模型的多个子网格
type HitPart struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// HitboxComponent 定义实体参与射线检测的几何体
// 用于碰撞系统检测子弹射线与目标的相交（如玩家子弹与外星人）
type HitboxComponent struct {
	Parts []HitPart
}
