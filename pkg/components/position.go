package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 存储实体的世界变换
// 坐标系：X 向右，Y 向上，Z 指向镜头；单位与原场景一致
type TransformComponent struct {
	Position mgl64.Vec3 // 世界坐标
	Rotation mgl64.Vec3 // 欧拉角（弧度），外星人子弹只使用 Z 分量表示偏角
	Scale    float64    // 统一缩放，0 视为 1
}
