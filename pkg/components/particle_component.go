package components

import "github.com/go-gl/mathgl/mgl64"

// ExplosionParticle 爆炸中的单个粒子
// 时长以"60fps 帧"为单位：每帧扣除 delta*60
type ExplosionParticle struct {
	Position         mgl64.Vec3
	Rotation         mgl64.Vec3
	MovementVector   mgl64.Vec3 // 单位向量
	Velocity         float64    // 每 60fps 帧沿 MovementVector 移动的距离
	RotationVelocity float64    // 每 60fps 帧三个轴各自增加的角度（弧度）
	Duration         float64    // 剩余时长
	TotalDuration    float64
	Size             float64 // 粒子边长
	Scale            float64 // 由 1.0 线性缩小到 0.3
	Alpha            float64
	Visual           VisualHandle
}

// ExplosionComponent 一次粒子爆发
// 粒子集合为空时 Disposed 置为 true，由场景在帧末清理
type ExplosionComponent struct {
	Origin    mgl64.Vec3 // 爆炸中心，用于去重判断
	MaxSize   float64
	Particles []ExplosionParticle
	Disposed  bool
}
