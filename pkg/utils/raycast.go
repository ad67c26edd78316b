package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray 有限长度射线
// 用于子弹的短程前向检测：长度约等于子弹厚度加单帧位移，而不是无限远
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // 单位向量
	Near      float64
	Far       float64
}

// NewRay 创建射线，方向会被归一化
// 零向量方向返回的射线不会命中任何东西
func NewRay(origin, direction mgl64.Vec3, near, far float64) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction, Near: near, Far: far}
}

// At 返回射线上距离为 t 的点
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectAABB 射线与轴对齐包围盒求交（slab 算法）
//
// 参数:
//   - min, max: 包围盒的世界坐标角点
//
// 返回:
//   - float64: 最近交点距离；起点在盒内时为 Near
//   - bool: 是否在 [Near, Far] 内相交
func (r Ray) IntersectAABB(min, max mgl64.Vec3) (float64, bool) {
	if r.Direction.Len() == 0 {
		return 0, false
	}

	tEnter := math.Inf(-1)
	tExit := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Direction[axis]
		lo, hi := min[axis], max[axis]

		if math.Abs(d) < 1e-12 {
			// 平行于该轴的平板：起点不在平板内则不可能相交
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 0, false
		}
	}

	if tExit < r.Near || tEnter > r.Far {
		return 0, false
	}
	if tEnter < r.Near {
		tEnter = r.Near
	}
	return tEnter, true
}

// RotateZ 将向量绕 Z 轴旋转 angle 弧度
func RotateZ(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1}).Rotate(v)
}
