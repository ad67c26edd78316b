package utils

// Lerp 线性插值
// 公式：a + (b-a)*t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将值限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TailFade 计算剩余时长对应的淡出系数
// 剩余时长不少于 window 时为 1，此后线性降到 0
//
// 示例：爆炸粒子 window=40（60fps 帧），剩余 20 帧时返回 0.5
func TailFade(remaining, window float64) float64 {
	if window <= 0 || remaining >= window {
		return 1
	}
	if remaining <= 0 {
		return 0
	}
	return remaining / window
}
