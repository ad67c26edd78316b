package utils

// Cooldown 简单的冷却计时器，用于宿主侧的开火限速
type Cooldown struct {
	Interval  float64 // 两次触发之间的最短间隔（秒）
	remaining float64
}

// Tick 推进计时
func (c *Cooldown) Tick(deltaTime float64) {
	if c.remaining > 0 {
		c.remaining -= deltaTime
	}
}

// Ready 冷却是否结束
func (c *Cooldown) Ready() bool {
	return c.remaining <= 0
}

// TryTrigger 冷却结束时触发并重新计时，返回是否触发成功
func (c *Cooldown) TryTrigger() bool {
	if !c.Ready() {
		return false
	}
	c.remaining = c.Interval
	return true
}

// Reset 立即结束冷却
func (c *Cooldown) Reset() {
	c.remaining = 0
}
