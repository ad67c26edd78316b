package components

// CombatantComponent 存储可被击中实体的生命与移动信息
// 用于玩家、外星人和母舰
//
// 不变量：
//   - Lives 单调不增，不会被观察到为负数
//   - Destroyed 一旦为 true 就不再改变，Hit 状态机对其后的调用全部为空操作
type CombatantComponent struct {
	Lives     int     // 剩余生命
	MaxLives  int     // 初始生命
	Speed     float64 // 每 1/60 秒移动的距离
	Direction float64 // 水平方向，-1 或 +1
	Destroyed bool    // 是否已进入终结状态

	// BulletCooldown 开火冷却倒计时（秒），每帧减去 delta，<= 0 时可以开火
	BulletCooldown float64
}

// IsAlive 判断战斗单位是否仍存活
func (c *CombatantComponent) IsAlive() bool {
	return !c.Destroyed && c.Lives > 0
}

// PlayerControlComponent 玩家输入与航道约束
// 输入由宿主写入，CombatantSystem 每帧读取
type PlayerControlComponent struct {
	MoveAxis float64 // 水平输入，范围 [-1, 1]
	MinX     float64 // 航道左边界
	MaxX     float64 // 航道右边界
	LaneY    float64 // 航道所在高度
}

// MothershipComponent 母舰专用状态
type MothershipComponent struct {
	NextSpread bool // 下一次开火是否为双发散射（与单发居中交替）
	Volleys    int  // 已开火次数
}

// BarrierComponent 掩体状态
type BarrierComponent struct {
	Destroyed bool
}
