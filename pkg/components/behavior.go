package components

import "fmt"

// EntityKind 定义实体的种类
// 这是一个封闭枚举：所有按种类分派的逻辑（碰撞处理、死亡结算、渲染）
// 都使用 switch 覆盖全部取值，新增种类时编译期和测试期即可发现遗漏
type EntityKind int

const (
	// KindPlayer 玩家飞船：在水平航道内移动，被击中扣命
	KindPlayer EntityKind = iota
	// KindAlien 普通外星人：3x5 网格成波出现，左右移动，触边下降一行
	KindAlien
	// KindMothership 母舰：一波外星人被清空后出现，高耐久、高分值
	KindMothership
	// KindPlayerBullet 玩家子弹：竖直向上飞行
	KindPlayerBullet
	// KindAlienBullet 外星人子弹：带随机偏角飞行，拖尾粒子
	KindAlienBullet
	// KindExplosion 爆炸：纯视觉粒子爆发，粒子全部消散后自动销毁
	KindExplosion
	// KindBarrier 掩体：被任意子弹击中即销毁（不走 Hit 状态机）
	KindBarrier
)

// String 返回种类名称（用于日志）
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAlien:
		return "alien"
	case KindMothership:
		return "mothership"
	case KindPlayerBullet:
		return "playerbullet"
	case KindAlienBullet:
		return "alienbullet"
	case KindExplosion:
		return "explosion"
	case KindBarrier:
		return "barrier"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// IsCombatant 判断该种类是否拥有生命值并走 Hit 状态机
func (k EntityKind) IsCombatant() bool {
	switch k {
	case KindPlayer, KindAlien, KindMothership:
		return true
	case KindPlayerBullet, KindAlienBullet, KindExplosion, KindBarrier:
		return false
	default:
		return false
	}
}

// Side 表示子弹所属阵营
type Side int

const (
	// SidePlayer 玩家阵营，只能命中外星人、母舰和掩体
	SidePlayer Side = iota
	// SideAlien 外星人阵营，只能命中玩家和掩体
	SideAlien
)

// String 返回阵营名称
func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "alien"
}

// KindComponent 标识实体的种类
// 此组件用于让各系统识别实体应执行何种逻辑
type KindComponent struct {
	Kind    EntityKind // 实体种类
	Variant string     // 外观变体（如外星人类型 "Alien_2"），由渲染协作方解释
}
