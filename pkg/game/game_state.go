package game

import "github.com/gonewx/invaders/pkg/ecs"

// GameState 一局游戏的全局状态
// 每个 BattleScene 持有一个实例，只由场景在事件分发阶段修改
type GameState struct {
	Score    int  // 当前得分，单调不减
	Wave     int  // 当前波次，从 1 开始
	GameOver bool // 为 true 时场景不再推进任何更新

	Player     ecs.EntityID // 玩家实体，0 表示不存在
	Mothership ecs.EntityID // 母舰实体，0 表示当前没有母舰
}

// NewGameState 创建初始状态
func NewGameState() *GameState {
	return &GameState{}
}

// AddScore 增加得分，非正数被忽略
// 返回更新后的总分
func (gs *GameState) AddScore(points int) int {
	if points > 0 {
		gs.Score += points
	}
	return gs.Score
}

// NextWave 波次加一并返回新波次
func (gs *GameState) NextWave() int {
	gs.Wave++
	return gs.Wave
}

// HasMothership 当前是否有母舰存活
func (gs *GameState) HasMothership() bool {
	return gs.Mothership != 0
}

// Reset 恢复到新一局开始前的状态
func (gs *GameState) Reset() {
	*gs = GameState{}
}
