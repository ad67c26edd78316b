package game

import "github.com/gonewx/invaders/pkg/events"

// Observer 宿主订阅的游戏进度通知
// 所有回调都在 BattleScene.Update 内同步调用
type Observer interface {
	OnScoreChanged(total int)
	OnWaveStarted(wave int)
	// OnGameOver 每局只调用一次
	OnGameOver(finalScore int)
}

// ObserverFuncs 用函数字段实现 Observer，未设置的回调被忽略
type ObserverFuncs struct {
	ScoreChanged func(total int)
	WaveStarted  func(wave int)
	GameOver     func(finalScore int)
}

// OnScoreChanged 实现 Observer
func (o ObserverFuncs) OnScoreChanged(total int) {
	if o.ScoreChanged != nil {
		o.ScoreChanged(total)
	}
}

// OnWaveStarted 实现 Observer
func (o ObserverFuncs) OnWaveStarted(wave int) {
	if o.WaveStarted != nil {
		o.WaveStarted(wave)
	}
}

// OnGameOver 实现 Observer
func (o ObserverFuncs) OnGameOver(finalScore int) {
	if o.GameOver != nil {
		o.GameOver(finalScore)
	}
}

// SoundPlayer 音效播放协作方
// 实现必须是非阻塞的
type SoundPlayer interface {
	Play(id events.SoundID)
}
