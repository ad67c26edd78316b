package events

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/ecs"
)

// EventType 事件类型
// 事件是实体系统向场景发出的"意图"，集合的增删只由场景在分发阶段完成
type EventType int

const (
	// EventCombatantDestroyed 战斗单位进入终结状态
	// 发出方：CombatantSystem.Hit | 处理方：WaveSystem（计分、补充母舰、换波、游戏结束）
	EventCombatantDestroyed EventType = iota

	// EventSpawnExplosion 请求在某处生成爆炸
	// 发出方：CombatantSystem、CollisionSystem、WaveSystem | 处理方：场景
	EventSpawnExplosion

	// EventSpawnAlienBullet 请求发射一颗外星人子弹
	// 发出方：CombatantSystem（外星人、母舰开火）| 处理方：场景
	EventSpawnAlienBullet

	// EventBarrierDestroyed 掩体被子弹击中
	// 发出方：CollisionSystem | 处理方：场景
	EventBarrierDestroyed

	// EventScoreAwarded 加分
	// 发出方：WaveSystem | 处理方：场景（更新 GameState 并通知观察者）
	EventScoreAwarded

	// EventSound 音效请求
	// 处理方：场景转发给可选的 SoundPlayer
	EventSound

	// EventWaveStarted 新一波外星人已生成
	// 发出方：WaveSystem.StartWave | 处理方：场景（通知观察者）
	EventWaveStarted

	// EventGameOver 玩家被摧毁，本局结束
	// 发出方：WaveSystem.OnPlayerDestroyed | 处理方：场景（通知观察者，只发出一次）
	EventGameOver
)

// String 返回事件类型名称（用于日志）
func (t EventType) String() string {
	switch t {
	case EventCombatantDestroyed:
		return "CombatantDestroyed"
	case EventSpawnExplosion:
		return "SpawnExplosion"
	case EventSpawnAlienBullet:
		return "SpawnAlienBullet"
	case EventBarrierDestroyed:
		return "BarrierDestroyed"
	case EventScoreAwarded:
		return "ScoreAwarded"
	case EventSound:
		return "Sound"
	case EventWaveStarted:
		return "WaveStarted"
	case EventGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// SoundID 音效标识
type SoundID string

const (
	SoundShoot      SoundID = "shoot"
	SoundAlienShoot SoundID = "alien_shoot"
	SoundHit        SoundID = "hit"
	SoundExplosion  SoundID = "explosion"
	SoundMothership SoundID = "mothership"
	SoundGameOver   SoundID = "game_over"
)

// GameEvent 一条意图
// 各字段按事件类型选择性使用，未使用的字段保持零值
type GameEvent struct {
	Type     EventType
	Entity   ecs.EntityID
	Kind     components.EntityKind
	Position mgl64.Vec3

	// EventSpawnExplosion
	Particles int
	Size      float64

	// EventScoreAwarded
	Points int

	// EventWaveStarted
	Wave int

	// EventSound
	Sound SoundID
}

// CombatantDestroyed 构造战斗单位终结事件
func CombatantDestroyed(id ecs.EntityID, kind components.EntityKind, pos mgl64.Vec3) GameEvent {
	return GameEvent{Type: EventCombatantDestroyed, Entity: id, Kind: kind, Position: pos}
}

// SpawnExplosion 构造爆炸请求
func SpawnExplosion(pos mgl64.Vec3, particles int, size float64) GameEvent {
	return GameEvent{Type: EventSpawnExplosion, Position: pos, Particles: particles, Size: size}
}

// SpawnAlienBullet 构造外星人子弹请求
func SpawnAlienBullet(pos mgl64.Vec3) GameEvent {
	return GameEvent{Type: EventSpawnAlienBullet, Position: pos}
}

// BarrierDestroyed 构造掩体销毁事件
func BarrierDestroyed(id ecs.EntityID) GameEvent {
	return GameEvent{Type: EventBarrierDestroyed, Entity: id, Kind: components.KindBarrier}
}

// ScoreAwarded 构造加分事件
func ScoreAwarded(points int) GameEvent {
	return GameEvent{Type: EventScoreAwarded, Points: points}
}

// PlaySound 构造音效事件
func PlaySound(id SoundID) GameEvent {
	return GameEvent{Type: EventSound, Sound: id}
}

// WaveStarted 构造新波次事件
func WaveStarted(wave int) GameEvent {
	return GameEvent{Type: EventWaveStarted, Wave: wave}
}

// GameOver 构造游戏结束事件
// 最终得分由处理方在分发时读取，保证同一帧内先到的加分已经生效
func GameOver() GameEvent {
	return GameEvent{Type: EventGameOver}
}
