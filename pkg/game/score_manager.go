package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ScoreRecord 持久化的成绩记录
type ScoreRecord struct {
	HighScore   int `yaml:"highScore"`   // 历史最高分
	HighWave    int `yaml:"highWave"`    // 最高分对应的波次
	GamesPlayed int `yaml:"gamesPlayed"` // 已完成的局数
	LastScore   int `yaml:"lastScore"`   // 最近一局得分
}

// ScoreManager 成绩管理器
// 负责最高分的加载、保存和内存管理
type ScoreManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	record       ScoreRecord
	currentWave  int // 作为 Observer 时跟踪当前局的波次
	logger       *zap.Logger
}

// 存储路径常量
const (
	// AppName gdata 存储目录名，各宿主共用同一份成绩
	AppName = "invaders"

	scoreObject   = "scores"
	scoreProperty = "record"
)

// NewScoreManager 创建成绩管理器并尝试加载已保存的记录
//
// 参数:
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅内存记录）
//   - logger: 日志器，可为 nil
//
// 返回:
//   - *ScoreManager: 成绩管理器实例（加载失败时使用空记录，不影响创建）
func NewScoreManager(gdataManager *gdata.Manager, logger *zap.Logger) *ScoreManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &ScoreManager{
		gdataManager: gdataManager,
		logger:       logger.Named("ScoreManager"),
	}

	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load score record, starting empty", zap.Error(err))
	}
	return sm
}

// OpenScoreManager 打开应用的 gdata 存储并创建成绩管理器
// 存储不可用时记录警告并退化为仅内存记录
func OpenScoreManager(appName string, logger *zap.Logger) *ScoreManager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		if logger != nil {
			logger.Warn("score storage unavailable, high scores will not persist", zap.Error(err))
		}
		manager = nil
	}
	return NewScoreManager(manager, logger)
}

// Load 从 gdata 加载成绩记录
// gdataManager 为 nil 或记录不存在时使用空记录
func (sm *ScoreManager) Load() error {
	if sm.gdataManager == nil {
		sm.record = ScoreRecord{}
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(scoreObject, scoreProperty) {
		sm.record = ScoreRecord{}
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		sm.record = ScoreRecord{}
		return fmt.Errorf("failed to load score record: %w", err)
	}

	var loaded ScoreRecord
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.record = ScoreRecord{}
		return fmt.Errorf("failed to unmarshal score record: %w", err)
	}

	sm.record = loaded
	sm.logger.Debug("score record loaded", zap.Int("highScore", loaded.HighScore))
	return nil
}

// Save 将成绩记录写入 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *ScoreManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&sm.record)
	if err != nil {
		return fmt.Errorf("failed to marshal score record: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(scoreObject, scoreProperty, data); err != nil {
		return fmt.Errorf("failed to save score record: %w", err)
	}
	return nil
}

// Record 记录一局结束时的成绩并持久化
//
// 参数:
//   - score: 本局得分
//   - wave: 本局到达的波次
//
// 返回:
//   - bool: 是否刷新了最高分
func (sm *ScoreManager) Record(score, wave int) bool {
	sm.record.GamesPlayed++
	sm.record.LastScore = score

	isBest := score > sm.record.HighScore
	if isBest {
		sm.record.HighScore = score
		sm.record.HighWave = wave
		sm.logger.Info("new high score", zap.Int("score", score), zap.Int("wave", wave))
	}

	if err := sm.Save(); err != nil {
		sm.logger.Warn("failed to persist score record", zap.Error(err))
	}
	return isBest
}

// HighScore 返回历史最高分
func (sm *ScoreManager) HighScore() int {
	return sm.record.HighScore
}

// GetRecord 返回当前记录的副本
func (sm *ScoreManager) GetRecord() ScoreRecord {
	return sm.record
}

// OnScoreChanged 实现 Observer
func (sm *ScoreManager) OnScoreChanged(int) {}

// OnWaveStarted 实现 Observer
func (sm *ScoreManager) OnWaveStarted(wave int) {
	sm.currentWave = wave
}

// OnGameOver 实现 Observer：游戏结束时记录成绩
func (sm *ScoreManager) OnGameOver(finalScore int) {
	sm.Record(finalScore, sm.currentWave)
}
