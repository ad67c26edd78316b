package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// newTestGdataManager 创建用于测试的 gdata Manager
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// TestScoreManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestScoreManagerNilGdata(t *testing.T) {
	sm := NewScoreManager(nil, nil)
	if sm.HighScore() != 0 {
		t.Errorf("初始最高分应为 0, 实际 %d", sm.HighScore())
	}

	if !sm.Record(120, 2) {
		t.Error("首局得分应刷新最高分")
	}
	if sm.Record(90, 3) {
		t.Error("较低得分不应刷新最高分")
	}

	rec := sm.GetRecord()
	if rec.HighScore != 120 || rec.HighWave != 2 {
		t.Errorf("最高分记录错误: %+v", rec)
	}
	if rec.GamesPlayed != 2 || rec.LastScore != 90 {
		t.Errorf("局数或最近得分错误: %+v", rec)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save 不应报错: %v", err)
	}
}

// TestScoreManagerPersistence 测试记录的保存与重新加载
func TestScoreManagerPersistence(t *testing.T) {
	manager := newTestGdataManager(t, "test_invaders_scores")

	sm1 := NewScoreManager(manager, zap.NewNop())
	sm1.Record(340, 4)

	sm2 := NewScoreManager(manager, zap.NewNop())
	rec := sm2.GetRecord()
	if rec.HighScore != 340 {
		t.Errorf("重新加载后最高分: got %d, want 340", rec.HighScore)
	}
	if rec.HighWave != 4 {
		t.Errorf("重新加载后波次: got %d, want 4", rec.HighWave)
	}
	if rec.GamesPlayed != 1 {
		t.Errorf("重新加载后局数: got %d, want 1", rec.GamesPlayed)
	}
}

// TestScoreManagerAsObserver 测试作为观察者记录成绩
func TestScoreManagerAsObserver(t *testing.T) {
	sm := NewScoreManager(nil, nil)

	var o Observer = sm
	o.OnWaveStarted(1)
	o.OnScoreChanged(30)
	o.OnWaveStarted(3)
	o.OnGameOver(260)

	rec := sm.GetRecord()
	if rec.HighScore != 260 || rec.HighWave != 3 {
		t.Errorf("观察者记录错误: %+v", rec)
	}
}

// TestOpenScoreManager 打开失败时也必须返回可用的管理器
func TestOpenScoreManager(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	sm := OpenScoreManager("invaders_open_test", nil)
	if sm == nil {
		t.Fatal("OpenScoreManager 不应返回 nil")
	}
	if !sm.Record(120, 3) {
		t.Error("空记录上的首局应刷新最高分")
	}
	if sm.HighScore() != 120 {
		t.Errorf("最高分应为 120, 实际 %d", sm.HighScore())
	}
}
