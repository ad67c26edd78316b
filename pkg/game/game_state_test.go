package game

import "testing"

// TestGameStateScore 测试得分累加
func TestGameStateScore(t *testing.T) {
	tests := []struct {
		name     string
		awards   []int
		expected int
	}{
		{"外星人得分", []int{30}, 30},
		{"外星人加母舰", []int{30, 30, 50}, 110},
		{"负数被忽略", []int{30, -100}, 30},
		{"零分被忽略", []int{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGameState()
			for _, p := range tt.awards {
				gs.AddScore(p)
			}
			if gs.Score != tt.expected {
				t.Errorf("Score = %d, 期望 %d", gs.Score, tt.expected)
			}
		})
	}
}

// TestGameStateWaveAndReset 测试波次递增与重置
func TestGameStateWaveAndReset(t *testing.T) {
	gs := NewGameState()
	if gs.NextWave() != 1 || gs.NextWave() != 2 {
		t.Fatalf("波次应依次为 1, 2, 实际 %d", gs.Wave)
	}

	gs.Mothership = 42
	if !gs.HasMothership() {
		t.Error("设置母舰后 HasMothership 应为 true")
	}

	gs.AddScore(80)
	gs.GameOver = true
	gs.Reset()

	if gs.Score != 0 || gs.Wave != 0 || gs.GameOver || gs.HasMothership() {
		t.Errorf("Reset 后状态未清空: %+v", gs)
	}
}
