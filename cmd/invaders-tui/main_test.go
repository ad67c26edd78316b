package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestControlsPress(t *testing.T) {
	now := time.Unix(100, 0)
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		wantAxis float64
		wantFire bool
		wantQuit bool
	}{
		{"左方向键", tcell.KeyLeft, 0, -1, false, false},
		{"右方向键", tcell.KeyRight, 0, 1, false, false},
		{"A 键", tcell.KeyRune, 'a', -1, false, false},
		{"D 键", tcell.KeyRune, 'D', 1, false, false},
		{"空格开火", tcell.KeyRune, ' ', 0, true, false},
		{"Esc 退出", tcell.KeyEscape, 0, 0, false, true},
		{"q 退出", tcell.KeyRune, 'q', 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c controls
			c.press(tt.key, tt.r, now)
			assert.Equal(t, tt.wantAxis, c.currentAxis(now))
			assert.Equal(t, tt.wantQuit, c.quit)
			fire, _ := c.consume()
			assert.Equal(t, tt.wantFire, fire)
		})
	}
}

func TestControlsHoldWindow(t *testing.T) {
	now := time.Unix(100, 0)
	var c controls
	c.press(tcell.KeyRight, 0, now)

	assert.Equal(t, 1.0, c.currentAxis(now.Add(holdWindow/2)))
	assert.Equal(t, 0.0, c.currentAxis(now.Add(holdWindow*2)))
}

func TestControlsConsume(t *testing.T) {
	var c controls
	c.press(tcell.KeyEnter, 0, time.Now())
	c.press(tcell.KeyRune, ' ', time.Now())

	fire, restart := c.consume()
	assert.True(t, fire)
	assert.True(t, restart)

	fire, restart = c.consume()
	assert.False(t, fire)
	assert.False(t, restart)
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestGameDraw(t *testing.T) {
	screen := newSimScreen(t, 96, 37)
	cfg := config.DefaultGameConfig()
	cfg.Alien.FireChance = 0

	g, err := NewGame(screen, cfg, game.NewScoreManager(nil, nil), zap.NewNop())
	require.NoError(t, err)

	g.step(time.Now(), 1.0/frameRate)
	g.draw()

	width, _ := screen.Size()
	row := make([]rune, width)
	for x := range row {
		row[x], _, _, _ = screen.GetContent(x, 0)
	}
	assert.Contains(t, string(row), "SCORE 000000")
	assert.Equal(t, 16, g.renderer.Len())
}

func TestGameRestartAfterGameOver(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	g, err := NewGame(screen, config.DefaultGameConfig(), game.NewScoreManager(nil, nil), zap.NewNop())
	require.NoError(t, err)

	for g.scene.PlayerLives() > 0 {
		g.scene.Hit(g.scene.Player())
	}
	require.True(t, g.scene.IsGameOver())

	g.step(time.Now(), 1.0/frameRate)
	assert.True(t, g.scene.IsGameOver())

	g.input.restart = true
	g.step(time.Now(), 1.0/frameRate)
	assert.False(t, g.scene.IsGameOver())
	assert.Equal(t, 1, g.scores.GetRecord().GamesPlayed)
}
