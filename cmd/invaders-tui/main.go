// invaders-tui 在终端里运行游戏
//
// 使用方法:
//
//	go run ./cmd/invaders-tui [-config game.yaml] [-log game.log] [-mute]
//
// 操作：方向键或 A/D 移动，空格开火，回车重新开始，Esc 或 q 退出
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/invaders/internal/audio"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/scenes"
	"github.com/gonewx/invaders/pkg/utils"
	"go.uber.org/zap"
)

const (
	frameRate = 60
	// 终端只有按下事件，按键重复之间视为一直按住
	holdWindow = 150 * time.Millisecond
)

var (
	configPath = flag.String("config", "", "游戏配置文件路径（.yaml/.yml/.toml）")
	logPath    = flag.String("log", "", "日志文件路径，为空不记录日志")
	verbose    = flag.Bool("verbose", false, "debug 级别日志")
	mute       = flag.Bool("mute", false, "关闭音效")
)

// controls 把离散的按键事件还原成持续输入
type controls struct {
	axis      float64
	heldUntil time.Time
	fire      bool
	restart   bool
	quit      bool
}

// press 处理一次按键，r 仅在 key 为 tcell.KeyRune 时有意义
func (c *controls) press(key tcell.Key, r rune, now time.Time) {
	switch key {
	case tcell.KeyLeft:
		c.hold(-1, now)
	case tcell.KeyRight:
		c.hold(1, now)
	case tcell.KeyEnter:
		c.restart = true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.quit = true
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			c.hold(-1, now)
		case 'd', 'D':
			c.hold(1, now)
		case ' ':
			c.fire = true
		case 'q', 'Q':
			c.quit = true
		}
	}
}

func (c *controls) hold(axis float64, now time.Time) {
	c.axis = axis
	c.heldUntil = now.Add(holdWindow)
}

// currentAxis 按住窗口过期后回到 0
func (c *controls) currentAxis(now time.Time) float64 {
	if now.After(c.heldUntil) {
		c.axis = 0
	}
	return c.axis
}

// consume 取出并清除一次性输入
func (c *controls) consume() (fire, restart bool) {
	fire, restart = c.fire, c.restart
	c.fire, c.restart = false, false
	return fire, restart
}

// Game 终端宿主
type Game struct {
	screen   tcell.Screen
	scene    *scenes.BattleScene
	renderer *TerminalRenderer
	scores   *game.ScoreManager
	sound    *audio.SoundManager
	logger   *zap.Logger

	input controls
	fire  utils.Cooldown
}

// NewGame 在已初始化的屏幕上创建一局游戏
func NewGame(screen tcell.Screen, cfg *config.GameConfig, scores *game.ScoreManager, logger *zap.Logger) (*Game, error) {
	width, height := screen.Size()
	renderer := NewTerminalRenderer(width, height)
	scene, err := scenes.NewBattleScene(renderer, cfg, nil, logger)
	if err != nil {
		return nil, err
	}
	scene.AddObserver(scores)

	return &Game{
		screen:   screen,
		scene:    scene,
		renderer: renderer,
		scores:   scores,
		logger:   logger.Named("TUI"),
		fire:     utils.Cooldown{Interval: cfg.Player.FireInterval},
	}, nil
}

// step 应用输入并推进一帧
func (g *Game) step(now time.Time, deltaTime float64) {
	fire, restart := g.input.consume()
	if g.scene.IsGameOver() {
		if restart {
			g.scene.Reset()
			g.fire.Reset()
		}
		return
	}

	g.fire.Tick(deltaTime)
	g.scene.SetPlayerInput(g.input.currentAxis(now))
	if fire && g.fire.TryTrigger() {
		g.scene.FirePlayerBullet()
	}
	g.scene.Update(deltaTime)
}

func (g *Game) draw() {
	g.screen.Clear()
	g.renderer.Draw(g.screen)
	g.drawHUD()
	g.screen.Show()
}

func (g *Game) drawHUD() {
	status := fmt.Sprintf("SCORE %06d  WAVE %d  LIVES %d  HI %06d",
		g.scene.Score(), g.scene.Wave(), g.scene.PlayerLives(), max(g.scores.HighScore(), g.scene.Score()))
	drawText(g.screen, 0, 0, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	if g.scene.IsGameOver() {
		width, height := g.screen.Size()
		msg := "GAME OVER - ENTER TO PLAY AGAIN"
		drawText(g.screen, (width-len(msg))/2, height/2, msg, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}
}

func drawText(screen tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, ch := range str {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

// run 事件循环，直到玩家退出
func (g *Game) run() {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				g.input.press(ev.Key(), ev.Rune(), time.Now())
				if g.input.quit {
					return
				}
			case *tcell.EventResize:
				g.renderer.Resize(g.screen.Size())
				g.screen.Sync()
			}
		case now := <-ticker.C:
			// BattleScene 自行夹取过大的 delta
			g.step(now, now.Sub(last).Seconds())
			last = now
			g.draw()
		}
	}
}

func main() {
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *logPath != "" {
		level := cfg.Logging.Level
		if *verbose {
			level = "debug"
		}
		if logger, err = utils.NewLoggerTo(level, cfg.Logging.Format, *logPath); err != nil {
			fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g, err := NewGame(screen, cfg, game.OpenScoreManager(game.AppName, logger), logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !*mute {
		sound := audio.NewSoundManager(0.6, logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			g.sound = sound
			g.scene.SetSoundPlayer(sound)
			defer sound.Close()
		}
	}

	g.run()
	logger.Info("bye", zap.Int("score", g.scene.Score()), zap.Int("highScore", g.scores.HighScore()))
}
