// Package app 提供桌面端（ebiten）宿主
//
// 该包负责窗口、键盘输入、HUD 和音效，模拟本身完全由 scenes.BattleScene 驱动。
// 根目录的 main.go 通过 NewApp() 启动。
package app

import (
	"fmt"
	"image/color"

	"github.com/gonewx/invaders/internal/audio"
	"github.com/gonewx/invaders/pkg/config"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/scenes"
	"github.com/gonewx/invaders/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// 可见的世界范围，宽高比与窗口一致
var worldView = utils.Projection{
	MinX: -24, MaxX: 24,
	MinY: -13, MaxY: 23,
	Width: ScreenWidth, Height: ScreenHeight,
}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用 debug 级别日志
	Verbose bool
	// ConfigPath 游戏配置文件（.yaml/.yml/.toml），为空使用默认配置
	ConfigPath string
	// Mute 关闭音效
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    *scenes.BattleScene
	renderer *EbitenRenderer
	scores   *game.ScoreManager
	sound    *audio.SoundManager
	logger   *zap.Logger

	fire    utils.Cooldown
	hudFont text.Face

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// input 一帧的玩家输入
type input struct {
	axis    float64
	fire    bool
	restart bool
}

// NewApp 创建并初始化游戏应用
// 音频或存档不可用时只记录警告，游戏照常运行
func NewApp(cfg Config) (*App, error) {
	gameCfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := gameCfg.Logging.Level
	if cfg.Verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(level, gameCfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("日志初始化失败: %w", err)
	}

	var sound *audio.SoundManager
	if !cfg.Mute {
		sound = audio.NewSoundManager(0.6, logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
			sound = nil
		}
	}

	a, err := newApp(gameCfg, logger, game.OpenScoreManager(game.AppName, logger))
	if err != nil {
		return nil, err
	}
	if sound != nil {
		a.sound = sound
		a.scene.SetSoundPlayer(sound)
	}

	logger.Info("game started",
		zap.String("config", cfg.ConfigPath),
		zap.Int("highScore", a.scores.HighScore()))
	return a, nil
}

// newApp 组装场景、渲染器和成绩管理器，不触碰音频设备和窗口
func newApp(gameCfg *config.GameConfig, logger *zap.Logger, scores *game.ScoreManager) (*App, error) {
	renderer := NewEbitenRenderer(worldView)
	scene, err := scenes.NewBattleScene(renderer, gameCfg, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("战斗场景创建失败: %w", err)
	}
	scene.AddObserver(scores)

	return &App{
		scene:    scene,
		renderer: renderer,
		scores:   scores,
		logger:   logger.Named("App"),
		fire:     utils.Cooldown{Interval: gameCfg.Player.FireInterval},
		hudFont:  text.NewGoXFace(basicfont.Face7x13),
	}, nil
}

// LoadConfig 读取配置文件，路径为空时返回默认配置
func LoadConfig(path string) (*config.GameConfig, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.step(readInput(), 1.0/float64(ebiten.TPS()))
	return nil
}

// readInput 读取键盘：方向键或 A/D 移动，空格开火，回车重新开始
func readInput() input {
	var in input
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.axis--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.axis++
	}
	in.fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.restart = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	return in
}

// step 应用输入并推进一帧
func (a *App) step(in input, deltaTime float64) {
	if a.scene.IsGameOver() {
		if in.restart {
			a.scene.Reset()
			a.fire.Reset()
		}
		return
	}

	a.fire.Tick(deltaTime)
	a.scene.SetPlayerInput(in.axis)
	if in.fire && a.fire.TryTrigger() {
		a.scene.FirePlayerBullet()
	}
	a.scene.Update(deltaTime)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 20, A: 255})
	a.renderer.Draw(screen)
	a.drawHUD(screen)
}

func (a *App) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("SCORE %06d   WAVE %d   LIVES %d   HI %06d",
		a.scene.Score(), a.scene.Wave(), a.scene.PlayerLives(), max(a.scores.HighScore(), a.scene.Score()))
	a.drawText(screen, status, 12, 10, color.White)

	if a.scene.IsGameOver() {
		a.drawText(screen, "GAME OVER", ScreenWidth/2-32, ScreenHeight/2-20, color.RGBA{R: 255, G: 80, B: 80, A: 255})
		a.drawText(screen, "PRESS ENTER TO PLAY AGAIN", ScreenWidth/2-88, ScreenHeight/2, color.White)
	}
}

func (a *App) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, a.hudFont, opts)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 释放音频并刷新日志
func (a *App) Close() {
	if a.sound != nil {
		a.sound.Close()
	}
	// 终端输出上 Sync 可能返回 EINVAL，忽略即可
	_ = a.logger.Sync()
}
