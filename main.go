package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/invaders/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	configPath = flag.String("config", "", "游戏配置文件路径（.yaml/.yml/.toml），为空使用默认配置")
	verbose    = flag.Bool("verbose", false, "显示详细调试日志")
	mute       = flag.Bool("mute", false, "关闭音效")
)

func main() {
	flag.Parse()

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Mute:       *mute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "运行出错: %v\n", err)
		game.Close()
		os.Exit(1)
	}
}
