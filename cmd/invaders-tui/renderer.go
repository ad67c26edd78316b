package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/utils"
)

// hudRows 顶部 HUD 占用的行数
const hudRows = 1

// 终端里可见的世界范围，与桌面端一致
var (
	viewMinX, viewMaxX = -24.0, 24.0
	viewMinY, viewMaxY = -13.0, 23.0
)

var alienSprites = map[string]string{
	"Alien_1": "<o>",
	"Alien_2": "{#}",
	"Alien_3": "[@]",
}

var alienStyles = map[string]tcell.Style{
	"Alien_1": tcell.StyleDefault.Foreground(tcell.ColorAqua),
	"Alien_2": tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	"Alien_3": tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

// TerminalRenderer 把可视对象画成字符
type TerminalRenderer struct {
	*game.VisualTable
	proj utils.Projection
}

// NewTerminalRenderer 创建终端渲染器
func NewTerminalRenderer(width, height int) *TerminalRenderer {
	r := &TerminalRenderer{VisualTable: game.NewVisualTable()}
	r.Resize(width, height)
	return r
}

// Resize 终端尺寸变化时更新投影，HUD 行不参与投影
func (r *TerminalRenderer) Resize(width, height int) {
	r.proj = utils.Projection{
		MinX: viewMinX, MaxX: viewMaxX,
		MinY: viewMinY, MaxY: viewMaxY,
		Width:  float64(width),
		Height: float64(max(height-hudRows, 1)),
	}
}

// Draw 绘制所有可视对象，不负责 Clear 和 Show
func (r *TerminalRenderer) Draw(screen tcell.Screen) {
	r.Each(func(e *game.VisualEntry) {
		if e.Kind == components.VisualBulletTail {
			for _, p := range e.State.Tail {
				if p.Lifespan > 0 {
					r.put(screen, p.Position, ".", fade(tcell.ColorOrange, p.Alpha))
				}
			}
			return
		}
		r.put(screen, e.State.Position, spriteOf(e), styleOf(e))
	})
}

// put 以 pos 为中心写一串字符
func (r *TerminalRenderer) put(screen tcell.Screen, pos mgl64.Vec3, sprite string, style tcell.Style) {
	col, row, ok := r.cellOf(pos)
	if !ok {
		return
	}
	runes := []rune(sprite)
	col -= len(runes) / 2
	width, height := screen.Size()
	for i, ch := range runes {
		x := col + i
		if x < 0 || x >= width || row >= height {
			continue
		}
		screen.SetContent(x, row, ch, nil, style)
	}
}

// cellOf 世界坐标到字符格，超出可见范围时 ok 为 false
func (r *TerminalRenderer) cellOf(pos mgl64.Vec3) (col, row int, ok bool) {
	if !r.proj.Visible(pos) {
		return 0, 0, false
	}
	sx, sy := r.proj.WorldToScreen(pos)
	col = min(int(sx), int(r.proj.Width)-1)
	row = min(int(sy), int(r.proj.Height)-1) + hudRows
	return col, row, true
}

func spriteOf(e *game.VisualEntry) string {
	switch e.Kind {
	case components.VisualPlayer:
		return "/^\\"
	case components.VisualAlien:
		if s, ok := alienSprites[e.Variant]; ok {
			return s
		}
		return "<?>"
	case components.VisualMothership:
		return "<=MM=>"
	case components.VisualPlayerBullet:
		return "|"
	case components.VisualAlienBullet:
		// 正角度向左倾斜（顶端偏左）
		switch tilt := e.State.Rotation.Z(); {
		case tilt > 0.2:
			return "\\"
		case tilt < -0.2:
			return "/"
		default:
			return "!"
		}
	case components.VisualBarrier:
		return "####"
	case components.VisualExplosionParticle:
		return "*"
	default:
		return "?"
	}
}

func styleOf(e *game.VisualEntry) tcell.Style {
	switch e.Kind {
	case components.VisualPlayer:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case components.VisualAlien:
		if s, ok := alienStyles[e.Variant]; ok {
			return s
		}
		return tcell.StyleDefault.Foreground(tcell.ColorSilver)
	case components.VisualMothership:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	case components.VisualAlienBullet:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case components.VisualBarrier:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case components.VisualExplosionParticle:
		return fade(tcell.ColorGold, e.State.Alpha)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// fade 按透明度调暗前景色（终端没有 alpha）
func fade(c tcell.Color, alpha float64) tcell.Style {
	alpha = utils.Clamp(alpha, 0, 1)
	r, g, b := c.RGB()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		int32(float64(r)*alpha),
		int32(float64(g)*alpha),
		int32(float64(b)*alpha),
	))
}
