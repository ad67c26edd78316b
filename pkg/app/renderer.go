package app

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/invaders/pkg/components"
	"github.com/gonewx/invaders/pkg/game"
	"github.com/gonewx/invaders/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 可视对象的世界尺寸（宽、高）
var visualSizes = map[components.VisualKind][2]float64{
	components.VisualPlayer:            {3, 2},
	components.VisualAlien:             {3, 2},
	components.VisualMothership:        {8, 3},
	components.VisualPlayerBullet:      {0.3, 1},
	components.VisualAlienBullet:       {0.4, 1},
	components.VisualBarrier:           {4, 2},
	components.VisualExplosionParticle: {0.6, 0.6},
}

var alienColors = map[string]color.NRGBA{
	"Alien_1": {R: 120, G: 220, B: 255, A: 255},
	"Alien_2": {R: 255, G: 120, B: 220, A: 255},
	"Alien_3": {R: 255, G: 220, B: 90, A: 255},
}

// EbitenRenderer 用矢量图形绘制所有可视对象
// 不加载任何资源，可视对象创建即就绪
type EbitenRenderer struct {
	*game.VisualTable
	proj utils.Projection
}

// NewEbitenRenderer 创建渲染器
func NewEbitenRenderer(proj utils.Projection) *EbitenRenderer {
	return &EbitenRenderer{
		VisualTable: game.NewVisualTable(),
		proj:        proj,
	}
}

// Draw 绘制所有可视对象
func (r *EbitenRenderer) Draw(screen *ebiten.Image) {
	r.Each(func(e *game.VisualEntry) {
		switch e.Kind {
		case components.VisualBulletTail:
			r.drawTail(screen, e.State.Tail)
		case components.VisualAlienBullet:
			r.drawAlienBullet(screen, e)
		case components.VisualMothership:
			r.drawMothership(screen, e)
		default:
			r.drawBox(screen, e.State.Position, visualSizes[e.Kind], e.State.Scale, colorOf(e, e.State.Alpha))
		}
	})
}

// drawBox 以 pos 为中心绘制矩形
func (r *EbitenRenderer) drawBox(screen *ebiten.Image, pos mgl64.Vec3, size [2]float64, scale float64, clr color.Color) {
	if !r.proj.Visible(pos) {
		return
	}
	w := r.proj.UnitsToPixels(size[0] * scale)
	h := r.proj.UnitsToPixels(size[1] * scale)
	sx, sy := r.proj.WorldToScreen(pos)
	vector.DrawFilledRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), clr, false)
}

// drawMothership 船体加顶部舱室
func (r *EbitenRenderer) drawMothership(screen *ebiten.Image, e *game.VisualEntry) {
	clr := colorOf(e, e.State.Alpha)
	size := visualSizes[components.VisualMothership]
	hull := e.State.Position.Sub(mgl64.Vec3{0, size[1] / 4, 0})
	dome := e.State.Position.Add(mgl64.Vec3{0, size[1] / 4, 0})
	r.drawBox(screen, hull, [2]float64{size[0], size[1] / 2}, e.State.Scale, clr)
	r.drawBox(screen, dome, [2]float64{size[0] / 2, size[1] / 2}, e.State.Scale, clr)
}

// drawAlienBullet 沿子弹朝向画一条线段
func (r *EbitenRenderer) drawAlienBullet(screen *ebiten.Image, e *game.VisualEntry) {
	pos := e.State.Position
	if !r.proj.Visible(pos) {
		return
	}
	half := utils.RotateZ(mgl64.Vec3{0, visualSizes[components.VisualAlienBullet][1] / 2, 0}, e.State.Rotation.Z())
	x0, y0 := r.proj.WorldToScreen(pos.Sub(half))
	x1, y1 := r.proj.WorldToScreen(pos.Add(half))
	width := r.proj.UnitsToPixels(visualSizes[components.VisualAlienBullet][0])
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), colorOf(e, 1), true)
}

func (r *EbitenRenderer) drawTail(screen *ebiten.Image, tail []components.TailParticle) {
	radius := float32(r.proj.UnitsToPixels(0.15))
	for _, p := range tail {
		if p.Lifespan <= 0 || !r.proj.Visible(p.Position) {
			continue
		}
		sx, sy := r.proj.WorldToScreen(p.Position)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, withAlpha(color.NRGBA{R: 255, G: 140, B: 40, A: 255}, p.Alpha), true)
	}
}

func colorOf(e *game.VisualEntry, alpha float64) color.Color {
	var base color.NRGBA
	switch e.Kind {
	case components.VisualPlayer:
		base = color.NRGBA{R: 80, G: 255, B: 120, A: 255}
	case components.VisualAlien:
		c, ok := alienColors[e.Variant]
		if !ok {
			c = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
		}
		base = c
	case components.VisualMothership:
		base = color.NRGBA{R: 230, G: 60, B: 230, A: 255}
	case components.VisualPlayerBullet:
		base = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	case components.VisualAlienBullet:
		base = color.NRGBA{R: 255, G: 70, B: 50, A: 255}
	case components.VisualBarrier:
		base = color.NRGBA{R: 110, G: 110, B: 130, A: 255}
	case components.VisualExplosionParticle:
		base = color.NRGBA{R: 255, G: 190, B: 60, A: 255}
	default:
		base = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return withAlpha(base, alpha)
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(utils.Clamp(alpha, 0, 1) * float64(c.A))
	return c
}
