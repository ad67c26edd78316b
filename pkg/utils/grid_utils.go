package utils

import "github.com/go-gl/mathgl/mgl64"

// GridLayout 外星人波次的网格布局参数
// 网格水平居中于 X=0，第 0 行在最下方
type GridLayout struct {
	Rows       int
	Columns    int
	ColSpacing float64 // 列间距
	RowSpacing float64 // 行间距
	BaseY      float64 // 第 0 行的高度
}

// SlotPosition 计算网格槽位的世界坐标
// 参数:
//   - row: 行索引 (0 ~ Rows-1)
//   - col: 列索引 (0 ~ Columns-1)
//
// 返回:
//   - mgl64.Vec3: 槽位中心坐标（Z=0）
//
// 示例：5 列、列间距 5 时，各列 X 依次为 -10, -5, 0, 5, 10
func (g GridLayout) SlotPosition(row, col int) mgl64.Vec3 {
	center := float64(g.Columns-1) / 2
	x := (float64(col) - center) * g.ColSpacing
	y := g.BaseY + float64(row)*g.RowSpacing
	return mgl64.Vec3{x, y, 0}
}

// Slots 按行优先顺序返回全部槽位坐标
func (g GridLayout) Slots() []mgl64.Vec3 {
	if g.Rows <= 0 || g.Columns <= 0 {
		return nil
	}
	slots := make([]mgl64.Vec3, 0, g.Rows*g.Columns)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			slots = append(slots, g.SlotPosition(row, col))
		}
	}
	return slots
}
