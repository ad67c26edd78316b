// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供世界坐标到屏幕坐标的正交投影，供各个宿主渲染器使用。
//
// # 坐标系统概述
//
//   - **世界坐标**：X 向右、Y 向上，原点在战场中央；外星人网格位于 Y=5 附近，玩家航道在下方
//   - **屏幕坐标**：相对于窗口（或终端）左上角，Y 向下
//
// # 核心转换公式
//
//	screenX = (worldX - MinX) / (MaxX - MinX) * Width
//	screenY = (MaxY - worldY) / (MaxY - MinY) * Height
package utils

import "github.com/go-gl/mathgl/mgl64"

// Projection 正交投影参数
type Projection struct {
	MinX, MaxX float64 // 可见世界范围（水平）
	MinY, MaxY float64 // 可见世界范围（竖直）
	Width      float64 // 屏幕宽度（像素或字符列）
	Height     float64 // 屏幕高度（像素或字符行）
}

// WorldToScreen 将世界坐标转换为屏幕坐标（忽略 Z）
func (p Projection) WorldToScreen(world mgl64.Vec3) (float64, float64) {
	spanX := p.MaxX - p.MinX
	spanY := p.MaxY - p.MinY
	if spanX == 0 || spanY == 0 {
		return 0, 0
	}
	sx := (world.X() - p.MinX) / spanX * p.Width
	sy := (p.MaxY - world.Y()) / spanY * p.Height
	return sx, sy
}

// UnitsToPixels 将世界长度转换为屏幕水平长度
func (p Projection) UnitsToPixels(units float64) float64 {
	spanX := p.MaxX - p.MinX
	if spanX == 0 {
		return 0
	}
	return units / spanX * p.Width
}

// Visible 判断世界坐标是否落在可见范围内
func (p Projection) Visible(world mgl64.Vec3) bool {
	return world.X() >= p.MinX && world.X() <= p.MaxX &&
		world.Y() >= p.MinY && world.Y() <= p.MaxY
}
