package utils

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestGridSlotPosition 测试波次网格坐标计算
func TestGridSlotPosition(t *testing.T) {
	layout := GridLayout{Rows: 3, Columns: 5, ColSpacing: 5, RowSpacing: 3, BaseY: 5}

	tests := []struct {
		name     string
		row, col int
		expected mgl64.Vec3
	}{
		{"左下角", 0, 0, mgl64.Vec3{-10, 5, 0}},
		{"中间列", 0, 2, mgl64.Vec3{0, 5, 0}},
		{"右上角", 2, 4, mgl64.Vec3{10, 11, 0}},
		{"第二行第二列", 1, 1, mgl64.Vec3{-5, 8, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layout.SlotPosition(tt.row, tt.col)
			if !got.ApproxEqual(tt.expected) {
				t.Errorf("SlotPosition(%d, %d) = %v, 期望 %v", tt.row, tt.col, got, tt.expected)
			}
		})
	}
}

// TestGridSlots 测试槽位数量与顺序
func TestGridSlots(t *testing.T) {
	layout := GridLayout{Rows: 3, Columns: 5, ColSpacing: 5, RowSpacing: 3, BaseY: 5}
	slots := layout.Slots()

	if len(slots) != 15 {
		t.Fatalf("期望 15 个槽位, 实际 %d", len(slots))
	}

	// 行优先：第 6 个槽位是第二行第一列
	if !slots[5].ApproxEqual(mgl64.Vec3{-10, 8, 0}) {
		t.Errorf("slots[5] = %v, 期望 (-10, 8, 0)", slots[5])
	}

	if (GridLayout{}).Slots() != nil {
		t.Error("空布局应返回 nil")
	}
}
