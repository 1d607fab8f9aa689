package game

import (
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/utils"
)

// DragMover 把每帧的水平拖拽量转换为小队的横向移动
//
// 拖拽量按屏幕宽度归一化后乘以 dragToWorldScale 累加到目标 X，
// 目标 X 截断到车道边界，小队位置以指数平滑向目标靠拢。
type DragMover struct {
	squad *Squad

	smoothing        float64
	dragToWorldScale float64
	minX, maxX       float64

	enabled  bool
	dragging bool
	targetX  float64
}

// NewDragMover 创建拖拽移动器，初始目标为小队当前位置
func NewDragMover(squad *Squad, tuning config.MovementTuning) *DragMover {
	m := &DragMover{
		squad:            squad,
		smoothing:        tuning.Smoothing,
		dragToWorldScale: tuning.DragToWorldScale,
	}
	m.Configure(tuning.MinX, tuning.MaxX)
	return m
}

// Configure 设置横向边界（顺序无关），并把目标截断到新边界内
func (m *DragMover) Configure(minX, maxX float64) {
	m.minX = min(minX, maxX)
	m.maxX = max(minX, maxX)
	m.targetX = utils.Clamp(m.squad.Position().X, m.minX, m.maxX)
}

// SetEnabled 启用或禁用移动；禁用时丢弃进行中的拖拽
func (m *DragMover) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.dragging = false
	}
}

// Enabled 是否启用
func (m *DragMover) Enabled() bool {
	return m.enabled
}

// Reset 目标回到小队当前位置
func (m *DragMover) Reset() {
	m.dragging = false
	m.targetX = utils.Clamp(m.squad.Position().X, m.minX, m.maxX)
}

// Drag 输入一帧的拖拽量
// deltaPixels 为本帧指针的水平位移，screenWidth 为屏幕宽度（像素）
func (m *DragMover) Drag(deltaPixels, screenWidth float64) {
	if !m.enabled {
		return
	}
	m.dragging = true
	normalized := deltaPixels / max(1, screenWidth)
	m.targetX = utils.Clamp(m.targetX+normalized*m.dragToWorldScale, m.minX, m.maxX)
}

// Release 指针松开
func (m *DragMover) Release() {
	m.dragging = false
}

// SetTargetX 直接设置目标位置（键盘、测试）
func (m *DragMover) SetTargetX(x float64) {
	if !m.enabled {
		return
	}
	m.targetX = utils.Clamp(x, m.minX, m.maxX)
}

// TargetX 当前目标位置
func (m *DragMover) TargetX() float64 {
	return m.targetX
}

// IsDragging 是否处于拖拽中
func (m *DragMover) IsDragging() bool {
	return m.dragging
}

// Update 小队位置向目标平滑靠拢
func (m *DragMover) Update(deltaTime float64) {
	if !m.enabled {
		return
	}
	x := utils.ExpSmoothing(m.squad.Position().X, m.targetX, m.smoothing, deltaTime)
	m.squad.SetPositionX(x)
}
