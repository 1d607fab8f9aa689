package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ============================================================================
// 拖拽跟踪器 - 把鼠标/触摸拖拽转换为每帧的水平位移
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// FrameDeltaX 本帧相对上一帧的水平位移（像素）
	FrameDeltaX int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入
	IsTouchInput bool
}

// DragTracker 跟踪单指针的拖拽状态
// 每个宿主持有自己的实例，每帧调用一次 Update
type DragTracker struct {
	info DragInfo
}

// NewDragTracker 创建拖拽跟踪器
func NewDragTracker() *DragTracker {
	return &DragTracker{info: DragInfo{TouchID: -1}}
}

// Update 从 ebiten 读取本帧输入并推进拖拽状态
func (dt *DragTracker) Update() {
	// 优先跟踪触摸
	if dt.info.State == DragStateNone || dt.info.State == DragStateEnded {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			x, y := ebiten.TouchPosition(ids[0])
			dt.info.TouchID = ids[0]
			dt.info.IsTouchInput = true
			dt.Step(true, x, y)
			return
		}
		dt.info.TouchID = -1
		dt.info.IsTouchInput = false
	}

	if dt.info.IsTouchInput {
		pressed := false
		x, y := dt.info.CurrentX, dt.info.CurrentY
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == dt.info.TouchID {
				pressed = true
				x, y = ebiten.TouchPosition(id)
				break
			}
		}
		dt.Step(pressed, x, y)
		return
	}

	x, y := ebiten.CursorPosition()
	dt.Step(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y)
}

// Step 用一帧的指针采样推进状态机
// 与 ebiten 解耦，便于无窗口环境（终端宿主、测试）驱动
func (dt *DragTracker) Step(pressed bool, x, y int) {
	dt.info.FrameDeltaX = 0

	switch dt.info.State {
	case DragStateNone, DragStateEnded:
		if !pressed {
			dt.info.State = DragStateNone
			return
		}
		dt.info.State = DragStateStarted
		dt.info.StartX, dt.info.StartY = x, y
		dt.info.CurrentX, dt.info.CurrentY = x, y

	case DragStateStarted, DragStateDragging:
		if !pressed {
			// 结束状态只持续一帧
			dt.info.State = DragStateEnded
			return
		}
		dt.info.State = DragStateDragging
		dt.info.FrameDeltaX = x - dt.info.CurrentX
		dt.info.CurrentX, dt.info.CurrentY = x, y
	}
}

// Reset 重置拖拽状态
func (dt *DragTracker) Reset() {
	dt.info = DragInfo{TouchID: -1}
}

// GetInfo 获取完整拖拽信息
func (dt *DragTracker) GetInfo() DragInfo {
	return dt.info
}

// GetState 获取当前拖拽状态
func (dt *DragTracker) GetState() DragState {
	return dt.info.State
}

// IsDragging 是否正在拖拽（包含刚按下的那一帧）
func (dt *DragTracker) IsDragging() bool {
	return dt.info.State == DragStateStarted || dt.info.State == DragStateDragging
}

// FrameDeltaX 本帧的水平拖拽位移（像素）
func (dt *DragTracker) FrameDeltaX() int {
	return dt.info.FrameDeltaX
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dt *DragTracker) GetDragDistance() (dx, dy int) {
	return dt.info.CurrentX - dt.info.StartX, dt.info.CurrentY - dt.info.StartY
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
