package game

import (
	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
)

// Squad 玩家小队
//
// 持有人数、队形槽位和枪口偏移。人数在每次修改时截断到 [0, maxCount]，
// 槽位和枪口随人数重新计算，二者与人数一一对应。
type Squad struct {
	bus *EventBus

	count      int
	startCount int
	maxCount   int
	spacing    float64
	muzzle     types.Vec3 // 枪口相对士兵槽位的偏移

	position types.Vec3   // 小队中心的世界坐标
	slots    []types.Vec3 // 队形槽位（相对中心）
}

// NewSquad 创建小队，初始人数为 startCount
func NewSquad(bus *EventBus, tuning config.SquadTuning, position types.Vec3) *Squad {
	maxCount := max(1, tuning.MaxCount)
	s := &Squad{
		bus:        bus,
		startCount: min(max(0, tuning.StartCount), maxCount),
		maxCount:   maxCount,
		spacing:    tuning.Spacing,
		muzzle:     types.Vec3{Y: tuning.MuzzleHeight, Z: tuning.MuzzleForward},
		position:   position,
		slots:      make([]types.Vec3, 0, maxCount),
	}
	s.forceCount(s.startCount)
	return s
}

// Count 当前人数
func (s *Squad) Count() int {
	return s.count
}

// MaxCount 人数上限
func (s *Squad) MaxCount() int {
	return s.maxCount
}

// SetCount 设置人数
// 截断到 [0, maxCount]；与当前值相同时不做任何事
func (s *Squad) SetCount(value int) {
	next := min(max(0, value), s.maxCount)
	if next == s.count {
		return
	}
	s.count = next
	s.refresh()
	s.bus.RaiseSquadChanged(s.count)
}

// AddSoldiers 增加人数，非正数忽略
func (s *Squad) AddSoldiers(amount int) {
	if amount > 0 {
		s.SetCount(s.count + amount)
	}
}

// RemoveSoldiers 减少人数，非正数忽略
func (s *Squad) RemoveSoldiers(amount int) {
	if amount > 0 {
		s.SetCount(s.count - amount)
	}
}

// ApplyGateOperation 执行闸门运算
func (s *Squad) ApplyGateOperation(op components.GateOperation) {
	s.SetCount(ApplyGateOperation(s.count, op))
}

// ResetSquad 恢复开局人数，并总是发布一次人数通知
func (s *Squad) ResetSquad() {
	s.forceCount(s.startCount)
}

func (s *Squad) forceCount(value int) {
	s.count = min(max(0, value), s.maxCount)
	s.refresh()
	s.bus.RaiseSquadChanged(s.count)
}

func (s *Squad) refresh() {
	s.slots = BuildFormation(s.count, s.spacing, s.slots)
}

// Position 小队中心的世界坐标
func (s *Squad) Position() types.Vec3 {
	return s.position
}

// SetPositionX 设置小队中心的横向坐标（由拖拽移动驱动）
func (s *Squad) SetPositionX(x float64) {
	s.position.X = x
}

// Slots 当前队形槽位（相对中心），长度等于人数
// 返回内部切片，调用方不得修改
func (s *Squad) Slots() []types.Vec3 {
	return s.slots
}

// MuzzleCount 枪口数量，等于人数
func (s *Squad) MuzzleCount() int {
	return len(s.slots)
}

// MuzzlePoint 第 i 个枪口的世界坐标
func (s *Squad) MuzzlePoint(i int) types.Vec3 {
	return s.position.Add(s.slots[i]).Add(s.muzzle)
}
