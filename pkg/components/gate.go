package components

import (
	"strconv"

	"github.com/decker502/infinistacker/pkg/entities"
)

// GateOperationType 闸门运算类型
type GateOperationType int

const (
	// GateAdd 加法：人数 + v
	GateAdd GateOperationType = iota
	// GateSubtract 减法：人数 - v，下限 0
	GateSubtract
	// GateMultiply 乘法：人数 × max(1, v)
	GateMultiply
)

// GateOperation 闸门上的一个运算
type GateOperation struct {
	Type  GateOperationType
	Value int
}

// String 返回闸门显示文本，如 "+6"、"-3"、"x2"
func (op GateOperation) String() string {
	switch op.Type {
	case GateAdd:
		return "+" + strconv.Itoa(op.Value)
	case GateSubtract:
		return "-" + strconv.Itoa(op.Value)
	case GateMultiply:
		return "x" + strconv.Itoa(op.Value)
	default:
		return strconv.Itoa(op.Value)
	}
}

// IsPositive 是否为增益运算
func (op GateOperation) IsPositive() bool {
	return op.Type != GateSubtract
}

// GateSide 闸门对中被选中的一侧
type GateSide int

const (
	GateSideNone  GateSide = iota // 尚未结算，或小队不在闸门车道内
	GateSideLeft                  // 左侧
	GateSideRight                 // 右侧
)

// GatePairComponent 闸门对记录
// Applied 只会翻转一次：在闸门首次越过小队 Z + epsilon 的那一帧，
// 按当时小队相对车道中心的横向位置不可撤销地选择一侧
type GatePairComponent struct {
	Z       float64
	Left    GateOperation
	Right   GateOperation
	Applied bool
	Chosen  GateSide

	LeftView  entities.Handle
	RightView entities.Handle
}
