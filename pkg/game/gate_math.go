package game

import "github.com/decker502/infinistacker/pkg/components"

// ApplyGateOperation 对人数执行闸门运算
// 当前人数与运算数都先截断到非负；乘法的运算数下限为 1。
// 纯整数运算，结果下限为 0，上限由调用方（小队）负责截断
func ApplyGateOperation(current int, op components.GateOperation) int {
	safeCurrent := max(0, current)
	value := max(0, op.Value)

	switch op.Type {
	case components.GateAdd:
		return safeCurrent + value
	case components.GateSubtract:
		return max(0, safeCurrent-value)
	case components.GateMultiply:
		return safeCurrent * max(1, value)
	default:
		return safeCurrent
	}
}
