package game

import "github.com/decker502/infinistacker/pkg/types"

// 队形参数
const (
	formationRowWidth   = 3    // 每行最多人数
	formationRowSpacing = 1.15 // 行距相对横向间距的倍数
	minFormationSpacing = 0.15
)

// BuildFormation 计算 count 名士兵的队形槽位（相对小队中心的偏移）
//
// 每行最多 3 人并以车道中心对齐，行号随序号递增、越往后 Z 越小。
// 结果写入 dst[:0] 并返回，调用方可复用同一块切片避免每帧分配。
func BuildFormation(count int, spacing float64, dst []types.Vec3) []types.Vec3 {
	dst = dst[:0]
	if count <= 0 {
		return dst
	}

	spacing = max(minFormationSpacing, spacing)
	for index, row := 0, 0; index < count; row++ {
		rowCount := min(formationRowWidth, count-index)
		rowStartX := -(float64(rowCount-1) * 0.5 * spacing)
		z := -(float64(row) * spacing * formationRowSpacing)
		for i := 0; i < rowCount; i++ {
			dst = append(dst, types.Vec3{X: rowStartX + float64(i)*spacing, Z: z})
			index++
		}
	}
	return dst
}
