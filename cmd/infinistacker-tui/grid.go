package main

import (
	"math"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
)

// fieldGrid 把桥面映射到终端字符格
// 列对应世界 X，行对应世界 Z（远处在上）
type fieldGrid struct {
	cols, rows  int
	minX, maxX  float64
	nearZ, farZ float64
}

func newFieldGrid(tuning *config.Tuning, cols, rows int) fieldGrid {
	centerX := (tuning.Lanes.CombatCenterX + tuning.Lanes.UpgradeCenterX) / 2
	half := tuning.Lanes.BridgeHalfWidth
	return fieldGrid{
		cols:  max(1, cols),
		rows:  max(1, rows),
		minX:  centerX - half,
		maxX:  centerX + half,
		nearZ: tuning.Lanes.PlayerZ - 2,
		farZ:  max(tuning.EnemySpawn.SpawnZ, tuning.Upgrades.SpawnZ),
	}
}

// cell 返回世界点所在的格子，超出桥面时 ok 为 false
func (g fieldGrid) cell(p types.Vec3) (col, row int, ok bool) {
	if p.X < g.minX || p.X > g.maxX || p.Z < g.nearZ || p.Z > g.farZ {
		return 0, 0, false
	}
	col = int(math.Floor((p.X - g.minX) / (g.maxX - g.minX) * float64(g.cols)))
	row = int(math.Floor((g.farZ - p.Z) / (g.farZ - g.nearZ) * float64(g.rows)))
	return min(col, g.cols-1), min(row, g.rows-1), true
}

// column 世界 X 对应的列，超出时夹到边界
func (g fieldGrid) column(x float64) int {
	col := int(math.Floor((x - g.minX) / (g.maxX - g.minX) * float64(g.cols)))
	return max(0, min(g.cols-1, col))
}
