package components

import (
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// HitEffectComponent 命中特效记录
type HitEffectComponent struct {
	Position  types.Vec3
	Remaining float64 // 剩余显示时间（秒）
	Scale     float64 // 当前缩放，随时间衰减

	View entities.Handle
}
