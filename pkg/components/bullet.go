package components

import (
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// BulletComponent 子弹记录
// 寿命耗尽或首次命中时回收，二者在同一步内只会触发一次
type BulletComponent struct {
	Position          types.Vec3
	Direction         types.Vec3 // 单位向量
	Damage            int        // >= 1
	Speed             float64    // > 0
	RemainingLifetime float64    // 剩余寿命（秒）

	View entities.Handle
}
