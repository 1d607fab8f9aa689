package components

import (
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// EnemyComponent 敌人记录
// 敌人沿 -Z 方向前进，越过防线（BreachZ）即判定突破
type EnemyComponent struct {
	Position  types.Vec3
	Health    HealthComponent
	Collision CollisionComponent
	Speed     float64 // 前进速度（单位/秒）
	Scale     float64 // 外观缩放，仅供表现层使用

	View entities.Handle // 表现句柄，槽位创建时分配，重置时保留
}
