package components

import (
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// UpgradeBlockComponent 升级方块记录
// 被摧毁时把 Reward 点数交给武器升级系统
type UpgradeBlockComponent struct {
	Position  types.Vec3
	Health    HealthComponent
	Collision CollisionComponent
	Reward    int // 奖励点数，>= 1

	View entities.Handle
}
