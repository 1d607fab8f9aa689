package components

import (
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// IceObstacleComponent 冰块障碍记录
// 可被子弹摧毁；未被摧毁并与小队横向接触时会减少小队人数
type IceObstacleComponent struct {
	Position  types.Vec3
	Health    HealthComponent
	Collision CollisionComponent
	LaneIndex int // 生成时选择的横向槽位

	View entities.Handle
}
