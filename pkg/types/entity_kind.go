package types

// EntityKind 定义可池化实体的类别
type EntityKind int

const (
	// KindUnknown 未知类别
	KindUnknown EntityKind = iota

	KindEnemy        // 敌人
	KindBullet       // 子弹
	KindHitEffect    // 命中特效
	KindIceObstacle  // 冰块障碍
	KindUpgradeBlock // 升级方块
	KindGate         // 闸门（一对闸门由左右两个实体组成）
)

// String 返回类别名称
func (k EntityKind) String() string {
	switch k {
	case KindEnemy:
		return "Enemy"
	case KindBullet:
		return "Bullet"
	case KindHitEffect:
		return "HitEffect"
	case KindIceObstacle:
		return "IceObstacle"
	case KindUpgradeBlock:
		return "UpgradeBlock"
	case KindGate:
		return "Gate"
	default:
		return "Unknown"
	}
}
