package components

// HealthComponent 存储可被子弹命中的实体的生命值信息
// 用于敌人、冰块障碍和升级方块
type HealthComponent struct {
	CurrentHealth int  // 当前生命值
	MaxHealth     int  // 生成时的生命值
	IsAlive       bool // 是否存活；死亡后再受到的伤害不会被消耗
}
