package game

// BaseHealth 基地生命值
// 敌人突破防线时扣血，归零后不再接受伤害
type BaseHealth struct {
	bus     *EventBus
	maxHP   int
	current int
}

// NewBaseHealth 创建满血基地
func NewBaseHealth(bus *EventBus, maxHP int) *BaseHealth {
	b := &BaseHealth{bus: bus, maxHP: max(1, maxHP)}
	b.ResetHealth()
	return b
}

// Current 当前生命值
func (b *BaseHealth) Current() int {
	return b.current
}

// Max 最大生命值
func (b *BaseHealth) Max() int {
	return b.maxHP
}

// ResetHealth 回满并发布通知
func (b *BaseHealth) ResetHealth() {
	b.current = b.maxHP
	b.bus.RaiseBaseHpChanged(b.current, b.maxHP)
}

// ApplyDamage 扣血，下限为 0
// 非正伤害或基地已被摧毁时忽略
func (b *BaseHealth) ApplyDamage(amount int) {
	if amount <= 0 || b.current <= 0 {
		return
	}
	b.current = max(0, b.current-amount)
	b.bus.RaiseBaseHpChanged(b.current, b.maxHP)
}
