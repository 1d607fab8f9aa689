package game

// PresentationSink 表现层接收的通知集合
// 通知是单向的，核心不依赖它们的返回或同步执行
type PresentationSink interface {
	SquadChanged(count int)
	BaseHpChanged(current, max int)
	TimerChanged(remaining float64)
	StateChanged(state GameState, result GameResult)
	WeaponStateChanged(state WeaponState)
}

// EventBus 一局内的事件分发器
//
// 由场景创建并随场景销毁，订阅者只活在这一局里。
// 处理函数内再次发布的事件会排队，待当前事件分发完毕后按顺序投递，
// 所以每个订阅者看到的事件顺序与发布顺序一致。
type EventBus struct {
	squadChanged       []func(count int)
	baseHpChanged      []func(current, max int)
	timerChanged       []func(remaining float64)
	stateChanged       []func(state GameState, result GameResult)
	weaponStateChanged []func(state WeaponState)

	pending     []func()
	dispatching bool
	closed      bool
}

// NewEventBus 创建事件分发器
func NewEventBus() *EventBus {
	return &EventBus{}
}

// OnSquadChanged 订阅小队人数变化
func (b *EventBus) OnSquadChanged(fn func(count int)) {
	b.squadChanged = append(b.squadChanged, fn)
}

// OnBaseHpChanged 订阅基地生命值变化
func (b *EventBus) OnBaseHpChanged(fn func(current, max int)) {
	b.baseHpChanged = append(b.baseHpChanged, fn)
}

// OnTimerChanged 订阅倒计时变化
func (b *EventBus) OnTimerChanged(fn func(remaining float64)) {
	b.timerChanged = append(b.timerChanged, fn)
}

// OnStateChanged 订阅状态变化
func (b *EventBus) OnStateChanged(fn func(state GameState, result GameResult)) {
	b.stateChanged = append(b.stateChanged, fn)
}

// OnWeaponStateChanged 订阅武器状态变化
func (b *EventBus) OnWeaponStateChanged(fn func(state WeaponState)) {
	b.weaponStateChanged = append(b.weaponStateChanged, fn)
}

// AttachSink 把表现层接口挂到全部五类通知上
func (b *EventBus) AttachSink(sink PresentationSink) {
	if sink == nil {
		return
	}
	b.OnSquadChanged(sink.SquadChanged)
	b.OnBaseHpChanged(sink.BaseHpChanged)
	b.OnTimerChanged(sink.TimerChanged)
	b.OnStateChanged(sink.StateChanged)
	b.OnWeaponStateChanged(sink.WeaponStateChanged)
}

// RaiseSquadChanged 发布小队人数变化
func (b *EventBus) RaiseSquadChanged(count int) {
	b.dispatch(func() {
		for _, fn := range b.squadChanged {
			fn(count)
		}
	})
}

// RaiseBaseHpChanged 发布基地生命值变化
func (b *EventBus) RaiseBaseHpChanged(current, max int) {
	b.dispatch(func() {
		for _, fn := range b.baseHpChanged {
			fn(current, max)
		}
	})
}

// RaiseTimerChanged 发布倒计时变化
func (b *EventBus) RaiseTimerChanged(remaining float64) {
	b.dispatch(func() {
		for _, fn := range b.timerChanged {
			fn(remaining)
		}
	})
}

// RaiseStateChanged 发布状态变化
func (b *EventBus) RaiseStateChanged(state GameState, result GameResult) {
	b.dispatch(func() {
		for _, fn := range b.stateChanged {
			fn(state, result)
		}
	})
}

// RaiseWeaponStateChanged 发布武器状态变化
func (b *EventBus) RaiseWeaponStateChanged(state WeaponState) {
	b.dispatch(func() {
		for _, fn := range b.weaponStateChanged {
			fn(state)
		}
	})
}

// Close 清空所有订阅，之后的发布全部忽略
func (b *EventBus) Close() {
	b.squadChanged = nil
	b.baseHpChanged = nil
	b.timerChanged = nil
	b.stateChanged = nil
	b.weaponStateChanged = nil
	b.pending = nil
	b.closed = true
}

// dispatch 投递一次事件；分发期间到达的事件排队
func (b *EventBus) dispatch(deliver func()) {
	if b == nil || b.closed {
		return
	}

	b.pending = append(b.pending, deliver)
	if b.dispatching {
		return
	}

	b.dispatching = true
	for i := 0; i < len(b.pending); i++ {
		b.pending[i]()
		if b.closed {
			break
		}
	}
	b.pending = b.pending[:0]
	b.dispatching = false
}
