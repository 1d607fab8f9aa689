package systems

import (
	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/ecs"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// BulletSystem 子弹池
//
// 每帧先计算子弹的下一位置并交给 CollisionSystem 判定；
// 命中则在该位置生成特效并回收，否则前进并扣减寿命，寿命耗尽时静默回收。
type BulletSystem struct {
	pool      *ecs.Pool[components.BulletComponent]
	tuning    config.BulletTuning
	collision *CollisionSystem
	effects   *HitEffectSystem
	enabled   bool

	fired   int
	hits    int
	expired int
}

// NewBulletSystem 创建子弹系统
func NewBulletSystem(factory entities.Factory, tuning config.BulletTuning, collision *CollisionSystem, effects *HitEffectSystem) *BulletSystem {
	factory = entities.OrProxy(factory)
	s := &BulletSystem{
		tuning:    tuning,
		collision: collision,
		effects:   effects,
	}
	s.pool = ecs.NewPool(
		func(ecs.EntityID) components.BulletComponent {
			return components.BulletComponent{View: factory.Create(types.KindBullet)}
		},
		func(b *components.BulletComponent) {
			b.View.SetActive(false)
			*b = components.BulletComponent{View: b.View}
		},
	)
	return s
}

// SetEnabled 启用或禁用
func (s *BulletSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled 是否启用
func (s *BulletSystem) Enabled() bool {
	return s.enabled
}

// Reset 回收全部子弹并清零统计
func (s *BulletSystem) Reset() {
	s.pool.ReleaseAll()
	s.fired = 0
	s.hits = 0
	s.expired = 0
}

// Fire 发射一颗子弹
// 伤害至少为 1，速度至少为 1，方向会被归一化
func (s *BulletSystem) Fire(origin, direction types.Vec3, damage int, speed float64) {
	_, b := s.pool.Acquire()
	b.Position = origin
	b.Direction = direction.Normalized()
	b.Damage = max(1, damage)
	b.Speed = max(1, speed)
	b.RemainingLifetime = max(s.tuning.MinLifetime, s.tuning.Lifetime)
	b.View.SetPosition(origin)
	b.View.SetActive(true)
	s.fired++
}

// Update 推进子弹并结算命中
func (s *BulletSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	s.pool.Each(func(id ecs.EntityID, b *components.BulletComponent) bool {
		next := b.Position.Add(b.Direction.Scale(b.Speed * deltaTime))
		if s.collision.Resolve(next, b.Damage) {
			s.effects.Spawn(next)
			s.pool.Release(id)
			s.hits++
			return s.enabled
		}

		b.Position = next
		b.View.SetPosition(next)
		b.RemainingLifetime -= deltaTime
		if b.RemainingLifetime <= 0 {
			s.pool.Release(id)
			s.expired++
		}
		return true
	})
}

// Each 遍历活跃子弹（供渲染使用）
func (s *BulletSystem) Each(fn func(b *components.BulletComponent)) {
	s.pool.Each(func(_ ecs.EntityID, b *components.BulletComponent) bool {
		fn(b)
		return true
	})
}

// ActiveCount 飞行中的子弹数
func (s *BulletSystem) ActiveCount() int {
	return s.pool.ActiveCount()
}

// Fired 累计发射数
func (s *BulletSystem) Fired() int {
	return s.fired
}

// Hits 累计命中数
func (s *BulletSystem) Hits() int {
	return s.hits
}

// Expired 寿命耗尽的子弹数
func (s *BulletSystem) Expired() int {
	return s.expired
}
