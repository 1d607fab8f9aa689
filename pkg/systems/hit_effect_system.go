package systems

import (
	"math"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/ecs"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/types"
)

// HitEffectSystem 命中特效池
// 特效存在固定时间，缩放按帧率无关的方式衰减，到期回收
type HitEffectSystem struct {
	pool    *ecs.Pool[components.HitEffectComponent]
	tuning  config.HitEffectTuning
	enabled bool
	spawned int
}

// NewHitEffectSystem 创建命中特效系统
func NewHitEffectSystem(factory entities.Factory, tuning config.HitEffectTuning) *HitEffectSystem {
	factory = entities.OrProxy(factory)
	s := &HitEffectSystem{tuning: tuning}
	s.pool = ecs.NewPool(
		func(ecs.EntityID) components.HitEffectComponent {
			return components.HitEffectComponent{View: factory.Create(types.KindHitEffect)}
		},
		func(fx *components.HitEffectComponent) {
			fx.View.SetActive(false)
			*fx = components.HitEffectComponent{View: fx.View}
		},
	)
	return s
}

// SetEnabled 启用或禁用
func (s *HitEffectSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled 是否启用
func (s *HitEffectSystem) Enabled() bool {
	return s.enabled
}

// Reset 回收全部特效
func (s *HitEffectSystem) Reset() {
	s.pool.ReleaseAll()
}

// Spawn 在 position 生成一个特效
func (s *HitEffectSystem) Spawn(position types.Vec3) {
	_, fx := s.pool.Acquire()
	fx.Position = position
	fx.Remaining = max(0.01, s.tuning.Lifetime)
	fx.Scale = s.tuning.StartScale
	fx.View.SetPosition(position)
	fx.View.SetActive(true)
	s.spawned++
}

// Update 推进特效寿命
func (s *HitEffectSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	// 衰减系数按每 1/60 秒定义
	decay := math.Pow(s.tuning.DecayPerFrame, deltaTime*60)
	s.pool.Each(func(id ecs.EntityID, fx *components.HitEffectComponent) bool {
		fx.Remaining -= deltaTime
		if fx.Remaining <= 0 {
			s.pool.Release(id)
			return true
		}
		fx.Scale *= decay
		return true
	})
}

// ActiveCount 活跃特效数
func (s *HitEffectSystem) ActiveCount() int {
	return s.pool.ActiveCount()
}

// SpawnedCount 累计生成次数
func (s *HitEffectSystem) SpawnedCount() int {
	return s.spawned
}

// Each 遍历活跃特效（供渲染使用）
func (s *HitEffectSystem) Each(fn func(fx *components.HitEffectComponent)) {
	s.pool.Each(func(_ ecs.EntityID, fx *components.HitEffectComponent) bool {
		fn(fx)
		return true
	})
}
