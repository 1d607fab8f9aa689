package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/ecs"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/types"
)

const obstacleHeight = 0.95

// ObstacleSystem 冰块障碍
//
// 冰块在战斗车道的固定横向槽位之一生成并匀速逼近，可被子弹摧毁。
// 未被摧毁的冰块越过小队平面时，若与小队横向接触则减少小队人数，随后回收。
type ObstacleSystem struct {
	pool    *ecs.Pool[components.IceObstacleComponent]
	targets []*obstacleTarget

	tuning     config.ObstacleTuning
	laneCenter float64
	squad      *game.Squad
	effects    *HitEffectSystem
	feedback   game.Feedback
	rng        *rand.Rand

	enabled   bool
	timer     float64
	spawned   int
	destroyed int
	contacts  int
}

type obstacleTarget struct {
	s  *ObstacleSystem
	id ecs.EntityID
}

// NewObstacleSystem 创建冰块障碍系统
func NewObstacleSystem(factory entities.Factory, tuning config.ObstacleTuning, laneCenter float64, squad *game.Squad, effects *HitEffectSystem, feedback game.Feedback, rng *rand.Rand) *ObstacleSystem {
	factory = entities.OrProxy(factory)
	s := &ObstacleSystem{
		tuning:     tuning,
		laneCenter: laneCenter,
		squad:      squad,
		effects:    effects,
		feedback:   game.OrNullFeedback(feedback),
		rng:        rng,
	}
	s.pool = ecs.NewPool(
		func(id ecs.EntityID) components.IceObstacleComponent {
			s.targets = append(s.targets, &obstacleTarget{s: s, id: id})
			return components.IceObstacleComponent{View: factory.Create(types.KindIceObstacle)}
		},
		func(o *components.IceObstacleComponent) {
			o.View.SetActive(false)
			*o = components.IceObstacleComponent{View: o.View}
		},
	)
	return s
}

// SetEnabled 启用或禁用；禁用时清零计时
func (s *ObstacleSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.timer = 0
	}
}

// Enabled 是否启用
func (s *ObstacleSystem) Enabled() bool {
	return s.enabled
}

// Reset 回收全部冰块并清零统计
func (s *ObstacleSystem) Reset() {
	s.pool.ReleaseAll()
	s.timer = 0
	s.spawned = 0
	s.destroyed = 0
	s.contacts = 0
}

// Update 生成、推进并结算冰块
func (s *ObstacleSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	if s.tuning.Interval > 0 {
		s.timer += deltaTime
		for s.timer >= s.tuning.Interval {
			s.timer -= s.tuning.Interval
			s.SpawnImmediate()
		}
	}

	s.pool.Each(func(id ecs.EntityID, o *components.IceObstacleComponent) bool {
		o.Position.Z -= s.tuning.Speed * deltaTime
		o.View.SetPosition(o.Position)

		squadPos := s.squad.Position()
		if o.Position.Z <= squadPos.Z+s.tuning.ContactZOffset {
			hit := math.Abs(o.Position.X-squadPos.X) <= s.tuning.ContactHalfWidth
			s.pool.Release(id)
			if hit {
				s.contact()
			}
			return s.enabled
		}

		if o.Position.Z <= s.tuning.DespawnZ {
			s.pool.Release(id)
		}
		return true
	})
}

func (s *ObstacleSystem) contact() {
	s.contacts++
	s.squad.RemoveSoldiers(s.tuning.SquadLoss)
	if !s.enabled {
		return
	}
	s.feedback.Shake(0.18, 0.12)
	s.feedback.MediumImpact()
}

// SpawnImmediate 立即在远端生成一个冰块
func (s *ObstacleSystem) SpawnImmediate() {
	lane := 0
	offset := 0.0
	if n := len(s.tuning.LaneOffsets); n > 0 {
		lane = s.rng.Intn(n)
		offset = s.tuning.LaneOffsets[lane]
	}

	hp := max(1, s.tuning.HP)
	_, o := s.pool.Acquire()
	o.Position = types.Vec3{X: s.laneCenter + offset, Y: obstacleHeight, Z: s.tuning.SpawnZ}
	o.Health = components.HealthComponent{CurrentHealth: hp, MaxHealth: hp, IsAlive: true}
	o.Collision = components.CollisionComponent{Radius: s.tuning.HitRadius}
	o.LaneIndex = lane
	o.View.SetPosition(o.Position)
	o.View.SetActive(true)
	s.spawned++
}

func (s *ObstacleSystem) destroy(id ecs.EntityID, hitPoint types.Vec3) {
	if !s.pool.Release(id) {
		return
	}
	s.destroyed++
	s.effects.Spawn(hitPoint)
	s.feedback.Shake(0.08, 0.08)
	s.feedback.LightImpact()
}

// EachHittable 按槽位升序遍历完好的冰块
func (s *ObstacleSystem) EachHittable(visit func(h Hittable) bool) {
	s.pool.Each(func(id ecs.EntityID, o *components.IceObstacleComponent) bool {
		if !o.Health.IsAlive {
			return true
		}
		return visit(s.targets[id-1])
	})
}

// Each 遍历在场的冰块（供渲染使用）
func (s *ObstacleSystem) Each(fn func(o *components.IceObstacleComponent)) {
	s.pool.Each(func(_ ecs.EntityID, o *components.IceObstacleComponent) bool {
		fn(o)
		return true
	})
}

// ActiveCount 在场的冰块数
func (s *ObstacleSystem) ActiveCount() int {
	return s.pool.ActiveCount()
}

// Spawned 本局生成数
func (s *ObstacleSystem) Spawned() int {
	return s.spawned
}

// Destroyed 本局被摧毁数
func (s *ObstacleSystem) Destroyed() int {
	return s.destroyed
}

// Contacts 本局撞上小队的次数
func (s *ObstacleSystem) Contacts() int {
	return s.contacts
}

func (t *obstacleTarget) HitCenter() types.Vec3 {
	if o, ok := t.s.pool.Get(t.id); ok {
		return o.Position
	}
	return types.Vec3{}
}

func (t *obstacleTarget) HitRadius() float64 {
	if o, ok := t.s.pool.Get(t.id); ok {
		return o.Collision.Radius
	}
	return 0
}

func (t *obstacleTarget) TryDamage(amount int, hitPoint types.Vec3) bool {
	o, ok := t.s.pool.Get(t.id)
	if !ok || !o.Health.IsAlive {
		return false
	}
	o.Health.CurrentHealth -= max(1, amount)
	if o.Health.CurrentHealth <= 0 {
		o.Health.CurrentHealth = 0
		o.Health.IsAlive = false
		t.s.destroy(t.id, hitPoint)
	}
	return true
}
