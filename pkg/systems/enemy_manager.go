package systems

import (
	"math/rand"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/ecs"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/types"
)

// EnemyManager 敌群管理
//
// 持有敌人池并限制同时存活的数量。每帧敌人沿 -Z 前进，越过突破线时
// 扣除小队人数和基地生命；受到致命伤害时走击杀流程，每 N 次击杀为小队增援一人。
// 突破与击杀都先检查记录是否仍在活跃集中，重复触发不会产生额外副作用。
type EnemyManager struct {
	pool    *ecs.Pool[components.EnemyComponent]
	targets []*enemyTarget // 下标 = 槽位，指针在池扩容后保持稳定

	tuning   config.EnemyTuning
	squad    *game.Squad
	base     *game.BaseHealth
	effects  *HitEffectSystem
	feedback game.Feedback
	rng      *rand.Rand

	enabled     bool
	killCounter int // 距离下一次增援的击杀数
	kills       int
	breaches    int
}

// enemyTarget 把池中的一个槽位暴露为 Hittable
type enemyTarget struct {
	m  *EnemyManager
	id ecs.EntityID
}

// NewEnemyManager 创建敌群管理器
func NewEnemyManager(factory entities.Factory, tuning config.EnemyTuning, squad *game.Squad, base *game.BaseHealth, effects *HitEffectSystem, feedback game.Feedback, rng *rand.Rand) *EnemyManager {
	factory = entities.OrProxy(factory)
	m := &EnemyManager{
		tuning:   tuning,
		squad:    squad,
		base:     base,
		effects:  effects,
		feedback: game.OrNullFeedback(feedback),
		rng:      rng,
	}
	m.pool = ecs.NewPool(
		func(id ecs.EntityID) components.EnemyComponent {
			m.targets = append(m.targets, &enemyTarget{m: m, id: id})
			return components.EnemyComponent{View: factory.Create(types.KindEnemy)}
		},
		func(e *components.EnemyComponent) {
			e.View.SetActive(false)
			*e = components.EnemyComponent{View: e.View}
		},
	)
	return m
}

// SetEnabled 启用或禁用敌群推进
func (m *EnemyManager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled 是否启用
func (m *EnemyManager) Enabled() bool {
	return m.enabled
}

// Reset 回收全部敌人并清零计数
func (m *EnemyManager) Reset() {
	m.pool.ReleaseAll()
	m.killCounter = 0
	m.kills = 0
	m.breaches = 0
}

// Spawn 在 position 生成一个敌人
// 达到数量上限时返回 false 且不做任何事
func (m *EnemyManager) Spawn(position types.Vec3, hp int, speed float64) bool {
	if m.pool.ActiveCount() >= m.tuning.MaxActive {
		return false
	}

	scale := 1.0
	if m.rng != nil {
		scale = 0.9 + m.rng.Float64()*0.18
	}

	hp = max(1, hp)
	_, e := m.pool.Acquire()
	e.Position = position
	e.Health = components.HealthComponent{CurrentHealth: hp, MaxHealth: hp, IsAlive: true}
	e.Collision = components.CollisionComponent{Radius: m.tuning.HitRadius}
	e.Speed = max(m.tuning.MinSpeed, speed)
	e.Scale = scale
	e.View.SetPosition(position)
	e.View.SetActive(true)
	return true
}

// Update 推进所有敌人并处理突破
func (m *EnemyManager) Update(deltaTime float64) {
	if !m.enabled {
		return
	}

	m.pool.Each(func(id ecs.EntityID, e *components.EnemyComponent) bool {
		e.Position.Z -= e.Speed * deltaTime
		e.View.SetPosition(e.Position)
		if e.Position.Z <= m.tuning.BreachZ {
			m.breach(id)
		}
		// 突破可能结束本局
		return m.enabled
	})
}

func (m *EnemyManager) breach(id ecs.EntityID) {
	e, ok := m.pool.Get(id)
	if !ok {
		return
	}
	e.Health.IsAlive = false
	m.pool.Release(id)
	m.breaches++

	m.squad.RemoveSoldiers(m.tuning.BreachSquadLoss)
	if !m.enabled {
		return
	}
	m.base.ApplyDamage(m.tuning.BreachBaseDamage)
	if !m.enabled {
		return
	}
	m.feedback.Shake(0.12, 0.1)
	m.feedback.MediumImpact()
}

func (m *EnemyManager) kill(id ecs.EntityID) {
	e, ok := m.pool.Get(id)
	if !ok {
		return
	}
	position := e.Position
	m.pool.Release(id)
	m.effects.Spawn(position)
	m.kills++

	m.killCounter++
	if m.tuning.KillsPerReinforcement > 0 && m.killCounter >= m.tuning.KillsPerReinforcement {
		m.killCounter = 0
		m.squad.AddSoldiers(1)
		m.feedback.LightImpact()
	}
	m.feedback.Shake(0.06, 0.07)
}

// EachHittable 按槽位升序遍历存活敌人
func (m *EnemyManager) EachHittable(visit func(h Hittable) bool) {
	m.pool.Each(func(id ecs.EntityID, e *components.EnemyComponent) bool {
		if !e.Health.IsAlive {
			return true
		}
		return visit(m.targets[id-1])
	})
}

// Each 遍历活跃敌人（供渲染使用）
func (m *EnemyManager) Each(fn func(e *components.EnemyComponent)) {
	m.pool.Each(func(_ ecs.EntityID, e *components.EnemyComponent) bool {
		fn(e)
		return true
	})
}

// ActiveCount 当前存活的敌人数
func (m *EnemyManager) ActiveCount() int {
	return m.pool.ActiveCount()
}

// MaxActive 同时存活的上限
func (m *EnemyManager) MaxActive() int {
	return m.tuning.MaxActive
}

// Kills 本局击杀数
func (m *EnemyManager) Kills() int {
	return m.kills
}

// Breaches 本局突破数
func (m *EnemyManager) Breaches() int {
	return m.breaches
}

func (t *enemyTarget) HitCenter() types.Vec3 {
	if e, ok := t.m.pool.Get(t.id); ok {
		return e.Position
	}
	return types.Vec3{}
}

func (t *enemyTarget) HitRadius() float64 {
	if e, ok := t.m.pool.Get(t.id); ok {
		return e.Collision.Radius
	}
	return 0
}

func (t *enemyTarget) TryDamage(amount int, _ types.Vec3) bool {
	e, ok := t.m.pool.Get(t.id)
	if !ok || !e.Health.IsAlive {
		return false
	}
	e.Health.CurrentHealth -= max(1, amount)
	if e.Health.CurrentHealth <= 0 {
		e.Health.CurrentHealth = 0
		e.Health.IsAlive = false
		t.m.kill(t.id)
	}
	return true
}
