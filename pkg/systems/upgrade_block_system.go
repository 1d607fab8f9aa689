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

const upgradeBlockHeight = 0.95

// UpgradeBlockSystem 升级方块
//
// 方块在升级车道生成并匀速逼近。生命和奖励都随生成计数单调增长并各自封顶；
// 被摧毁时奖励点数交给武器升级系统，同时计入炮台充能的奖励事件。
// 未被摧毁的方块越过回收线后静默回收。
type UpgradeBlockSystem struct {
	pool    *ecs.Pool[components.UpgradeBlockComponent]
	targets []*upgradeBlockTarget

	tuning     config.UpgradeTuning
	laneCenter float64
	weapon     *game.WeaponProgression
	effects    *HitEffectSystem
	feedback   game.Feedback
	rng        *rand.Rand

	enabled      bool
	timer        float64
	spawnCounter int
	broken       int
	rewarded     int
}

type upgradeBlockTarget struct {
	s  *UpgradeBlockSystem
	id ecs.EntityID
}

// NewUpgradeBlockSystem 创建升级方块系统
// laneCenter 为升级车道中心 X
func NewUpgradeBlockSystem(factory entities.Factory, tuning config.UpgradeTuning, laneCenter float64, weapon *game.WeaponProgression, effects *HitEffectSystem, feedback game.Feedback, rng *rand.Rand) *UpgradeBlockSystem {
	factory = entities.OrProxy(factory)
	s := &UpgradeBlockSystem{
		tuning:     tuning,
		laneCenter: laneCenter,
		weapon:     weapon,
		effects:    effects,
		feedback:   game.OrNullFeedback(feedback),
		rng:        rng,
	}
	s.pool = ecs.NewPool(
		func(id ecs.EntityID) components.UpgradeBlockComponent {
			s.targets = append(s.targets, &upgradeBlockTarget{s: s, id: id})
			return components.UpgradeBlockComponent{View: factory.Create(types.KindUpgradeBlock)}
		},
		func(b *components.UpgradeBlockComponent) {
			b.View.SetActive(false)
			*b = components.UpgradeBlockComponent{View: b.View}
		},
	)
	return s
}

// SetEnabled 启用或禁用；禁用时清零计时
func (s *UpgradeBlockSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.timer = 0
	}
}

// Enabled 是否启用
func (s *UpgradeBlockSystem) Enabled() bool {
	return s.enabled
}

// Reset 回收全部方块，生成计数归零
func (s *UpgradeBlockSystem) Reset() {
	s.pool.ReleaseAll()
	s.timer = 0
	s.spawnCounter = 0
	s.broken = 0
	s.rewarded = 0
}

// Update 生成并推进方块
func (s *UpgradeBlockSystem) Update(deltaTime float64) {
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

	s.pool.Each(func(id ecs.EntityID, b *components.UpgradeBlockComponent) bool {
		b.Position.Z -= s.tuning.Speed * deltaTime
		b.View.SetPosition(b.Position)
		if b.Position.Z <= s.tuning.DespawnZ {
			s.pool.Release(id)
		}
		return true
	})
}

// NextStats 第 n 个方块（从 1 开始）的生命与奖励下限
// hp = min(maxHp, baseHp + n/hpStep)，reward = min(maxReward, baseReward + n/rewardStep + bonus)
func (s *UpgradeBlockSystem) NextStats(n, bonus int) (hp, reward int) {
	hp = s.tuning.BaseHP
	if s.tuning.HPStep > 0 {
		hp += n / s.tuning.HPStep
	}
	hp = max(1, min(s.tuning.MaxHP, hp))

	reward = s.tuning.BaseReward + bonus
	if s.tuning.RewardStep > 0 {
		reward += n / s.tuning.RewardStep
	}
	reward = max(1, min(s.tuning.MaxReward, reward))
	return hp, reward
}

// SpawnImmediate 立即在远端生成一个方块
func (s *UpgradeBlockSystem) SpawnImmediate() {
	s.spawnCounter++

	bonus := s.tuning.RewardBonusMin
	if span := s.tuning.RewardBonusMax - s.tuning.RewardBonusMin; span > 0 {
		bonus += s.rng.Intn(span)
	}
	hp, reward := s.NextStats(s.spawnCounter, bonus)

	x := s.laneCenter + (s.rng.Float64()*2-1)*s.tuning.LaneHalfWidth
	z := s.tuning.SpawnZ + s.rng.Float64()*s.tuning.SpawnZJitter

	_, b := s.pool.Acquire()
	b.Position = types.Vec3{X: x, Y: upgradeBlockHeight, Z: z}
	b.Health = components.HealthComponent{CurrentHealth: hp, MaxHealth: hp, IsAlive: true}
	b.Collision = components.CollisionComponent{Radius: s.tuning.HitRadius}
	b.Reward = reward
	b.View.SetPosition(b.Position)
	b.View.SetActive(true)
}

func (s *UpgradeBlockSystem) breakBlock(id ecs.EntityID, hitPoint types.Vec3) {
	b, ok := s.pool.Get(id)
	if !ok {
		return
	}
	reward := b.Reward
	s.pool.Release(id)
	s.broken++
	s.rewarded += reward

	s.effects.Spawn(hitPoint)
	s.weapon.AddProgress(reward)
	s.weapon.NotifyRewardEventOccurred()
	s.feedback.LightImpact()
	s.feedback.Shake(0.07, 0.06)
}

// EachHittable 按槽位升序遍历完好的方块
func (s *UpgradeBlockSystem) EachHittable(visit func(h Hittable) bool) {
	s.pool.Each(func(id ecs.EntityID, b *components.UpgradeBlockComponent) bool {
		if !b.Health.IsAlive {
			return true
		}
		return visit(s.targets[id-1])
	})
}

// Each 遍历在场的方块（供渲染使用）
func (s *UpgradeBlockSystem) Each(fn func(b *components.UpgradeBlockComponent)) {
	s.pool.Each(func(_ ecs.EntityID, b *components.UpgradeBlockComponent) bool {
		fn(b)
		return true
	})
}

// ActiveCount 在场的方块数
func (s *UpgradeBlockSystem) ActiveCount() int {
	return s.pool.ActiveCount()
}

// Spawned 本局生成数
func (s *UpgradeBlockSystem) Spawned() int {
	return s.spawnCounter
}

// Broken 本局被摧毁数
func (s *UpgradeBlockSystem) Broken() int {
	return s.broken
}

// Rewarded 本局累计发放的奖励点数
func (s *UpgradeBlockSystem) Rewarded() int {
	return s.rewarded
}

func (t *upgradeBlockTarget) HitCenter() types.Vec3 {
	if b, ok := t.s.pool.Get(t.id); ok {
		return b.Position
	}
	return types.Vec3{}
}

func (t *upgradeBlockTarget) HitRadius() float64 {
	if b, ok := t.s.pool.Get(t.id); ok {
		return b.Collision.Radius
	}
	return 0
}

func (t *upgradeBlockTarget) TryDamage(amount int, hitPoint types.Vec3) bool {
	b, ok := t.s.pool.Get(t.id)
	if !ok || !b.Health.IsAlive {
		return false
	}
	b.Health.CurrentHealth -= max(1, amount)
	if b.Health.CurrentHealth <= 0 {
		b.Health.CurrentHealth = 0
		b.Health.IsAlive = false
		t.s.breakBlock(t.id, hitPoint)
	}
	return true
}
