package game

import (
	"log"

	"github.com/decker502/infinistacker/pkg/config"
)

// WeaponStats 当前等级的射击参数（已截断到合法范围）
type WeaponStats struct {
	TierName       string
	TierIndex      int
	ShotsPerSecond float64 // >= 0.5
	BulletDamage   int     // >= 1
	PelletsPerShot int     // >= 1
	SpreadDegrees  float64 // >= 0
}

// weaponTier 截断后的等级定义
type weaponTier struct {
	name           string
	shotsPerSecond float64
	bulletDamage   int
	pelletsPerShot int
	spreadDegrees  float64
	pointsToNext   int
}

// WeaponProgression 武器升级系统
//
// 升级方块的奖励点数累积到当前等级；达到需求时扣除需求并升一级，
// 一次大额奖励可以连续跨越多级。最高级不再升级，进度无上限累积。
// 解锁等级之后，每第 N 次奖励事件获得一次炮台充能。
type WeaponProgression struct {
	bus   *EventBus
	tiers []weaponTier

	maxCharges      int
	unlockTierIndex int
	eventsPerCharge int

	tierIndex    int
	progress     int
	charges      int
	rewardEvents int
	stats        WeaponStats
}

// NewWeaponProgression 创建武器升级系统
// 等级表为空时使用默认等级表
func NewWeaponProgression(bus *EventBus, tuning config.WeaponTuning) *WeaponProgression {
	defs := tuning.Tiers
	if len(defs) == 0 {
		defs = config.DefaultTuning().Weapon.Tiers
	}

	tiers := make([]weaponTier, len(defs))
	for i, def := range defs {
		tiers[i] = weaponTier{
			name:           def.Name,
			shotsPerSecond: max(0.5, def.ShotsPerSecond),
			bulletDamage:   max(1, def.BulletDamage),
			pelletsPerShot: max(1, def.PelletsPerShot),
			spreadDegrees:  max(0, def.SpreadDegrees),
			pointsToNext:   max(0, def.PointsToNext),
		}
	}

	w := &WeaponProgression{
		bus:             bus,
		tiers:           tiers,
		maxCharges:      max(1, tuning.MaxTurretCharges),
		unlockTierIndex: max(0, tuning.TurretUnlockTierIndex),
		eventsPerCharge: max(1, tuning.RewardEventsPerCharge),
	}
	w.ResetProgression()
	return w
}

// ResetProgression 回到第一级，清空进度、充能和奖励计数
func (w *WeaponProgression) ResetProgression() {
	w.tierIndex = 0
	w.progress = 0
	w.charges = 0
	w.rewardEvents = 0
	w.applyTierStats()
	w.raiseStateChanged()
}

// AddProgress 增加升级进度，非正数忽略
func (w *WeaponProgression) AddProgress(amount int) {
	if amount <= 0 {
		return
	}

	w.progress += amount
	from := w.tierIndex
	for !w.isTerminal() && w.progress >= w.tiers[w.tierIndex].pointsToNext {
		w.progress -= w.tiers[w.tierIndex].pointsToNext
		w.tierIndex++
	}
	if w.tierIndex != from {
		w.applyTierStats()
		log.Printf("[WeaponProgression] 武器升级: %s -> %s", w.tiers[from].name, w.stats.TierName)
	}
	w.raiseStateChanged()
}

// NotifyRewardEventOccurred 记录一次奖励事件（升级方块被摧毁）
// 达到解锁等级后，每第 eventsPerCharge 次事件获得一次充能
// 每次调用恰好发出一次状态通知
func (w *WeaponProgression) NotifyRewardEventOccurred() {
	w.rewardEvents++
	if w.tierIndex >= w.unlockTierIndex && w.rewardEvents%w.eventsPerCharge == 0 {
		w.charges = min(w.charges+1, w.maxCharges)
	}
	w.raiseStateChanged()
}

// TryConsumeTurretCharge 消耗一次充能
// 没有充能时返回 false 且不改变状态
func (w *WeaponProgression) TryConsumeTurretCharge() bool {
	if w.charges <= 0 {
		return false
	}
	w.charges--
	w.raiseStateChanged()
	return true
}

func (w *WeaponProgression) isTerminal() bool {
	return w.tierIndex >= len(w.tiers)-1
}

func (w *WeaponProgression) applyTierStats() {
	tier := w.tiers[min(max(0, w.tierIndex), len(w.tiers)-1)]
	w.stats = WeaponStats{
		TierName:       tier.name,
		TierIndex:      w.tierIndex,
		ShotsPerSecond: tier.shotsPerSecond,
		BulletDamage:   tier.bulletDamage,
		PelletsPerShot: tier.pelletsPerShot,
		SpreadDegrees:  tier.spreadDegrees,
	}
}

func (w *WeaponProgression) raiseStateChanged() {
	w.bus.RaiseWeaponStateChanged(w.State())
}

// Stats 当前等级的射击参数
func (w *WeaponProgression) Stats() WeaponStats {
	return w.stats
}

// State 当前武器状态快照
func (w *WeaponProgression) State() WeaponState {
	requirement := 0
	if !w.isTerminal() {
		requirement = w.tiers[w.tierIndex].pointsToNext
	}
	return WeaponState{
		TierName:        w.stats.TierName,
		TierIndex:       w.tierIndex,
		Progress:        w.progress,
		NextRequirement: requirement,
		TurretCharges:   w.charges,
		RewardEvents:    w.rewardEvents,
	}
}

// TierIndex 当前等级索引
func (w *WeaponProgression) TierIndex() int {
	return w.tierIndex
}

// TierCount 等级总数
func (w *WeaponProgression) TierCount() int {
	return len(w.tiers)
}

// Progress 当前等级内的进度
func (w *WeaponProgression) Progress() int {
	return w.progress
}

// TurretCharges 已储存的炮台充能
func (w *WeaponProgression) TurretCharges() int {
	return w.charges
}

// RewardEvents 本局累计的奖励事件次数
func (w *WeaponProgression) RewardEvents() int {
	return w.rewardEvents
}
