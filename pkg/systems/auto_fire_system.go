package systems

import (
	"log"
	"math"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/types"
	"github.com/decker502/infinistacker/pkg/utils"
)

// AutoFireSystem 自动射击
//
// 主武器射速 = 等级射速 × 人数加成，累加器每满 1/射速 秒发射一轮齐射（while 排空）。
// 齐射分配到至多 maxShotsPerVolley 个枪口，并保证 枪口数 × 弹丸数 不超过单轮弹丸上限；
// 被压缩掉的枪口伤害合并到实际开火的枪口上。
// 敌人数量达到阈值且有充能时自动部署炮台，炮台有独立的计时和累加器。
type AutoFireSystem struct {
	autoFire config.AutoFireTuning
	turret   config.TurretTuning
	squad    *game.Squad
	weapon   *game.WeaponProgression
	bullets  *BulletSystem
	enemies  *EnemyManager

	enabled     bool
	accumulator float64

	turretTimer       float64
	turretAccumulator float64
	turretDeploys     int
	volleys           int
}

// NewAutoFireSystem 创建自动射击系统
func NewAutoFireSystem(autoFire config.AutoFireTuning, turret config.TurretTuning, squad *game.Squad, weapon *game.WeaponProgression, bullets *BulletSystem, enemies *EnemyManager) *AutoFireSystem {
	return &AutoFireSystem{
		autoFire: autoFire,
		turret:   turret,
		squad:    squad,
		weapon:   weapon,
		bullets:  bullets,
		enemies:  enemies,
	}
}

// SetEnabled 启用或禁用；禁用时清零累加器并收起炮台
func (s *AutoFireSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.accumulator = 0
		s.turretTimer = 0
		s.turretAccumulator = 0
	}
}

// Enabled 是否启用
func (s *AutoFireSystem) Enabled() bool {
	return s.enabled
}

// Reset 清零累加器和统计
func (s *AutoFireSystem) Reset() {
	s.accumulator = 0
	s.turretTimer = 0
	s.turretAccumulator = 0
	s.turretDeploys = 0
	s.volleys = 0
}

// Update 推进射击累加器
func (s *AutoFireSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	s.updateTurret(deltaTime)

	count := s.squad.Count()
	if count <= 0 {
		return
	}

	stats := s.weapon.Stats()
	rate := max(s.autoFire.MinShotsPerSecond, stats.ShotsPerSecond*s.CrowdBoost(count))
	if rate <= 0 {
		return
	}
	step := 1 / rate

	s.accumulator += deltaTime
	for s.accumulator >= step {
		s.accumulator -= step
		s.fireVolley(stats)
	}
}

// CrowdBoost 人数带来的射速倍率
// 人数从 1 增长到软上限时由 1 线性插值到最大倍率
func (s *AutoFireSystem) CrowdBoost(count int) float64 {
	t := utils.InverseLerp(1, float64(max(1, s.autoFire.CrowdSoftCap)), float64(count))
	return utils.Lerp(1, max(1, s.autoFire.CrowdBoostMax), t)
}

// VolleyShape 计算一轮齐射的枪口数和单发伤害倍率
func (s *AutoFireSystem) VolleyShape(muzzles, pellets int) (shotCount, compression int) {
	pellets = max(1, pellets)
	shotCount = utils.ClampInt(muzzles, 1, max(1, s.autoFire.MaxShotsPerVolley))
	shotCount = min(shotCount, max(1, s.autoFire.MaxProjectilesPerVolley/pellets))
	compression = max(1, int(math.Ceil(float64(muzzles)/float64(shotCount))))
	return shotCount, compression
}

func (s *AutoFireSystem) fireVolley(stats game.WeaponStats) {
	muzzles := s.squad.MuzzleCount()
	if muzzles <= 0 {
		return
	}

	pellets := max(1, stats.PelletsPerShot)
	shotCount, compression := s.VolleyShape(muzzles, pellets)
	baseDamage := max(1, stats.BulletDamage*compression)

	for shot := range shotCount {
		// 均匀抽取枪口
		muzzleIndex := min(muzzles-1, shot*muzzles/shotCount)
		origin := s.squad.MuzzlePoint(muzzleIndex)

		if pellets <= 1 {
			s.bullets.Fire(origin, types.Forward, baseDamage, s.autoFire.BulletSpeed)
			continue
		}

		pelletDamage := max(1, int(math.Round(float64(baseDamage)/math.Sqrt(float64(pellets)))))
		mid := float64(pellets-1) / 2
		for p := range pellets {
			spread := (float64(p) - mid) / mid * stats.SpreadDegrees
			s.bullets.Fire(origin, types.YawDirection(spread), pelletDamage, s.autoFire.BulletSpeed)
		}
	}
	s.volleys++
}

func (s *AutoFireSystem) updateTurret(deltaTime float64) {
	threshold := max(s.turret.MinThreshold, s.turret.OverrunThreshold)
	if s.turretTimer <= 0 && s.enemies.ActiveCount() >= threshold && s.weapon.TryConsumeTurretCharge() {
		s.turretTimer = s.turret.Duration
		s.turretAccumulator = 0
		s.turretDeploys++
		log.Printf("[AutoFire] 炮台部署: 敌人 %d, 持续 %.1fs", s.enemies.ActiveCount(), s.turret.Duration)
	}

	if s.turretTimer <= 0 {
		return
	}

	s.turretTimer -= deltaTime
	step := 1 / max(1, s.turret.ShotsPerSecond)
	s.turretAccumulator += deltaTime
	for s.turretAccumulator >= step {
		s.turretAccumulator -= step
		s.fireTurretVolley()
	}
	if s.turretTimer <= 0 {
		s.turretTimer = 0
		s.turretAccumulator = 0
	}
}

func (s *AutoFireSystem) fireTurretVolley() {
	z := s.squad.Position().Z + s.turret.ForwardOffset
	for _, x := range s.turret.OffsetsX {
		s.bullets.Fire(types.Vec3{X: x, Y: s.turret.Height, Z: z}, types.Forward, s.turret.Damage, s.turret.BulletSpeed)
	}
}

// TurretActive 炮台是否在场
func (s *AutoFireSystem) TurretActive() bool {
	return s.turretTimer > 0
}

// TurretRemaining 炮台剩余时间
func (s *AutoFireSystem) TurretRemaining() float64 {
	return max(0, s.turretTimer)
}

// TurretDeploys 本局部署次数
func (s *AutoFireSystem) TurretDeploys() int {
	return s.turretDeploys
}

// Volleys 本局主武器齐射次数
func (s *AutoFireSystem) Volleys() int {
	return s.volleys
}
