package systems

import (
	"math/rand"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
	"github.com/decker502/infinistacker/pkg/utils"
)

// Clock 提供已生存时间
type Clock interface {
	Elapsed() float64
}

// EnemySpawnSystem 敌人波次生成
//
// 按固定间隔生成一波敌人，大步长时在一次 Update 中补齐多波。
// 一波敌人围绕随机的车道偏移聚集，每个敌人只有少量横向抖动。
type EnemySpawnSystem struct {
	tuning     config.EnemySpawnTuning
	laneCenter float64
	enemies    *EnemyManager
	difficulty *DifficultyEngine
	clock      Clock
	rng        *rand.Rand

	enabled bool
	timer   float64
	waves   int
}

// NewEnemySpawnSystem 创建波次生成系统
// laneCenter 为战斗车道中心 X
func NewEnemySpawnSystem(tuning config.EnemySpawnTuning, laneCenter float64, enemies *EnemyManager, difficulty *DifficultyEngine, clock Clock, rng *rand.Rand) *EnemySpawnSystem {
	return &EnemySpawnSystem{
		tuning:     tuning,
		laneCenter: laneCenter,
		enemies:    enemies,
		difficulty: difficulty,
		clock:      clock,
		rng:        rng,
	}
}

// SetEnabled 启用或禁用；禁用时清零计时
func (s *EnemySpawnSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.timer = 0
	}
}

// Enabled 是否启用
func (s *EnemySpawnSystem) Enabled() bool {
	return s.enabled
}

// Reset 清零计时和波次统计
func (s *EnemySpawnSystem) Reset() {
	s.timer = 0
	s.waves = 0
}

// Update 推进生成计时
func (s *EnemySpawnSystem) Update(deltaTime float64) {
	if !s.enabled || s.tuning.Interval <= 0 {
		return
	}

	s.timer += deltaTime
	for s.timer >= s.tuning.Interval {
		s.timer -= s.tuning.Interval
		profile := s.difficulty.Profile(s.elapsed())
		size := profile.GroupMin + s.rng.Intn(profile.GroupMax-profile.GroupMin+1)
		s.spawnWave(size, profile)
	}
}

// SpawnImmediateWave 立即生成 count 个敌人（至少 1 个）
func (s *EnemySpawnSystem) SpawnImmediateWave(count int) int {
	return s.spawnWave(max(1, count), s.difficulty.Profile(s.elapsed()))
}

// spawnWave 返回实际生成的数量；敌群满员时提前结束
func (s *EnemySpawnSystem) spawnWave(count int, profile WaveProfile) int {
	halfWidth := s.tuning.LaneHalfWidth
	center := s.laneCenter + s.uniform(-1, 1)*halfWidth*s.tuning.ClusterSpread

	spawned := 0
	for range count {
		x := center + s.uniform(-s.tuning.EnemyJitter, s.tuning.EnemyJitter)
		x = utils.Clamp(x, s.laneCenter-halfWidth, s.laneCenter+halfWidth)
		z := s.tuning.SpawnZ + s.uniform(0, s.tuning.SpawnZJitter)
		if !s.enemies.Spawn(types.Vec3{X: x, Z: z}, profile.HP, profile.Speed) {
			break
		}
		spawned++
	}
	if spawned > 0 {
		s.waves++
	}
	return spawned
}

func (s *EnemySpawnSystem) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *EnemySpawnSystem) elapsed() float64 {
	if s.clock == nil {
		return 0
	}
	return s.clock.Elapsed()
}

// Waves 本局生成的波次数
func (s *EnemySpawnSystem) Waves() int {
	return s.waves
}
