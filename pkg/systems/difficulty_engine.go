package systems

import (
	"math"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/utils"
)

// DifficultyEngine 难度引擎
// 根据已生存时间计算波次强度，并据此放大波次规模、敌人生命和速度
type DifficultyEngine struct {
	tuning config.EnemySpawnTuning
}

// WaveProfile 一波敌人的参数
type WaveProfile struct {
	Intensity float64
	GroupMin  int
	GroupMax  int
	HP        int
	Speed     float64
}

// NewDifficultyEngine 创建难度引擎
func NewDifficultyEngine(tuning config.EnemySpawnTuning) *DifficultyEngine {
	return &DifficultyEngine{tuning: tuning}
}

// Intensity 波次强度
// 公式: clamp01(elapsed / rampSeconds)
func (d *DifficultyEngine) Intensity(elapsedSeconds float64) float64 {
	if d.tuning.IntensityRampSeconds <= 0 {
		return 1
	}
	return utils.Clamp01(elapsedSeconds / d.tuning.IntensityRampSeconds)
}

// Profile 计算给定生存时间下的波次参数
// 规模、生命、速度都在 基础值 与 基础值+最大加成 之间线性插值
func (d *DifficultyEngine) Profile(elapsedSeconds float64) WaveProfile {
	i := d.Intensity(elapsedSeconds)
	groupBonus := int(math.Round(float64(d.tuning.GroupBonus) * i))
	groupMin := max(1, d.tuning.GroupMin+groupBonus)
	return WaveProfile{
		Intensity: i,
		GroupMin:  groupMin,
		GroupMax:  max(groupMin, d.tuning.GroupMax+groupBonus),
		HP:        max(1, d.tuning.BaseHP+int(math.Round(float64(d.tuning.HPBonus)*i))),
		Speed:     utils.Lerp(d.tuning.BaseSpeed, d.tuning.BaseSpeed+d.tuning.SpeedBonus, i),
	}
}
