package config

import (
	"fmt"
	"os"

	"github.com/decker502/infinistacker/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// EmbeddedTuningPath 随二进制嵌入的默认调参文件路径
const EmbeddedTuningPath = "data/tuning.yaml"

// Tuning 一局模拟的全部可调参数
// 每个子系统对应一个小节，缺省字段使用 DefaultTuning 中的值
type Tuning struct {
	Squad      SquadTuning      `yaml:"squad"`
	Movement   MovementTuning   `yaml:"movement"`
	Base       BaseTuning       `yaml:"base"`
	Run        RunTuning        `yaml:"run"`
	Weapon     WeaponTuning     `yaml:"weapon"`
	AutoFire   AutoFireTuning   `yaml:"autoFire"`
	Turret     TurretTuning     `yaml:"turret"`
	Bullets    BulletTuning     `yaml:"bullets"`
	HitEffects HitEffectTuning  `yaml:"hitEffects"`
	Enemies    EnemyTuning      `yaml:"enemies"`
	EnemySpawn EnemySpawnTuning `yaml:"enemySpawn"`
	Gates      GateTuning       `yaml:"gates"`
	Obstacles  ObstacleTuning   `yaml:"obstacles"`
	Upgrades   UpgradeTuning    `yaml:"upgrades"`
	Lanes      LaneTuning       `yaml:"lanes"`
}

// SquadTuning 小队人数与队形
type SquadTuning struct {
	StartCount    int     `yaml:"startCount"`    // 开局人数
	MaxCount      int     `yaml:"maxCount"`      // 人数上限
	Spacing       float64 `yaml:"spacing"`       // 队形横向间距（最小 0.15）
	MuzzleHeight  float64 `yaml:"muzzleHeight"`  // 枪口相对士兵的高度
	MuzzleForward float64 `yaml:"muzzleForward"` // 枪口相对士兵的前向偏移
}

// MovementTuning 拖拽移动
type MovementTuning struct {
	Smoothing        float64 `yaml:"smoothing"`        // 指数平滑系数
	DragToWorldScale float64 `yaml:"dragToWorldScale"` // 归一化拖拽量到世界单位的比例
	MinX             float64 `yaml:"minX"`
	MaxX             float64 `yaml:"maxX"`
}

// BaseTuning 基地
type BaseTuning struct {
	MaxHP int `yaml:"maxHp"`
}

// RunTuning 一局的时长
type RunTuning struct {
	SurvivalSeconds float64 `yaml:"survivalSeconds"` // 生存倒计时（最小 1 秒）
}

// WeaponTierTuning 武器等级
type WeaponTierTuning struct {
	Name           string  `yaml:"name"`
	ShotsPerSecond float64 `yaml:"shotsPerSecond"`
	BulletDamage   int     `yaml:"bulletDamage"`
	PelletsPerShot int     `yaml:"pelletsPerShot"`
	SpreadDegrees  float64 `yaml:"spreadDegrees"`
	PointsToNext   int     `yaml:"pointsToNext"` // 0 表示最高级
}

// WeaponTuning 武器升级
// YAML 中给出 tiers 时整体替换默认等级表
type WeaponTuning struct {
	Tiers                 []WeaponTierTuning `yaml:"tiers"`
	MaxTurretCharges      int                `yaml:"maxTurretCharges"`
	TurretUnlockTierIndex int                `yaml:"turretUnlockTierIndex"` // 解锁炮台充能的最低等级索引
	RewardEventsPerCharge int                `yaml:"rewardEventsPerCharge"` // 每多少次奖励事件获得一次充能
}

// AutoFireTuning 自动射击
type AutoFireTuning struct {
	BulletSpeed             float64 `yaml:"bulletSpeed"`
	MaxShotsPerVolley       int     `yaml:"maxShotsPerVolley"`
	MaxProjectilesPerVolley int     `yaml:"maxProjectilesPerVolley"`
	CrowdBoostMax           float64 `yaml:"crowdBoostMax"` // 人数达到软上限时的射速倍率
	CrowdSoftCap            int     `yaml:"crowdSoftCap"`  // 射速倍率达到最大值的人数
	MinShotsPerSecond       float64 `yaml:"minShotsPerSecond"`
}

// TurretTuning 自动炮台
type TurretTuning struct {
	OverrunThreshold int       `yaml:"overrunThreshold"` // 敌人数量超过该值时部署
	MinThreshold     int       `yaml:"minThreshold"`     // 阈值下限
	Duration         float64   `yaml:"duration"`
	ShotsPerSecond   float64   `yaml:"shotsPerSecond"`
	BulletSpeed      float64   `yaml:"bulletSpeed"`
	Damage           int       `yaml:"damage"`
	OffsetsX         []float64 `yaml:"offsetsX"` // 炮台开火点的世界 X 坐标
	Height           float64   `yaml:"height"`
	ForwardOffset    float64   `yaml:"forwardOffset"` // 相对小队 Z 的前向偏移
}

// BulletTuning 子弹
type BulletTuning struct {
	Lifetime    float64 `yaml:"lifetime"`
	MinLifetime float64 `yaml:"minLifetime"`
	HitRadius   float64 `yaml:"hitRadius"` // 命中探测半径
}

// HitEffectTuning 命中特效
type HitEffectTuning struct {
	Lifetime      float64 `yaml:"lifetime"`
	StartScale    float64 `yaml:"startScale"`
	DecayPerFrame float64 `yaml:"decayPerFrame"` // 每 1/60 秒的缩放衰减系数
}

// EnemyTuning 敌人群体
type EnemyTuning struct {
	MaxActive             int     `yaml:"maxActive"`
	BreachZ               float64 `yaml:"breachZ"`
	BreachBaseDamage      int     `yaml:"breachBaseDamage"`
	BreachSquadLoss       int     `yaml:"breachSquadLoss"`
	KillsPerReinforcement int     `yaml:"killsPerReinforcement"`
	HitRadius             float64 `yaml:"hitRadius"`
	MinSpeed              float64 `yaml:"minSpeed"`
}

// EnemySpawnTuning 敌人波次生成
type EnemySpawnTuning struct {
	Interval             float64 `yaml:"interval"`
	GroupMin             int     `yaml:"groupMin"`
	GroupMax             int     `yaml:"groupMax"`
	SpawnZ               float64 `yaml:"spawnZ"`
	SpawnZJitter         float64 `yaml:"spawnZJitter"`
	BaseHP               int     `yaml:"baseHp"`
	BaseSpeed            float64 `yaml:"baseSpeed"`
	IntensityRampSeconds float64 `yaml:"intensityRampSeconds"` // 强度从 0 升到 1 所需的生存时间
	GroupBonus           int     `yaml:"groupBonus"`
	HPBonus              int     `yaml:"hpBonus"`
	SpeedBonus           float64 `yaml:"speedBonus"`
	LaneHalfWidth        float64 `yaml:"laneHalfWidth"`
	ClusterSpread        float64 `yaml:"clusterSpread"` // 波次中心相对车道半宽的偏移比例
	EnemyJitter          float64 `yaml:"enemyJitter"`   // 单个敌人的横向抖动
}

// GateTuning 闸门
type GateTuning struct {
	Interval            float64 `yaml:"interval"`
	Speed               float64 `yaml:"speed"`
	SpawnZ              float64 `yaml:"spawnZ"`
	DespawnZ            float64 `yaml:"despawnZ"`
	ChoiceOffset        float64 `yaml:"choiceOffset"`        // 左右两门相对车道中心的偏移
	ActivationHalfWidth float64 `yaml:"activationHalfWidth"` // 小队离车道中心超过该值时不结算
	CrossEpsilon        float64 `yaml:"crossEpsilon"`
	AddChance           float64 `yaml:"addChance"` // 正向门为加法的概率，否则为乘法
	AddMin              int     `yaml:"addMin"`
	AddMax              int     `yaml:"addMax"`
	MultiplyMin         int     `yaml:"multiplyMin"`
	MultiplyMax         int     `yaml:"multiplyMax"`
	SubtractMin         int     `yaml:"subtractMin"`
	SubtractMax         int     `yaml:"subtractMax"`
}

// ObstacleTuning 冰块障碍
type ObstacleTuning struct {
	Interval         float64   `yaml:"interval"`
	Speed            float64   `yaml:"speed"`
	SpawnZ           float64   `yaml:"spawnZ"`
	DespawnZ         float64   `yaml:"despawnZ"`
	HP               int       `yaml:"hp"`
	SquadLoss        int       `yaml:"squadLoss"`
	LaneOffsets      []float64 `yaml:"laneOffsets"`
	ContactHalfWidth float64   `yaml:"contactHalfWidth"`
	ContactZOffset   float64   `yaml:"contactZOffset"`
	HitRadius        float64   `yaml:"hitRadius"`
}

// UpgradeTuning 升级方块
type UpgradeTuning struct {
	Interval       float64 `yaml:"interval"`
	Speed          float64 `yaml:"speed"`
	SpawnZ         float64 `yaml:"spawnZ"`
	SpawnZJitter   float64 `yaml:"spawnZJitter"`
	DespawnZ       float64 `yaml:"despawnZ"`
	LaneHalfWidth  float64 `yaml:"laneHalfWidth"`
	BaseHP         int     `yaml:"baseHp"`
	MaxHP          int     `yaml:"maxHp"`
	HPStep         int     `yaml:"hpStep"` // 每生成多少个方块生命值 +1
	BaseReward     int     `yaml:"baseReward"`
	MaxReward      int     `yaml:"maxReward"`
	RewardStep     int     `yaml:"rewardStep"` // 每生成多少个方块奖励 +1
	RewardBonusMin int     `yaml:"rewardBonusMin"`
	RewardBonusMax int     `yaml:"rewardBonusMax"` // 随机奖励上界（不含）
	HitRadius      float64 `yaml:"hitRadius"`
}

// LaneTuning 车道布局
type LaneTuning struct {
	CombatCenterX   float64 `yaml:"combatCenterX"`
	CombatHalfWidth float64 `yaml:"combatHalfWidth"`
	UpgradeCenterX  float64 `yaml:"upgradeCenterX"`
	PlayerZ         float64 `yaml:"playerZ"`
	BridgeHalfWidth float64 `yaml:"bridgeHalfWidth"` // 仅供渲染
}

// DefaultTuning 返回内置的默认参数
func DefaultTuning() *Tuning {
	return &Tuning{
		Squad: SquadTuning{
			StartCount:    1,
			MaxCount:      120,
			Spacing:       0.8,
			MuzzleHeight:  0.6,
			MuzzleForward: 0.64,
		},
		Movement: MovementTuning{
			Smoothing:        18,
			DragToWorldScale: 14,
			MinX:             -3.25,
			MaxX:             3.25,
		},
		Base: BaseTuning{MaxHP: 450},
		Run:  RunTuning{SurvivalSeconds: 60},
		Weapon: WeaponTuning{
			Tiers: []WeaponTierTuning{
				{Name: "Rifle I", ShotsPerSecond: 3.2, BulletDamage: 1, PelletsPerShot: 1, SpreadDegrees: 0, PointsToNext: 18},
				{Name: "Rifle II", ShotsPerSecond: 4.3, BulletDamage: 1, PelletsPerShot: 1, SpreadDegrees: 0, PointsToNext: 26},
				{Name: "Rifle III", ShotsPerSecond: 5.5, BulletDamage: 2, PelletsPerShot: 1, SpreadDegrees: 0, PointsToNext: 36},
				{Name: "Shotgun I", ShotsPerSecond: 4.5, BulletDamage: 1, PelletsPerShot: 3, SpreadDegrees: 8, PointsToNext: 48},
				{Name: "Shotgun II", ShotsPerSecond: 5.2, BulletDamage: 2, PelletsPerShot: 5, SpreadDegrees: 11, PointsToNext: 0},
			},
			MaxTurretCharges:      3,
			TurretUnlockTierIndex: 2,
			RewardEventsPerCharge: 2,
		},
		AutoFire: AutoFireTuning{
			BulletSpeed:             32,
			MaxShotsPerVolley:       16,
			MaxProjectilesPerVolley: 36,
			CrowdBoostMax:           1.65,
			CrowdSoftCap:            80,
			MinShotsPerSecond:       0.5,
		},
		Turret: TurretTuning{
			OverrunThreshold: 34,
			MinThreshold:     10,
			Duration:         8,
			ShotsPerSecond:   11,
			BulletSpeed:      35,
			Damage:           2,
			OffsetsX:         []float64{1.2, 3.15},
			Height:           1.12,
			ForwardOffset:    0.4,
		},
		Bullets: BulletTuning{
			Lifetime:    2.2,
			MinLifetime: 0.05,
			HitRadius:   0.28,
		},
		HitEffects: HitEffectTuning{
			Lifetime:      0.12,
			StartScale:    0.35,
			DecayPerFrame: 0.92,
		},
		Enemies: EnemyTuning{
			MaxActive:             72,
			BreachZ:               -1.8,
			BreachBaseDamage:      10,
			BreachSquadLoss:       1,
			KillsPerReinforcement: 5,
			HitRadius:             0.25,
			MinSpeed:              0.5,
		},
		EnemySpawn: EnemySpawnTuning{
			Interval:             1.2,
			GroupMin:             5,
			GroupMax:             9,
			SpawnZ:               46,
			SpawnZJitter:         4.2,
			BaseHP:               3,
			BaseSpeed:            3.3,
			IntensityRampSeconds: 60,
			GroupBonus:           6,
			HPBonus:              5,
			SpeedBonus:           1.7,
			LaneHalfWidth:        1.13,
			ClusterSpread:        0.6,
			EnemyJitter:          0.45,
		},
		Gates: GateTuning{
			Interval:            5.5,
			Speed:               4.3,
			SpawnZ:              27,
			DespawnZ:            -5.5,
			ChoiceOffset:        0.82,
			ActivationHalfWidth: 1.65,
			CrossEpsilon:        0.1,
			AddChance:           0.58,
			AddMin:              2,
			AddMax:              8,
			MultiplyMin:         2,
			MultiplyMax:         3,
			SubtractMin:         2,
			SubtractMax:         8,
		},
		Obstacles: ObstacleTuning{
			Interval:         4.6,
			Speed:            4.1,
			SpawnZ:           32,
			DespawnZ:         -6,
			HP:               14,
			SquadLoss:        3,
			LaneOffsets:      []float64{-0.82, 0, 0.82},
			ContactHalfWidth: 1.05,
			ContactZOffset:   0.1,
			HitRadius:        0.85,
		},
		Upgrades: UpgradeTuning{
			Interval:       3.2,
			Speed:          3.9,
			SpawnZ:         34,
			SpawnZJitter:   2.6,
			DespawnZ:       -7,
			LaneHalfWidth:  1.15,
			BaseHP:         6,
			MaxHP:          42,
			HPStep:         2,
			BaseReward:     4,
			MaxReward:      18,
			RewardStep:     3,
			RewardBonusMin: 2,
			RewardBonusMax: 6,
			HitRadius:      0.9,
		},
		Lanes: LaneTuning{
			CombatCenterX:   2.2,
			CombatHalfWidth: 1.25,
			UpgradeCenterX:  -2.2,
			PlayerZ:         -4.8,
			BridgeHalfWidth: 4.25,
		},
	}
}

// ParseTuning 解析 YAML 文档并叠加到默认参数上
func ParseTuning(data []byte) (*Tuning, error) {
	tuning := DefaultTuning()
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}

	if err := validateTuning(tuning); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}

	return tuning, nil
}

// LoadTuning 从文件系统加载调参文件
// 参数：
//
//	filePath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*Tuning - 叠加到默认值后的参数
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadTuning(filePath string) (*Tuning, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file %s: %w", filePath, err)
	}

	tuning, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return tuning, nil
}

// LoadEmbeddedTuning 加载随二进制嵌入的调参文件
// embedded 包未初始化时直接返回默认参数
func LoadEmbeddedTuning() (*Tuning, error) {
	if !embedded.IsInitialized() || !embedded.Exists(EmbeddedTuningPath) {
		return DefaultTuning(), nil
	}

	data, err := embedded.ReadFile(EmbeddedTuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tuning: %w", err)
	}
	return ParseTuning(data)
}

// validateTuning 验证参数的有效性
func validateTuning(t *Tuning) error {
	if t.Squad.MaxCount < 1 {
		return fmt.Errorf("squad.maxCount must be >= 1, got %d", t.Squad.MaxCount)
	}
	if t.Squad.StartCount < 1 || t.Squad.StartCount > t.Squad.MaxCount {
		return fmt.Errorf("squad.startCount must be between 1 and %d, got %d", t.Squad.MaxCount, t.Squad.StartCount)
	}
	if t.Movement.MinX > t.Movement.MaxX {
		return fmt.Errorf("movement.minX (%.2f) must not exceed movement.maxX (%.2f)", t.Movement.MinX, t.Movement.MaxX)
	}
	if t.Base.MaxHP < 1 {
		return fmt.Errorf("base.maxHp must be >= 1, got %d", t.Base.MaxHP)
	}
	if t.Run.SurvivalSeconds <= 0 {
		return fmt.Errorf("run.survivalSeconds must be > 0, got %.2f", t.Run.SurvivalSeconds)
	}

	// 验证武器等级表
	if len(t.Weapon.Tiers) == 0 {
		return fmt.Errorf("weapon.tiers cannot be empty")
	}
	for i, tier := range t.Weapon.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("weapon tier %d: name cannot be empty", i)
		}
		if tier.ShotsPerSecond <= 0 {
			return fmt.Errorf("weapon tier %s: shotsPerSecond must be > 0, got %.2f", tier.Name, tier.ShotsPerSecond)
		}
		if tier.PointsToNext < 0 {
			return fmt.Errorf("weapon tier %s: pointsToNext must be >= 0, got %d", tier.Name, tier.PointsToNext)
		}
		last := i == len(t.Weapon.Tiers)-1
		if !last && tier.PointsToNext == 0 {
			return fmt.Errorf("weapon tier %s: only the last tier may have pointsToNext = 0", tier.Name)
		}
	}
	if t.Weapon.MaxTurretCharges < 0 {
		return fmt.Errorf("weapon.maxTurretCharges must be >= 0, got %d", t.Weapon.MaxTurretCharges)
	}
	if t.Weapon.RewardEventsPerCharge < 1 {
		return fmt.Errorf("weapon.rewardEventsPerCharge must be >= 1, got %d", t.Weapon.RewardEventsPerCharge)
	}

	if t.AutoFire.MaxShotsPerVolley < 1 || t.AutoFire.MaxProjectilesPerVolley < 1 {
		return fmt.Errorf("autoFire volley caps must be >= 1")
	}
	if t.AutoFire.CrowdSoftCap < 2 {
		return fmt.Errorf("autoFire.crowdSoftCap must be >= 2, got %d", t.AutoFire.CrowdSoftCap)
	}
	if len(t.Turret.OffsetsX) == 0 {
		return fmt.Errorf("turret.offsetsX cannot be empty")
	}
	if t.Bullets.HitRadius <= 0 {
		return fmt.Errorf("bullets.hitRadius must be > 0, got %.2f", t.Bullets.HitRadius)
	}
	if t.Enemies.MaxActive < 1 {
		return fmt.Errorf("enemies.maxActive must be >= 1, got %d", t.Enemies.MaxActive)
	}
	if t.Enemies.KillsPerReinforcement < 1 {
		return fmt.Errorf("enemies.killsPerReinforcement must be >= 1, got %d", t.Enemies.KillsPerReinforcement)
	}

	// 验证生成器
	intervals := []struct {
		name  string
		value float64
	}{
		{"enemySpawn.interval", t.EnemySpawn.Interval},
		{"gates.interval", t.Gates.Interval},
		{"obstacles.interval", t.Obstacles.Interval},
		{"upgrades.interval", t.Upgrades.Interval},
	}
	for _, iv := range intervals {
		if iv.value <= 0 {
			return fmt.Errorf("%s must be > 0, got %.2f", iv.name, iv.value)
		}
	}
	if t.EnemySpawn.GroupMin < 1 || t.EnemySpawn.GroupMax < t.EnemySpawn.GroupMin {
		return fmt.Errorf("enemySpawn group range invalid: [%d, %d]", t.EnemySpawn.GroupMin, t.EnemySpawn.GroupMax)
	}
	if t.Gates.AddChance < 0 || t.Gates.AddChance > 1 {
		return fmt.Errorf("gates.addChance must be between 0 and 1, got %.2f", t.Gates.AddChance)
	}
	if t.Gates.AddMax < t.Gates.AddMin || t.Gates.MultiplyMax < t.Gates.MultiplyMin || t.Gates.SubtractMax < t.Gates.SubtractMin {
		return fmt.Errorf("gates operand ranges must satisfy min <= max")
	}
	if len(t.Obstacles.LaneOffsets) == 0 {
		return fmt.Errorf("obstacles.laneOffsets cannot be empty")
	}
	if t.Upgrades.HPStep < 1 || t.Upgrades.RewardStep < 1 {
		return fmt.Errorf("upgrades.hpStep and upgrades.rewardStep must be >= 1")
	}
	if t.Upgrades.RewardBonusMax <= t.Upgrades.RewardBonusMin {
		return fmt.Errorf("upgrades.rewardBonusMax must be greater than rewardBonusMin")
	}

	return nil
}
