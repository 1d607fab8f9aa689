package systems

import (
	"math/rand"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/types"
)

// testWorld 用默认参数组装的最小模拟环境（无状态机）
type testWorld struct {
	tuning    *config.Tuning
	bus       *game.EventBus
	squad     *game.Squad
	base      *game.BaseHealth
	weapon    *game.WeaponProgression
	feedback  *game.FeedbackCounter
	rng       *rand.Rand
	effects   *HitEffectSystem
	enemies   *EnemyManager
	obstacles *ObstacleSystem
	blocks    *UpgradeBlockSystem
	collision *CollisionSystem
	bullets   *BulletSystem
}

func newTestWorld(tuning *config.Tuning) *testWorld {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	w := &testWorld{
		tuning:   tuning,
		bus:      game.NewEventBus(),
		feedback: &game.FeedbackCounter{},
		rng:      rand.New(rand.NewSource(7)),
	}
	lanes := tuning.Lanes
	w.squad = game.NewSquad(w.bus, tuning.Squad, types.Vec3{X: lanes.CombatCenterX, Z: lanes.PlayerZ})
	w.base = game.NewBaseHealth(w.bus, tuning.Base.MaxHP)
	w.weapon = game.NewWeaponProgression(w.bus, tuning.Weapon)
	w.effects = NewHitEffectSystem(nil, tuning.HitEffects)
	w.enemies = NewEnemyManager(nil, tuning.Enemies, w.squad, w.base, w.effects, w.feedback, w.rng)
	w.obstacles = NewObstacleSystem(nil, tuning.Obstacles, lanes.CombatCenterX, w.squad, w.effects, w.feedback, w.rng)
	w.blocks = NewUpgradeBlockSystem(nil, tuning.Upgrades, lanes.UpgradeCenterX, w.weapon, w.effects, w.feedback, w.rng)
	w.collision = NewCollisionSystem(tuning.Bullets.HitRadius, w.enemies, w.obstacles, w.blocks)
	w.bullets = NewBulletSystem(nil, tuning.Bullets, w.collision, w.effects)
	return w
}

func (w *testWorld) enableAll() {
	w.effects.SetEnabled(true)
	w.enemies.SetEnabled(true)
	w.obstacles.SetEnabled(true)
	w.blocks.SetEnabled(true)
	w.bullets.SetEnabled(true)
}

// collectHittables 取出目标源当前的全部可命中目标
func collectHittables(source HittableSource) []Hittable {
	var out []Hittable
	source.EachHittable(func(h Hittable) bool {
		out = append(out, h)
		return true
	})
	return out
}

// quietTuning 关闭所有周期性生成，便于手动控制场景
func quietTuning() *config.Tuning {
	t := config.DefaultTuning()
	t.Gates.Interval = 0
	t.Obstacles.Interval = 0
	t.Upgrades.Interval = 0
	t.EnemySpawn.Interval = 0
	return t
}

type fakeClock float64

func (c fakeClock) Elapsed() float64 { return float64(c) }
