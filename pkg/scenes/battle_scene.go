package scenes

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/systems"
	"github.com/decker502/infinistacker/pkg/types"
)

// BattleSceneOptions 场景的协作者
type BattleSceneOptions struct {
	Tuning   *config.Tuning // 必需
	Rand     *rand.Rand     // 必需，所有随机生成共用
	Factory  entities.Factory
	Feedback game.Feedback
	Sink     game.PresentationSink
}

// BattleScene 一局模拟的组合根
//
// 创建事件总线、模型和全部系统并按固定顺序推进。
// 场景本身不关心谁在驱动它：窗口宿主、终端宿主和测试都只调用 Update。
type BattleScene struct {
	tuning *config.Tuning
	bus    *game.EventBus

	squad  *game.Squad
	base   *game.BaseHealth
	weapon *game.WeaponProgression
	timer  *game.SurvivalTimer
	mover  *game.DragMover
	state  *game.StateMachine

	effects    *systems.HitEffectSystem
	enemies    *systems.EnemyManager
	difficulty *systems.DifficultyEngine
	spawner    *systems.EnemySpawnSystem
	gates      *systems.GateSystem
	obstacles  *systems.ObstacleSystem
	blocks     *systems.UpgradeBlockSystem
	collision  *systems.CollisionSystem
	bullets    *systems.BulletSystem
	autoFire   *systems.AutoFireSystem

	frames int
}

// NewBattleScene 组装一局模拟，进入 Start 状态
func NewBattleScene(opts BattleSceneOptions) (*BattleScene, error) {
	if opts.Tuning == nil {
		return nil, fmt.Errorf("battle scene: tuning: %w", game.ErrMissingDependency)
	}
	if opts.Rand == nil {
		return nil, fmt.Errorf("battle scene: random source: %w", game.ErrMissingDependency)
	}

	t := opts.Tuning
	lanes := t.Lanes
	factory := entities.OrProxy(opts.Factory)
	feedback := game.OrNullFeedback(opts.Feedback)

	s := &BattleScene{tuning: t, bus: game.NewEventBus()}
	if opts.Sink != nil {
		s.bus.AttachSink(opts.Sink)
	}

	s.squad = game.NewSquad(s.bus, t.Squad, types.Vec3{X: lanes.CombatCenterX, Z: lanes.PlayerZ})
	s.base = game.NewBaseHealth(s.bus, t.Base.MaxHP)
	s.weapon = game.NewWeaponProgression(s.bus, t.Weapon)
	s.timer = game.NewSurvivalTimer(t.Run.SurvivalSeconds)
	s.mover = game.NewDragMover(s.squad, t.Movement)

	s.effects = systems.NewHitEffectSystem(factory, t.HitEffects)
	s.enemies = systems.NewEnemyManager(factory, t.Enemies, s.squad, s.base, s.effects, feedback, opts.Rand)
	s.difficulty = systems.NewDifficultyEngine(t.EnemySpawn)
	s.spawner = systems.NewEnemySpawnSystem(t.EnemySpawn, lanes.CombatCenterX, s.enemies, s.difficulty, s.timer, opts.Rand)
	s.gates = systems.NewGateSystem(factory, t.Gates, lanes.CombatCenterX, s.squad, feedback, opts.Rand)
	s.obstacles = systems.NewObstacleSystem(factory, t.Obstacles, lanes.CombatCenterX, s.squad, s.effects, feedback, opts.Rand)
	s.blocks = systems.NewUpgradeBlockSystem(factory, t.Upgrades, lanes.UpgradeCenterX, s.weapon, s.effects, feedback, opts.Rand)
	// 命中优先级：敌人 → 冰块 → 升级方块
	s.collision = systems.NewCollisionSystem(t.Bullets.HitRadius, s.enemies, s.obstacles, s.blocks)
	s.bullets = systems.NewBulletSystem(factory, t.Bullets, s.collision, s.effects)
	s.autoFire = systems.NewAutoFireSystem(t.AutoFire, t.Turret, s.squad, s.weapon, s.bullets, s.enemies)

	state, err := game.NewStateMachine(game.StateMachineDeps{
		Bus:      s.bus,
		Squad:    s.squad,
		Base:     s.base,
		Weapon:   s.weapon,
		Timer:    s.timer,
		Feedback: feedback,
		Subsystems: []game.Subsystem{
			s.mover,
			s.spawner,
			s.enemies,
			s.gates,
			s.obstacles,
			s.blocks,
			s.autoFire,
			s.bullets,
			s.effects,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("battle scene: %w", err)
	}
	s.state = state

	log.Printf("[BattleScene] 场景就绪: 生存 %.0fs, 小队上限 %d, 敌人上限 %d",
		t.Run.SurvivalSeconds, s.squad.MaxCount(), t.Enemies.MaxActive)
	return s, nil
}

// Update 推进一帧
// 顺序：移动 → 生成 → 敌群 → 遭遇 → 射击 → 子弹命中 → 特效 → 状态判定
func (s *BattleScene) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	s.frames++

	s.mover.Update(deltaTime)     // 1. 拖拽移动
	s.spawner.Update(deltaTime)   // 2. 敌人波次
	s.enemies.Update(deltaTime)   // 3. 敌群前进与突破
	s.gates.Update(deltaTime)     // 4. 闸门
	s.obstacles.Update(deltaTime) // 5. 冰块
	s.blocks.Update(deltaTime)    // 6. 升级方块
	s.autoFire.Update(deltaTime)  // 7. 自动射击
	s.bullets.Update(deltaTime)   // 8. 子弹与命中
	s.effects.Update(deltaTime)   // 9. 命中特效
	s.state.Update(deltaTime)     // 10. 倒计时与胜负
}

// StartGame 开始一局；小队回到战斗车道中心
func (s *BattleScene) StartGame() bool {
	if s.state.State() != game.StateStart {
		return false
	}
	s.squad.SetPositionX(s.tuning.Lanes.CombatCenterX)
	return s.state.StartGame()
}

// RestartGame 从结束状态回到 Start
func (s *BattleScene) RestartGame() bool {
	return s.state.RestartGame()
}

// Drag 传入本帧的水平拖拽像素量
func (s *BattleScene) Drag(deltaPixels, screenWidth float64) {
	s.mover.Drag(deltaPixels, screenWidth)
}

// ReleaseDrag 结束拖拽
func (s *BattleScene) ReleaseDrag() {
	s.mover.Release()
}

// Close 拆除事件订阅，场景不可再用
func (s *BattleScene) Close() {
	s.bus.Close()
}

// IsPlaying 是否处于 Playing
func (s *BattleScene) IsPlaying() bool {
	return s.state.State() == game.StatePlaying
}

// Frames 已推进的帧数
func (s *BattleScene) Frames() int {
	return s.frames
}

func (s *BattleScene) Tuning() *config.Tuning                { return s.tuning }
func (s *BattleScene) Bus() *game.EventBus                   { return s.bus }
func (s *BattleScene) Squad() *game.Squad                    { return s.squad }
func (s *BattleScene) Base() *game.BaseHealth                { return s.base }
func (s *BattleScene) Weapon() *game.WeaponProgression       { return s.weapon }
func (s *BattleScene) Timer() *game.SurvivalTimer            { return s.timer }
func (s *BattleScene) Mover() *game.DragMover                { return s.mover }
func (s *BattleScene) StateMachine() *game.StateMachine      { return s.state }
func (s *BattleScene) Enemies() *systems.EnemyManager        { return s.enemies }
func (s *BattleScene) Spawner() *systems.EnemySpawnSystem    { return s.spawner }
func (s *BattleScene) Gates() *systems.GateSystem            { return s.gates }
func (s *BattleScene) Obstacles() *systems.ObstacleSystem    { return s.obstacles }
func (s *BattleScene) Blocks() *systems.UpgradeBlockSystem   { return s.blocks }
func (s *BattleScene) Bullets() *systems.BulletSystem        { return s.bullets }
func (s *BattleScene) Effects() *systems.HitEffectSystem     { return s.effects }
func (s *BattleScene) AutoFire() *systems.AutoFireSystem     { return s.autoFire }
func (s *BattleScene) Difficulty() *systems.DifficultyEngine { return s.difficulty }
