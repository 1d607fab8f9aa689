package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/scenes"
	"github.com/decker502/infinistacker/pkg/types"
)

const (
	frameDelta = 1.0 / 60.0

	// 脚本输入：每 weavePeriod 秒在闸门左右两侧之间切换一次
	weavePeriod    = 4.0
	weaveDragPx    = 6.0
	weaveScreenW   = 540.0
	weaveTolerance = 0.1
)

var viewKinds = []types.EntityKind{
	types.KindEnemy, types.KindBullet, types.KindHitEffect,
	types.KindIceObstacle, types.KindUpgradeBlock, types.KindGate,
}

// reportRow 一局的输出行
type reportRow struct {
	Seed          int64   `yaml:"seed"`
	Result        string  `yaml:"result"`
	Elapsed       float64 `yaml:"elapsed"`
	Squad         int     `yaml:"squad"`
	BaseHP        int     `yaml:"baseHp"`
	Tier          string  `yaml:"tier"`
	Kills         int     `yaml:"kills"`
	Breaches      int     `yaml:"breaches"`
	Gates         int     `yaml:"gatesApplied"`
	Blocks        int     `yaml:"blocksBroken"`
	Obstacles     int     `yaml:"obstaclesDestroyed"`
	TurretDeploys int     `yaml:"turretDeploys"`
	Bullets       int     `yaml:"bulletsFired"`
	Impacts       int     `yaml:"impacts"`
	MaxShake      float64 `yaml:"maxShake"`
	Views         int     `yaml:"views"`
}

// simulate 用固定种子和脚本输入跑一局，最多 seconds 秒
func simulate(tuning *config.Tuning, seed int64, seconds float64) (reportRow, error) {
	factory := entities.NewProxyFactory()
	feedback := &game.FeedbackCounter{}

	scene, err := scenes.NewBattleScene(scenes.BattleSceneOptions{
		Tuning:   tuning,
		Rand:     rand.New(rand.NewSource(seed)),
		Factory:  factory,
		Feedback: feedback,
	})
	if err != nil {
		return reportRow{}, err
	}
	defer scene.Close()

	if !scene.StartGame() {
		return reportRow{}, fmt.Errorf("seed %d: run did not start", seed)
	}

	frames := int(math.Ceil(seconds / frameDelta))
	for frame := range frames {
		if !scene.IsPlaying() {
			break
		}
		weave(scene, float64(frame)*frameDelta)
		scene.Update(frameDelta)
	}

	sum := scene.Summary()
	views := 0
	for _, kind := range viewKinds {
		views += factory.CreatedCount(kind)
	}
	return reportRow{
		Seed:          seed,
		Result:        resultLabel(sum),
		Elapsed:       math.Round(sum.Elapsed*100) / 100,
		Squad:         sum.Squad,
		BaseHP:        sum.BaseHP,
		Tier:          sum.TierName,
		Kills:         sum.Kills,
		Breaches:      sum.Breaches,
		Gates:         sum.GatesApplied,
		Blocks:        sum.BlocksBroken,
		Obstacles:     sum.ObstaclesDestroyed,
		TurretDeploys: sum.TurretDeploys,
		Bullets:       sum.BulletsFired,
		Impacts:       feedback.LightCount + feedback.MediumCount,
		MaxShake:      feedback.MaxShakeAmplitude,
		Views:         views,
	}, nil
}

// weave 让小队在战斗车道内左右摆动，轮流穿过闸门两侧
func weave(scene *scenes.BattleScene, t float64) {
	tuning := scene.Tuning()
	side := 1.0
	if int(t/weavePeriod)%2 == 1 {
		side = -1
	}
	target := tuning.Lanes.CombatCenterX + side*tuning.Gates.ChoiceOffset

	diff := target - scene.Squad().Position().X
	switch {
	case diff > weaveTolerance:
		scene.Drag(weaveDragPx, weaveScreenW)
	case diff < -weaveTolerance:
		scene.Drag(-weaveDragPx, weaveScreenW)
	default:
		scene.ReleaseDrag()
	}
}

// resultLabel 仍在进行中的局标为 Timeout
func resultLabel(sum scenes.Summary) string {
	if sum.State.IsTerminal() {
		return sum.Result.String()
	}
	return "Timeout"
}
