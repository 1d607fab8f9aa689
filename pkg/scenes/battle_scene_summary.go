package scenes

import (
	"fmt"
	"strings"

	"github.com/decker502/infinistacker/pkg/game"
)

// Summary 一局的汇总
// 结束状态下小队、基地、武器取自结束时的快照
type Summary struct {
	State     game.GameState
	Result    game.GameResult
	Elapsed   float64
	Remaining float64

	Squad     int
	BaseHP    int
	BaseMaxHP int
	TierIndex int
	TierName  string
	Charges   int

	Kills              int
	Breaches           int
	ActiveEnemies      int
	GatesApplied       int
	BlocksBroken       int
	ObstaclesDestroyed int
	TurretDeploys      int
	BulletsFired       int
}

// Summary 汇总当前这一局
func (s *BattleScene) Summary() Summary {
	sum := Summary{
		State:              s.state.State(),
		Result:             s.state.Result(),
		Elapsed:            s.timer.Elapsed(),
		Remaining:          s.timer.Remaining(),
		Kills:              s.enemies.Kills(),
		Breaches:           s.enemies.Breaches(),
		ActiveEnemies:      s.enemies.ActiveCount(),
		GatesApplied:       s.gates.Applied(),
		BlocksBroken:       s.blocks.Broken(),
		ObstaclesDestroyed: s.obstacles.Destroyed(),
		TurretDeploys:      s.autoFire.TurretDeploys(),
		BulletsFired:       s.bullets.Fired(),
	}

	if sum.State.IsTerminal() {
		run := s.state.LastRun()
		sum.Elapsed = run.Elapsed
		sum.Squad = run.SquadCount
		sum.BaseHP = run.BaseHP
		sum.BaseMaxHP = run.BaseMaxHP
		sum.TierIndex = run.TierIndex
		sum.TierName = run.TierName
		sum.Charges = run.TurretCharges
		return sum
	}

	stats := s.weapon.Stats()
	sum.Squad = s.squad.Count()
	sum.BaseHP = s.base.Current()
	sum.BaseMaxHP = s.base.Max()
	sum.TierIndex = stats.TierIndex
	sum.TierName = stats.TierName
	sum.Charges = s.weapon.TurretCharges()
	return sum
}

// String 多行文本，供 HUD 和剪贴板使用
func (sum Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "InfiniStacker %s", sum.State)
	if sum.Result != game.ResultNone {
		fmt.Fprintf(&b, " (%s)", sum.Result)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "time %.1fs  squad %d  base %d/%d\n", sum.Elapsed, sum.Squad, sum.BaseHP, sum.BaseMaxHP)
	fmt.Fprintf(&b, "weapon %s (tier %d)  turret charges %d  deploys %d\n", sum.TierName, sum.TierIndex+1, sum.Charges, sum.TurretDeploys)
	fmt.Fprintf(&b, "kills %d  breaches %d  gates %d  blocks %d  ice %d\n",
		sum.Kills, sum.Breaches, sum.GatesApplied, sum.BlocksBroken, sum.ObstaclesDestroyed)
	return b.String()
}
