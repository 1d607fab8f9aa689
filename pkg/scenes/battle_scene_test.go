package scenes

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/types"
)

// recordingSink 记录收到的通知
type recordingSink struct {
	states        []game.GameState
	results       []game.GameResult
	lastRemaining float64
	squadEvents   int
}

func (r *recordingSink) SquadChanged(int)                    { r.squadEvents++ }
func (r *recordingSink) BaseHpChanged(int, int)              {}
func (r *recordingSink) TimerChanged(remaining float64)      { r.lastRemaining = remaining }
func (r *recordingSink) WeaponStateChanged(game.WeaponState) {}

func (r *recordingSink) StateChanged(state game.GameState, result game.GameResult) {
	r.states = append(r.states, state)
	r.results = append(r.results, result)
}

func (r *recordingSink) count(state game.GameState) int {
	n := 0
	for _, s := range r.states {
		if s == state {
			n++
		}
	}
	return n
}

// quietTuning 关闭全部周期性生成
func quietTuning() *config.Tuning {
	t := config.DefaultTuning()
	t.EnemySpawn.Interval = 0
	t.Gates.Interval = 0
	t.Obstacles.Interval = 0
	t.Upgrades.Interval = 0
	return t
}

func newTestScene(t *testing.T, tuning *config.Tuning, seed int64) (*BattleScene, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	scene, err := NewBattleScene(BattleSceneOptions{
		Tuning:   tuning,
		Rand:     rand.New(rand.NewSource(seed)),
		Feedback: &game.FeedbackCounter{},
		Sink:     sink,
	})
	if err != nil {
		t.Fatalf("NewBattleScene failed: %v", err)
	}
	t.Cleanup(scene.Close)
	return scene, sink
}

func TestNewBattleScene_MissingDependencies(t *testing.T) {
	tests := []struct {
		name string
		opts BattleSceneOptions
	}{
		{"缺少参数", BattleSceneOptions{Rand: rand.New(rand.NewSource(1))}},
		{"缺少随机源", BattleSceneOptions{Tuning: config.DefaultTuning()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := NewBattleScene(tt.opts)
			if scene != nil {
				t.Error("Expected nil scene")
			}
			if !errors.Is(err, game.ErrMissingDependency) {
				t.Errorf("Expected ErrMissingDependency, got %v", err)
			}
		})
	}
}

func TestBattleScene_StartsInStartState(t *testing.T) {
	scene, _ := newTestScene(t, quietTuning(), 1)

	if scene.StateMachine().State() != game.StateStart {
		t.Fatalf("Expected Start, got %s", scene.StateMachine().State())
	}
	if !scene.StateMachine().AllSubsystemsDisabled() {
		t.Error("Expected all subsystems disabled in Start")
	}
	if scene.DebugHook(1) {
		t.Error("Expected debug hooks to be ignored outside Playing")
	}
	if scene.RestartGame() {
		t.Error("Expected RestartGame to fail in Start")
	}

	scene.Update(1)
	if scene.Timer().Remaining() != 60 {
		t.Errorf("Expected countdown to stay at 60 before start, got %.2f", scene.Timer().Remaining())
	}
}

func TestBattleScene_VictoryAfterSurvivalTime(t *testing.T) {
	scene, sink := newTestScene(t, quietTuning(), 1)

	if !scene.StartGame() {
		t.Fatal("Expected StartGame to succeed")
	}
	if scene.StartGame() {
		t.Error("Expected second StartGame to fail")
	}

	for i := range 3600 {
		if scene.StateMachine().State() != game.StatePlaying {
			t.Fatalf("Expected Playing before frame %d, got %s", i, scene.StateMachine().State())
		}
		scene.Update(1.0 / 60)
	}

	sm := scene.StateMachine()
	if sm.State() != game.StateVictory || sm.Result() != game.ResultVictory {
		t.Fatalf("Expected Victory, got %s (%s)", sm.State(), sm.Result())
	}
	if sink.count(game.StateVictory) != 1 {
		t.Errorf("Expected exactly one Victory notification, got %d", sink.count(game.StateVictory))
	}
	if sink.count(game.StateGameOver) != 0 {
		t.Error("Expected no defeat notification")
	}
	if sink.lastRemaining != 0 || scene.Timer().Remaining() != 0 {
		t.Errorf("Expected countdown 0, got sink=%.3f timer=%.3f", sink.lastRemaining, scene.Timer().Remaining())
	}
	if !sm.AllSubsystemsDisabled() {
		t.Error("Expected all subsystems disabled after Victory")
	}
}

func TestBattleScene_VictoryInSingleStep(t *testing.T) {
	scene, _ := newTestScene(t, quietTuning(), 1)
	scene.StartGame()

	scene.Update(scene.Timer().Duration())

	sm := scene.StateMachine()
	if sm.State() != game.StateVictory {
		t.Fatalf("Expected Victory after one step of the full duration, got %s", sm.State())
	}
	if scene.Timer().Remaining() != 0 {
		t.Errorf("Expected countdown 0, got %v", scene.Timer().Remaining())
	}
}

func TestBattleScene_DefeatBySquadViaBreaches(t *testing.T) {
	scene, sink := newTestScene(t, quietTuning(), 1)
	scene.StartGame()
	scene.Squad().SetCount(3)

	for i := range 3 {
		scene.Enemies().Spawn(types.Vec3{X: 0, Z: float64(i) * 0.5}, 100, 5)
	}

	for range 120 {
		scene.Update(1.0 / 60)
	}

	sm := scene.StateMachine()
	if sm.State() != game.StateGameOver || sm.Result() != game.ResultDefeatBySquad {
		t.Fatalf("Expected GameOver(DefeatBySquad), got %s (%s)", sm.State(), sm.Result())
	}
	if !sm.AllSubsystemsDisabled() {
		t.Error("Expected all subsystems disabled after defeat")
	}
	if scene.Enemies().Breaches() != 3 {
		t.Errorf("Expected 3 breaches, got %d", scene.Enemies().Breaches())
	}
	if sink.count(game.StateGameOver) != 1 {
		t.Errorf("Expected one GameOver notification, got %d", sink.count(game.StateGameOver))
	}

	// 结算读快照，模型已回到初始值
	sum := scene.Summary()
	if sum.Squad != 0 {
		t.Errorf("Expected summary squad 0, got %d", sum.Squad)
	}
	if scene.Squad().Count() != 1 {
		t.Errorf("Expected squad reset to 1, got %d", scene.Squad().Count())
	}
	if scene.Base().Current() != scene.Base().Max() {
		t.Errorf("Expected base reset to full, got %d", scene.Base().Current())
	}
}

func TestBattleScene_DefeatByBase(t *testing.T) {
	scene, _ := newTestScene(t, quietTuning(), 1)
	scene.StartGame()

	for range 4 {
		scene.DebugHook(4)
	}
	if scene.StateMachine().State() != game.StatePlaying {
		t.Fatalf("Expected Playing with 50 hp left, got %s", scene.StateMachine().State())
	}

	scene.DebugHook(4)
	sm := scene.StateMachine()
	if sm.Result() != game.ResultDefeatByBase {
		t.Fatalf("Expected DefeatByBase, got %s", sm.Result())
	}
	if scene.Summary().BaseHP != 0 {
		t.Errorf("Expected summary base hp 0, got %d", scene.Summary().BaseHP)
	}
}

func TestBattleScene_RestartCycle(t *testing.T) {
	scene, _ := newTestScene(t, quietTuning(), 1)
	scene.StartGame()
	scene.DebugHook(2)
	for range 5 {
		scene.DebugHook(4)
	}

	if !scene.RestartGame() {
		t.Fatal("Expected RestartGame from GameOver to succeed")
	}
	if scene.StateMachine().State() != game.StateStart {
		t.Fatalf("Expected Start after restart, got %s", scene.StateMachine().State())
	}
	if scene.Enemies().ActiveCount() != 0 {
		t.Errorf("Expected enemies cleared on restart, got %d", scene.Enemies().ActiveCount())
	}

	if !scene.StartGame() {
		t.Fatal("Expected StartGame after restart to succeed")
	}
	if scene.StateMachine().RunsStarted() != 2 {
		t.Errorf("Expected 2 runs started, got %d", scene.StateMachine().RunsStarted())
	}
	if scene.Timer().Remaining() != 60 {
		t.Errorf("Expected fresh countdown, got %.2f", scene.Timer().Remaining())
	}
}

func TestBattleScene_DebugHooks(t *testing.T) {
	scene, _ := newTestScene(t, quietTuning(), 3)
	scene.StartGame()

	for n := 1; n <= 6; n++ {
		if !scene.DebugHook(n) {
			t.Errorf("Expected hook %d to run while Playing", n)
		}
	}
	if scene.DebugHook(7) {
		t.Error("Expected unknown hook to be ignored")
	}

	if scene.Squad().Count() != 11 {
		t.Errorf("Expected squad 11, got %d", scene.Squad().Count())
	}
	if scene.Enemies().ActiveCount() != 12 {
		t.Errorf("Expected 12 enemies, got %d", scene.Enemies().ActiveCount())
	}
	if scene.Gates().ActiveCount() != 1 || scene.Obstacles().ActiveCount() != 1 || scene.Blocks().ActiveCount() != 1 {
		t.Error("Expected one gate pair, one obstacle and one upgrade block")
	}
	if scene.Base().Current() != 350 {
		t.Errorf("Expected base 350, got %d", scene.Base().Current())
	}
}

func TestBattleScene_DragMovesSquad(t *testing.T) {
	scene, _ := newTestScene(t, quietTuning(), 1)
	scene.StartGame()

	startX := scene.Squad().Position().X
	scene.Drag(-100, 1000)
	for range 60 {
		scene.Update(1.0 / 60)
	}
	scene.ReleaseDrag()

	if scene.Squad().Position().X >= startX {
		t.Errorf("Expected squad to move left from %.2f, got %.2f", startX, scene.Squad().Position().X)
	}
}

func TestBattleScene_SeededRunsAreDeterministic(t *testing.T) {
	run := func() Summary {
		scene, _ := newTestScene(t, config.DefaultTuning(), 42)
		scene.StartGame()
		for i := range 1200 {
			// 左右摆动
			if i%120 < 60 {
				scene.Drag(4, 1000)
			} else {
				scene.Drag(-4, 1000)
			}
			scene.Update(1.0 / 60)
		}
		return scene.Summary()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("Expected identical summaries for the same seed:\n%v\n%v", a, b)
	}
	if a.BulletsFired == 0 {
		t.Error("Expected the squad to have fired")
	}
}
