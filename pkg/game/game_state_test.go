package game

import (
	"errors"
	"testing"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
)

// fakeSubsystem 记录启停与重置次数
type fakeSubsystem struct {
	enabled bool
	resets  int
}

func (f *fakeSubsystem) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *fakeSubsystem) Enabled() bool           { return f.enabled }
func (f *fakeSubsystem) Reset()                  { f.resets++ }

type stateFixture struct {
	bus      *EventBus
	squad    *Squad
	base     *BaseHealth
	weapon   *WeaponProgression
	timer    *SurvivalTimer
	sub      *fakeSubsystem
	feedback *FeedbackCounter
	sm       *StateMachine
	states   []GameState
	results  []GameResult
}

func newStateFixture(t *testing.T) *stateFixture {
	t.Helper()
	tuning := config.DefaultTuning()

	f := &stateFixture{bus: NewEventBus(), sub: &fakeSubsystem{}, feedback: &FeedbackCounter{}}
	f.bus.OnStateChanged(func(s GameState, r GameResult) {
		f.states = append(f.states, s)
		f.results = append(f.results, r)
	})
	f.squad = NewSquad(f.bus, tuning.Squad, types.Vec3{X: 2.2, Z: -4.8})
	f.base = NewBaseHealth(f.bus, tuning.Base.MaxHP)
	f.weapon = NewWeaponProgression(f.bus, tuning.Weapon)
	f.timer = NewSurvivalTimer(tuning.Run.SurvivalSeconds)

	sm, err := NewStateMachine(StateMachineDeps{
		Bus:        f.bus,
		Squad:      f.squad,
		Base:       f.base,
		Weapon:     f.weapon,
		Timer:      f.timer,
		Feedback:   f.feedback,
		Subsystems: []Subsystem{f.sub},
	})
	if err != nil {
		t.Fatalf("NewStateMachine failed: %v", err)
	}
	f.sm = sm
	return f
}

func TestNewStateMachine_MissingDependency(t *testing.T) {
	bus := NewEventBus()
	_, err := NewStateMachine(StateMachineDeps{Bus: bus})
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("Expected ErrMissingDependency, got %v", err)
	}

	tuning := config.DefaultTuning()
	_, err = NewStateMachine(StateMachineDeps{
		Bus:        bus,
		Squad:      NewSquad(bus, tuning.Squad, types.Vec3{}),
		Base:       NewBaseHealth(bus, 10),
		Weapon:     NewWeaponProgression(bus, tuning.Weapon),
		Timer:      NewSurvivalTimer(10),
		Subsystems: []Subsystem{nil},
	})
	if !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency for nil subsystem, got %v", err)
	}
}

func TestStateMachine_InitialState(t *testing.T) {
	f := newStateFixture(t)

	if f.sm.State() != StateStart {
		t.Errorf("Expected Start, got %s", f.sm.State())
	}
	if f.sub.Enabled() {
		t.Error("Expected subsystems disabled in Start")
	}
	if f.timer.IsRunning() {
		t.Error("Expected timer stopped in Start")
	}
}

func TestStateMachine_StartGame(t *testing.T) {
	f := newStateFixture(t)

	if !f.sm.StartGame() {
		t.Fatal("Expected StartGame to succeed from Start")
	}
	if f.sm.State() != StatePlaying {
		t.Errorf("Expected Playing, got %s", f.sm.State())
	}
	if !f.sub.Enabled() {
		t.Error("Expected subsystems enabled")
	}
	if !f.timer.IsRunning() {
		t.Error("Expected timer running")
	}
	if f.sm.StartGame() {
		t.Error("Expected second StartGame to fail")
	}
	if f.sm.RestartGame() {
		t.Error("Expected RestartGame to fail while Playing")
	}
}

func TestStateMachine_Victory(t *testing.T) {
	f := newStateFixture(t)
	f.sm.StartGame()
	f.states = nil

	for i := 0; i < 3700; i++ {
		f.sm.Update(1.0 / 60.0)
	}

	if f.sm.State() != StateVictory || f.sm.Result() != ResultVictory {
		t.Fatalf("Expected Victory, got %s/%s", f.sm.State(), f.sm.Result())
	}
	if len(f.states) != 1 {
		t.Errorf("Expected exactly one state change, got %v", f.states)
	}
	if f.timer.Remaining() != 0 {
		t.Errorf("Expected countdown 0, got %v", f.timer.Remaining())
	}
	if f.feedback.SuccessCount != 1 {
		t.Errorf("Expected one Success feedback, got %d", f.feedback.SuccessCount)
	}
	if !f.sm.AllSubsystemsDisabled() {
		t.Error("Expected all subsystems disabled after victory")
	}
}

func TestStateMachine_DefeatBySquad(t *testing.T) {
	f := newStateFixture(t)
	f.sm.StartGame()
	f.squad.SetCount(12)
	f.weapon.AddProgress(20)

	f.squad.SetCount(0)

	if f.sm.State() != StateGameOver || f.sm.Result() != ResultDefeatBySquad {
		t.Fatalf("Expected GameOver/DefeatBySquad, got %s/%s", f.sm.State(), f.sm.Result())
	}
	if !f.sm.AllSubsystemsDisabled() {
		t.Error("Expected all subsystems disabled")
	}

	record := f.sm.LastRun()
	if record.SquadCount != 0 || record.TierIndex != 1 {
		t.Errorf("Expected snapshot squad=0 tier=1, got %+v", record)
	}

	// 结束状态下模型已回到初始值
	if f.squad.Count() != 1 || f.base.Current() != 450 || f.weapon.TierIndex() != 0 {
		t.Errorf("Expected models reset, got squad=%d base=%d tier=%d", f.squad.Count(), f.base.Current(), f.weapon.TierIndex())
	}

	// 结束后的变化不再触发状态切换
	f.squad.SetCount(0)
	if f.sm.Result() != ResultDefeatBySquad {
		t.Errorf("Expected result unchanged, got %s", f.sm.Result())
	}
}

func TestStateMachine_DefeatByBase(t *testing.T) {
	f := newStateFixture(t)
	f.sm.StartGame()

	f.base.ApplyDamage(10000)

	if f.sm.State() != StateGameOver || f.sm.Result() != ResultDefeatByBase {
		t.Fatalf("Expected GameOver/DefeatByBase, got %s/%s", f.sm.State(), f.sm.Result())
	}
	if f.sm.LastRun().BaseHP != 0 {
		t.Errorf("Expected snapshot base hp 0, got %d", f.sm.LastRun().BaseHP)
	}
}

func TestStateMachine_DefeatIgnoredOutsidePlaying(t *testing.T) {
	f := newStateFixture(t)

	f.squad.SetCount(0)
	if f.sm.State() != StateStart {
		t.Errorf("Expected Start, got %s", f.sm.State())
	}
}

func TestStateMachine_Restart(t *testing.T) {
	f := newStateFixture(t)
	f.sm.StartGame()
	f.base.ApplyDamage(10000)

	resetsBefore := f.sub.resets
	if !f.sm.RestartGame() {
		t.Fatal("Expected RestartGame to succeed from GameOver")
	}
	if f.sm.State() != StateStart {
		t.Errorf("Expected Start, got %s", f.sm.State())
	}
	if f.sub.resets <= resetsBefore {
		t.Error("Expected subsystems reset on restart")
	}
	if f.timer.Remaining() != f.timer.Duration() {
		t.Errorf("Expected full countdown, got %v", f.timer.Remaining())
	}

	if !f.sm.StartGame() {
		t.Fatal("Expected StartGame after restart")
	}
	if f.sm.RunsStarted() != 2 {
		t.Errorf("Expected 2 runs, got %d", f.sm.RunsStarted())
	}
}
