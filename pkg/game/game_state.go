package game

import (
	"fmt"
	"log"
)

// Subsystem 受状态机统一启停的子系统
// 禁用时停止推进并清零内部累加器，重新启用不会补算停用期间的时间
type Subsystem interface {
	SetEnabled(enabled bool)
	Enabled() bool
	Reset()
}

// StateMachineDeps 状态机的协作者
type StateMachineDeps struct {
	Bus        *EventBus
	Squad      *Squad
	Base       *BaseHealth
	Weapon     *WeaponProgression
	Timer      *SurvivalTimer
	Feedback   Feedback    // 可为 nil
	Subsystems []Subsystem // 生成器、敌群、射击、移动等
}

// RunRecord 一局结束时的快照
// 进入结束状态时小队、基地、武器会被重置，结算界面读取这里的值
type RunRecord struct {
	Result        GameResult
	Elapsed       float64
	SquadCount    int
	BaseHP        int
	BaseMaxHP     int
	TierIndex     int
	TierName      string
	TurretCharges int
}

// StateMachine 一局的权威状态机
//
// Start → Playing（StartGame）→ Victory（倒计时归零）| GameOver（人数或基地归零）。
// 失败条件通过订阅人数与基地通知被动判定，倒计时只在 Playing 状态下每帧推进。
type StateMachine struct {
	bus        *EventBus
	squad      *Squad
	base       *BaseHealth
	weapon     *WeaponProgression
	timer      *SurvivalTimer
	feedback   Feedback
	subsystems []Subsystem

	state  GameState
	result GameResult
	record RunRecord
	runs   int
}

// NewStateMachine 创建状态机并进入 Start 状态
// 缺少任何必需协作者时返回包装了 ErrMissingDependency 的错误
func NewStateMachine(deps StateMachineDeps) (*StateMachine, error) {
	missing := ""
	switch {
	case deps.Bus == nil:
		missing = "event bus"
	case deps.Squad == nil:
		missing = "squad"
	case deps.Base == nil:
		missing = "base health"
	case deps.Weapon == nil:
		missing = "weapon progression"
	case deps.Timer == nil:
		missing = "survival timer"
	}
	if missing == "" {
		for i, sub := range deps.Subsystems {
			if sub == nil {
				missing = fmt.Sprintf("subsystem #%d", i)
				break
			}
		}
	}
	if missing != "" {
		return nil, fmt.Errorf("state machine: %s: %w", missing, ErrMissingDependency)
	}

	sm := &StateMachine{
		bus:        deps.Bus,
		squad:      deps.Squad,
		base:       deps.Base,
		weapon:     deps.Weapon,
		timer:      deps.Timer,
		feedback:   OrNullFeedback(deps.Feedback),
		subsystems: deps.Subsystems,
	}

	sm.bus.OnSquadChanged(sm.onSquadChanged)
	sm.bus.OnBaseHpChanged(sm.onBaseHpChanged)

	sm.enterStartState()
	return sm, nil
}

// State 当前状态
func (sm *StateMachine) State() GameState {
	return sm.state
}

// Result 最近一局的结果，未结束时为 ResultNone
func (sm *StateMachine) Result() GameResult {
	return sm.result
}

// LastRun 最近一次结束时的快照
func (sm *StateMachine) LastRun() RunRecord {
	return sm.record
}

// RunsStarted 已开始的局数
func (sm *StateMachine) RunsStarted() int {
	return sm.runs
}

// StartGame 从 Start 进入 Playing
// 重置并启用全部子系统、开始倒计时；其他状态下调用返回 false
func (sm *StateMachine) StartGame() bool {
	if sm.state != StateStart {
		return false
	}

	sm.resetModels()
	for _, sub := range sm.subsystems {
		sub.Reset()
		sub.SetEnabled(true)
	}
	sm.timer.Start()

	sm.runs++
	sm.result = ResultNone
	sm.setState(StatePlaying)
	sm.bus.RaiseTimerChanged(sm.timer.Remaining())
	sm.bus.RaiseStateChanged(sm.state, sm.result)
	return true
}

// RestartGame 从结束状态回到全新的 Start
// 非结束状态下调用返回 false
func (sm *StateMachine) RestartGame() bool {
	if !sm.state.IsTerminal() {
		return false
	}
	sm.enterStartState()
	return true
}

// Update 推进倒计时，仅在 Playing 状态下生效
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.state != StatePlaying {
		return
	}

	if sm.timer.Tick(deltaTime) {
		sm.bus.RaiseTimerChanged(0)
		sm.endGame(ResultVictory)
		return
	}
	sm.bus.RaiseTimerChanged(sm.timer.Remaining())
}

// AllSubsystemsDisabled 是否全部子系统都已停用
func (sm *StateMachine) AllSubsystemsDisabled() bool {
	for _, sub := range sm.subsystems {
		if sub.Enabled() {
			return false
		}
	}
	return true
}

func (sm *StateMachine) enterStartState() {
	sm.timer.Stop()
	sm.timer.Configure(sm.timer.Duration())
	sm.haltSubsystems()
	for _, sub := range sm.subsystems {
		sub.Reset()
	}

	sm.result = ResultNone
	sm.setState(StateStart)
	sm.resetModels()
	sm.bus.RaiseTimerChanged(sm.timer.Duration())
	sm.bus.RaiseStateChanged(sm.state, sm.result)
}

func (sm *StateMachine) endGame(result GameResult) {
	sm.timer.Stop()
	sm.haltSubsystems()

	if result == ResultVictory {
		sm.feedback.Success()
	}

	sm.record = RunRecord{
		Result:        result,
		Elapsed:       sm.timer.Elapsed(),
		SquadCount:    sm.squad.Count(),
		BaseHP:        sm.base.Current(),
		BaseMaxHP:     sm.base.Max(),
		TierIndex:     sm.weapon.TierIndex(),
		TierName:      sm.weapon.Stats().TierName,
		TurretCharges: sm.weapon.TurretCharges(),
	}

	sm.result = result
	if result == ResultVictory {
		sm.setState(StateVictory)
	} else {
		sm.setState(StateGameOver)
	}
	sm.resetModels()
	sm.bus.RaiseStateChanged(sm.state, sm.result)
}

func (sm *StateMachine) haltSubsystems() {
	for _, sub := range sm.subsystems {
		sub.SetEnabled(false)
	}
}

func (sm *StateMachine) resetModels() {
	sm.squad.ResetSquad()
	sm.base.ResetHealth()
	sm.weapon.ResetProgression()
}

func (sm *StateMachine) setState(next GameState) {
	if sm.state != next {
		log.Printf("[StateMachine] 状态切换: %s -> %s (%s)", sm.state, next, sm.result)
	}
	sm.state = next
}

func (sm *StateMachine) onSquadChanged(count int) {
	if sm.state == StatePlaying && count <= 0 {
		sm.endGame(ResultDefeatBySquad)
	}
}

func (sm *StateMachine) onBaseHpChanged(current, _ int) {
	if sm.state == StatePlaying && current <= 0 {
		sm.endGame(ResultDefeatByBase)
	}
}
