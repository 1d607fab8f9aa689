package game

// GameState 一局的状态
type GameState int

const (
	// StateStart 初始状态，等待开局
	StateStart GameState = iota
	// StatePlaying 进行中
	StatePlaying
	// StateVictory 撑到倒计时结束
	StateVictory
	// StateGameOver 失败，原因见 GameResult
	StateGameOver
)

// String 返回状态名称
func (s GameState) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StatePlaying:
		return "Playing"
	case StateVictory:
		return "Victory"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// IsTerminal 是否为结束状态
func (s GameState) IsTerminal() bool {
	return s == StateVictory || s == StateGameOver
}

// GameResult 一局的结果，仅在结束状态下有意义
type GameResult int

const (
	ResultNone GameResult = iota
	ResultVictory
	ResultDefeatBySquad
	ResultDefeatByBase
)

// String 返回结果名称
func (r GameResult) String() string {
	switch r {
	case ResultVictory:
		return "Victory"
	case ResultDefeatBySquad:
		return "DefeatBySquad"
	case ResultDefeatByBase:
		return "DefeatByBase"
	default:
		return "None"
	}
}

// WeaponState 武器状态通知的载荷
type WeaponState struct {
	TierName        string
	TierIndex       int
	Progress        int
	NextRequirement int // 最高级时为 0
	TurretCharges   int
	RewardEvents    int
}
