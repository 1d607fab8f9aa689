package game

// timerEpsilon 以固定帧长累减时产生的浮点残差，低于此值视为归零
const timerEpsilon = 1e-9

// SurvivalTimer 生存倒计时
// 运行期间剩余时间单调不增，下限为 0
type SurvivalTimer struct {
	duration  float64
	remaining float64
	running   bool
}

// NewSurvivalTimer 创建倒计时，时长下限 1 秒
func NewSurvivalTimer(durationSeconds float64) *SurvivalTimer {
	t := &SurvivalTimer{}
	t.Configure(durationSeconds)
	return t
}

// Configure 设置时长并重置剩余时间
func (t *SurvivalTimer) Configure(durationSeconds float64) {
	t.duration = max(1, durationSeconds)
	t.remaining = t.duration
}

// Start 从满时长开始计时
func (t *SurvivalTimer) Start() {
	t.remaining = t.duration
	t.running = true
}

// Stop 停止计时，剩余时间保持不变
func (t *SurvivalTimer) Stop() {
	t.running = false
}

// Tick 推进计时
// 返回倒计时是否已经归零；未运行时总是返回 false
func (t *SurvivalTimer) Tick(deltaTime float64) bool {
	if !t.running {
		return false
	}
	t.remaining -= deltaTime
	if t.remaining < timerEpsilon {
		t.remaining = 0
	}
	return t.remaining == 0
}

// Duration 总时长
func (t *SurvivalTimer) Duration() float64 {
	return t.duration
}

// Remaining 剩余时间
func (t *SurvivalTimer) Remaining() float64 {
	return t.remaining
}

// Elapsed 已经过的生存时间
func (t *SurvivalTimer) Elapsed() float64 {
	return t.duration - t.remaining
}

// IsRunning 是否在计时
func (t *SurvivalTimer) IsRunning() bool {
	return t.running
}
