package game

// Feedback 触感与镜头反馈能力
// 由宿主实现（音效、震动、屏幕抖动），核心只在击杀、突破、碰撞、胜利时调用
type Feedback interface {
	LightImpact()
	MediumImpact()
	Success()
	Shake(amplitude, duration float64)
}

// NullFeedback 空实现，未注入反馈时使用
type NullFeedback struct{}

func (NullFeedback) LightImpact()       {}
func (NullFeedback) MediumImpact()      {}
func (NullFeedback) Success()           {}
func (NullFeedback) Shake(_, _ float64) {}

// OrNullFeedback 返回 f，f 为 nil 时返回空实现
func OrNullFeedback(f Feedback) Feedback {
	if f == nil {
		return NullFeedback{}
	}
	return f
}

// FeedbackCounter 统计各类反馈调用次数
// 无窗口宿主用它汇总一局的反馈强度
type FeedbackCounter struct {
	LightCount   int
	MediumCount  int
	SuccessCount int
	ShakeCount   int

	// MaxShakeAmplitude 本局最强的一次抖动
	MaxShakeAmplitude float64
}

func (c *FeedbackCounter) LightImpact()  { c.LightCount++ }
func (c *FeedbackCounter) MediumImpact() { c.MediumCount++ }
func (c *FeedbackCounter) Success()      { c.SuccessCount++ }

func (c *FeedbackCounter) Shake(amplitude, _ float64) {
	c.ShakeCount++
	if amplitude > c.MaxShakeAmplitude {
		c.MaxShakeAmplitude = amplitude
	}
}

// FeedbackFanout 把反馈同时转发给多个实现
type FeedbackFanout []Feedback

func (f FeedbackFanout) LightImpact() {
	for _, fb := range f {
		fb.LightImpact()
	}
}

func (f FeedbackFanout) MediumImpact() {
	for _, fb := range f {
		fb.MediumImpact()
	}
}

func (f FeedbackFanout) Success() {
	for _, fb := range f {
		fb.Success()
	}
}

func (f FeedbackFanout) Shake(amplitude, duration float64) {
	for _, fb := range f {
		fb.Shake(amplitude, duration)
	}
}
