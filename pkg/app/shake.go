package app

import "math"

// ScreenShake 镜头抖动
// 实现 game.Feedback 中的 Shake，其余反馈忽略
type ScreenShake struct {
	amplitude float64 // 世界单位
	duration  float64
	remaining float64
	time      float64

	pixelsPerUnit float64
}

// NewScreenShake 创建抖动器，pixelsPerUnit 把世界振幅换算成像素
func NewScreenShake(pixelsPerUnit float64) *ScreenShake {
	return &ScreenShake{pixelsPerUnit: pixelsPerUnit}
}

// Shake 触发一次抖动
// 正在进行的抖动更强时保留原抖动
func (s *ScreenShake) Shake(amplitude, duration float64) {
	if amplitude <= 0 || duration <= 0 {
		return
	}
	if s.remaining > 0 && s.currentAmplitude() >= amplitude {
		return
	}
	s.amplitude = amplitude
	s.duration = duration
	s.remaining = duration
}

func (s *ScreenShake) LightImpact()  {}
func (s *ScreenShake) MediumImpact() {}
func (s *ScreenShake) Success()      {}

// Update 推进抖动时间
func (s *ScreenShake) Update(deltaTime float64) {
	s.time += deltaTime
	if s.remaining <= 0 {
		return
	}
	s.remaining = math.Max(0, s.remaining-deltaTime)
}

// Active 是否正在抖动
func (s *ScreenShake) Active() bool {
	return s.remaining > 0
}

// Offset 当前帧的像素偏移
func (s *ScreenShake) Offset() (dx, dy float64) {
	amp := s.currentAmplitude() * s.pixelsPerUnit
	if amp == 0 {
		return 0, 0
	}
	return amp * math.Sin(s.time*73), amp * math.Cos(s.time*91)
}

// Reset 立即停止抖动
func (s *ScreenShake) Reset() {
	s.remaining = 0
}

// 振幅随剩余时间线性衰减
func (s *ScreenShake) currentAmplitude() float64 {
	if s.remaining <= 0 || s.duration <= 0 {
		return 0
	}
	return s.amplitude * s.remaining / s.duration
}
