package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	ifaudio "github.com/decker502/infinistacker/internal/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 同类提示音的最小间隔（帧）
const lightImpactCooldownFrames = 3

// AudioFeedback 用合成提示音实现 game.Feedback
// 击杀等高频反馈按帧限流，避免叠成噪音
type AudioFeedback struct {
	context *audio.Context
	muted   bool

	light   []byte
	medium  []byte
	success []byte

	frame         int
	lastLightPlay int
}

// NewAudioFeedback 预渲染所有提示音
// context 为 nil 时只计数不发声
func NewAudioFeedback(context *audio.Context, muted bool) *AudioFeedback {
	return &AudioFeedback{
		context:       context,
		muted:         muted,
		light:         ifaudio.PCM16Stereo(SampleRate, ifaudio.LightImpactTones),
		medium:        ifaudio.PCM16Stereo(SampleRate, ifaudio.MediumImpactTones),
		success:       ifaudio.PCM16Stereo(SampleRate, ifaudio.SuccessTones),
		lastLightPlay: -lightImpactCooldownFrames,
	}
}

// Tick 每帧调用一次，推进限流计数
func (f *AudioFeedback) Tick() {
	f.frame++
}

// SetMuted 静音开关
func (f *AudioFeedback) SetMuted(muted bool) {
	f.muted = muted
	log.Printf("[Audio] muted=%v", muted)
}

// Muted 是否静音
func (f *AudioFeedback) Muted() bool {
	return f.muted
}

func (f *AudioFeedback) LightImpact() {
	if f.frame-f.lastLightPlay < lightImpactCooldownFrames {
		return
	}
	f.lastLightPlay = f.frame
	f.play(f.light)
}

func (f *AudioFeedback) MediumImpact() {
	f.play(f.medium)
}

func (f *AudioFeedback) Success() {
	f.play(f.success)
}

// Shake 由 ScreenShake 处理
func (f *AudioFeedback) Shake(_, _ float64) {}

func (f *AudioFeedback) play(pcm []byte) {
	if f.muted || f.context == nil || len(pcm) == 0 {
		return
	}
	player := f.context.NewPlayerFromBytes(pcm)
	player.Play()
}
