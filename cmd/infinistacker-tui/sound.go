package main

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/infinistacker/internal/audio"
)

const sampleRate = beep.SampleRate(48000)

// beepFeedback 通过扬声器播放提示音，并记录抖动供界面闪烁边框
// 扬声器初始化失败时静默运行
type beepFeedback struct {
	mu          sync.Mutex
	initialized bool
	muted       bool
	mixer       *beep.Mixer

	light, medium, success []float64

	shakeRemaining float64
}

func newBeepFeedback(muted bool) *beepFeedback {
	render := func(tones []audio.Tone) []float64 {
		var out []float64
		audio.Samples(int(sampleRate), tones, func(v float64) { out = append(out, v) })
		return out
	}
	return &beepFeedback{
		muted:   muted,
		mixer:   &beep.Mixer{},
		light:   render(audio.LightImpactTones),
		medium:  render(audio.MediumImpactTones),
		success: render(audio.SuccessTones),
	}
}

// initialize 打开扬声器
func (f *beepFeedback) initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

func (f *beepFeedback) LightImpact()  { f.play(f.light) }
func (f *beepFeedback) MediumImpact() { f.play(f.medium) }
func (f *beepFeedback) Success()      { f.play(f.success) }

func (f *beepFeedback) Shake(_, duration float64) {
	f.mu.Lock()
	f.shakeRemaining = max(f.shakeRemaining, duration)
	f.mu.Unlock()
}

// tick 推进抖动计时，返回当前是否在抖动
func (f *beepFeedback) tick(deltaTime float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shakeRemaining = max(0, f.shakeRemaining-deltaTime)
	return f.shakeRemaining > 0
}

func (f *beepFeedback) toggleMute() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = !f.muted
	return f.muted
}

func (f *beepFeedback) play(samples []float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized || f.muted || len(samples) == 0 {
		return
	}
	speaker.Lock()
	f.mixer.Add(sampleStreamer(samples))
	speaker.Unlock()
}

// sampleStreamer 把单声道采样播放为立体声
func sampleStreamer(samples []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := min(len(buf), len(samples)-pos)
		for i := range n {
			buf[i][0] = samples[pos+i]
			buf[i][1] = samples[pos+i]
		}
		pos += n
		return n, true
	})
}
