// Package audio 合成反馈提示音
//
// 提示音是短促的正弦波序列，输出 16 位小端立体声 PCM，
// 可直接交给 Ebitengine 播放，也可以按采样点交给终端宿主的混音器。
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Tone 一段带淡出的正弦音
type Tone struct {
	Frequency float64 // Hz，<= 0 表示静音
	Duration  float64 // 秒
	Volume    float64 // 0..1
}

// 预设提示音
var (
	LightImpactTones  = []Tone{{Frequency: 880, Duration: 0.05, Volume: 0.22}}
	MediumImpactTones = []Tone{{Frequency: 196, Duration: 0.12, Volume: 0.4}}
	SuccessTones      = []Tone{
		{Frequency: 523.25, Duration: 0.12, Volume: 0.3},
		{Frequency: 659.25, Duration: 0.12, Volume: 0.3},
		{Frequency: 783.99, Duration: 0.24, Volume: 0.3},
	}
)

const bytesPerFrame = 4 // 16 位 × 2 声道

// Samples 逐个采样点生成音序，fn 收到 [-1, 1] 范围内的单声道值
func Samples(sampleRate int, tones []Tone, fn func(v float64)) {
	if sampleRate <= 0 {
		return
	}
	for _, t := range tones {
		n := int(math.Round(t.Duration * float64(sampleRate)))
		volume := math.Max(0, math.Min(1, t.Volume))
		for i := range n {
			if t.Frequency <= 0 {
				fn(0)
				continue
			}
			// 线性淡出，避免结尾爆音
			envelope := 1 - float64(i)/float64(n)
			phase := 2 * math.Pi * t.Frequency * float64(i) / float64(sampleRate)
			fn(math.Sin(phase) * volume * envelope)
		}
	}
}

// PCM16Stereo 把音序渲染为 16 位小端立体声 PCM
func PCM16Stereo(sampleRate int, tones []Tone) []byte {
	var frames int
	for _, t := range tones {
		frames += int(math.Round(t.Duration * float64(max(0, sampleRate))))
	}

	data := make([]byte, 0, frames*bytesPerFrame)
	Samples(sampleRate, tones, func(v float64) {
		s := int16(v * math.MaxInt16)
		// 左右声道相同
		data = append(data, byte(s), byte(s>>8), byte(s), byte(s>>8))
	})
	return data
}

// ToneStream 可重复播放的 PCM 流
type ToneStream struct {
	data       []byte
	sampleRate int
	offset     int64
}

// NewToneStream 渲染音序并返回可读流
func NewToneStream(sampleRate int, tones []Tone) (*ToneStream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	return &ToneStream{
		data:       PCM16Stereo(sampleRate, tones),
		sampleRate: sampleRate,
	}, nil
}

// Read 读取 PCM 数据，实现 io.Reader
func (s *ToneStream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (s *ToneStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, errors.New("negative seek position")
	}
	s.offset = next
	return next, nil
}

// Bytes 完整的 PCM 数据
func (s *ToneStream) Bytes() []byte {
	return s.data
}

// Length PCM 数据的字节数
func (s *ToneStream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate 采样率
func (s *ToneStream) SampleRate() int {
	return s.sampleRate
}
