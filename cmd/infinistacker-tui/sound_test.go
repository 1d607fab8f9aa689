package main

import "testing"

func TestSampleStreamer(t *testing.T) {
	s := sampleStreamer([]float64{0.1, 0.2, 0.3})
	buf := make([][2]float64, 2)

	n, ok := s.Stream(buf)
	if n != 2 || !ok {
		t.Fatalf("Expected (2, true), got (%d, %v)", n, ok)
	}
	if buf[1][0] != 0.2 || buf[1][1] != 0.2 {
		t.Errorf("Expected stereo 0.2, got %v", buf[1])
	}

	n, ok = s.Stream(buf)
	if n != 1 || !ok {
		t.Fatalf("Expected (1, true), got (%d, %v)", n, ok)
	}

	if n, ok = s.Stream(buf); n != 0 || ok {
		t.Errorf("Expected drained streamer, got (%d, %v)", n, ok)
	}
}

func TestBeepFeedback_ShakeTimer(t *testing.T) {
	f := newBeepFeedback(true)
	f.Shake(0.1, 0.12)
	f.Shake(0.06, 0.07)
	if !f.tick(0.1) {
		t.Error("Expected shake active after 0.1s")
	}
	if f.tick(0.05) {
		t.Error("Expected shake finished")
	}

	// 未初始化时播放不应出错
	f.LightImpact()
	f.Success()
	if f.toggleMute() {
		t.Error("Expected mute toggled off")
	}
}
