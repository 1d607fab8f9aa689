package systems

import (
	"testing"

	"github.com/decker502/infinistacker/pkg/components"
)

func TestObstacleSystem_Contact(t *testing.T) {
	tests := []struct {
		name     string
		squadX   float64
		expected int
		contacts int
	}{
		{"正面相撞", 2.2, 7, 1},
		{"擦边接触", 3.2, 7, 1},
		{"错开", 0.5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := quietTuning()
			tuning.Obstacles.LaneOffsets = []float64{0}
			w := newTestWorld(tuning)
			w.squad.SetCount(10)
			w.squad.SetPositionX(tt.squadX)
			w.obstacles.SetEnabled(true)
			w.obstacles.SpawnImmediate()

			// 32 → -4.9，越过小队平面
			w.obstacles.Update(9)

			if w.squad.Count() != tt.expected {
				t.Errorf("Expected squad %d, got %d", tt.expected, w.squad.Count())
			}
			if w.obstacles.Contacts() != tt.contacts {
				t.Errorf("Expected %d contacts, got %d", tt.contacts, w.obstacles.Contacts())
			}
			if w.obstacles.ActiveCount() != 0 {
				t.Errorf("Expected obstacle recycled, got %d active", w.obstacles.ActiveCount())
			}
		})
	}
}

func TestObstacleSystem_Destroyed(t *testing.T) {
	w := newTestWorld(quietTuning())
	w.obstacles.SpawnImmediate()

	h := collectHittables(w.obstacles)[0]
	for i := range 13 {
		if !h.TryDamage(1, h.HitCenter()) {
			t.Fatalf("Expected hit %d to be consumed", i)
		}
	}
	if w.obstacles.Destroyed() != 0 {
		t.Fatal("Expected obstacle to survive 13 damage")
	}

	center := h.HitCenter()
	h.TryDamage(1, center)
	if w.obstacles.Destroyed() != 1 || w.obstacles.ActiveCount() != 0 {
		t.Errorf("Expected obstacle destroyed, got destroyed=%d active=%d", w.obstacles.Destroyed(), w.obstacles.ActiveCount())
	}
	if w.effects.ActiveCount() != 1 {
		t.Errorf("Expected 1 hit effect, got %d", w.effects.ActiveCount())
	}
	if h.TryDamage(1, center) {
		t.Error("Expected destroyed obstacle to report not consumed")
	}
}

func TestObstacleSystem_SpawnsOnLaneOffsets(t *testing.T) {
	w := newTestWorld(nil)
	for range 30 {
		w.obstacles.SpawnImmediate()
	}

	center := w.tuning.Lanes.CombatCenterX
	w.obstacles.Each(func(o *components.IceObstacleComponent) {
		expected := center + w.tuning.Obstacles.LaneOffsets[o.LaneIndex]
		if o.Position.X != expected {
			t.Errorf("Expected x %.2f for lane %d, got %.2f", expected, o.LaneIndex, o.Position.X)
		}
		if o.Health.CurrentHealth != 14 {
			t.Errorf("Expected hp 14, got %d", o.Health.CurrentHealth)
		}
	})
}
