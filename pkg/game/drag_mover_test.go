package game

import (
	"math"
	"testing"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
)

func newTestMover(t *testing.T) (*DragMover, *Squad) {
	t.Helper()
	squad := NewSquad(NewEventBus(), config.DefaultTuning().Squad, types.Vec3{X: 2.2, Z: -4.8})
	return NewDragMover(squad, config.DefaultTuning().Movement), squad
}

func TestDragMover_DisabledIgnoresInput(t *testing.T) {
	mover, squad := newTestMover(t)

	mover.Drag(500, 1000)
	mover.Update(1)
	if mover.TargetX() != 2.2 || squad.Position().X != 2.2 {
		t.Errorf("Expected no movement while disabled, target=%v x=%v", mover.TargetX(), squad.Position().X)
	}
}

func TestDragMover_DragClampsToBounds(t *testing.T) {
	mover, _ := newTestMover(t)
	mover.SetEnabled(true)

	// 归一化 0.1 * 14 = 1.4 世界单位
	mover.Drag(100, 1000)
	if math.Abs(mover.TargetX()-3.25) > 1e-9 {
		t.Errorf("Expected target clamped to 3.25, got %v", mover.TargetX())
	}

	mover.Drag(-500, 1000)
	if math.Abs(mover.TargetX()-(-3.25)) > 1e-9 {
		t.Errorf("Expected target clamped to -3.25, got %v", mover.TargetX())
	}
}

func TestDragMover_SmoothsTowardTarget(t *testing.T) {
	mover, squad := newTestMover(t)
	mover.SetEnabled(true)
	mover.SetTargetX(-2.2)

	mover.Update(1.0 / 60.0)
	x := squad.Position().X
	if x >= 2.2 || x <= -2.2 {
		t.Errorf("Expected partial movement, got %v", x)
	}

	for i := 0; i < 300; i++ {
		mover.Update(1.0 / 60.0)
	}
	if math.Abs(squad.Position().X-(-2.2)) > 1e-4 {
		t.Errorf("Expected convergence to -2.2, got %v", squad.Position().X)
	}
}

func TestDragMover_DisableDropsDrag(t *testing.T) {
	mover, _ := newTestMover(t)
	mover.SetEnabled(true)
	mover.Drag(10, 1000)
	if !mover.IsDragging() {
		t.Fatal("Expected dragging")
	}

	mover.SetEnabled(false)
	if mover.IsDragging() {
		t.Error("Expected drag dropped on disable")
	}
}

func TestDragMover_ConfigureSwapsBounds(t *testing.T) {
	mover, _ := newTestMover(t)
	mover.Configure(1, -1)
	if mover.TargetX() != 1 {
		t.Errorf("Expected target clamped to 1, got %v", mover.TargetX())
	}
}
