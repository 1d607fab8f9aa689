package game

import (
	"testing"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
)

func newTestSquad(t *testing.T) (*Squad, *[]int) {
	t.Helper()
	bus := NewEventBus()
	var counts []int
	bus.OnSquadChanged(func(count int) { counts = append(counts, count) })
	squad := NewSquad(bus, config.DefaultTuning().Squad, types.Vec3{X: 2.2, Z: -4.8})
	return squad, &counts
}

func TestSquad_SetCount(t *testing.T) {
	squad, counts := newTestSquad(t)

	if squad.Count() != 1 {
		t.Fatalf("Expected start count 1, got %d", squad.Count())
	}
	*counts = nil

	squad.SetCount(1)
	if len(*counts) != 0 {
		t.Errorf("Expected no notification for unchanged count, got %v", *counts)
	}

	squad.SetCount(500)
	if squad.Count() != 120 {
		t.Errorf("Expected count clamped to 120, got %d", squad.Count())
	}

	squad.SetCount(-5)
	if squad.Count() != 0 {
		t.Errorf("Expected count clamped to 0, got %d", squad.Count())
	}

	if len(*counts) != 2 || (*counts)[0] != 120 || (*counts)[1] != 0 {
		t.Errorf("Expected notifications [120 0], got %v", *counts)
	}
}

func TestSquad_SlotsMatchCount(t *testing.T) {
	squad, _ := newTestSquad(t)

	for _, n := range []int{0, 1, 5, 37, 120} {
		squad.SetCount(n)
		if len(squad.Slots()) != n || squad.MuzzleCount() != n {
			t.Errorf("count=%d: got %d slots, %d muzzles", n, len(squad.Slots()), squad.MuzzleCount())
		}
	}
}

func TestSquad_AddRemoveIgnoreNonPositive(t *testing.T) {
	squad, counts := newTestSquad(t)
	*counts = nil

	squad.AddSoldiers(0)
	squad.AddSoldiers(-3)
	squad.RemoveSoldiers(0)
	squad.RemoveSoldiers(-2)
	if squad.Count() != 1 || len(*counts) != 0 {
		t.Errorf("Expected no change, got count=%d notifications=%v", squad.Count(), *counts)
	}

	squad.AddSoldiers(4)
	squad.RemoveSoldiers(2)
	if squad.Count() != 3 {
		t.Errorf("Expected 3, got %d", squad.Count())
	}
}

func TestSquad_ApplyGateOperation(t *testing.T) {
	squad, _ := newTestSquad(t)
	squad.SetCount(70)

	squad.ApplyGateOperation(components.GateOperation{Type: components.GateMultiply, Value: 2})
	if squad.Count() != 120 {
		t.Errorf("Expected multiply to cap at 120, got %d", squad.Count())
	}

	squad.ApplyGateOperation(components.GateOperation{Type: components.GateSubtract, Value: 200})
	if squad.Count() != 0 {
		t.Errorf("Expected 0, got %d", squad.Count())
	}
}

func TestSquad_ResetAlwaysNotifies(t *testing.T) {
	squad, counts := newTestSquad(t)
	*counts = nil

	squad.ResetSquad()
	if len(*counts) != 1 || (*counts)[0] != 1 {
		t.Errorf("Expected one notification with 1, got %v", *counts)
	}
}

func TestSquad_MuzzlePoint(t *testing.T) {
	squad, _ := newTestSquad(t)
	squad.SetPositionX(1.5)

	p := squad.MuzzlePoint(0)
	want := types.Vec3{X: 1.5, Y: 0.6, Z: -4.8 + 0.64}
	if p.PlanarDistance(want) > 1e-9 || p.Y != want.Y {
		t.Errorf("Expected %+v, got %+v", want, p)
	}
}
