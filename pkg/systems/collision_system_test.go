package systems

import (
	"testing"

	"github.com/decker502/infinistacker/pkg/types"
)

type fakeTarget struct {
	center types.Vec3
	radius float64
	alive  bool
	hits   int
}

func (f *fakeTarget) HitCenter() types.Vec3 { return f.center }
func (f *fakeTarget) HitRadius() float64    { return f.radius }

func (f *fakeTarget) TryDamage(_ int, _ types.Vec3) bool {
	if !f.alive {
		return false
	}
	f.hits++
	return true
}

type fakeSource []*fakeTarget

func (s fakeSource) EachHittable(visit func(h Hittable) bool) {
	for _, t := range s {
		if !visit(t) {
			return
		}
	}
}

func TestCollisionSystem_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		point     types.Vec3
		expectHit bool
	}{
		{"正中目标", types.Vec3{X: 0, Z: 5}, true},
		{"半径边界内", types.Vec3{X: 0.5, Z: 5}, true},
		{"半径之外", types.Vec3{X: 0.6, Z: 5}, false},
		{"忽略高度", types.Vec3{X: 0, Y: 10, Z: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{center: types.Vec3{Z: 5}, radius: 0.25, alive: true}
			c := NewCollisionSystem(0.28, fakeSource{target})

			hit := c.Resolve(tt.point, 1)
			if hit != tt.expectHit {
				t.Errorf("Expected hit=%v, got %v", tt.expectHit, hit)
			}
		})
	}
}

func TestCollisionSystem_SkipsDeadTargets(t *testing.T) {
	dead := &fakeTarget{center: types.Vec3{Z: 5}, radius: 0.25, alive: false}
	alive := &fakeTarget{center: types.Vec3{Z: 5.1}, radius: 0.25, alive: true}
	c := NewCollisionSystem(0.28, fakeSource{dead, alive})

	if !c.Resolve(types.Vec3{Z: 5}, 1) {
		t.Fatal("Expected the live target to consume the hit")
	}
	if alive.hits != 1 {
		t.Errorf("Expected live target hits=1, got %d", alive.hits)
	}
}

func TestCollisionSystem_AtMostOneHitInRegistrationOrder(t *testing.T) {
	first := &fakeTarget{center: types.Vec3{Z: 5}, radius: 0.25, alive: true}
	second := &fakeTarget{center: types.Vec3{Z: 5}, radius: 0.25, alive: true}
	third := &fakeTarget{center: types.Vec3{Z: 5}, radius: 0.25, alive: true}
	c := NewCollisionSystem(0.28, fakeSource{first, second})
	c.AddSource(fakeSource{third})

	c.Resolve(types.Vec3{Z: 5}, 1)

	if first.hits != 1 || second.hits != 0 || third.hits != 0 {
		t.Errorf("Expected only the first target to be hit, got %d/%d/%d", first.hits, second.hits, third.hits)
	}
	if c.Hits() != 1 {
		t.Errorf("Expected Hits()=1, got %d", c.Hits())
	}
}

func TestCollisionSystem_NoSources(t *testing.T) {
	c := NewCollisionSystem(0.28)
	c.AddSource(nil)
	if c.Resolve(types.Vec3{}, 1) {
		t.Error("Expected no hit without sources")
	}
}
