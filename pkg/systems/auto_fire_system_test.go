package systems

import (
	"math"
	"testing"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/types"
)

func newTestAutoFire(w *testWorld) *AutoFireSystem {
	return NewAutoFireSystem(w.tuning.AutoFire, w.tuning.Turret, w.squad, w.weapon, w.bullets, w.enemies)
}

func TestAutoFireSystem_VolleyShape(t *testing.T) {
	s := newTestAutoFire(newTestWorld(nil))

	tests := []struct {
		name        string
		muzzles     int
		pellets     int
		shotCount   int
		compression int
	}{
		{"单人", 1, 1, 1, 1},
		{"三人", 3, 1, 3, 1},
		{"满编单发", 120, 1, 16, 8},
		{"满编五弹丸", 120, 5, 7, 18},
		{"三弹丸刚好封顶", 12, 3, 12, 1},
		{"无枪口", 0, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shots, compression := s.VolleyShape(tt.muzzles, tt.pellets)
			if shots != tt.shotCount || compression != tt.compression {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.shotCount, tt.compression, shots, compression)
			}
		})
	}
}

func TestAutoFireSystem_CrowdBoost(t *testing.T) {
	s := newTestAutoFire(newTestWorld(nil))

	tests := []struct {
		count    int
		expected float64
	}{
		{0, 1},
		{1, 1},
		{80, 1.65},
		{200, 1.65},
	}
	for _, tt := range tests {
		if got := s.CrowdBoost(tt.count); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("CrowdBoost(%d): expected %.2f, got %.4f", tt.count, tt.expected, got)
		}
	}

	mid := s.CrowdBoost(40)
	if mid <= 1 || mid >= 1.65 {
		t.Errorf("Expected CrowdBoost(40) strictly between 1 and 1.65, got %.4f", mid)
	}
}

func TestAutoFireSystem_DrainsMultipleVolleys(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestAutoFire(w)
	s.SetEnabled(true)

	// Rifle I: 3.2 发/秒，一人无加成，1 秒内 3 轮齐射
	s.Update(1.0)

	if s.Volleys() != 3 {
		t.Errorf("Expected 3 volleys, got %d", s.Volleys())
	}
	if w.bullets.Fired() != 3 {
		t.Errorf("Expected 3 bullets, got %d", w.bullets.Fired())
	}

	origin := w.squad.MuzzlePoint(0)
	w.bullets.Each(func(b *components.BulletComponent) {
		if b.Position != origin {
			t.Errorf("Expected bullet at muzzle %+v, got %+v", origin, b.Position)
		}
	})
}

func TestAutoFireSystem_NoFireWithoutSquad(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestAutoFire(w)
	s.SetEnabled(true)
	w.squad.SetCount(0)

	s.Update(5)
	if w.bullets.Fired() != 0 {
		t.Errorf("Expected no bullets with empty squad, got %d", w.bullets.Fired())
	}
}

func TestAutoFireSystem_DisabledClearsAccumulator(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestAutoFire(w)
	s.SetEnabled(true)
	s.Update(0.3)
	s.SetEnabled(false)
	s.Update(10)
	s.SetEnabled(true)
	s.Update(0.3)

	if w.bullets.Fired() != 0 {
		t.Errorf("Expected no stale volleys after re-enable, got %d bullets", w.bullets.Fired())
	}
}

func TestAutoFireSystem_ShotgunSpread(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestAutoFire(w)
	s.SetEnabled(true)

	// 18 + 26 + 36 点升到 Shotgun I（3 弹丸，8 度）
	w.weapon.AddProgress(80)
	if w.weapon.Stats().PelletsPerShot != 3 {
		t.Fatalf("Expected 3 pellets, got %d", w.weapon.Stats().PelletsPerShot)
	}

	s.Update(0.25)
	if w.bullets.Fired() != 3 {
		t.Fatalf("Expected 3 pellets fired, got %d", w.bullets.Fired())
	}

	var xs []float64
	w.bullets.Each(func(b *components.BulletComponent) {
		xs = append(xs, b.Direction.X)
		if b.Damage != 1 {
			t.Errorf("Expected pellet damage 1, got %d", b.Damage)
		}
	})
	expected := []float64{types.YawDirection(-8).X, 0, types.YawDirection(8).X}
	for i := range expected {
		if math.Abs(xs[i]-expected[i]) > 1e-9 {
			t.Errorf("Pellet %d: expected dir.x %.4f, got %.4f", i, expected[i], xs[i])
		}
	}
}

func TestAutoFireSystem_TurretDeploy(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestAutoFire(w)
	s.SetEnabled(true)

	// 升到第三级后两次奖励事件获得一次充能
	w.weapon.AddProgress(44)
	w.weapon.NotifyRewardEventOccurred()
	w.weapon.NotifyRewardEventOccurred()
	if w.weapon.TurretCharges() != 1 {
		t.Fatalf("Expected 1 turret charge, got %d", w.weapon.TurretCharges())
	}

	for i := range 34 {
		w.enemies.Spawn(types.Vec3{X: 2.2, Z: 40 + float64(i)*0.1}, 3, 3)
	}

	s.Update(0.1)

	if !s.TurretActive() {
		t.Fatal("Expected turret to deploy")
	}
	if w.weapon.TurretCharges() != 0 {
		t.Errorf("Expected charge consumed, got %d", w.weapon.TurretCharges())
	}
	// 炮台 11 发/秒，0.1 秒一轮，两个开火点
	if w.bullets.Fired() != 2 {
		t.Errorf("Expected 2 turret bullets, got %d", w.bullets.Fired())
	}

	s.Update(8)
	if s.TurretActive() {
		t.Error("Expected turret to expire after its duration")
	}
	if s.TurretDeploys() != 1 {
		t.Errorf("Expected 1 deploy without more charges, got %d", s.TurretDeploys())
	}
}

func TestAutoFireSystem_TurretNeedsCharge(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestAutoFire(w)
	s.SetEnabled(true)

	for i := range 40 {
		w.enemies.Spawn(types.Vec3{X: 2.2, Z: 40 + float64(i)*0.1}, 3, 3)
	}
	s.Update(0.1)

	if s.TurretActive() {
		t.Error("Expected turret to stay down without charges")
	}
}
