package systems

import (
	"testing"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
)

func newTestSpawner(w *testWorld, clock Clock) *EnemySpawnSystem {
	tuning := config.DefaultTuning().EnemySpawn
	return NewEnemySpawnSystem(tuning, w.tuning.Lanes.CombatCenterX, w.enemies, NewDifficultyEngine(tuning), clock, w.rng)
}

func TestEnemySpawnSystem_DrainsMultipleWaves(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestSpawner(w, fakeClock(0))
	s.SetEnabled(true)

	// 4 秒包含 3 个完整间隔
	s.Update(4.0)

	if s.Waves() != 3 {
		t.Errorf("Expected 3 waves, got %d", s.Waves())
	}
	active := w.enemies.ActiveCount()
	if active < 15 || active > 27 {
		t.Errorf("Expected 15..27 enemies, got %d", active)
	}
}

func TestEnemySpawnSystem_WaveStaysInLane(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestSpawner(w, fakeClock(60))

	center := w.tuning.Lanes.CombatCenterX
	half := w.tuning.EnemySpawn.LaneHalfWidth
	for range 20 {
		s.SpawnImmediateWave(3)
	}

	w.enemies.Each(func(e *components.EnemyComponent) {
		if e.Position.X < center-half || e.Position.X > center+half {
			t.Errorf("Expected x within lane, got %.3f", e.Position.X)
		}
		if e.Position.Z < 46 || e.Position.Z >= 46+4.2 {
			t.Errorf("Expected z in [46, 50.2), got %.3f", e.Position.Z)
		}
		if e.Health.MaxHealth != 8 {
			t.Errorf("Expected full-intensity hp 8, got %d", e.Health.MaxHealth)
		}
	})
}

func TestEnemySpawnSystem_StopsAtCap(t *testing.T) {
	tuning := quietTuning()
	tuning.Enemies.MaxActive = 10
	w := newTestWorld(tuning)
	s := newTestSpawner(w, nil)

	if n := s.SpawnImmediateWave(50); n != 10 {
		t.Errorf("Expected 10 spawned before cap, got %d", n)
	}
	if n := s.SpawnImmediateWave(0); n != 0 {
		t.Errorf("Expected 0 spawned at cap, got %d", n)
	}
}

func TestEnemySpawnSystem_DisableClearsTimer(t *testing.T) {
	w := newTestWorld(quietTuning())
	s := newTestSpawner(w, fakeClock(0))
	s.SetEnabled(true)
	s.Update(1.0)
	s.SetEnabled(false)
	s.SetEnabled(true)
	s.Update(1.0)

	if s.Waves() != 0 {
		t.Errorf("Expected no waves after re-enable, got %d", s.Waves())
	}
}
