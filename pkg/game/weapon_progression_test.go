package game

import (
	"testing"

	"github.com/decker502/infinistacker/pkg/config"
)

func newTestProgression(t *testing.T) (*WeaponProgression, *[]WeaponState) {
	t.Helper()
	bus := NewEventBus()
	var states []WeaponState
	bus.OnWeaponStateChanged(func(s WeaponState) { states = append(states, s) })
	return NewWeaponProgression(bus, config.DefaultTuning().Weapon), &states
}

func TestWeaponProgression_Initial(t *testing.T) {
	w, states := newTestProgression(t)

	if w.TierIndex() != 0 || w.Progress() != 0 || w.TurretCharges() != 0 {
		t.Errorf("Expected fresh progression, got tier=%d progress=%d charges=%d", w.TierIndex(), w.Progress(), w.TurretCharges())
	}
	if w.Stats().TierName != "Rifle I" {
		t.Errorf("Expected Rifle I, got %s", w.Stats().TierName)
	}
	if len(*states) != 1 || (*states)[0].NextRequirement != 18 {
		t.Errorf("Expected one initial notification with requirement 18, got %+v", *states)
	}
}

func TestWeaponProgression_AddProgress(t *testing.T) {
	tests := []struct {
		name             string
		amounts          []int
		expectedTier     int
		expectedProgress int
	}{
		{"未达需求", []int{10}, 0, 10},
		{"恰好升级", []int{18}, 1, 0},
		{"累积升级", []int{10, 10}, 1, 2},
		{"一次跨越多级", []int{18 + 26 + 36 + 5}, 3, 5},
		{"到达最高级", []int{18 + 26 + 36 + 48}, 4, 0},
		{"最高级进度无上限", []int{18 + 26 + 36 + 48 + 500}, 4, 500},
		{"非正数忽略", []int{0, -5}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestProgression(t)
			for _, amount := range tt.amounts {
				w.AddProgress(amount)
			}
			if w.TierIndex() != tt.expectedTier {
				t.Errorf("Expected tier %d, got %d", tt.expectedTier, w.TierIndex())
			}
			if w.Progress() != tt.expectedProgress {
				t.Errorf("Expected progress %d, got %d", tt.expectedProgress, w.Progress())
			}
		})
	}
}

func TestWeaponProgression_TerminalState(t *testing.T) {
	w, states := newTestProgression(t)
	w.AddProgress(1000)

	last := (*states)[len(*states)-1]
	if last.NextRequirement != 0 {
		t.Errorf("Expected requirement 0 at terminal tier, got %d", last.NextRequirement)
	}
	if last.TierName != "Shotgun II" {
		t.Errorf("Expected Shotgun II, got %s", last.TierName)
	}
	if w.Stats().PelletsPerShot != 5 {
		t.Errorf("Expected 5 pellets, got %d", w.Stats().PelletsPerShot)
	}
}

func TestWeaponProgression_TurretCharges(t *testing.T) {
	w, _ := newTestProgression(t)

	// 解锁前的奖励事件只计数
	w.NotifyRewardEventOccurred()
	w.NotifyRewardEventOccurred()
	if w.TurretCharges() != 0 {
		t.Fatalf("Expected no charges before unlock, got %d", w.TurretCharges())
	}

	w.AddProgress(18 + 26)        // 到达 Rifle III
	w.NotifyRewardEventOccurred() // 第 3 次
	if w.TurretCharges() != 0 {
		t.Errorf("Expected 0 charges on odd event, got %d", w.TurretCharges())
	}
	w.NotifyRewardEventOccurred() // 第 4 次
	if w.TurretCharges() != 1 {
		t.Errorf("Expected 1 charge, got %d", w.TurretCharges())
	}

	for i := 0; i < 20; i++ {
		w.NotifyRewardEventOccurred()
	}
	if w.TurretCharges() != 3 {
		t.Errorf("Expected charges capped at 3, got %d", w.TurretCharges())
	}

	if !w.TryConsumeTurretCharge() {
		t.Fatal("Expected consume to succeed")
	}
	if w.TurretCharges() != 2 {
		t.Errorf("Expected 2 charges, got %d", w.TurretCharges())
	}
}

func TestWeaponProgression_RewardEventNotifies(t *testing.T) {
	w, states := newTestProgression(t)

	notify := func(wantEvents, wantCharges int) {
		t.Helper()
		before := len(*states)
		w.NotifyRewardEventOccurred()
		if len(*states) != before+1 {
			t.Fatalf("Expected exactly one notification, got %d", len(*states)-before)
		}
		last := (*states)[len(*states)-1]
		if last.RewardEvents != wantEvents || last.TurretCharges != wantCharges {
			t.Errorf("Expected events=%d charges=%d, got events=%d charges=%d",
				wantEvents, wantCharges, last.RewardEvents, last.TurretCharges)
		}
	}

	// 解锁前只计数，仍然通知
	notify(1, 0)
	notify(2, 0)

	w.AddProgress(18 + 26)
	notify(3, 0)
	notify(4, 1)
}

func TestWeaponProgression_ConsumeWithoutCharge(t *testing.T) {
	w, states := newTestProgression(t)
	before := len(*states)

	if w.TryConsumeTurretCharge() {
		t.Error("Expected consume to fail without charges")
	}
	if len(*states) != before {
		t.Error("Expected no notification on failed consume")
	}
}

func TestWeaponProgression_StatClamps(t *testing.T) {
	tuning := config.WeaponTuning{
		Tiers: []config.WeaponTierTuning{
			{Name: "Broken", ShotsPerSecond: 0.1, BulletDamage: 0, PelletsPerShot: 0, SpreadDegrees: -4, PointsToNext: 0},
		},
		MaxTurretCharges:      3,
		RewardEventsPerCharge: 2,
	}
	w := NewWeaponProgression(NewEventBus(), tuning)
	stats := w.Stats()

	if stats.ShotsPerSecond != 0.5 || stats.BulletDamage != 1 || stats.PelletsPerShot != 1 || stats.SpreadDegrees != 0 {
		t.Errorf("Expected clamped stats, got %+v", stats)
	}
}

func TestWeaponProgression_Reset(t *testing.T) {
	w, _ := newTestProgression(t)
	w.AddProgress(100)
	for i := 0; i < 4; i++ {
		w.NotifyRewardEventOccurred()
	}

	w.ResetProgression()
	if w.TierIndex() != 0 || w.Progress() != 0 || w.TurretCharges() != 0 || w.RewardEvents() != 0 {
		t.Errorf("Expected reset state, got tier=%d progress=%d charges=%d events=%d",
			w.TierIndex(), w.Progress(), w.TurretCharges(), w.RewardEvents())
	}
}
