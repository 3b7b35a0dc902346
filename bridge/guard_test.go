// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"
	"testing"
	"time"

	"github.com/luxfi/geth/common"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var (
	guardOwner  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	guardBridge = common.HexToAddress("0x1000000000000000000000000000000000000002")
	guardToken  = common.HexToAddress("0xABCDABCDABCDABCDABCDABCDABCDABCDABCDABCD")
	guardUser   = common.HexToAddress("0x1000000000000000000000000000000000000003")
)

func newTestGuard(t *testing.T) (*AccommodationGuard, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	g := NewAccommodationGuard(guardOwner, GuardWithClock(clk.Now))
	if err := g.SetBridge(guardOwner, guardBridge); err != nil {
		t.Fatalf("SetBridge failed: %v", err)
	}
	return g, clk
}

func TestGuardConfigureValidation(t *testing.T) {
	g, _ := newTestGuard(t)

	if err := g.Configure(guardUser, 1, guardToken, 10*time.Second, big.NewInt(2000)); err != ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := g.Configure(guardOwner, 0, guardToken, 10*time.Second, big.NewInt(2000)); err != ErrZeroChainID {
		t.Errorf("expected ErrZeroChainID, got %v", err)
	}
	if err := g.Configure(guardOwner, 1, common.Address{}, 10*time.Second, big.NewInt(2000)); err != ErrZeroToken {
		t.Errorf("expected ErrZeroToken, got %v", err)
	}
	if err := g.Configure(guardOwner, 1, guardToken, 0, big.NewInt(2000)); err != ErrZeroTimeFrame {
		t.Errorf("expected ErrZeroTimeFrame, got %v", err)
	}
	if err := g.Configure(guardOwner, 1, guardToken, 10*time.Second, big.NewInt(0)); err != ErrZeroVolumeLimit {
		t.Errorf("expected ErrZeroVolumeLimit, got %v", err)
	}
}

func TestGuardWindow(t *testing.T) {
	g, clk := newTestGuard(t)

	if err := g.Configure(guardOwner, 1, guardToken, 10*time.Second, big.NewInt(2000)); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	// Two validations of 1000 fill the window.
	for i := 0; i < 2; i++ {
		if code := g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1000)); code != GuardNoError {
			t.Fatalf("validation %d: expected NoError, got %s", i, code)
		}
	}
	if vol := g.Config(1, guardToken).CurrentVolume; vol.Cmp(big.NewInt(2000)) != 0 {
		t.Errorf("expected volume 2000, got %v", vol)
	}

	// A third one inside the window is rejected without mutation.
	if code := g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1000)); code != GuardVolumeLimitReached {
		t.Errorf("expected VolumeLimitReached, got %s", code)
	}
	if vol := g.Config(1, guardToken).CurrentVolume; vol.Cmp(big.NewInt(2000)) != 0 {
		t.Errorf("volume mutated on rejection: %v", vol)
	}

	// After the window elapses the volume starts over.
	clk.Advance(10 * time.Second)
	if code := g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1000)); code != GuardNoError {
		t.Errorf("expected NoError after window elapsed, got %s", code)
	}
	if vol := g.Config(1, guardToken).CurrentVolume; vol.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("expected volume 1000 in fresh window, got %v", vol)
	}
}

func TestGuardUnconfiguredPair(t *testing.T) {
	g, _ := newTestGuard(t)

	if code := g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1)); code != GuardTimeFrameNotSet {
		t.Errorf("expected TimeFrameNotSet, got %s", code)
	}
}

func TestGuardUnauthorizedCaller(t *testing.T) {
	g, _ := newTestGuard(t)
	_ = g.Configure(guardOwner, 1, guardToken, 10*time.Second, big.NewInt(2000))

	if code := g.Validate(guardUser, 1, guardToken, guardUser, big.NewInt(1)); code != GuardUnauthorizedCaller {
		t.Errorf("expected UnauthorizedCaller, got %s", code)
	}
	if vol := g.Config(1, guardToken).CurrentVolume; vol.Sign() != 0 {
		t.Errorf("volume mutated by unauthorized caller: %v", vol)
	}

	// Before any bridge is registered everything fails closed.
	fresh := NewAccommodationGuard(guardOwner)
	if code := fresh.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1)); code != GuardUnauthorizedCaller {
		t.Errorf("expected UnauthorizedCaller with no bridge set, got %s", code)
	}
}

func TestGuardReconfigureKeepsWindowProgress(t *testing.T) {
	g, clk := newTestGuard(t)

	_ = g.Configure(guardOwner, 1, guardToken, 10*time.Second, big.NewInt(2000))
	if code := g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1500)); code != GuardNoError {
		t.Fatalf("expected NoError, got %s", code)
	}
	start := g.Config(1, guardToken).LastReset

	clk.Advance(5 * time.Second)
	if err := g.Configure(guardOwner, 1, guardToken, 30*time.Second, big.NewInt(5000)); err != nil {
		t.Fatalf("reconfigure failed: %v", err)
	}

	cfg := g.Config(1, guardToken)
	if cfg.TimeFrame != 30*time.Second {
		t.Errorf("expected time frame 30s, got %v", cfg.TimeFrame)
	}
	if cfg.VolumeLimit.Cmp(big.NewInt(5000)) != 0 {
		t.Errorf("expected limit 5000, got %v", cfg.VolumeLimit)
	}
	// Window progress survives reconfiguration: no free volume reset.
	if cfg.CurrentVolume.Cmp(big.NewInt(1500)) != 0 {
		t.Errorf("expected volume 1500 after reconfigure, got %v", cfg.CurrentVolume)
	}
	if !cfg.LastReset.Equal(start) {
		t.Errorf("window start changed on reconfigure: %v != %v", cfg.LastReset, start)
	}
}

func TestGuardReset(t *testing.T) {
	g, _ := newTestGuard(t)

	_ = g.Configure(guardOwner, 1, guardToken, 10*time.Second, big.NewInt(2000))
	_ = g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(500))

	if err := g.Reset(guardUser, 1, guardToken); err != ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := g.Reset(guardOwner, 1, guardToken); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	cfg := g.Config(1, guardToken)
	if cfg.TimeFrame != 0 || cfg.CurrentVolume.Sign() != 0 {
		t.Errorf("expected cleared config, got %+v", cfg)
	}
	if code := g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(1)); code != GuardTimeFrameNotSet {
		t.Errorf("expected TimeFrameNotSet after reset, got %s", code)
	}
}

func TestGuardSetBridgeValidation(t *testing.T) {
	g := NewAccommodationGuard(guardOwner)

	if err := g.SetBridge(guardUser, guardBridge); err != ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := g.SetBridge(guardOwner, common.Address{}); err != ErrZeroAddress {
		t.Errorf("expected ErrZeroAddress, got %v", err)
	}
	if err := g.SetBridge(guardOwner, guardBridge); err != nil {
		t.Errorf("SetBridge failed: %v", err)
	}
	if g.Bridge() != guardBridge {
		t.Errorf("bridge not registered")
	}
}

func TestGuardRollbackVolume(t *testing.T) {
	g, _ := newTestGuard(t)

	_ = g.Configure(guardOwner, 1, guardToken, 10*time.Second, big.NewInt(2000))
	_ = g.Validate(guardBridge, 1, guardToken, guardUser, big.NewInt(700))

	g.rollbackVolume(1, guardToken, big.NewInt(700))
	if vol := g.Config(1, guardToken).CurrentVolume; vol.Sign() != 0 {
		t.Errorf("expected zero volume after rollback, got %v", vol)
	}

	// Rolling back more than accrued floors at zero.
	g.rollbackVolume(1, guardToken, big.NewInt(10))
	if vol := g.Config(1, guardToken).CurrentVolume; vol.Sign() != 0 {
		t.Errorf("expected floored volume, got %v", vol)
	}
}

func BenchmarkGuardValidate(b *testing.B) {
	clk := newFakeClock()
	g := NewAccommodationGuard(guardOwner, GuardWithClock(clk.Now))
	_ = g.SetBridge(guardOwner, guardBridge)
	_ = g.Configure(guardOwner, 1, guardToken, time.Hour, new(big.Int).Lsh(big.NewInt(1), 200))
	amount := big.NewInt(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Validate(guardBridge, 1, guardToken, guardUser, amount)
	}
}
