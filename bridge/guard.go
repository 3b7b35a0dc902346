// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"
	"sync"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"go.uber.org/zap"
)

// AccommodationGuard bounds the cumulative accommodated volume per
// (chain, token) pair inside a rolling time window. Validation is
// restricted to a single registered bridge caller; everything else is
// owner-only configuration.
type AccommodationGuard struct {
	owner  common.Address
	bridge common.Address

	configs map[uint32]map[common.Address]*GuardConfig

	now  func() time.Time
	log  luxlog.Logger
	sink EventSink
	db   database.Database

	mu sync.RWMutex
}

// GuardOption customizes a guard at construction.
type GuardOption func(*AccommodationGuard)

// GuardWithClock replaces the wall clock, letting tests move the window
// without sleeping.
func GuardWithClock(now func() time.Time) GuardOption {
	return func(g *AccommodationGuard) { g.now = now }
}

// GuardWithLogger sets the structured logger.
func GuardWithLogger(log luxlog.Logger) GuardOption {
	return func(g *AccommodationGuard) { g.log = log }
}

// GuardWithEventSink sets the event sink.
func GuardWithEventSink(sink EventSink) GuardOption {
	return func(g *AccommodationGuard) { g.sink = sink }
}

// GuardWithDatabase makes guard state durable: a snapshot is written after
// every committed mutation and restored at construction.
func GuardWithDatabase(db database.Database) GuardOption {
	return func(g *AccommodationGuard) { g.db = db }
}

// NewAccommodationGuard creates a guard owned by owner. No bridge caller
// is registered yet; Validate fails closed until SetBridge is called.
func NewAccommodationGuard(owner common.Address, opts ...GuardOption) *AccommodationGuard {
	g := &AccommodationGuard{
		owner:   owner,
		configs: make(map[uint32]map[common.Address]*GuardConfig),
		now:     time.Now,
		log:     luxlog.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.db != nil {
		if err := g.restoreState(); err != nil {
			g.log.Error("restore guard state", zap.Error(err))
		}
	}
	return g
}

// SetBridge registers the one address allowed to call Validate.
func (g *AccommodationGuard) SetBridge(caller, bridge common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.owner {
		return ErrUnauthorized
	}
	if bridge == (common.Address{}) {
		return ErrZeroAddress
	}
	g.bridge = bridge
	g.log.Info("guard bridge registered", zap.Stringer("bridge", bridge))
	emit(g.sink, Event{Kind: EventGuardBridgeChanged, Address: bridge})
	g.persistLocked()
	return nil
}

// Configure creates or updates the window for a (chain, token) pair. The
// first call stamps the window start; later calls change the limits in
// place without resetting window progress.
func (g *AccommodationGuard) Configure(caller common.Address, chainID uint32, token common.Address, timeFrame time.Duration, volumeLimit *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.owner {
		return ErrUnauthorized
	}
	if chainID == 0 {
		return ErrZeroChainID
	}
	if token == (common.Address{}) {
		return ErrZeroToken
	}
	if timeFrame <= 0 {
		return ErrZeroTimeFrame
	}
	if volumeLimit == nil || volumeLimit.Sign() == 0 {
		return ErrZeroVolumeLimit
	}

	cfg := g.config(chainID, token)
	if cfg == nil {
		cfg = &GuardConfig{
			CurrentVolume: new(big.Int),
			LastReset:     g.now(),
		}
		if g.configs[chainID] == nil {
			g.configs[chainID] = make(map[common.Address]*GuardConfig)
		}
		g.configs[chainID][token] = cfg
	}
	cfg.TimeFrame = timeFrame
	cfg.VolumeLimit = new(big.Int).Set(volumeLimit)

	g.log.Info("guard configured",
		zap.Uint32("chainID", chainID),
		zap.Stringer("token", token),
		zap.Duration("timeFrame", timeFrame),
		zap.String("volumeLimit", volumeLimit.String()),
	)
	emit(g.sink, Event{
		Kind:    EventGuardConfigured,
		ChainID: chainID,
		Token:   token,
		Amount:  new(big.Int).Set(volumeLimit),
	})
	g.persistLocked()
	return nil
}

// Reset clears the config for a (chain, token) pair as if it was never
// configured.
func (g *AccommodationGuard) Reset(caller common.Address, chainID uint32, token common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.owner {
		return ErrUnauthorized
	}
	if tokens := g.configs[chainID]; tokens != nil {
		delete(tokens, token)
		if len(tokens) == 0 {
			delete(g.configs, chainID)
		}
	}
	g.log.Info("guard reset", zap.Uint32("chainID", chainID), zap.Stringer("token", token))
	emit(g.sink, Event{Kind: EventGuardReset, ChainID: chainID, Token: token})
	g.persistLocked()
	return nil
}

// Validate checks amount against the window for (chainID, token) and
// accrues it on success. Only the registered bridge caller is accepted.
// The account is part of the call shape but does not affect the limit.
func (g *AccommodationGuard) Validate(caller common.Address, chainID uint32, token, account common.Address, amount *big.Int) GuardCode {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.bridge == (common.Address{}) || caller != g.bridge {
		return GuardUnauthorizedCaller
	}
	code := g.validateLocked(chainID, token, amount)
	if code == GuardNoError {
		g.persistLocked()
	}
	return code
}

// validateLocked runs the window logic. Callers hold g.mu.
func (g *AccommodationGuard) validateLocked(chainID uint32, token common.Address, amount *big.Int) GuardCode {
	cfg := g.config(chainID, token)
	if cfg == nil || cfg.TimeFrame == 0 {
		return GuardTimeFrameNotSet
	}

	now := g.now()
	if now.Sub(cfg.LastReset) >= cfg.TimeFrame {
		cfg.CurrentVolume = new(big.Int)
		cfg.LastReset = now
	}

	next := new(big.Int).Add(cfg.CurrentVolume, amount)
	if next.Cmp(cfg.VolumeLimit) > 0 {
		return GuardVolumeLimitReached
	}
	cfg.CurrentVolume = next
	return GuardNoError
}

// rollbackVolume gives back volume accrued earlier in an aborted batch.
// Package-private: only the ledger unwinds, and only for amounts it just
// validated in the same window.
func (g *AccommodationGuard) rollbackVolume(chainID uint32, token common.Address, amount *big.Int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg := g.config(chainID, token)
	if cfg == nil {
		return
	}
	cfg.CurrentVolume.Sub(cfg.CurrentVolume, amount)
	if cfg.CurrentVolume.Sign() < 0 {
		cfg.CurrentVolume = new(big.Int)
	}
	g.persistLocked()
}

// Config returns a copy of the window config, or a zero-value config when
// the pair was never configured.
func (g *AccommodationGuard) Config(chainID uint32, token common.Address) GuardConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cfg := g.config(chainID, token)
	if cfg == nil {
		return GuardConfig{CurrentVolume: new(big.Int), VolumeLimit: new(big.Int)}
	}
	return GuardConfig{
		TimeFrame:     cfg.TimeFrame,
		VolumeLimit:   new(big.Int).Set(cfg.VolumeLimit),
		CurrentVolume: new(big.Int).Set(cfg.CurrentVolume),
		LastReset:     cfg.LastReset,
	}
}

// Bridge returns the registered bridge caller.
func (g *AccommodationGuard) Bridge() common.Address {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.bridge
}

// Owner returns the guard owner.
func (g *AccommodationGuard) Owner() common.Address {
	return g.owner
}

func (g *AccommodationGuard) config(chainID uint32, token common.Address) *GuardConfig {
	tokens := g.configs[chainID]
	if tokens == nil {
		return nil
	}
	return tokens[token]
}
