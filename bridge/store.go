// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"encoding/json"
	"errors"
	"math/big"

	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	"go.uber.org/zap"
)

// Database keys for the durable snapshots.
var (
	ledgerStateKey = []byte("bridge/ledger")
	guardStateKey  = []byte("bridge/guard")
)

// ledgerState is the serialized form of all durable BridgeLedger state.
// The gateway, the oracle and the access-control roles are collaborators
// injected at construction and are not part of the snapshot.
type ledgerState struct {
	Relocations        map[uint32]map[uint64]*Relocation           `json:"relocations"`
	PendingCount       map[uint32]uint64                           `json:"pendingCount"`
	LastProcessed      map[uint32]uint64                           `json:"lastProcessed"`
	LastAccommodation  map[uint32]uint64                           `json:"lastAccommodation"`
	RelocationModes    map[uint32]map[common.Address]OperationMode `json:"relocationModes"`
	AccommodationModes map[uint32]map[common.Address]OperationMode `json:"accommodationModes"`
	FeeCollector       common.Address                              `json:"feeCollector"`
}

type guardState struct {
	Bridge  common.Address                           `json:"bridge"`
	Configs map[uint32]map[common.Address]*GuardConfig `json:"configs"`
}

// persist writes the current ledger state to the configured database.
// Persistence is a durability aid, not part of the operation contract: a
// failed write is logged and the in-memory commit stands.
func (b *BridgeLedger) persist() {
	if b.db == nil {
		return
	}
	data, err := json.Marshal(&ledgerState{
		Relocations:        b.relocations,
		PendingCount:       b.pendingCount,
		LastProcessed:      b.lastProcessed,
		LastAccommodation:  b.lastAccommodation,
		RelocationModes:    b.relocationModes,
		AccommodationModes: b.accommodationModes,
		FeeCollector:       b.feeCollector,
	})
	if err != nil {
		b.log.Error("marshal ledger state", zap.Error(err))
		return
	}
	if err := b.db.Put(ledgerStateKey, data); err != nil {
		b.log.Error("persist ledger state", zap.Error(err))
	}
}

// restore loads the last persisted ledger state, if any.
func (b *BridgeLedger) restore() error {
	data, err := b.db.Get(ledgerStateKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var state ledgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	if state.Relocations != nil {
		b.relocations = state.Relocations
	}
	if state.PendingCount != nil {
		b.pendingCount = state.PendingCount
	}
	if state.LastProcessed != nil {
		b.lastProcessed = state.LastProcessed
	}
	if state.LastAccommodation != nil {
		b.lastAccommodation = state.LastAccommodation
	}
	if state.RelocationModes != nil {
		b.relocationModes = state.RelocationModes
	}
	if state.AccommodationModes != nil {
		b.accommodationModes = state.AccommodationModes
	}
	b.feeCollector = state.FeeCollector

	for _, nonces := range b.relocations {
		for _, rel := range nonces {
			if rel.Amount == nil {
				rel.Amount = new(big.Int)
			}
			if rel.Fee == nil {
				rel.Fee = new(big.Int)
			}
		}
	}
	return nil
}

// persistLocked writes the current guard state. Callers hold g.mu.
func (g *AccommodationGuard) persistLocked() {
	if g.db == nil {
		return
	}
	data, err := json.Marshal(&guardState{
		Bridge:  g.bridge,
		Configs: g.configs,
	})
	if err != nil {
		g.log.Error("marshal guard state", zap.Error(err))
		return
	}
	if err := g.db.Put(guardStateKey, data); err != nil {
		g.log.Error("persist guard state", zap.Error(err))
	}
}

// restoreState loads the last persisted guard state, if any.
func (g *AccommodationGuard) restoreState() error {
	data, err := g.db.Get(guardStateKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var state guardState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	g.bridge = state.Bridge
	if state.Configs != nil {
		g.configs = state.Configs
	}
	for _, tokens := range g.configs {
		for _, cfg := range tokens {
			if cfg.CurrentVolume == nil {
				cfg.CurrentVolume = new(big.Int)
			}
			if cfg.VolumeLimit == nil {
				cfg.VolumeLimit = new(big.Int)
			}
		}
	}
	return nil
}
