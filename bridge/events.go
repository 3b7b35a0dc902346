// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"encoding/binary"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"
)

// EventKind names an auditable state change.
type EventKind string

const (
	EventRelocationRequested EventKind = "relocation_requested"
	EventRelocationCanceled  EventKind = "relocation_canceled"
	EventRelocationRejected  EventKind = "relocation_rejected"
	EventRelocationAborted   EventKind = "relocation_aborted"
	EventRelocationPostponed EventKind = "relocation_postponed"
	EventRelocationContinued EventKind = "relocation_continued"
	EventRelocationProcessed EventKind = "relocation_processed"
	EventAccommodation       EventKind = "accommodation_performed"

	EventRelocationModeSet    EventKind = "relocation_mode_set"
	EventAccommodationModeSet EventKind = "accommodation_mode_set"
	EventFeeOracleChanged     EventKind = "fee_oracle_changed"
	EventFeeCollectorChanged  EventKind = "fee_collector_changed"
	EventBridgerChanged       EventKind = "bridger_changed"
	EventPauseChanged         EventKind = "pause_changed"

	EventGuardConfigured    EventKind = "guard_configured"
	EventGuardReset         EventKind = "guard_reset"
	EventGuardBridgeChanged EventKind = "guard_bridge_changed"
)

// Event is one auditable mutation of ledger or guard state. Only the
// fields relevant to the kind are populated.
type Event struct {
	Kind         EventKind
	ChainID      uint32
	Token        common.Address
	Account      common.Address
	Amount       *big.Int
	Fee          *big.Int
	Nonce        uint64
	RelatedNonce uint64
	Mode         OperationMode
	Address      common.Address
	Enabled      bool
}

// ID derives a stable identifier for the event from its identifying
// fields. Two events describing the same logical change hash equal.
func (e Event) ID() common.Hash {
	hasher := blake3.New()
	hasher.Write([]byte(e.Kind))

	var word [8]byte
	binary.BigEndian.PutUint32(word[:4], e.ChainID)
	hasher.Write(word[:4])
	binary.BigEndian.PutUint64(word[:], e.Nonce)
	hasher.Write(word[:])
	binary.BigEndian.PutUint64(word[:], e.RelatedNonce)
	hasher.Write(word[:])

	hasher.Write(e.Token[:])
	hasher.Write(e.Account[:])
	hasher.Write(e.Address[:])
	if e.Amount != nil {
		hasher.Write(e.Amount.Bytes())
	}

	var id common.Hash
	copy(id[:], hasher.Sum(nil))
	return id
}

// EventSink receives every emitted event. Sinks run synchronously under
// the emitting component's lock and must not call back into it.
type EventSink func(Event)

func emit(sink EventSink, e Event) {
	if sink != nil {
		sink(e)
	}
}
