// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
)

func TestEventID(t *testing.T) {
	base := Event{
		Kind:    EventRelocationRequested,
		ChainID: 1,
		Token:   common.HexToAddress("0x8000000000000000000000000000000000000001"),
		Account: common.HexToAddress("0x8000000000000000000000000000000000000002"),
		Amount:  big.NewInt(456),
		Nonce:   7,
	}

	if base.ID() != base.ID() {
		t.Error("same event hashed to different ids")
	}

	variants := []Event{base, base, base, base, base}
	variants[1].Kind = EventRelocationCanceled
	variants[2].ChainID = 2
	variants[3].Nonce = 8
	variants[4].Amount = big.NewInt(457)

	seen := make(map[common.Hash]int)
	for i, e := range variants {
		id := e.ID()
		if prev, ok := seen[id]; ok {
			t.Errorf("variants %d and %d collided", prev, i)
		}
		seen[id] = i
	}
}

func TestEmitNilSink(t *testing.T) {
	// Must not panic.
	emit(nil, Event{Kind: EventPauseChanged})

	var got []Event
	emit(func(e Event) { got = append(got, e) }, Event{Kind: EventPauseChanged, Enabled: true})
	if len(got) != 1 || !got[0].Enabled {
		t.Errorf("sink not invoked correctly: %v", got)
	}
}
