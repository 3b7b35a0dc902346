// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry tracks deployed bridge ledgers so embedders can wire
// relayers and tooling against a stable name or address.
package registry

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/brlc-bridge-sub000/bridge"
)

// Deployment couples a bridge ledger with the stable key it registers
// under. The guard travels with the ledger and is reachable through it.
type Deployment struct {
	Key    string
	Ledger *bridge.BridgeLedger
}

var (
	mu sync.RWMutex

	// deployments is kept sorted by ledger address for deterministic
	// iteration.
	deployments = make([]Deployment, 0)
)

// Register adds a deployment. Keys and ledger addresses must be unique
// across the registry.
func Register(d Deployment) error {
	if d.Key == "" {
		return fmt.Errorf("deployment key must not be empty")
	}
	if d.Ledger == nil {
		return fmt.Errorf("deployment %s has no ledger", d.Key)
	}

	mu.Lock()
	defer mu.Unlock()

	address := d.Ledger.Address()
	for _, existing := range deployments {
		if existing.Key == d.Key {
			return fmt.Errorf("key %s already used by a bridge deployment", d.Key)
		}
		if existing.Ledger.Address() == address {
			return fmt.Errorf("address %s already used by a bridge deployment", address)
		}
	}
	deployments = insertSortedByAddress(deployments, d)
	return nil
}

// ByAddress looks a deployment up by its ledger address.
func ByAddress(address common.Address) (Deployment, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for _, d := range deployments {
		if d.Ledger.Address() == address {
			return d, true
		}
	}
	return Deployment{}, false
}

// ByKey looks a deployment up by its registration key.
func ByKey(key string) (Deployment, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for _, d := range deployments {
		if d.Key == key {
			return d, true
		}
	}
	return Deployment{}, false
}

// Deployments returns all registered deployments ordered by ledger
// address.
func Deployments() []Deployment {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Deployment, len(deployments))
	copy(out, deployments)
	return out
}

func insertSortedByAddress(data []Deployment, d Deployment) []Deployment {
	data = append(data, d)
	sort.Slice(data, func(i, j int) bool {
		a, b := data[i].Ledger.Address(), data[j].Ledger.Address()
		return bytes.Compare(a[:], b[:]) < 0
	})
	return data
}
