// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"
	"sync"

	"github.com/luxfi/geth/common"
)

// TokenGateway is the token transfer primitive the ledger drives. TransferIn
// pulls value from an account into bridge custody, TransferOut releases
// custody back to an account. Burn destroys custody-held value and Mint
// creates value directly on an account; both report success with a bool and
// are only meaningful for tokens that advertise bridge support.
type TokenGateway interface {
	TransferIn(token, from common.Address, amount *big.Int) error
	TransferOut(token, to common.Address, amount *big.Int) error
	Burn(token, from common.Address, amount *big.Int) bool
	Mint(token, to common.Address, amount *big.Int) bool
	SupportsBridge(token common.Address) bool
}

// GatewaySnapshotter is implemented by gateways that can roll their state
// back to an earlier point. The ledger uses it to keep batch operations
// all-or-nothing when a burn or mint fails partway through.
type GatewaySnapshotter interface {
	Snapshot() int
	RevertToSnapshot(int)
}

// InMemoryGateway is the reference TokenGateway. It tracks free account
// balances, custody held by the bridge, and mint/burn totals per token.
type InMemoryGateway struct {
	balances   map[common.Address]map[common.Address]*big.Int // token -> account -> balance
	custody    map[common.Address]*big.Int                    // token -> custody balance
	minted     map[common.Address]*big.Int
	burned     map[common.Address]*big.Int
	bridgeable map[common.Address]bool

	snapshots []*gatewaySnapshot

	mu sync.RWMutex
}

type gatewaySnapshot struct {
	balances map[common.Address]map[common.Address]*big.Int
	custody  map[common.Address]*big.Int
	minted   map[common.Address]*big.Int
	burned   map[common.Address]*big.Int
}

// NewInMemoryGateway creates an empty gateway.
func NewInMemoryGateway() *InMemoryGateway {
	return &InMemoryGateway{
		balances:   make(map[common.Address]map[common.Address]*big.Int),
		custody:    make(map[common.Address]*big.Int),
		minted:     make(map[common.Address]*big.Int),
		burned:     make(map[common.Address]*big.Int),
		bridgeable: make(map[common.Address]bool),
	}
}

// SetBridgeSupport marks whether a token supports burn/mint operations.
func (g *InMemoryGateway) SetBridgeSupport(token common.Address, supported bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bridgeable[token] = supported
}

// Credit funds an account balance out of thin air. Test and bootstrap
// helper only.
func (g *InMemoryGateway) Credit(token, account common.Address, amount *big.Int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	bal := g.accountBalance(token, account)
	bal.Add(bal, amount)
}

func (g *InMemoryGateway) TransferIn(token, from common.Address, amount *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	bal := g.accountBalance(token, from)
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	cust := g.custodyBalance(token)
	cust.Add(cust, amount)
	return nil
}

func (g *InMemoryGateway) TransferOut(token, to common.Address, amount *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cust := g.custodyBalance(token)
	if cust.Cmp(amount) < 0 {
		return ErrInsufficientCustody
	}
	cust.Sub(cust, amount)
	bal := g.accountBalance(token, to)
	bal.Add(bal, amount)
	return nil
}

// Burn destroys custody-held value. The from address records on whose
// behalf the burn happens; the value itself always leaves custody.
func (g *InMemoryGateway) Burn(token, from common.Address, amount *big.Int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.bridgeable[token] {
		return false
	}
	cust := g.custodyBalance(token)
	if cust.Cmp(amount) < 0 {
		return false
	}
	cust.Sub(cust, amount)
	total := g.totalOf(g.burned, token)
	total.Add(total, amount)
	return true
}

func (g *InMemoryGateway) Mint(token, to common.Address, amount *big.Int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.bridgeable[token] {
		return false
	}
	bal := g.accountBalance(token, to)
	bal.Add(bal, amount)
	total := g.totalOf(g.minted, token)
	total.Add(total, amount)
	return true
}

func (g *InMemoryGateway) SupportsBridge(token common.Address) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.bridgeable[token]
}

// Snapshot captures the current balance state and returns its id.
func (g *InMemoryGateway) Snapshot() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.snapshots = append(g.snapshots, &gatewaySnapshot{
		balances: copyBalances(g.balances),
		custody:  copyTotals(g.custody),
		minted:   copyTotals(g.minted),
		burned:   copyTotals(g.burned),
	})
	return len(g.snapshots) - 1
}

// RevertToSnapshot restores the state captured by Snapshot. Later
// snapshots are discarded. Unknown ids are ignored.
func (g *InMemoryGateway) RevertToSnapshot(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id < 0 || id >= len(g.snapshots) {
		return
	}
	snap := g.snapshots[id]
	g.balances = copyBalances(snap.balances)
	g.custody = copyTotals(snap.custody)
	g.minted = copyTotals(snap.minted)
	g.burned = copyTotals(snap.burned)
	g.snapshots = g.snapshots[:id]
}

// BalanceOf returns the free balance of an account for a token.
func (g *InMemoryGateway) BalanceOf(token, account common.Address) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if accounts := g.balances[token]; accounts != nil {
		if bal := accounts[account]; bal != nil {
			return new(big.Int).Set(bal)
		}
	}
	return new(big.Int)
}

// CustodyOf returns the custody balance held by the bridge for a token.
func (g *InMemoryGateway) CustodyOf(token common.Address) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if cust := g.custody[token]; cust != nil {
		return new(big.Int).Set(cust)
	}
	return new(big.Int)
}

// TotalBurned returns the cumulative burned amount for a token.
func (g *InMemoryGateway) TotalBurned(token common.Address) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if total := g.burned[token]; total != nil {
		return new(big.Int).Set(total)
	}
	return new(big.Int)
}

// TotalMinted returns the cumulative minted amount for a token.
func (g *InMemoryGateway) TotalMinted(token common.Address) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if total := g.minted[token]; total != nil {
		return new(big.Int).Set(total)
	}
	return new(big.Int)
}

func (g *InMemoryGateway) accountBalance(token, account common.Address) *big.Int {
	accounts := g.balances[token]
	if accounts == nil {
		accounts = make(map[common.Address]*big.Int)
		g.balances[token] = accounts
	}
	bal := accounts[account]
	if bal == nil {
		bal = new(big.Int)
		accounts[account] = bal
	}
	return bal
}

func (g *InMemoryGateway) custodyBalance(token common.Address) *big.Int {
	return g.totalOf(g.custody, token)
}

func (g *InMemoryGateway) totalOf(totals map[common.Address]*big.Int, token common.Address) *big.Int {
	total := totals[token]
	if total == nil {
		total = new(big.Int)
		totals[token] = total
	}
	return total
}

func copyBalances(src map[common.Address]map[common.Address]*big.Int) map[common.Address]map[common.Address]*big.Int {
	dst := make(map[common.Address]map[common.Address]*big.Int, len(src))
	for token, accounts := range src {
		inner := make(map[common.Address]*big.Int, len(accounts))
		for account, bal := range accounts {
			inner[account] = new(big.Int).Set(bal)
		}
		dst[token] = inner
	}
	return dst
}

func copyTotals(src map[common.Address]*big.Int) map[common.Address]*big.Int {
	dst := make(map[common.Address]*big.Int, len(src))
	for token, total := range src {
		dst[token] = new(big.Int).Set(total)
	}
	return dst
}
