// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"github.com/luxfi/geth/common"
)

// accessControl is the role/pause boundary checked before any core logic
// runs. The owner configures the bridge; bridgers drive batch processing
// and relocation lifecycle changes on behalf of accounts.
type accessControl struct {
	owner    common.Address
	bridgers map[common.Address]bool
	paused   bool
}

func newAccessControl(owner common.Address) *accessControl {
	return &accessControl{
		owner:    owner,
		bridgers: make(map[common.Address]bool),
	}
}

func (a *accessControl) requireOwner(caller common.Address) error {
	if caller != a.owner {
		return ErrUnauthorized
	}
	return nil
}

func (a *accessControl) requireBridger(caller common.Address) error {
	if !a.bridgers[caller] {
		return ErrUnauthorized
	}
	return nil
}

func (a *accessControl) requireNotPaused() error {
	if a.paused {
		return ErrPaused
	}
	return nil
}

// SetBridger grants or revokes the bridger role. Owner-only.
func (b *BridgeLedger) SetBridger(caller, account common.Address, enabled bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireOwner(caller); err != nil {
		return err
	}
	if account == (common.Address{}) {
		return ErrZeroAccount
	}
	if b.acl.bridgers[account] == enabled {
		return ErrUnchangedBridger
	}
	if enabled {
		b.acl.bridgers[account] = true
	} else {
		delete(b.acl.bridgers, account)
	}
	emit(b.sink, Event{Kind: EventBridgerChanged, Account: account, Enabled: enabled})
	return nil
}

// Pause gates all state-mutating entry points. Owner-only.
func (b *BridgeLedger) Pause(caller common.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireOwner(caller); err != nil {
		return err
	}
	if b.acl.paused {
		return ErrAlreadyPaused
	}
	b.acl.paused = true
	emit(b.sink, Event{Kind: EventPauseChanged, Enabled: true})
	return nil
}

// Unpause lifts the pause gate. Owner-only.
func (b *BridgeLedger) Unpause(caller common.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireOwner(caller); err != nil {
		return err
	}
	if !b.acl.paused {
		return ErrNotPaused
	}
	b.acl.paused = false
	emit(b.sink, Event{Kind: EventPauseChanged, Enabled: false})
	return nil
}

// IsBridger reports whether an account holds the bridger role.
func (b *BridgeLedger) IsBridger(account common.Address) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.acl.bridgers[account]
}

// IsPaused reports the pause flag.
func (b *BridgeLedger) IsPaused() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.acl.paused
}

// Owner returns the ledger owner.
func (b *BridgeLedger) Owner() common.Address {
	return b.acl.owner
}
