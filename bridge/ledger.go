// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"go.uber.org/zap"
)

// BridgeLedger owns all relocation and accommodation state per chain and
// per (chain, token) pair. Every public operation runs to completion under
// one lock and either commits all of its changes or leaves state untouched.
type BridgeLedger struct {
	addr common.Address // identity this ledger presents to the guard

	acl     *accessControl
	gateway TokenGateway
	guard   *AccommodationGuard

	feeOracle    FeeOracle
	feeCollector common.Address

	immutableModes bool

	relocations        map[uint32]map[uint64]*Relocation
	pendingCount       map[uint32]uint64
	lastProcessed      map[uint32]uint64
	lastAccommodation  map[uint32]uint64
	relocationModes    map[uint32]map[common.Address]OperationMode
	accommodationModes map[uint32]map[common.Address]OperationMode

	log  luxlog.Logger
	sink EventSink
	db   database.Database

	mu sync.RWMutex
}

// LedgerOption customizes a ledger at construction.
type LedgerOption func(*BridgeLedger)

// WithLogger sets the structured logger.
func WithLogger(log luxlog.Logger) LedgerOption {
	return func(b *BridgeLedger) { b.log = log }
}

// WithEventSink sets the event sink.
func WithEventSink(sink EventSink) LedgerOption {
	return func(b *BridgeLedger) { b.sink = sink }
}

// WithDatabase makes ledger state durable: a snapshot is written after
// every committed mutation and restored at construction.
func WithDatabase(db database.Database) LedgerOption {
	return func(b *BridgeLedger) { b.db = db }
}

// WithImmutableModes locks every (chain, token) operation mode once it
// leaves Unsupported, preventing mid-flight semantic changes to pending
// value.
func WithImmutableModes() LedgerOption {
	return func(b *BridgeLedger) { b.immutableModes = true }
}

// NewBridgeLedger creates a ledger identified by addr and owned by owner.
// The gateway is the token transfer primitive; the guard is consulted on
// every accommodated value transfer and must have this ledger's addr
// registered as its bridge caller before accommodation can succeed.
func NewBridgeLedger(addr, owner common.Address, gateway TokenGateway, guard *AccommodationGuard, opts ...LedgerOption) (*BridgeLedger, error) {
	if addr == (common.Address{}) || owner == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	if gateway == nil || guard == nil {
		return nil, fmt.Errorf("bridge: gateway and guard are required")
	}

	b := &BridgeLedger{
		addr:               addr,
		acl:                newAccessControl(owner),
		gateway:            gateway,
		guard:              guard,
		relocations:        make(map[uint32]map[uint64]*Relocation),
		pendingCount:       make(map[uint32]uint64),
		lastProcessed:      make(map[uint32]uint64),
		lastAccommodation:  make(map[uint32]uint64),
		relocationModes:    make(map[uint32]map[common.Address]OperationMode),
		accommodationModes: make(map[uint32]map[common.Address]OperationMode),
		log:                luxlog.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.db != nil {
		if err := b.restore(); err != nil {
			return nil, fmt.Errorf("bridge: restore ledger state: %w", err)
		}
	}
	return b, nil
}

// RequestRelocation records an outgoing transfer of amount toward chainID
// and pulls amount plus any oracle fee from the caller into custody. It
// returns the assigned nonce. The caller is the initiator and the
// beneficiary of any later refund.
func (b *BridgeLedger) RequestRelocation(caller common.Address, chainID uint32, token common.Address, amount *big.Int) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return 0, err
	}
	if token == (common.Address{}) {
		return 0, ErrZeroToken
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, ErrZeroAmount
	}
	if b.modeOf(b.relocationModes, chainID, token) == ModeUnsupported {
		return 0, ErrUnsupportedRelocation
	}

	fee := new(big.Int)
	if b.isFeeTakenLocked() {
		if oracleFee := b.feeOracle.DefineFee(chainID, token, caller, amount); oracleFee != nil {
			fee.Set(oracleFee)
		}
	}

	total := new(big.Int).Add(amount, fee)
	if err := b.gateway.TransferIn(token, caller, total); err != nil {
		return 0, fmt.Errorf("bridge: pull relocation funds: %w", err)
	}

	nonce := b.lastProcessed[chainID] + b.pendingCount[chainID] + 1
	b.putRelocation(chainID, nonce, &Relocation{
		Token:   token,
		Account: caller,
		Amount:  new(big.Int).Set(amount),
		Fee:     fee,
		Status:  StatusPending,
	})
	b.pendingCount[chainID]++

	b.log.Info("relocation requested",
		zap.Uint32("chainID", chainID),
		zap.Uint64("nonce", nonce),
		zap.Stringer("token", token),
		zap.Stringer("account", caller),
		zap.String("amount", amount.String()),
		zap.String("fee", fee.String()),
	)
	emit(b.sink, Event{
		Kind:    EventRelocationRequested,
		ChainID: chainID,
		Token:   token,
		Account: caller,
		Amount:  new(big.Int).Set(amount),
		Fee:     new(big.Int).Set(fee),
		Nonce:   nonce,
	})
	b.persist()
	return nonce, nil
}

// CancelRelocation refuses a Pending or Postponed relocation and returns
// the principal to the account, plus the fee when refundMode is
// RefundFull.
func (b *BridgeLedger) CancelRelocation(caller common.Address, chainID uint32, nonce uint64, refundMode FeeRefundMode) error {
	return b.refuseRelocation(caller, chainID, nonce, refundMode, StatusCanceled, EventRelocationCanceled)
}

// RejectRelocation is the relayer-driven twin of CancelRelocation: same
// transition and refund policy, distinct terminal status for audit.
func (b *BridgeLedger) RejectRelocation(caller common.Address, chainID uint32, nonce uint64, refundMode FeeRefundMode) error {
	return b.refuseRelocation(caller, chainID, nonce, refundMode, StatusRejected, EventRelocationRejected)
}

func (b *BridgeLedger) refuseRelocation(caller common.Address, chainID uint32, nonce uint64, refundMode FeeRefundMode, target RelocationStatus, kind EventKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return err
	}
	if err := b.acl.requireBridger(caller); err != nil {
		return err
	}

	rel, err := b.transitionable(chainID, nonce)
	if err != nil {
		return err
	}

	snap, snapOK := b.gatewaySnapshot()
	if err := b.gateway.TransferOut(rel.Token, rel.Account, rel.Amount); err != nil {
		b.gatewayRevert(snap, snapOK)
		return fmt.Errorf("bridge: refund principal: %w", err)
	}
	if refundMode == RefundFull && rel.Fee.Sign() > 0 {
		if err := b.gateway.TransferOut(rel.Token, rel.Account, rel.Fee); err != nil {
			b.gatewayRevert(snap, snapOK)
			return fmt.Errorf("bridge: refund fee: %w", err)
		}
	}

	rel.Status = target
	b.log.Info("relocation refused",
		zap.Uint32("chainID", chainID),
		zap.Uint64("nonce", nonce),
		zap.Stringer("status", target),
	)
	emit(b.sink, Event{
		Kind:    kind,
		ChainID: chainID,
		Token:   rel.Token,
		Account: rel.Account,
		Amount:  new(big.Int).Set(rel.Amount),
		Fee:     new(big.Int).Set(rel.Fee),
		Nonce:   nonce,
	})
	b.persist()
	return nil
}

// AbortRelocation refuses a Pending or Postponed relocation without any
// refund: principal and fee stay in custody permanently.
func (b *BridgeLedger) AbortRelocation(caller common.Address, chainID uint32, nonce uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return err
	}
	if err := b.acl.requireBridger(caller); err != nil {
		return err
	}

	rel, err := b.transitionable(chainID, nonce)
	if err != nil {
		return err
	}

	rel.Status = StatusAborted
	b.log.Info("relocation aborted", zap.Uint32("chainID", chainID), zap.Uint64("nonce", nonce))
	emit(b.sink, Event{
		Kind:    EventRelocationAborted,
		ChainID: chainID,
		Token:   rel.Token,
		Account: rel.Account,
		Amount:  new(big.Int).Set(rel.Amount),
		Fee:     new(big.Int).Set(rel.Fee),
		Nonce:   nonce,
	})
	b.persist()
	return nil
}

// PostponeRelocation defers a Pending relocation without releasing funds.
func (b *BridgeLedger) PostponeRelocation(caller common.Address, chainID uint32, nonce uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return err
	}
	if err := b.acl.requireBridger(caller); err != nil {
		return err
	}

	rel := b.relocationAt(chainID, nonce)
	if rel == nil || rel.Status != StatusPending {
		return b.statusError(chainID, nonce, rel)
	}

	rel.Status = StatusPostponed
	emit(b.sink, Event{Kind: EventRelocationPostponed, ChainID: chainID, Nonce: nonce})
	b.persist()
	return nil
}

// ContinueRelocation re-enters a Postponed relocation into the pending
// window under a fresh nonce, carrying token, account, amount and fee
// over. The two records stay cross-linked through OldNonce/NewNonce. It
// returns the new nonce.
func (b *BridgeLedger) ContinueRelocation(caller common.Address, chainID uint32, nonce uint64) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return 0, err
	}
	if err := b.acl.requireBridger(caller); err != nil {
		return 0, err
	}

	rel := b.relocationAt(chainID, nonce)
	if rel == nil || rel.Status != StatusPostponed {
		return 0, b.statusError(chainID, nonce, rel)
	}

	newNonce := b.lastProcessed[chainID] + b.pendingCount[chainID] + 1
	b.putRelocation(chainID, newNonce, &Relocation{
		Token:    rel.Token,
		Account:  rel.Account,
		Amount:   new(big.Int).Set(rel.Amount),
		Fee:      new(big.Int).Set(rel.Fee),
		Status:   StatusPending,
		OldNonce: nonce,
	})
	b.pendingCount[chainID]++
	rel.Status = StatusContinued
	rel.NewNonce = newNonce

	b.log.Info("relocation continued",
		zap.Uint32("chainID", chainID),
		zap.Uint64("oldNonce", nonce),
		zap.Uint64("newNonce", newNonce),
	)
	emit(b.sink, Event{
		Kind:         EventRelocationContinued,
		ChainID:      chainID,
		Token:        rel.Token,
		Account:      rel.Account,
		Nonce:        newNonce,
		RelatedNonce: nonce,
	})
	b.persist()
	return newNonce, nil
}

// Relocate batch-processes the next count nonces of the pending window.
// Entries still Pending move to Processed: their principal is burned
// (BurnOrMint) or stays locked (LockOrTransfer) and their fee is
// forwarded to the fee collector. Refused, continued or postponed entries
// are skipped. The whole call is all-or-nothing.
func (b *BridgeLedger) Relocate(caller common.Address, chainID uint32, count uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return err
	}
	if err := b.acl.requireBridger(caller); err != nil {
		return err
	}
	if count == 0 {
		return ErrZeroRelocationCount
	}
	if count > b.pendingCount[chainID] {
		return ErrLackOfPendingRequests
	}

	first := b.lastProcessed[chainID] + 1
	snap, snapOK := b.gatewaySnapshot()

	var processed []uint64
	for nonce := first; nonce < first+count; nonce++ {
		rel := b.relocationAt(chainID, nonce)
		if rel == nil || rel.Status != StatusPending {
			continue
		}
		if b.modeOf(b.relocationModes, chainID, rel.Token) == ModeBurnOrMint {
			if !b.gateway.Burn(rel.Token, b.addr, rel.Amount) {
				b.gatewayRevert(snap, snapOK)
				return ErrTokenBurningFailure
			}
		}
		if rel.Fee.Sign() > 0 && b.feeCollector != (common.Address{}) {
			if err := b.gateway.TransferOut(rel.Token, b.feeCollector, rel.Fee); err != nil {
				b.gatewayRevert(snap, snapOK)
				return fmt.Errorf("bridge: forward fee: %w", err)
			}
		}
		processed = append(processed, nonce)
	}

	b.lastProcessed[chainID] += count
	b.pendingCount[chainID] -= count
	for _, nonce := range processed {
		rel := b.relocationAt(chainID, nonce)
		rel.Status = StatusProcessed
		emit(b.sink, Event{
			Kind:    EventRelocationProcessed,
			ChainID: chainID,
			Token:   rel.Token,
			Account: rel.Account,
			Amount:  new(big.Int).Set(rel.Amount),
			Fee:     new(big.Int).Set(rel.Fee),
			Nonce:   nonce,
		})
	}

	b.log.Info("relocations processed",
		zap.Uint32("chainID", chainID),
		zap.Uint64("count", count),
		zap.Int("transitioned", len(processed)),
	)
	b.persist()
	return nil
}

// Accommodate applies a sequential batch of source-side outcomes starting
// at nonce, which must extend the accommodation sequence exactly. Entries
// claiming StatusProcessed are guard-validated and credited to their
// account; all other claimed statuses only advance the sequence. The
// batch is atomic: a guard rejection or gateway failure applies nothing.
func (b *BridgeLedger) Accommodate(caller common.Address, chainID uint32, nonce uint64, entries []Accommodation) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireNotPaused(); err != nil {
		return err
	}
	if err := b.acl.requireBridger(caller); err != nil {
		return err
	}
	if nonce == 0 || nonce != b.lastAccommodation[chainID]+1 {
		return ErrNonceMismatch
	}
	if len(entries) == 0 {
		return ErrEmptyBatch
	}
	for i := range entries {
		e := &entries[i]
		if b.modeOf(b.accommodationModes, chainID, e.Token) == ModeUnsupported {
			return fmt.Errorf("bridge: entry %d: %w", i, ErrUnsupportedToken)
		}
		if e.Account == (common.Address{}) {
			return fmt.Errorf("bridge: entry %d: %w", i, ErrZeroAccount)
		}
		if e.Amount == nil || e.Amount.Sign() <= 0 {
			return fmt.Errorf("bridge: entry %d: %w", i, ErrZeroAmount)
		}
	}

	// Guard pass. Volume consumed by earlier entries of an aborted batch
	// is handed back before returning.
	var validated []int
	for i := range entries {
		e := &entries[i]
		if e.Status != StatusProcessed {
			continue
		}
		if code := b.guard.Validate(b.addr, chainID, e.Token, e.Account, e.Amount); code != GuardNoError {
			b.unwindGuard(chainID, entries, validated)
			return &AccommodationGuardError{Index: i, Code: code}
		}
		validated = append(validated, i)
	}

	// Transfer pass.
	snap, snapOK := b.gatewaySnapshot()
	for _, i := range validated {
		e := &entries[i]
		if b.modeOf(b.accommodationModes, chainID, e.Token) == ModeBurnOrMint {
			if !b.gateway.Mint(e.Token, e.Account, e.Amount) {
				b.gatewayRevert(snap, snapOK)
				b.unwindGuard(chainID, entries, validated)
				return ErrTokenMintingFailure
			}
		} else {
			if err := b.gateway.TransferOut(e.Token, e.Account, e.Amount); err != nil {
				b.gatewayRevert(snap, snapOK)
				b.unwindGuard(chainID, entries, validated)
				return fmt.Errorf("bridge: release custody: %w", err)
			}
		}
	}

	b.lastAccommodation[chainID] += uint64(len(entries))
	for _, i := range validated {
		e := &entries[i]
		emit(b.sink, Event{
			Kind:    EventAccommodation,
			ChainID: chainID,
			Token:   e.Token,
			Account: e.Account,
			Amount:  new(big.Int).Set(e.Amount),
			Nonce:   nonce + uint64(i),
		})
	}

	b.log.Info("accommodation batch applied",
		zap.Uint32("chainID", chainID),
		zap.Uint64("firstNonce", nonce),
		zap.Int("entries", len(entries)),
		zap.Int("transferred", len(validated)),
	)
	b.persist()
	return nil
}

func (b *BridgeLedger) unwindGuard(chainID uint32, entries []Accommodation, validated []int) {
	for _, i := range validated {
		b.guard.rollbackVolume(chainID, entries[i].Token, entries[i].Amount)
	}
}

// SetRelocationMode sets the outgoing transfer policy for a (chain, token)
// pair. BurnOrMint requires the token to advertise bridge support.
func (b *BridgeLedger) SetRelocationMode(caller common.Address, chainID uint32, token common.Address, mode OperationMode) error {
	return b.setMode(caller, chainID, token, mode, b.relocationModes, EventRelocationModeSet)
}

// SetAccommodationMode sets the incoming transfer policy for a
// (chain, token) pair.
func (b *BridgeLedger) SetAccommodationMode(caller common.Address, chainID uint32, token common.Address, mode OperationMode) error {
	return b.setMode(caller, chainID, token, mode, b.accommodationModes, EventAccommodationModeSet)
}

func (b *BridgeLedger) setMode(caller common.Address, chainID uint32, token common.Address, mode OperationMode, modes map[uint32]map[common.Address]OperationMode, kind EventKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireOwner(caller); err != nil {
		return err
	}
	if token == (common.Address{}) {
		return ErrZeroToken
	}

	current := b.modeOf(modes, chainID, token)
	if mode == current {
		return ErrUnchangedMode
	}
	if b.immutableModes && current != ModeUnsupported {
		return ErrImmutableMode
	}
	if mode == ModeBurnOrMint && !b.gateway.SupportsBridge(token) {
		return ErrNonBridgeableToken
	}

	if modes[chainID] == nil {
		modes[chainID] = make(map[common.Address]OperationMode)
	}
	modes[chainID][token] = mode

	b.log.Info("operation mode set",
		zap.Uint32("chainID", chainID),
		zap.Stringer("token", token),
		zap.Stringer("mode", mode),
	)
	emit(b.sink, Event{Kind: kind, ChainID: chainID, Token: token, Mode: mode})
	b.persist()
	return nil
}

// SetFeeOracle installs the fee oracle. A nil oracle turns fee taking
// off. Rejects no-op changes.
func (b *BridgeLedger) SetFeeOracle(caller common.Address, oracle FeeOracle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireOwner(caller); err != nil {
		return err
	}
	if oracle == b.feeOracle {
		return ErrUnchangedFeeOracle
	}
	b.feeOracle = oracle
	emit(b.sink, Event{Kind: EventFeeOracleChanged})
	return nil
}

// SetFeeCollector sets where forwarded fees go. A zero address turns fee
// taking off. Rejects no-op changes.
func (b *BridgeLedger) SetFeeCollector(caller, collector common.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acl.requireOwner(caller); err != nil {
		return err
	}
	if collector == b.feeCollector {
		return ErrUnchangedFeeCollector
	}
	b.feeCollector = collector
	emit(b.sink, Event{Kind: EventFeeCollectorChanged, Address: collector})
	b.persist()
	return nil
}

// Read API

// PendingRelocationCount returns the number of nonces in the pending
// window for a chain.
func (b *BridgeLedger) PendingRelocationCount(chainID uint32) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.pendingCount[chainID]
}

// LastProcessedRelocationNonce returns the highest nonce consumed by
// Relocate for a chain.
func (b *BridgeLedger) LastProcessedRelocationNonce(chainID uint32) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastProcessed[chainID]
}

// LastAccommodationNonce returns the highest source-side nonce applied by
// Accommodate for a chain.
func (b *BridgeLedger) LastAccommodationNonce(chainID uint32) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastAccommodation[chainID]
}

// RelocationMode returns the outgoing policy for a (chain, token) pair.
func (b *BridgeLedger) RelocationMode(chainID uint32, token common.Address) OperationMode {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.modeOf(b.relocationModes, chainID, token)
}

// AccommodationMode returns the incoming policy for a (chain, token) pair.
func (b *BridgeLedger) AccommodationMode(chainID uint32, token common.Address) OperationMode {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.modeOf(b.accommodationModes, chainID, token)
}

// GetRelocation returns a copy of the relocation stored for a nonce. A
// never-assigned nonce yields a zero-value relocation with
// StatusNonexistent.
func (b *BridgeLedger) GetRelocation(chainID uint32, nonce uint64) Relocation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return copyRelocation(b.relocationAt(chainID, nonce))
}

// GetRelocations returns copies of count relocations starting at nonce
// begin.
func (b *BridgeLedger) GetRelocations(chainID uint32, begin, count uint64) []Relocation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Relocation, 0, count)
	for nonce := begin; nonce < begin+count; nonce++ {
		out = append(out, copyRelocation(b.relocationAt(chainID, nonce)))
	}
	return out
}

// FeeCollector returns the configured fee collector, zero when unset.
func (b *BridgeLedger) FeeCollector() common.Address {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.feeCollector
}

// FeeOracle returns the configured fee oracle, nil when unset.
func (b *BridgeLedger) FeeOracle() FeeOracle {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.feeOracle
}

// IsFeeTaken reports whether relocations currently have fees withheld.
func (b *BridgeLedger) IsFeeTaken() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.isFeeTakenLocked()
}

// Guard returns the accommodation guard this ledger consults.
func (b *BridgeLedger) Guard() *AccommodationGuard {
	return b.guard
}

// Address returns the identity this ledger presents to the guard.
func (b *BridgeLedger) Address() common.Address {
	return b.addr
}

// internals

func (b *BridgeLedger) isFeeTakenLocked() bool {
	return b.feeOracle != nil && b.feeCollector != (common.Address{})
}

func (b *BridgeLedger) modeOf(modes map[uint32]map[common.Address]OperationMode, chainID uint32, token common.Address) OperationMode {
	if tokens := modes[chainID]; tokens != nil {
		return tokens[token]
	}
	return ModeUnsupported
}

func (b *BridgeLedger) relocationAt(chainID uint32, nonce uint64) *Relocation {
	if nonces := b.relocations[chainID]; nonces != nil {
		return nonces[nonce]
	}
	return nil
}

func (b *BridgeLedger) putRelocation(chainID uint32, nonce uint64, rel *Relocation) {
	if b.relocations[chainID] == nil {
		b.relocations[chainID] = make(map[uint64]*Relocation)
	}
	b.relocations[chainID][nonce] = rel
}

// transitionable returns the relocation when it is Pending or Postponed,
// the only states cancel/reject/abort may leave from.
func (b *BridgeLedger) transitionable(chainID uint32, nonce uint64) (*Relocation, error) {
	rel := b.relocationAt(chainID, nonce)
	if rel == nil || (rel.Status != StatusPending && rel.Status != StatusPostponed) {
		return nil, b.statusError(chainID, nonce, rel)
	}
	return rel, nil
}

func (b *BridgeLedger) statusError(chainID uint32, nonce uint64, rel *Relocation) error {
	current := StatusNonexistent
	if rel != nil {
		current = rel.Status
	}
	return &InappropriateRelocationStatusError{ChainID: chainID, Nonce: nonce, Current: current}
}

func (b *BridgeLedger) gatewaySnapshot() (int, bool) {
	if s, ok := b.gateway.(GatewaySnapshotter); ok {
		return s.Snapshot(), true
	}
	return 0, false
}

func (b *BridgeLedger) gatewayRevert(id int, ok bool) {
	if ok {
		b.gateway.(GatewaySnapshotter).RevertToSnapshot(id)
	}
}

func copyRelocation(rel *Relocation) Relocation {
	if rel == nil {
		return Relocation{Status: StatusNonexistent, Amount: new(big.Int), Fee: new(big.Int)}
	}
	return Relocation{
		Token:    rel.Token,
		Account:  rel.Account,
		Amount:   new(big.Int).Set(rel.Amount),
		Fee:      new(big.Int).Set(rel.Fee),
		Status:   rel.Status,
		OldNonce: rel.OldNonce,
		NewNonce: rel.NewNonce,
	}
}
