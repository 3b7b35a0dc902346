// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bridge implements the ledger that moves value between two
// independently operated chains. The source side records outgoing
// relocations, pulls the principal (plus any oracle fee) into custody and
// later burns or keeps it locked when a relayer processes the batch. The
// destination side applies incoming accommodations, crediting recipients
// once per source-side nonce, rate limited by an AccommodationGuard.
package bridge

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/luxfi/geth/common"
)

// RelocationStatus is the lifecycle state of a relocation nonce.
type RelocationStatus uint8

const (
	StatusNonexistent RelocationStatus = iota
	StatusPending
	StatusCanceled
	StatusProcessed
	StatusRejected
	StatusAborted
	StatusPostponed
	StatusContinued
)

func (s RelocationStatus) String() string {
	switch s {
	case StatusNonexistent:
		return "Nonexistent"
	case StatusPending:
		return "Pending"
	case StatusCanceled:
		return "Canceled"
	case StatusProcessed:
		return "Processed"
	case StatusRejected:
		return "Rejected"
	case StatusAborted:
		return "Aborted"
	case StatusPostponed:
		return "Postponed"
	case StatusContinued:
		return "Continued"
	default:
		return fmt.Sprintf("RelocationStatus(%d)", uint8(s))
	}
}

// OperationMode is the per (chain, token) transfer policy.
type OperationMode uint8

const (
	ModeUnsupported OperationMode = iota
	ModeBurnOrMint
	ModeLockOrTransfer
)

func (m OperationMode) String() string {
	switch m {
	case ModeUnsupported:
		return "Unsupported"
	case ModeBurnOrMint:
		return "BurnOrMint"
	case ModeLockOrTransfer:
		return "LockOrTransfer"
	default:
		return fmt.Sprintf("OperationMode(%d)", uint8(m))
	}
}

// FeeRefundMode selects what happens to a withheld fee when a relocation
// is canceled or rejected.
type FeeRefundMode uint8

const (
	RefundNothing FeeRefundMode = iota
	RefundFull
)

// Relocation is a recorded request to move value away from this chain.
// Amount is the principal and excludes the fee. OldNonce/NewNonce are the
// postpone/continue cross-links and stay zero otherwise.
type Relocation struct {
	Token    common.Address   `json:"token"`
	Account  common.Address   `json:"account"`
	Amount   *big.Int         `json:"amount"`
	Fee      *big.Int         `json:"fee"`
	Status   RelocationStatus `json:"status"`
	OldNonce uint64           `json:"oldNonce"`
	NewNonce uint64           `json:"newNonce"`
}

// Accommodation is one caller-supplied entry of an incoming batch. Status
// is the claimed terminal status of the matching source-side relocation;
// only StatusProcessed entries move value, everything else just advances
// the accommodation nonce.
type Accommodation struct {
	Token   common.Address   `json:"token"`
	Account common.Address   `json:"account"`
	Amount  *big.Int         `json:"amount"`
	Status  RelocationStatus `json:"status"`
}

// GuardConfig is the rate-limit window for one (chain, token) pair.
type GuardConfig struct {
	TimeFrame     time.Duration `json:"timeFrame"`
	VolumeLimit   *big.Int      `json:"volumeLimit"`
	CurrentVolume *big.Int      `json:"currentVolume"`
	LastReset     time.Time     `json:"lastReset"`
}

// GuardCode is the result of an AccommodationGuard validation.
type GuardCode uint8

const (
	GuardNoError GuardCode = iota
	GuardUnauthorizedCaller
	GuardTimeFrameNotSet
	GuardVolumeLimitReached
)

func (c GuardCode) String() string {
	switch c {
	case GuardNoError:
		return "NoError"
	case GuardUnauthorizedCaller:
		return "UnauthorizedCaller"
	case GuardTimeFrameNotSet:
		return "TimeFrameNotSet"
	case GuardVolumeLimitReached:
		return "VolumeLimitReached"
	default:
		return fmt.Sprintf("GuardCode(%d)", uint8(c))
	}
}

// Ledger errors
var (
	ErrZeroToken             = errors.New("token address is zero")
	ErrZeroAccount           = errors.New("account address is zero")
	ErrZeroAmount            = errors.New("amount is zero")
	ErrZeroAddress           = errors.New("address is zero")
	ErrUnauthorized          = errors.New("unauthorized caller")
	ErrPaused                = errors.New("bridge is paused")
	ErrUnsupportedRelocation = errors.New("relocation not supported for token on chain")
	ErrUnsupportedToken      = errors.New("accommodation not supported for token on chain")
	ErrEmptyBatch            = errors.New("empty accommodation batch")
	ErrNonceMismatch         = errors.New("accommodation nonce mismatch")
	ErrZeroRelocationCount   = errors.New("relocation count is zero")
	ErrLackOfPendingRequests = errors.New("count exceeds pending relocations")
	ErrTokenBurningFailure   = errors.New("token burning failed")
	ErrTokenMintingFailure   = errors.New("token minting failed")
	ErrNonBridgeableToken    = errors.New("token does not support bridge operations")
	ErrUnchangedMode         = errors.New("operation mode already set")
	ErrImmutableMode         = errors.New("operation mode cannot be changed once set")
	ErrUnchangedFeeOracle    = errors.New("fee oracle already set")
	ErrUnchangedFeeCollector = errors.New("fee collector already set")
	ErrUnchangedBridger      = errors.New("bridger state already set")
	ErrAlreadyPaused         = errors.New("already paused")
	ErrNotPaused             = errors.New("not paused")
)

// Guard configuration errors
var (
	ErrZeroChainID     = errors.New("chain id is zero")
	ErrZeroTimeFrame   = errors.New("time frame is zero")
	ErrZeroVolumeLimit = errors.New("volume limit is zero")
)

// Gateway errors
var (
	ErrInsufficientBalance = errors.New("insufficient account balance")
	ErrInsufficientCustody = errors.New("insufficient custody balance")
)

// InappropriateRelocationStatusError reports a status transition attempted
// from a state that does not allow it.
type InappropriateRelocationStatusError struct {
	ChainID uint32
	Nonce   uint64
	Current RelocationStatus
}

func (e *InappropriateRelocationStatusError) Error() string {
	return fmt.Sprintf("inappropriate relocation status %s for chain %d nonce %d",
		e.Current, e.ChainID, e.Nonce)
}

// AccommodationGuardError reports the entry that made the guard abort an
// accommodation batch. No entry of the batch is applied when it occurs.
type AccommodationGuardError struct {
	Index int
	Code  GuardCode
}

func (e *AccommodationGuardError) Error() string {
	return fmt.Sprintf("accommodation guard rejected entry %d: %s", e.Index, e.Code)
}
