// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"
	"testing"
	"time"

	"github.com/luxfi/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestLedgerPersistRestore(t *testing.T) {
	require := require.New(t)
	db := memdb.New()

	gw := NewInMemoryGateway()
	gw.SetBridgeSupport(testTokenA, true)
	gw.Credit(testTokenA, testUser, big.NewInt(10_000))

	guard := NewAccommodationGuard(testOwner)
	require.NoError(guard.SetBridge(testOwner, testLedgerAddr))

	ledger, err := NewBridgeLedger(testLedgerAddr, testOwner, gw, guard, WithDatabase(db))
	require.NoError(err)
	require.NoError(ledger.SetBridger(testOwner, testBridger, true))
	require.NoError(ledger.SetRelocationMode(testOwner, testChain, testTokenA, ModeBurnOrMint))
	require.NoError(ledger.SetFeeCollector(testOwner, testCollector))

	n1, err := ledger.RequestRelocation(testUser, testChain, testTokenA, big.NewInt(100))
	require.NoError(err)
	n2, err := ledger.RequestRelocation(testUser, testChain, testTokenA, big.NewInt(200))
	require.NoError(err)
	require.NoError(ledger.CancelRelocation(testBridger, testChain, n1, RefundNothing))
	require.NoError(ledger.Relocate(testBridger, testChain, 2))

	// A fresh ledger over the same database resumes where the first left
	// off.
	restored, err := NewBridgeLedger(testLedgerAddr, testOwner, gw, guard, WithDatabase(db))
	require.NoError(err)

	require.Equal(uint64(2), restored.LastProcessedRelocationNonce(testChain))
	require.Equal(uint64(0), restored.PendingRelocationCount(testChain))
	require.Equal(ModeBurnOrMint, restored.RelocationMode(testChain, testTokenA))
	require.Equal(testCollector, restored.FeeCollector())

	r1 := restored.GetRelocation(testChain, n1)
	require.Equal(StatusCanceled, r1.Status)
	require.Zero(r1.Amount.Cmp(big.NewInt(100)))

	r2 := restored.GetRelocation(testChain, n2)
	require.Equal(StatusProcessed, r2.Status)
	require.Equal(testUser, r2.Account)

	// The nonce sequence continues seamlessly.
	n3, err := restored.RequestRelocation(testUser, testChain, testTokenA, big.NewInt(50))
	require.NoError(err)
	require.Equal(uint64(3), n3)
}

func TestGuardPersistRestore(t *testing.T) {
	require := require.New(t)
	db := memdb.New()
	clk := newFakeClock()

	guard := NewAccommodationGuard(testOwner, GuardWithDatabase(db), GuardWithClock(clk.Now))
	require.NoError(guard.SetBridge(testOwner, testLedgerAddr))
	require.NoError(guard.Configure(testOwner, testChain, testTokenA, 10*time.Second, big.NewInt(2000)))
	require.Equal(GuardNoError, guard.Validate(testLedgerAddr, testChain, testTokenA, testUser, big.NewInt(1500)))

	restored := NewAccommodationGuard(testOwner, GuardWithDatabase(db), GuardWithClock(clk.Now))

	cfg := restored.Config(testChain, testTokenA)
	require.Equal(10*time.Second, cfg.TimeFrame)
	require.Zero(cfg.VolumeLimit.Cmp(big.NewInt(2000)))
	require.Zero(cfg.CurrentVolume.Cmp(big.NewInt(1500)))

	// The restored bridge binding and window progress still apply.
	require.Equal(GuardVolumeLimitReached, restored.Validate(testLedgerAddr, testChain, testTokenA, testUser, big.NewInt(600)))
	require.Equal(GuardNoError, restored.Validate(testLedgerAddr, testChain, testTokenA, testUser, big.NewInt(500)))
}

func TestRestoreEmptyDatabase(t *testing.T) {
	require := require.New(t)
	db := memdb.New()

	gw := NewInMemoryGateway()
	guard := NewAccommodationGuard(testOwner, GuardWithDatabase(db))
	ledger, err := NewBridgeLedger(testLedgerAddr, testOwner, gw, guard, WithDatabase(db))
	require.NoError(err)

	require.Equal(uint64(0), ledger.LastProcessedRelocationNonce(testChain))
	require.Equal(StatusNonexistent, ledger.GetRelocation(testChain, 1).Status)
	require.Equal(ModeUnsupported, ledger.RelocationMode(testChain, testTokenA))
}
