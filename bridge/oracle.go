// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"

	"github.com/luxfi/geth/common"
)

// FeeOracle prices the fee withheld from a relocation. The ledger never
// caps the returned fee; an oracle that overprices simply makes the
// custody pull fail on the caller's balance.
type FeeOracle interface {
	DefineFee(chainID uint32, token, account common.Address, amount *big.Int) *big.Int
}

// FlatRateOracle charges a basis-point rate with optional min/max clamps.
type FlatRateOracle struct {
	RateBPS uint32   // fee in basis points (30 = 0.3%)
	MinFee  *big.Int // floor, nil for none
	MaxFee  *big.Int // cap, nil for none
}

var _ FeeOracle = (*FlatRateOracle)(nil)

const basisPoints = 10000

func (o *FlatRateOracle) DefineFee(chainID uint32, token, account common.Address, amount *big.Int) *big.Int {
	fee := new(big.Int).Mul(amount, big.NewInt(int64(o.RateBPS)))
	fee.Div(fee, big.NewInt(basisPoints))

	if o.MinFee != nil && fee.Cmp(o.MinFee) < 0 {
		fee.Set(o.MinFee)
	}
	if o.MaxFee != nil && fee.Cmp(o.MaxFee) > 0 {
		fee.Set(o.MaxFee)
	}
	return fee
}
