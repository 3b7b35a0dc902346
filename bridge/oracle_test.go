// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
)

func TestFlatRateOracleDefineFee(t *testing.T) {
	token := common.HexToAddress("0x5000000000000000000000000000000000000001")
	account := common.HexToAddress("0x5000000000000000000000000000000000000002")

	tests := []struct {
		name   string
		oracle FlatRateOracle
		amount int64
		want   int64
	}{
		{
			name:   "thirty bps",
			oracle: FlatRateOracle{RateBPS: 30},
			amount: 10000,
			want:   30,
		},
		{
			name:   "rounds down",
			oracle: FlatRateOracle{RateBPS: 30},
			amount: 999,
			want:   2,
		},
		{
			name:   "zero rate",
			oracle: FlatRateOracle{RateBPS: 0},
			amount: 10000,
			want:   0,
		},
		{
			name:   "min fee floor",
			oracle: FlatRateOracle{RateBPS: 30, MinFee: big.NewInt(100)},
			amount: 10000,
			want:   100,
		},
		{
			name:   "max fee cap",
			oracle: FlatRateOracle{RateBPS: 1000, MaxFee: big.NewInt(50)},
			amount: 10000,
			want:   50,
		},
		{
			name:   "within clamps",
			oracle: FlatRateOracle{RateBPS: 100, MinFee: big.NewInt(10), MaxFee: big.NewInt(1000)},
			amount: 10000,
			want:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.oracle.DefineFee(1, token, account, big.NewInt(tt.amount))
			if got.Cmp(big.NewInt(tt.want)) != 0 {
				t.Errorf("DefineFee(%d) = %v, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFlatRateOracleLargeAmount(t *testing.T) {
	token := common.HexToAddress("0x5000000000000000000000000000000000000001")
	account := common.HexToAddress("0x5000000000000000000000000000000000000002")

	// 10% of 2^200 must not overflow or truncate.
	oracle := FlatRateOracle{RateBPS: 1000}
	amount := new(big.Int).Lsh(big.NewInt(1), 200)
	want := new(big.Int).Div(amount, big.NewInt(10))

	got := oracle.DefineFee(1, token, account, amount)
	if got.Cmp(want) != 0 {
		t.Errorf("DefineFee = %v, want %v", got, want)
	}
	if amount.Cmp(new(big.Int).Lsh(big.NewInt(1), 200)) != 0 {
		t.Error("DefineFee mutated its amount argument")
	}
}

func BenchmarkDefineFee(b *testing.B) {
	token := common.HexToAddress("0x5000000000000000000000000000000000000001")
	account := common.HexToAddress("0x5000000000000000000000000000000000000002")
	oracle := FlatRateOracle{RateBPS: 30, MinFee: big.NewInt(1), MaxFee: big.NewInt(1_000_000)}
	amount := big.NewInt(123456789)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = oracle.DefineFee(1, token, account, amount)
	}
}
