// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Wire format for relayer-submitted accommodation batches: each entry is
// four 32-byte words, ABI style.
//
//	word 0: token address, left padded
//	word 1: account address, left padded
//	word 2: amount, big-endian uint256
//	word 3: claimed relocation status in the last byte
const (
	wordSize  = 32
	entrySize = 4 * wordSize
)

// Codec errors (others in types.go)
var (
	ErrMalformedBatch  = errors.New("malformed accommodation batch payload")
	ErrAmountOverflow  = errors.New("amount does not fit a uint256")
	ErrUnknownStatus   = errors.New("unknown relocation status byte")
	ErrDirtyAddressPad = errors.New("address word has non-zero padding")
)

// EncodeAccommodations packs a batch into the wire format.
func EncodeAccommodations(entries []Accommodation) ([]byte, error) {
	out := make([]byte, 0, len(entries)*entrySize)
	for i := range entries {
		e := &entries[i]

		var tokenWord, accountWord [wordSize]byte
		copy(tokenWord[wordSize-common.AddressLength:], e.Token[:])
		copy(accountWord[wordSize-common.AddressLength:], e.Account[:])

		amount := e.Amount
		if amount == nil {
			amount = new(big.Int)
		}
		packed, overflow := uint256.FromBig(amount)
		if overflow || amount.Sign() < 0 {
			return nil, ErrAmountOverflow
		}
		amountWord := packed.Bytes32()

		var statusWord [wordSize]byte
		statusWord[wordSize-1] = byte(e.Status)

		out = append(out, tokenWord[:]...)
		out = append(out, accountWord[:]...)
		out = append(out, amountWord[:]...)
		out = append(out, statusWord[:]...)
	}
	return out, nil
}

// DecodeAccommodations unpacks a wire-format batch. The payload must be a
// whole number of entries and every word must be canonically padded.
func DecodeAccommodations(data []byte) ([]Accommodation, error) {
	if len(data) == 0 || len(data)%entrySize != 0 {
		return nil, ErrMalformedBatch
	}

	entries := make([]Accommodation, 0, len(data)/entrySize)
	for off := 0; off < len(data); off += entrySize {
		tokenWord := data[off : off+wordSize]
		accountWord := data[off+wordSize : off+2*wordSize]
		amountWord := data[off+2*wordSize : off+3*wordSize]
		statusWord := data[off+3*wordSize : off+4*wordSize]

		token, err := unpackAddress(tokenWord)
		if err != nil {
			return nil, err
		}
		account, err := unpackAddress(accountWord)
		if err != nil {
			return nil, err
		}

		amount := new(uint256.Int).SetBytes(amountWord)

		for _, b := range statusWord[:wordSize-1] {
			if b != 0 {
				return nil, ErrUnknownStatus
			}
		}
		status := RelocationStatus(statusWord[wordSize-1])
		if status > StatusContinued {
			return nil, ErrUnknownStatus
		}

		entries = append(entries, Accommodation{
			Token:   token,
			Account: account,
			Amount:  amount.ToBig(),
			Status:  status,
		})
	}
	return entries, nil
}

func unpackAddress(word []byte) (common.Address, error) {
	for _, b := range word[:wordSize-common.AddressLength] {
		if b != 0 {
			return common.Address{}, ErrDirtyAddressPad
		}
	}
	return common.BytesToAddress(word[wordSize-common.AddressLength:]), nil
}

// AccommodatePacked decodes a wire-format batch and applies it through
// Accommodate.
func (b *BridgeLedger) AccommodatePacked(caller common.Address, chainID uint32, nonce uint64, payload []byte) error {
	entries, err := DecodeAccommodations(payload)
	if err != nil {
		return err
	}
	return b.Accommodate(caller, chainID, nonce, entries)
}
