// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"encoding/binary"
	"math/big"
	"strconv"
)

// DepositID identifies a deposit held by the staking protocol.
// Zero is never a valid identifier.
type DepositID uint64

// String implements the stringer interface
func (id DepositID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Bytes returns the big-endian encoding, used as a mapping key.
func (id DepositID) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// HolderID identifies a holder record. Identifiers are assigned in creation order
// starting at one and never reused.
type HolderID uint64

// Bytes returns the big-endian encoding, used as a mapping key.
func (id HolderID) Bytes() []byte {
	return DepositID(id).Bytes()
}

const (
	// Bips is the denominator of every basis-point parameter.
	Bips = 10_000
)

var (
	// ShareScaleFactor is the number of shares minted per unit of stake into an empty pool.
	ShareScaleFactor = big.NewInt(1e10)

	// MaxUint256 is the largest amount the ledger accepts. An allowance of this value is infinite.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	bigBips = big.NewInt(Bips)
)

// BigBips returns Bips as a fresh big.Int.
func BigBips() *big.Int {
	return new(big.Int).Set(bigBips)
}

// Ether returns n * 1e18.
func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}
