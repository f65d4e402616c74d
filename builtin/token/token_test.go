// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

func M(a ...any) []any {
	return a
}

func TestToken(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	st := state.New(db)

	a1 := stgov.BytesToAddress([]byte("a1"))
	a2 := stgov.BytesToAddress([]byte("a2"))
	spender := stgov.BytesToAddress([]byte("spender"))

	tok := New(stgov.BytesToAddress([]byte("tok")), st)
	tests := []struct {
		ret      any
		expected any
	}{
		{M(tok.BalanceOf(a1)), M(&big.Int{}, nil)},
		{tok.Mint(a1, big.NewInt(10)), nil},
		{M(tok.BalanceOf(a1)), M(big.NewInt(10), nil)},
		{M(tok.TotalSupply()), M(big.NewInt(10), nil)},
		{tok.Transfer(a1, a2, big.NewInt(4)), nil},
		{tok.Transfer(a1, a2, big.NewInt(7)), ErrInsufficientBalance},
		{M(tok.BalanceOf(a2)), M(big.NewInt(4), nil)},
		{tok.TransferFrom(spender, a1, a2, big.NewInt(1)), ErrInsufficientAllowance},
		{tok.Approve(a1, spender, big.NewInt(3)), nil},
		{tok.TransferFrom(spender, a1, a2, big.NewInt(2)), nil},
		{M(tok.Allowance(a1, spender)), M(big.NewInt(1), nil)},
		{tok.Approve(a1, spender, stgov.MaxUint256), nil},
		{tok.TransferFrom(spender, a1, a2, big.NewInt(2)), nil},
		{M(tok.Allowance(a1, spender)), M(stgov.MaxUint256, nil)},
		{tok.Burn(a2, big.NewInt(8)), nil},
		{M(tok.TotalSupply()), M(big.NewInt(2), nil)},
		{tok.Mint(a1, big.NewInt(-1)), ErrNegativeAmount},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret, "case %d", i)
	}
}
