// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token kept in contract storage.
// It serves as the stake token and the reward token of the ledger.
package token

import (
	"errors"
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

var (
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrNegativeAmount        = errors.New("token: negative amount")

	slotTotalSupply = solidity.Slot("total-supply")
	slotBalances    = solidity.Slot("balances")
	slotAllowances  = solidity.Slot("allowances")
)

func allowanceKey(owner, spender stgov.Address) stgov.Bytes32 {
	return stgov.Blake2b(owner.Bytes(), spender.Bytes())
}

type Token struct {
	addr        stgov.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[stgov.Address, *big.Int]
	allowances  *solidity.Mapping[stgov.Bytes32, *big.Int]
}

func New(addr stgov.Address, st *state.State) *Token {
	ctx := solidity.NewContext(addr, st)
	return &Token{
		addr:        addr,
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		balances:    solidity.NewMapping[stgov.Address, *big.Int](ctx, slotBalances),
		allowances:  solidity.NewMapping[stgov.Bytes32, *big.Int](ctx, slotAllowances),
	}
}

// Address returns the contract address of the token.
func (t *Token) Address() stgov.Address {
	return t.addr
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr stgov.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

// Mint credits amount to the account and grows the supply.
func (t *Token) Mint(to stgov.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	return t.addBalance(to, amount)
}

// Burn debits amount from the account and shrinks the supply.
func (t *Token) Burn(from stgov.Address, amount *big.Int) error {
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	return t.totalSupply.Sub(amount)
}

// Transfer moves amount between two accounts.
func (t *Token) Transfer(from, to stgov.Address, amount *big.Int) error {
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	return t.addBalance(to, amount)
}

func (t *Token) Approve(owner, spender stgov.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	return t.allowances.Set(allowanceKey(owner, spender), amount)
}

func (t *Token) Allowance(owner, spender stgov.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// TransferFrom moves amount on behalf of from, spending the allowance granted to spender.
func (t *Token) TransferFrom(spender, from, to stgov.Address, amount *big.Int) error {
	key := allowanceKey(from, spender)
	allowance, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if allowance.Cmp(stgov.MaxUint256) != 0 {
		if err := t.allowances.Set(key, allowance.Sub(allowance, amount)); err != nil {
			return err
		}
	}
	return t.Transfer(from, to, amount)
}

func (t *Token) addBalance(addr stgov.Address, amount *big.Int) error {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return err
	}
	return t.balances.Set(addr, bal.Add(bal, amount))
}

func (t *Token) subBalance(addr stgov.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	bal, err := t.balances.Get(addr)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return t.balances.Set(addr, bal.Sub(bal, amount))
}
