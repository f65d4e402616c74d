// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package delta accumulates the net stake movement of each deposit during one
// ledger operation, so that a deposit is touched at most once per operation.
package delta

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/stgov"
)

// Movements is an ordered set of per-deposit net movements.
// Positive values are deposits, negative values withdrawals.
type Movements struct {
	order []stgov.DepositID
	net   map[stgov.DepositID]*big.Int
}

func New() *Movements {
	return &Movements{net: make(map[stgov.DepositID]*big.Int)}
}

func (m *Movements) entry(id stgov.DepositID) *big.Int {
	v, ok := m.net[id]
	if !ok {
		v = new(big.Int)
		m.net[id] = v
		m.order = append(m.order, id)
	}
	return v
}

// Deposit plans adding amount to the deposit.
func (m *Movements) Deposit(id stgov.DepositID, amount *big.Int) {
	v := m.entry(id)
	v.Add(v, amount)
}

// Withdraw plans removing amount from the deposit.
func (m *Movements) Withdraw(id stgov.DepositID, amount *big.Int) {
	v := m.entry(id)
	v.Sub(v, amount)
}

// Net returns the planned net movement of the deposit.
func (m *Movements) Net(id stgov.DepositID) *big.Int {
	if v, ok := m.net[id]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

// Len returns the number of touched deposits.
func (m *Movements) Len() int {
	return len(m.order)
}

// Apply replays the movements, every withdrawal before any deposit, each
// group in first-touch order. Zero nets are skipped.
func (m *Movements) Apply(withdraw, deposit func(stgov.DepositID, *big.Int) error) error {
	for _, id := range m.order {
		if v := m.net[id]; v.Sign() < 0 {
			if err := withdraw(id, new(big.Int).Neg(v)); err != nil {
				return err
			}
		}
	}
	for _, id := range m.order {
		if v := m.net[id]; v.Sign() > 0 {
			if err := deposit(id, new(big.Int).Set(v)); err != nil {
				return err
			}
		}
	}
	return nil
}
