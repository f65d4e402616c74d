// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/stgov/delta"
	"github.com/withtally/stGOV-sub000/builtin/stgov/holders"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// account is a holder record loaded for mutation.
type account struct {
	addr    stgov.Address
	id      stgov.HolderID
	rec     *holders.Holder
	balance *big.Int
}

// load returns the account of addr, creating it delegated to the default deposit.
func (l *Ledger) load(addr stgov.Address) (*account, error) {
	def, err := l.deposits.Default()
	if err != nil {
		return nil, err
	}
	id, rec, err := l.holders.FetchOrCreate(addr, def)
	if err != nil {
		return nil, err
	}
	balance, err := l.shares.BalanceOf(id)
	if err != nil {
		return nil, err
	}
	return &account{addr: addr, id: id, rec: rec, balance: balance}, nil
}

func (l *Ledger) save(a *account) error {
	return l.holders.Set(a.id, a.rec)
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 || amount.BitLen() > 256 {
		return reverts.New(reverts.KindInvalidAmount, "amount out of range")
	}
	return nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

// available returns the stake a deposit can still release within the plan.
func (l *Ledger) available(m *delta.Movements, id stgov.DepositID) (*big.Int, error) {
	bal, err := l.protocol.Balance(id)
	if err != nil {
		return nil, errors.Wrapf(err, "balance of deposit %v", id)
	}
	avail := new(big.Int).Add(bal, m.Net(id))
	if avail.Sign() < 0 {
		avail.SetInt64(0)
	}
	return avail, nil
}

// routeWithdrawal plans taking amount of a's stake out of the deposits. The
// undelegated surplus leaves the default deposit first, the remainder leaves
// the holder's deposit. It returns how much was drawn from the holder's
// deposit, which is what the checkpoint loses.
//
// Tips dilute balances without moving stake, so a deposit may hold less than
// its share of the plan. The shortfall is then drawn from the holder's other
// source and, past that, from the remaining deposits in creation order.
func (l *Ledger) routeWithdrawal(m *delta.Movements, a *account, amount *big.Int) (*big.Int, error) {
	def, err := l.deposits.Default()
	if err != nil {
		return nil, err
	}
	own := a.rec.DepositID

	fromDefault := minBig(amount, a.rec.Surplus(a.balance))
	fromOwn := new(big.Int).Sub(amount, fromDefault)
	short := new(big.Int)

	if own == def {
		avail, err := l.available(m, def)
		if err != nil {
			return nil, err
		}
		if amount.Cmp(avail) > 0 {
			short.Sub(amount, avail)
		}
		m.Withdraw(def, new(big.Int).Sub(amount, short))
	} else {
		availDef, err := l.available(m, def)
		if err != nil {
			return nil, err
		}
		availOwn, err := l.available(m, own)
		if err != nil {
			return nil, err
		}
		if fromDefault.Cmp(availDef) > 0 {
			fromOwn.Add(fromOwn, new(big.Int).Sub(fromDefault, availDef))
			fromDefault.Set(availDef)
		} else if fromOwn.Cmp(availOwn) > 0 {
			fromDefault.Add(fromDefault, new(big.Int).Sub(fromOwn, availOwn))
			fromOwn.Set(availOwn)
		}
		if fromDefault.Cmp(availDef) > 0 {
			short.Add(short, new(big.Int).Sub(fromDefault, availDef))
			fromDefault.Set(availDef)
		}
		if fromOwn.Cmp(availOwn) > 0 {
			short.Add(short, new(big.Int).Sub(fromOwn, availOwn))
			fromOwn.Set(availOwn)
		}
		m.Withdraw(def, fromDefault)
		m.Withdraw(own, fromOwn)
	}

	if short.Sign() > 0 {
		if err := l.sweep(m, short, def, own); err != nil {
			return nil, err
		}
	}
	return fromOwn, nil
}

// sweep draws amount from the owned deposits other than skip.
func (l *Ledger) sweep(m *delta.Movements, amount *big.Int, skip ...stgov.DepositID) error {
	ids, err := l.deposits.IDs()
	if err != nil {
		return err
	}
	left := new(big.Int).Set(amount)
next:
	for _, id := range ids {
		if left.Sign() == 0 {
			break
		}
		for _, s := range skip {
			if id == s {
				continue next
			}
		}
		avail, err := l.available(m, id)
		if err != nil {
			return err
		}
		take := minBig(left, avail)
		if take.Sign() > 0 {
			m.Withdraw(id, take)
			left.Sub(left, take)
		}
	}
	if left.Sign() > 0 {
		return errors.Errorf("deposits short of %v stake", left)
	}
	logger.Debug("swept stake from other deposits", "amount", amount)
	return nil
}

// apply executes the planned movements against the staking protocol.
func (l *Ledger) apply(m *delta.Movements) error {
	return m.Apply(
		func(id stgov.DepositID, amount *big.Int) error {
			return errors.Wrapf(l.protocol.Withdraw(l.addr, id, amount), "withdraw from deposit %v", id)
		},
		func(id stgov.DepositID, amount *big.Int) error {
			return errors.Wrapf(l.protocol.DepositMore(l.addr, id, amount), "deposit into %v", id)
		},
	)
}

// debitCheckpoint lowers the checkpoint by the delegated stake withdrawn,
// bounded by the new balance.
func (a *account) debitCheckpoint(oldBalance, drawn, newBalance *big.Int) {
	cp := a.rec.EffectiveCheckpoint(oldBalance)
	cp.Sub(cp, drawn)
	if cp.Sign() < 0 {
		cp.SetInt64(0)
	}
	a.rec.Checkpoint = minBig(cp, newBalance)
}

// creditCheckpoint raises the checkpoint by stake deposited under the holder's
// delegatee, bounded by the new balance.
func (a *account) creditCheckpoint(oldBalance, deposited, newBalance *big.Int) {
	cp := a.rec.EffectiveCheckpoint(oldBalance)
	cp.Add(cp, deposited)
	a.rec.Checkpoint = minBig(cp, newBalance)
}
