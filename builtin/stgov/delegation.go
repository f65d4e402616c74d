// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/stgov/delta"
	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// FetchOrInitializeDepositForDelegatee returns the deposit of delegatee,
// creating it on first use. The zero address and the default delegatee map
// to the default deposit.
func (l *Ledger) FetchOrInitializeDepositForDelegatee(delegatee stgov.Address) (stgov.DepositID, error) {
	var id stgov.DepositID
	err := l.exec("fetchOrInitializeDeposit", func() (err error) {
		id, err = l.fetchOrInitialize(delegatee)
		return
	})
	return id, err
}

func (l *Ledger) fetchOrInitialize(delegatee stgov.Address) (stgov.DepositID, error) {
	def, err := l.deposits.Default()
	if err != nil {
		return 0, err
	}
	defaultDelegatee, err := l.defaultDelegatee.Get()
	if err != nil {
		return 0, err
	}
	if delegatee.IsZero() || delegatee == defaultDelegatee {
		return def, nil
	}

	id, ok, err := l.deposits.Lookup(delegatee)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}
	id, err = l.protocol.CreateDeposit(l.addr, delegatee)
	if err != nil {
		return 0, errors.Wrap(err, "create deposit")
	}
	if err := l.deposits.Register(id, delegatee); err != nil {
		return 0, err
	}
	l.buf.Emit(&events.DepositInitialized{Delegatee: delegatee, DepositID: id})
	logger.Info("deposit initialized", "delegatee", delegatee, "deposit", id)
	return id, nil
}

// UpdateDeposit moves the caller's whole balance into deposit id.
func (l *Ledger) UpdateDeposit(caller stgov.Address, id stgov.DepositID) error {
	return l.exec("updateDeposit", func() error {
		return l.updateDeposit(caller, id)
	})
}

// Delegate moves the caller's whole balance under delegatee.
func (l *Ledger) Delegate(caller, delegatee stgov.Address) error {
	return l.exec("delegate", func() error {
		return l.delegate(caller, delegatee)
	})
}

// StakeWithDelegatee stakes amount and delegates the caller's balance to delegatee.
func (l *Ledger) StakeWithDelegatee(caller stgov.Address, amount *big.Int, delegatee stgov.Address) error {
	return l.exec("stakeWithDelegatee", func() error {
		return l.stakeWithDelegatee(caller, amount, delegatee)
	})
}

func (l *Ledger) delegate(holder, delegatee stgov.Address) error {
	id, err := l.fetchOrInitialize(delegatee)
	if err != nil {
		return err
	}
	return l.updateDeposit(holder, id)
}

func (l *Ledger) stakeWithDelegatee(holder stgov.Address, amount *big.Int, delegatee stgov.Address) error {
	if _, err := l.stake(holder, holder, amount); err != nil {
		return err
	}
	return l.delegate(holder, delegatee)
}

func (l *Ledger) updateDeposit(holder stgov.Address, id stgov.DepositID) error {
	rec, err := l.deposits.Get(id)
	if err != nil {
		return err
	}
	if rec.Overridden {
		return reverts.Newf(reverts.KindInvalidDeposit, "deposit %v is overridden", id)
	}
	a, err := l.load(holder)
	if err != nil {
		return err
	}
	depositBalance, err := l.protocol.Balance(id)
	if err != nil {
		return errors.Wrap(err, "deposit balance")
	}
	if a.balance.Sign() == 0 && depositBalance.Sign() == 0 {
		return reverts.Newf(reverts.KindInvalidDeposit, "deposit %v is empty", id)
	}

	def, err := l.deposits.Default()
	if err != nil {
		return err
	}
	if id != def {
		power, err := l.protocol.EarningPower(id)
		if err != nil {
			return errors.Wrap(err, "earning power")
		}
		qualified, err := l.override.Qualified(power, depositBalance)
		if err != nil {
			return err
		}
		if !qualified {
			return reverts.Newf(reverts.KindEarningPowerNotQualified, "deposit %v earning power %v of %v", id, power, depositBalance)
		}
	}

	old := a.rec.DepositID
	m := delta.New()
	if _, err := l.routeWithdrawal(m, a, a.balance); err != nil {
		return err
	}
	m.Deposit(id, a.balance)
	if err := l.apply(m); err != nil {
		return err
	}

	a.rec.DepositID = id
	a.rec.Checkpoint = new(big.Int).Set(a.balance)
	if err := l.save(a); err != nil {
		return err
	}

	l.buf.Emit(&events.DepositUpdated{Holder: holder, OldDepositID: old, NewDepositID: id})
	logger.Info("deposit updated", "holder", holder, "old", old, "new", id, "balance", a.balance)
	return nil
}
