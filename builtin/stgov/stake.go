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

// Stake pulls amount of stake token from caller into the pool and credits the
// caller's balance. The stake is deposited under the caller's delegatee.
func (l *Ledger) Stake(caller stgov.Address, amount *big.Int) error {
	return l.exec("stake", func() error {
		_, err := l.stake(caller, caller, amount)
		return err
	})
}

// stake pulls amount from payer and mints the shares to holder.
func (l *Ledger) stake(payer, holder stgov.Address, amount *big.Int) (*big.Int, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	logger.Debug("staking", "payer", payer, "holder", holder, "amount", amount)

	if amount.Sign() == 0 {
		l.buf.Emit(&events.Staked{Holder: holder, Amount: new(big.Int), Shares: new(big.Int)})
		return new(big.Int), nil
	}
	a, err := l.load(holder)
	if err != nil {
		return nil, err
	}

	if err := l.token.Transfer(payer, l.addr, amount); err != nil {
		return nil, reverts.Wrap(reverts.KindInvalidAmount, err, "pull stake")
	}

	shares, err := l.shares.SharesForStakeDown(amount)
	if err != nil {
		return nil, err
	}
	if err := l.shares.Mint(a.id, shares, amount); err != nil {
		return nil, err
	}
	newBalance, err := l.shares.BalanceOf(a.id)
	if err != nil {
		return nil, err
	}

	m := delta.New()
	m.Deposit(a.rec.DepositID, amount)
	if err := l.apply(m); err != nil {
		return nil, err
	}

	a.creditCheckpoint(a.balance, amount, newBalance)
	if err := l.save(a); err != nil {
		return nil, err
	}

	l.buf.Emit(&events.Staked{Holder: holder, Amount: new(big.Int).Set(amount), Shares: shares})
	logger.Info("staked", "holder", holder, "amount", amount, "shares", shares, "deposit", a.rec.DepositID)
	return shares, nil
}

// Unstake burns amount of the caller's balance and hands the stake to the
// withdrawal queue. It returns the withdrawal id.
func (l *Ledger) Unstake(caller stgov.Address, amount *big.Int) (uint64, error) {
	var wid uint64
	err := l.exec("unstake", func() (err error) {
		wid, err = l.unstake(caller, amount)
		return
	})
	return wid, err
}

func (l *Ledger) unstake(holder stgov.Address, amount *big.Int) (uint64, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	if amount.Sign() == 0 {
		return 0, reverts.New(reverts.KindInvalidAmount, "zero unstake")
	}
	a, err := l.load(holder)
	if err != nil {
		return 0, err
	}
	if amount.Cmp(a.balance) > 0 {
		return 0, reverts.Newf(reverts.KindInsufficientBalance, "balance %v below %v", a.balance, amount)
	}
	shares, err := l.burnShares(a, amount)
	if err != nil {
		return 0, err
	}
	return l.release(a, holder, amount, shares)
}

// burnShares returns the shares covering amount, capped at what a holds.
func (l *Ledger) burnShares(a *account, amount *big.Int) (*big.Int, error) {
	shares, err := l.shares.SharesForStake(amount)
	if err != nil {
		return nil, err
	}
	held, err := l.shares.SharesOf(a.id)
	if err != nil {
		return nil, err
	}
	return minBig(shares, held), nil
}

// release burns shares worth amount from a, withdraws the stake from a's
// deposits and queues it for receiver.
func (l *Ledger) release(a *account, receiver stgov.Address, amount, shares *big.Int) (uint64, error) {
	logger.Debug("unstaking", "holder", a.addr, "amount", amount, "shares", shares)

	if err := l.shares.Burn(a.id, shares, amount); err != nil {
		return 0, err
	}
	newBalance, err := l.shares.BalanceOf(a.id)
	if err != nil {
		return 0, err
	}

	m := delta.New()
	drawn, err := l.routeWithdrawal(m, a, amount)
	if err != nil {
		return 0, err
	}
	if err := l.apply(m); err != nil {
		return 0, err
	}
	a.debitCheckpoint(a.balance, drawn, newBalance)
	if err := l.save(a); err != nil {
		return 0, err
	}

	if err := l.token.Transfer(l.addr, l.queue.Address(), amount); err != nil {
		return 0, errors.Wrap(err, "fund withdrawal queue")
	}
	wid, err := l.queue.InitiateWithdrawal(amount, receiver)
	if err != nil {
		return 0, errors.Wrap(err, "initiate withdrawal")
	}

	l.buf.Emit(&events.Unstaked{Holder: a.addr, Amount: new(big.Int).Set(amount), Shares: shares, WithdrawalID: wid})
	logger.Info("unstaked", "holder", a.addr, "amount", amount, "withdrawal", wid)
	return wid, nil
}
