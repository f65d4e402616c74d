// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/stgov/delta"
	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// Transfer moves amount of balance from caller to to. The stake follows the
// balance into the receiver's deposit.
func (l *Ledger) Transfer(caller, to stgov.Address, amount *big.Int) error {
	return l.exec("transfer", func() error {
		_, err := l.transfer(caller, to, amount)
		return err
	})
}

// TransferFrom moves amount from from to to, spending spender's allowance.
func (l *Ledger) TransferFrom(spender, from, to stgov.Address, amount *big.Int) error {
	return l.exec("transferFrom", func() error {
		if err := checkAmount(amount); err != nil {
			return err
		}
		if err := l.allowance.Spend(from, spender, amount); err != nil {
			return err
		}
		_, err := l.transfer(from, to, amount)
		return err
	})
}

// Approve sets the amount spender may transfer out of caller's balance.
func (l *Ledger) Approve(caller, spender stgov.Address, amount *big.Int) error {
	return l.exec("approve", func() error {
		return l.approve(caller, spender, amount)
	})
}

func (l *Ledger) approve(owner, spender stgov.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := l.allowance.Approve(owner, spender, amount); err != nil {
		return err
	}
	l.buf.Emit(&events.Approval{Owner: owner, Spender: spender, Amount: new(big.Int).Set(amount)})
	return nil
}

// transfer moves amount from from to to and returns the shares moved.
func (l *Ledger) transfer(from, to stgov.Address, amount *big.Int) (*big.Int, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	if from == to || amount.Sign() == 0 {
		// no-op transfers never allocate a holder record
		balance, err := l.BalanceOf(from)
		if err != nil {
			return nil, err
		}
		if amount.Cmp(balance) > 0 {
			return nil, reverts.Newf(reverts.KindInsufficientBalance, "balance %v below %v", balance, amount)
		}
		l.buf.Emit(&events.Transfer{From: from, To: to, Amount: new(big.Int).Set(amount)})
		return new(big.Int), nil
	}
	src, err := l.load(from)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(src.balance) > 0 {
		return nil, reverts.Newf(reverts.KindInsufficientBalance, "balance %v below %v", src.balance, amount)
	}
	shares, err := l.burnShares(src, amount)
	if err != nil {
		return nil, err
	}
	return shares, l.move(src, to, amount, shares)
}

// transferShares moves exactly shares from from to to and returns their value.
func (l *Ledger) transferShares(from, to stgov.Address, shares *big.Int) (*big.Int, error) {
	if err := checkAmount(shares); err != nil {
		return nil, err
	}
	held, err := l.SharesOf(from)
	if err != nil {
		return nil, err
	}
	if shares.Cmp(held) > 0 {
		return nil, reverts.Newf(reverts.KindInsufficientBalance, "shares %v below %v", held, shares)
	}
	amount, err := l.shares.StakeForShares(shares)
	if err != nil {
		return nil, err
	}
	if from == to || shares.Sign() == 0 {
		l.buf.Emit(&events.Transfer{From: from, To: to, Amount: amount})
		return amount, nil
	}
	src, err := l.load(from)
	if err != nil {
		return nil, err
	}
	return amount, l.move(src, to, amount, shares)
}

// move transfers shares from src to to and reconciles the deposits with amount of stake.
func (l *Ledger) move(src *account, to stgov.Address, amount, shares *big.Int) error {
	dst, err := l.load(to)
	if err != nil {
		return err
	}
	if err := l.shares.Move(src.id, dst.id, shares); err != nil {
		return err
	}
	srcBalance, err := l.shares.BalanceOf(src.id)
	if err != nil {
		return err
	}
	dstBalance, err := l.shares.BalanceOf(dst.id)
	if err != nil {
		return err
	}

	m := delta.New()
	drawn, err := l.routeWithdrawal(m, src, amount)
	if err != nil {
		return err
	}
	m.Deposit(dst.rec.DepositID, amount)
	if err := l.apply(m); err != nil {
		return err
	}

	src.debitCheckpoint(src.balance, drawn, srcBalance)
	dst.creditCheckpoint(dst.balance, amount, dstBalance)
	if err := l.save(src); err != nil {
		return err
	}
	if err := l.save(dst); err != nil {
		return err
	}

	l.buf.Emit(&events.Transfer{From: src.addr, To: to, Amount: new(big.Int).Set(amount)})
	logger.Debug("transferred", "from", src.addr, "to", to, "amount", amount, "shares", shares)
	return nil
}
