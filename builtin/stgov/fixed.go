// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// The fixed wrapper represents balances as a constant number of shares. Each
// holder's fixed position is kept in the ledger under an alias account, and
// the wrapper moves exact shares between aliases to avoid rounding twice.

var fixedAliasMask = stgov.BytesToAddress(stgov.Blake2b([]byte("stgov.fixed-alias")).Bytes())

// FixedAlias returns the account holding holder's fixed position.
func FixedAlias(holder stgov.Address) stgov.Address {
	return holder.Xor(fixedAliasMask)
}

func (l *Ledger) onlyFixedWrapper(caller stgov.Address) error {
	wrapper, err := l.fixedWrapper.Get()
	if err != nil {
		return err
	}
	if wrapper.IsZero() || caller != wrapper {
		return reverts.Newf(reverts.KindUnauthorized, "%v is not the fixed wrapper", caller)
	}
	return nil
}

// prepareAlias delegates an empty alias the way its holder delegates.
func (l *Ledger) prepareAlias(holder stgov.Address) (stgov.Address, error) {
	alias := FixedAlias(holder)
	a, err := l.load(alias)
	if err != nil {
		return stgov.Address{}, err
	}
	if a.balance.Sign() != 0 {
		return alias, nil
	}
	h, err := l.load(holder)
	if err != nil {
		return stgov.Address{}, err
	}
	if a.rec.DepositID != h.rec.DepositID || a.rec.Checkpoint.Sign() != 0 {
		a.rec.DepositID = h.rec.DepositID
		a.rec.Checkpoint = new(big.Int)
		if err := l.save(a); err != nil {
			return stgov.Address{}, err
		}
	}
	return alias, nil
}

// ConvertToFixed moves amount of holder's balance into its fixed position and
// returns the shares moved.
func (l *Ledger) ConvertToFixed(caller, holder stgov.Address, amount *big.Int) (*big.Int, error) {
	var shares *big.Int
	err := l.exec("convertToFixed", func() error {
		if err := l.onlyFixedWrapper(caller); err != nil {
			return err
		}
		alias, err := l.prepareAlias(holder)
		if err != nil {
			return err
		}
		shares, err = l.transfer(holder, alias, amount)
		return err
	})
	return shares, err
}

// ConvertToRebasing moves shares from holder's fixed position back to its
// balance and returns their value.
func (l *Ledger) ConvertToRebasing(caller, holder stgov.Address, shares *big.Int) (*big.Int, error) {
	var amount *big.Int
	err := l.exec("convertToRebasing", func() (err error) {
		if err = l.onlyFixedWrapper(caller); err != nil {
			return
		}
		amount, err = l.transferShares(FixedAlias(holder), holder, shares)
		return
	})
	return amount, err
}

// TransferFixed moves shares between two fixed positions and returns their value.
func (l *Ledger) TransferFixed(caller, from, to stgov.Address, shares *big.Int) (*big.Int, error) {
	var amount *big.Int
	err := l.exec("transferFixed", func() error {
		if err := l.onlyFixedWrapper(caller); err != nil {
			return err
		}
		dst, err := l.prepareAlias(to)
		if err != nil {
			return err
		}
		amount, err = l.transferShares(FixedAlias(from), dst, shares)
		return err
	})
	return amount, err
}

// StakeAndConvertToFixed stakes amount paid by holder directly into its fixed
// position and returns the shares minted.
func (l *Ledger) StakeAndConvertToFixed(caller, holder stgov.Address, amount *big.Int) (*big.Int, error) {
	var shares *big.Int
	err := l.exec("stakeAndConvertToFixed", func() error {
		if err := l.onlyFixedWrapper(caller); err != nil {
			return err
		}
		alias, err := l.prepareAlias(holder)
		if err != nil {
			return err
		}
		shares, err = l.stake(holder, alias, amount)
		return err
	})
	return shares, err
}

// ConvertToRebasingAndUnstake burns shares of holder's fixed position and
// queues their value for holder. It returns the amount unstaked.
func (l *Ledger) ConvertToRebasingAndUnstake(caller, holder stgov.Address, shares *big.Int) (*big.Int, error) {
	var amount *big.Int
	err := l.exec("convertToRebasingAndUnstake", func() error {
		if err := l.onlyFixedWrapper(caller); err != nil {
			return err
		}
		if err := checkAmount(shares); err != nil {
			return err
		}
		a, err := l.load(FixedAlias(holder))
		if err != nil {
			return err
		}
		held, err := l.shares.SharesOf(a.id)
		if err != nil {
			return err
		}
		if shares.Cmp(held) > 0 {
			return reverts.Newf(reverts.KindInsufficientBalance, "shares %v below %v", held, shares)
		}
		amount, err = l.shares.StakeForShares(shares)
		if err != nil {
			return err
		}
		if amount.Sign() == 0 {
			return reverts.New(reverts.KindInvalidAmount, "shares worth nothing")
		}
		_, err = l.release(a, holder, amount, shares)
		return err
	})
	return amount, err
}
