// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/intent"
	"github.com/withtally/stGOV-sub000/stgov"
)

// StakeOnBehalf stakes for holder with the holder's signature.
func (l *Ledger) StakeOnBehalf(holder stgov.Address, amount *big.Int, nonce, expiry uint64, sig []byte) error {
	return l.exec("stakeOnBehalf", func() error {
		_, err := l.authorized(intent.Intent{
			Action: intent.ActionStake, Holder: holder, Amount: amount, Nonce: nonce, Expiry: expiry,
		}, sig)
		return err
	})
}

// UnstakeOnBehalf unstakes for holder with the holder's signature.
func (l *Ledger) UnstakeOnBehalf(holder stgov.Address, amount *big.Int, nonce, expiry uint64, sig []byte) (uint64, error) {
	var wid uint64
	err := l.exec("unstakeOnBehalf", func() (err error) {
		wid, err = l.authorized(intent.Intent{
			Action: intent.ActionUnstake, Holder: holder, Amount: amount, Nonce: nonce, Expiry: expiry,
		}, sig)
		return
	})
	return wid, err
}

// UpdateDepositOnBehalf re-delegates holder's balance with the holder's signature.
func (l *Ledger) UpdateDepositOnBehalf(holder stgov.Address, id stgov.DepositID, nonce, expiry uint64, sig []byte) error {
	return l.exec("updateDepositOnBehalf", func() error {
		_, err := l.authorized(intent.Intent{
			Action: intent.ActionUpdateDeposit, Holder: holder, DepositID: id, Nonce: nonce, Expiry: expiry,
		}, sig)
		return err
	})
}

// TransferOnBehalf transfers from holder with the holder's signature.
func (l *Ledger) TransferOnBehalf(holder, to stgov.Address, amount *big.Int, nonce, expiry uint64, sig []byte) error {
	return l.exec("transferOnBehalf", func() error {
		_, err := l.authorized(intent.Intent{
			Action: intent.ActionTransfer, Holder: holder, To: to, Amount: amount, Nonce: nonce, Expiry: expiry,
		}, sig)
		return err
	})
}

// DelegateOnBehalf delegates holder's balance to delegatee with the holder's signature.
func (l *Ledger) DelegateOnBehalf(holder, delegatee stgov.Address, nonce, expiry uint64, sig []byte) error {
	return l.exec("delegateOnBehalf", func() error {
		_, err := l.authorized(intent.Intent{
			Action: intent.ActionDelegate, Holder: holder, Delegatee: delegatee, Nonce: nonce, Expiry: expiry,
		}, sig)
		return err
	})
}

// StakeWithDelegateeOnBehalf stakes for holder and delegates to delegatee with the holder's signature.
func (l *Ledger) StakeWithDelegateeOnBehalf(holder stgov.Address, amount *big.Int, delegatee stgov.Address, nonce, expiry uint64, sig []byte) error {
	return l.exec("stakeWithDelegateeOnBehalf", func() error {
		_, err := l.authorized(intent.Intent{
			Action: intent.ActionStakeWithDelegatee, Holder: holder, Amount: amount, Delegatee: delegatee, Nonce: nonce, Expiry: expiry,
		}, sig)
		return err
	})
}

// Permit approves spender with the owner's signature over the owner's current nonce.
func (l *Ledger) Permit(owner, spender stgov.Address, value *big.Int, deadline uint64, sig []byte) error {
	return l.exec("permit", func() error {
		nonce, err := l.nonces.Current(owner)
		if err != nil {
			return err
		}
		_, err = l.authorized(intent.Intent{
			Action: intent.ActionPermit, Holder: owner, To: spender, Amount: value, Nonce: nonce, Expiry: deadline,
		}, sig)
		return err
	})
}

// InvalidateNonce burns the caller's current nonce, voiding signatures made over it.
func (l *Ledger) InvalidateNonce(caller stgov.Address) error {
	return l.exec("invalidateNonce", func() error {
		used, err := l.nonces.Invalidate(caller)
		if err != nil {
			return err
		}
		l.buf.Emit(&events.NonceInvalidated{Holder: caller, Nonce: used})
		return nil
	})
}

// authorized verifies a signed intent and dispatches it. The returned id is
// the withdrawal id of unstake intents.
func (l *Ledger) authorized(in intent.Intent, sig []byte) (uint64, error) {
	v, err := l.verifier.Verify(in, sig, l.nonces)
	if err != nil {
		return 0, err
	}
	return l.dispatch(v)
}

// dispatch runs a validated intent through the same path as the direct call.
func (l *Ledger) dispatch(v *intent.Validated) (uint64, error) {
	in := v.Intent()
	logger.Debug("dispatching signed intent", "action", in.Action, "holder", in.Holder, "nonce", in.Nonce)

	switch in.Action {
	case intent.ActionStake:
		_, err := l.stake(in.Holder, in.Holder, in.Amount)
		return 0, err
	case intent.ActionUnstake:
		return l.unstake(in.Holder, in.Amount)
	case intent.ActionUpdateDeposit:
		return 0, l.updateDeposit(in.Holder, in.DepositID)
	case intent.ActionTransfer:
		_, err := l.transfer(in.Holder, in.To, in.Amount)
		return 0, err
	case intent.ActionPermit:
		return 0, l.approve(in.Holder, in.To, in.Amount)
	case intent.ActionDelegate:
		return 0, l.delegate(in.Holder, in.Delegatee)
	case intent.ActionStakeWithDelegatee:
		return 0, l.stakeWithDelegatee(in.Holder, in.Amount, in.Delegatee)
	}
	return 0, errors.Errorf("unsupported action %v", in.Action)
}
