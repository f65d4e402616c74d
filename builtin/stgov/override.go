// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/stgov/deposits"
	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// EnactOverride redirects the voting weight of an unqualified deposit to the
// default delegatee and pays tip to tipReceiver.
func (l *Ledger) EnactOverride(id stgov.DepositID, tipReceiver stgov.Address, tip *big.Int) error {
	return l.exec("enactOverride", func() error {
		rec, err := l.deposits.Get(id)
		if err != nil {
			return err
		}
		def, err := l.deposits.Default()
		if err != nil {
			return err
		}
		if id == def {
			return reverts.New(reverts.KindInvalidOverride, "default deposit cannot be overridden")
		}
		if rec.Overridden {
			return reverts.Newf(reverts.KindInvalidOverride, "deposit %v already overridden", id)
		}
		qualified, balance, err := l.qualified(id)
		if err != nil {
			return err
		}
		if balance.Sign() == 0 {
			return reverts.Newf(reverts.KindInvalidOverride, "deposit %v is empty", id)
		}
		if qualified {
			return reverts.Newf(reverts.KindEarningPowerNotQualified, "deposit %v is qualified", id)
		}
		if err := l.checkTip(tip); err != nil {
			return err
		}

		target, err := l.defaultDelegatee.Get()
		if err != nil {
			return err
		}
		if err := l.redirect(id, rec, target, true); err != nil {
			return err
		}
		if err := l.payTip(tipReceiver, tip); err != nil {
			return err
		}
		l.buf.Emit(&events.OverrideEnacted{DepositID: id, TipReceiver: tipReceiver, Tip: new(big.Int).Set(tip)})
		logger.Info("override enacted", "deposit", id, "target", target, "tip", tip)
		return nil
	})
}

// RevokeOverride restores the voting weight of a requalified deposit to its
// original delegatee.
func (l *Ledger) RevokeOverride(id stgov.DepositID, delegatee, tipReceiver stgov.Address, tip *big.Int) error {
	return l.exec("revokeOverride", func() error {
		rec, err := l.deposits.Get(id)
		if err != nil {
			return err
		}
		if !rec.Overridden {
			return reverts.Newf(reverts.KindInvalidOverride, "deposit %v not overridden", id)
		}
		qualified, _, err := l.qualified(id)
		if err != nil {
			return err
		}
		if !qualified {
			return reverts.Newf(reverts.KindEarningPowerNotQualified, "deposit %v still unqualified", id)
		}
		if delegatee != rec.Delegatee {
			return reverts.Newf(reverts.KindInvalidOverride, "delegatee %v is not the original %v", delegatee, rec.Delegatee)
		}
		if err := l.checkTip(tip); err != nil {
			return err
		}

		if err := l.redirect(id, rec, rec.Delegatee, false); err != nil {
			return err
		}
		if err := l.payTip(tipReceiver, tip); err != nil {
			return err
		}
		l.buf.Emit(&events.OverrideRevoked{DepositID: id, Delegatee: delegatee, TipReceiver: tipReceiver, Tip: new(big.Int).Set(tip)})
		logger.Info("override revoked", "deposit", id, "delegatee", delegatee, "tip", tip)
		return nil
	})
}

// MigrateOverride re-points an overridden deposit to the current default delegatee.
func (l *Ledger) MigrateOverride(id stgov.DepositID, tipReceiver stgov.Address, tip *big.Int) error {
	return l.exec("migrateOverride", func() error {
		rec, err := l.deposits.Get(id)
		if err != nil {
			return err
		}
		target, err := l.defaultDelegatee.Get()
		if err != nil {
			return err
		}
		if !rec.Overridden || rec.RedirectTarget == target {
			return reverts.Newf(reverts.KindInvalidOverride, "deposit %v has nothing to migrate", id)
		}
		if err := l.checkTip(tip); err != nil {
			return err
		}

		if err := l.redirect(id, rec, target, true); err != nil {
			return err
		}
		if err := l.payTip(tipReceiver, tip); err != nil {
			return err
		}
		l.buf.Emit(&events.OverrideMigrated{DepositID: id, Target: target, TipReceiver: tipReceiver, Tip: new(big.Int).Set(tip)})
		logger.Info("override migrated", "deposit", id, "target", target, "tip", tip)
		return nil
	})
}

// qualified reports whether the deposit's earning power reaches the threshold.
func (l *Ledger) qualified(id stgov.DepositID) (bool, *big.Int, error) {
	balance, err := l.protocol.Balance(id)
	if err != nil {
		return false, nil, errors.Wrap(err, "deposit balance")
	}
	power, err := l.protocol.EarningPower(id)
	if err != nil {
		return false, nil, errors.Wrap(err, "earning power")
	}
	ok, err := l.override.Qualified(power, balance)
	return ok, balance, err
}

func (l *Ledger) redirect(id stgov.DepositID, rec *deposits.Deposit, delegatee stgov.Address, overridden bool) error {
	if err := l.protocol.ChangeDelegatee(l.addr, id, delegatee); err != nil {
		return errors.Wrap(err, "change delegatee")
	}
	rec.Overridden = overridden
	if overridden {
		rec.RedirectTarget = delegatee
	} else {
		rec.RedirectTarget = stgov.Address{}
	}
	return l.deposits.Update(id, rec)
}

func (l *Ledger) checkTip(tip *big.Int) error {
	if err := checkAmount(tip); err != nil {
		return err
	}
	return l.override.CheckTip(tip)
}

// payTip mints shares worth tip to receiver, diluting every other holder.
func (l *Ledger) payTip(receiver stgov.Address, tip *big.Int) error {
	if tip.Sign() == 0 {
		return nil
	}
	shares, err := l.shares.TipShares(tip)
	if err != nil {
		return err
	}
	a, err := l.load(receiver)
	if err != nil {
		return err
	}
	return l.shares.Mint(a.id, shares, new(big.Int))
}
