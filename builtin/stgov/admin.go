// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/builtin/stgov/rewards"
	"github.com/withtally/stGOV-sub000/stgov"
)

func (l *Ledger) onlyOwner(caller stgov.Address) error {
	owner, err := l.owner.Get()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.Newf(reverts.KindUnauthorized, "%v is not the owner", caller)
	}
	return nil
}

// SetRewardParameters sets the payout, the fee and its collector.
func (l *Ledger) SetRewardParameters(caller stgov.Address, payout *big.Int, feeBips uint64, feeCollector stgov.Address) error {
	return l.exec("setRewardParameters", func() error {
		if err := l.onlyOwner(caller); err != nil {
			return err
		}
		p := &rewards.Params{PayoutAmount: payout, FeeBips: feeBips, FeeCollector: feeCollector}
		if err := l.rewards.SetParams(p); err != nil {
			return err
		}
		l.buf.Emit(&events.RewardParametersSet{PayoutAmount: new(big.Int).Set(payout), FeeBips: feeBips, FeeCollector: feeCollector})
		logger.Info("reward parameters set", "payout", payout, "feeBips", feeBips, "collector", feeCollector)
		return nil
	})
}

func (l *Ledger) SetMaxOverrideTip(caller stgov.Address, tip *big.Int) error {
	return l.exec("setMaxOverrideTip", func() error {
		if err := l.onlyOwner(caller); err != nil {
			return err
		}
		if err := checkAmount(tip); err != nil {
			return reverts.Wrap(reverts.KindInvalidParameter, err, "max override tip")
		}
		if err := l.override.SetMaxTip(tip); err != nil {
			return err
		}
		return l.emitOverrideParameters()
	})
}

func (l *Ledger) SetMinQualifyingEarningPowerBips(caller stgov.Address, bips uint64) error {
	return l.exec("setMinQualifyingEarningPowerBips", func() error {
		if err := l.onlyOwner(caller); err != nil {
			return err
		}
		if err := l.override.SetMinBips(bips); err != nil {
			return err
		}
		return l.emitOverrideParameters()
	})
}

func (l *Ledger) emitOverrideParameters() error {
	tip, err := l.override.MaxTip()
	if err != nil {
		return err
	}
	bips, err := l.override.MinBips()
	if err != nil {
		return err
	}
	l.buf.Emit(&events.OverrideParametersSet{MaxOverrideTip: tip, MinQualifyingEarningPowerBips: bips})
	logger.Info("override parameters set", "maxTip", tip, "minBips", bips)
	return nil
}

// SetDefaultDelegatee changes the delegatee of the default deposit. Overridden
// deposits keep their target until migrated.
func (l *Ledger) SetDefaultDelegatee(caller, delegatee stgov.Address) error {
	return l.exec("setDefaultDelegatee", func() error {
		if err := l.onlyOwner(caller); err != nil {
			return err
		}
		if delegatee.IsZero() {
			return reverts.New(reverts.KindInvalidParameter, "zero default delegatee")
		}
		old, err := l.defaultDelegatee.Get()
		if err != nil {
			return err
		}
		def, err := l.deposits.Default()
		if err != nil {
			return err
		}
		if err := l.protocol.ChangeDelegatee(l.addr, def, delegatee); err != nil {
			return errors.Wrap(err, "change default delegatee")
		}
		rec, err := l.deposits.Get(def)
		if err != nil {
			return err
		}
		rec.Delegatee = delegatee
		if err := l.deposits.Update(def, rec); err != nil {
			return err
		}
		l.defaultDelegatee.Set(delegatee)

		l.buf.Emit(&events.DefaultDelegateeSet{Old: old, New: delegatee})
		logger.Info("default delegatee set", "old", old, "new", delegatee)
		return nil
	})
}

// SetFixedWrapper sets the only account allowed to call the fixed entry points.
func (l *Ledger) SetFixedWrapper(caller, wrapper stgov.Address) error {
	return l.exec("setFixedWrapper", func() error {
		if err := l.onlyOwner(caller); err != nil {
			return err
		}
		l.fixedWrapper.Set(wrapper)
		l.buf.Emit(&events.FixedWrapperSet{Wrapper: wrapper})
		return nil
	})
}

func (l *Ledger) TransferOwnership(caller, owner stgov.Address) error {
	return l.exec("transferOwnership", func() error {
		if err := l.onlyOwner(caller); err != nil {
			return err
		}
		if owner.IsZero() {
			return reverts.New(reverts.KindInvalidParameter, "zero owner")
		}
		l.owner.Set(owner)
		l.buf.Emit(&events.OwnershipTransferred{Previous: caller, Owner: owner})
		logger.Info("ownership transferred", "previous", caller, "owner", owner)
		return nil
	})
}
