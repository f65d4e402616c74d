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

// ClaimAndDistributeReward claims the rewards of the given deposits to
// recipient in exchange for the payout, paid by claimer into the pool. The
// payout less the fee raises every balance; the fee is minted as shares to the
// fee collector. It returns the claimed reward.
func (l *Ledger) ClaimAndDistributeReward(claimer, recipient stgov.Address, minExpectedReward *big.Int, ids []stgov.DepositID) (*big.Int, error) {
	var claimed *big.Int
	err := l.exec("claimAndDistributeReward", func() (err error) {
		claimed, err = l.claimAndDistribute(claimer, recipient, minExpectedReward, ids)
		return
	})
	return claimed, err
}

func (l *Ledger) claimAndDistribute(claimer, recipient stgov.Address, minExpectedReward *big.Int, ids []stgov.DepositID) (*big.Int, error) {
	if err := checkAmount(minExpectedReward); err != nil {
		return nil, err
	}

	seen := make(map[stgov.DepositID]struct{}, len(ids))
	claimed := new(big.Int)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		owned, err := l.deposits.Owned(id)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, reverts.Newf(reverts.KindInvalidDeposit, "deposit %v not owned", id)
		}
		reward, err := l.protocol.ClaimReward(l.addr, id, recipient)
		if err != nil {
			return nil, errors.Wrapf(err, "claim reward of deposit %v", id)
		}
		claimed.Add(claimed, reward)
	}
	if claimed.Cmp(minExpectedReward) < 0 {
		return nil, reverts.Newf(reverts.KindInsufficientRewards, "claimed %v below %v", claimed, minExpectedReward)
	}

	params, err := l.rewards.Params()
	if err != nil {
		return nil, err
	}
	payout := params.PayoutAmount
	if err := l.token.Transfer(claimer, l.addr, payout); err != nil {
		return nil, reverts.Wrap(reverts.KindInvalidAmount, err, "pull payout")
	}

	fee := params.FeeFor(payout)
	if err := l.shares.AddSupply(new(big.Int).Sub(payout, fee)); err != nil {
		return nil, err
	}
	if fee.Sign() > 0 {
		collector, err := l.load(params.FeeCollector)
		if err != nil {
			return nil, err
		}
		feeShares, err := l.shares.SharesForStakeDown(fee)
		if err != nil {
			return nil, err
		}
		if err := l.shares.Mint(collector.id, feeShares, fee); err != nil {
			return nil, err
		}
	}

	def, err := l.deposits.Default()
	if err != nil {
		return nil, err
	}
	m := delta.New()
	m.Deposit(def, payout)
	if err := l.apply(m); err != nil {
		return nil, err
	}

	l.buf.Emit(&events.RewardDistributed{
		Claimer:      claimer,
		Recipient:    recipient,
		RewardAmount: new(big.Int).Set(claimed),
		PayoutAmount: new(big.Int).Set(payout),
		FeeAmount:    fee,
		FeeCollector: params.FeeCollector,
	})
	logger.Info("reward distributed", "claimer", claimer, "reward", claimed, "payout", payout, "fee", fee)
	return claimed, nil
}
