// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/staking"
	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/intent"
	"github.com/withtally/stGOV-sub000/builtin/token"
	"github.com/withtally/stGOV-sub000/builtin/withdrawals"
	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
	"github.com/withtally/stGOV-sub000/test/datagen"
)

func addr(name string) stgov.Address {
	return stgov.BytesToAddress([]byte(name))
}

type fixture struct {
	t   *testing.T
	st  *state.State
	now uint64

	stake   *token.Token
	reward  *token.Token
	staking *staking.Staking
	gate    *withdrawals.Gate
	ledger  *Ledger

	owner            stgov.Address
	defaultDelegatee stgov.Address
	collector        stgov.Address
	wrapper          stgov.Address
	funder           stgov.Address
	claimer          stgov.Address
}

func newFixture(t *testing.T, edits ...func(*Params)) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	f := &fixture{
		t:                t,
		st:               st,
		now:              1_700_000_000,
		owner:            addr("owner"),
		defaultDelegatee: addr("default-delegatee"),
		collector:        addr("collector"),
		wrapper:          addr("fixed-wrapper"),
		funder:           addr("funder"),
		claimer:          addr("claimer"),
	}
	f.stake = token.New(addr("stake-token"), st)
	f.reward = token.New(addr("reward-token"), st)
	f.staking = staking.New(addr("staking"), st, f.stake, f.reward)
	f.gate = withdrawals.New(addr("withdrawal-gate"), st, f.stake, func() uint64 { return f.now })
	f.ledger = f.newLedger(Collaborators{Protocol: f.staking, StakeToken: f.stake, Queue: f.gate})

	p := &Params{
		Owner:                         f.owner,
		DefaultDelegatee:              f.defaultDelegatee,
		FeeCollector:                  f.collector,
		FixedWrapper:                  f.wrapper,
		PayoutAmount:                  stgov.Ether(25),
		MaxOverrideTip:                stgov.Ether(1),
		MinQualifyingEarningPowerBips: 5000,
	}
	for _, edit := range edits {
		edit(p)
	}
	require.NoError(t, f.ledger.Initialize(p))
	return f
}

// newLedger opens another ledger instance over the same storage.
func (f *fixture) newLedger(c Collaborators) *Ledger {
	return New(addr("stgov"), f.st, c, Options{
		Domain: intent.Domain{Name: "Staked Governance", Version: "1", ChainID: big.NewInt(39)},
		Clock:  func() uint64 { return f.now },
	})
}

func (f *fixture) fund(holder stgov.Address, amount *big.Int) {
	require.NoError(f.t, f.stake.Mint(holder, amount))
}

func (f *fixture) stakeAs(holder stgov.Address, amount *big.Int) {
	f.fund(holder, amount)
	require.NoError(f.t, f.ledger.Stake(holder, amount))
}

func (f *fixture) delegate(holder, delegatee stgov.Address) stgov.DepositID {
	require.NoError(f.t, f.ledger.Delegate(holder, delegatee))
	id, err := f.ledger.DepositIDOf(holder)
	require.NoError(f.t, err)
	return id
}

// distribute accrues reward to the deposits and lets the claimer pay the payout.
func (f *fixture) distribute(reward *big.Int) {
	params, err := f.ledger.RewardParameters()
	require.NoError(f.t, err)
	require.NoError(f.t, f.reward.Mint(f.funder, reward))
	require.NoError(f.t, f.staking.NotifyRewardAmount(f.funder, reward))
	f.fund(f.claimer, params.PayoutAmount)

	ids, err := f.ledger.Deposits()
	require.NoError(f.t, err)
	_, err = f.ledger.ClaimAndDistributeReward(f.claimer, f.claimer, new(big.Int), ids)
	require.NoError(f.t, err)
}

func (f *fixture) balance(holder stgov.Address) *big.Int {
	b, err := f.ledger.BalanceOf(holder)
	require.NoError(f.t, err)
	return b
}

func (f *fixture) checkpoint(holder stgov.Address) *big.Int {
	b, err := f.ledger.BalanceCheckpoint(holder)
	require.NoError(f.t, err)
	return b
}

func (f *fixture) votingPower(delegatee stgov.Address) *big.Int {
	vp, err := f.staking.VotingPower(delegatee)
	require.NoError(f.t, err)
	return vp
}

func (f *fixture) depositBalance(id stgov.DepositID) *big.Int {
	b, err := f.staking.Balance(id)
	require.NoError(f.t, err)
	return b
}

func (f *fixture) defaultDeposit() stgov.DepositID {
	id, err := f.ledger.DefaultDeposit()
	require.NoError(f.t, err)
	return id
}

func (f *fixture) subscribe() chan events.Log {
	ch := make(chan events.Log, 256)
	sub := f.ledger.Subscribe(ch)
	f.t.Cleanup(sub.Unsubscribe)
	return ch
}

func drain(ch chan events.Log) []any {
	var out []any
	for {
		select {
		case l := <-ch:
			out = append(out, l.Event)
		default:
			return out
		}
	}
}

// checkInvariants verifies solvency and checkpoint bounds over holders.
func (f *fixture) checkInvariants(holders ...stgov.Address) {
	t := f.t
	supply, err := f.ledger.TotalSupply()
	require.NoError(t, err)

	ids, err := f.ledger.Deposits()
	require.NoError(t, err)
	deposited := new(big.Int)
	for _, id := range ids {
		deposited.Add(deposited, f.depositBalance(id))
	}
	assertAmount(t, supply, deposited, "deposits back the supply")

	staked, err := f.staking.TotalStaked()
	require.NoError(t, err)
	assertAmount(t, supply, staked, "staking protocol holds the supply")

	custody, err := f.stake.BalanceOf(f.ledger.Address())
	require.NoError(t, err)
	assert.Equal(t, 0, custody.Sign(), "ledger keeps no idle stake")

	sum := new(big.Int)
	for _, h := range holders {
		bal := f.balance(h)
		cp := f.checkpoint(h)
		assert.True(t, cp.Sign() >= 0 && cp.Cmp(bal) <= 0, "checkpoint %v out of [0, %v] for %v", cp, bal, h)
		sum.Add(sum, bal)
	}
	assert.True(t, sum.Cmp(supply) <= 0, "balances %v exceed supply %v", sum, supply)
}

func assertAmount(t *testing.T, want, got *big.Int, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want.String(), got.String(), msgAndArgs...)
}

func randHolders(n int) []stgov.Address {
	out := make([]stgov.Address, n)
	for i := range out {
		out[i] = datagen.RandAddress()
	}
	return out
}
