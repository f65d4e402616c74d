// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/token"
	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

type fixture struct {
	staking *Staking
	stake   *token.Token
	reward  *token.Token
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)

	stake := token.New(stgov.BytesToAddress([]byte("stake")), st)
	reward := token.New(stgov.BytesToAddress([]byte("reward")), st)
	return &fixture{
		staking: New(stgov.BytesToAddress([]byte("staking")), st, stake, reward),
		stake:   stake,
		reward:  reward,
	}
}

func TestDepositLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := stgov.BytesToAddress([]byte("owner"))
	alice := stgov.BytesToAddress([]byte("alice"))
	bob := stgov.BytesToAddress([]byte("bob"))
	require.NoError(t, f.stake.Mint(owner, big.NewInt(1000)))

	id, err := f.staking.CreateDeposit(owner, alice)
	require.NoError(t, err)
	assert.Equal(t, stgov.DepositID(1), id)

	require.NoError(t, f.staking.DepositMore(owner, id, big.NewInt(600)))
	bal, _ := f.staking.Balance(id)
	assert.Equal(t, big.NewInt(600).String(), bal.String())
	vp, _ := f.staking.VotingPower(alice)
	assert.Equal(t, big.NewInt(600).String(), vp.String())

	require.NoError(t, f.staking.ChangeDelegatee(owner, id, bob))
	vp, _ = f.staking.VotingPower(alice)
	assert.Equal(t, 0, vp.Sign())
	vp, _ = f.staking.VotingPower(bob)
	assert.Equal(t, big.NewInt(600).String(), vp.String())

	assert.ErrorIs(t, f.staking.Withdraw(owner, id, big.NewInt(601)), ErrInsufficientDeposit)
	assert.ErrorIs(t, f.staking.Withdraw(alice, id, big.NewInt(1)), ErrNotOwner)
	require.NoError(t, f.staking.Withdraw(owner, id, big.NewInt(100)))
	ownerBal, _ := f.stake.BalanceOf(owner)
	assert.Equal(t, big.NewInt(500).String(), ownerBal.String())
	total, _ := f.staking.TotalStaked()
	assert.Equal(t, big.NewInt(500).String(), total.String())

	_, err = f.staking.Balance(stgov.DepositID(9))
	assert.ErrorIs(t, err, ErrUnknownDeposit)
}

func TestEarningPowerAndRewards(t *testing.T) {
	f := newFixture(t)
	owner := stgov.BytesToAddress([]byte("owner"))
	funder := stgov.BytesToAddress([]byte("funder"))
	good := stgov.BytesToAddress([]byte("good"))
	poor := stgov.BytesToAddress([]byte("poor"))
	recipient := stgov.BytesToAddress([]byte("recipient"))
	require.NoError(t, f.stake.Mint(owner, big.NewInt(1000)))
	require.NoError(t, f.reward.Mint(funder, big.NewInt(1000)))

	id1, _ := f.staking.CreateDeposit(owner, good)
	id2, _ := f.staking.CreateDeposit(owner, poor)
	require.NoError(t, f.staking.DepositMore(owner, id1, big.NewInt(300)))
	require.NoError(t, f.staking.DepositMore(owner, id2, big.NewInt(300)))

	assert.ErrorIs(t, f.staking.SetEarningBips(poor, MaxEarningBips+1), ErrInvalidBips)
	require.NoError(t, f.staking.SetEarningBips(poor, stgov.Bips/2))
	ep, _ := f.staking.EarningPower(id2)
	assert.Equal(t, big.NewInt(150).String(), ep.String())

	// 300 vs 150 earning power
	require.NoError(t, f.staking.NotifyRewardAmount(funder, big.NewInt(100)))
	r1, err := f.staking.ClaimReward(owner, id1, recipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(66).String(), r1.String())
	r2, err := f.staking.ClaimReward(owner, id2, recipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(33).String(), r2.String())

	// dust is carried over
	require.NoError(t, f.staking.NotifyRewardAmount(funder, big.NewInt(2)))
	r1, _ = f.staking.ClaimReward(owner, id1, recipient)
	assert.Equal(t, big.NewInt(2).String(), r1.String())

	got, _ := f.reward.BalanceOf(recipient)
	assert.Equal(t, big.NewInt(101).String(), got.String())

	zero, err := f.staking.ClaimReward(owner, id1, recipient)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Sign())
}
