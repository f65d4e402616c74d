// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/staking"
	"github.com/withtally/stGOV-sub000/builtin/token"
	"github.com/withtally/stGOV-sub000/builtin/withdrawals"
	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

func TestCommitAndReopen(t *testing.T) {
	f := newFixture(t)
	alice, x := addr("alice"), addr("x")
	f.stakeAs(alice, stgov.Ether(30))
	dep := f.delegate(alice, x)

	path := filepath.Join(t.TempDir(), "ledger")
	disk, err := lvldb.Open(lvldb.Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, f.st.Stage().Commit(disk))
	require.NoError(t, disk.Close())

	disk, err = lvldb.Open(lvldb.Options{Path: path, ReadOnly: true})
	require.NoError(t, err)
	defer disk.Close()

	st := state.New(disk)
	stake := token.New(addr("stake-token"), st)
	s := staking.New(addr("staking"), st, stake, token.New(addr("reward-token"), st))
	gate := withdrawals.New(addr("withdrawal-gate"), st, stake, nil)
	l := New(addr("stgov"), st, Collaborators{Protocol: s, StakeToken: stake, Queue: gate}, Options{})

	bal, err := l.BalanceOf(alice)
	require.NoError(t, err)
	assertAmount(t, stgov.Ether(30), bal)
	id, err := l.DepositIDOf(alice)
	require.NoError(t, err)
	assert.Equal(t, dep, id)
	vp, err := s.VotingPower(x)
	require.NoError(t, err)
	assertAmount(t, stgov.Ether(30), vp)

	// initialized state is not initialized twice
	assert.Error(t, l.Initialize(&Params{Owner: f.owner, DefaultDelegatee: f.defaultDelegatee}))
}
