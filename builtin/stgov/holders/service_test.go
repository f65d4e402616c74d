// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package holders

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
	"github.com/withtally/stGOV-sub000/test/datagen"
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(stgov.BytesToAddress([]byte("stgov")), state.New(db)))
}

func TestFetchOrCreate(t *testing.T) {
	svc := newSvc(t)
	a, b := datagen.RandAddress(), datagen.RandAddress()

	_, ok, err := svc.Lookup(a)
	require.NoError(t, err)
	assert.False(t, ok)

	idA, h, err := svc.FetchOrCreate(a, 7)
	require.NoError(t, err)
	assert.Equal(t, stgov.HolderID(1), idA)
	assert.Equal(t, stgov.DepositID(7), h.DepositID)
	assert.Equal(t, 0, h.Checkpoint.Sign())

	idB, _, err := svc.FetchOrCreate(b, 7)
	require.NoError(t, err)
	assert.Equal(t, stgov.HolderID(2), idB)

	h.Checkpoint = big.NewInt(50)
	h.DepositID = 9
	require.NoError(t, svc.Set(idA, h))

	again, got, err := svc.FetchOrCreate(a, 7)
	require.NoError(t, err)
	assert.Equal(t, idA, again)
	assert.Equal(t, stgov.DepositID(9), got.DepositID)
	assert.Equal(t, big.NewInt(50).String(), got.Checkpoint.String())

	count, _ := svc.Count()
	assert.Equal(t, uint64(2), count)

	_, err = svc.Get(stgov.HolderID(3))
	assert.Error(t, err)
}

func TestEffectiveCheckpoint(t *testing.T) {
	h := &Holder{Checkpoint: big.NewInt(100)}
	assert.Equal(t, big.NewInt(90).String(), h.EffectiveCheckpoint(big.NewInt(90)).String())
	assert.Equal(t, 0, h.Surplus(big.NewInt(90)).Sign())
	assert.Equal(t, big.NewInt(100).String(), h.EffectiveCheckpoint(big.NewInt(125)).String())
	assert.Equal(t, big.NewInt(25).String(), h.Surplus(big.NewInt(125)).String())
}
