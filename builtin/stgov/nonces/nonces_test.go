// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nonces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
	"github.com/withtally/stGOV-sub000/test/datagen"
)

func TestNonces(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	svc := New(solidity.NewContext(stgov.BytesToAddress([]byte("stgov")), state.New(db)))

	a, b := datagen.RandAddress(), datagen.RandAddress()

	n, err := svc.Current(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	assert.ErrorIs(t, svc.Use(a, 1), reverts.ErrInvalidNonce)
	assert.NoError(t, svc.Use(a, 0))
	assert.ErrorIs(t, svc.Use(a, 0), reverts.ErrInvalidNonce)

	used, err := svc.Invalidate(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), used)
	n, _ = svc.Current(a)
	assert.Equal(t, uint64(2), n)

	n, _ = svc.Current(b)
	assert.Equal(t, uint64(0), n)
}
