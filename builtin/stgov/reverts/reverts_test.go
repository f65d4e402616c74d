// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(KindInvalidDeposit, "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_MatchByKind(t *testing.T) {
	detailed := Newf(KindInvalidDeposit, "deposit %d is overridden", 3)
	assert.ErrorIs(t, detailed, ErrInvalidDeposit)
	assert.NotErrorIs(t, detailed, ErrInvalidOverride)

	wrapped := pkgerrors.Wrap(detailed, "update deposit")
	assert.ErrorIs(t, wrapped, ErrInvalidDeposit)
	assert.True(t, IsRevertErr(wrapped))
	assert.Equal(t, KindInvalidDeposit, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("io")))
}

func Test_Wrap(t *testing.T) {
	cause := errors.New("token: insufficient balance")
	err := Wrap(KindInvalidAmount, cause, "pull stake")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "pull stake: token: insufficient balance", err.Error())
	assert.Equal(t, "InvalidAmount", err.Kind().String())
}
