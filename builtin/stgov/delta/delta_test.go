// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delta

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/withtally/stGOV-sub000/stgov"
)

func TestMovements(t *testing.T) {
	m := New()
	m.Deposit(3, big.NewInt(10))
	m.Withdraw(1, big.NewInt(7))
	m.Withdraw(3, big.NewInt(4))
	m.Deposit(2, big.NewInt(5))
	m.Withdraw(2, big.NewInt(5))
	m.Deposit(4, big.NewInt(1))

	assert.Equal(t, 4, m.Len())
	assert.Equal(t, big.NewInt(6).String(), m.Net(3).String())
	assert.Equal(t, big.NewInt(-7).String(), m.Net(1).String())
	assert.Equal(t, 0, m.Net(2).Sign())
	assert.Equal(t, 0, m.Net(9).Sign())

	var calls []string
	record := func(kind string) func(stgov.DepositID, *big.Int) error {
		return func(id stgov.DepositID, amount *big.Int) error {
			calls = append(calls, fmt.Sprintf("%s %v %v", kind, id, amount))
			return nil
		}
	}
	assert.NoError(t, m.Apply(record("withdraw"), record("deposit")))
	assert.Equal(t, []string{"withdraw 1 7", "deposit 3 6", "deposit 4 1"}, calls)
}

func TestApplyStopsOnError(t *testing.T) {
	m := New()
	m.Withdraw(1, big.NewInt(1))
	m.Deposit(2, big.NewInt(1))

	boom := errors.New("boom")
	deposited := false
	err := m.Apply(
		func(stgov.DepositID, *big.Int) error { return boom },
		func(stgov.DepositID, *big.Int) error { deposited = true; return nil },
	)
	assert.ErrorIs(t, err, boom)
	assert.False(t, deposited)
}
