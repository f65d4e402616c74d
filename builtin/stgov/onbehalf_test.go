// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/intent"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
	"github.com/withtally/stGOV-sub000/test/datagen"
)

func (f *fixture) sign(in intent.Intent, key *ecdsa.PrivateKey) []byte {
	sig, err := f.ledger.Verifier().Sign(&in, key)
	require.NoError(f.t, err)
	return sig
}

func (f *fixture) nonce(holder stgov.Address) uint64 {
	n, err := f.ledger.Nonce(holder)
	require.NoError(f.t, err)
	return n
}

func TestOnBehalf(t *testing.T) {
	f := newFixture(t)
	key, holder := datagen.RandKey()
	otherKey, _ := datagen.RandKey()
	bob, x := addr("bob"), addr("x")
	f.fund(holder, stgov.Ether(50))
	expiry := f.now + 100

	stake := intent.Intent{Action: intent.ActionStake, Holder: holder, Amount: stgov.Ether(20), Nonce: 0, Expiry: expiry}
	sig := f.sign(stake, key)
	require.NoError(t, f.ledger.StakeOnBehalf(holder, stgov.Ether(20), 0, expiry, sig))
	assertAmount(t, stgov.Ether(20), f.balance(holder))
	assert.Equal(t, uint64(1), f.nonce(holder))

	// replay
	err := f.ledger.StakeOnBehalf(holder, stgov.Ether(20), 0, expiry, sig)
	assert.ErrorIs(t, err, reverts.ErrInvalidNonce)

	// arguments differ from the signed ones
	stake.Nonce = 1
	sig = f.sign(stake, key)
	err = f.ledger.StakeOnBehalf(holder, stgov.Ether(21), 1, expiry, sig)
	assert.ErrorIs(t, err, reverts.ErrInvalidSignature)

	err = f.ledger.StakeOnBehalf(holder, stgov.Ether(20), 1, expiry, f.sign(stake, otherKey))
	assert.ErrorIs(t, err, reverts.ErrInvalidSignature)
	assert.Equal(t, uint64(1), f.nonce(holder))

	unstake := intent.Intent{Action: intent.ActionUnstake, Holder: holder, Amount: stgov.Ether(5), Nonce: 1, Expiry: expiry}
	wid, err := f.ledger.UnstakeOnBehalf(holder, stgov.Ether(5), 1, expiry, f.sign(unstake, key))
	require.NoError(t, err)
	w, err := f.gate.Withdrawal(wid)
	require.NoError(t, err)
	assert.Equal(t, holder, w.Receiver)
	assertAmount(t, stgov.Ether(5), w.Amount)
	wallet, err := f.stake.BalanceOf(holder)
	require.NoError(t, err)
	assertAmount(t, stgov.Ether(35), wallet)

	dep, err := f.ledger.FetchOrInitializeDepositForDelegatee(x)
	require.NoError(t, err)
	update := intent.Intent{Action: intent.ActionUpdateDeposit, Holder: holder, DepositID: dep, Nonce: 2, Expiry: expiry}
	require.NoError(t, f.ledger.UpdateDepositOnBehalf(holder, dep, 2, expiry, f.sign(update, key)))
	got, err := f.ledger.DepositIDOf(holder)
	require.NoError(t, err)
	assert.Equal(t, dep, got)
	assertAmount(t, stgov.Ether(15), f.votingPower(x))

	transfer := intent.Intent{Action: intent.ActionTransfer, Holder: holder, To: bob, Amount: stgov.Ether(5), Nonce: 3, Expiry: expiry}
	require.NoError(t, f.ledger.TransferOnBehalf(holder, bob, stgov.Ether(5), 3, expiry, f.sign(transfer, key)))
	assertAmount(t, stgov.Ether(5), f.balance(bob))
	assertAmount(t, stgov.Ether(10), f.balance(holder))

	// a failing action does not consume the nonce
	unstake = intent.Intent{Action: intent.ActionUnstake, Holder: holder, Amount: stgov.Ether(11), Nonce: 4, Expiry: expiry}
	_, err = f.ledger.UnstakeOnBehalf(holder, stgov.Ether(11), 4, expiry, f.sign(unstake, key))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	assert.Equal(t, uint64(4), f.nonce(holder))

	// expired
	f.now = expiry + 1
	transfer.Nonce = 4
	err = f.ledger.TransferOnBehalf(holder, bob, stgov.Ether(5), 4, expiry, f.sign(transfer, key))
	assert.ErrorIs(t, err, reverts.ErrSignatureExpired)

	f.checkInvariants(holder, bob)
}

func TestPermit(t *testing.T) {
	f := newFixture(t)
	ch := f.subscribe()
	key, owner := datagen.RandKey()
	spender := addr("spender")
	deadline := f.now + 10

	permit := intent.Intent{Action: intent.ActionPermit, Holder: owner, To: spender, Amount: stgov.Ether(7), Nonce: 0, Expiry: deadline}
	sig := f.sign(permit, key)
	require.NoError(t, f.ledger.Permit(owner, spender, stgov.Ether(7), deadline, sig))

	allowance, err := f.ledger.Allowance(owner, spender)
	require.NoError(t, err)
	assertAmount(t, stgov.Ether(7), allowance)
	assert.Equal(t, uint64(1), f.nonce(owner))

	assert.ErrorIs(t, f.ledger.Permit(owner, spender, stgov.Ether(7), deadline, sig), reverts.ErrInvalidSignature)

	// invalidating the nonce voids signatures made over it
	permit.Nonce = 1
	sig = f.sign(permit, key)
	drain(ch)
	require.NoError(t, f.ledger.InvalidateNonce(owner))
	assert.Equal(t, []any{&events.NonceInvalidated{Holder: owner, Nonce: 1}}, drain(ch))
	assert.Equal(t, uint64(2), f.nonce(owner))
	assert.ErrorIs(t, f.ledger.Permit(owner, spender, stgov.Ether(7), deadline, sig), reverts.ErrInvalidSignature)

	f.now = deadline + 1
	permit.Nonce = 2
	err = f.ledger.Permit(owner, spender, stgov.Ether(7), deadline, f.sign(permit, key))
	assert.ErrorIs(t, err, reverts.ErrSignatureExpired)

	assert.ErrorIs(t, f.ledger.Permit(owner, spender, big.NewInt(1), deadline, []byte{1, 2}), reverts.ErrSignatureExpired)
}

func TestDelegateOnBehalf(t *testing.T) {
	f := newFixture(t)
	key, holder := datagen.RandKey()
	x, y := addr("x"), addr("y")
	f.fund(holder, stgov.Ether(50))
	expiry := f.now + 100

	stake := intent.Intent{Action: intent.ActionStakeWithDelegatee, Holder: holder, Amount: stgov.Ether(20), Delegatee: x, Nonce: 0, Expiry: expiry}
	require.NoError(t, f.ledger.StakeWithDelegateeOnBehalf(holder, stgov.Ether(20), x, 0, expiry, f.sign(stake, key)))
	assertAmount(t, stgov.Ether(20), f.balance(holder))
	assertAmount(t, stgov.Ether(20), f.votingPower(x))
	assert.Equal(t, uint64(1), f.nonce(holder))

	delegate := intent.Intent{Action: intent.ActionDelegate, Holder: holder, Delegatee: y, Nonce: 1, Expiry: expiry}
	sig := f.sign(delegate, key)

	// delegatee differs from the signed one
	err := f.ledger.DelegateOnBehalf(holder, x, 1, expiry, sig)
	assert.ErrorIs(t, err, reverts.ErrInvalidSignature)
	// a delegate signature does not authorize staking
	err = f.ledger.StakeWithDelegateeOnBehalf(holder, big.NewInt(0), y, 1, expiry, sig)
	assert.ErrorIs(t, err, reverts.ErrInvalidSignature)
	assert.Equal(t, uint64(1), f.nonce(holder))

	require.NoError(t, f.ledger.DelegateOnBehalf(holder, y, 1, expiry, sig))
	assert.Equal(t, 0, f.votingPower(x).Sign())
	assertAmount(t, stgov.Ether(20), f.votingPower(y))
	assertAmount(t, stgov.Ether(20), f.checkpoint(holder))
	assert.Equal(t, uint64(2), f.nonce(holder))

	err = f.ledger.DelegateOnBehalf(holder, y, 1, expiry, sig)
	assert.ErrorIs(t, err, reverts.ErrInvalidNonce)

	f.checkInvariants(holder)
}
