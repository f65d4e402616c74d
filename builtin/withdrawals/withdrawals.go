// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package withdrawals implements a delay gate for unstaked tokens.
// Stake handed to the gate is released to its receiver once the delay elapsed.
package withdrawals

import (
	"errors"
	"math/big"
	"time"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/token"
	"github.com/withtally/stGOV-sub000/log"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

// MaxDelay bounds the withdrawal delay.
const MaxDelay = uint64(30 * 24 * time.Hour / time.Second)

var (
	ErrUnknownWithdrawal = errors.New("withdrawals: unknown withdrawal")
	ErrNotReceiver       = errors.New("withdrawals: caller is not the receiver")
	ErrNotEligible       = errors.New("withdrawals: withdrawal not yet eligible")
	ErrCompleted         = errors.New("withdrawals: withdrawal already completed")
	ErrDelayTooLong      = errors.New("withdrawals: delay exceeds maximum")

	slotDelay       = solidity.Slot("delay")
	slotNextID      = solidity.Slot("next-withdrawal-id")
	slotHead        = solidity.Slot("head")
	slotWithdrawals = solidity.Slot("withdrawals")

	logger = log.WithContext("pkg", "withdrawals")
)

// Clock returns the current unix time in seconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

type Withdrawal struct {
	Receiver   stgov.Address
	Amount     *big.Int
	EligibleAt uint64
	Completed  bool
}

type withdrawalID uint64

func (id withdrawalID) Bytes() []byte {
	return stgov.DepositID(id).Bytes()
}

// Gate keeps withdrawals in creation order.
type Gate struct {
	addr        stgov.Address
	stake       *token.Token
	clock       Clock
	delay       *solidity.Uint256
	nextID      *solidity.Uint256
	head        *solidity.Uint256
	withdrawals *solidity.Mapping[withdrawalID, *Withdrawal]
}

func New(addr stgov.Address, st *state.State, stake *token.Token, clock Clock) *Gate {
	if clock == nil {
		clock = SystemClock
	}
	ctx := solidity.NewContext(addr, st)
	return &Gate{
		addr:        addr,
		stake:       stake,
		clock:       clock,
		delay:       solidity.NewUint256(ctx, slotDelay),
		nextID:      solidity.NewUint256(ctx, slotNextID),
		head:        solidity.NewUint256(ctx, slotHead),
		withdrawals: solidity.NewMapping[withdrawalID, *Withdrawal](ctx, slotWithdrawals),
	}
}

// Address returns the account the stake must be transferred to before a withdrawal is initiated.
func (g *Gate) Address() stgov.Address {
	return g.addr
}

func (g *Gate) Delay() (uint64, error) {
	d, err := g.delay.Get()
	if err != nil {
		return 0, err
	}
	return d.Uint64(), nil
}

func (g *Gate) SetDelay(delay uint64) error {
	if delay > MaxDelay {
		return ErrDelayTooLong
	}
	return g.delay.Set(new(big.Int).SetUint64(delay))
}

// InitiateWithdrawal records amount, already held by the gate, for receiver.
// With no delay the amount is released at once.
func (g *Gate) InitiateWithdrawal(amount *big.Int, receiver stgov.Address) (uint64, error) {
	delay, err := g.Delay()
	if err != nil {
		return 0, err
	}
	next, err := g.nextID.Get()
	if err != nil {
		return 0, err
	}
	next.Add(next, big.NewInt(1))
	if err := g.nextID.Set(next); err != nil {
		return 0, err
	}
	id := withdrawalID(next.Uint64())

	w := &Withdrawal{
		Receiver:   receiver,
		Amount:     new(big.Int).Set(amount),
		EligibleAt: g.clock() + delay,
	}
	if delay == 0 {
		if err := g.stake.Transfer(g.addr, receiver, amount); err != nil {
			return 0, err
		}
		w.Completed = true
	}
	if err := g.withdrawals.Set(id, w); err != nil {
		return 0, err
	}
	logger.Debug("withdrawal initiated", "id", uint64(id), "receiver", receiver, "amount", amount, "eligibleAt", w.EligibleAt)
	return uint64(id), nil
}

func (g *Gate) Withdrawal(id uint64) (*Withdrawal, error) {
	ok, err := g.withdrawals.Exists(withdrawalID(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownWithdrawal
	}
	return g.withdrawals.Get(withdrawalID(id))
}

// CompleteWithdrawal releases an eligible withdrawal to its receiver.
func (g *Gate) CompleteWithdrawal(caller stgov.Address, id uint64) (*big.Int, error) {
	w, err := g.Withdrawal(id)
	if err != nil {
		return nil, err
	}
	if w.Receiver != caller {
		return nil, ErrNotReceiver
	}
	if err := g.complete(withdrawalID(id), w); err != nil {
		return nil, err
	}
	return w.Amount, nil
}

func (g *Gate) complete(id withdrawalID, w *Withdrawal) error {
	if w.Completed {
		return ErrCompleted
	}
	if g.clock() < w.EligibleAt {
		return ErrNotEligible
	}
	w.Completed = true
	if err := g.withdrawals.Set(id, w); err != nil {
		return err
	}
	return g.stake.Transfer(g.addr, w.Receiver, w.Amount)
}

// ProcessMatured completes up to max eligible withdrawals in creation order and
// returns how many were released. It stops at the first withdrawal still pending.
func (g *Gate) ProcessMatured(max int) (int, error) {
	head, err := g.head.Get()
	if err != nil {
		return 0, err
	}
	next, err := g.nextID.Get()
	if err != nil {
		return 0, err
	}
	cursor, last := head.Uint64()+1, next.Uint64()
	released := 0
	for ; cursor <= last && released < max; cursor++ {
		w, err := g.withdrawals.Get(withdrawalID(cursor))
		if err != nil {
			return released, err
		}
		if w.Completed {
			continue
		}
		if g.clock() < w.EligibleAt {
			break
		}
		if err := g.complete(withdrawalID(cursor), w); err != nil {
			return released, err
		}
		released++
	}
	if err := g.head.Set(new(big.Int).SetUint64(cursor - 1)); err != nil {
		return released, err
	}
	return released, nil
}
