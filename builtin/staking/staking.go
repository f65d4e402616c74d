// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements a minimal staking protocol in contract storage.
// Deposits lock stake token, carry voting power for their delegatee and accrue reward token.
package staking

import (
	"errors"
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/token"
	"github.com/withtally/stGOV-sub000/log"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

var (
	ErrUnknownDeposit      = errors.New("staking: unknown deposit")
	ErrNotOwner            = errors.New("staking: caller is not the deposit owner")
	ErrInsufficientDeposit = errors.New("staking: insufficient deposit balance")
	ErrInvalidBips         = errors.New("staking: earning power bips out of range")

	slotNextID      = solidity.Slot("next-deposit-id")
	slotDeposits    = solidity.Slot("deposits")
	slotVotingPower = solidity.Slot("voting-power")
	slotEarningBips = solidity.Slot("earning-bips")
	slotUnallocated = solidity.Slot("unallocated-reward")
	slotTotalStaked = solidity.Slot("total-staked")

	logger = log.WithContext("pkg", "staking")
)

// MaxEarningBips caps the earning power multiplier of a delegatee.
const MaxEarningBips = 2 * stgov.Bips

type Deposit struct {
	Owner     stgov.Address
	Delegatee stgov.Address
	Balance   *big.Int
	Reward    *big.Int
}

type earningBips struct {
	Set  bool
	Bips uint64
}

// Staking holds deposits of stake token and pays out reward token.
type Staking struct {
	addr        stgov.Address
	stake       *token.Token
	reward      *token.Token
	nextID      *solidity.Uint256
	deposits    *solidity.Mapping[stgov.DepositID, *Deposit]
	votingPower *solidity.Mapping[stgov.Address, *big.Int]
	earningBips *solidity.Mapping[stgov.Address, *earningBips]
	unallocated *solidity.Uint256
	totalStaked *solidity.Uint256
}

func New(addr stgov.Address, st *state.State, stake, reward *token.Token) *Staking {
	ctx := solidity.NewContext(addr, st)
	return &Staking{
		addr:        addr,
		stake:       stake,
		reward:      reward,
		nextID:      solidity.NewUint256(ctx, slotNextID),
		deposits:    solidity.NewMapping[stgov.DepositID, *Deposit](ctx, slotDeposits),
		votingPower: solidity.NewMapping[stgov.Address, *big.Int](ctx, slotVotingPower),
		earningBips: solidity.NewMapping[stgov.Address, *earningBips](ctx, slotEarningBips),
		unallocated: solidity.NewUint256(ctx, slotUnallocated),
		totalStaked: solidity.NewUint256(ctx, slotTotalStaked),
	}
}

func (s *Staking) Address() stgov.Address {
	return s.addr
}

// Deposit returns the deposit record, ErrUnknownDeposit if it was never created.
func (s *Staking) Deposit(id stgov.DepositID) (*Deposit, error) {
	ok, err := s.deposits.Exists(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownDeposit
	}
	return s.deposits.Get(id)
}

func (s *Staking) ownedDeposit(owner stgov.Address, id stgov.DepositID) (*Deposit, error) {
	dep, err := s.Deposit(id)
	if err != nil {
		return nil, err
	}
	if dep.Owner != owner {
		return nil, ErrNotOwner
	}
	return dep, nil
}

// CreateDeposit opens an empty deposit for owner delegating to delegatee.
func (s *Staking) CreateDeposit(owner, delegatee stgov.Address) (stgov.DepositID, error) {
	next, err := s.nextID.Get()
	if err != nil {
		return 0, err
	}
	next.Add(next, big.NewInt(1))
	if err := s.nextID.Set(next); err != nil {
		return 0, err
	}
	id := stgov.DepositID(next.Uint64())
	if err := s.deposits.Set(id, &Deposit{
		Owner:     owner,
		Delegatee: delegatee,
		Balance:   new(big.Int),
		Reward:    new(big.Int),
	}); err != nil {
		return 0, err
	}
	logger.Debug("deposit created", "id", id, "owner", owner, "delegatee", delegatee)
	return id, nil
}

// DepositMore pulls amount of stake token from owner into the deposit.
func (s *Staking) DepositMore(owner stgov.Address, id stgov.DepositID, amount *big.Int) error {
	dep, err := s.ownedDeposit(owner, id)
	if err != nil {
		return err
	}
	if err := s.stake.Transfer(owner, s.addr, amount); err != nil {
		return err
	}
	return s.update(id, dep, func(d *Deposit) {
		d.Balance.Add(d.Balance, amount)
	})
}

// Withdraw returns amount of stake token from the deposit to owner.
func (s *Staking) Withdraw(owner stgov.Address, id stgov.DepositID, amount *big.Int) error {
	dep, err := s.ownedDeposit(owner, id)
	if err != nil {
		return err
	}
	if dep.Balance.Cmp(amount) < 0 {
		return ErrInsufficientDeposit
	}
	if err := s.update(id, dep, func(d *Deposit) {
		d.Balance.Sub(d.Balance, amount)
	}); err != nil {
		return err
	}
	return s.stake.Transfer(s.addr, owner, amount)
}

// ChangeDelegatee moves the voting power of the deposit to delegatee.
func (s *Staking) ChangeDelegatee(owner stgov.Address, id stgov.DepositID, delegatee stgov.Address) error {
	dep, err := s.ownedDeposit(owner, id)
	if err != nil {
		return err
	}
	return s.update(id, dep, func(d *Deposit) {
		d.Delegatee = delegatee
	})
}

// ClaimReward pays the accrued reward of the deposit to recipient.
func (s *Staking) ClaimReward(owner stgov.Address, id stgov.DepositID, recipient stgov.Address) (*big.Int, error) {
	dep, err := s.ownedDeposit(owner, id)
	if err != nil {
		return nil, err
	}
	amount := new(big.Int).Set(dep.Reward)
	if amount.Sign() == 0 {
		return amount, nil
	}
	dep.Reward.SetInt64(0)
	if err := s.deposits.Set(id, dep); err != nil {
		return nil, err
	}
	if err := s.reward.Transfer(s.addr, recipient, amount); err != nil {
		return nil, err
	}
	return amount, nil
}

// Balance returns the stake held by the deposit.
func (s *Staking) Balance(id stgov.DepositID) (*big.Int, error) {
	dep, err := s.Deposit(id)
	if err != nil {
		return nil, err
	}
	return dep.Balance, nil
}

// EarningPower returns the reward weight of the deposit: its balance scaled by
// the earning bips of its delegatee.
func (s *Staking) EarningPower(id stgov.DepositID) (*big.Int, error) {
	dep, err := s.Deposit(id)
	if err != nil {
		return nil, err
	}
	return s.earningPower(dep)
}

func (s *Staking) earningPower(dep *Deposit) (*big.Int, error) {
	bips, err := s.EarningBips(dep.Delegatee)
	if err != nil {
		return nil, err
	}
	ep := new(big.Int).Mul(dep.Balance, new(big.Int).SetUint64(bips))
	return ep.Div(ep, stgov.BigBips()), nil
}

// EarningBips returns the earning multiplier of a delegatee, Bips when never set.
func (s *Staking) EarningBips(delegatee stgov.Address) (uint64, error) {
	eb, err := s.earningBips.Get(delegatee)
	if err != nil {
		return 0, err
	}
	if !eb.Set {
		return stgov.Bips, nil
	}
	return eb.Bips, nil
}

// SetEarningBips sets the earning multiplier of a delegatee.
func (s *Staking) SetEarningBips(delegatee stgov.Address, bips uint64) error {
	if bips > MaxEarningBips {
		return ErrInvalidBips
	}
	return s.earningBips.Set(delegatee, &earningBips{Set: true, Bips: bips})
}

// VotingPower returns the stake delegated to delegatee.
func (s *Staking) VotingPower(delegatee stgov.Address) (*big.Int, error) {
	return s.votingPower.Get(delegatee)
}

// TotalStaked returns the stake held over all deposits.
func (s *Staking) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

// NotifyRewardAmount pulls amount of reward token from funder and credits it to
// every deposit pro rata to earning power. Rounding dust stays unallocated and
// is carried into the next notification.
func (s *Staking) NotifyRewardAmount(funder stgov.Address, amount *big.Int) error {
	if err := s.reward.Transfer(funder, s.addr, amount); err != nil {
		return err
	}
	pool, err := s.unallocated.Get()
	if err != nil {
		return err
	}
	pool.Add(pool, amount)

	next, err := s.nextID.Get()
	if err != nil {
		return err
	}
	deps := make([]*Deposit, 0, next.Uint64())
	eps := make([]*big.Int, 0, next.Uint64())
	total := new(big.Int)
	for i := uint64(1); i <= next.Uint64(); i++ {
		dep, err := s.deposits.Get(stgov.DepositID(i))
		if err != nil {
			return err
		}
		ep, err := s.earningPower(dep)
		if err != nil {
			return err
		}
		deps = append(deps, dep)
		eps = append(eps, ep)
		total.Add(total, ep)
	}
	if total.Sign() == 0 {
		return s.unallocated.Set(pool)
	}

	distributed := new(big.Int)
	for i, dep := range deps {
		if eps[i].Sign() == 0 {
			continue
		}
		share := new(big.Int).Mul(pool, eps[i])
		share.Div(share, total)
		dep.Reward.Add(dep.Reward, share)
		distributed.Add(distributed, share)
		if err := s.deposits.Set(stgov.DepositID(i+1), dep); err != nil {
			return err
		}
	}
	logger.Debug("reward notified", "amount", amount, "distributed", distributed)
	return s.unallocated.Set(pool.Sub(pool, distributed))
}

// update applies fn to the deposit and keeps voting power and total stake in sync.
func (s *Staking) update(id stgov.DepositID, dep *Deposit, fn func(*Deposit)) error {
	oldDelegatee, oldBalance := dep.Delegatee, new(big.Int).Set(dep.Balance)

	fn(dep)

	if err := s.addVotingPower(oldDelegatee, new(big.Int).Neg(oldBalance)); err != nil {
		return err
	}
	if err := s.addVotingPower(dep.Delegatee, dep.Balance); err != nil {
		return err
	}
	if err := s.totalStaked.Add(new(big.Int).Sub(dep.Balance, oldBalance)); err != nil {
		return err
	}
	return s.deposits.Set(id, dep)
}

func (s *Staking) addVotingPower(delegatee stgov.Address, delta *big.Int) error {
	if delta.Sign() == 0 {
		return nil
	}
	vp, err := s.votingPower.Get(delegatee)
	if err != nil {
		return err
	}
	return s.votingPower.Set(delegatee, vp.Add(vp, delta))
}
