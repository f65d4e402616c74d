// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/stgov"
)

// StakingProtocol holds the deposits backing the pool. The ledger is the
// owner of every deposit it creates.
type StakingProtocol interface {
	CreateDeposit(owner, delegatee stgov.Address) (stgov.DepositID, error)
	DepositMore(owner stgov.Address, id stgov.DepositID, amount *big.Int) error
	Withdraw(owner stgov.Address, id stgov.DepositID, amount *big.Int) error
	ChangeDelegatee(owner stgov.Address, id stgov.DepositID, delegatee stgov.Address) error
	ClaimReward(owner stgov.Address, id stgov.DepositID, recipient stgov.Address) (*big.Int, error)
	EarningPower(id stgov.DepositID) (*big.Int, error)
	Balance(id stgov.DepositID) (*big.Int, error)
}

// StakeToken is the governance token staked into the pool.
type StakeToken interface {
	Transfer(from, to stgov.Address, amount *big.Int) error
	BalanceOf(addr stgov.Address) (*big.Int, error)
}

// WithdrawalQueue releases unstaked tokens to their receivers after a delay.
// The ledger transfers the tokens to Address before initiating.
type WithdrawalQueue interface {
	Address() stgov.Address
	InitiateWithdrawal(amount *big.Int, receiver stgov.Address) (uint64, error)
}

// Collaborators are the external components the ledger drives.
type Collaborators struct {
	Protocol   StakingProtocol
	StakeToken StakeToken
	Queue      WithdrawalQueue
}
