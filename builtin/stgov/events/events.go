// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/stgov"
)

type Staked struct {
	Holder stgov.Address
	Amount *big.Int
	Shares *big.Int
}

type Unstaked struct {
	Holder       stgov.Address
	Amount       *big.Int
	Shares       *big.Int
	WithdrawalID uint64
}

type Transfer struct {
	From   stgov.Address
	To     stgov.Address
	Amount *big.Int
}

type Approval struct {
	Owner   stgov.Address
	Spender stgov.Address
	Amount  *big.Int
}

type DepositInitialized struct {
	Delegatee stgov.Address
	DepositID stgov.DepositID
}

type DepositUpdated struct {
	Holder       stgov.Address
	OldDepositID stgov.DepositID
	NewDepositID stgov.DepositID
}

type RewardDistributed struct {
	Claimer      stgov.Address
	Recipient    stgov.Address
	RewardAmount *big.Int
	PayoutAmount *big.Int
	FeeAmount    *big.Int
	FeeCollector stgov.Address
}

type OverrideEnacted struct {
	DepositID   stgov.DepositID
	TipReceiver stgov.Address
	Tip         *big.Int
}

type OverrideRevoked struct {
	DepositID   stgov.DepositID
	Delegatee   stgov.Address
	TipReceiver stgov.Address
	Tip         *big.Int
}

type OverrideMigrated struct {
	DepositID   stgov.DepositID
	Target      stgov.Address
	TipReceiver stgov.Address
	Tip         *big.Int
}

type RewardParametersSet struct {
	PayoutAmount *big.Int
	FeeBips      uint64
	FeeCollector stgov.Address
}

type OverrideParametersSet struct {
	MaxOverrideTip                *big.Int
	MinQualifyingEarningPowerBips uint64
}

type DefaultDelegateeSet struct {
	Old stgov.Address
	New stgov.Address
}

type FixedWrapperSet struct {
	Wrapper stgov.Address
}

type OwnershipTransferred struct {
	Previous stgov.Address
	Owner    stgov.Address
}

type NonceInvalidated struct {
	Holder stgov.Address
	Nonce  uint64
}
