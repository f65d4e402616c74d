// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package intent authorizes actions signed by a holder on behalf of a relayer.
//
// A signed action is hashed as EIP-712 typed data over a domain that binds
// the ledger address and chain id. Verification checks expiry, signature and
// nonce, in that order, and yields a Validated intent the ledger executes
// through the same path as a direct call.
package intent

import (
	"fmt"
	"math/big"

	"github.com/withtally/stGOV-sub000/stgov"
)

// Action selects the ledger operation an intent authorizes.
type Action uint8

const (
	ActionStake Action = iota + 1
	ActionUnstake
	ActionUpdateDeposit
	ActionTransfer
	ActionPermit
	ActionDelegate
	ActionStakeWithDelegatee
)

func (a Action) String() string {
	switch a {
	case ActionStake:
		return "Stake"
	case ActionUnstake:
		return "Unstake"
	case ActionUpdateDeposit:
		return "UpdateDeposit"
	case ActionTransfer:
		return "Transfer"
	case ActionPermit:
		return "Permit"
	case ActionDelegate:
		return "Delegate"
	case ActionStakeWithDelegatee:
		return "StakeWithDelegatee"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Intent is the argument tuple a holder signs.
type Intent struct {
	Action Action
	Holder stgov.Address
	// Amount is the stake amount, or the allowance for permits.
	Amount *big.Int
	// DepositID is the target of UpdateDeposit.
	DepositID stgov.DepositID
	// To is the transfer receiver, or the spender for permits.
	To stgov.Address
	// Delegatee receives the holder's voting power for delegate actions.
	Delegatee stgov.Address
	Nonce     uint64
	Expiry    uint64
}

// Validated is an intent whose signature, expiry and nonce were checked.
// It can only be produced by a Verifier.
type Validated struct {
	intent Intent
}

func (v *Validated) Intent() Intent {
	return v.intent
}
