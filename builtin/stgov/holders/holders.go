// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package holders

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/stgov"
)

// Holder is the delegation state of one account.
type Holder struct {
	Address stgov.Address
	// DepositID is the deposit holding the delegated part of the balance.
	DepositID stgov.DepositID
	// Checkpoint is the delegated part of the balance. The rest sits in the default deposit.
	Checkpoint *big.Int
}

// EffectiveCheckpoint returns the checkpoint bounded by the current balance.
// Dilution lowers balances without touching checkpoints.
func (h *Holder) EffectiveCheckpoint(balance *big.Int) *big.Int {
	if h.Checkpoint.Cmp(balance) > 0 {
		return new(big.Int).Set(balance)
	}
	return new(big.Int).Set(h.Checkpoint)
}

// Surplus returns the undelegated part of balance.
func (h *Holder) Surplus(balance *big.Int) *big.Int {
	return new(big.Int).Sub(balance, h.EffectiveCheckpoint(balance))
}
