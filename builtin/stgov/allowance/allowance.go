// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allowance

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

var slotAllowances = solidity.Slot("allowances")

func key(owner, spender stgov.Address) stgov.Bytes32 {
	return stgov.Blake2b(owner.Bytes(), spender.Bytes())
}

// Service keeps spending allowances. An allowance of MaxUint256 is infinite.
type Service struct {
	allowances *solidity.Mapping[stgov.Bytes32, *big.Int]
}

func New(sctx *solidity.Context) *Service {
	return &Service{allowances: solidity.NewMapping[stgov.Bytes32, *big.Int](sctx, slotAllowances)}
}

func (s *Service) Allowance(owner, spender stgov.Address) (*big.Int, error) {
	return s.allowances.Get(key(owner, spender))
}

func (s *Service) Approve(owner, spender stgov.Address, amount *big.Int) error {
	if amount.Sign() < 0 || amount.BitLen() > 256 {
		return reverts.ErrInvalidAmount
	}
	return s.allowances.Set(key(owner, spender), amount)
}

// Spend consumes amount of the allowance owner granted to spender.
func (s *Service) Spend(owner, spender stgov.Address, amount *big.Int) error {
	allowed, err := s.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowed.Cmp(stgov.MaxUint256) == 0 {
		return nil
	}
	if allowed.Cmp(amount) < 0 {
		return reverts.Newf(reverts.KindInsufficientAllowance, "allowance %v below %v", allowed, amount)
	}
	return s.allowances.Set(key(owner, spender), allowed.Sub(allowed, amount))
}
