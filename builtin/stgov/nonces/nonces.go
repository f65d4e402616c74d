// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nonces

import (
	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

var slotNonces = solidity.Slot("nonces")

// Service tracks one increasing nonce per account.
type Service struct {
	nonces *solidity.Mapping[stgov.Address, uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{nonces: solidity.NewMapping[stgov.Address, uint64](sctx, slotNonces)}
}

// Current returns the next nonce the account may use.
func (s *Service) Current(addr stgov.Address) (uint64, error) {
	return s.nonces.Get(addr)
}

// Use consumes nonce, which must be the current one.
func (s *Service) Use(addr stgov.Address, nonce uint64) error {
	cur, err := s.nonces.Get(addr)
	if err != nil {
		return err
	}
	if cur != nonce {
		return reverts.Newf(reverts.KindInvalidNonce, "nonce %d, expected %d", nonce, cur)
	}
	return s.nonces.Set(addr, cur+1)
}

// Invalidate skips the current nonce and returns the consumed value.
func (s *Service) Invalidate(addr stgov.Address) (uint64, error) {
	cur, err := s.nonces.Get(addr)
	if err != nil {
		return 0, err
	}
	return cur, s.nonces.Set(addr, cur+1)
}
