// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package holders

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/stgov"
)

var (
	slotCount   = stgov.BytesToBytes32([]byte("holder-count"))
	slotIndex   = stgov.BytesToBytes32([]byte("holder-index"))
	slotHolders = stgov.BytesToBytes32([]byte("holders"))
)

// Service stores holder records in an arena: an address index maps accounts to
// sequential identifiers, records are keyed by identifier.
type Service struct {
	count   *solidity.Uint256
	index   *solidity.Mapping[stgov.Address, uint64]
	holders *solidity.Mapping[stgov.HolderID, *Holder]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		count:   solidity.NewUint256(sctx, slotCount),
		index:   solidity.NewMapping[stgov.Address, uint64](sctx, slotIndex),
		holders: solidity.NewMapping[stgov.HolderID, *Holder](sctx, slotHolders),
	}
}

// Lookup returns the identifier of addr, false if the account never held shares.
func (s *Service) Lookup(addr stgov.Address) (stgov.HolderID, bool, error) {
	id, err := s.index.Get(addr)
	if err != nil {
		return 0, false, err
	}
	return stgov.HolderID(id), id != 0, nil
}

// FetchOrCreate returns the identifier of addr, creating a record delegated
// to depositID when the account is new.
func (s *Service) FetchOrCreate(addr stgov.Address, depositID stgov.DepositID) (stgov.HolderID, *Holder, error) {
	id, ok, err := s.Lookup(addr)
	if err != nil {
		return 0, nil, err
	}
	if ok {
		h, err := s.Get(id)
		return id, h, err
	}

	count, err := s.count.Get()
	if err != nil {
		return 0, nil, err
	}
	count.Add(count, big.NewInt(1))
	if err := s.count.Set(count); err != nil {
		return 0, nil, err
	}
	id = stgov.HolderID(count.Uint64())
	if err := s.index.Set(addr, uint64(id)); err != nil {
		return 0, nil, err
	}
	h := &Holder{Address: addr, DepositID: depositID, Checkpoint: new(big.Int)}
	if err := s.holders.Set(id, h); err != nil {
		return 0, nil, err
	}
	return id, h, nil
}

// Get returns the record of id.
func (s *Service) Get(id stgov.HolderID) (*Holder, error) {
	h, err := s.holders.Get(id)
	if err != nil {
		return nil, err
	}
	if h.Checkpoint == nil {
		return nil, errors.Errorf("holder %d not found", id)
	}
	return h, nil
}

// Set stores the record of id.
func (s *Service) Set(id stgov.HolderID, h *Holder) error {
	return s.holders.Set(id, h)
}

// Count returns the number of holder records.
func (s *Service) Count() (uint64, error) {
	c, err := s.count.Get()
	if err != nil {
		return 0, err
	}
	return c.Uint64(), nil
}
