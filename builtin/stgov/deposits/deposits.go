// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"encoding/binary"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// Deposit is the registry record of a deposit owned by the ledger.
type Deposit struct {
	// Delegatee is the delegatee the deposit was created for.
	Delegatee stgov.Address
	// Overridden is set while the deposit's voting weight is redirected.
	Overridden bool
	// RedirectTarget is the delegatee the voting weight is redirected to.
	RedirectTarget stgov.Address
}

type position uint64

func (p position) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(p))
	return b
}

var (
	slotDefault     = solidity.Slot("default-deposit")
	slotByDelegatee = solidity.Slot("deposit-by-delegatee")
	slotRecords     = solidity.Slot("deposit-records")
	slotCount       = solidity.Slot("deposit-count")
	slotOrder       = solidity.Slot("deposit-order")
)

// Service is the deposit registry. It maps delegatees to deposits and keeps
// the deposits in registration order.
type Service struct {
	defaultID   *solidity.Raw[uint64]
	byDelegatee *solidity.Mapping[stgov.Address, uint64]
	records     *solidity.Mapping[stgov.DepositID, *Deposit]
	count       *solidity.Raw[uint64]
	order       *solidity.Mapping[position, uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		defaultID:   solidity.NewRaw[uint64](sctx, slotDefault),
		byDelegatee: solidity.NewMapping[stgov.Address, uint64](sctx, slotByDelegatee),
		records:     solidity.NewMapping[stgov.DepositID, *Deposit](sctx, slotRecords),
		count:       solidity.NewRaw[uint64](sctx, slotCount),
		order:       solidity.NewMapping[position, uint64](sctx, slotOrder),
	}
}

// Default returns the default deposit, zero before initialization.
func (s *Service) Default() (stgov.DepositID, error) {
	id, err := s.defaultID.Get()
	return stgov.DepositID(id), err
}

// RegisterDefault records the default deposit created for delegatee.
func (s *Service) RegisterDefault(id stgov.DepositID, delegatee stgov.Address) error {
	if err := s.defaultID.Set(uint64(id)); err != nil {
		return err
	}
	return s.append(id, &Deposit{Delegatee: delegatee})
}

// Lookup returns the deposit created for delegatee.
func (s *Service) Lookup(delegatee stgov.Address) (stgov.DepositID, bool, error) {
	id, err := s.byDelegatee.Get(delegatee)
	if err != nil {
		return 0, false, err
	}
	return stgov.DepositID(id), id != 0, nil
}

// Register records a deposit created for delegatee.
func (s *Service) Register(id stgov.DepositID, delegatee stgov.Address) error {
	if err := s.byDelegatee.Set(delegatee, uint64(id)); err != nil {
		return err
	}
	return s.append(id, &Deposit{Delegatee: delegatee})
}

func (s *Service) append(id stgov.DepositID, d *Deposit) error {
	if err := s.records.Set(id, d); err != nil {
		return err
	}
	n, err := s.count.Get()
	if err != nil {
		return err
	}
	if err := s.order.Set(position(n), uint64(id)); err != nil {
		return err
	}
	return s.count.Set(n + 1)
}

// Owned reports whether the deposit was registered by the ledger.
func (s *Service) Owned(id stgov.DepositID) (bool, error) {
	if id == 0 {
		return false, nil
	}
	return s.records.Exists(id)
}

// Get returns the record of an owned deposit.
func (s *Service) Get(id stgov.DepositID) (*Deposit, error) {
	owned, err := s.Owned(id)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, reverts.Newf(reverts.KindInvalidDeposit, "deposit %v not owned", id)
	}
	return s.records.Get(id)
}

// Update stores the record of an owned deposit.
func (s *Service) Update(id stgov.DepositID, d *Deposit) error {
	return s.records.Set(id, d)
}

// IDs returns every owned deposit in registration order.
func (s *Service) IDs() ([]stgov.DepositID, error) {
	n, err := s.count.Get()
	if err != nil {
		return nil, err
	}
	ids := make([]stgov.DepositID, 0, n)
	for i := range n {
		id, err := s.order.Get(position(i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, stgov.DepositID(id))
	}
	return ids, nil
}
