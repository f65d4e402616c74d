// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// MaxFeeBips caps the protocol fee taken from each payout.
const MaxFeeBips = 2_000

var (
	slotPayout       = solidity.Slot("reward-payout")
	slotFeeBips      = solidity.Slot("reward-fee-bips")
	slotFeeCollector = solidity.Slot("reward-fee-collector")
)

// Params are the owner-set terms of a reward distribution.
type Params struct {
	PayoutAmount *big.Int
	FeeBips      uint64
	FeeCollector stgov.Address
}

// Validate checks the params against the hard caps.
func (p *Params) Validate() error {
	if p.PayoutAmount == nil || p.PayoutAmount.Sign() < 0 || p.PayoutAmount.BitLen() > 256 {
		return reverts.New(reverts.KindInvalidParameter, "invalid payout amount")
	}
	if p.FeeBips > MaxFeeBips {
		return reverts.Newf(reverts.KindInvalidParameter, "fee bips %d above %d", p.FeeBips, MaxFeeBips)
	}
	if p.FeeBips > 0 && p.FeeCollector.IsZero() {
		return reverts.New(reverts.KindInvalidParameter, "fee collector required")
	}
	return nil
}

// Service stores the reward parameters.
type Service struct {
	payout       *solidity.Uint256
	feeBips      *solidity.Uint256
	feeCollector *solidity.Address
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		payout:       solidity.NewUint256(sctx, slotPayout),
		feeBips:      solidity.NewUint256(sctx, slotFeeBips),
		feeCollector: solidity.NewAddress(sctx, slotFeeCollector),
	}
}

func (s *Service) Params() (*Params, error) {
	payout, err := s.payout.Get()
	if err != nil {
		return nil, err
	}
	feeBips, err := s.feeBips.Get()
	if err != nil {
		return nil, err
	}
	collector, err := s.feeCollector.Get()
	if err != nil {
		return nil, err
	}
	return &Params{PayoutAmount: payout, FeeBips: feeBips.Uint64(), FeeCollector: collector}, nil
}

// SetParams validates and stores p.
func (s *Service) SetParams(p *Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.payout.Set(p.PayoutAmount); err != nil {
		return err
	}
	if err := s.feeBips.Set(new(big.Int).SetUint64(p.FeeBips)); err != nil {
		return err
	}
	s.feeCollector.Set(p.FeeCollector)
	return nil
}

// FeeFor returns floor(payout * feeBips / Bips).
func (p *Params) FeeFor(payout *big.Int) *big.Int {
	fee := new(big.Int).Mul(payout, new(big.Int).SetUint64(p.FeeBips))
	return fee.Quo(fee, stgov.BigBips())
}
