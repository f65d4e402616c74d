// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package override

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// MinQualifyingEarningPowerBipsCap caps the qualification threshold.
const MinQualifyingEarningPowerBipsCap = 20_000

// MaxOverrideTipCap caps the tip payable per override action.
var MaxOverrideTipCap = stgov.Ether(2_000)

var (
	slotMaxTip  = solidity.Slot("override-max-tip")
	slotMinBips = solidity.Slot("override-min-bips")
)

// Service stores the override policy.
type Service struct {
	maxTip  *solidity.Uint256
	minBips *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		maxTip:  solidity.NewUint256(sctx, slotMaxTip),
		minBips: solidity.NewUint256(sctx, slotMinBips),
	}
}

func (s *Service) MaxTip() (*big.Int, error) {
	return s.maxTip.Get()
}

func (s *Service) SetMaxTip(tip *big.Int) error {
	if tip.Sign() < 0 || tip.Cmp(MaxOverrideTipCap) > 0 {
		return reverts.Newf(reverts.KindInvalidParameter, "max override tip %v above %v", tip, MaxOverrideTipCap)
	}
	return s.maxTip.Set(tip)
}

func (s *Service) MinBips() (uint64, error) {
	v, err := s.minBips.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (s *Service) SetMinBips(bips uint64) error {
	if bips > MinQualifyingEarningPowerBipsCap {
		return reverts.Newf(reverts.KindInvalidParameter, "min qualifying bips %d above %d", bips, MinQualifyingEarningPowerBipsCap)
	}
	return s.minBips.Set(new(big.Int).SetUint64(bips))
}

// Qualified reports whether earningPower reaches the threshold share of
// balance: earningPower * Bips >= minBips * balance.
func (s *Service) Qualified(earningPower, balance *big.Int) (bool, error) {
	minBips, err := s.MinBips()
	if err != nil {
		return false, err
	}
	lhs := new(big.Int).Mul(earningPower, stgov.BigBips())
	rhs := new(big.Int).Mul(balance, new(big.Int).SetUint64(minBips))
	return lhs.Cmp(rhs) >= 0, nil
}

// CheckTip fails when tip exceeds the configured maximum.
func (s *Service) CheckTip(tip *big.Int) error {
	if tip.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	maxTip, err := s.maxTip.Get()
	if err != nil {
		return err
	}
	if tip.Cmp(maxTip) > 0 {
		return reverts.Newf(reverts.KindGreaterThanMaxTip, "tip %v above max %v", tip, maxTip)
	}
	return nil
}
