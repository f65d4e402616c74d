// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shares

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

var (
	slotTotalShares = stgov.BytesToBytes32([]byte("total-shares"))
	slotTotalSupply = stgov.BytesToBytes32([]byte("total-supply"))
	slotShares      = stgov.BytesToBytes32([]byte("shares"))
)

// Service is the share ledger: per-holder shares against a pooled total supply.
// Balances are derived as shares * totalSupply / totalShares.
type Service struct {
	totalShares *solidity.Uint256
	totalSupply *solidity.Uint256
	shares      *solidity.Mapping[stgov.HolderID, *big.Int]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalShares: solidity.NewUint256(sctx, slotTotalShares),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		shares:      solidity.NewMapping[stgov.HolderID, *big.Int](sctx, slotShares),
	}
}

// Totals returns total shares and total supply.
func (s *Service) Totals() (*big.Int, *big.Int, error) {
	shares, err := s.totalShares.Get()
	if err != nil {
		return nil, nil, err
	}
	supply, err := s.totalSupply.Get()
	return shares, supply, err
}

func (s *Service) TotalShares() (*big.Int, error) {
	return s.totalShares.Get()
}

func (s *Service) TotalSupply() (*big.Int, error) {
	return s.totalSupply.Get()
}

func (s *Service) SharesOf(id stgov.HolderID) (*big.Int, error) {
	return s.shares.Get(id)
}

func (s *Service) BalanceOf(id stgov.HolderID) (*big.Int, error) {
	shares, err := s.shares.Get(id)
	if err != nil {
		return nil, err
	}
	return s.StakeForShares(shares)
}

// SharesForStake converts amount to shares rounding up. It is the burn side
// conversion: a holder giving up amount loses at least its worth.
func (s *Service) SharesForStake(amount *big.Int) (*big.Int, error) {
	return s.sharesForStake(amount, true)
}

// SharesForStakeDown converts amount to shares rounding down. It is the mint
// side conversion: nobody receives a claim worth more than what was paid in.
func (s *Service) SharesForStakeDown(amount *big.Int) (*big.Int, error) {
	return s.sharesForStake(amount, false)
}

func (s *Service) sharesForStake(amount *big.Int, ceil bool) (*big.Int, error) {
	totalShares, totalSupply, err := s.Totals()
	if err != nil {
		return nil, err
	}
	if totalSupply.Sign() == 0 || totalShares.Sign() == 0 {
		return Mul(amount, stgov.ShareScaleFactor)
	}
	return MulDiv(amount, totalShares, totalSupply, ceil)
}

// StakeForShares converts shares to stake rounding down.
func (s *Service) StakeForShares(shares *big.Int) (*big.Int, error) {
	totalShares, totalSupply, err := s.Totals()
	if err != nil {
		return nil, err
	}
	if totalShares.Sign() == 0 {
		return new(big.Int).Quo(shares, stgov.ShareScaleFactor), nil
	}
	return MulDiv(shares, totalSupply, totalShares, false)
}

// TipShares returns the shares that dilute the pool by tip without changing
// the supply: floor(tip * totalShares / (totalSupply - tip)).
func (s *Service) TipShares(tip *big.Int) (*big.Int, error) {
	totalShares, totalSupply, err := s.Totals()
	if err != nil {
		return nil, err
	}
	if tip.Cmp(totalSupply) >= 0 {
		return nil, reverts.Newf(reverts.KindInvalidAmount, "tip %v not below supply %v", tip, totalSupply)
	}
	return MulDiv(tip, totalShares, new(big.Int).Sub(totalSupply, tip), false)
}

// Mint credits shares to the holder and grows the totals by shares and stake.
func (s *Service) Mint(id stgov.HolderID, shares, stake *big.Int) error {
	if err := s.totalShares.Add(shares); err != nil {
		return errOverflow
	}
	if err := s.totalSupply.Add(stake); err != nil {
		return errOverflow
	}
	held, err := s.shares.Get(id)
	if err != nil {
		return err
	}
	return s.shares.Set(id, held.Add(held, shares))
}

// Burn debits shares from the holder and shrinks the totals by shares and stake.
func (s *Service) Burn(id stgov.HolderID, shares, stake *big.Int) error {
	held, err := s.shares.Get(id)
	if err != nil {
		return err
	}
	if held.Cmp(shares) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if err := s.shares.Set(id, held.Sub(held, shares)); err != nil {
		return err
	}
	if err := s.totalShares.Sub(shares); err != nil {
		return err
	}
	totalSupply, err := s.totalSupply.Get()
	if err != nil {
		return err
	}
	if totalSupply.Cmp(stake) < 0 {
		return reverts.ErrInsufficientBalance
	}
	return s.totalSupply.Set(totalSupply.Sub(totalSupply, stake))
}

// Move transfers shares between two holders.
func (s *Service) Move(from, to stgov.HolderID, shares *big.Int) error {
	held, err := s.shares.Get(from)
	if err != nil {
		return err
	}
	if held.Cmp(shares) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if err := s.shares.Set(from, held.Sub(held, shares)); err != nil {
		return err
	}
	recv, err := s.shares.Get(to)
	if err != nil {
		return err
	}
	return s.shares.Set(to, recv.Add(recv, shares))
}

// AddSupply grows the supply without minting shares, raising every balance pro rata.
func (s *Service) AddSupply(amount *big.Int) error {
	if err := s.totalSupply.Add(amount); err != nil {
		return errOverflow
	}
	return nil
}
