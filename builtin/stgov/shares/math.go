// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shares

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
)

var errOverflow = reverts.New(reverts.KindInvalidAmount, "amount overflows uint256")

func toU256(x *big.Int) (*uint256.Int, error) {
	if x.Sign() < 0 {
		return nil, reverts.New(reverts.KindInvalidAmount, "negative amount")
	}
	u, overflow := uint256.FromBig(x)
	if overflow {
		return nil, errOverflow
	}
	return u, nil
}

// MulDiv returns x*y/d rounded down, or rounded up when ceil is set.
// The product may use 512 bits, the result must fit in 256 bits.
func MulDiv(x, y, d *big.Int, ceil bool) (*big.Int, error) {
	ux, err := toU256(x)
	if err != nil {
		return nil, err
	}
	uy, err := toU256(y)
	if err != nil {
		return nil, err
	}
	ud, err := toU256(d)
	if err != nil {
		return nil, err
	}
	if ud.IsZero() {
		return nil, reverts.New(reverts.KindInvalidAmount, "division by zero")
	}
	z, overflow := new(uint256.Int).MulDivOverflow(ux, uy, ud)
	if overflow {
		return nil, errOverflow
	}
	if ceil && !new(uint256.Int).MulMod(ux, uy, ud).IsZero() {
		if z, overflow = z.AddOverflow(z, uint256.NewInt(1)); overflow {
			return nil, errOverflow
		}
	}
	return z.ToBig(), nil
}

// Mul returns x*y, failing when the product exceeds 256 bits.
func Mul(x, y *big.Int) (*big.Int, error) {
	ux, err := toU256(x)
	if err != nil {
		return nil, err
	}
	uy, err := toU256(y)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).MulOverflow(ux, uy)
	if overflow {
		return nil, errOverflow
	}
	return z.ToBig(), nil
}
