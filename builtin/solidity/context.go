// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

// Context binds storage slots to a contract address in a state.
type Context struct {
	address stgov.Address
	state   *state.State
}

func NewContext(address stgov.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() stgov.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot derives the storage position of a named variable.
func Slot(name string) stgov.Bytes32 {
	return stgov.BytesToBytes32([]byte(name))
}
