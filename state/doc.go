// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the contract storage of the ledger builtins.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv putter ]
//	         |
//	    [ lru cache ]
//	         |
//	  [ read-only kv ]
//
// Storage values are rlp raw bytes addressed by (contract address, 32 bytes key).
package state
