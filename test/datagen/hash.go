// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/ecdsa"
	"crypto/rand"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/withtally/stGOV-sub000/stgov"
)

func RandomHash() stgov.Bytes32 {
	var b32 stgov.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() stgov.Address {
	var addr stgov.Address

	rand.Read(addr[:])
	return addr
}

// RandKey returns a fresh secp256k1 key and the address it signs for.
func RandKey() (*ecdsa.PrivateKey, stgov.Address) {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return key, stgov.Address(crypto.PubkeyToAddress(key.PublicKey))
}
