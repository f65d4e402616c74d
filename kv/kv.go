// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key/value storage committed ledger state is read from and written to.
package kv

// Getter reads committed values. A missing key is an error recognized by IsNotFound.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool
}

type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch collects writes applied together by Write.
type Batch interface {
	Putter
	Len() int
	Write() error
}

type Store interface {
	Getter
	Putter
	NewBatch() Batch
	Close() error
}
