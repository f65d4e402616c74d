// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/kv"
	"github.com/withtally/stGOV-sub000/stgov"
)

type change struct {
	key   storageKey
	value rlp.RawValue
}

// Stage abstracts changes of the contract storage.
type Stage struct {
	changes  []change
	onCommit func([]change)
}

// Len returns the count of changed storage slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of all staged changes, in journal order.
func (s *Stage) Hash() stgov.Bytes32 {
	w, _ := blake2b.New256(nil)
	for _, c := range s.changes {
		w.Write(c.key.dbKey())
		w.Write(c.value)
	}
	var h stgov.Bytes32
	w.Sum(h[:0])
	return h
}

// Commit writes all changes into the given kv store in one batch.
func (s *Stage) Commit(store kv.Store) error {
	batch := store.NewBatch()
	putter := StorageBucket.NewPutter(batch)
	for _, c := range s.changes {
		var err error
		if len(c.value) == 0 {
			err = putter.Delete(c.key.dbKey())
		} else {
			err = putter.Put(c.key.dbKey(), c.value)
		}
		if err != nil {
			return errors.Wrap(err, "stage storage")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit storage")
	}
	if s.onCommit != nil {
		s.onCommit(s.changes)
		s.onCommit = nil
	}
	return nil
}
