// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/withtally/stGOV-sub000/cache"
	"github.com/withtally/stGOV-sub000/kv"
	"github.com/withtally/stGOV-sub000/stackedmap"
	"github.com/withtally/stGOV-sub000/stgov"
)

// StorageBucket is the kv bucket holding committed storage values.
const StorageBucket = kv.Bucket("s")

const storageCacheSize = 4096

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr stgov.Address
	key  stgov.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, stgov.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages contract storage.
type State struct {
	src   kv.Getter
	cache *cache.LRU
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object over the committed storage in src.
func New(src kv.Getter) *State {
	c, _ := cache.NewLRU(storageCacheSize)
	s := &State{
		src:   StorageBucket.NewGetter(src),
		cache: c,
	}
	s.sm = stackedmap.New(s.load)
	return s
}

// load implements stackedmap.MapGetter.
func (s *State) load(key storageKey) (rlp.RawValue, bool, error) {
	v, err := s.cache.GetOrLoad(key, func(any) (any, error) {
		metricStorageCounter().AddWithLabel(1, map[string]string{"source": "db"})
		data, err := s.src.Get(key.dbKey())
		if err != nil {
			if s.src.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(data), nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(rlp.RawValue), true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr stgov.Address, key stgov.Bytes32) (stgov.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return stgov.Bytes32{}, err
	}
	if len(raw) == 0 {
		return stgov.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return stgov.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return stgov.Blake2b(raw), nil
	}
	return stgov.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr stgov.Address, key, value stgov.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr stgov.Address, key stgov.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr stgov.Address, key stgov.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr stgov.Address, key stgov.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr stgov.Address, key stgov.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object holding all changes since the state was created.
func (s *State) Stage() *Stage {
	changes := make([]change, 0)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes = append(changes, change{k, v})
		return true
	})
	return &Stage{changes: changes, onCommit: s.reset}
}

// reset drops the journal after the changes were written, keeping the
// committed values warm in cache.
func (s *State) reset(changes []change) {
	for _, c := range changes {
		s.cache.Add(c.key, c.value)
	}
	s.sm = stackedmap.New(s.load)
}
