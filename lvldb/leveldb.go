// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb stores committed ledger state in goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/withtally/stGOV-sub000/kv"
)

var _ kv.Store = (*LevelDB)(nil)

const minCacheMB = 16

// Options configure a store. An empty Path keeps the data in memory.
type Options struct {
	Path     string
	CacheMB  int
	ReadOnly bool
}

type LevelDB struct {
	db  *leveldb.DB
	stg storage.Storage
}

// Open opens the store described by opts, creating an on-disk one when missing.
func Open(opts Options) (*LevelDB, error) {
	var (
		stg storage.Storage
		err error
	)
	if opts.Path == "" {
		stg = storage.NewMemStorage()
	} else if stg, err = storage.OpenFile(opts.Path, opts.ReadOnly); err != nil {
		return nil, errors.Wrapf(err, "open storage %v", opts.Path)
	}

	cacheMB := max(opts.CacheMB, minCacheMB)
	db, err := leveldb.Open(stg, &opt.Options{
		BlockCacheCapacity: cacheMB / 2 * opt.MiB,
		WriteBuffer:        cacheMB / 4 * opt.MiB,
		Filter:             filter.NewBloomFilter(10),
		ReadOnly:           opts.ReadOnly,
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db, stg}, nil
}

// NewMem opens an empty in-memory store.
func NewMem() (*LevelDB, error) {
	return Open(Options{})
}

func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get returns the value of key. A missing key is reported through IsNotFound.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// Close closes the db and releases the underlying storage lock.
func (l *LevelDB) Close() error {
	if err := l.db.Close(); err != nil {
		l.stg.Close()
		return err
	}
	return l.stg.Close()
}

// NewBatch returns a batch applied atomically on Write.
func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{l.db, new(leveldb.Batch)}
}

type batch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int     { return b.b.Len() }
func (b *batch) Write() error { return b.db.Write(b.b, nil) }
