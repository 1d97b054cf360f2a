// Package chainstore backs LedgerView and Clock with a bbolt database of
// seen transaction hashes and the current chain height, the minimal
// ledger slice the attribute framework's Conflicts and NotValidBefore
// checks need without pulling in a full blockchain.
package chainstore

import (
	"encoding/binary"
	"fmt"

	"github.com/nan01ab/neo/pkg/util"
	"go.etcd.io/bbolt"
)

const dbFilePermission = 0600

var (
	txBucket     = []byte("transactions")
	heightBucket = []byte("height")
	heightKey    = []byte("current")
)

// Store implements transaction.LedgerView and transaction.Clock over a
// bbolt file.
type Store struct {
	db *bbolt.DB
}

// Open creates or reuses the bbolt database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, dbFilePermission, nil)
	if err != nil {
		return nil, fmt.Errorf("chainstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(txBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(heightBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("chainstore: init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordTransaction marks h as included on chain.
func (s *Store) RecordTransaction(h util.Uint256) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(txBucket).Put(h.BytesBE(), []byte{1})
	})
}

// ContainsTransaction implements transaction.LedgerView.
func (s *Store) ContainsTransaction(h util.Uint256) bool {
	var found bool
	_ = s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(txBucket).Get(h.BytesBE()) != nil
		return nil
	})
	return found
}

// SetCurrentHeight updates the tracked chain height.
func (s *Store) SetCurrentHeight(height uint32) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, height)
		return tx.Bucket(heightBucket).Put(heightKey, buf)
	})
}

// CurrentHeight implements transaction.Clock.
func (s *Store) CurrentHeight() uint32 {
	var height uint32
	_ = s.db.View(func(tx *bbolt.Tx) error {
		buf := tx.Bucket(heightBucket).Get(heightKey)
		if len(buf) == 4 {
			height = binary.BigEndian.Uint32(buf)
		}
		return nil
	})
	return height
}
