// Package manifeststore is a read-through cache of contract manifest
// groups: the set of public keys a deployed contract has been signed
// into, which a MatchContext implementation consults to answer
// CurrentScriptHasGroup/CallingScriptHasGroup during ConditionGroup and
// ConditionCalledByGroup evaluation. Writes go straight to the backing
// bbolt bucket; the LRU in front only ever serves reads, so it never
// needs invalidation beyond Put overwriting its own cache entry.
package manifeststore

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
	"go.etcd.io/bbolt"
)

const dbFilePermission = 0600

var groupsBucket = []byte("groups")

// Store is an LRU-cached bbolt-backed map from contract script hash to
// the public key groups that contract's manifest declares.
type Store struct {
	db    *bbolt.DB
	cache *lru.Cache
}

// Open creates or reuses the bbolt database at path, fronted by an LRU
// cache holding up to cacheSize contracts' groups.
func Open(path string, cacheSize int) (*Store, error) {
	db, err := bbolt.Open(path, dbFilePermission, nil)
	if err != nil {
		return nil, fmt.Errorf("manifeststore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(groupsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("manifeststore: init bucket: %w", err)
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("manifeststore: new cache: %w", err)
	}
	return &Store{db: db, cache: cache}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutGroups records contract's manifest group keys, overwriting any
// prior entry and its cached copy.
func (s *Store) PutGroups(contract util.Uint160, groups []*keys.PublicKey) error {
	w := io.NewBufBinWriter()
	w.BinWriter.WriteArray(groups)
	if w.Err != nil {
		return fmt.Errorf("manifeststore: encode groups: %w", w.Err)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(groupsBucket).Put(contract.BytesBE(), w.Bytes())
	})
	if err != nil {
		return fmt.Errorf("manifeststore: put groups: %w", err)
	}
	s.cache.Add(contract, groups)
	return nil
}

// GetGroups returns the group keys recorded for contract, an empty
// slice if the contract is unknown.
func (s *Store) GetGroups(contract util.Uint160) ([]*keys.PublicKey, error) {
	if v, ok := s.cache.Get(contract); ok {
		return v.([]*keys.PublicKey), nil
	}
	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(groupsBucket).Get(contract.BytesBE())
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("manifeststore: get groups: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	r := io.NewBinReaderFromBuf(raw)
	var groups []*keys.PublicKey
	r.ReadArray(&groups)
	if r.Err != nil {
		return nil, fmt.Errorf("manifeststore: decode groups: %w", r.Err)
	}
	s.cache.Add(contract, groups)
	return groups, nil
}

// HasGroup reports whether contract's manifest lists pk among its
// groups.
func (s *Store) HasGroup(contract util.Uint160, pk *keys.PublicKey) (bool, error) {
	groups, err := s.GetGroups(contract)
	if err != nil {
		return false, err
	}
	for _, g := range groups {
		if g.Equal(pk) {
			return true, nil
		}
	}
	return false, nil
}
