// Package statsstore persists solver.Stats snapshots to a bbolt
// database, one record per search session, so a host can review search
// behavior across many runs after the fact. Grounded on the teacher
// corpus's own use of a bolt-family embedded database for small,
// single-process state (karma.run's admin API stores its document
// graph the same way, via github.com/coreos/bbolt); this package uses
// the actively maintained fork, go.etcd.io/bbolt, for the same bucket-
// and-transaction API.
package statsstore

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"constraintlab/pkg/solver"
)

var sessionsBucket = []byte("sessions")

// Store wraps an open bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a bbolt database at path and
// ensures the sessions bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("statsstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(sessionsBucket)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statsstore: init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists stats under its own SessionID, overwriting any prior
// record for that session.
func (s *Store) Record(stats solver.Stats) error {
	if stats.SessionID == "" {
		return fmt.Errorf("statsstore: stats has no session id")
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("statsstore: marshal: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		return b.Put([]byte(stats.SessionID), data)
	})
}

// Get retrieves the stats recorded for sessionID, if any.
func (s *Store) Get(sessionID string) (solver.Stats, bool, error) {
	var out solver.Stats
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		data := b.Get([]byte(sessionID))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &out)
	})
	if err != nil {
		return solver.Stats{}, false, fmt.Errorf("statsstore: get %s: %w", sessionID, err)
	}
	return out, found, nil
}

// All returns every recorded session's stats, in bucket iteration order
// (bbolt's byte-lexicographic key order, i.e. by session id).
func (s *Store) All() ([]solver.Stats, error) {
	var out []solver.Stats
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		return b.ForEach(func(_, data []byte) error {
			var st solver.Stats
			if err := json.Unmarshal(data, &st); err != nil {
				return err
			}
			out = append(out, st)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("statsstore: all: %w", err)
	}
	return out, nil
}
