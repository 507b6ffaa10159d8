// Package localstore provides a small bbolt-backed forecast store for the
// CLI. Forecasts for a past or current day never change, so entries have
// no TTL; the --no-cache flag bypasses the store entirely.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

var bucketForecasts = []byte("forecasts")

// Store wraps a bbolt database holding serialized forecasts.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path. Parent directories
// are created automatically.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketForecasts)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements solunar.Cache.
func (s *Store) Get(_ context.Context, key string) (solunar.Result, bool, error) {
	var payload []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(bucketForecasts).Get([]byte(key)); data != nil {
			payload = append(payload, data...)
		}
		return nil
	})
	if err != nil {
		return solunar.Result{}, false, err
	}
	if payload == nil {
		return solunar.Result{}, false, nil
	}
	var result solunar.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return solunar.Result{}, false, err
	}
	return result, true, nil
}

// Set implements solunar.Cache. The TTL is ignored: local entries are kept
// until the store file is removed.
func (s *Store) Set(_ context.Context, key string, result solunar.Result, _ time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding forecast: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketForecasts).Put([]byte(key), payload)
	})
}

var _ solunar.Cache = (*Store)(nil)
