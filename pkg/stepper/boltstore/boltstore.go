// Package boltstore persists multi-step progress in a bbolt database file.
package boltstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/goliatone/go-formcode/pkg/stepper"
)

// DefaultBucket holds progress blobs.
var DefaultBucket = []byte("progress")

// ErrClosed is returned after Close.
var ErrClosed = errors.New("boltstore: store is closed")

// Store implements stepper.Store on bbolt.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

var _ stepper.Store = (*Store)(nil)

// Option configures Open.
type Option func(*options)

type options struct {
	bucket  []byte
	timeout time.Duration
}

// WithBucket overrides DefaultBucket.
func WithBucket(name string) Option {
	return func(o *options) {
		if name != "" {
			o.bucket = []byte(name)
		}
	}
}

// WithTimeout bounds how long Open waits for the file lock.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Open opens (or creates) the database at path and ensures the bucket exists.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := options{bucket: DefaultBucket, timeout: time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: cfg.timeout})
	if err != nil {
		return nil, fmt.Errorf("boltstore: open: %w", err)
	}
	store := &Store{db: db, bucket: cfg.bucket}
	if err := store.initBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(s.bucket); err != nil {
			return fmt.Errorf("boltstore: create bucket: %w", err)
		}
		return nil
	})
}

// Close closes the database. Calling it twice is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get implements stepper.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.db == nil {
		return nil, false, ErrClosed
	}
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("boltstore: bucket %q not found", s.bucket)
		}
		if data := bucket.Get([]byte(key)); data != nil {
			out = make([]byte, len(data))
			copy(out, data)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

// Set implements stepper.Store.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("boltstore: bucket %q not found", s.bucket)
		}
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("boltstore: put %q: %w", key, err)
		}
		return nil
	})
}

// Clear implements stepper.Store.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("boltstore: bucket %q not found", s.bucket)
		}
		return bucket.Delete([]byte(key))
	})
}

// Keys lists stored keys in byte order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.db == nil {
		return nil, ErrClosed
	}
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("boltstore: bucket %q not found", s.bucket)
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
