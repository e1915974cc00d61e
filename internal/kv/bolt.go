package kv

import (
	"context"
	"time"

	"github.com/inovacc/consultas/internal/encoding"
	"go.etcd.io/bbolt"
)

const boltBucketKV = "kv" // key: storage key -> raw value

// Bolt is a Store backed by a bbolt file.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a bbolt database at path.
func NewBolt(path string) (*Bolt, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketKV))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var (
		value string
		ok    bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketKV)).Get([]byte(key))
		if v == nil {
			return nil
		}

		// v is only valid for the life of the transaction
		value, ok = string(v), true

		return nil
	})

	return value, ok, err
}

func (b *Bolt) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketKV)).Put([]byte(key), []byte(value))
	})
}
