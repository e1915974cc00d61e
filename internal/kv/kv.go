// Package kv provides the key-value persistence adapters used by consultas.
//
// Every backend maps string keys to string values. A missing key is not an
// error: Get reports it through the ok result.
//
//	kvs, err := kv.NewBolt(path)
//	value, ok, err := kvs.Get(ctx, "consultas")
//
// Backends: [Bolt] (bbolt file, default), [SQLite] (modernc driver) and
// [Memory] (tests).
package kv

import (
	"context"
	"fmt"
	"io"
)

// Store is the persistence adapter contract.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	io.Closer
}

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Open opens the backend identified by name at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendBolt:
		return NewBolt(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
