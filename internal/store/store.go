package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inovacc/consultas/internal/encoding"
	"github.com/inovacc/consultas/internal/kv"
	"github.com/inovacc/consultas/internal/model"
)

// CollectionKey names the storage key holding the whole collection.
const CollectionKey = "consultas"

// Store is the sole owner of the appointment collection.
type Store struct {
	kv     kv.Store
	now    func() time.Time
	logger *slog.Logger

	// serializes read-modify-write cycles
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used by ListForCurrentMonth.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns a Store over the given adapter.
func New(adapter kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     adapter,
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListAll returns the stored collection in insertion order. A missing or
// malformed value yields an empty slice.
func (s *Store) ListAll(ctx context.Context) ([]model.Appointment, error) {
	return s.load(ctx)
}

// ListForCurrentMonth returns the records dated in the same calendar month
// and year as the clock, read at call time.
func (s *Store) ListForCurrentMonth(ctx context.Context) ([]model.Appointment, error) {
	return s.ListForMonth(ctx, s.now())
}

// ListForMonth returns the records dated in the same calendar month and
// year as ref, compared in ref's location.
func (s *Store) ListForMonth(ctx context.Context, ref time.Time) ([]model.Appointment, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Appointment, 0, len(all))

	for _, a := range all {
		if a.InMonth(ref) {
			out = append(out, a)
		}
	}

	return out, nil
}

// Get returns the first record with id.
func (s *Store) Get(ctx context.Context, id string) (*model.Appointment, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(all, id); i >= 0 {
		return &all[i], nil
	}

	return nil, ErrNotFound
}

// Upsert replaces the first record with the same id, keeping its position,
// or appends the record when no id matches. The store never generates ids.
func (s *Store) Upsert(ctx context.Context, a model.Appointment) error {
	if a.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return err
	}

	if i := indexOf(all, a.ID); i >= 0 {
		all[i] = a
	} else {
		all = append(all, a)
	}

	return s.save(ctx, all)
}

// Delete removes every record with id. A missing id is a successful no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return err
	}

	kept := all[:0]

	for _, a := range all {
		if a.ID != id {
			kept = append(kept, a)
		}
	}

	return s.save(ctx, kept)
}

// load reads the collection for a query. A malformed value reads as empty.
func (s *Store) load(ctx context.Context) ([]model.Appointment, error) {
	list, err := s.read(ctx)
	if errors.Is(err, ErrMalformedCollection) {
		s.logger.Warn("stored collection is malformed, treating as empty",
			"key", CollectionKey, "error", err)

		return []model.Appointment{}, nil
	}

	return list, err
}

// read returns ErrMalformedCollection instead of an empty fallback, so a
// write never replaces data it could not parse.
func (s *Store) read(ctx context.Context) ([]model.Appointment, error) {
	raw, ok, err := s.kv.Get(ctx, CollectionKey)
	if err != nil {
		return nil, &StorageError{Op: "get", Key: CollectionKey, Err: err}
	}

	if !ok {
		return []model.Appointment{}, nil
	}

	list, err := encoding.ParseJSONList[model.Appointment]([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCollection, err)
	}

	return list, nil
}

func (s *Store) save(ctx context.Context, all []model.Appointment) error {
	data, err := encoding.ToJSON(all)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, CollectionKey, string(data)); err != nil {
		return &StorageError{Op: "set", Key: CollectionKey, Err: err}
	}

	s.logger.Debug("collection saved", "key", CollectionKey, "records", len(all))

	return nil
}

func indexOf(all []model.Appointment, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}

	return -1
}
