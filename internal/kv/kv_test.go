package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()

	bolt, err := NewBolt(filepath.Join(dir, "test.bolt"))
	require.NoError(t, err)

	lite, err := NewSQLite(filepath.Join(dir, "test.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"bolt":   bolt,
		"sqlite": lite,
		"memory": NewMemory(),
	}

	t.Cleanup(func() {
		for name, s := range stores {
			if err := s.Close(); err != nil {
				t.Logf("failed to close %s: %v", name, err)
			}
		}
	})

	return stores
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(context.Background(), "consultas")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestStore_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "consultas", `[{"id":"a"}]`))

			v, ok, err := s.Get(ctx, "consultas")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"a"}]`, v)

			require.NoError(t, s.Set(ctx, "consultas", `[]`))

			v, ok, err = s.Get(ctx, "consultas")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v)
		})
	}
}

func TestStore_EmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "userToken", ""))

			v, ok, err := s.Get(ctx, "userToken")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestBolt_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "reopen.bolt")

	b, err := NewBolt(path)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "consultas", "[]"))
	require.NoError(t, b.Close())

	b, err = NewBolt(path)
	require.NoError(t, err)

	defer func() { _ = b.Close() }()

	v, ok, err := b.Get(ctx, "consultas")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestMemory_Fail(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("device storage error")

	m.Fail(boom)

	_, _, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, m.Set(ctx, "k", "v"), boom)

	m.Fail(nil)
	require.NoError(t, m.Set(ctx, "k", "v"))
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.Error(t, s.Set(ctx, "k", "v"))
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
}
