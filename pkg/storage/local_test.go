package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	t.Run("read missing key", func(t *testing.T) {
		_, err := s.Read(ctx, "tickets/1.yaml")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("write and read", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "tickets/1.yaml", []byte("id: 1\n")))
		data, err := s.Read(ctx, "tickets/1.yaml")
		require.NoError(t, err)
		assert.Equal(t, "id: 1\n", string(data))

		ok, err := s.Exists(ctx, "tickets/1.yaml")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("list is sorted and skips directories", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "tickets/3.yaml", []byte("id: 3\n")))
		require.NoError(t, s.Write(ctx, "tickets/2.yaml", []byte("id: 2\n")))
		require.NoError(t, s.Write(ctx, "tickets/nested/9.yaml", []byte("id: 9\n")))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tickets", "4.yaml.tmp"), nil, 0o644))

		keys, err := s.List(ctx, "tickets")
		require.NoError(t, err)
		assert.Equal(t, []string{"tickets/1.yaml", "tickets/2.yaml", "tickets/3.yaml"}, keys)
	})

	t.Run("list missing prefix", func(t *testing.T) {
		keys, err := s.List(ctx, "nothing")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "tickets/2.yaml"))
		ok, err := s.Exists(ctx, "tickets/2.yaml")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, s.Delete(ctx, "tickets/2.yaml"), ErrNotFound)
	})

	t.Run("keys cannot escape the base directory", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "../../escape.yaml", []byte("x")))
		_, err := os.Stat(filepath.Join(dir, "escape.yaml"))
		assert.NoError(t, err)
	})
}
