package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Watch(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "tickets", func(p string) {
			mu.Lock()
			seen[p] = true
			mu.Unlock()
		})
	}()

	// The directory exists once the watcher is registered.
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "tickets"))
		return err == nil
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "tickets", "1.yaml"), []byte("id: 1\n"), 0o644)
		mu.Lock()
		defer mu.Unlock()
		return seen["tickets/1.yaml"]
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	for p := range seen {
		assert.NotContains(t, p, ".tmp")
	}
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
