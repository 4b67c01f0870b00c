package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restbreak/internal/core/model"
)

func TestWatchReloadsExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RestBreak", settingsFileName)
	store, err := Open(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 4)
	require.NoError(t, store.Watch(ctx, func() {
		changes <- struct{}{}
	}, nil))

	require.NoError(t, os.WriteFile(path, []byte("breakDuration: 45\n"), 0o644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("settings change was not observed")
	}
	assert.Equal(t, 45, store.Int(model.KeyBreakDuration))
}

func TestWatchMemoryStoreIsNoop(t *testing.T) {
	require.NoError(t, NewMemory().Watch(context.Background(), nil, nil))
}
