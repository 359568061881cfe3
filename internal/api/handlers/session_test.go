package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/workspace"
)

func newStoreWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	return workspace.New(&stubBackend{}, &backend.WorkspacePayload{}, zap.NewNop())
}

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Hour)

	sess := store.Create(newStoreWorkspace(t))
	require.NotEmpty(t, sess.ID)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	sess := store.Create(newStoreWorkspace(t))
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(sess.ID)
	assert.False(t, ok, "idle sessions expire")
}

func TestSessionStoreTouchExtendsLife(t *testing.T) {
	store := NewSessionStore(50 * time.Millisecond)

	sess := store.Create(newStoreWorkspace(t))
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		got, ok := store.Get(sess.ID)
		require.True(t, ok)
		got.Do(func(*workspace.Workspace) {})
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore(time.Hour)

	sess := store.Create(newStoreWorkspace(t))
	store.Delete(sess.ID)

	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
}
