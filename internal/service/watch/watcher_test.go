package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	w, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch(root))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Shutdown(context.Background())
	})
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return Change{}
	}
}

func TestWatcher_ReportsNewPhotos(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	photo := filepath.Join(root, "beach.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg"), 0644))

	c := waitChange(t, w)
	assert.Equal(t, root, c.Root)
	assert.Contains(t, c.Paths, photo)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	album := filepath.Join(root, "2024")
	require.NoError(t, os.Mkdir(album, 0755))
	waitChange(t, w)

	// give the loop a moment to register the new directory
	time.Sleep(100 * time.Millisecond)
	photo := filepath.Join(album, "dog.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg"), 0644))

	c := waitChange(t, w)
	assert.Contains(t, c.Paths, photo)
}

func TestWatcher_IgnoresIndexFiles(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".memory_index.db"), []byte("x"), 0644))

	select {
	case c := <-w.Changes():
		t.Fatalf("unexpected change: %v", c.Paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_WatchRejectsRemoteDrive(t *testing.T) {
	w, err := New(time.Second)
	require.NoError(t, err)
	defer w.Shutdown(context.Background())

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, w.Root())
	assert.NoError(t, w.Watch(""))
}

func TestMergePaths(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergePaths([]string{"c", "a"}, []string{"b", "a"}))
}
