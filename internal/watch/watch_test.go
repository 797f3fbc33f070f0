package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	fired, trigger, stop := newDebouncer(30 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-fired:
		t.Fatal("debouncer fired twice for one burst")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")

	require.True(t, relevant(target, fsnotify.Event{Name: target, Op: fsnotify.Write}))
	require.True(t, relevant(target, fsnotify.Event{Name: target, Op: fsnotify.Create}))
	require.False(t, relevant(target, fsnotify.Event{Name: target, Op: fsnotify.Chmod}))
	require.False(t, relevant(target, fsnotify.Event{Name: filepath.Join(dir, "other.md"), Op: fsnotify.Write}))
	require.False(t, relevant(target, fsnotify.Event{Name: target + ".swp", Op: fsnotify.Write}))
}

func TestIsTempName(t *testing.T) {
	for _, name := range []string{"a.md~", ".a.md.swp", "a.swx", ".#a.md"} {
		require.True(t, isTempName(name), name)
	}
	require.False(t, isTempName("a.md"))
}

func TestFile_RunsOnChangeAndStops(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(target, []byte("# a"), 0o600))

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, target, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)),
			func(context.Context) error {
				calls.Add(1)
				return nil
			})
	}()

	// The watcher may not be registered yet when the first write lands.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(target, []byte("# b"), 0o600)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestFile_CallbackErrorIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = File(ctx, target, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)),
			func(context.Context) error {
				calls.Add(1)
				return io.ErrUnexpectedEOF
			})
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(target, []byte("y"), 0o600)
		return calls.Load() >= 2
	}, 5*time.Second, 100*time.Millisecond)
}

func TestFile_MissingDirectory(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "nope", "doc.md"), 0, nil,
		func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestFile_SeesReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = File(ctx, target, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)),
			func(context.Context) error {
				calls.Add(1)
				return nil
			})
	}()

	tmp := filepath.Join(dir, "doc.md.tmp")
	require.Eventually(t, func() bool {
		if err := os.WriteFile(tmp, []byte("v2"), 0o600); err != nil {
			return false
		}
		_ = os.Rename(tmp, target)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)
}
