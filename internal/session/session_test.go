package session

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
	"github.com/cwbudde/algo-mms/internal/media"
)

// fakeProcessor validates with the real catalogs and writes a marker file
// instead of running ffmpeg.
type fakeProcessor struct {
	mu      sync.Mutex
	runs    int
	block   chan struct{}
	started chan struct{}
	err     error
}

func (f *fakeProcessor) Plan(specs []effectchain.Spec) (*media.Plan, error) {
	return media.NewPlan(nil, specs)
}

func (f *fakeProcessor) Run(ctx context.Context, plan *media.Plan, src, dst string) error {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if f.err != nil {
		return f.err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, append([]byte("processed:"), data...), 0o644)
}

func newTestStore(t *testing.T, proc *fakeProcessor) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir, proc)
	require.NoError(t, err)

	return store, dir
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	return len(entries)
}

func TestStoreFullFlow(t *testing.T) {
	store, dir := newTestStore(t, &fakeProcessor{})
	ctx := context.Background()

	asset, err := store.Upload(ctx, "a", "clip.mp4", strings.NewReader("video-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("video-bytes")), asset.Size)
	assert.True(t, strings.HasSuffix(asset.File, ".mp4"))

	n, err := store.Configure("a", []effectchain.Spec{{ID: "grayscale"}, {ID: "gainCompressor"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out, err := store.Apply(ctx, "a")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.File, "processed_"))

	f, streamed, err := store.Stream("a")
	require.NoError(t, err)

	body, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "processed:video-bytes", string(body))
	assert.Equal(t, out.File, streamed.File)

	st := store.Status("a")
	assert.Equal(t, asset.File, st.Uploaded)
	assert.Equal(t, out.File, st.Processed)
	assert.Equal(t, []string{"grayscale", "gainCompressor"}, st.Filters)

	require.NoError(t, store.Delete("a"))
	assert.Zero(t, countFiles(t, filepath.Join(dir, "uploads")))
	assert.Zero(t, countFiles(t, filepath.Join(dir, "processed")))

	st = store.Status("a")
	assert.Empty(t, st.Uploaded)
	assert.Empty(t, st.Filters)
}

func TestStoreStateConflicts(t *testing.T) {
	store, _ := newTestStore(t, &fakeProcessor{})
	ctx := context.Background()

	_, err := store.Apply(ctx, "s")
	assert.ErrorIs(t, err, fault.ErrStateConflict, "apply without upload")

	_, _, err = store.Stream("s")
	assert.ErrorIs(t, err, fault.ErrStateConflict, "stream before apply")

	assert.ErrorIs(t, store.Delete("s"), fault.ErrStateConflict, "delete on empty session")

	_, err = store.Upload(ctx, "s", "a.mp4", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = store.Upload(ctx, "s", "b.mp4", strings.NewReader("y"))
	assert.ErrorIs(t, err, fault.ErrStateConflict, "second upload")

	_, err = store.Apply(ctx, "s")
	assert.ErrorIs(t, err, fault.ErrStateConflict, "apply without filters")

	_, err = store.Configure("s", nil)
	require.NoError(t, err)

	_, err = store.Apply(ctx, "s")
	assert.ErrorIs(t, err, fault.ErrStateConflict, "apply with empty filter list")
}

func TestStoreUnknownFilterLeavesConfigUnset(t *testing.T) {
	store, _ := newTestStore(t, &fakeProcessor{})

	_, err := store.Configure("s", []effectchain.Spec{{ID: "fooBar"}})
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)
	assert.Empty(t, store.Status("s").Filters)

	_, err = store.Configure("s", []effectchain.Spec{{ID: "car"}})
	require.NoError(t, err)

	_, err = store.Configure("s", []effectchain.Spec{{ID: "car"}, {ID: "fooBar"}})
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)
	assert.Equal(t, []string{"car"}, store.Status("s").Filters)
}

func TestStoreRejectsConcurrentApply(t *testing.T) {
	proc := &fakeProcessor{block: make(chan struct{}), started: make(chan struct{}, 1)}
	store, _ := newTestStore(t, proc)
	ctx := context.Background()

	_, err := store.Upload(ctx, "s", "a.mp4", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = store.Configure("s", []effectchain.Spec{{ID: "car"}})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := store.Apply(ctx, "s")
		done <- err
	}()

	select {
	case <-proc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first apply did not start")
	}

	_, err = store.Apply(ctx, "s")
	assert.ErrorIs(t, err, fault.ErrStateConflict)

	// Other sessions are unaffected.
	_, err = store.Apply(ctx, "other")
	assert.ErrorIs(t, err, fault.ErrStateConflict)
	assert.Contains(t, err.Error(), "no asset uploaded")

	close(proc.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, proc.runs)
}

func TestStoreApplyFailureKeepsPreviousOutput(t *testing.T) {
	proc := &fakeProcessor{}
	store, dir := newTestStore(t, proc)
	ctx := context.Background()

	_, err := store.Upload(ctx, "s", "a.wav", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = store.Configure("s", []effectchain.Spec{{ID: "phone"}})
	require.NoError(t, err)

	first, err := store.Apply(ctx, "s")
	require.NoError(t, err)

	proc.err = fault.FilterDesign("design.butterworth", "band edges must satisfy 0 < low < high < nyquist")

	_, err = store.Apply(ctx, "s")
	assert.True(t, errors.Is(err, fault.ErrFilterDesign))
	assert.Equal(t, first.File, store.Status("s").Processed)

	proc.err = nil

	second, err := store.Apply(ctx, "s")
	require.NoError(t, err)
	assert.NotEqual(t, first.File, second.File)
	assert.Equal(t, 1, countFiles(t, filepath.Join(dir, "processed")))
}

func TestStoreUploadRejectsUnknownType(t *testing.T) {
	store, _ := newTestStore(t, &fakeProcessor{})

	_, err := store.Upload(context.Background(), "s", "notes.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)
}

func TestStoreUploadCancelled(t *testing.T) {
	store, dir := newTestStore(t, &fakeProcessor{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, "s", "a.mp4", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, countFiles(t, filepath.Join(dir, "uploads")))
	assert.Empty(t, store.Status("s").Uploaded)
}
