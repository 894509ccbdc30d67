package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
	"github.com/cwbudde/algo-mms/internal/media"
)

type copyRunner struct {
	mu   sync.Mutex
	srcs []string
	fail string
}

func (r *copyRunner) Run(_ context.Context, _ *media.Plan, src, dst string) error {
	r.mu.Lock()
	r.srcs = append(r.srcs, filepath.Base(src))
	r.mu.Unlock()

	if filepath.Base(src) == r.fail {
		return fault.ExternalProcess("media.ffmpeg", "invalid data found", 0, errors.New("exit status 1"))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o644)
}

func testPlan(t *testing.T) *media.Plan {
	t.Helper()

	plan, err := media.NewPlan(nil, []effectchain.Spec{{ID: "car"}})
	require.NoError(t, err)

	return plan
}

func startWatcher(t *testing.T, w *Watcher) (results <-chan Result, stop func()) {
	t.Helper()

	ch := make(chan Result, 8)
	w.OnResult = func(r Result) { ch <- r }
	w.Settle = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)

	go func() { errc <- w.Run(ctx) }()

	// Give the watcher time to register before files appear.
	time.Sleep(100 * time.Millisecond)

	return ch, func() {
		cancel()
		require.NoError(t, <-errc)
	}
}

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()

	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no result")
		return Result{}
	}
}

func TestWatcherProcessesNewMedia(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	runner := &copyRunner{}

	results, stop := startWatcher(t, &Watcher{Dir: in, OutDir: out, Plan: testPlan(t), Runner: runner})
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "take1.wav"), []byte("pcm"), 0o644))

	res := waitResult(t, results)
	require.NoError(t, res.Err)
	assert.Equal(t, filepath.Join(out, "take1_processed.wav"), res.Dst)

	data, err := os.ReadFile(res.Dst)
	require.NoError(t, err)
	assert.Equal(t, "pcm", string(data))

	runner.mu.Lock()
	assert.Equal(t, []string{"take1.wav"}, runner.srcs)
	runner.mu.Unlock()
}

func TestWatcherReportsFailures(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	runner := &copyRunner{fail: "broken.mp4"}

	results, stop := startWatcher(t, &Watcher{Dir: in, OutDir: out, Plan: testPlan(t), Runner: runner, Workers: 2})
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.mp4"), []byte("x"), 0o644))

	res := waitResult(t, results)
	assert.ErrorIs(t, res.Err, fault.ErrExternalProcess)
}

func TestWatcherRejectsBadSetup(t *testing.T) {
	dir := t.TempDir()

	err := (&Watcher{Dir: dir, OutDir: dir, Plan: testPlan(t), Runner: &copyRunner{}}).Run(context.Background())
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)

	empty, err := media.NewPlan(nil, nil)
	require.NoError(t, err)

	err = (&Watcher{Dir: dir, OutDir: t.TempDir(), Plan: empty, Runner: &copyRunner{}}).Run(context.Background())
	assert.ErrorIs(t, err, fault.ErrStateConflict)

	err = (&Watcher{Dir: filepath.Join(dir, "missing"), OutDir: t.TempDir(), Plan: testPlan(t), Runner: &copyRunner{}}).Run(context.Background())
	assert.Error(t, err)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "clip_processed.mp4", OutputName("/in/clip.mp4"))
	assert.Equal(t, "a.b_processed.wav", OutputName("a.b.wav"))
}
