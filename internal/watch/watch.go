// Package watch processes media files dropped into a directory.
//
// New files are picked up from fsnotify Create and Write events once they
// have been quiet for the settle interval, queued, and run through a fixed
// filter plan by a small worker pool. Results land in a separate output
// directory as <name>_processed<ext>.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/fault"
	"github.com/cwbudde/algo-mms/internal/media"
)

// DefaultSettle is how long a file must see no events before it is queued.
const DefaultSettle = 500 * time.Millisecond

const queueSize = 64

// Runner runs a plan from src to dst. *media.Processor implements it.
type Runner interface {
	Run(ctx context.Context, plan *media.Plan, src, dst string) error
}

// Result reports one processed file.
type Result struct {
	Src     string
	Dst     string
	Elapsed time.Duration
	Err     error
}

// Watcher watches Dir and writes processed files to OutDir.
type Watcher struct {
	Dir    string
	OutDir string
	Plan   *media.Plan
	Runner Runner
	// Workers is the number of files processed concurrently. Zero means one.
	Workers int
	// Settle is the quiet period before a file is queued. Zero means
	// DefaultSettle.
	Settle time.Duration
	// OnResult, if set, is called from the worker after each file.
	OnResult func(Result)
}

// OutputName returns the name a processed copy of src is written under.
func OutputName(src string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)

	return strings.TrimSuffix(base, ext) + "_processed" + ext
}

func (w *Watcher) validate() error {
	if w.Plan == nil || w.Plan.Len() == 0 {
		return fault.StateConflict("watch.run", "no filters configured")
	}

	if w.Runner == nil {
		return fault.InvalidParameter("watch.run", "runner must not be nil")
	}

	in, err := filepath.Abs(w.Dir)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	out, err := filepath.Abs(w.OutDir)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if in == out {
		return fault.InvalidParameter("watch.run", "output directory must differ from the watched directory %q", w.Dir)
	}

	return nil
}

// Run watches until ctx is cancelled. Files being processed when ctx ends
// see the cancellation through the runner.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return fmt.Errorf("watch: create %s: %w", w.OutDir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.Dir, err)
	}

	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}

	workers := max(w.Workers, 1)

	jobs := make(chan string, queueSize)
	ready := make(chan string)
	done := make(chan struct{})
	pending := make(map[string]*time.Timer)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for src := range jobs {
				w.process(ctx, src)
			}
		}()
	}

	defer func() {
		close(done)

		for _, t := range pending {
			t.Stop()
		}

		close(jobs)
		wg.Wait()
	}()

	logrus.WithFields(logrus.Fields{
		"function": "Run",
		"dir":      w.Dir,
		"out_dir":  w.OutDir,
		"workers":  workers,
		"filters":  w.Plan.Len(),
	}).Info("Watching directory")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}

			if !media.IsMedia(ev.Name) {
				continue
			}

			if t, ok := pending[ev.Name]; ok {
				t.Reset(settle)
				continue
			}

			name := ev.Name
			pending[name] = time.AfterFunc(settle, func() {
				select {
				case ready <- name:
				case <-done:
				}
			})

		case name := <-ready:
			// A timer reset after it fired delivers twice.
			if _, ok := pending[name]; !ok {
				continue
			}

			delete(pending, name)

			select {
			case jobs <- name:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			logrus.WithFields(logrus.Fields{
				"function": "Run",
				"error":    err.Error(),
			}).Warn("Watcher error")
		}
	}
}

func (w *Watcher) process(ctx context.Context, src string) {
	res := Result{Src: src, Dst: filepath.Join(w.OutDir, OutputName(src))}
	start := time.Now()

	res.Err = w.Runner.Run(ctx, w.Plan, src, res.Dst)
	res.Elapsed = time.Since(start)

	entry := logrus.WithFields(logrus.Fields{
		"function": "process",
		"src":      filepath.Base(src),
		"dst":      filepath.Base(res.Dst),
		"elapsed":  res.Elapsed,
	})
	if res.Err != nil {
		entry.WithFields(logrus.Fields{
			"kind":  fault.KindOf(res.Err).String(),
			"error": res.Err.Error(),
		}).Error("Processing failed")
	} else {
		entry.Info("File processed")
	}

	if w.OnResult != nil {
		w.OnResult(res)
	}
}
