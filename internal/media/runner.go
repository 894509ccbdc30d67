package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/fault"
)

const opFFmpeg = "media.ffmpeg"

// Runner executes one ffmpeg invocation.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// FFmpeg runs the ffmpeg binary at Path. Each invocation is bounded by
// Timeout when positive; stderr of a failed run is returned as a
// fault.KindExternalProcess error truncated to DiagnosticLimit runes.
type FFmpeg struct {
	Path            string
	Timeout         time.Duration
	DiagnosticLimit int
}

// NewFFmpeg returns a runner for the binary at path.
func NewFFmpeg(path string, timeout time.Duration, diagnosticLimit int) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}

	return &FFmpeg{Path: path, Timeout: timeout, DiagnosticLimit: diagnosticLimit}
}

// Command builds the exec.Cmd for args. Output files are always
// overwritten.
func (f *FFmpeg) Command(ctx context.Context, args ...string) *exec.Cmd {
	full := append([]string{"-hide_banner", "-nostdin", "-loglevel", "error", "-y"}, args...)

	cmd := exec.CommandContext(ctx, f.Path, full...)
	cmd.WaitDelay = time.Second

	return cmd
}

// Run executes ffmpeg with args and waits for it to exit.
func (f *FFmpeg) Run(ctx context.Context, args ...string) error {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)

		defer cancel()
	}

	cmd := f.Command(ctx, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()

	logrus.WithFields(logrus.Fields{
		"function": "FFmpeg.Run",
		"args":     strings.Join(args, " "),
	}).Debug("Starting ffmpeg")

	err := cmd.Run()
	if err == nil {
		logrus.WithFields(logrus.Fields{
			"function": "FFmpeg.Run",
			"elapsed":  time.Since(start).String(),
		}).Debug("ffmpeg finished")

		return nil
	}

	diagnostic := strings.TrimSpace(stderr.String())

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		diagnostic = fmt.Sprintf("timed out after %s: %s", f.Timeout, diagnostic)
	case errors.Is(err, exec.ErrNotFound):
		diagnostic = fmt.Sprintf("ffmpeg binary %q not found", f.Path)
	case diagnostic == "":
		diagnostic = err.Error()
	}

	logrus.WithFields(logrus.Fields{
		"function": "FFmpeg.Run",
		"error":    err.Error(),
	}).Warn("ffmpeg failed")

	return fault.ExternalProcess(opFFmpeg, diagnostic, f.DiagnosticLimit, err)
}
