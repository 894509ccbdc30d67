// Package session holds the media state of each client: the uploaded asset,
// the configured filter plan and the latest processed asset.
//
// Sessions are keyed by an opaque id. Every operation on a session runs
// under that session's lock, and a second Apply while one is in flight is
// rejected with fault.KindStateConflict instead of queueing.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
	"github.com/cwbudde/algo-mms/internal/media"
)

const (
	opUpload    = "session.upload"
	opConfigure = "session.configure"
	opApply     = "session.apply"
	opStream    = "session.stream"
	opDelete    = "session.delete"
)

// DefaultID is used when a client does not name its session.
const DefaultID = "default"

// Processor validates filter lists and runs them over files.
type Processor interface {
	Plan(specs []effectchain.Spec) (*media.Plan, error)
	Run(ctx context.Context, plan *media.Plan, src, dst string) error
}

// Asset describes a stored media file.
type Asset struct {
	File string `json:"file"`
	Size int64  `json:"size"`
}

// Status is a snapshot of a session.
type Status struct {
	ID        string   `json:"id"`
	Uploaded  string   `json:"uploaded,omitempty"`
	Processed string   `json:"processed,omitempty"`
	Filters   []string `json:"filters"`
	Updated   string   `json:"updated,omitempty"`
}

type session struct {
	mu        sync.Mutex
	id        string
	uploaded  string
	processed string
	plan      *media.Plan
	updated   time.Time
}

// Store owns all sessions and their files.
type Store struct {
	mu           sync.Mutex
	sessions     map[string]*session
	uploadDir    string
	processedDir string
	proc         Processor
}

// NewStore creates the upload and output directories below dataDir.
func NewStore(dataDir string, proc Processor) (*Store, error) {
	s := &Store{
		sessions:     make(map[string]*session),
		uploadDir:    filepath.Join(dataDir, "uploads"),
		processedDir: filepath.Join(dataDir, "processed"),
		proc:         proc,
	}

	for _, dir := range []string{s.uploadDir, s.processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("session: create %s: %w", dir, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewStore",
		"data_dir": dataDir,
	}).Info("Session store ready")

	return s, nil
}

// get returns the session for id, creating it on first use.
func (s *Store) get(id string) *session {
	if id == "" {
		id = DefaultID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{id: id}
		s.sessions[id] = sess
	}

	return sess
}

// Upload stores r as the session's asset. name only supplies the file
// extension. A session holds at most one upload at a time.
func (s *Store) Upload(ctx context.Context, id, name string, r io.Reader) (Asset, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".mp4"
	}

	if !media.IsMedia("x" + ext) {
		return Asset{}, fault.InvalidParameter(opUpload, "unsupported file type %q", ext)
	}

	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.uploaded != "" {
		return Asset{}, fault.StateConflict(opUpload, "an asset is already uploaded, delete it first")
	}

	dst := filepath.Join(s.uploadDir, uuid.NewString()+ext)

	size, err := writeFile(ctx, dst, r)
	if err != nil {
		return Asset{}, fmt.Errorf("session: upload: %w", err)
	}

	sess.uploaded = dst
	sess.updated = time.Now()

	logrus.WithFields(logrus.Fields{
		"function": "Upload",
		"session":  sess.id,
		"file":     filepath.Base(dst),
		"size":     size,
	}).Info("Asset uploaded")

	return Asset{File: filepath.Base(dst), Size: size}, nil
}

// Configure validates specs and makes them the session's filter list. On
// error the previous list is kept.
func (s *Store) Configure(id string, specs []effectchain.Spec) (int, error) {
	plan, err := s.proc.Plan(specs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Configure",
			"session":  id,
			"error":    err.Error(),
		}).Warn("Rejected filter configuration")

		return 0, err
	}

	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.plan = plan
	sess.updated = time.Now()

	logrus.WithFields(logrus.Fields{
		"function": "Configure",
		"session":  sess.id,
		"filters":  len(specs),
	}).Info("Filters configured")

	return len(specs), nil
}

// Apply runs the configured filters over the uploaded asset. It fails with
// fault.KindStateConflict when nothing is uploaded, no filters are
// configured, or another operation holds the session.
func (s *Store) Apply(ctx context.Context, id string) (Asset, error) {
	sess := s.get(id)
	if !sess.mu.TryLock() {
		return Asset{}, fault.StateConflict(opApply, "session %q is busy", sess.id)
	}
	defer sess.mu.Unlock()

	if sess.uploaded == "" {
		return Asset{}, fault.StateConflict(opApply, "no asset uploaded")
	}

	if sess.plan == nil || sess.plan.Len() == 0 {
		return Asset{}, fault.StateConflict(opApply, "no filters configured")
	}

	ext := filepath.Ext(sess.uploaded)
	dst := filepath.Join(s.processedDir, "processed_"+uuid.NewString()+ext)

	err := s.proc.Run(ctx, sess.plan, sess.uploaded, dst)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Apply",
			"session":  sess.id,
			"kind":     fault.KindOf(err).String(),
			"error":    err.Error(),
		}).Error("Processing failed")

		return Asset{}, err
	}

	if sess.processed != "" {
		removeQuietly(sess.processed)
	}

	sess.processed = dst
	sess.updated = time.Now()

	info, err := os.Stat(dst)
	if err != nil {
		return Asset{}, fmt.Errorf("session: apply: %w", err)
	}

	return Asset{File: filepath.Base(dst), Size: info.Size()}, nil
}

// Stream opens the processed asset for reading. The caller closes it.
func (s *Store) Stream(id string) (*os.File, Asset, error) {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.processed == "" {
		return nil, Asset{}, fault.StateConflict(opStream, "nothing to stream, apply filters first")
	}

	f, err := os.Open(sess.processed)
	if err != nil {
		return nil, Asset{}, fmt.Errorf("session: stream: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, Asset{}, fmt.Errorf("session: stream: %w", err)
	}

	return f, Asset{File: filepath.Base(sess.processed), Size: info.Size()}, nil
}

// Delete removes the session's files and resets it.
func (s *Store) Delete(id string) error {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.uploaded == "" && sess.processed == "" {
		return fault.StateConflict(opDelete, "nothing to delete")
	}

	for _, p := range []string{sess.uploaded, sess.processed} {
		if p != "" {
			removeQuietly(p)
		}
	}

	sess.uploaded, sess.processed, sess.plan = "", "", nil
	sess.updated = time.Now()

	logrus.WithFields(logrus.Fields{
		"function": "Delete",
		"session":  sess.id,
	}).Info("Session reset")

	return nil
}

// Status reports the state of session id.
func (s *Store) Status(id string) Status {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	st := Status{ID: sess.id, Filters: []string{}}
	if sess.uploaded != "" {
		st.Uploaded = filepath.Base(sess.uploaded)
	}

	if sess.processed != "" {
		st.Processed = filepath.Base(sess.processed)
	}

	if sess.plan != nil {
		for _, spec := range sess.plan.Specs() {
			st.Filters = append(st.Filters, spec.ID)
		}
	}

	if !sess.updated.IsZero() {
		st.Updated = sess.updated.UTC().Format(time.RFC3339)
	}

	return st
}

func writeFile(ctx context.Context, path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(path)

		return 0, err
	}

	return n, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}

func removeQuietly(path string) {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		logrus.WithFields(logrus.Fields{
			"function": "removeQuietly",
			"path":     path,
			"error":    err.Error(),
		}).Warn("Failed to remove file")
	}
}
