// Package server exposes the session store over HTTP.
//
// Every request acts on the session named by the X-Session-ID header, or
// session.DefaultID when the header is absent. Errors are returned as
// {"kind": ..., "error": ...} with a status derived from the fault kind.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
	"github.com/cwbudde/algo-mms/internal/media"
	"github.com/cwbudde/algo-mms/internal/session"
)

// SessionHeader names the request header carrying the session id.
const SessionHeader = "X-Session-ID"

// DefaultMaxUpload bounds the size of an uploaded file.
const DefaultMaxUpload = 2 << 30

// Options configures a Server.
type Options struct {
	// StaticDir holds index.html and the /static assets. Empty disables them.
	StaticDir string
	// MaxUpload bounds uploads in bytes. Zero means DefaultMaxUpload.
	MaxUpload int64
	// Catalog lists audio filters on GET /filters. Nil means the default.
	Catalog *effectchain.Catalog
}

// Server routes HTTP requests to a session store.
type Server struct {
	store  *session.Store
	opts   Options
	router chi.Router
}

// New builds the router for store.
func New(store *session.Store, opts Options) *Server {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}

	s := &Server{store: store, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Post("/upload", s.handleUpload)
	r.Delete("/upload", s.handleDelete)
	r.Get("/filters", s.handleListFilters)
	r.Post("/filters", s.handleConfigure)
	r.Post("/apply", s.handleApply)
	r.Get("/stream", s.handleStream)
	r.Get("/status", s.handleStatus)

	if opts.StaticDir != "" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(opts.StaticDir, "index.html"))
		})
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"function": "ListenAndServe",
			"addr":     addr,
		}).Info("HTTP server listening")

		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}

	return session.DefaultID
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fault.Wrap(fault.KindInvalidParameter, "server.upload", err))
		return
	}
	defer file.Close()

	asset, err := s.store.Upload(r.Context(), sessionID(r), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(sessionID(r)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"filters": media.Describe(s.opts.Catalog)})
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var req filterList

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, fault.InvalidParameter("server.filters", "decode body: %v", err))
		return
	}

	n, err := s.store.Configure(sessionID(r), req.specs())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	asset, err := s.store.Apply(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	f, asset, err := s.store.Stream(sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType(asset.File))

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.ServeContent(w, r, asset.File, info.ModTime(), f)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Status(sessionID(r)))
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".flac":
		return "audio/flac"
	case ".ogg", ".opus":
		return "audio/ogg"
	case ".m4a", ".aac":
		return "audio/mp4"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".mov":
		return "video/quicktime"
	default:
		return "video/mp4"
	}
}
