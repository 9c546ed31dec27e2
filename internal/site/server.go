package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/iodoc/internal/iotable"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is how long the dev server waits after the last trace
// change before rebuilding.
const DefaultDebounce = 100 * time.Millisecond

// ServerConfig configures the dev server.
type ServerConfig struct {
	Port     int
	Watch    bool
	Debounce time.Duration
	Logger   *slog.Logger
}

// Server serves a built site and rebuilds it when traces change.
type Server struct {
	gen      *Generator
	port     int
	watch    bool
	debounce time.Duration
	logger   *slog.Logger
	reloads  *reloads

	mu   sync.Mutex
	last *Manifest
}

// NewServer creates a Server for the site built by gen.
func NewServer(gen *Generator, cfg ServerConfig) *Server {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		gen:      gen,
		port:     cfg.Port,
		watch:    cfg.Watch,
		debounce: cfg.Debounce,
		logger:   logger,
		reloads:  newReloads(),
	}
}

// Rebuild builds the site and tells connected browsers to reload.
// Rebuilds never overlap.
func (s *Server) Rebuild() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.gen.Build()
	if err != nil {
		return nil, err
	}
	s.last = m
	s.reloads.broadcast()
	return m, nil
}

// Manifest returns the manifest of the last successful build.
func (s *Server) Manifest() *Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Handler returns the HTTP handler serving the output directory.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.NoCache,
	)

	r.Get("/__reload", s.handleReload)
	r.Handle("/*", http.FileServer(http.Dir(s.gen.OutputDir())))
	return r
}

// Serve builds the site and serves it until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if _, err := s.Rebuild(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		watcher, err := s.newWatcher()
		if err != nil {
			return err
		}
		eg.Go(func() error {
			defer func() { _ = watcher.Close() }()
			s.watchLoop(egctx, watcher)
			return nil
		})
	}

	eg.Go(func() error {
		s.logger.Info("serving documentation", "addr", fmt.Sprintf("http://localhost:%d", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dev server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// newWatcher watches the examples directory and the directory holding the
// index file.
func (s *Server) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs := []string{
		examplesDir(s.gen.cfg.Driver),
		filepath.Dir(s.gen.cfg.Driver.IndexFile),
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			s.logger.Warn("failed to watch directory", "dir", dir, "error", err)
		}
	}
	return watcher, nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !s.isInput(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(s.debounce, func() {
				s.logger.Debug("input changed, rebuilding", "file", name)
				if _, err := s.Rebuild(); err != nil {
					s.logger.Error("rebuild failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// isInput reports whether path is a trace file or the index file.
func (s *Server) isInput(path string) bool {
	if sameFile(path, s.gen.cfg.Driver.IndexFile) {
		return true
	}
	if !sameFile(filepath.Dir(path), examplesDir(s.gen.cfg.Driver)) {
		return false
	}
	for _, suffix := range []string{iotable.BeforeSuffix, iotable.AfterSuffix, iotable.ReturnSuffix} {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// handleReload streams a server-sent event after every rebuild.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Connection", "keep-alive")

	ch, unsubscribe := s.reloads.subscribe()
	defer unsubscribe()

	_, _ = fmt.Fprint(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			_, _ = fmt.Fprint(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

// requestLogger logs each request through logger once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func examplesDir(opts iotable.Options) string {
	if opts.ExamplesDir == "" {
		return iotable.DefaultExamplesDir
	}
	return opts.ExamplesDir
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
