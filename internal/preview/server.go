package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// Server is the local preview server.
type Server struct {
	cfg      *config.Config
	svc      build.BuildService
	registry *prom.Registry
	status   buildStatus

	buildMu sync.Mutex
}

// New creates a preview server. The build service reports to a Prometheus
// registry that is served on /metrics.
func New(cfg *config.Config) *Server {
	reg := prom.NewRegistry()
	svc := build.NewBuildService().WithRecorder(metrics.NewPrometheusRecorder(reg))
	return &Server{cfg: cfg, svc: svc, registry: reg}
}

// WithBuildService replaces the build service (for testing).
func (s *Server) WithBuildService(svc build.BuildService) *Server {
	if svc != nil {
		s.svc = svc
	}
	return s
}

// Rebuild runs one build. Page generation is skipped when force is false and
// the content fingerprint matches the last successful build.
func (s *Server) Rebuild(ctx context.Context, force bool) (*build.BuildResult, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	req := build.BuildRequest{Config: s.cfg}
	if !force {
		_, fp, _ := s.status.getStatus()
		req.Options.SkipIfFingerprint = fp
	}

	result, err := s.svc.Run(ctx, req)
	if err != nil {
		s.status.setError(err)
		return result, err
	}
	s.status.setSuccess(result.Fingerprint)
	return result, nil
}

// Handler serves the output directory, /metrics and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/", s.siteHandler(http.FileServer(http.Dir(s.cfg.Output.Directory))))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	good, _, err := s.status.getStatus()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "last build failed: %v\n", err)
		return
	}
	if !good {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintln(w, "no build yet")
		return
	}
	_, _ = fmt.Fprintln(w, "ok")
}

// siteHandler serves the generated site, or the last build error while no
// build has succeeded yet.
func (s *Server) siteHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if good, _, err := s.status.getStatus(); err != nil && !good {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "build failed: %v\n", err)
			return
		}
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/main/overview.html", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run builds the site, serves it and rebuilds on change until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.Rebuild(ctx, true); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}
	if err := ensureOutputDir(s.cfg.Output.Directory); err != nil {
		return ferrors.FileSystemError("cannot create output directory").WithCause(err).Build()
	}

	addr := net.JoinHostPort("", strconv.Itoa(s.cfg.Preview.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return ferrors.RuntimeError("cannot listen for preview server").
			WithCause(err).
			WithContext("addr", addr).
			Build()
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Preview server listening",
		slog.String("url", fmt.Sprintf("http://localhost:%d/", s.cfg.Preview.Port)),
		logfields.Output(s.cfg.Output.Directory))

	watcher, err := newWatcher(s.cfg.Posts.Directory, s.cfg.Templates.Directory)
	if err != nil {
		s.shutdown(srv)
		return ferrors.RuntimeError("cannot watch for changes").WithCause(err).Build()
	}
	defer func() { _ = watcher.Close() }()

	deb := newDebouncer(s.cfg.Preview.Debounce)
	defer deb.Stop()

	scheduler, err := s.startScheduler(deb)
	if err != nil {
		s.shutdown(srv)
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.rebuildWorker(ctx, deb.C)
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down preview server...")
			s.shutdown(srv)
			wg.Wait()
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				s.shutdown(srv)
				wg.Wait()
				return nil
			}
			if handleFileEvent(watcher, ev) {
				deb.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				continue
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildWorker runs one rebuild per request until ctx is done.
func (s *Server) rebuildWorker(ctx context.Context, requests <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-requests:
			slog.Info("Change detected; rebuilding site")
			result, err := s.Rebuild(ctx, false)
			switch {
			case err != nil:
				slog.Warn("Rebuild failed", logfields.Error(err))
			case result.Status == build.BuildStatusSkipped:
				slog.Debug("Rebuild skipped, content unchanged")
			}
		}
	}
}

// startScheduler schedules periodic rebuild requests when an interval is set.
func (s *Server) startScheduler(deb *debouncer) (gocron.Scheduler, error) {
	interval := s.cfg.Preview.RebuildInterval
	if interval <= 0 {
		return nil, nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.RuntimeError("failed to create scheduler").WithCause(err).Build()
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(deb.fire),
		gocron.WithName("preview-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = sched.Shutdown()
		return nil, ferrors.RuntimeError("failed to schedule periodic rebuild").WithCause(err).Build()
	}
	sched.Start()
	slog.Info("Periodic rebuild scheduled", logfields.Duration(interval))
	return sched, nil
}

func (s *Server) shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
}

// ensureOutputDir makes sure the file server has a directory to serve.
func ensureOutputDir(dir string) error {
	return os.MkdirAll(dir, 0o750)
}
