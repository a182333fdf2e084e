package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mrCamelCode/potami/core/logger"
)

// Server wraps http.Server with lifecycle management: a blocking Start,
// a graceful Stop bounded by a configurable timeout, and an errgroup-ready
// Run closure that coordinates the two. Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	server         *http.Server
	log            *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	running        bool
}

// New creates a Server listening on addr once started. Defaults: 15s
// read/write timeouts, 60s idle timeout, 30s graceful shutdown, 1MB
// header cap, discard logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start serves handler and blocks until the listener fails or ctx is
// canceled. Cancellation makes Start return ctx.Err() without closing the
// listener; pair it with Stop, or use Run which coordinates both.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.running = true

	s.server = &http.Server{
		Addr:           s.addr,
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}

	srv := s.server
	log := s.log
	addr := s.addr
	useTLS := s.tlsConfig != nil
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting http server",
			logger.Component("server"),
			slog.String("addr", addr),
			slog.Bool("tls", useTLS),
		)

		var err error
		if useTLS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}

		// ErrServerClosed is the normal outcome of Stop.
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// up to the configured shutdown timeout or until ctx is canceled,
// whichever comes first. Calling Stop on a server that is not running is
// a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.log.InfoContext(ctx, "shutting down http server",
		logger.Component("server"),
		logger.Duration(s.shutdown),
	)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdown)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.running = false

	if err != nil {
		s.log.ErrorContext(ctx, "http server shutdown failed",
			logger.Component("server"),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrShutdownFailed, err)
	}

	s.log.InfoContext(ctx, "http server stopped", logger.Component("server"))
	return nil
}

// Run returns a function suitable for errgroup.Group.Go: it starts the
// server, waits for ctx cancellation, and stops gracefully. A clean
// shutdown reports nil; a failed drain reports ErrShutdownFailed.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, handler)
		}()

		select {
		case <-ctx.Done():
			stopErr := s.Stop(context.Background())
			<-errCh
			return stopErr
		case err := <-errCh:
			// Start may observe the cancellation before we do. Stop still
			// owns closing the listener in that case.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.Stop(context.Background())
			}
			return err
		}
	}
}

// Run creates a server with default settings, serves handler until ctx is
// canceled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	return New(addr).Run(ctx, handler)()
}
