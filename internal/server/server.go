// Package server exposes the chore board as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"

	"choreboard/internal/service"
)

type Options struct {
	Tasks         *service.TaskService
	Users         *service.UserService
	Notifications *service.NotificationService

	UploadDir       string
	PublicUploadURL string
	MaxUploadSize   int64
	CORSOrigin      string

	// expose internal error messages in 500 responses
	Debug bool

	// login attempts per client; zero value means 10 per minute with a burst of 9
	LoginQuota throttled.RateQuota
	LimitStore throttled.GCRAStore

	Logger zerolog.Logger
}

type Server struct {
	tasks         *service.TaskService
	users         *service.UserService
	notifications *service.NotificationService

	uploadDir       string
	publicUploadURL string
	maxUploadSize   int64
	corsOrigin      string
	debug           bool

	loginLimiter throttled.RateLimiter
	logger       zerolog.Logger
}

func New(opts Options) (*Server, error) {
	store := opts.LimitStore
	if store == nil {
		var err error
		store, err = memstore.New(65536)
		if err != nil {
			return nil, err
		}
	}

	quota := opts.LoginQuota
	if quota.MaxRate == (throttled.Rate{}) {
		quota = throttled.RateQuota{MaxRate: throttled.PerMin(10), MaxBurst: 9}
	}

	limiter, err := throttled.NewGCRARateLimiter(store, quota)
	if err != nil {
		return nil, err
	}

	maxUpload := opts.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}

	publicURL := opts.PublicUploadURL
	if publicURL == "" {
		publicURL = "/uploads"
	}

	return &Server{
		tasks:           opts.Tasks,
		users:           opts.Users,
		notifications:   opts.Notifications,
		uploadDir:       opts.UploadDir,
		publicUploadURL: publicURL,
		maxUploadSize:   maxUpload,
		corsOrigin:      opts.CORSOrigin,
		debug:           opts.Debug,
		loginLimiter:    limiter,
		logger:          opts.Logger,
	}, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Info().Msg("http server stopped")
	return nil
}
