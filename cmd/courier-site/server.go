package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/titancargo/courier-site/internal/shell/api"
	"github.com/titancargo/courier-site/internal/shell/content"
	"github.com/titancargo/courier-site/internal/shell/mail"
	"github.com/titancargo/courier-site/internal/shell/site"
	"github.com/titancargo/courier-site/internal/shell/store"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatabaseError   = 2
	ExitContentError    = 3
	ExitHTTPServerError = 4
	ExitSMTPError       = 5
)

// =============================================================================
// Server
// =============================================================================

// Server runs the courier site: HTML pages, the JSON API and the contact
// relay on one listener.
type Server struct {
	config     *Config
	httpServer *http.Server
	store      store.Store // nil when pages come from a content file
	logger     *slog.Logger
}

// NewServer wires the content source, the mail sender and the routers.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	mailCfg, err := cfg.SMTP.MailConfig()
	if err != nil {
		return nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitConfigError}
	}

	source, s, err := openContentSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	pages := content.NewProvider(source, logger.With("component", "content"))

	siteHandler, err := site.NewHandler(site.Config{
		Pages:   pages,
		BaseURL: cfg.Site.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		if s != nil {
			s.Close()
		}
		return nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitContentError}
	}

	handler := api.SetupAPI(api.APIConfig{
		Pages:             pages,
		Sender:            mail.NewSMTPSender(mailCfg, logger),
		Mail:              mailCfg,
		Logger:            logger,
		ContactRecipients: cfg.Contact.Recipients,
		Site:              siteHandler.Routes(),
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		store:      s,
		logger:     logger,
	}, nil
}

// openContentSource picks the content file when one is configured, the
// store otherwise. The returned store is nil for a file source.
func openContentSource(cfg *Config, logger *slog.Logger) (content.Source, store.Store, error) {
	if cfg.Site.ContentFile != "" {
		if _, err := content.LoadFile(cfg.Site.ContentFile); err != nil {
			return nil, nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitContentError}
		}
		logger.Info("serving content file", "path", cfg.Site.ContentFile)
		return content.FileSource{Path: cfg.Site.ContentFile}, nil, nil
	}

	s, err := openStore(cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("serving content store",
		"dsn", cfg.Database.DSN,
		"landing_page_id", cfg.Site.LandingPageID,
	)
	return content.StoreSource{Store: s, ID: cfg.Site.LandingPageID}, s, nil
}

// openStore opens the sqlite content store. Network DSNs such as a
// postgres:// DATABASE_URL are rejected up front.
func openStore(dsn string) (*store.SQLiteStore, error) {
	if err := checkDSN(dsn); err != nil {
		return nil, &ServerError{Op: "openStore", Err: err, ExitCode: ExitConfigError}
	}
	s, err := store.NewSQLiteStore(dsn)
	if err != nil {
		return nil, &ServerError{Op: "openStore", Err: err, ExitCode: ExitDatabaseError}
	}
	return s, nil
}

func checkDSN(dsn string) error {
	if dsn == "" {
		return errors.New("database.dsn is empty")
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return nil // plain file path
	}
	// Single letter schemes are Windows drive letters.
	if len(u.Scheme) > 1 && u.Scheme != "file" {
		return fmt.Errorf("database.dsn: unsupported scheme %q, expected a sqlite file path or file: URI", u.Scheme)
	}
	return nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Server.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		s.closeStore()
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}
	s.closeStore()

	s.logger.Info("shutdown complete")
	return nil
}

func (s *Server) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("database close error", "error", err)
	}
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
