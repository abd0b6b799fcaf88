// Package server exposes the user service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/http/httperror"
	"go.inout.gg/foundations/must"

	"go.inout.gg/bastion"
	"go.inout.gg/bastion/bastionpasswordverifier"
	"go.inout.gg/bastion/bastionuser"
	"go.inout.gg/bastion/db/driver"
	"go.inout.gg/bastion/internal/config"
)

var d = debug.Debuglog("bastion/server") //nolint:gochecknoglobals

// Server serves the user HTTP API.
type Server struct {
	config *config.ApplicationConfig
	logger *slog.Logger
	driver driver.Driver

	jsonHandler  *bastionuser.HTTPHandler
	formHandler  *bastionuser.HTTPHandler
	errorHandler httperror.ErrorHandler

	apiDocument []byte
}

// New creates a new Server.
func New(logger *slog.Logger, cfg *config.ApplicationConfig, drv driver.Driver) *Server {
	debug.Assert(logger != nil, "logger must be set")
	debug.Assert(cfg != nil, "config must be set")
	debug.Assert(drv != nil, "driver must be set")

	httpConfig := bastionuser.NewHTTPConfig(
		bastionuser.WithConfig(bastionuser.NewConfig(
			bastionuser.WithLogger(logger),
			bastionuser.WithPasswordVerifier(newPasswordVerifier(cfg)),
		)),
	)

	return &Server{
		config:       cfg,
		logger:       logger,
		driver:       drv,
		jsonHandler:  bastionuser.NewJSONHandler(drv, httpConfig),
		formHandler:  bastionuser.NewFormHandler(drv, httpConfig),
		errorHandler: httperror.DefaultErrorHandler,
		apiDocument:  must.Must(openAPIDocument(cfg)),
	}
}

func newPasswordVerifier(cfg *config.ApplicationConfig) bastionpasswordverifier.PasswordVerifier {
	var requiredChars bastionpasswordverifier.PasswordRequiredChars
	must.Must1(requiredChars.Parse(cfg.PasswordRequiredChars))

	return bastionpasswordverifier.New(bastionpasswordverifier.NewConfig(
		bastionpasswordverifier.WithMinLength(cfg.PasswordMinLength),
		bastionpasswordverifier.WithRequiredChars(requiredChars),
	))
}

// Handler returns the root HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	base := s.config.BasePath()

	mux.Handle("GET /openapi.json", openAPIHandler(s.apiDocument))
	mux.Handle("GET "+base+"/health", healthHandler(s.driver, s.config))
	mux.HandleFunc("POST "+base+"/users", s.handleCreateUser)
	mux.HandleFunc("POST "+base+"/login", s.handleLogin)

	return chain(mux, requestLogger(s.logger), cors())
}

// Run serves HTTP requests until ctx is cancelled, then shuts the server
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              s.config.BindAddress(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	s.logger.InfoContext(ctx, "starting server", slog.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("bastion/server: failed to serve: %w", err)
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("bastion/server: failed to shut down: %w", err)
	}

	s.logger.Info("server stopped")

	return nil
}

// userHandler picks the request parser by the request content type.
func (s *Server) userHandler(r *http.Request) *bastionuser.HTTPHandler {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mediaType == "application/json" {
		return s.jsonHandler
	}

	return s.formHandler
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userHandler(r).HandleUserRegistration(r)
	if err != nil {
		s.errorHandler.ServeHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Public())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := s.userHandler(r).HandleUserLogin(r)
	if err != nil {
		s.errorHandler.ServeHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{User: user.Public()})
}

type loginResponse struct {
	User bastion.PublicUser `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		d("failed to write response: %v", err)
	}
}
