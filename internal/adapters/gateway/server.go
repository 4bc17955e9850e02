package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/adapters/api"
	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
)

// Server is the HTTP surface sibling shards and players talk to
type Server struct {
	mediator    mediator.Mediator
	credentials auth.Credentials
	logger      common.Logger
	schemas     *bodySchemas
	mux         *http.ServeMux
}

// Option customises a Server
type Option func(*Server)

// WithMetrics serves h (usually the Prometheus handler) at path
func WithMetrics(path string, h http.Handler) Option {
	return func(s *Server) {
		s.mux.Handle("GET "+path, h)
	}
}

// NewServer builds the gateway routes over the mediator
func NewServer(m mediator.Mediator, credentials auth.Credentials, logger common.Logger, opts ...Option) (*Server, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("failed to compile body schemas: %w", err)
	}
	s := &Server{
		mediator:    m,
		credentials: credentials,
		logger:      logger,
		schemas:     schemas,
		mux:         http.NewServeMux(),
	}
	s.routes()
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.mux.HandleFunc("GET /users", s.listPlayers)
	s.mux.HandleFunc("GET /users/{playerId}", s.getPlayer)
	s.mux.HandleFunc("PUT /users/{playerId}", s.putPlayer)
	s.mux.HandleFunc("GET /users/{playerId}/units", s.listUnits)
	s.mux.HandleFunc("GET /users/{playerId}/units/{unitId}", s.getUnit)
	s.mux.HandleFunc("PUT /users/{playerId}/units/{unitId}", s.putUnit)
	s.mux.HandleFunc("GET /users/{playerId}/units/{unitId}/location", s.getUnitLocation)
	s.mux.HandleFunc("GET /users/{playerId}/buildings", s.listBuildings)
	s.mux.HandleFunc("GET /users/{playerId}/buildings/{buildingId}", s.getBuilding)
	s.mux.HandleFunc("GET /systems", s.listSystems)
	s.mux.HandleFunc("GET /systems/{name}", s.getSystem)
}

// ServeHTTP resolves the caller from Basic credentials, then dispatches
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, password, ok := r.BasicAuth()
	caller := s.credentials.ResolveRole(user, password, ok)
	ctx := auth.WithCaller(r.Context(), caller)
	if s.logger != nil {
		ctx = common.WithLogger(ctx, s.logger)
	}
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r.WithContext(ctx))

	if s.logger != nil {
		s.logger.Log("DEBUG", "HTTP request served", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"role":        caller.Role.String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}

// ListenAndServe serves on cfg.Address until ctx is cancelled, then shuts down
func (s *Server) ListenAndServe(ctx context.Context, cfg config.GatewayConfig) error {
	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}
	return s.Serve(ctx, listener, cfg)
}

// Serve serves on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener, cfg config.GatewayConfig) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("gateway shutdown: %w", err)
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error kind to its HTTP status. Errors without a kind are
// internal and their message is not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := shared.KindOf(err)
	status := api.StatusForKind(kind)
	body := api.ErrorBody{Kind: string(kind), Message: err.Error()}
	if kind == "" {
		body = api.ErrorBody{Kind: "internal", Message: "internal error"}
		if s.logger != nil {
			s.logger.Log("ERROR", "Request failed", map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"error":  err.Error(),
			})
		}
	}
	if kind == shared.KindUnauthenticated {
		w.Header().Set("WWW-Authenticate", `Basic realm="spaceshard"`)
	}
	writeJSON(w, status, body)
}
