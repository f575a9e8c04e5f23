// Package server exposes the layout engine as a stateless JSON API.
//
// Every request builds its own engine from the configuration it carries, so
// concurrent requests never share layout state.
//
//	POST /v1/geometry    {"config": {...}}                         -> geometry
//	POST /v1/validate    {"config": {...}}                         -> validation result
//	POST /v1/distribute  {"config": {...}, "units": [...], "policy": "strict"} -> distribution
//
// Failures return {"error": {...}, "request_id": "..."} with the structured
// error body and a status derived from its code.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/compactsheet/pkg/block"
	"github.com/matzehuels/compactsheet/pkg/config"
	"github.com/matzehuels/compactsheet/pkg/distribute"
	"github.com/matzehuels/compactsheet/pkg/engine"
	"github.com/matzehuels/compactsheet/pkg/errors"
	"github.com/matzehuels/compactsheet/pkg/observability"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 4 << 20

	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

// Server handles layout requests.
type Server struct {
	logger *log.Logger
	hooks  observability.LayoutHooks
}

// New returns a server logging to logger. Hooks, if non-nil, are attached
// to every per-request engine.
func New(logger *log.Logger, hooks observability.LayoutHooks) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{logger: logger, hooks: observability.OrNoop(hooks)}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/geometry", s.handleGeometry)
		r.Post("/validate", s.handleValidate)
		r.Post("/distribute", s.handleDistribute)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

type configRequest struct {
	Config config.Partial `json:"config"`
}

type distributeRequest struct {
	Config config.Partial `json:"config"`
	Units  []block.Unit   `json:"units"`
	Policy string         `json:"policy,omitempty"`
}

type validateResponse struct {
	config.ValidationResult
	Suggestions []string      `json:"suggestions"`
	Config      config.Config `json:"config"`
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	eng, err := s.newEngine(r, req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, eng.CalculateLayout())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c := config.ApplyDefaults(req.Config)
	res := config.Validate(c)
	suggestions := res.Suggestions()
	if suggestions == nil {
		suggestions = []string{}
	}
	s.writeJSON(w, r, http.StatusOK, validateResponse{ValidationResult: res, Suggestions: suggestions, Config: c})
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	policy, ok := distribute.ParsePolicy(req.Policy)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown policy %q", req.Policy).
			Suggest("use \"lenient\" or \"strict\""))
		return
	}

	eng, err := s.newEngine(r, req.Config, engine.WithPolicy(policy))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := eng.Compose(req.Units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) newEngine(r *http.Request, p config.Partial, opts ...engine.Option) (*engine.Engine, error) {
	logger := s.logger.With("request_id", requestIDFrom(r.Context()))
	opts = append([]engine.Option{engine.WithLogger(logger), engine.WithHooks(s.hooks)}, opts...)
	return engine.New(p, opts...)
}

// =============================================================================
// Encoding
// =============================================================================

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body").
			Suggest("send a JSON object matching the endpoint's request schema")
	}
	return nil
}

// writeJSON encodes v before writing the header, so an encode failure still
// produces an INTERNAL_ERROR response.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.logger.Debug("write response", "request_id", requestIDFrom(r.Context()), "err", err)
	}
}

type errorResponse struct {
	Error     *errors.Error `json:"error"`
	RequestID string        `json:"request_id"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *errors.Error
	if !errors.As(err, &e) {
		e = errors.Wrap(errors.ErrCodeInternal, err, "internal error")
	}
	status := statusFor(e.Code)
	id := requestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "err", err)
	} else {
		s.logger.Debug("request rejected", "request_id", id, "code", e.Code, "err", e.Message)
	}
	s.writeJSON(w, r, status, errorResponse{Error: e, RequestID: id})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidContentBlock, errors.ErrCodeColumnOverflow:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID propagates a caller-supplied X-Request-ID or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", requestIDFrom(r.Context()))
	})
}
