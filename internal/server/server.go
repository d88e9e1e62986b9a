// Package server exposes form sessions over HTTP and WebSocket. Each
// session owns one form's values and runs the recalculation engine on
// every change, focus and blur event.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/investment-form/internal/fields"
	"github.com/iwvelando/investment-form/internal/recalc"
	"github.com/iwvelando/investment-form/internal/seed"
	"github.com/iwvelando/investment-form/internal/submission"
	"github.com/iwvelando/investment-form/pkg/constants"
)

// Options configures the server.
type Options struct {
	Logger      *zap.Logger
	Valuator    submission.Valuator
	MaxBodySize int64
	IdleTimeout time.Duration
	Version     string
	// Now is the clock for form defaults and session expiry. Nil means time.Now.
	Now func() time.Time
}

// Server routes form session requests.
type Server struct {
	logger   *zap.Logger
	catalog  *fields.Catalog
	engine   *recalc.Engine
	sessions *sessionStore
	valuator submission.Valuator
	maxBody  int64
	version  string
	now      func() time.Time
	router   chi.Router
}

// New constructs the server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	s := &Server{
		logger:   opts.Logger,
		catalog:  fields.Default(),
		engine:   recalc.NewEngine(nil),
		sessions: newSessionStore(opts.IdleTimeout, opts.Now, opts.Logger),
		valuator: opts.Valuator,
		maxBody:  opts.MaxBodySize,
		version:  version,
		now:      opts.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/api/version", s.handleVersion)
	r.Get("/api/fields", s.handleFields)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleGet))
			r.Delete("/", s.handleDelete)
			r.Post("/change", s.withSession(s.handleChange))
			r.Post("/focus", s.withSession(s.handleFocus))
			r.Post("/blur", s.withSession(s.handleBlur))
			r.Post("/submit", s.withSession(s.handleSubmit))
			r.Get("/ws", s.handleWebSocket)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ExpireSessions drops idle sessions every interval until ctx is done.
func (s *Server) ExpireSessions(ctx context.Context, interval time.Duration) {
	s.sessions.run(ctx, interval)
}

type sessionResponse struct {
	ID               string       `json:"id"`
	Phase            recalc.Phase `json:"phase"`
	Values           fields.State `json:"values"`
	Patch            fields.Patch `json:"patch,omitempty"`
	Pending          fields.Patch `json:"pending,omitempty"`
	ManuallyEdited   []string     `json:"manuallyEdited"`
	LastChangedField string       `json:"lastChangedField,omitempty"`
	FocusedField     string       `json:"focusedField,omitempty"`
	Missing          []string     `json:"missing,omitempty"`
	Warnings         []string     `json:"warnings,omitempty"`
}

type createRequest struct {
	Values     map[string]any    `json:"values"`
	Extraction *seed.Extraction `json:"extraction"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (s *Server) snapshot(fs *formSession, patch fields.Patch, warnings []string) sessionResponse {
	es := fs.form.Edit()
	values := fs.form.State()
	return sessionResponse{
		ID:               fs.id,
		Phase:            fs.form.Phase(),
		Values:           values,
		Patch:            patch,
		Pending:          fs.form.Pending(),
		ManuallyEdited:   es.Manual(),
		LastChangedField: es.LastChangedField,
		FocusedField:     es.FocusedField,
		Missing:          s.catalog.Missing(values),
		Warnings:         warnings,
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Descriptors())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreate"

	var req createRequest
	if err := s.decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode seed: %v", err), op)
		return
	}

	raw := make(map[string]any)
	if req.Extraction != nil {
		for k, v := range req.Extraction.Raw() {
			raw[k] = v
		}
	}
	for k, v := range req.Values {
		raw[k] = v
	}

	state, problems := seed.Coerce(s.catalog, raw)
	var warnings []string
	for _, p := range problems {
		if seed.IsUnknownField(p) {
			s.respondError(w, http.StatusBadRequest, p.Error(), op)
			return
		}
		warnings = append(warnings, p.Error())
	}

	form, err := recalc.NewSession(recalc.Options{Catalog: s.catalog, Engine: s.engine, Now: s.now()}, state)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	fs := s.sessions.create(form)

	s.logger.Info("form session created",
		zap.String("op", op),
		zap.String("session", fs.id),
		zap.Int("seeded", len(state)),
		zap.Int("warnings", len(warnings)),
	)

	fs.mu.Lock()
	resp := s.snapshot(fs, nil, warnings)
	fs.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, resp)
}

// withSession resolves {id}, holds the session lock for the duration of
// the handler and refreshes its idle timer.
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *formSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs, ok := s.lookup(w, r)
		if !ok {
			return
		}
		fs.mu.Lock()
		defer fs.mu.Unlock()
		s.sessions.touch(fs)
		next(w, r, fs)
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*formSession, bool) {
	raw := chi.URLParam(r, "id")
	if _, err := uuid.Parse(raw); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid session id: "+raw, "server.lookup")
		return nil, false
	}
	fs, ok := s.sessions.get(raw)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found", "server.lookup")
		return nil, false
	}
	return fs, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, fs *formSession) {
	s.writeJSON(w, http.StatusOK, s.snapshot(fs, nil, nil))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if !s.sessions.remove(raw) {
		s.respondError(w, http.StatusNotFound, "session not found", "server.handleDelete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChange(w http.ResponseWriter, r *http.Request, fs *formSession) {
	const op = "server.handleChange"

	var req fieldRequest
	if err := s.decode(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode change: %v", err), op)
		return
	}

	patch, warnings, err := s.applyChange(fs, req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	s.writeJSON(w, http.StatusOK, s.snapshot(fs, patch, warnings))
}

// applyChange must be called with fs.mu held. Non-numeric input is a
// warning, not a failure: the field is cleared and recalculation proceeds.
func (s *Server) applyChange(fs *formSession, req fieldRequest) (fields.Patch, []string, error) {
	patch, err := fs.form.Change(req.Field, req.Value)
	var nonNumeric *fields.NonNumericInputError
	if errors.As(err, &nonNumeric) {
		s.logger.Debug("non-numeric input cleared",
			zap.String("op", "server.applyChange"),
			zap.String("session", fs.id),
			zap.String("field", nonNumeric.Field),
		)
		return patch, []string{err.Error()}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("field changed",
		zap.String("op", "server.applyChange"),
		zap.String("session", fs.id),
		zap.String("field", req.Field),
		zap.Int("patched", len(patch)),
		zap.Stringer("phase", fs.form.Phase()),
	)
	return patch, nil, nil
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request, fs *formSession) {
	const op = "server.handleFocus"

	var req fieldRequest
	if err := s.decode(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode focus: %v", err), op)
		return
	}
	if err := fs.form.Focus(req.Field); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	s.writeJSON(w, http.StatusOK, s.snapshot(fs, nil, nil))
}

func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request, fs *formSession) {
	patch := fs.form.Blur()
	s.writeJSON(w, http.StatusOK, s.snapshot(fs, patch, nil))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, fs *formSession) {
	const op = "server.handleSubmit"

	if s.valuator == nil {
		s.respondError(w, http.StatusServiceUnavailable, "valuation service not configured", op)
		return
	}

	req, err := submission.NewRequest(s.catalog, fs.form.State())
	var missing *submission.MissingFieldsError
	if errors.As(err, &missing) {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   err.Error(),
			"missing": missing.Fields,
		})
		return
	}
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	result, err := s.valuator.Analyze(r.Context(), req)
	var valErr *submission.ValuationError
	if errors.As(err, &valErr) {
		s.respondError(w, http.StatusBadGateway, err.Error(), op)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	s.sessions.remove(fs.id)
	s.logger.Info("form submitted",
		zap.String("op", op),
		zap.String("session", fs.id),
	)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string, op string) {
	s.logger.Warn("form request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request served",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("requestID", middleware.GetReqID(r.Context())),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
