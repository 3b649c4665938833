// ABOUTME: HTTP API server wiring routes, middleware and the analysis collaborators
// ABOUTME: Run serves until the context is canceled, then shuts down gracefully

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mailru/easyjson"

	"github.com/paritydotcx/paritycx/internal/analysis"
	"github.com/paritydotcx/paritycx/internal/config"
	httpsec "github.com/paritydotcx/paritycx/internal/http"
	"github.com/paritydotcx/paritycx/internal/knowledge"
	"github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/registry"
	"github.com/paritydotcx/paritycx/internal/skills"
)

// DocsURL is linked from the unmatched-route response.
const DocsURL = "https://parity.cx/docs"

const shutdownTimeout = 10 * time.Second

// Server is the parity HTTP API.
type Server struct {
	settings  config.Settings
	engine    *analysis.Engine
	catalog   *skills.Catalog
	store     registry.Store
	knowledge *knowledge.Base
	auth      *Authenticator
	limiter   *RateLimiter
	now       func() time.Time
	started   time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the program registry. Defaults to an in-memory store.
func WithStore(s registry.Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithCatalog sets the skill catalog. Defaults to the built-in skills.
func WithCatalog(c *skills.Catalog) Option {
	return func(srv *Server) { srv.catalog = c }
}

// WithEngine sets the analysis engine.
func WithEngine(e *analysis.Engine) Option {
	return func(srv *Server) { srv.engine = e }
}

// WithClock overrides the time source for uptime and registration timestamps.
func WithClock(now func() time.Time) Option {
	return func(srv *Server) { srv.now = now }
}

// New creates a Server. Zero-valued settings fall back to the config defaults.
func New(settings config.Settings, opts ...Option) *Server {
	config.ApplyDefaults(&settings)
	s := &Server{
		settings:  settings,
		knowledge: knowledge.New(),
		auth:      NewAuthenticator(settings.JWTSecret),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.engine == nil {
		s.engine = analysis.NewEngine()
	}
	if s.catalog == nil {
		s.catalog = skills.NewCatalog()
	}
	if s.store == nil {
		s.store = registry.NewMemory()
	}
	s.limiter = NewRateLimiter(settings.RateLimit)
	s.limiter.now = s.now
	s.started = s.now()
	return s
}

// Authenticator returns the token verifier, e.g. for issuing tokens.
func (s *Server) Authenticator() *Authenticator { return s.auth }

// Handler returns the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	a := s.auth.requireAuth

	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.HandleFunc("GET /v1/health/ready", s.handleReady)

	mux.HandleFunc("POST /v1/analyze", a(s.handleAnalyze))

	mux.HandleFunc("GET /v1/skills", a(s.handleListSkills))
	mux.HandleFunc("GET /v1/skills/{name}", a(s.handleGetSkill))
	mux.HandleFunc("GET /v1/skills/{name}/chain", a(s.handleSkillChain))

	mux.HandleFunc("GET /v1/context", a(s.handleContextQuery))
	mux.HandleFunc("GET /v1/context/rules", a(s.handleContextRules))
	mux.HandleFunc("GET /v1/context/findings", a(s.handleContextFindings))
	mux.HandleFunc("GET /v1/context/patterns", a(s.handleContextPatterns))
	mux.HandleFunc("GET /v1/context/categories", a(s.handleContextCategories))

	mux.HandleFunc("GET /v1/programs", a(s.handleListPrograms))
	mux.HandleFunc("GET /v1/programs/stats", a(s.handleProgramStats))
	mux.HandleFunc("GET /v1/programs/{hash}", a(s.handleGetProgram))
	mux.HandleFunc("POST /v1/programs", a(s.handleCreateProgram))

	mux.HandleFunc("/", s.handleNotFound)

	return chain(mux,
		withRecover,
		withRequestID,
		withAccessLog,
		withSecurityHeaders,
		withCORS(s.settings.CORSOrigin),
		s.limiter.middleware,
		withBodyLimit(s.settings.BodyLimit),
	)
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := httpsec.SecureHTTPServer(s.Handler(), s.settings.Addr)

	errCh := make(chan error, 1)
	go func() {
		log.Info("parity API server listening on %s", s.settings.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", s.settings.Addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   StatusName(http.StatusNotFound),
		"message": "The requested endpoint does not exist",
		"docs":    DocsURL,
	})
}

// writeJSON encodes v with status. Types with generated marshalers skip reflection.
func writeJSON(w http.ResponseWriter, status int, v any) {
	if m, ok := v.(easyjson.Marshaler); ok {
		data, err := easyjson.Marshal(m)
		if err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_, _ = w.Write(data)
			return
		}
		log.Error("easyjson encode: %v", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Error("json encode: %v", err)
		http.Error(w, `{"status":500,"error":"Internal Server Error","message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeText sends a text body with the given content type.
func writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// decodeJSON reads a JSON body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return NewBadRequestError("Invalid JSON body: " + err.Error())
	}
	return nil
}
