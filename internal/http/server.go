package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"cashchange/internal/core"
	applog "cashchange/internal/log"
	"cashchange/internal/middleware/ratelimit"
	"cashchange/internal/middleware/security"
	"cashchange/internal/middleware/trace"
	appweb "cashchange/web"
)

// Options configures a Server.
type Options struct {
	Addr     string
	Register core.Register
	Logger   *applog.Logger

	// NoticeDuration is how long success notifications stay visible.
	NoticeDuration     time.Duration
	RateLimitPerMinute int

	// Templates overrides the embedded templates; used by tests.
	Templates fs.FS
}

// appMetrics counts settlements by outcome.
type appMetrics struct {
	mu        sync.Mutex
	outcomes  map[core.Outcome]int64
	pieces    int64
	startedAt time.Time
}

func (m *appMetrics) record(s core.Settlement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[s.Validation.Outcome]++
	if s.Breakdown != nil {
		m.pieces += s.Breakdown.TotalNoteCount
	}
}

func (m *appMetrics) snapshot() (map[core.Outcome]int64, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[core.Outcome]int64, len(m.outcomes))
	for k, v := range m.outcomes {
		out[k] = v
	}
	return out, m.pieces
}

type Server struct {
	http.Server
	logger         *applog.Logger
	events         *applog.StructuredLogger
	templates      *template.Template
	register       core.Register
	noticeDuration time.Duration

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	tracer      *trace.Middleware
	metrics     *appMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16, // 64KB
		},
		logger:         logger,
		events:         applog.NewStructuredLogger(logger.WithComponent(applog.ComponentRegister)),
		register:       opts.Register,
		noticeDuration: opts.NoticeDuration,
		rateLimiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:       security.NewDetector(),
		metrics:        &appMetrics{outcomes: map[core.Outcome]int64{}, startedAt: time.Now()},
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	templatesFS := opts.Templates
	if templatesFS == nil {
		templatesFS = appweb.TemplatesFS
	}
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err.Error())
	}
	s.templates = t

	s.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(s.detector.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err.Error())
	}

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit))
		r.Get("/", s.handleIndex)
		r.Post("/change", s.handleChange)
		r.Post("/api/change", s.handleAPIChange)
	})

	return r
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r))
	TooManyRequestsError("Too many submissions. Please try again in a minute.").
		TriggerNotification(NotificationError, "Too many submissions. Please try again in a minute.", 0).
		Write(w)
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		if err := s.Server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("shutdown http server: %w", err)
		}
	})
	return shutdownErr
}
