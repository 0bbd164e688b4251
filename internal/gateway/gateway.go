package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rxrelay/rxrelay/internal/submission"
	"github.com/rxrelay/rxrelay/pkg/email"
	"github.com/rxrelay/rxrelay/pkg/origin"
	"github.com/rxrelay/rxrelay/pkg/ratelimit"
)

// Config holds the gateway's request-handling configuration.
type Config struct {
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	MailTimeout     time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`
	RequiredFields  []string      `env:"REQUIRED_FIELDS" envSeparator:","`
	SessionSecret   string        `env:"SESSION_SECRET"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Gateway is the stateless submission orchestrator. It owns no state
// between requests; the rate limiter's store is the only shared mutable
// resource and it is injected.
type Gateway struct {
	log           *slog.Logger
	origins       *origin.Validator
	limiter       ratelimit.Limiter
	sender        email.Sender
	recipient     string
	required      []string
	mailTimeout   time.Duration
	sessionSecret string
	maxBodyBytes  int64
}

// New wires a Gateway from its collaborators. A nil logger or a zero
// mail timeout would make failure modes silent or unbounded, so both
// get safe defaults.
func New(cfg Config, log *slog.Logger, limiter ratelimit.Limiter, sender email.Sender, recipient string) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	required := cfg.RequiredFields
	if len(required) == 0 {
		required = submission.DefaultRequiredFields
	}
	mailTimeout := cfg.MailTimeout
	if mailTimeout <= 0 {
		mailTimeout = 10 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	return &Gateway{
		log:           log,
		origins:       origin.New(cfg.AllowedOrigins),
		limiter:       limiter,
		sender:        sender,
		recipient:     recipient,
		required:      required,
		mailTimeout:   mailTimeout,
		sessionSecret: cfg.SessionSecret,
		maxBodyBytes:  maxBody,
	}
}

// Router builds the HTTP surface: one submission endpoint accepting
// POST and OPTIONS, a health probe, and the defensive header set on
// every response.
func (g *Gateway) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(securityHeaders)

	r.Options("/submit", g.handlePreflight)
	r.Post("/submit", g.handleSubmit)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ALIVE"))
	})

	return r
}
