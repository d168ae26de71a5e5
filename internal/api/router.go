package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/phamlt/guardrail/internal/api/handlers"
	"github.com/phamlt/guardrail/internal/api/middleware"
	"github.com/phamlt/guardrail/internal/audit"
	"github.com/phamlt/guardrail/internal/auth"
	"github.com/phamlt/guardrail/internal/cache"
	"github.com/phamlt/guardrail/internal/config"
	"github.com/phamlt/guardrail/internal/queue"
	"github.com/phamlt/guardrail/internal/safety"
)

type Router struct {
	mux    *chi.Mux
	db     *pgxpool.Pool
	redis  *redis.Client
	cfg    *config.Config
	engine *safety.Engine
	jwt    *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, engine *safety.Engine) *Router {
	return &Router{
		mux:    chi.NewRouter(),
		db:     db,
		redis:  rdb,
		cfg:    cfg,
		engine: engine,
		jwt:    auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Optional collaborators: classification works without them.
	var verdicts *cache.VerdictCache
	var queueClient *queue.Client
	if rt.redis != nil {
		verdicts = cache.NewVerdictCache(rt.redis, time.Duration(rt.cfg.Guard.VerdictTTLSeconds)*time.Second)
		queueClient = queue.NewClient(rt.cfg.Redis)
	}
	var auditSvc *audit.Service
	if rt.db != nil {
		auditSvc = audit.NewService(rt.db)
	}

	guardH := handlers.NewGuardHandler(rt.engine, verdicts, queueClient)
	adminH := handlers.NewAdminHandler(rt.engine, auditSvc, verdicts, rt.cfg.Guard)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/guard", func(r chi.Router) {
			r.Post("/check", guardH.Check)
			r.Post("/reply", guardH.Reply)
			r.Post("/redact", guardH.RedactOutput)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.jwt.Authenticate)
			r.Get("/decisions", adminH.Decisions)
			r.Get("/summary", adminH.Summary)
			r.Post("/policies/reload", adminH.ReloadPolicies)
		})
	})

	return r
}
