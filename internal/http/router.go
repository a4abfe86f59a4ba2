// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, contribution keys, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/captcha"
	"github.com/4Furki4/turkish-dictionary/internal/config"
	"github.com/4Furki4/turkish-dictionary/internal/http/handlers"
	"github.com/4Furki4/turkish-dictionary/internal/http/middleware"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
	"github.com/4Furki4/turkish-dictionary/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), contribution-key
// replay detection and rate limiting, CORS and security headers, health and
// metrics endpoints, and then mounts the versioned public API under /api/v*.
//
// The returned WordService is the router's live suggestion index owner; the
// caller should invoke ReloadIndex once at startup so suggestions are warm
// before the first request.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Identity resolution (trusted gateway headers)
//  8. Contribution-key validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) *services.WordService {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			middleware.HeaderUserID, // user identifiers stay out of logs
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// Compress responses. /metrics is excluded: Prometheus negotiates its
	// own encoding with the scrape client.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Resolve caller identity from the trusted gateway headers
	r.Use(middleware.Identity())

	// 8) Contribution-key validation (before rate limiting)
	r.Use(middleware.ContributionKeyValidator(
		middleware.ContributionKeyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			exists, err := repo.HasContributionKey(ctx, db, userID, key, now)
			if err != nil {
				return false, nil
			}
			return exists, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	allowHeaders := []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderContributionKey,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← db/config
	var verifier captcha.Verifier
	if cfg.Captcha.Secret != "" {
		verifier = &captcha.Client{Secret: cfg.Captcha.Secret}
	}

	wordSvc := &services.WordService{DB: db}
	reqSvc := &services.RequestService{DB: db, Captcha: verifier}
	voteSvc := &services.VoteService{DB: db}
	modSvc := &services.ModerationService{
		DB: db,
		OnWordsChanged: func() {
			_ = wordSvc.ReloadIndex(context.Background())
		},
	}
	adminSvc := &services.AdminService{
		DB: db,
		OnWordsChanged: func() {
			_ = wordSvc.ReloadIndex(context.Background())
		},
	}
	fbSvc := &services.FeedbackService{DB: db}
	annSvc := &services.AnnouncementService{DB: db}

	h := handlers.New(reqSvc, voteSvc, modSvc, wordSvc, adminSvc, fbSvc, annSvc, db, cfg.ContributionKeyTTL)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Contribution requests. Fixed segments register before the
		// parameterized :id routes.
		api.POST("/requests", h.CreateRequest)
		api.GET("/requests", h.ListRequests)
		api.GET("/requests/mine", h.ListMyRequests)
		api.GET("/requests/stats", h.RequestStats)
		api.GET("/requests/:id", h.GetRequest)
		api.POST("/requests/:id/vote", h.ToggleVote)
		api.POST("/requests/:id/approve", h.ApproveRequest)
		api.POST("/requests/:id/reject", h.RejectRequest)

		// Dictionary reads
		api.GET("/words", h.ListWords)
		api.GET("/words/suggest", h.SuggestWords)
		api.GET("/words/:name", h.GetWord)

		// Feedback board
		api.POST("/feedback", h.CreateFeedback)
		api.GET("/feedback", h.ListFeedback)
		api.POST("/feedback/:id/vote", h.ToggleFeedbackVote)

		// Announcements
		api.GET("/announcements", h.ListAnnouncements)
		api.GET("/announcements/:slug", h.GetAnnouncement)
		api.POST("/announcements", h.CreateAnnouncement)
		api.PATCH("/announcements/:id", h.UpdateAnnouncement)
		api.DELETE("/announcements/:id", h.DeleteAnnouncement)

		// Admin CRUD
		api.POST("/admin/:entity_type", h.AdminCreate)
		api.PATCH("/admin/:entity_type/:id", h.AdminUpdate)
		api.DELETE("/admin/:entity_type/:id", h.AdminDelete)
	}

	return wordSvc
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
