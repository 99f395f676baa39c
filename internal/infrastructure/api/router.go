package api

import (
	"context"
	"net/http"
	"net/url"

	"simple-gifting/internal/application"
	"simple-gifting/internal/infrastructure/pubsub"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// WebhookVerifier checks webhook signatures
type WebhookVerifier interface {
	VerifyWebhook(r *http.Request) bool
}

// ProxyVerifier checks app proxy signatures
type ProxyVerifier interface {
	VerifyProxy(query url.Values) bool
}

// OAuthVerifier checks the hmac of OAuth callbacks
type OAuthVerifier interface {
	VerifyOAuthCallback(u *url.URL) bool
}

// SessionTokenVerifier validates App Bridge session tokens and returns their shop
type SessionTokenVerifier interface {
	VerifySessionToken(token string) (string, error)
}

// DefaultAllowedOrigins are the browser origins allowed to call the admin API
var DefaultAllowedOrigins = []string{"https://admin.shopify.com"}

// HealthCheck checks one dependency
type HealthCheck func(ctx context.Context) error

// Dependencies groups everything the HTTP layer calls into
type Dependencies struct {
	Compatibility *application.ThemeCompatibilityService
	Injection     *application.ThemeInjectionService
	Configs       *application.ShopConfigurationService
	Products      *application.GiftingProductService
	Setup         *application.SetupService
	Webhooks      *application.WebhookService
	Install       *application.InstallService
	Activity      *pubsub.ActivityPubSub

	WebhookVerifier WebhookVerifier
	ProxyVerifier   ProxyVerifier
	OAuthVerifier   OAuthVerifier
	SessionTokens   SessionTokenVerifier

	AllowedOrigins []string

	HealthChecks map[string]HealthCheck
	Metrics      http.Handler
}

// Handler serves the admin API, the storefront proxy and webhooks
type Handler struct {
	deps   Dependencies
	logger zerolog.Logger
}

// NewHandler creates a new HTTP handler set
func NewHandler(deps Dependencies, logger zerolog.Logger) *Handler {
	return &Handler{deps: deps, logger: logger}
}

// NewRouter builds the chi router with the standard middleware stack
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	origins := h.deps.AllowedOrigins
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	h.Routes(r)
	return r
}

// Routes mounts every endpoint on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.health)
	if h.deps.Metrics != nil {
		r.Handle("/metrics", h.deps.Metrics)
	}

	r.Post("/webhooks/shopify", h.webhook)

	if h.deps.Install != nil {
		r.Get("/auth/shopify", h.beginInstall)
		r.Get("/auth/callback", h.completeInstall)
	}

	r.Route("/proxy", func(r chi.Router) {
		r.Use(proxyHeaders)
		r.Get("/{endpoint}", h.proxy)
		r.Options("/{endpoint}", func(w http.ResponseWriter, r *http.Request) {})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(SessionTokenMiddleware(h.deps.SessionTokens, h.logger))

		r.Route("/theme", func(r chi.Router) {
			r.Get("/compatibility", h.themeCompatibility)
			r.Get("/active", h.activeTheme)
			r.Post("/inject", h.injectTheme)
			r.Post("/remove", h.removeTheme)
			r.Get("/operations", h.themeOperations)
		})

		r.Get("/settings", h.getSettings)
		r.Patch("/settings", h.updateSettings)
		r.Post("/settings", h.updateSettings)

		r.Get("/install/status", h.installStatus)
		r.Post("/install", h.installAction)
		r.Get("/dashboard", h.dashboard)
		r.Get("/analytics", h.analytics)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Get("/unlinked", h.listUnlinkedProducts)
			r.Post("/link", h.linkProduct)
			r.Get("/{productId}", h.getProduct)
			r.Post("/{productId}/unlink", h.unlinkProduct)
			r.Post("/{productId}/repair", h.repairProduct)
			r.Patch("/{productId}/settings", h.updateProductSettings)
		})

		if h.deps.Activity != nil {
			r.Get("/activity", h.activity)
		}
	})
}
