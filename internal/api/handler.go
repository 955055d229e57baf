// Package api exposes the point-of-sale operations over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/safar/pos-backend/internal/auth"
	"github.com/safar/pos-backend/internal/models"
	"github.com/safar/pos-backend/internal/store"
	"github.com/safar/pos-backend/pkg/health"
)

// Store is the persistence the handlers depend on.
type Store interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	CreateOrder(ctx context.Context, req store.CreateOrderRequest, actingUserID int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersPage(ctx context.Context, cursor string, limit int) (*store.OrderPage, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	Summarize(ctx context.Context) (*models.Summary, error)
}

var _ Store = (*store.Store)(nil)

type Handler struct {
	store    Store
	tokens   *auth.TokenIssuer
	health   *health.Health
	limiter  *RateLimiter
	validate *validator.Validate
	lg       *zap.Logger
}

func NewHandler(s Store, tokens *auth.TokenIssuer, h *health.Health, limiter *RateLimiter, lg *zap.Logger) *Handler {
	return &Handler{
		store:    s,
		tokens:   tokens,
		health:   h,
		limiter:  limiter,
		validate: validator.New(),
		lg:       lg,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.injectLogger, requestID, recovery, accessLog)

	r.Get("/healthz", healthz)
	r.Get("/livez", h.health.LiveEndpoint)
	r.Get("/readyz", h.health.ReadyEndpoint)

	r.With(h.rateLimit).Post("/auth/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Get("/auth/me", h.me)
		r.Get("/products", h.listProducts)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
		})
		r.Get("/reports/summary", h.summary)
	})

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
