package api

import (
	"net/http"

	"simple-gifting/internal/domain"

	"github.com/go-chi/chi/v5"
)

// Storefront proxy endpoints
const (
	proxyProducts = "products"
	proxyStyling  = "styling"
	proxyConfig   = "config"
)

type proxyProductsDebug struct {
	Shop         string `json:"shop"`
	Tag          string `json:"tag"`
	Namespace    string `json:"namespace"`
	ProductCount int    `json:"productCount"`
}

type proxyProductsResponse struct {
	Products []domain.StorefrontProduct `json:"products"`
	Error    string                     `json:"error,omitempty"`
	Debug    *proxyProductsDebug        `json:"debug,omitempty"`
}

// proxy serves the storefront script. Every endpoint requires a signed app
// proxy request for a *.myshopify.com shop, since the config endpoints create
// the default configuration on first read.
func (h *Handler) proxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	shop := query.Get("shop")
	if shop == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Shop parameter is required"})
		return
	}
	if !ValidShopDomain(shop) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid shop domain"})
		return
	}
	if h.deps.ProxyVerifier == nil || !h.deps.ProxyVerifier.VerifyProxy(query) {
		h.logger.Warn().Str("shop", shop).Str("endpoint", chi.URLParam(r, "endpoint")).Msg("App proxy signature verification failed")
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication failed."})
		return
	}

	switch chi.URLParam(r, "endpoint") {
	case proxyProducts:
		products, err := h.deps.Products.StorefrontProducts(ctx, shop)
		if err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to fetch storefront products")
			respondJSON(w, http.StatusInternalServerError, proxyProductsResponse{
				Products: []domain.StorefrontProduct{},
				Error:    "Failed to fetch products",
			})
			return
		}
		respondJSON(w, http.StatusOK, proxyProductsResponse{
			Products: products,
			Debug: &proxyProductsDebug{
				Shop:         shop,
				Tag:          domain.GiftingTag,
				Namespace:    domain.MetafieldNamespace,
				ProductCount: len(products),
			},
		})

	case proxyStyling:
		config, err := h.deps.Configs.Get(ctx, shop)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, config.Styling())

	case proxyConfig:
		config, err := h.deps.Configs.Get(ctx, shop)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, config.Public())

	default:
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Endpoint not found"})
	}
}
