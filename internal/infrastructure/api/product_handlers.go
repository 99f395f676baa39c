package api

import (
	"net/http"
	"net/url"
	"strconv"

	"simple-gifting/internal/domain"

	"github.com/go-chi/chi/v5"
)

// productIDParam accepts a numeric product id or an escaped GID
func productIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "productId")
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return domain.ProductGID(n)
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shop := domain.GetShopFromContext(r.Context())

	products, err := h.deps.Products.ListGiftingProducts(r.Context(), shop, q.Get("search"), q.Get("status"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) listUnlinkedProducts(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	products, err := h.deps.Products.ListUnlinkedProducts(r.Context(), shop)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	overview, err := h.deps.Products.Analytics(r.Context(), shop)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"shop": shop, "overview": overview})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	product, err := h.deps.Products.GetProduct(r.Context(), shop, productIDParam(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) linkProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.LinkProductInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, h.logger, err)
		return
	}

	shop := domain.GetShopFromContext(r.Context())
	if err := h.deps.Products.LinkProduct(r.Context(), shop, input); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "productId": input.ProductID})
}

func (h *Handler) unlinkProduct(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	if err := h.deps.Products.UnlinkProduct(r.Context(), shop, productIDParam(r)); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) repairProduct(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	if err := h.deps.Products.RepairMetafields(r.Context(), shop, productIDParam(r)); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) updateProductSettings(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductSettingsInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, h.logger, err)
		return
	}

	shop := domain.GetShopFromContext(r.Context())
	if err := h.deps.Products.UpdateProductSettings(r.Context(), shop, productIDParam(r), input); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
