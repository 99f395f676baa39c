package api

import (
	"net/http"
	"strconv"

	"simple-gifting/internal/domain"
)

const defaultOperationsLimit = 20

type themeRequest struct {
	ThemeID string `json:"themeId"`
}

func (h *Handler) themeCompatibility(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.deps.Compatibility.Check(r.Context(), shop))
}

func (h *Handler) activeTheme(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	theme, err := h.deps.Injection.ActiveTheme(r.Context(), shop)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

// injectTheme installs the gifting code into the theme named in the body,
// or the published theme when none is given
func (h *Handler) injectTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	shop := domain.GetShopFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.deps.Injection.Inject(r.Context(), shop, req.ThemeID))
}

func (h *Handler) removeTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	shop := domain.GetShopFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.deps.Injection.Remove(r.Context(), shop, req.ThemeID))
}

func (h *Handler) themeOperations(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultOperationsLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			respondError(w, h.logger, &domain.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	shop := domain.GetShopFromContext(r.Context())
	ops, err := h.deps.Injection.History(r.Context(), shop, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"operations": ops})
}
