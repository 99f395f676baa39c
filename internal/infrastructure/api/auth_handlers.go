package api

import (
	"errors"
	"net/http"
	"strings"

	"simple-gifting/internal/domain"
)

// beginInstall redirects the merchant to the consent screen of their shop
func (h *Handler) beginInstall(w http.ResponseWriter, r *http.Request) {
	shop := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("shop")))
	if !ValidShopDomain(shop) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrShopRequired.Error()})
		return
	}

	authURL, err := h.deps.Install.BeginInstall(r.Context(), shop)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to start OAuth install")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to start installation"})
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// completeInstall handles the OAuth callback: it checks the hmac and the
// one-time state before exchanging the code for an offline token
func (h *Handler) completeInstall(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	shop := query.Get("shop")
	code := query.Get("code")
	state := query.Get("state")

	if shop == "" || code == "" || state == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required parameters"})
		return
	}
	if !ValidShopDomain(shop) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrShopRequired.Error()})
		return
	}

	if h.deps.OAuthVerifier == nil || !h.deps.OAuthVerifier.VerifyOAuthCallback(r.URL) {
		h.logger.Warn().Str("shop", shop).Msg("OAuth callback signature verification failed")
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid signature"})
		return
	}

	if _, err := h.deps.Install.CompleteInstall(r.Context(), shop, code, state); err != nil {
		if errors.Is(err, domain.ErrInvalidOAuthState) {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid session"})
			return
		}
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to complete OAuth install")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to complete installation"})
		return
	}

	http.Redirect(w, r, h.deps.Install.AdminAppURL(shop), http.StatusFound)
}
