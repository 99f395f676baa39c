package api

import (
	"net/http"
	"regexp"
	"strings"

	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

var shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// ValidShopDomain reports whether shop is a *.myshopify.com domain
func ValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}

// SessionTokenMiddleware authenticates admin requests with the App Bridge
// session token in the Authorization header. The shop comes from the verified
// token only; shop headers and query parameters are ignored.
func SessionTokenMiddleware(verifier SessionTokenVerifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok || verifier == nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error()})
				return
			}

			shop, err := verifier.VerifySessionToken(token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected request with invalid session token")
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error()})
				return
			}
			if !ValidShopDomain(shop) {
				logger.Warn().Str("shop", shop).Str("path", r.URL.Path).Msg("Session token issued for an invalid shop")
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error()})
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithShop(r.Context(), shop)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// proxyHeaders sets the headers of every storefront proxy response
func proxyHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
