package shopify

import (
	"context"
	"fmt"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// TokenManager resolves the Admin API access token of a shop
type TokenManager struct {
	sessions      ports.SessionRepository
	fallbackToken string
	logger        zerolog.Logger
}

// NewTokenManager creates a new token manager. fallbackToken is used for
// shops without an offline session, as for a single-store custom app.
func NewTokenManager(sessions ports.SessionRepository, fallbackToken string, logger zerolog.Logger) *TokenManager {
	return &TokenManager{
		sessions:      sessions,
		fallbackToken: fallbackToken,
		logger:        logger,
	}
}

// AccessToken returns the offline session token of shop, or the fallback token
func (tm *TokenManager) AccessToken(ctx context.Context, shop string) (string, error) {
	if shop == "" {
		return "", domain.ErrShopRequired
	}

	if tm.sessions != nil {
		session, err := tm.sessions.GetOfflineSession(ctx, shop)
		if err != nil {
			return "", fmt.Errorf("failed to load session: %w", err)
		}
		if session != nil && session.AccessToken != "" {
			if session.IsExpired(time.Now()) {
				tm.logger.Warn().Str("shop", shop).Msg("Offline session expired")
			} else {
				return session.AccessToken, nil
			}
		}
	}

	if tm.fallbackToken != "" {
		return tm.fallbackToken, nil
	}
	return "", fmt.Errorf("%s: %w", shop, domain.ErrNoAccessToken)
}
