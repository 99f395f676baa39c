package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// InstallService runs the OAuth install of the app and stores the resulting
// offline session
type InstallService struct {
	oauth    ports.OAuthProvider
	states   ports.OAuthStateStore
	sessions ports.SessionRepository
	configs  *ShopConfigurationService
	apiKey   string
	scopes   []string
	logger   zerolog.Logger
}

// NewInstallService creates a new install service. configs may be nil.
func NewInstallService(
	oauth ports.OAuthProvider,
	states ports.OAuthStateStore,
	sessions ports.SessionRepository,
	configs *ShopConfigurationService,
	apiKey string,
	scopes []string,
	logger zerolog.Logger,
) *InstallService {
	return &InstallService{
		oauth:    oauth,
		states:   states,
		sessions: sessions,
		configs:  configs,
		apiKey:   apiKey,
		scopes:   scopes,
		logger:   logger,
	}
}

// BeginInstall stores a fresh state for shop and returns the authorization URL
func (s *InstallService) BeginInstall(ctx context.Context, shop string) (string, error) {
	if shop == "" {
		return "", domain.ErrShopRequired
	}

	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	if err := s.states.Save(ctx, state, shop); err != nil {
		return "", fmt.Errorf("failed to save state: %w", err)
	}

	authURL, err := s.oauth.AuthorizeURL(shop, state)
	if err != nil {
		return "", fmt.Errorf("failed to build authorize url: %w", err)
	}

	s.logger.Info().Str("shop", shop).Msg("OAuth install started")
	return authURL, nil
}

// CompleteInstall consumes state, exchanges code for an offline access token
// and saves the session. The callback signature is checked by the caller.
func (s *InstallService) CompleteInstall(ctx context.Context, shop, code, state string) (*domain.Session, error) {
	if shop == "" {
		return nil, domain.ErrShopRequired
	}

	stateShop, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	if stateShop == "" || stateShop != shop {
		s.logger.Warn().Str("shop", shop).Str("stateShop", stateShop).Msg("OAuth callback with invalid state")
		return nil, domain.ErrInvalidOAuthState
	}

	token, err := s.oauth.ExchangeToken(ctx, shop, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	session := &domain.Session{
		ID:          domain.OfflineSessionID(shop),
		Shop:        shop,
		State:       state,
		IsOnline:    false,
		Scope:       strings.Join(s.scopes, ","),
		AccessToken: token,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if s.configs != nil {
		if _, err := s.configs.Get(ctx, shop); err != nil {
			s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to create default configuration after install")
		}
	}

	s.logger.Info().Str("shop", shop).Msg("App installed")
	return session, nil
}

// AdminAppURL is where the merchant lands after a completed install
func (s *InstallService) AdminAppURL(shop string) string {
	return fmt.Sprintf("https://%s/admin/apps/%s", shop, s.apiKey)
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
