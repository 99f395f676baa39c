package shopify

import (
	"context"
	"fmt"
	"strings"

	"simple-gifting/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// OAuthClient runs the authorization code grant against the shop's admin
type OAuthClient struct {
	app  goshopify.App
	opts []goshopify.Option
}

var _ ports.OAuthProvider = (*OAuthClient)(nil)

// NewOAuthClient creates an OAuth client redirecting to redirectURL with the given scopes
func NewOAuthClient(cfg Config, redirectURL string, scopes []string) *OAuthClient {
	opts := []goshopify.Option{}
	if cfg.MaxRetries > 0 {
		opts = append(opts, goshopify.WithRetry(cfg.MaxRetries))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, goshopify.WithHTTPClient(cfg.HTTPClient))
	}

	return &OAuthClient{
		app: goshopify.App{
			ApiKey:      cfg.APIKey,
			ApiSecret:   cfg.APISecret,
			RedirectUrl: redirectURL,
			Scope:       strings.Join(scopes, ","),
		},
		opts: opts,
	}
}

// AuthorizeURL returns the install consent URL of shop
func (o *OAuthClient) AuthorizeURL(shop, state string) (string, error) {
	return o.app.AuthorizeUrl(shop, state)
}

// ExchangeToken trades an authorization code for an offline access token
func (o *OAuthClient) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	app := o.app
	client, err := goshopify.NewClient(app, shop, "", o.opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	app.Client = client

	token, err := app.GetAccessToken(ctx, shop, code)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("empty access token for %s", shop)
	}
	return token, nil
}
