package shopify

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenLeeway = 5 * time.Second

// RequestVerifier checks the signatures the platform puts on webhooks, app
// proxy requests, OAuth callbacks and embedded admin session tokens
type RequestVerifier struct {
	app goshopify.App
}

// SessionTokenClaims are the claims of an embedded admin session token
type SessionTokenClaims struct {
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

// NewRequestVerifier creates a verifier for the app secret
func NewRequestVerifier(apiKey, apiSecret string) *RequestVerifier {
	return &RequestVerifier{app: goshopify.App{ApiKey: apiKey, ApiSecret: apiSecret}}
}

// VerifyWebhook checks X-Shopify-Hmac-Sha256 against the body. The body stays readable.
func (v *RequestVerifier) VerifyWebhook(r *http.Request) bool {
	return v.app.VerifyWebhookRequest(r)
}

// VerifyProxy checks the signature parameter of an app proxy request
func (v *RequestVerifier) VerifyProxy(query url.Values) bool {
	signature := query.Get("signature")
	if signature == "" {
		return false
	}
	return v.app.VerifyMessage(ProxyMessage(query), signature)
}

// VerifyOAuthCallback checks the hmac parameter of an OAuth callback URL
func (v *RequestVerifier) VerifyOAuthCallback(u *url.URL) bool {
	if u.Query().Get("hmac") == "" {
		return false
	}
	ok, err := v.app.VerifyAuthorizationURL(u)
	return err == nil && ok
}

// VerifySessionToken validates an App Bridge session token and returns the
// shop domain it was issued for. The token must be HS256 signed with the app
// secret, unexpired, addressed to the app and issued by the admin of the shop
// in its dest claim.
func (v *RequestVerifier) VerifySessionToken(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(sessionTokenLeeway),
	}
	if v.app.ApiKey != "" {
		opts = append(opts, jwt.WithAudience(v.app.ApiKey))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionTokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.app.ApiSecret), nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionTokenClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	dest, err := url.Parse(claims.Dest)
	if err != nil || dest.Hostname() == "" {
		return "", fmt.Errorf("invalid dest claim %q: %w", claims.Dest, jwt.ErrTokenInvalidClaims)
	}
	shop := strings.ToLower(dest.Hostname())

	if claims.Issuer != "" {
		iss, err := url.Parse(claims.Issuer)
		if err != nil || !strings.EqualFold(iss.Hostname(), shop) {
			return "", fmt.Errorf("issuer %q does not match dest: %w", claims.Issuer, jwt.ErrTokenInvalidIssuer)
		}
	}

	return shop, nil
}

// ProxyMessage builds the signed message of an app proxy request: every
// parameter except signature as key=value, sorted, joined without a separator.
// Repeated values are joined with commas.
func ProxyMessage(query url.Values) string {
	pairs := make([]string, 0, len(query))
	for key, values := range query {
		if key == "signature" {
			continue
		}
		pairs = append(pairs, key+"="+strings.Join(values, ","))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "")
}
