package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// rewriteTransport sends every request to target, keeping the path
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestAuthorizeURL(t *testing.T) {
	o := NewOAuthClient(Config{APIKey: "key", APISecret: testSecret}, "https://gifting.example.com/auth/callback", []string{"read_products", "write_themes"})

	raw, err := o.AuthorizeURL("gift-shop.myshopify.com", "abc123")
	if err != nil {
		t.Fatalf("AuthorizeURL() error = %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}

	if u.Host != "gift-shop.myshopify.com" || u.Path != "/admin/oauth/authorize" {
		t.Errorf("AuthorizeURL() = %q", raw)
	}
	q := u.Query()
	want := map[string]string{
		"client_id":    "key",
		"redirect_uri": "https://gifting.example.com/auth/callback",
		"scope":        "read_products,write_themes",
		"state":        "abc123",
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("%s = %q, want %q", k, q.Get(k), v)
		}
	}
}

func TestExchangeToken(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/oauth/access_token" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"shpat_offline","scope":"read_products"}`))
	}))
	defer server.Close()

	target, _ := url.Parse(server.URL)
	o := NewOAuthClient(Config{
		APIKey:     "key",
		APISecret:  testSecret,
		HTTPClient: &http.Client{Transport: rewriteTransport{target: target}},
	}, "", nil)

	token, err := o.ExchangeToken(context.Background(), "gift-shop.myshopify.com", "auth-code")
	if err != nil {
		t.Fatalf("ExchangeToken() error = %v", err)
	}
	if token != "shpat_offline" {
		t.Errorf("token = %q", token)
	}
	if got["client_id"] != "key" || got["client_secret"] != testSecret || got["code"] != "auth-code" {
		t.Errorf("request body = %v", got)
	}
}

func TestExchangeTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_request","error_description":"The authorization code was not found or was already used"}`))
	}))
	defer server.Close()

	target, _ := url.Parse(server.URL)
	o := NewOAuthClient(Config{
		APIKey:     "key",
		APISecret:  testSecret,
		HTTPClient: &http.Client{Transport: rewriteTransport{target: target}},
	}, "", nil)

	if _, err := o.ExchangeToken(context.Background(), "gift-shop.myshopify.com", "used"); err == nil {
		t.Error("ExchangeToken() error = nil, want error")
	}
}
