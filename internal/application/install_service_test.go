package application

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

var testScopes = []string{"read_products", "write_products", "read_themes", "write_themes"}

func newInstallService(oauth *fakeOAuth, states *fakeStates, sessions *fakeSessions, repo *fakeConfigRepo) *InstallService {
	configs := NewShopConfigurationService(repo, nil, zerolog.Nop())
	return NewInstallService(oauth, states, sessions, configs, "api-key", testScopes, zerolog.Nop())
}

func stateOf(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("authorize url %q: %v", authURL, err)
	}
	return u.Query().Get("state")
}

func TestInstallRoundTrip(t *testing.T) {
	ctx := context.Background()
	oauth := &fakeOAuth{token: "shpat_offline"}
	states := newFakeStates()
	sessions := newFakeSessions()
	repo := newFakeConfigRepo()
	svc := newInstallService(oauth, states, sessions, repo)

	authURL, err := svc.BeginInstall(ctx, testShop)
	if err != nil {
		t.Fatalf("BeginInstall() error = %v", err)
	}
	state := stateOf(t, authURL)
	if len(state) != 32 {
		t.Fatalf("state = %q, want 32 hex chars", state)
	}
	if states.states[state] != testShop {
		t.Errorf("stored state shop = %q", states.states[state])
	}

	session, err := svc.CompleteInstall(ctx, testShop, "auth-code", state)
	if err != nil {
		t.Fatalf("CompleteInstall() error = %v", err)
	}
	if session.ID != "offline_"+testShop || session.IsOnline {
		t.Errorf("session = %+v, want offline session", session)
	}

	saved := sessions.sessions[domain.OfflineSessionID(testShop)]
	if saved == nil || saved.AccessToken != "shpat_offline" {
		t.Fatalf("saved session = %+v", saved)
	}
	if saved.Scope != "read_products,write_products,read_themes,write_themes" {
		t.Errorf("Scope = %q", saved.Scope)
	}
	if _, ok := states.states[state]; ok {
		t.Error("state was not consumed")
	}
	if _, ok := repo.configs[testShop]; !ok {
		t.Error("default configuration was not created")
	}
	if got := svc.AdminAppURL(testShop); got != "https://"+testShop+"/admin/apps/api-key" {
		t.Errorf("AdminAppURL() = %q", got)
	}
}

func TestCompleteInstallRejectsState(t *testing.T) {
	tests := []struct {
		name  string
		seed  map[string]string
		state string
	}{
		{name: "unknown state", state: "deadbeef"},
		{name: "state of another shop", seed: map[string]string{"abc": "other.myshopify.com"}, state: "abc"},
		{name: "empty state", state: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oauth := &fakeOAuth{token: "shpat_offline"}
			states := newFakeStates()
			for k, v := range tt.seed {
				states.states[k] = v
			}
			sessions := newFakeSessions()
			svc := newInstallService(oauth, states, sessions, newFakeConfigRepo())

			_, err := svc.CompleteInstall(context.Background(), testShop, "auth-code", tt.state)
			if !errors.Is(err, domain.ErrInvalidOAuthState) {
				t.Fatalf("CompleteInstall() error = %v, want ErrInvalidOAuthState", err)
			}
			if len(oauth.exchanged) != 0 {
				t.Errorf("token exchanged for invalid state: %v", oauth.exchanged)
			}
			if len(sessions.sessions) != 0 {
				t.Errorf("sessions saved: %v", sessions.sessions)
			}
		})
	}
}

func TestCompleteInstallStateIsSingleUse(t *testing.T) {
	ctx := context.Background()
	oauth := &fakeOAuth{token: "shpat_offline"}
	states := newFakeStates()
	svc := newInstallService(oauth, states, newFakeSessions(), newFakeConfigRepo())

	authURL, err := svc.BeginInstall(ctx, testShop)
	if err != nil {
		t.Fatalf("BeginInstall() error = %v", err)
	}
	state := stateOf(t, authURL)

	if _, err := svc.CompleteInstall(ctx, testShop, "code", state); err != nil {
		t.Fatalf("first CompleteInstall() error = %v", err)
	}
	if _, err := svc.CompleteInstall(ctx, testShop, "code", state); !errors.Is(err, domain.ErrInvalidOAuthState) {
		t.Errorf("replayed CompleteInstall() error = %v, want ErrInvalidOAuthState", err)
	}
}

func TestCompleteInstallExchangeFailure(t *testing.T) {
	ctx := context.Background()
	oauth := &fakeOAuth{exchangeErr: errors.New("invalid code")}
	states := newFakeStates()
	states.states["abc"] = testShop
	sessions := newFakeSessions()
	svc := newInstallService(oauth, states, sessions, newFakeConfigRepo())

	if _, err := svc.CompleteInstall(ctx, testShop, "bad", "abc"); err == nil {
		t.Fatal("CompleteInstall() error = nil")
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("session saved after failed exchange")
	}
}
