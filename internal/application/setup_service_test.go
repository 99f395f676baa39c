package application

import (
	"context"
	"errors"
	"testing"

	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

func newSetupService(f *fakeShopify) (*SetupService, *fakeConfigRepo) {
	repo := newFakeConfigRepo()
	configs := NewShopConfigurationService(repo, nil, zerolog.Nop())
	compat := NewThemeCompatibilityService(f, nil, zerolog.Nop())
	return NewSetupService(f, configs, compat, zerolog.Nop()), repo
}

func TestConfigureMetafields(t *testing.T) {
	f := newFakeShopify()
	f.definitionKeys = []string{"max_chars"}
	f.createDefErr["placeholder_text"] = &domain.UserErrorsError{
		Operation: "metafieldDefinitionCreate",
		Errors:    []domain.UserError{{Field: []string{"definition", "key"}, Message: "Key is in use"}},
	}
	f.createDefErr["required"] = errors.New("connection reset")
	svc, _ := newSetupService(f)

	results, err := svc.ConfigureMetafields(context.Background(), testShop)
	if err != nil {
		t.Fatalf("ConfigureMetafields() error = %v", err)
	}
	if len(results) != len(domain.RequiredMetafieldDefinitions) {
		t.Fatalf("got %d results, want %d", len(results), len(domain.RequiredMetafieldDefinitions))
	}

	byKey := map[string]domain.DefinitionResult{}
	for _, r := range results {
		byKey[r.Key] = r
	}
	if r := byKey["max_chars"]; !r.Success || !r.Skipped {
		t.Errorf("existing definition = %+v, want skipped", r)
	}
	if r := byKey["is_gifting_product"]; !r.Success || r.Skipped {
		t.Errorf("new definition = %+v, want created", r)
	}
	if r := byKey["placeholder_text"]; r.Success || len(r.Errors) != 1 || r.Errors[0].Message != "Key is in use" {
		t.Errorf("user error result = %+v", r)
	}
	if r := byKey["required"]; r.Success || len(r.Errors) != 1 || r.Errors[0].Message != "connection reset" {
		t.Errorf("transport error result = %+v", r)
	}
	if f.createDefinition != 3 {
		t.Errorf("create calls = %d, want 3", f.createDefinition)
	}
}

func TestConfigureMetafieldsListFailure(t *testing.T) {
	f := newFakeShopify()
	f.definitionErr = errors.New("throttled")
	svc, _ := newSetupService(f)

	if _, err := svc.ConfigureMetafields(context.Background(), testShop); err == nil {
		t.Fatal("expected error when definitions cannot be listed")
	}
	if f.createDefinition != 0 {
		t.Errorf("create calls = %d, want 0", f.createDefinition)
	}
}

func TestStatus(t *testing.T) {
	f := compatibleTheme()
	f.definitionKeys = []string{"max_chars", "required", "unrelated", "max_chars"}
	svc, _ := newSetupService(f)

	status, err := svc.Status(context.Background(), testShop)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.MetafieldsConfigured != 2 || status.RequiredMetafields != 4 {
		t.Errorf("metafields = %d/%d, want 2/4", status.MetafieldsConfigured, status.RequiredMetafields)
	}
	if !status.AppEnabled || status.InstallationCompleted {
		t.Errorf("flags = %+v", status)
	}
	if status.ThemeCompatibility == nil || !status.ThemeCompatibility.SupportsAppBlocks {
		t.Errorf("ThemeCompatibility = %+v", status.ThemeCompatibility)
	}
}

func TestCompleteInstallation(t *testing.T) {
	f := newFakeShopify()
	svc, repo := newSetupService(f)
	cfg := domain.NewDefaultShopConfiguration(testShop)
	cfg.AppIsEnabled = false
	repo.configs[testShop] = cfg

	got, err := svc.CompleteInstallation(context.Background(), testShop)
	if err != nil {
		t.Fatalf("CompleteInstallation() error = %v", err)
	}
	if !got.InstallationCompleted || !got.AppIsEnabled {
		t.Errorf("got %+v", got)
	}
}

func TestEnableApp(t *testing.T) {
	f := newFakeShopify()
	svc, repo := newSetupService(f)
	cfg := domain.NewDefaultShopConfiguration(testShop)
	cfg.AppIsEnabled = false
	repo.configs[testShop] = cfg

	got, err := svc.EnableApp(context.Background(), testShop)
	if err != nil {
		t.Fatalf("EnableApp() error = %v", err)
	}
	if !got.AppIsEnabled || got.InstallationCompleted {
		t.Errorf("got %+v", got)
	}
}

func TestDashboardStats(t *testing.T) {
	f := newFakeShopify()
	f.hasProducts = true
	f.definitionKeys = []string{"max_chars", "required"}
	svc, _ := newSetupService(f)

	stats := svc.DashboardStats(context.Background(), testShop)
	want := domain.DashboardStats{HasProducts: true, MetafieldsConfigured: 2, AppEnabled: true}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

func TestDashboardStatsDegradesToZero(t *testing.T) {
	f := newFakeShopify()
	f.hasProductsErr = errors.New("boom")
	f.definitionErr = errors.New("boom")
	svc, repo := newSetupService(f)
	repo.getErr = errors.New("mongo down")

	stats := svc.DashboardStats(context.Background(), testShop)
	if *stats != (domain.DashboardStats{}) {
		t.Errorf("stats = %+v, want zero values", *stats)
	}
}
