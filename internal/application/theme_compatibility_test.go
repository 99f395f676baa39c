package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

const (
	testShop    = "gift-shop.myshopify.com"
	testThemeID = "gid://shopify/OnlineStoreTheme/123"
)

const (
	appBlockSection   = "<div></div>\n{% schema %}\n{\"name\":\"Main\",\"blocks\":[{\"type\":\"@app\"},{\"type\":\"text\"}]}\n{% endschema %}"
	noAppBlockSection = "<div></div>\n{% schema %}\n{\"name\":\"Main\",\"blocks\":[{\"type\":\"text\"}]}\n{% endschema %}"
)

func compatibleTheme() *fakeShopify {
	f := newFakeShopify()
	f.mainTheme = &domain.ThemeIdentity{ID: testThemeID, Name: "Dawn"}
	f.files["templates/product.json"] = `{"sections":{"main":{"type":"main-product"}},"order":["main"]}`
	f.files["templates/collection.json"] = `{"sections":{"banner":{"type":"main-collection-banner"},"grid":{"type":"main-collection-product-grid"}}}`
	f.files["templates/index.json"] = `{"sections":{"main":{"type":"main-index"}}}`
	f.files["sections/main-product.liquid"] = appBlockSection
	f.files["sections/main-collection-banner.liquid"] = appBlockSection
	f.files["sections/main-index.liquid"] = appBlockSection
	return f
}

func TestCheckAllTemplatesSupported(t *testing.T) {
	f := compatibleTheme()
	metrics := &fakeMetrics{}
	svc := NewThemeCompatibilityService(f, metrics, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if !got.SupportsAppBlocks {
		t.Fatalf("SupportsAppBlocks = false, want true: %+v", got)
	}
	if got.ThemeID != testThemeID || got.ThemeName != "Dawn" {
		t.Errorf("theme = %q/%q", got.ThemeID, got.ThemeName)
	}
	wantTemplates := []string{"product", "collection", "index"}
	if !reflect.DeepEqual(got.SupportedTemplates, wantTemplates) {
		t.Errorf("SupportedTemplates = %v, want %v", got.SupportedTemplates, wantTemplates)
	}
	if len(got.MainSections) != 3 {
		t.Fatalf("MainSections = %d, want 3", len(got.MainSections))
	}
	if got.MainSections[1].Section != "sections/main-collection-banner.liquid" {
		t.Errorf("collection main section = %q", got.MainSections[1].Section)
	}
	if got.Outcome != domain.CompatibilityChecked {
		t.Errorf("Outcome = %q", got.Outcome)
	}
	if !reflect.DeepEqual(metrics.outcomes, []string{"checked"}) {
		t.Errorf("metrics = %v", metrics.outcomes)
	}
}

func TestCheckOneSectionWithoutAppBlock(t *testing.T) {
	f := compatibleTheme()
	f.files["sections/main-index.liquid"] = noAppBlockSection
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if got.SupportsAppBlocks {
		t.Fatal("SupportsAppBlocks = true, want false")
	}
	if !reflect.DeepEqual(got.SupportedTemplates, []string{"product", "collection"}) {
		t.Errorf("SupportedTemplates = %v", got.SupportedTemplates)
	}
	if got.MainSections[2].SupportsAppBlocks {
		t.Errorf("index section reported as supporting app blocks")
	}
}

func TestCheckMissingTemplate(t *testing.T) {
	f := compatibleTheme()
	delete(f.files, "templates/index.json")
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if got.SupportsAppBlocks {
		t.Fatal("SupportsAppBlocks = true, want false")
	}
	if got.Outcome != domain.CompatibilityIncompleteTemplates {
		t.Errorf("Outcome = %q", got.Outcome)
	}
	if got.ThemeID != testThemeID {
		t.Errorf("ThemeID = %q", got.ThemeID)
	}
	if len(got.SupportedTemplates) != 0 || len(got.MainSections) != 0 {
		t.Errorf("expected empty lists, got %+v", got)
	}
	if len(f.fileCalls) != 1 {
		t.Errorf("sections fetched although templates were incomplete")
	}
}

func TestCheckPermissionFallback(t *testing.T) {
	f := newFakeShopify()
	f.mainThemeErr = errors.New("Access denied for themes field. Required access: `read_themes` access scope.")
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if !got.SupportsAppBlocks {
		t.Error("SupportsAppBlocks = false, want true")
	}
	if got.ThemeID != "unknown" || got.ThemeName != "Unknown Theme" {
		t.Errorf("theme = %q/%q", got.ThemeID, got.ThemeName)
	}
	if !reflect.DeepEqual(got.SupportedTemplates, []string{"product", "collection", "index"}) {
		t.Errorf("SupportedTemplates = %v", got.SupportedTemplates)
	}
	if !got.IsFallback() {
		t.Error("IsFallback() = false")
	}
}

func TestCheckPermissionFallbackOnTemplateFetch(t *testing.T) {
	f := compatibleTheme()
	f.filesErr = errors.New("Access denied for themes field. Required access: `read_themes` access scope.")
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if got.Outcome != domain.CompatibilityPermissionFallback {
		t.Errorf("Outcome = %q, want %q", got.Outcome, domain.CompatibilityPermissionFallback)
	}
	if got.ThemeID != "unknown" {
		t.Errorf("ThemeID = %q, want unknown", got.ThemeID)
	}
	if !got.SupportsAppBlocks {
		t.Error("SupportsAppBlocks = false, want true")
	}
	if got.Error != "" {
		t.Errorf("Error = %q, want empty", got.Error)
	}
}

func TestCheckOtherError(t *testing.T) {
	f := newFakeShopify()
	f.mainTheme = &domain.ThemeIdentity{ID: testThemeID, Name: "Dawn"}
	f.filesErr = errors.New("connection reset")
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if got.SupportsAppBlocks {
		t.Error("SupportsAppBlocks = true, want false")
	}
	if got.Outcome != domain.CompatibilityFailed {
		t.Errorf("Outcome = %q", got.Outcome)
	}
	if got.Error == "" {
		t.Error("Error is empty")
	}
	if got.SupportedTemplates == nil || got.MainSections == nil {
		t.Error("lists must be empty, not nil")
	}
}

func TestCheckSkipsUnreadableTemplate(t *testing.T) {
	f := compatibleTheme()
	f.files["templates/index.json"] = `{"sections":{"main":{"type":"main-index"}`
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if !got.SupportsAppBlocks {
		t.Fatal("SupportsAppBlocks = false, want true when remaining templates support app blocks")
	}
	if !reflect.DeepEqual(got.SupportedTemplates, []string{"product", "collection"}) {
		t.Errorf("SupportedTemplates = %v", got.SupportedTemplates)
	}
}

func TestCheckNoReadableTemplates(t *testing.T) {
	f := compatibleTheme()
	for _, name := range []string{"templates/product.json", "templates/collection.json", "templates/index.json"} {
		f.files[name] = `{"sections":{"hero":{"type":"image-banner"}}}`
	}
	svc := NewThemeCompatibilityService(f, nil, zerolog.Nop())

	got := svc.Check(context.Background(), testShop)

	if got.SupportsAppBlocks {
		t.Error("SupportsAppBlocks = true, want false without main sections")
	}
	if len(f.fileCalls) != 1 {
		t.Errorf("ThemeFiles called %d times, want 1", len(f.fileCalls))
	}
}
