package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ThemeIdentity identifies a theme of a shop
type ThemeIdentity struct {
	ID   string `json:"id"` // GraphQL GID or numeric REST id
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// ThemeFile is a theme file body returned by the Admin GraphQL API
type ThemeFile struct {
	Filename string
	Content  string
}

// ThemeAsset mirrors a theme asset of the REST asset API.
// Binary assets carry Attachment (base64) instead of Value.
type ThemeAsset struct {
	Key        string `json:"key"`
	Value      string `json:"value,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

// CompatibilityOutcome tells how a ThemeCompatibility result was produced
type CompatibilityOutcome string

const (
	// CompatibilityChecked means the templates and sections were inspected
	CompatibilityChecked CompatibilityOutcome = "checked"
	// CompatibilityPermissionFallback means themes could not be read and compatibility is assumed
	CompatibilityPermissionFallback CompatibilityOutcome = "permission_fallback"
	// CompatibilityIncompleteTemplates means not every target template exists as JSON
	CompatibilityIncompleteTemplates CompatibilityOutcome = "incomplete_templates"
	// CompatibilityFailed means the check errored
	CompatibilityFailed CompatibilityOutcome = "failed"
)

// MainSection links a template to the section rendering its main content
type MainSection struct {
	Template          string `json:"template"`
	Section           string `json:"section"`
	SupportsAppBlocks bool   `json:"supportsAppBlocks"`
}

// ThemeCompatibility is the transient result of an app block compatibility check
type ThemeCompatibility struct {
	SupportsAppBlocks  bool                 `json:"supportsAppBlocks"`
	ThemeID            string               `json:"themeId"`
	ThemeName          string               `json:"themeName"`
	SupportedTemplates []string             `json:"supportedTemplates"`
	MainSections       []MainSection        `json:"mainSections"`
	Outcome            CompatibilityOutcome `json:"outcome"`
	Error              string               `json:"error,omitempty"`
}

// IsFallback reports whether compatibility was assumed rather than verified
func (c *ThemeCompatibility) IsFallback() bool {
	return c.Outcome == CompatibilityPermissionFallback
}

// InjectionResult aggregates the outcome of every injection step
type InjectionResult struct {
	Success       bool     `json:"success"`
	Injected      []string `json:"injected"`
	Errors        []string `json:"errors"`
	AlreadyExists []string `json:"alreadyExists"`
}

// RemovalResult lists the injected assets that were deleted
type RemovalResult struct {
	Success bool     `json:"success"`
	Removed []string `json:"removed"`
	Errors  []string `json:"errors"`
}

// ThemeOperationKind names an audited theme mutation
type ThemeOperationKind string

const (
	ThemeOperationInject ThemeOperationKind = "inject"
	ThemeOperationRemove ThemeOperationKind = "remove"
)

// ThemeOperation is the audit record of an inject or remove run
type ThemeOperation struct {
	ID            string             `json:"id"`
	Shop          string             `json:"shop"`
	ThemeID       string             `json:"theme_id"`
	Kind          ThemeOperationKind `json:"kind"`
	Success       bool               `json:"success"`
	Changed       []string           `json:"changed"`
	AlreadyExists []string           `json:"already_exists"`
	Errors        []string           `json:"errors"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ThemeNumericID extracts the numeric theme id used by the REST asset API from
// either a bare number or a GID such as gid://shopify/OnlineStoreTheme/123.
func ThemeNumericID(id string) (uint64, error) {
	raw := strings.TrimSpace(id)
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid theme id %q", id)
	}
	return n, nil
}
