package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ShopConfiguration holds the per-shop popup text, feature flags and styling.
// There is exactly one configuration per shop domain.
type ShopConfiguration struct {
	ID                    string    `json:"id"`
	Shop                  string    `json:"shop"`
	PopupTitle            string    `json:"popupTitle"`
	PopupAddButtonText    string    `json:"popupAddButtonText"`
	PopupCancelButtonText string    `json:"popupCancelButtonText"`
	AppIsEnabled          bool      `json:"appIsEnabled"`
	DefaultCharLimit      int       `json:"defaultCharLimit"`
	AutoTagging           bool      `json:"autoTagging"`
	DebugMode             bool      `json:"debugMode"`
	CacheStrategy         string    `json:"cacheStrategy"`
	APITimeout            int       `json:"apiTimeout"`
	InstallationCompleted bool      `json:"installationCompleted"`
	PrimaryColor          string    `json:"primaryColor"`
	SecondaryColor        string    `json:"secondaryColor"`
	AccentColor           string    `json:"accentColor"`
	BackgroundColor       string    `json:"backgroundColor"`
	TextColor             string    `json:"textColor"`
	ButtonStyle           string    `json:"buttonStyle"`
	ButtonSize            string    `json:"buttonSize"`
	ButtonBorderRadius    int       `json:"buttonBorderRadius"`
	FontFamily            string    `json:"fontFamily"`
	FontSize              string    `json:"fontSize"`
	FontWeight            string    `json:"fontWeight"`
	ModalAnimation        string    `json:"modalAnimation"`
	AutoOpenPopup         bool      `json:"autoOpenPopup"`
	BlurBackground        bool      `json:"blurBackground"`
	CustomCSS             string    `json:"customCss"`
	CustomFontURL         string    `json:"customFontUrl"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// NewDefaultShopConfiguration returns the configuration a shop starts with
func NewDefaultShopConfiguration(shop string) *ShopConfiguration {
	now := time.Now()
	return &ShopConfiguration{
		Shop:                  shop,
		PopupTitle:            "Add a personalized message",
		PopupAddButtonText:    "Add Card",
		PopupCancelButtonText: "Cancel",
		AppIsEnabled:          true,
		DefaultCharLimit:      150,
		AutoTagging:           true,
		DebugMode:             false,
		CacheStrategy:         "browser",
		APITimeout:            30,
		PrimaryColor:          "#2563eb",
		SecondaryColor:        "#1d4ed8",
		AccentColor:           "#059669",
		BackgroundColor:       "#ffffff",
		TextColor:             "#1e293b",
		ButtonStyle:           "primary",
		ButtonSize:            "medium",
		ButtonBorderRadius:    12,
		FontFamily:            "Inter",
		FontSize:              "16",
		FontWeight:            "500",
		ModalAnimation:        "fade",
		AutoOpenPopup:         false,
		BlurBackground:        true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// StylingConfig is the storefront view of the popup styling
type StylingConfig struct {
	PrimaryColor       string `json:"primaryColor"`
	SecondaryColor     string `json:"secondaryColor"`
	AccentColor        string `json:"accentColor"`
	BackgroundColor    string `json:"backgroundColor"`
	TextColor          string `json:"textColor"`
	ButtonStyle        string `json:"buttonStyle"`
	ButtonSize         string `json:"buttonSize"`
	ButtonBorderRadius int    `json:"buttonBorderRadius"`
	FontFamily         string `json:"fontFamily"`
	FontSize           string `json:"fontSize"`
	FontWeight         string `json:"fontWeight"`
	ModalAnimation     string `json:"modalAnimation"`
	AutoOpenPopup      bool   `json:"autoOpenPopup"`
	BlurBackground     bool   `json:"blurBackground"`
	CustomCSS          string `json:"customCss"`
	CustomFontURL      string `json:"customFontUrl"`
}

// PublicConfig is the storefront view of the popup text and enablement
type PublicConfig struct {
	PopupTitle            string `json:"popupTitle"`
	PopupAddButtonText    string `json:"popupAddButtonText"`
	PopupCancelButtonText string `json:"popupCancelButtonText"`
	DefaultCharLimit      int    `json:"defaultCharLimit"`
	AppIsEnabled          bool   `json:"appIsEnabled"`
}

// Styling projects the styling fields
func (c *ShopConfiguration) Styling() StylingConfig {
	return StylingConfig{
		PrimaryColor:       c.PrimaryColor,
		SecondaryColor:     c.SecondaryColor,
		AccentColor:        c.AccentColor,
		BackgroundColor:    c.BackgroundColor,
		TextColor:          c.TextColor,
		ButtonStyle:        c.ButtonStyle,
		ButtonSize:         c.ButtonSize,
		ButtonBorderRadius: c.ButtonBorderRadius,
		FontFamily:         c.FontFamily,
		FontSize:           c.FontSize,
		FontWeight:         c.FontWeight,
		ModalAnimation:     c.ModalAnimation,
		AutoOpenPopup:      c.AutoOpenPopup,
		BlurBackground:     c.BlurBackground,
		CustomCSS:          c.CustomCSS,
		CustomFontURL:      c.CustomFontURL,
	}
}

// Public projects the fields safe to expose on the storefront
func (c *ShopConfiguration) Public() PublicConfig {
	return PublicConfig{
		PopupTitle:            c.PopupTitle,
		PopupAddButtonText:    c.PopupAddButtonText,
		PopupCancelButtonText: c.PopupCancelButtonText,
		DefaultCharLimit:      c.DefaultCharLimit,
		AppIsEnabled:          c.AppIsEnabled,
	}
}

// ShopConfigurationPatch is a partial update; nil fields are left untouched
type ShopConfigurationPatch struct {
	PopupTitle            *string `json:"popupTitle,omitempty"`
	PopupAddButtonText    *string `json:"popupAddButtonText,omitempty"`
	PopupCancelButtonText *string `json:"popupCancelButtonText,omitempty"`
	AppIsEnabled          *bool   `json:"appIsEnabled,omitempty"`
	DefaultCharLimit      *int    `json:"defaultCharLimit,omitempty"`
	AutoTagging           *bool   `json:"autoTagging,omitempty"`
	DebugMode             *bool   `json:"debugMode,omitempty"`
	CacheStrategy         *string `json:"cacheStrategy,omitempty"`
	APITimeout            *int    `json:"apiTimeout,omitempty"`
	InstallationCompleted *bool   `json:"installationCompleted,omitempty"`
	PrimaryColor          *string `json:"primaryColor,omitempty"`
	SecondaryColor        *string `json:"secondaryColor,omitempty"`
	AccentColor           *string `json:"accentColor,omitempty"`
	BackgroundColor       *string `json:"backgroundColor,omitempty"`
	TextColor             *string `json:"textColor,omitempty"`
	ButtonStyle           *string `json:"buttonStyle,omitempty"`
	ButtonSize            *string `json:"buttonSize,omitempty"`
	ButtonBorderRadius    *int    `json:"buttonBorderRadius,omitempty"`
	FontFamily            *string `json:"fontFamily,omitempty"`
	FontSize              *string `json:"fontSize,omitempty"`
	FontWeight            *string `json:"fontWeight,omitempty"`
	ModalAnimation        *string `json:"modalAnimation,omitempty"`
	AutoOpenPopup         *bool   `json:"autoOpenPopup,omitempty"`
	BlurBackground        *bool   `json:"blurBackground,omitempty"`
	CustomCSS             *string `json:"customCss,omitempty"`
	CustomFontURL         *string `json:"customFontUrl,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p *ShopConfigurationPatch) IsEmpty() bool {
	return *p == ShopConfigurationPatch{}
}

// Apply copies every non-nil field of the patch onto c
func (p *ShopConfigurationPatch) Apply(c *ShopConfiguration) {
	setString(&c.PopupTitle, p.PopupTitle)
	setString(&c.PopupAddButtonText, p.PopupAddButtonText)
	setString(&c.PopupCancelButtonText, p.PopupCancelButtonText)
	setBool(&c.AppIsEnabled, p.AppIsEnabled)
	setInt(&c.DefaultCharLimit, p.DefaultCharLimit)
	setBool(&c.AutoTagging, p.AutoTagging)
	setBool(&c.DebugMode, p.DebugMode)
	setString(&c.CacheStrategy, p.CacheStrategy)
	setInt(&c.APITimeout, p.APITimeout)
	setBool(&c.InstallationCompleted, p.InstallationCompleted)
	setString(&c.PrimaryColor, p.PrimaryColor)
	setString(&c.SecondaryColor, p.SecondaryColor)
	setString(&c.AccentColor, p.AccentColor)
	setString(&c.BackgroundColor, p.BackgroundColor)
	setString(&c.TextColor, p.TextColor)
	setString(&c.ButtonStyle, p.ButtonStyle)
	setString(&c.ButtonSize, p.ButtonSize)
	setInt(&c.ButtonBorderRadius, p.ButtonBorderRadius)
	setString(&c.FontFamily, p.FontFamily)
	setString(&c.FontSize, p.FontSize)
	setString(&c.FontWeight, p.FontWeight)
	setString(&c.ModalAnimation, p.ModalAnimation)
	setBool(&c.AutoOpenPopup, p.AutoOpenPopup)
	setBool(&c.BlurBackground, p.BlurBackground)
	setString(&c.CustomCSS, p.CustomCSS)
	setString(&c.CustomFontURL, p.CustomFontURL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// formSkippedFields are never updated from the settings form
var formSkippedFields = map[string]bool{
	"action":                true,
	"id":                    true,
	"shop":                  true,
	"createdAt":             true,
	"updatedAt":             true,
	"installationCompleted": true,
}

// ParseShopConfigurationForm converts settings form values into a patch.
// Booleans are true only for "true" or "on"; unknown keys are ignored.
func ParseShopConfigurationForm(values url.Values) (*ShopConfigurationPatch, error) {
	patch := &ShopConfigurationPatch{}

	strFields := map[string]**string{
		"popupTitle":            &patch.PopupTitle,
		"popupAddButtonText":    &patch.PopupAddButtonText,
		"popupCancelButtonText": &patch.PopupCancelButtonText,
		"cacheStrategy":         &patch.CacheStrategy,
		"primaryColor":          &patch.PrimaryColor,
		"secondaryColor":        &patch.SecondaryColor,
		"accentColor":           &patch.AccentColor,
		"backgroundColor":       &patch.BackgroundColor,
		"textColor":             &patch.TextColor,
		"buttonStyle":           &patch.ButtonStyle,
		"buttonSize":            &patch.ButtonSize,
		"fontFamily":            &patch.FontFamily,
		"fontSize":              &patch.FontSize,
		"fontWeight":            &patch.FontWeight,
		"modalAnimation":        &patch.ModalAnimation,
		"customCss":             &patch.CustomCSS,
		"customFontUrl":         &patch.CustomFontURL,
	}
	boolFields := map[string]**bool{
		"appIsEnabled":   &patch.AppIsEnabled,
		"autoTagging":    &patch.AutoTagging,
		"debugMode":      &patch.DebugMode,
		"autoOpenPopup":  &patch.AutoOpenPopup,
		"blurBackground": &patch.BlurBackground,
	}
	intFields := map[string]**int{
		"apiTimeout":         &patch.APITimeout,
		"defaultCharLimit":   &patch.DefaultCharLimit,
		"buttonBorderRadius": &patch.ButtonBorderRadius,
	}

	for key, vals := range values {
		if formSkippedFields[key] || len(vals) == 0 {
			continue
		}
		value := vals[len(vals)-1]

		if dst, ok := strFields[key]; ok {
			v := value
			*dst = &v
			continue
		}
		if dst, ok := boolFields[key]; ok {
			v := value == "true" || value == "on"
			*dst = &v
			continue
		}
		if dst, ok := intFields[key]; ok {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, &ValidationError{Field: key, Message: fmt.Sprintf("must be an integer, got %q", value)}
			}
			*dst = &n
		}
	}

	return patch, nil
}
