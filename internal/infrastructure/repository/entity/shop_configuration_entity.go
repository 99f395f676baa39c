package entity

import (
	"time"

	"simple-gifting/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoShopConfigurationDoc represents a shop configuration in MongoDB
type MongoShopConfigurationDoc struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Shop                  string             `bson:"shop"`
	PopupTitle            string             `bson:"popupTitle"`
	PopupAddButtonText    string             `bson:"popupAddButtonText"`
	PopupCancelButtonText string             `bson:"popupCancelButtonText"`
	AppIsEnabled          bool               `bson:"appIsEnabled"`
	DefaultCharLimit      int                `bson:"defaultCharLimit"`
	AutoTagging           bool               `bson:"autoTagging"`
	DebugMode             bool               `bson:"debugMode"`
	CacheStrategy         string             `bson:"cacheStrategy"`
	APITimeout            int                `bson:"apiTimeout"`
	InstallationCompleted bool               `bson:"installationCompleted"`
	PrimaryColor          string             `bson:"primaryColor"`
	SecondaryColor        string             `bson:"secondaryColor"`
	AccentColor           string             `bson:"accentColor"`
	BackgroundColor       string             `bson:"backgroundColor"`
	TextColor             string             `bson:"textColor"`
	ButtonStyle           string             `bson:"buttonStyle"`
	ButtonSize            string             `bson:"buttonSize"`
	ButtonBorderRadius    int                `bson:"buttonBorderRadius"`
	FontFamily            string             `bson:"fontFamily"`
	FontSize              string             `bson:"fontSize"`
	FontWeight            string             `bson:"fontWeight"`
	ModalAnimation        string             `bson:"modalAnimation"`
	AutoOpenPopup         bool               `bson:"autoOpenPopup"`
	BlurBackground        bool               `bson:"blurBackground"`
	CustomCSS             string             `bson:"customCss,omitempty"`
	CustomFontURL         string             `bson:"customFontUrl,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopConfigurationDoc) ToDomain() *domain.ShopConfiguration {
	return &domain.ShopConfiguration{
		ID:                    d.ID.Hex(),
		Shop:                  d.Shop,
		PopupTitle:            d.PopupTitle,
		PopupAddButtonText:    d.PopupAddButtonText,
		PopupCancelButtonText: d.PopupCancelButtonText,
		AppIsEnabled:          d.AppIsEnabled,
		DefaultCharLimit:      d.DefaultCharLimit,
		AutoTagging:           d.AutoTagging,
		DebugMode:             d.DebugMode,
		CacheStrategy:         d.CacheStrategy,
		APITimeout:            d.APITimeout,
		InstallationCompleted: d.InstallationCompleted,
		PrimaryColor:          d.PrimaryColor,
		SecondaryColor:        d.SecondaryColor,
		AccentColor:           d.AccentColor,
		BackgroundColor:       d.BackgroundColor,
		TextColor:             d.TextColor,
		ButtonStyle:           d.ButtonStyle,
		ButtonSize:            d.ButtonSize,
		ButtonBorderRadius:    d.ButtonBorderRadius,
		FontFamily:            d.FontFamily,
		FontSize:              d.FontSize,
		FontWeight:            d.FontWeight,
		ModalAnimation:        d.ModalAnimation,
		AutoOpenPopup:         d.AutoOpenPopup,
		BlurBackground:        d.BlurBackground,
		CustomCSS:             d.CustomCSS,
		CustomFontURL:         d.CustomFontURL,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

// MongoShopConfigurationDocFromDomain converts a domain entity to a MongoDB document
func MongoShopConfigurationDocFromDomain(c *domain.ShopConfiguration) *MongoShopConfigurationDoc {
	doc := &MongoShopConfigurationDoc{
		Shop:                  c.Shop,
		PopupTitle:            c.PopupTitle,
		PopupAddButtonText:    c.PopupAddButtonText,
		PopupCancelButtonText: c.PopupCancelButtonText,
		AppIsEnabled:          c.AppIsEnabled,
		DefaultCharLimit:      c.DefaultCharLimit,
		AutoTagging:           c.AutoTagging,
		DebugMode:             c.DebugMode,
		CacheStrategy:         c.CacheStrategy,
		APITimeout:            c.APITimeout,
		InstallationCompleted: c.InstallationCompleted,
		PrimaryColor:          c.PrimaryColor,
		SecondaryColor:        c.SecondaryColor,
		AccentColor:           c.AccentColor,
		BackgroundColor:       c.BackgroundColor,
		TextColor:             c.TextColor,
		ButtonStyle:           c.ButtonStyle,
		ButtonSize:            c.ButtonSize,
		ButtonBorderRadius:    c.ButtonBorderRadius,
		FontFamily:            c.FontFamily,
		FontSize:              c.FontSize,
		FontWeight:            c.FontWeight,
		ModalAnimation:        c.ModalAnimation,
		AutoOpenPopup:         c.AutoOpenPopup,
		BlurBackground:        c.BlurBackground,
		CustomCSS:             c.CustomCSS,
		CustomFontURL:         c.CustomFontURL,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}

	if c.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(c.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

// MongoShopConfigurationPatchDoc is the $set document of a partial update.
// Nil pointers are omitted, so only provided fields change.
type MongoShopConfigurationPatchDoc struct {
	PopupTitle            *string   `bson:"popupTitle,omitempty"`
	PopupAddButtonText    *string   `bson:"popupAddButtonText,omitempty"`
	PopupCancelButtonText *string   `bson:"popupCancelButtonText,omitempty"`
	AppIsEnabled          *bool     `bson:"appIsEnabled,omitempty"`
	DefaultCharLimit      *int      `bson:"defaultCharLimit,omitempty"`
	AutoTagging           *bool     `bson:"autoTagging,omitempty"`
	DebugMode             *bool     `bson:"debugMode,omitempty"`
	CacheStrategy         *string   `bson:"cacheStrategy,omitempty"`
	APITimeout            *int      `bson:"apiTimeout,omitempty"`
	InstallationCompleted *bool     `bson:"installationCompleted,omitempty"`
	PrimaryColor          *string   `bson:"primaryColor,omitempty"`
	SecondaryColor        *string   `bson:"secondaryColor,omitempty"`
	AccentColor           *string   `bson:"accentColor,omitempty"`
	BackgroundColor       *string   `bson:"backgroundColor,omitempty"`
	TextColor             *string   `bson:"textColor,omitempty"`
	ButtonStyle           *string   `bson:"buttonStyle,omitempty"`
	ButtonSize            *string   `bson:"buttonSize,omitempty"`
	ButtonBorderRadius    *int      `bson:"buttonBorderRadius,omitempty"`
	FontFamily            *string   `bson:"fontFamily,omitempty"`
	FontSize              *string   `bson:"fontSize,omitempty"`
	FontWeight            *string   `bson:"fontWeight,omitempty"`
	ModalAnimation        *string   `bson:"modalAnimation,omitempty"`
	AutoOpenPopup         *bool     `bson:"autoOpenPopup,omitempty"`
	BlurBackground        *bool     `bson:"blurBackground,omitempty"`
	CustomCSS             *string   `bson:"customCss,omitempty"`
	CustomFontURL         *string   `bson:"customFontUrl,omitempty"`
	UpdatedAt             time.Time `bson:"updatedAt"`
}

// MongoShopConfigurationPatchDocFromDomain converts a patch to its $set document
func MongoShopConfigurationPatchDocFromDomain(p *domain.ShopConfigurationPatch, now time.Time) *MongoShopConfigurationPatchDoc {
	return &MongoShopConfigurationPatchDoc{
		PopupTitle:            p.PopupTitle,
		PopupAddButtonText:    p.PopupAddButtonText,
		PopupCancelButtonText: p.PopupCancelButtonText,
		AppIsEnabled:          p.AppIsEnabled,
		DefaultCharLimit:      p.DefaultCharLimit,
		AutoTagging:           p.AutoTagging,
		DebugMode:             p.DebugMode,
		CacheStrategy:         p.CacheStrategy,
		APITimeout:            p.APITimeout,
		InstallationCompleted: p.InstallationCompleted,
		PrimaryColor:          p.PrimaryColor,
		SecondaryColor:        p.SecondaryColor,
		AccentColor:           p.AccentColor,
		BackgroundColor:       p.BackgroundColor,
		TextColor:             p.TextColor,
		ButtonStyle:           p.ButtonStyle,
		ButtonSize:            p.ButtonSize,
		ButtonBorderRadius:    p.ButtonBorderRadius,
		FontFamily:            p.FontFamily,
		FontSize:              p.FontSize,
		FontWeight:            p.FontWeight,
		ModalAnimation:        p.ModalAnimation,
		AutoOpenPopup:         p.AutoOpenPopup,
		BlurBackground:        p.BlurBackground,
		CustomCSS:             p.CustomCSS,
		CustomFontURL:         p.CustomFontURL,
		UpdatedAt:             now,
	}
}
