package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// GiftingTag marks a product as a gifting product
	GiftingTag = "simple-gifting-product"
	// MetafieldNamespace holds every metafield owned by the app
	MetafieldNamespace = "simple_gifting"

	DefaultMaxCharacters = 150
	DefaultProductType   = "card"
)

// Gifting product types
const (
	ProductTypeCard   = "card"
	ProductTypeRibbon = "ribbon"
)

// Product metafield keys
const (
	MetafieldProductType  = "product_type"
	MetafieldMaxChars     = "max_chars"
	MetafieldCustomizable = "customizable"
	MetafieldRibbonLength = "ribbon_length"
)

// Metafield value types
const (
	MetafieldTypeSingleLineText = "single_line_text_field"
	MetafieldTypeInteger        = "number_integer"
	MetafieldTypeBoolean        = "boolean"
)

// GiftingMetafieldKeys are the per-product keys removed on unlink
var GiftingMetafieldKeys = []string{
	MetafieldProductType,
	MetafieldMaxChars,
	MetafieldCustomizable,
	MetafieldRibbonLength,
}

// MetafieldInput is a single metafield write
type MetafieldInput struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// MetafieldDefinition describes a product metafield definition created at install time
type MetafieldDefinition struct {
	Namespace   string `json:"namespace"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	OwnerType   string `json:"ownerType"`
}

// RequiredMetafieldDefinitions are configured during installation
var RequiredMetafieldDefinitions = []MetafieldDefinition{
	{
		Namespace:   MetafieldNamespace,
		Key:         "max_chars",
		Name:        "Maximum Characters",
		Description: "Maximum number of characters allowed for personalization",
		Type:        MetafieldTypeInteger,
		OwnerType:   "PRODUCT",
	},
	{
		Namespace:   MetafieldNamespace,
		Key:         "is_gifting_product",
		Name:        "Is Gifting Product",
		Description: "Flags if this product is used for gifting personalization.",
		Type:        MetafieldTypeBoolean,
		OwnerType:   "PRODUCT",
	},
	{
		Namespace:   MetafieldNamespace,
		Key:         "placeholder_text",
		Name:        "Placeholder Text",
		Description: "Placeholder text for personalization input",
		Type:        MetafieldTypeSingleLineText,
		OwnerType:   "PRODUCT",
	},
	{
		Namespace:   MetafieldNamespace,
		Key:         "required",
		Name:        "Required Field",
		Description: "Whether personalization is required for this product",
		Type:        MetafieldTypeBoolean,
		OwnerType:   "PRODUCT",
	},
}

// GiftingSettings are the gifting metafields of one product as stored on the platform.
// Nil means the metafield is not set.
type GiftingSettings struct {
	ProductType  *string `json:"productType"`
	MaxChars     *string `json:"maxChars"`
	RibbonLength *string `json:"ribbonLength"`
	Customizable *string `json:"customizable"`
}

// Product is an admin view of a product
type Product struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Handle          string          `json:"handle"`
	Status          string          `json:"status"`
	TotalInventory  int             `json:"totalInventory"`
	Tags            []string        `json:"tags"`
	ProductType     string          `json:"productType"`
	FeaturedImage   string          `json:"featuredImageUrl,omitempty"`
	Variants        []Variant       `json:"variants"`
	GiftingSettings GiftingSettings `json:"giftingSettings"`
}

// HasTag reports whether the product carries tag
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Variant is a product variant with its raw price string
type Variant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// StorefrontVariant is a variant as served to the storefront script
type StorefrontVariant struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// StorefrontProduct is a gifting product as served to the storefront script
type StorefrontProduct struct {
	ID            string              `json:"id"`
	VariantID     string              `json:"variantId"`
	Title         string              `json:"title"`
	Handle        string              `json:"handle"`
	ImageURL      string              `json:"imageUrl,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	MaxCharacters int                 `json:"maxCharacters"`
	Customizable  bool                `json:"customizable"`
	ProductType   string              `json:"productType,omitempty"`
	RibbonLength  int                 `json:"ribbonLength"`
	Variants      []StorefrontVariant `json:"variants"`
}

// ParsePrice parses a money string, treating empty or malformed values as zero
func ParsePrice(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseIntOr parses a metafield integer, falling back to def when unset or malformed
func ParseIntOr(raw *string, def int) int {
	if raw == nil || *raw == "" {
		return def
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return def
	}
	return n
}

// LinkProductInput configures a product as a gifting product
type LinkProductInput struct {
	ProductID    string `json:"productId"`
	GiftingType  string `json:"giftingType"`
	MaxChars     string `json:"maxChars"`
	RibbonLength string `json:"ribbonLength"`
	Customizable bool   `json:"customizable"`
}

// Validate checks the link input
func (in *LinkProductInput) Validate() error {
	if in.ProductID == "" {
		return &ValidationError{Field: "productId", Message: "is required"}
	}
	if in.GiftingType == "" {
		in.GiftingType = DefaultProductType
	}
	if in.GiftingType != ProductTypeCard && in.GiftingType != ProductTypeRibbon {
		return &ValidationError{Field: "giftingType", Message: "must be card or ribbon"}
	}
	if in.MaxChars == "" {
		in.MaxChars = strconv.Itoa(DefaultMaxCharacters)
	}
	if _, err := strconv.Atoi(in.MaxChars); err != nil {
		return &ValidationError{Field: "maxChars", Message: "must be an integer"}
	}
	if in.RibbonLength != "" {
		if _, err := strconv.Atoi(in.RibbonLength); err != nil {
			return &ValidationError{Field: "ribbonLength", Message: "must be an integer"}
		}
	}
	return nil
}

// Metafields returns the metafields written when linking
func (in *LinkProductInput) Metafields() []MetafieldInput {
	fields := []MetafieldInput{
		{Namespace: MetafieldNamespace, Key: MetafieldProductType, Type: MetafieldTypeSingleLineText, Value: in.GiftingType},
		{Namespace: MetafieldNamespace, Key: MetafieldMaxChars, Type: MetafieldTypeInteger, Value: in.MaxChars},
		{Namespace: MetafieldNamespace, Key: MetafieldCustomizable, Type: MetafieldTypeBoolean, Value: strconv.FormatBool(in.Customizable)},
	}
	if in.GiftingType == ProductTypeRibbon && in.RibbonLength != "" {
		fields = append(fields, MetafieldInput{
			Namespace: MetafieldNamespace, Key: MetafieldRibbonLength, Type: MetafieldTypeInteger, Value: in.RibbonLength,
		})
	}
	return fields
}

// ProductSettingsInput edits the gifting metafields of a single product
type ProductSettingsInput struct {
	ProductType  string `json:"productType"`
	MaxChars     string `json:"maxChars"`
	RibbonLength string `json:"ribbonLength"`
	Customizable string `json:"customizable"`
}

// Metafields returns the non-empty metafield writes of the edit
func (in *ProductSettingsInput) Metafields() []MetafieldInput {
	var fields []MetafieldInput
	if in.MaxChars != "" {
		fields = append(fields, MetafieldInput{Namespace: MetafieldNamespace, Key: MetafieldMaxChars, Type: MetafieldTypeInteger, Value: in.MaxChars})
	}
	if in.ProductType != "" {
		fields = append(fields, MetafieldInput{Namespace: MetafieldNamespace, Key: MetafieldProductType, Type: MetafieldTypeSingleLineText, Value: in.ProductType})
	}
	if in.Customizable != "" {
		fields = append(fields, MetafieldInput{Namespace: MetafieldNamespace, Key: MetafieldCustomizable, Type: MetafieldTypeBoolean, Value: in.Customizable})
	}
	if in.RibbonLength != "" {
		fields = append(fields, MetafieldInput{Namespace: MetafieldNamespace, Key: MetafieldRibbonLength, Type: MetafieldTypeInteger, Value: in.RibbonLength})
	}
	return fields
}

// RepairMetafields are the defaults written by a metafield repair
func RepairMetafields() []MetafieldInput {
	return []MetafieldInput{
		{Namespace: MetafieldNamespace, Key: MetafieldProductType, Type: MetafieldTypeSingleLineText, Value: DefaultProductType},
		{Namespace: MetafieldNamespace, Key: MetafieldMaxChars, Type: MetafieldTypeInteger, Value: strconv.Itoa(DefaultMaxCharacters)},
		{Namespace: MetafieldNamespace, Key: MetafieldCustomizable, Type: MetafieldTypeBoolean, Value: "true"},
	}
}

// AutoTagMetafields are the defaults written when a new product is tagged automatically
func AutoTagMetafields(charLimit int) []MetafieldInput {
	if charLimit <= 0 {
		charLimit = DefaultMaxCharacters
	}
	return []MetafieldInput{
		{Namespace: MetafieldNamespace, Key: MetafieldProductType, Type: MetafieldTypeSingleLineText, Value: DefaultProductType},
		{Namespace: MetafieldNamespace, Key: MetafieldMaxChars, Type: MetafieldTypeInteger, Value: strconv.Itoa(charLimit)},
		{Namespace: MetafieldNamespace, Key: MetafieldCustomizable, Type: MetafieldTypeBoolean, Value: "true"},
	}
}

// ProductGID converts a numeric product id into its GraphQL id
func ProductGID(id int64) string {
	return "gid://shopify/Product/" + strconv.FormatInt(id, 10)
}

// AppendTag returns tags with tag added once
func AppendTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return append(out, tag)
}

// RemoveTag returns tags without tag
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// InstallationStatus summarises the setup state of a shop
type InstallationStatus struct {
	Shop                  string              `json:"shop"`
	MetafieldsConfigured  int                 `json:"metafieldsConfigured"`
	RequiredMetafields    int                 `json:"requiredMetafields"`
	AppEnabled            bool                `json:"appEnabled"`
	InstallationCompleted bool                `json:"installationCompleted"`
	ThemeCompatibility    *ThemeCompatibility `json:"themeCompatibility"`
}

// DefinitionResult is the outcome of creating one metafield definition
type DefinitionResult struct {
	Key     string      `json:"key"`
	Success bool        `json:"success"`
	Skipped bool        `json:"skipped,omitempty"`
	Errors  []UserError `json:"errors,omitempty"`
}

// DashboardStats are the headline numbers of the admin dashboard
type DashboardStats struct {
	HasProducts          bool `json:"hasProducts"`
	MetafieldsConfigured int  `json:"metafieldsConfigured"`
	AppEnabled           bool `json:"appEnabled"`
}
