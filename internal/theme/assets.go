package theme

import _ "embed"

// Asset keys owned by the app
const (
	SnippetKey = "snippets/simple-gifting.liquid"
	StylesKey  = "assets/simple-gifting.css"
	ScriptKey  = "assets/simple-gifting.js"
)

// Merchant-owned files that get patched
const (
	ProductTemplateKey    = "templates/product.liquid"
	ProductFormSectionKey = "sections/product-form.liquid"
	LayoutKey             = "layout/theme.liquid"
)

//go:embed files/simple-gifting.liquid
var snippetSource string

//go:embed files/simple-gifting.css
var stylesSource string

//go:embed files/simple-gifting.js
var scriptSource string

// OwnedAsset is a file the app creates and later removes
type OwnedAsset struct {
	Step  string
	Key   string
	Value string
}

// OwnedAssets lists the app's files in injection order
func OwnedAssets() []OwnedAsset {
	return []OwnedAsset{
		{Step: "product-gifting-snippet", Key: SnippetKey, Value: snippetSource},
		{Step: "gifting-styles", Key: StylesKey, Value: stylesSource},
		{Step: "gifting-script", Key: ScriptKey, Value: scriptSource},
	}
}

// OwnedAssetKeys returns the keys of OwnedAssets
func OwnedAssetKeys() []string {
	return []string{SnippetKey, StylesKey, ScriptKey}
}
