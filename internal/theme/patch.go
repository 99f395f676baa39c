package theme

import "strings"

const (
	// Marker is present in any file that already references the gifting snippet
	Marker = "simple-gifting"

	renderTag     = "\n\n{% render \"simple-gifting\" %}"
	stylesheetTag = "  {{ \"simple-gifting.css\" | asset_url | stylesheet_tag }}\n"
	scriptTag     = "  {{ \"simple-gifting.js\" | asset_url | script_tag }}\n"

	stylesRef = "simple-gifting.css"
	scriptRef = "simple-gifting.js"
)

// productAnchors are tried in order; the render tag goes after the first one found
var productAnchors = []string{
	"</form>",
	"{{ product.description }}",
	"</div>{% endfor %}",
	"{% endif %}",
}

// PatchProductTemplate inserts the snippet render tag into a product template.
// It returns the content unchanged and false when the marker is already present.
func PatchProductTemplate(content string) (string, bool) {
	if strings.Contains(content, Marker) {
		return content, false
	}
	for _, anchor := range productAnchors {
		if strings.Contains(content, anchor) {
			return strings.Replace(content, anchor, anchor+renderTag, 1), true
		}
	}
	return content + renderTag, true
}

// LayoutHasReferences reports whether the layout already loads both gifting assets
func LayoutHasReferences(content string) bool {
	return strings.Contains(content, stylesRef) && strings.Contains(content, scriptRef)
}

// PatchLayout adds the stylesheet tag before </head> and the script tag before
// </body>, each only when its reference is missing. It returns false when both
// references were already present.
func PatchLayout(content string) (string, bool) {
	if LayoutHasReferences(content) {
		return content, false
	}
	if !strings.Contains(content, stylesRef) {
		content = strings.Replace(content, "</head>", stylesheetTag+"</head>", 1)
	}
	if !strings.Contains(content, scriptRef) {
		content = strings.Replace(content, "</body>", scriptTag+"</body>", 1)
	}
	return content, true
}
