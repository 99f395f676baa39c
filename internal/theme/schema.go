// Package theme holds the side-effect free parts of theme handling: reading
// JSON templates and section schemas, and splicing the gifting references
// into merchant-owned Liquid files.
package theme

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// AppBlockTemplates are the templates that must accept app blocks
var AppBlockTemplates = []string{"product", "collection", "index"}

const appBlockType = "@app"

var schemaPattern = regexp.MustCompile(`\{%-?\s*schema\s*-?%\}([\s\S]*?)\{%-?\s*endschema\s*-?%\}`)

// TemplatePath returns the JSON template file of a template name
func TemplatePath(name string) string {
	return "templates/" + name + ".json"
}

// TemplateName is the inverse of TemplatePath
func TemplateName(filename string) string {
	name := strings.TrimPrefix(filename, "templates/")
	return strings.TrimSuffix(name, ".json")
}

// SectionPath returns the Liquid file of a section type
func SectionPath(sectionType string) string {
	return "sections/" + sectionType + ".liquid"
}

// MainSectionType returns the type of the section rendering the main content
// of a JSON template: the first entry of "sections" keyed "main" or whose type
// starts with "main-". ok is false for non-JSON bodies, malformed JSON and
// templates without such a section.
func MainSectionType(body string) (sectionType string, ok bool) {
	content := strings.TrimSpace(body)
	if !strings.HasPrefix(content, "{") && !strings.HasPrefix(content, "[") {
		return "", false
	}

	var tpl struct {
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(content), &tpl); err != nil || len(tpl.Sections) == 0 {
		return "", false
	}

	// Walk the sections object in document order; a map would lose it.
	dec := json.NewDecoder(bytes.NewReader(tpl.Sections))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return "", false
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", false
		}
		key, _ := keyTok.(string)

		var section struct {
			Type string `json:"type"`
		}
		if err := dec.Decode(&section); err != nil {
			return "", false
		}
		if key == "main" || strings.HasPrefix(section.Type, "main-") {
			return section.Type, section.Type != ""
		}
	}
	return "", false
}

// AcceptsAppBlock reports whether the schema block of a Liquid section
// declares an "@app" block. A missing schema or malformed schema JSON yields false.
func AcceptsAppBlock(sectionBody string) bool {
	match := schemaPattern.FindStringSubmatch(sectionBody)
	if match == nil {
		return false
	}

	var schema struct {
		Blocks []struct {
			Type string `json:"type"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(match[1]), &schema); err != nil {
		return false
	}
	for _, block := range schema.Blocks {
		if block.Type == appBlockType {
			return true
		}
	}
	return false
}
