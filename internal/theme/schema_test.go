package theme

import "testing"

func TestMainSectionType(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType string
		wantOK   bool
	}{
		{
			name:     "main key",
			body:     `{"sections":{"main":{"type":"product-info"},"related":{"type":"related-products"}},"order":["main","related"]}`,
			wantType: "product-info",
			wantOK:   true,
		},
		{
			name:     "main- prefixed type",
			body:     `{"sections":{"banner":{"type":"image-banner"},"abc123":{"type":"main-collection-product-grid"}}}`,
			wantType: "main-collection-product-grid",
			wantOK:   true,
		},
		{
			name:     "first match in document order wins",
			body:     `{"sections":{"x":{"type":"main-first"},"main":{"type":"main-second"}}}`,
			wantType: "main-first",
			wantOK:   true,
		},
		{
			name:     "leading whitespace",
			body:     "\n\t  {\"sections\":{\"main\":{\"type\":\"main-product\"}}}",
			wantType: "main-product",
			wantOK:   true,
		},
		{
			name:   "comment header is not JSON",
			body:   "/* auto-generated */\n{\"sections\":{\"main\":{\"type\":\"main-product\"}}}",
			wantOK: false,
		},
		{
			name:   "malformed JSON",
			body:   `{"sections":{"main":{"type":"main-product"}`,
			wantOK: false,
		},
		{
			name:   "no main section",
			body:   `{"sections":{"hero":{"type":"image-banner"}}}`,
			wantOK: false,
		},
		{
			name:   "no sections",
			body:   `{"order":[]}`,
			wantOK: false,
		},
		{
			name:   "array body",
			body:   `[1,2,3]`,
			wantOK: false,
		},
		{
			name:   "empty",
			body:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MainSectionType(tt.body)
			if ok != tt.wantOK {
				t.Fatalf("MainSectionType() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.wantType {
				t.Errorf("MainSectionType() = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestAcceptsAppBlock(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "app block declared",
			body: "<div>{{ section.settings.title }}</div>\n{% schema %}\n{\n  \"name\": \"Product\",\n  \"blocks\": [{\"type\": \"text\"}, {\"type\": \"@app\"}]\n}\n{% endschema %}",
			want: true,
		},
		{
			name: "whitespace control tags",
			body: `{%- schema -%}{"blocks":[{"type":"@app"}]}{%- endschema -%}`,
			want: true,
		},
		{
			name: "tags without spaces",
			body: `{%schema%}{"blocks":[{"type":"@app"}]}{%endschema%}`,
			want: true,
		},
		{
			name: "no app block",
			body: `{% schema %}{"blocks":[{"type":"text"}]}{% endschema %}`,
			want: false,
		},
		{
			name: "no blocks",
			body: `{% schema %}{"name":"Footer"}{% endschema %}`,
			want: false,
		},
		{
			name: "no schema",
			body: `<div class="product">{{ product.title }}</div>`,
			want: false,
		},
		{
			name: "malformed schema",
			body: `{% schema %}{"blocks":[{"type":"@app"},]{% endschema %}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AcceptsAppBlock(tt.body); got != tt.want {
				t.Errorf("AcceptsAppBlock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	if got := TemplatePath("product"); got != "templates/product.json" {
		t.Errorf("TemplatePath() = %q", got)
	}
	if got := TemplateName("templates/collection.json"); got != "collection" {
		t.Errorf("TemplateName() = %q", got)
	}
	if got := SectionPath("main-product"); got != "sections/main-product.liquid" {
		t.Errorf("SectionPath() = %q", got)
	}
}
