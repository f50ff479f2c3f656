package generator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ContentForge/internal/domain"
)

// EnsureSchemas guarantees both JSON-LD blocks end up inside the post body.
// The model frequently returns the schemas only as separate fields, so this
// runs unconditionally after every generation: if the HTML carries no
// ld+json script mentioning the schema type, the field value is appended.
func EnsureSchemas(post domain.GeneratedPost) domain.GeneratedPost {
	if post.BlogPostingSchema != "" && !hasSchema(post.HTMLContent, "BlogPosting") {
		post.HTMLContent += "\n" + asScriptTag(post.BlogPostingSchema)
	}
	if post.FaqPageSchema != "" && len(post.FaqItems) > 0 && !hasSchema(post.HTMLContent, "FAQPage") {
		post.HTMLContent += "\n" + asScriptTag(post.FaqPageSchema)
	}
	return post
}

// hasSchema reports whether the HTML already embeds an ld+json script whose
// body mentions the given schema type. A raw substring check alone would be
// fooled by the type name appearing in prose, so the parsed script contents
// are inspected first and the substring check only backstops parse failure.
func hasSchema(html, schemaType string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Contains(html, schemaType)
	}

	found := false
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), schemaType) {
			found = true
		}
	})
	return found
}

// asScriptTag wraps a bare JSON-LD payload in a script tag. Payloads the
// model already wrapped are passed through untouched.
func asScriptTag(schema string) string {
	if strings.Contains(schema, "<script") {
		return schema
	}
	return `<script type="application/ld+json">` + schema + `</script>`
}
