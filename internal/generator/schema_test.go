package generator

import (
	"strings"
	"testing"

	"ContentForge/internal/domain"
)

const blogSchema = `{"@context":"https://schema.org","@type":"BlogPosting","headline":"Test"}`
const faqSchema = `{"@context":"https://schema.org","@type":"FAQPage","mainEntity":[]}`

func TestEnsureSchemasAppendsMissingBlocks(t *testing.T) {
	t.Parallel()

	post := domain.GeneratedPost{
		HTMLContent:       "<h2>Launch</h2><p>We shipped it.</p>",
		BlogPostingSchema: blogSchema,
		FaqPageSchema:     faqSchema,
		FaqItems:          []domain.FaqItem{{Question: "Q", Answer: "A"}},
	}

	got := EnsureSchemas(post)

	if n := strings.Count(got.HTMLContent, `<script type="application/ld+json">`); n != 2 {
		t.Fatalf("expected 2 appended script tags, got %d:\n%s", n, got.HTMLContent)
	}
	if !strings.Contains(got.HTMLContent, "BlogPosting") || !strings.Contains(got.HTMLContent, "FAQPage") {
		t.Fatal("appended content missing schema types")
	}
}

func TestEnsureSchemasLeavesEmbeddedBlocksAlone(t *testing.T) {
	t.Parallel()

	post := domain.GeneratedPost{
		HTMLContent: `<p>Body</p>` +
			`<script type="application/ld+json">` + blogSchema + `</script>` +
			`<script type="application/ld+json">` + faqSchema + `</script>`,
		BlogPostingSchema: blogSchema,
		FaqPageSchema:     faqSchema,
		FaqItems:          []domain.FaqItem{{Question: "Q", Answer: "A"}},
	}

	got := EnsureSchemas(post)
	if got.HTMLContent != post.HTMLContent {
		t.Fatal("already-embedded schemas should not be appended again")
	}
}

func TestEnsureSchemasProseDoesNotCountAsEmbedded(t *testing.T) {
	t.Parallel()

	// "BlogPosting" in visible text must not satisfy the embed check.
	post := domain.GeneratedPost{
		HTMLContent:       "<p>We use BlogPosting markup on every article.</p>",
		BlogPostingSchema: blogSchema,
	}

	got := EnsureSchemas(post)
	if !strings.Contains(got.HTMLContent, `<script type="application/ld+json">`) {
		t.Fatal("schema mention in prose should still trigger the append")
	}
}

func TestEnsureSchemasSkipsFaqWithoutItems(t *testing.T) {
	t.Parallel()

	post := domain.GeneratedPost{
		HTMLContent:   "<p>No FAQ this time.</p>",
		FaqPageSchema: faqSchema,
	}

	got := EnsureSchemas(post)
	if strings.Contains(got.HTMLContent, "FAQPage") {
		t.Fatal("FAQPage schema appended despite empty faqItems")
	}
}

func TestEnsureSchemasPassesThroughWrappedPayload(t *testing.T) {
	t.Parallel()

	wrapped := `<script type="application/ld+json">` + blogSchema + `</script>`
	post := domain.GeneratedPost{
		HTMLContent:       "<p>Body</p>",
		BlogPostingSchema: wrapped,
	}

	got := EnsureSchemas(post)
	if strings.Contains(got.HTMLContent, "<script><script") ||
		strings.Count(got.HTMLContent, "<script") != 1 {
		t.Fatalf("wrapped payload was double-wrapped:\n%s", got.HTMLContent)
	}
}
