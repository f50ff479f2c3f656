package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ContextBlock renders the gathered repository intelligence as the plain-text
// block fed to the scorer and generator prompts.
func (p ProjectInfo) ContextBlock() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s\n", p.Name)
	fmt.Fprintf(&b, "URL: %s\n", p.URL)
	if p.Homepage != "" {
		fmt.Fprintf(&b, "Live Site: %s\n", p.Homepage)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(&b, "Topics: %s\n", orNone(strings.Join(p.Topics, ", ")))
	fmt.Fprintf(&b, "Languages: %s\n", languagesLine(p.Languages))
	fmt.Fprintf(&b, "Root Files: %s\n", strings.Join(p.RootFiles, ", "))
	fmt.Fprintf(&b, "Created: %s\n", formatDate(p.CreatedAt))
	fmt.Fprintf(&b, "Last Push: %s\n", formatDate(p.PushedAt))
	fmt.Fprintf(&b, "Stars: %d\n", p.Stars)
	fmt.Fprintf(&b, "Commits sampled: %d\n\n", p.CommitsSampled)

	if p.Readme != "" {
		fmt.Fprintf(&b, "=== README ===\n%s\n=== END README ===\n\n", p.Readme)
	}

	b.WriteString("=== RECENT COMMITS ===\n")
	for _, c := range p.RecentCommits {
		fmt.Fprintf(&b, "%s %s %s\n", c.SHA, formatDate(c.Date), c.Message)
	}
	b.WriteString("=== END COMMITS ===\n")

	return b.String()
}

func languagesLine(langs map[string]int) string {
	if len(langs) == 0 {
		return "unknown"
	}
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	// Dominant language first; ties by name keep the output stable.
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, langs[name]))
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
