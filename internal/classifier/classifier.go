// Package classifier decides whether a commit is noise that should never
// reach the worthiness scorer.
package classifier

import (
	"regexp"
	"strings"
)

// Conventional-commit types that never justify an article.
var noisePattern = regexp.MustCompile(`(?i)^(chore|ci|docs|style|test|build|revert)(\(.+\))?:`)

const skipTag = "[skip-blog]"

// ShouldSkip reports whether the commit is skipped without scoring.
// Pure function, no side effects. Skips dependabot authors, merge commits,
// conventional noise types, and the explicit opt-out tag.
func ShouldSkip(message, authorLogin string) bool {
	if strings.Contains(authorLogin, "dependabot") {
		return true
	}
	if strings.HasPrefix(message, "Merge ") {
		return true
	}
	if noisePattern.MatchString(message) {
		return true
	}
	return strings.Contains(message, skipTag)
}
