package textproc

import (
	"strings"
	"unicode/utf8"
)

// Summarize turns the raw text of one chunk into a short readable extract:
// clean, split into sentences, drop the noise, keep the first maxSentences
// survivors. Returns "" when nothing informative remains; the caller
// decides the fallback.
func Summarize(raw string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := FilterSentences(SplitSentences(raw))
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	summary := strings.TrimSpace(strings.Join(sentences, ". "))
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// Merge concatenates snippets, separated by single spaces, stopping before
// any addition would push the accumulated length past maxChars. Snippets
// are never truncated mid-string and input order is preserved. The result
// may be empty when the first snippet alone exceeds the budget.
func Merge(snippets []string, maxChars int) string {
	var merged []string
	length := 0
	for _, s := range snippets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n := utf8.RuneCountInString(s)
		if length+n+1 > maxChars {
			break
		}
		merged = append(merged, s)
		length += n + 1
	}
	return strings.TrimSpace(strings.Join(merged, " "))
}
