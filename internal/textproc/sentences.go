package textproc

import (
	"strings"
	"unicode/utf8"
)

// minSentenceRunes is the shortest sentence kept by FilterSentences.
// Anything below it is almost always a menu entry or a page header.
const minSentenceRunes = 30

// unwantedPhrases are interface boilerplate fragments carried over from the
// web pages the brochures were exported from. Matched case-insensitively
// anywhere in a sentence.
var unwantedPhrases = []string{
	"lire aussi",
	"cet article vous a-t-il été utile",
	"assuré entreprise professionnel de santé",
	"sources",
	"sites utiles",
	"oui non",
	"copier le lien",
}

// biblioMarkers flag bibliographic or editorial sentences that carry no
// medical content. Matched case-insensitively anywhere in a sentence.
var biblioMarkers = []string{
	"santé publique france",
	"consulté le",
	"site internet",
	"saint-maurice",
	"document de référence",
	"pdf ,",
}

// monthNames start publication-date headers. Both accented and plain
// spellings are listed so the prefix match is accent-insensitive.
var monthNames = []string{
	"janvier", "février", "fevrier", "mars", "avril", "mai", "juin",
	"juillet", "août", "aout", "septembre", "octobre", "novembre",
	"décembre", "decembre",
}

// SplitSentences cleans the text and splits it on the period delimiter,
// dropping empty fragments. The split is deliberately naive: abbreviations
// and decimal numbers are mishandled, which is acceptable for brochures.
func SplitSentences(text string) []string {
	parts := strings.Split(Clean(text), ".")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// FilterSentences drops sentences that are too short to be informative,
// contain interface boilerplate or bibliographic markers, or start with a
// month name. Order of the survivors is preserved.
func FilterSentences(sentences []string) []string {
	var kept []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) < minSentenceRunes {
			continue
		}
		lower := strings.ToLower(s)
		if containsAny(lower, unwantedPhrases) {
			continue
		}
		if containsAny(lower, biblioMarkers) {
			continue
		}
		if hasAnyPrefix(lower, monthNames) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
