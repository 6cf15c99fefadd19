package textproc

import "strings"

// artifactChars are extraction leftovers commonly found in brochure PDFs:
// bullets emitted by symbol fonts in the private use area, list markers,
// soft hyphens and invisible width or break characters. Each one is turned
// into a space so the words around it do not fuse together.
var artifactChars = map[rune]struct{}{
	'\uf0b7': {}, // Symbol font bullet
	'\uf0a7': {}, // Wingdings square bullet
	'\uf076': {}, // Wingdings diamond
	'\uf0fc': {}, // Wingdings check mark
	'\u2022': {}, // bullet
	'\u25cf': {}, // black circle
	'\u25aa': {}, // small black square
	'\u00ad': {}, // soft hyphen
	'\u200b': {}, // zero-width space
	'\ufeff': {}, // byte order mark
	'\u00a0': {}, // no-break space
	'\u2028': {}, // line separator
	'\u2029': {}, // paragraph separator
}

// Clean normalizes raw extracted text in a single pass: line breaks and
// artifact characters become spaces, runs of spaces collapse to one, and
// the result is trimmed. Clean is idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		if r == '\r' || r == '\n' {
			r = ' '
		} else if _, artifact := artifactChars[r]; artifact {
			r = ' '
		}
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
