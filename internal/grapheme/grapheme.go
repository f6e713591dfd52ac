package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns the user-perceived characters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates clusters back into a string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsSpace reports whether every rune in cluster is Unicode whitespace.
// Newlines count as whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Width returns the terminal cell width of a single cluster. Zero-width
// clusters that uniseg still renders (emoji sequences) fall back to uniseg.
func Width(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	if w < 0 {
		w = 0
	}
	return w
}

// StringWidth sums Width over the clusters of text.
func StringWidth(text string) int {
	total := 0
	for _, c := range Split(text) {
		total += Width(c)
	}
	return total
}
