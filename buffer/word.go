package buffer

import "github.com/iw2rmb/tapfield/internal/grapheme"

// WordRange returns the whitespace-delimited span around index.
//
// Start walks left while the preceding cluster is not whitespace; the end
// walks right while the cluster at the position is not whitespace. index
// is clamped to [0, len(clusters)]. When index addresses whitespace the
// result may be empty or cover the word that ends right before it, so
// callers that want "no word here" semantics check IsWordAt first.
func WordRange(clusters []string, index int) Range {
	index = clampInt(index, 0, len(clusters))

	start := index
	for start > 0 && !grapheme.IsSpace(clusters[start-1]) {
		start--
	}
	end := index
	for end < len(clusters) && !grapheme.IsSpace(clusters[end]) {
		end++
	}
	return Range{Start: start, Len: end - start}
}

// WholeRange spans every cluster.
func WholeRange(clusters []string) Range {
	return Range{Start: 0, Len: len(clusters)}
}

// IsWordAt reports whether index addresses a non-whitespace cluster.
func IsWordAt(clusters []string, index int) bool {
	if index < 0 || index >= len(clusters) {
		return false
	}
	return !grapheme.IsSpace(clusters[index])
}

// WordRangeAt is WordRange over the buffer's content. ok is false when
// index does not address a non-whitespace cluster.
func (b *Buffer) WordRangeAt(index int) (r Range, ok bool) {
	if !IsWordAt(b.clusters, index) {
		return Range{}, false
	}
	return WordRange(b.clusters, index), true
}

// SelectWord selects the word around index. It reports false, leaving the
// state untouched, when index addresses whitespace or lies past the text.
func (b *Buffer) SelectWord(index int) bool {
	r, ok := b.WordRangeAt(index)
	if !ok {
		return false
	}
	b.SetSelection(r.Start, r.Len)
	return true
}
