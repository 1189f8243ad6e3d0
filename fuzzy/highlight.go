package fuzzy

import "unicode"

// Fragment is a piece of text tagged with whether it is part of the match.
type Fragment struct {
	Text    string
	IsMatch bool
}

// Highlight splits text into at most three fragments: the text before the
// first case-insensitive occurrence of query, the occurrence itself, and the
// text after it. Empty fragments are omitted. When the query is empty or not
// found, the whole text is returned as a single non-match fragment. Only the
// first occurrence is highlighted.
func Highlight(text, query string) []Fragment {
	qr := foldRunes(query)
	if len(qr) == 0 {
		return []Fragment{{Text: text}}
	}

	tr := []rune(text)
	idx := indexFolded(foldRunes(text), qr)
	if idx < 0 {
		return []Fragment{{Text: text}}
	}

	fragments := make([]Fragment, 0, 3)
	if idx > 0 {
		fragments = append(fragments, Fragment{Text: string(tr[:idx])})
	}
	fragments = append(fragments, Fragment{Text: string(tr[idx : idx+len(qr)]), IsMatch: true})
	if end := idx + len(qr); end < len(tr) {
		fragments = append(fragments, Fragment{Text: string(tr[end:])})
	}
	return fragments
}

// foldRunes lowercases rune-by-rune, preserving rune count so highlight
// offsets map back onto the original text.
func foldRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// indexFolded returns the rune index of the first occurrence of needle in
// haystack, or -1.
func indexFolded(haystack, needle []rune) int {
	if len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
