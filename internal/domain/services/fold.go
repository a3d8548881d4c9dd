package services

import (
	"unicode"
	"unicode/utf8"
)

// indexFold returns the byte offsets in s of the first occurrence of substr,
// compared under Unicode simple case folding, or -1, -1.
func indexFold(s, substr string) (start, end int) {
	if substr == "" {
		return 0, 0
	}
	for i := range s {
		if n, ok := hasPrefixFold(s[i:], substr); ok {
			return i, i + n
		}
	}
	return -1, -1
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	start, _ := indexFold(s, substr)
	return start >= 0
}

// hasPrefixFold returns the length in s of the case-folded prefix.
func hasPrefixFold(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		if n >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if !equalFoldRune(r, pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
