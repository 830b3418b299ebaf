// Package search finds and ranges query matches inside notification titles.
//
// All positions are rune (Unicode scalar) indices into the original,
// unfolded text. Matching happens on the folded form produced by textfold
// and is mapped back before any Range leaves this package.
package search

import "unicode/utf8"

// Range is a half-open interval of runes [Start, Start+Length).
// A Range with Length 0 means no match.
type Range struct {
	Start  int `json:"start" yaml:"start"`
	Length int `json:"length" yaml:"length"`
}

// End returns the exclusive end of the range.
func (r Range) End() int {
	return r.Start + r.Length
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool {
	return r.Length <= 0
}

// RuneLen returns the length of s in the unit used by Range.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Slice returns the part of s covered by r, clamped to the bounds of s.
func Slice(s string, r Range) string {
	rs := []rune(s)
	start := clamp(r.Start, 0, len(rs))
	end := clamp(r.End(), start, len(rs))
	return string(rs[start:end])
}

// Suffix returns s from rune index from to the end.
func Suffix(s string, from int) string {
	if from <= 0 {
		return s
	}
	rs := []rune(s)
	if from >= len(rs) {
		return ""
	}
	return string(rs[from:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
