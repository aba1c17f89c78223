// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout turns raw text into positioned lines on fixed-size pages.
// Wrap breaks text into lines no wider than a measured maximum; Paginate and
// Build place those lines on pages inside a margin. Nothing here performs
// I/O or knows about PDF encoding: width measurement is supplied by the
// caller.
package layout

import "strings"

// MeasureFunc returns the rendered width of s in the same units as the
// maximum width passed to Wrap.
type MeasureFunc func(s string) float64

// Wrap greedily packs the words of text into lines whose measured width does
// not exceed maxWidth. Every whitespace run, newlines included, is treated as
// a single separator, so line breaks in the input are not preserved. A word
// that is wider than maxWidth on its own is placed alone on a line and never
// split. Empty or whitespace-only text yields no lines.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	acc := wrapState{}
	for _, word := range strings.Fields(text) {
		acc = acc.add(word, maxWidth, measure)
	}
	return acc.finish()
}

// wrapState is the accumulator threaded through the fold in Wrap.
type wrapState struct {
	lines   []string
	current string
}

func (s wrapState) add(word string, maxWidth float64, measure MeasureFunc) wrapState {
	candidate := word
	if s.current != "" {
		candidate = s.current + " " + word
	}
	if s.current != "" && measure(candidate) > maxWidth {
		return wrapState{
			lines:   append(s.lines, strings.TrimRight(s.current, " \t")),
			current: word,
		}
	}
	return wrapState{lines: s.lines, current: candidate}
}

func (s wrapState) finish() []string {
	if s.current == "" {
		return s.lines
	}
	return append(s.lines, strings.TrimRight(s.current, " \t"))
}
