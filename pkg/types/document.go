// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared by the layout, rendering and
// batch conversion stages: documents and pages built from wrapped text,
// per-file conversion results, and the converter configuration.
package types

// ConversionStatus indicates the outcome of converting one source file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// PlacedLine is one wrapped line positioned on a page. X and Y give the
// top-left corner of the line in points from the top-left of the page.
type PlacedLine struct {
	Text string  `json:"text" yaml:"text"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// Page is a fixed-size canvas holding lines in top-to-bottom order.
type Page struct {
	Width  float64      `json:"width" yaml:"width"`
	Height float64      `json:"height" yaml:"height"`
	Lines  []PlacedLine `json:"lines" yaml:"lines"`
}

// Document is an ordered sequence of pages plus the title written to the
// PDF metadata (the source file's base name).
type Document struct {
	Title string `json:"title" yaml:"title"`
	Pages []Page `json:"pages" yaml:"pages"`
}

// LineCount returns the total number of lines across all pages.
func (d Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// FileResult is the outcome of processing one source file.
type FileResult struct {
	// Source is the path of the .txt file.
	Source string `json:"source" yaml:"source"`

	// Output is the path of the PDF that was (or would have been) written.
	Output string `json:"output" yaml:"output"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Pages and Lines are zero unless Status is ConversionDone.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`
	Lines int `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Err is set when Status is ConversionFailed.
	Err error `json:"-" yaml:"-"`
}

// Message returns the failure message, or "" when the file did not fail.
func (r FileResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
