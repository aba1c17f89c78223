// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"

	"github.com/pdiddy/txt2pdf/pkg/types"
)

// Geometry describes the page canvas and vertical rhythm used for layout.
// All values share one unit (PDF points in practice).
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LineHeight float64
}

// MaxLineWidth is the width of the writable rectangle.
func (g Geometry) MaxLineWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// Validate reports geometry that cannot hold any text.
func (g Geometry) Validate() error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("page size %gx%g must be positive", g.PageWidth, g.PageHeight)
	}
	if g.MaxLineWidth() <= 0 {
		return fmt.Errorf("margin %g leaves no writable width on a %g wide page", g.Margin, g.PageWidth)
	}
	if g.PageHeight-2*g.Margin <= 0 {
		return fmt.Errorf("margin %g leaves no writable height on a %g high page", g.Margin, g.PageHeight)
	}
	if g.LineHeight <= 0 {
		return fmt.Errorf("line height %g must be positive", g.LineHeight)
	}
	return nil
}

// LinesPerPage returns how many lines Paginate places on a full page. It is
// at least 1, since an oversized line still gets a page of its own, and 0
// when LineHeight is not positive (no page break ever happens).
func (g Geometry) LinesPerPage() int {
	if g.LineHeight <= 0 {
		return 0
	}
	n := 0
	for y := g.Margin; !g.overflows(y); y += g.LineHeight {
		n++
	}
	return max(n, 1)
}

// overflows reports whether a line starting at cursor y would cross the
// bottom margin.
func (g Geometry) overflows(y float64) bool {
	return y+g.LineHeight > g.PageHeight-g.Margin
}

func (g Geometry) newPage() types.Page {
	return types.Page{Width: g.PageWidth, Height: g.PageHeight}
}

// Paginate places lines top to bottom, left-aligned at the margin, starting
// a new page whenever the next line would overflow the writable height.
// Every line lands on exactly one page in input order. An empty input gives
// a single blank page; otherwise no page is ever empty.
func Paginate(lines []string, g Geometry) []types.Page {
	pages := []types.Page{g.newPage()}
	y := g.Margin

	for _, line := range lines {
		if g.overflows(y) && len(pages[len(pages)-1].Lines) > 0 {
			pages = append(pages, g.newPage())
			y = g.Margin
		}
		last := &pages[len(pages)-1]
		last.Lines = append(last.Lines, types.PlacedLine{Text: line, X: g.Margin, Y: y})
		y += g.LineHeight
	}

	return pages
}

// Build paginates lines into a titled Document.
func Build(title string, lines []string, g Geometry) types.Document {
	return types.Document{
		Title: title,
		Pages: Paginate(lines, g),
	}
}
