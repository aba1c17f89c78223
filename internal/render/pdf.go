// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render is the PDF rendering collaborator for the converter. It
// owns font metrics (text measurement and line height), page dimensions,
// and serialization of laid-out documents through go-pdf/fpdf.
package render

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/txt2pdf/internal/layout"
	"github.com/pdiddy/txt2pdf/pkg/types"
)

const (
	unitPoint = "pt"
	creator   = "txt2pdf"
)

// PDF measures and renders text with a single configured font. A PDF value
// is reusable: each Render call builds a fresh fpdf document.
type PDF struct {
	cfg      types.LayoutConfig
	fontData []byte // TrueType bytes when cfg.FontFile is set
	geom     layout.Geometry
	tr       func(string) string
	measurer *fpdf.Fpdf
}

// NewPDF loads the configured font and computes the page geometry. Zero
// fields in cfg take the package defaults from types.LayoutConfig.
func NewPDF(cfg types.LayoutConfig) (*PDF, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &PDF{cfg: cfg, tr: func(s string) string { return s }}

	if cfg.FontFile != "" {
		data, err := os.ReadFile(cfg.FontFile)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrFontFile, cfg.FontFile, err)
		}
		p.fontData = data
	}

	m, err := p.newDocument()
	if err != nil {
		return nil, err
	}
	p.measurer = m
	if p.fontData == nil {
		// Core fonts are encoded as cp1252.
		p.tr = m.UnicodeTranslatorFromDescriptor("")
	}

	w, h := m.GetPageSize()
	p.geom = layout.Geometry{
		PageWidth:  w,
		PageHeight: h,
		Margin:     cfg.Margin,
		LineHeight: cfg.LineHeight(),
	}
	if err := p.geom.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeometry, err)
	}

	return p, nil
}

// newDocument returns an fpdf document in point units with the configured
// page format and font selected.
func (p *PDF) newDocument() (*fpdf.Fpdf, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: p.cfg.Orientation,
		UnitStr:        unitPoint,
		SizeStr:        p.cfg.PageSize,
	})
	if pdf.Err() {
		return nil, newError("New", pdf.Error())
	}

	if p.fontData != nil {
		pdf.AddUTF8FontFromBytes(p.cfg.FontFamily, "", p.fontData)
		if pdf.Err() {
			return nil, newError("AddUTF8Font", fmt.Errorf("%w %s: %v", ErrFontFile, p.cfg.FontFile, pdf.Error()))
		}
	}

	pdf.SetFont(p.cfg.FontFamily, "", p.cfg.FontSize)
	if pdf.Err() {
		return nil, newError("SetFont", pdf.Error())
	}

	pdf.SetMargins(p.cfg.Margin, p.cfg.Margin, p.cfg.Margin)
	pdf.SetAutoPageBreak(false, p.cfg.Margin)
	pdf.SetCellMargin(0)
	return pdf, nil
}

// Geometry returns the page geometry used for layout.
func (p *PDF) Geometry() layout.Geometry {
	return p.geom
}

// Measure returns the width of s in points at the configured font and size.
func (p *PDF) Measure(s string) float64 {
	return p.measurer.GetStringWidth(p.tr(s))
}

// Render writes doc to path as a PDF. Each line is drawn top-left anchored
// at its placed position in a cell as wide as the writable rectangle.
func (p *PDF) Render(doc types.Document, path string) error {
	pdf, err := p.newDocument()
	if err != nil {
		return err
	}

	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(creator, false)

	width := p.geom.MaxLineWidth()
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			pdf.SetXY(line.X, line.Y)
			pdf.CellFormat(width, p.geom.LineHeight, p.tr(line.Text), "", 0, "LT", false, 0, "")
		}
	}
	if pdf.Err() {
		return newError("Draw", pdf.Error())
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return newError("Output", err)
	}
	return nil
}
