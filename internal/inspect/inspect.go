// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reads back PDFs produced by the converter: page count,
// title metadata, and the embedded text layer of each page.
package inspect

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Report summarizes one PDF file.
type Report struct {
	Path  string   `json:"path" yaml:"path"`
	Title string   `json:"title" yaml:"title"`
	Pages int      `json:"pages" yaml:"pages"`
	Text  []string `json:"text,omitempty" yaml:"text,omitempty"` // one entry per page
}

// Open parses the PDF at path and extracts its metadata. Page text is only
// extracted when withText is true.
func Open(path string, withText bool) (Report, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rep := Report{
		Path:  path,
		Title: r.Trailer().Key("Info").Key("Title").Text(),
		Pages: r.NumPage(),
	}
	if !withText {
		return rep, nil
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= rep.Pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			rep.Text = append(rep.Text, "")
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return rep, fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		rep.Text = append(rep.Text, strings.TrimSpace(text))
	}

	return rep, nil
}
