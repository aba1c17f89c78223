// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/txt2pdf/internal/inspect"
	"github.com/pdiddy/txt2pdf/internal/layout"
	"github.com/pdiddy/txt2pdf/pkg/types"
)

func TestNewPDF_Defaults(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{})
	require.NoError(t, err)

	g := p.Geometry()
	assert.InDelta(t, 595.28, g.PageWidth, 0.01)
	assert.InDelta(t, 841.89, g.PageHeight, 0.01)
	assert.Equal(t, 40.0, g.Margin)
	assert.InDelta(t, 14.4, g.LineHeight, 1e-9)
	assert.InDelta(t, 515.28, g.MaxLineWidth(), 0.01)
}

func TestNewPDF_Landscape(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{PageSize: "Letter", Orientation: "landscape"})
	require.NoError(t, err)

	g := p.Geometry()
	assert.InDelta(t, 792, g.PageWidth, 0.01)
	assert.InDelta(t, 612, g.PageHeight, 0.01)
}

func TestNewPDF_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.LayoutConfig
		wantErr error
	}{
		{
			name:    "missing font file",
			cfg:     types.LayoutConfig{FontFamily: "Verdana", FontFile: "/no/such/Verdana.ttf"},
			wantErr: ErrFontFile,
		},
		{
			name:    "margin wider than page",
			cfg:     types.LayoutConfig{Margin: 400},
			wantErr: ErrGeometry,
		},
		{
			name:    "bad orientation",
			cfg:     types.LayoutConfig{Orientation: "sideways"},
			wantErr: types.ErrInvalidLayout,
		},
		{
			name: "unknown page size",
			cfg:  types.LayoutConfig{PageSize: "B17"},
		},
		{
			name: "unknown core font",
			cfg:  types.LayoutConfig{FontFamily: "Verdana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPDF(tt.cfg)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{})
	require.NoError(t, err)

	assert.Zero(t, p.Measure(""))
	assert.Greater(t, p.Measure("one two"), p.Measure("one"))
	assert.InDelta(t, 2*p.Measure("word"), p.Measure("wordword"), 1e-9)

	// Accented Latin text measures after cp1252 translation, so é is one
	// glyph as wide as e rather than two UTF-8 bytes.
	assert.Positive(t, p.Measure("café"))
	assert.InDelta(t, p.Measure("e"), p.Measure("é"), 1e-9)
	assert.InDelta(t, p.Measure("cafe"), p.Measure("café"), 1e-9)
}

func TestRender(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{})
	require.NoError(t, err)
	g := p.Geometry()

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 600)
	lines := layout.Wrap(text, g.MaxLineWidth(), p.Measure)
	doc := layout.Build("fox", lines, g)
	require.Greater(t, len(doc.Pages), 1)

	for _, line := range lines {
		assert.LessOrEqual(t, p.Measure(line), g.MaxLineWidth())
	}

	out := filepath.Join(t.TempDir(), "fox.pdf")
	require.NoError(t, p.Render(doc, out))

	rep, err := inspect.Open(out, false)
	require.NoError(t, err)
	assert.Equal(t, len(doc.Pages), rep.Pages)
	assert.Equal(t, "fox", rep.Title)
}

func TestRender_NonLatinText(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{})
	require.NoError(t, err)
	g := p.Geometry()

	lines := layout.Wrap("héllo 日本語 wörld \xff\xfe", g.MaxLineWidth(), p.Measure)
	out := filepath.Join(t.TempDir(), "intl.pdf")
	require.NoError(t, p.Render(layout.Build("ünï", lines, g), out))

	rep, err := inspect.Open(out, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Pages)
	assert.Equal(t, "ünï", rep.Title)
}

func TestRender_EmptyDocument(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, p.Render(layout.Build("empty", nil, p.Geometry()), out))

	rep, err := inspect.Open(out, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Pages)
}

func TestRender_OutputError(t *testing.T) {
	p, err := NewPDF(types.LayoutConfig{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "missing-dir", "x.pdf")
	err = p.Render(layout.Build("x", []string{"x"}, p.Geometry()), out)
	require.Error(t, err)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "Output", rerr.Op)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
