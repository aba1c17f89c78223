// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors returned by ConverterConfig.Validate.
var (
	ErrMissingSource      = errors.New("source path is not set")
	ErrMissingDestination = errors.New("destination path is not set")
	ErrInvalidLayout      = errors.New("invalid layout")
)

// Layout defaults. Margin and font size match the 40pt margin and 12pt text
// the converter has always produced.
const (
	DefaultPageSize    = "A4"
	DefaultOrientation = "portrait"
	DefaultMargin      = 40.0
	DefaultFontFamily  = "Helvetica"
	DefaultFontSize    = 12.0
	DefaultLineSpacing = 1.2
)

// LayoutConfig controls page geometry and the font used to measure and draw
// text. All lengths are in PDF points.
type LayoutConfig struct {
	// PageSize is a named page size: A3, A4, A5, Letter, or Legal.
	PageSize string `json:"page_size" yaml:"page_size"`

	// Orientation is "portrait" or "landscape".
	Orientation string `json:"orientation" yaml:"orientation"`

	// Margin is applied on all four sides of every page.
	Margin float64 `json:"margin" yaml:"margin"`

	// FontFamily names the font. Without FontFile it must be a PDF core font
	// (Helvetica, Times, Courier).
	FontFamily string `json:"font_family" yaml:"font_family"`

	// FontFile is an optional TrueType font registered under FontFamily,
	// e.g. "/usr/share/fonts/truetype/msttcorefonts/Verdana.ttf".
	FontFile string `json:"font_file,omitempty" yaml:"font_file,omitempty"`

	// FontSize is the font size in points.
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// LineSpacing multiplies FontSize to give the line height (default 1.2).
	LineSpacing float64 `json:"line_spacing" yaml:"line_spacing"`
}

// LineHeight returns the vertical advance between consecutive lines.
func (c LayoutConfig) LineHeight() float64 {
	return c.FontSize * c.LineSpacing
}

// WithDefaults returns a copy with zero-valued fields replaced by defaults.
func (c LayoutConfig) WithDefaults() LayoutConfig {
	if c.PageSize == "" {
		c.PageSize = DefaultPageSize
	}
	if c.Orientation == "" {
		c.Orientation = DefaultOrientation
	}
	if c.Margin == 0 {
		c.Margin = DefaultMargin
	}
	if c.FontFamily == "" {
		c.FontFamily = DefaultFontFamily
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
	if c.LineSpacing == 0 {
		c.LineSpacing = DefaultLineSpacing
	}
	return c
}

// Validate checks the layout values that can be verified without loading
// fonts or computing page dimensions.
func (c LayoutConfig) Validate() error {
	switch strings.ToLower(c.Orientation) {
	case "portrait", "p", "landscape", "l":
	default:
		return fmt.Errorf("%w: orientation %q (want portrait or landscape)", ErrInvalidLayout, c.Orientation)
	}
	if c.Margin < 0 {
		return fmt.Errorf("%w: negative margin %g", ErrInvalidLayout, c.Margin)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %g", ErrInvalidLayout, c.FontSize)
	}
	if c.LineSpacing <= 0 {
		return fmt.Errorf("%w: line spacing must be positive, got %g", ErrInvalidLayout, c.LineSpacing)
	}
	return nil
}

// LedgerConfig holds settings for the optional conversion history database.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Enabled reports whether a ledger path is configured.
func (c LedgerConfig) Enabled() bool {
	return c.Path != ""
}

// ConverterConfig is the complete configuration for one batch run. It is
// assembled once at startup and passed explicitly to the batch driver.
type ConverterConfig struct {
	// SourcePath is the directory scanned for *.txt files.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// DestinationPath is the directory that receives <name>.pdf files.
	// It is created on demand.
	DestinationPath string `json:"destination_path" yaml:"destination_path"`

	Layout LayoutConfig `json:"layout" yaml:"layout"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger"`
}

// Validate fails fast on configuration errors before any file is touched.
// The source must be an existing directory; the destination may be missing
// but must not be an existing non-directory.
func (c ConverterConfig) Validate() error {
	if strings.TrimSpace(c.SourcePath) == "" {
		return ErrMissingSource
	}
	if strings.TrimSpace(c.DestinationPath) == "" {
		return ErrMissingDestination
	}

	info, err := os.Stat(c.SourcePath)
	if err != nil {
		return fmt.Errorf("source path %s: %w", c.SourcePath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", c.SourcePath)
	}

	info, err = os.Stat(c.DestinationPath)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("destination path %s is not a directory", c.DestinationPath)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("destination path %s: %w", c.DestinationPath, err)
	}

	return c.Layout.WithDefaults().Validate()
}
