// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the batch text-to-PDF conversion run: it
// enumerates .txt files in the source directory, lays each one out into
// pages, renders it to the destination directory, and removes the source
// once its PDF is written.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/txt2pdf/internal/layout"
	"github.com/pdiddy/txt2pdf/pkg/types"
)

const (
	sourceExt = ".txt"
	outputExt = ".pdf"

	// NoFilesMessage is printed when the source directory holds no .txt files.
	NoFilesMessage = "No TXT files found in the source folder."
)

// Renderer measures text and writes laid-out documents. The production
// implementation is render.PDF.
type Renderer interface {
	// Measure returns the rendered width of s in layout units.
	Measure(s string) float64

	// Geometry returns the page geometry documents are laid out against.
	Geometry() layout.Geometry

	// Render serializes doc to path.
	Render(doc types.Document, path string) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Files lists per-file results in processing order.
	Files []types.FileResult
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// Attempted returns the number of files that were converted or failed,
// excluding skips.
func (r BatchResult) Attempted() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(fr types.FileResult) {
	switch fr.Status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionSkipped:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, fr)
}

// Batch converts the text files of one source directory.
type Batch struct {
	cfg      types.ConverterConfig
	renderer Renderer
}

// NewBatch validates cfg and returns a Batch that renders through r.
// Configuration problems are reported here, before any file is touched.
func NewBatch(cfg types.ConverterConfig, r Renderer) (*Batch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Batch{cfg: cfg, renderer: r}, nil
}

// ListSources returns the .txt files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), sourceExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Run converts every .txt file in the source directory, printing per-file
// status to w and returning a summary. A failing file is reported and
// skipped; it never stops the batch. Run returns an error only when the
// source directory cannot be listed, the destination cannot be created, or
// ctx is cancelled between files. On cancellation the result still holds
// the files processed so far and the summary is printed for them.
//
// When there are no source files Run prints NoFilesMessage and makes no
// filesystem changes, not even creating the destination directory.
func (b *Batch) Run(ctx context.Context, w io.Writer) (BatchResult, error) {
	var result BatchResult

	sources, err := ListSources(b.cfg.SourcePath)
	if err != nil {
		return result, err
	}
	if len(sources) == 0 {
		fmt.Fprintln(w, NoFilesMessage)
		return result, nil
	}

	if err := os.MkdirAll(b.cfg.DestinationPath, 0o755); err != nil {
		return result, fmt.Errorf("creating destination directory %s: %w", b.cfg.DestinationPath, err)
	}

	for _, src := range sources {
		select {
		case <-ctx.Done():
			fmt.Fprintf(w, "interrupted: %d of %d files not processed\n", len(sources)-result.Total(), len(sources))
			printSummary(w, result)
			return result, ctx.Err()
		default:
		}
		result.add(b.ConvertFile(src, w))
	}

	printSummary(w, result)
	return result, nil
}

func printSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		r.Converted, r.Skipped, r.Failed, r.Total())
}

// OutputPath returns the PDF path for a source file: the destination
// directory plus the source base name with a .pdf extension.
func (b *Batch) OutputPath(src string) string {
	return filepath.Join(b.cfg.DestinationPath, baseName(src)+outputExt)
}

// ConvertFile converts a single text file. If the PDF already exists the
// file is skipped and both files are left untouched. On success the source
// is deleted; on failure it is kept and any partial PDF is removed.
func (b *Batch) ConvertFile(src string, w io.Writer) types.FileResult {
	base := baseName(src)
	res := types.FileResult{Source: src, Output: b.OutputPath(src)}

	if _, err := os.Stat(res.Output); err == nil {
		fmt.Fprintf(w, "skipped: %s (PDF already exists)\n", base)
		res.Status = types.ConversionSkipped
		return res
	}

	fail := func(err error) types.FileResult {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		res.Status = types.ConversionFailed
		res.Err = err
		return res
	}

	doc, err := b.layoutFile(src, base)
	if err != nil {
		return fail(err)
	}

	if err := b.renderer.Render(doc, res.Output); err != nil {
		if rmErr := os.Remove(res.Output); rmErr != nil && !os.IsNotExist(rmErr) {
			fmt.Fprintf(os.Stderr, "warning: could not remove partial output %s: %v\n", res.Output, rmErr)
		}
		return fail(fmt.Errorf("rendering %s: %w", res.Output, err))
	}

	if err := os.Remove(src); err != nil {
		return fail(fmt.Errorf("deleting source after conversion: %w", err))
	}

	res.Status = types.ConversionDone
	res.Pages = len(doc.Pages)
	res.Lines = doc.LineCount()
	fmt.Fprintf(w, "converted: %s%s (%d pages)\n", base, filepath.Ext(src), res.Pages)
	return res
}

// layoutFile reads src and lays its text out into a document titled base.
func (b *Batch) layoutFile(src, base string) (types.Document, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", src, err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	g := b.renderer.Geometry()
	lines := layout.Wrap(text, g.MaxLineWidth(), b.renderer.Measure)
	return layout.Build(base, lines, g), nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
