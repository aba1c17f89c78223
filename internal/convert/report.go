// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/txt2pdf/pkg/types"
)

// Report is the on-disk YAML form of a batch run.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	Source      string        `yaml:"source"`
	Destination string        `yaml:"destination"`
	Summary     ReportSummary `yaml:"summary"`
	Files       []ReportFile  `yaml:"files"`
}

// ReportSummary holds the batch counts.
type ReportSummary struct {
	Converted int `yaml:"converted"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
	Total     int `yaml:"total"`
}

// ReportFile is one file's outcome.
type ReportFile struct {
	Source string                 `yaml:"source"`
	Output string                 `yaml:"output"`
	Status types.ConversionStatus `yaml:"status"`
	Pages  int                    `yaml:"pages,omitempty"`
	Lines  int                    `yaml:"lines,omitempty"`
	Error  string                 `yaml:"error,omitempty"`
}

// NewReport builds a Report from a finished batch.
func NewReport(cfg types.ConverterConfig, result BatchResult, now time.Time) Report {
	rep := Report{
		GeneratedAt: now.UTC(),
		Source:      cfg.SourcePath,
		Destination: cfg.DestinationPath,
		Summary: ReportSummary{
			Converted: result.Converted,
			Skipped:   result.Skipped,
			Failed:    result.Failed,
			Total:     result.Total(),
		},
		Files: make([]ReportFile, len(result.Files)),
	}
	for i, f := range result.Files {
		rep.Files[i] = ReportFile{
			Source: f.Source,
			Output: f.Output,
			Status: f.Status,
			Pages:  f.Pages,
			Lines:  f.Lines,
			Error:  f.Message(),
		}
	}
	return rep
}

// WriteReport saves rep as YAML at path.
func WriteReport(path string, rep Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return rep, nil
}
