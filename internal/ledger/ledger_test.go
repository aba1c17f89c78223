// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/txt2pdf/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(types.LedgerConfig{Path: filepath.Join(dir, "state", "ledger.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	fixed := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	return store, dir
}

func sampleResults() []types.FileResult {
	return []types.FileResult{
		{Source: "in/a.txt", Output: "out/a.pdf", Status: types.ConversionDone, Pages: 3, Lines: 120},
		{Source: "in/b.txt", Output: "out/b.pdf", Status: types.ConversionSkipped},
		{Source: "in/c.txt", Output: "out/c.pdf", Status: types.ConversionFailed, Err: errors.New("permission denied")},
	}
}

// --- tests ---

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(types.LedgerConfig{}); err == nil {
		t.Fatal("expected error for empty ledger path")
	}
}

func TestRecordAndList(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	n, err := store.Record(ctx, sampleResults()...)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("recorded = %d, want 3", n)
	}

	entries, err := store.List(ctx, ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	// Newest first.
	if entries[0].Source != "in/c.txt" || entries[2].Source != "in/a.txt" {
		t.Errorf("unexpected order: %s, %s", entries[0].Source, entries[2].Source)
	}
	if entries[0].Error != "permission denied" {
		t.Errorf("error = %q, want %q", entries[0].Error, "permission denied")
	}
	if entries[2].Pages != 3 || entries[2].Lines != 120 {
		t.Errorf("pages/lines = %d/%d, want 3/120", entries[2].Pages, entries[2].Lines)
	}
	if entries[2].Error != "" {
		t.Errorf("successful entry has error %q", entries[2].Error)
	}
	if !entries[1].RecordedAt.Equal(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)) {
		t.Errorf("recorded_at = %v", entries[1].RecordedAt)
	}
}

func TestList_Filters(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	if _, err := store.Record(ctx, sampleResults()...); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, sampleResults()[0]); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts ListOptions
		want int
	}{
		{"all", ListOptions{}, 4},
		{"failed only", ListOptions{Status: types.ConversionFailed}, 1},
		{"converted only", ListOptions{Status: types.ConversionDone}, 2},
		{"by source", ListOptions{Source: "in/a.txt"}, 2},
		{"limit", ListOptions{Limit: 2}, 2},
		{"no limit", ListOptions{Limit: -1}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.List(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != tt.want {
				t.Errorf("entries = %d, want %d", len(entries), tt.want)
			}
		})
	}
}

func TestRecordResults(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := types.LedgerConfig{Path: filepath.Join(dir, "ledger.db")}

	// Disabled ledger: nothing happens.
	n, err := RecordResults(ctx, types.LedgerConfig{}, sampleResults())
	if err != nil || n != 0 {
		t.Fatalf("disabled ledger: n=%d err=%v", n, err)
	}

	// Skip-only batch: the database is never created.
	skips := []types.FileResult{{Source: "in/x.txt", Status: types.ConversionSkipped}}
	n, err = RecordResults(ctx, cfg, skips)
	if err != nil || n != 0 {
		t.Fatalf("skip-only batch: n=%d err=%v", n, err)
	}
	if _, err := os.Stat(cfg.Path); !os.IsNotExist(err) {
		t.Fatalf("ledger file should not exist after a skip-only batch, stat err = %v", err)
	}

	n, err = RecordResults(ctx, cfg, sampleResults())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("recorded = %d, want 2 (skips are not recorded)", n)
	}

	store, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	entries, err := store.List(ctx, ListOptions{Status: types.ConversionSkipped})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("skipped entries = %d, want 0", len(entries))
	}
}

func TestRecordResults_CancelledContext(t *testing.T) {
	cfg := types.LedgerConfig{Path: filepath.Join(t.TempDir(), "ledger.db")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := []types.FileResult{{Source: "in/a.txt", Output: "out/a.pdf", Status: types.ConversionDone, Pages: 1, Lines: 3}}
	n, err := RecordResults(ctx, cfg, done)
	if err != nil {
		t.Fatalf("RecordResults after cancel: %v", err)
	}
	if n != 1 {
		t.Fatalf("recorded = %d, want 1", n)
	}

	store, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	entries, err := store.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Source != "in/a.txt" {
		t.Errorf("entries = %+v, want one entry for in/a.txt", entries)
	}
}

func TestExport(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()
	if _, err := store.Record(ctx, sampleResults()...); err != nil {
		t.Fatal(err)
	}

	yamlPath := filepath.Join(dir, "history.yaml")
	if err := store.ExportYAML(ctx, yamlPath, ListOptions{Status: types.ConversionFailed}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []Entry
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("parsing YAML export: %v", err)
	}
	if len(fromYAML) != 1 || fromYAML[0].Source != "in/c.txt" {
		t.Errorf("YAML export = %+v", fromYAML)
	}

	jsonPath := filepath.Join(dir, "history.json")
	if err := store.ExportJSON(ctx, jsonPath, ListOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []Entry
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("parsing JSON export: %v", err)
	}
	if len(fromJSON) != 3 {
		t.Errorf("JSON export entries = %d, want 3", len(fromJSON))
	}
}

func TestExport_Empty(t *testing.T) {
	store, dir := testStore(t)

	path := filepath.Join(dir, "empty.json")
	if err := store.ExportJSON(context.Background(), path, ListOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty export = %q, want []", data)
	}
}
