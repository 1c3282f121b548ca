package layout

import (
	"os"
	"path/filepath"
	"testing"

	"quantumwatch/internal/core"
)

func TestEnsure(t *testing.T) {
	tmpDir := t.TempDir()
	l := New(tmpDir)

	if err := l.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	expected := []string{
		filepath.Join(tmpDir, "data", "current"),
		filepath.Join(tmpDir, "data", "archives"),
		filepath.Join(tmpDir, "analysis_results", "daily"),
		filepath.Join(tmpDir, "analysis_results", "weekly"),
		filepath.Join(tmpDir, "analysis_results", "monthly"),
		filepath.Join(tmpDir, "analysis_results", "visualizations"),
		filepath.Join(tmpDir, "podcasts", "weekly"),
		filepath.Join(tmpDir, "podcasts", "monthly"),
	}

	for _, dir := range expected {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Expected directory %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	l := New(tmpDir)

	if err := l.Ensure(); err != nil {
		t.Fatalf("First Ensure failed: %v", err)
	}
	if err := l.Ensure(); err != nil {
		t.Fatalf("Second Ensure should not fail: %v", err)
	}
}

func TestSnapshotFileName(t *testing.T) {
	id := core.SnapshotID("20240101_090000")

	if got := SnapshotFileName(id, core.FormatCSV); got != "quantum_crypto_data_20240101_090000.csv" {
		t.Errorf("Unexpected CSV filename: %s", got)
	}
	if got := SnapshotFileName(id, core.FormatJSON); got != "quantum_crypto_data_20240101_090000.json" {
		t.Errorf("Unexpected JSON filename: %s", got)
	}
}

func TestRelativePaths(t *testing.T) {
	tmpDir := t.TempDir()
	l := New(tmpDir)
	id := core.SnapshotID("20240101_090000")

	rel := l.RelCurrentSnapshotPath(id, core.FormatJSON)
	if rel != filepath.Join("data", "current", "quantum_crypto_data_20240101_090000.json") {
		t.Errorf("Unexpected relative current path: %s", rel)
	}

	if l.Abs(rel) != filepath.Join(tmpDir, rel) {
		t.Errorf("Abs should resolve against the base path")
	}

	archived := l.RelArchivedSnapshotPath(id, core.FormatCSV)
	if archived != filepath.Join("data", "archives", "quantum_crypto_data_20240101_090000.csv") {
		t.Errorf("Unexpected relative archive path: %s", archived)
	}
}

func TestDirMapping(t *testing.T) {
	l := New("/base")

	if l.AnalysisDirFor(core.KindDailyDigest) != l.DailyDir {
		t.Error("daily_digest should map to the daily directory")
	}
	if l.AnalysisDirFor(core.KindWeeklySummary) != l.WeeklyDir {
		t.Error("weekly_summary should map to the weekly directory")
	}
	if l.AnalysisDirFor(core.KindMonthlyReport) != l.MonthlyDir {
		t.Error("monthly_report should map to the monthly directory")
	}
	if l.PodcastDirFor(core.PodcastWeekly) != l.WeeklyPodcastDir {
		t.Error("weekly podcasts should map to podcasts/weekly")
	}
	if l.PodcastDirFor(core.PodcastMonthly) != l.MonthlyPodcastDir {
		t.Error("monthly podcasts should map to podcasts/monthly")
	}
}
