package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOrganize_MigratesLegacyFlatLayout(t *testing.T) {
	c := newTestCatalog(t)

	// Legacy flat tree: content files directly in data/, artifacts directly
	// in analysis_results/, plus permanent visualization outputs.
	writeFile(t, filepath.Join(c.layout.DataDir, "quantum_crypto_data_20240101_090000.csv"), "id,title\n")
	writeFile(t, filepath.Join(c.layout.DataDir, "quantum_crypto_data_20240101_090000.json"),
		`[{"title":"QKD","source":"arXiv","type":"research"}]`)
	writeFile(t, filepath.Join(c.layout.AnalysisDir, "daily_digest_2024-01-01.json"), "{}")
	writeFile(t, filepath.Join(c.layout.AnalysisDir, "weekly_summary_2024-01-07.md"), "# weekly")
	writeFile(t, filepath.Join(c.layout.AnalysisDir, "title_wordcloud.png"), "png")
	writeFile(t, filepath.Join(c.layout.AnalysisDir, "topics.csv"), "topic,count\n")

	result, err := c.Organize()
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	if result.DataMoved != 2 {
		t.Errorf("Expected 2 data files moved, got %d", result.DataMoved)
	}
	if result.AnalysisMoved != 2 {
		t.Errorf("Expected 2 analysis files moved, got %d", result.AnalysisMoved)
	}
	if result.VisualizationsMoved != 2 {
		t.Errorf("Expected 2 visualization files moved, got %d", result.VisualizationsMoved)
	}

	expected := []string{
		filepath.Join(c.layout.CurrentDir, "quantum_crypto_data_20240101_090000.csv"),
		filepath.Join(c.layout.CurrentDir, "quantum_crypto_data_20240101_090000.json"),
		filepath.Join(c.layout.DailyDir, "daily_digest_2024-01-01.json"),
		filepath.Join(c.layout.WeeklyDir, "weekly_summary_2024-01-07.md"),
		filepath.Join(c.layout.VisualizationsDir, "title_wordcloud.png"),
		filepath.Join(c.layout.VisualizationsDir, "topics.csv"),
	}
	for _, path := range expected {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist after organize: %v", path, err)
		}
	}

	// Organize rebuilds the index so the migrated snapshot is registered.
	if len(c.doc.Snapshots) != 1 || c.doc.Snapshots[0].ID != "20240101_090000" {
		t.Errorf("Expected migrated snapshot in rebuilt index, got %+v", c.doc.Snapshots)
	}
}

func TestOrganize_NeverOverwritesDestination(t *testing.T) {
	c := newTestCatalog(t)

	writeFile(t, filepath.Join(c.layout.DataDir, "quantum_crypto_data_20240101_090000.json"), "legacy")
	writeFile(t, filepath.Join(c.layout.CurrentDir, "quantum_crypto_data_20240101_090000.json"), "already organized")

	result, err := c.Organize()
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}
	if result.DataMoved != 0 {
		t.Errorf("Expected no moves when destination exists, got %d", result.DataMoved)
	}

	content, err := os.ReadFile(filepath.Join(c.layout.CurrentDir, "quantum_crypto_data_20240101_090000.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "already organized" {
		t.Error("Existing destination file must not be overwritten")
	}
}

func TestOrganize_LeavesIndexAndDatedFilesAlone(t *testing.T) {
	c := newTestCatalog(t)

	if _, err := c.RegisterSnapshot(testItems(), ts("20240101_090000")); err != nil {
		t.Fatalf("RegisterSnapshot failed: %v", err)
	}
	// recent_* and index* files under analysis_results stay put.
	writeFile(t, filepath.Join(c.layout.AnalysisDir, "recent_trends_summary.txt"), "trends")

	if _, err := c.Organize(); err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(c.layout.AnalysisDir, "recent_trends_summary.txt")); err != nil {
		t.Errorf("recent_* files should not be swept into visualizations: %v", err)
	}
	if _, err := os.Stat(c.store.Path()); err != nil {
		t.Errorf("Index document should survive organize: %v", err)
	}
}

func TestCleanup_RemovesTempFilesAndPrunesArtifacts(t *testing.T) {
	c := newTestCatalog(t)

	if _, err := c.RegisterSnapshot(testItems(), ts("20240110_090000")); err != nil {
		t.Fatalf("RegisterSnapshot failed: %v", err)
	}

	writeFile(t, filepath.Join(c.layout.BasePath, "scratch.tmp"), "x")
	writeFile(t, filepath.Join(c.layout.WeeklyPodcastDir, "temp_section_1.mp3"), "x")
	writeFile(t, filepath.Join(c.layout.AnalysisDir, "work.temp"), "x")

	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"}
	for _, day := range days {
		writeFile(t, filepath.Join(c.layout.DailyDir, "daily_digest_"+day+".json"), "{}")
	}

	result, err := c.Cleanup(5)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if result.TempRemoved != 3 {
		t.Errorf("Expected 3 temp files removed, got %d", result.TempRemoved)
	}
	if result.ArtifactsRemoved != 2 {
		t.Errorf("Expected 2 stale artifacts removed, got %d", result.ArtifactsRemoved)
	}

	// The two oldest digests are gone, the newest five remain.
	for _, day := range days[:2] {
		if _, err := os.Stat(filepath.Join(c.layout.DailyDir, "daily_digest_"+day+".json")); !os.IsNotExist(err) {
			t.Errorf("Expected daily_digest_%s.json to be pruned", day)
		}
	}
	for _, day := range days[2:] {
		if _, err := os.Stat(filepath.Join(c.layout.DailyDir, "daily_digest_"+day+".json")); err != nil {
			t.Errorf("Expected daily_digest_%s.json to survive: %v", day, err)
		}
	}

	// Snapshot survives cleanup and the rebuilt index still lists it.
	if len(c.doc.Snapshots) != 1 {
		t.Errorf("Expected snapshot to survive cleanup, got %d entries", len(c.doc.Snapshots))
	}
}

func TestCleanup_NothingToDo(t *testing.T) {
	c := newTestCatalog(t)

	result, err := c.Cleanup(5)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if result.TempRemoved != 0 || result.ArtifactsRemoved != 0 {
		t.Errorf("Expected empty result on a clean tree, got %+v", result)
	}
}
