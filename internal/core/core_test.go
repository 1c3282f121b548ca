package core

import (
	"testing"
	"time"
)

func TestNewSnapshotID(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	id := NewSnapshotID(at)

	if id != "20240101_090000" {
		t.Errorf("Expected 20240101_090000, got %s", id)
	}
	if id.Date() != "2024-01-01" {
		t.Errorf("Expected date 2024-01-01, got %s", id.Date())
	}
	if id.Clock() != "09:00:00" {
		t.Errorf("Expected time 09:00:00, got %s", id.Clock())
	}
}

func TestParseSnapshotID(t *testing.T) {
	id, err := ParseSnapshotID("20240315_143000")
	if err != nil {
		t.Fatalf("ParseSnapshotID failed: %v", err)
	}
	if id.String() != "20240315_143000" {
		t.Errorf("Expected round-trip of id, got %s", id)
	}

	ts, err := id.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Year() != 2024 || ts.Month() != time.March || ts.Day() != 15 {
		t.Errorf("Unexpected timestamp: %v", ts)
	}
}

func TestParseSnapshotID_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"20240101",
		"20240101-090000",
		"2024010_090000",
		"20241301_090000", // month 13
		"not_an_id",
		"20240101_090000.json",
	}

	for _, raw := range invalid {
		if _, err := ParseSnapshotID(raw); err == nil {
			t.Errorf("Expected error for %q, got none", raw)
		}
	}
}

func TestComputeStats(t *testing.T) {
	items := []ContentItem{
		{Title: "QKD breakthrough", Source: "arXiv", Type: ItemTypeResearch},
		{Title: "New NIST standard", Source: "The Quantum Insider", Type: ItemTypeNews},
		{Title: "Post-quantum rollout", Source: "The Quantum Insider", Type: ItemTypeNews},
	}

	stats := ComputeStats(items)

	if stats.TotalItems != 3 {
		t.Errorf("Expected 3 total items, got %d", stats.TotalItems)
	}
	if stats.ScientificArticles != 1 {
		t.Errorf("Expected 1 scientific article, got %d", stats.ScientificArticles)
	}
	if stats.NewsArticles != 2 {
		t.Errorf("Expected 2 news articles, got %d", stats.NewsArticles)
	}
	if stats.UniqueSources != 2 {
		t.Errorf("Expected 2 unique sources, got %d", stats.UniqueSources)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalItems != 0 || stats.UniqueSources != 0 {
		t.Errorf("Expected zero stats for empty input, got %+v", stats)
	}
}

func TestFindSnapshot(t *testing.T) {
	doc := NewCatalogDocument()
	doc.Snapshots = append(doc.Snapshots, SnapshotEntry{ID: "20240101_090000"})

	if entry := doc.FindSnapshot("20240101_090000"); entry == nil {
		t.Error("Expected to find snapshot")
	}
	if entry := doc.FindSnapshot("20990101_090000"); entry != nil {
		t.Error("Expected nil for unknown snapshot id")
	}
}

func TestFindSnapshot_ReturnsMutablePointer(t *testing.T) {
	doc := NewCatalogDocument()
	doc.Snapshots = append(doc.Snapshots, SnapshotEntry{ID: "20240101_090000", Status: StatusCurrent})

	entry := doc.FindSnapshot("20240101_090000")
	entry.Status = StatusArchived

	if doc.Snapshots[0].Status != StatusArchived {
		t.Error("FindSnapshot should return a pointer into the document")
	}
}

func TestAnalysisKindValid(t *testing.T) {
	for _, kind := range AnalysisKinds {
		if !kind.Valid() {
			t.Errorf("Expected %s to be valid", kind)
		}
	}
	if AnalysisKind("wordcloud").Valid() {
		t.Error("Expected unknown kind to be invalid")
	}
}
