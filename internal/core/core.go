package core

import (
	"fmt"
	"regexp"
	"time"
)

// SnapshotID is the canonical key for one ingestion run, in the fixed-width
// form YYYYMMDD_HHMMSS. Lexicographic order on IDs is chronological order.
// Display date/time and content filenames are derived from the ID, never the
// reverse outside the rebuild scanner.
type SnapshotID string

const snapshotIDLayout = "20060102_150405"

var snapshotIDPattern = regexp.MustCompile(`^\d{8}_\d{6}$`)

// NewSnapshotID derives an ID from an ingestion timestamp.
func NewSnapshotID(at time.Time) SnapshotID {
	return SnapshotID(at.Format(snapshotIDLayout))
}

// ParseSnapshotID validates a raw token (typically cut out of a filename) and
// returns it as a typed ID.
func ParseSnapshotID(raw string) (SnapshotID, error) {
	if !snapshotIDPattern.MatchString(raw) {
		return "", fmt.Errorf("invalid snapshot id %q: want YYYYMMDD_HHMMSS", raw)
	}
	if _, err := time.Parse(snapshotIDLayout, raw); err != nil {
		return "", fmt.Errorf("invalid snapshot id %q: %w", raw, err)
	}
	return SnapshotID(raw), nil
}

func (id SnapshotID) String() string { return string(id) }

// Timestamp returns the ingestion time encoded in the ID.
func (id SnapshotID) Timestamp() (time.Time, error) {
	return time.Parse(snapshotIDLayout, string(id))
}

// Date returns the display date (YYYY-MM-DD) derived from the ID.
func (id SnapshotID) Date() string {
	t, err := id.Timestamp()
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Clock returns the display time (HH:MM:SS) derived from the ID.
func (id SnapshotID) Clock() string {
	t, err := id.Timestamp()
	if err != nil {
		return ""
	}
	return t.Format("15:04:05")
}

// SnapshotStatus is the lifecycle state of a snapshot. Exactly one snapshot
// is current at a time; registering a new one demotes the rest.
type SnapshotStatus string

const (
	StatusCurrent  SnapshotStatus = "current"
	StatusArchived SnapshotStatus = "archived"
)

// AnalysisKind identifies a derived analysis artifact family. The values
// double as the filename prefixes (with a trailing underscore) that the
// rebuild scanner recognizes.
type AnalysisKind string

const (
	KindDailyDigest   AnalysisKind = "daily_digest"
	KindWeeklySummary AnalysisKind = "weekly_summary"
	KindMonthlyReport AnalysisKind = "monthly_report"
)

// AnalysisKinds lists every known kind in scan order.
var AnalysisKinds = []AnalysisKind{KindDailyDigest, KindWeeklySummary, KindMonthlyReport}

// Valid reports whether k is one of the known analysis kinds.
func (k AnalysisKind) Valid() bool {
	switch k {
	case KindDailyDigest, KindWeeklySummary, KindMonthlyReport:
		return true
	}
	return false
}

// PodcastKind identifies the podcast cadence.
type PodcastKind string

const (
	PodcastWeekly  PodcastKind = "weekly"
	PodcastMonthly PodcastKind = "monthly"
)

// ContentFormat selects one of the paired content files of a snapshot.
type ContentFormat string

const (
	FormatCSV  ContentFormat = "csv"
	FormatJSON ContentFormat = "json"
)

// ContentItem is one collected article as produced by the collectors and
// stored in a snapshot's JSON content file.
type ContentItem struct {
	ID      string `json:"id"`      // Unique identifier, assigned at registration when empty
	Title   string `json:"title"`   // Article title
	Source  string `json:"source"`  // Publishing source (feed name, "arXiv", site name)
	URL     string `json:"url"`     // Link to the original article
	Date    string `json:"date"`    // Publication date (YYYY-MM-DD, or "N/A" when unknown)
	Summary string `json:"summary"` // Short abstract or excerpt
	Type    string `json:"type"`    // "news" or "research"
}

const (
	ItemTypeNews     = "news"
	ItemTypeResearch = "research"
)

// SnapshotStats holds the counts computed once when a snapshot is registered.
// They are never recomputed automatically afterward.
type SnapshotStats struct {
	TotalItems         int `json:"total_items"`
	ScientificArticles int `json:"scientific_articles"`
	NewsArticles       int `json:"news_articles"`
	UniqueSources      int `json:"unique_sources"`
}

// ComputeStats derives snapshot stats from the collected items.
func ComputeStats(items []ContentItem) SnapshotStats {
	stats := SnapshotStats{TotalItems: len(items)}
	sources := make(map[string]struct{})
	for _, item := range items {
		switch item.Type {
		case ItemTypeResearch:
			stats.ScientificArticles++
		case ItemTypeNews:
			stats.NewsArticles++
		}
		sources[item.Source] = struct{}{}
	}
	stats.UniqueSources = len(sources)
	return stats
}

// AnalysisResult records one derived artifact attached to a snapshot. At most
// one entry exists per (type, date) pair; re-registering overwrites the path.
type AnalysisResult struct {
	Type     AnalysisKind `json:"type"`
	Date     string       `json:"date"`
	FilePath string       `json:"file_path"` // Relative to the catalog base path
}

// SnapshotEntry is one ingestion run in the catalog. Created exactly once;
// only Status and the analysis list mutate afterward.
type SnapshotEntry struct {
	ID              SnapshotID               `json:"id"`
	Date            string                   `json:"date"` // Derived from ID, kept for readability of the index
	Time            string                   `json:"time"` // Derived from ID
	FilePaths       map[ContentFormat]string `json:"file_paths"`
	Stats           SnapshotStats            `json:"stats"`
	Status          SnapshotStatus           `json:"status"`
	AnalysisResults []AnalysisResult         `json:"analysis_results"`
}

// PodcastEntry records one produced episode. Duplicates are tolerated.
type PodcastEntry struct {
	Type       PodcastKind `json:"type"`
	Date       string      `json:"date"`
	ScriptPath string      `json:"script_path,omitempty"` // Empty when no script file was found
	AudioPath  string      `json:"audio_path"`
}

// CatalogDocument is the whole persisted catalog state, serialized as one
// human-readable JSON document. The filesystem is ground truth; the document
// is a rebuildable cache over it.
type CatalogDocument struct {
	LastUpdated     time.Time               `json:"last_updated"`
	Snapshots       []SnapshotEntry         `json:"snapshots"`
	AnalysisMetrics map[AnalysisKind]string `json:"analysis_metrics"` // Kind -> date of most recent artifact
	Podcasts        []PodcastEntry          `json:"podcasts"`
}

// NewCatalogDocument returns an empty document with initialized collections.
func NewCatalogDocument() *CatalogDocument {
	return &CatalogDocument{
		Snapshots:       []SnapshotEntry{},
		AnalysisMetrics: map[AnalysisKind]string{},
		Podcasts:        []PodcastEntry{},
	}
}

// FindSnapshot returns a pointer into the snapshot list, or nil.
func (d *CatalogDocument) FindSnapshot(id SnapshotID) *SnapshotEntry {
	for i := range d.Snapshots {
		if d.Snapshots[i].ID == id {
			return &d.Snapshots[i]
		}
	}
	return nil
}

// SearchResult is one snapshot's worth of keyword matches.
type SearchResult struct {
	SnapshotID SnapshotID    `json:"snapshot_id"`
	Date       string        `json:"date"`
	Matches    []ContentItem `json:"matches"`
}

// CatalogStats is the summary reported by the info command.
type CatalogStats struct {
	TotalSnapshots       int                     `json:"total_snapshots"`
	CurrentSnapshots     int                     `json:"current_snapshots"`
	ArchivedSnapshots    int                     `json:"archived_snapshots"`
	TotalAnalysisResults int                     `json:"total_analysis_results"`
	TotalPodcasts        int                     `json:"total_podcasts"`
	LastUpdated          time.Time               `json:"last_updated"`
	AnalysisMetrics      map[AnalysisKind]string `json:"analysis_metrics"`
}
