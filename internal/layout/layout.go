// Package layout computes the fixed directory tree the catalog lives in and
// derives the canonical filenames for snapshot content files. Filenames are
// always derived from the typed snapshot ID; parsing names back into IDs is
// the rebuild scanner's job only.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"quantumwatch/internal/core"
)

// SnapshotFilePrefix is the fixed prefix of snapshot content files.
const SnapshotFilePrefix = "quantum_crypto_data_"

// IndexFileName is the name of the catalog index document under the data dir.
const IndexFileName = "index.json"

// Layout holds the absolute paths of the catalog directory tree.
type Layout struct {
	BasePath string

	DataDir     string // data
	CurrentDir  string // data/current
	ArchivesDir string // data/archives

	AnalysisDir       string // analysis_results
	DailyDir          string // analysis_results/daily
	WeeklyDir         string // analysis_results/weekly
	MonthlyDir        string // analysis_results/monthly
	VisualizationsDir string // analysis_results/visualizations

	PodcastDir        string // podcasts
	WeeklyPodcastDir  string // podcasts/weekly
	MonthlyPodcastDir string // podcasts/monthly
}

// New computes the layout rooted at basePath. It does not touch the
// filesystem; call Ensure once at startup.
func New(basePath string) *Layout {
	dataDir := filepath.Join(basePath, "data")
	analysisDir := filepath.Join(basePath, "analysis_results")
	podcastDir := filepath.Join(basePath, "podcasts")

	return &Layout{
		BasePath:          basePath,
		DataDir:           dataDir,
		CurrentDir:        filepath.Join(dataDir, "current"),
		ArchivesDir:       filepath.Join(dataDir, "archives"),
		AnalysisDir:       analysisDir,
		DailyDir:          filepath.Join(analysisDir, "daily"),
		WeeklyDir:         filepath.Join(analysisDir, "weekly"),
		MonthlyDir:        filepath.Join(analysisDir, "monthly"),
		VisualizationsDir: filepath.Join(analysisDir, "visualizations"),
		PodcastDir:        podcastDir,
		WeeklyPodcastDir:  filepath.Join(podcastDir, "weekly"),
		MonthlyPodcastDir: filepath.Join(podcastDir, "monthly"),
	}
}

// Ensure creates every directory of the tree. Safe to call repeatedly; fails
// only when the filesystem denies creation.
func (l *Layout) Ensure() error {
	for _, dir := range []string{
		l.DataDir, l.CurrentDir, l.ArchivesDir,
		l.AnalysisDir, l.DailyDir, l.WeeklyDir, l.MonthlyDir, l.VisualizationsDir,
		l.PodcastDir, l.WeeklyPodcastDir, l.MonthlyPodcastDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// IndexFile returns the absolute path of the catalog index document.
func (l *Layout) IndexFile() string {
	return filepath.Join(l.DataDir, IndexFileName)
}

// SnapshotFileName returns the canonical content filename for an ID and format.
func SnapshotFileName(id core.SnapshotID, format core.ContentFormat) string {
	return fmt.Sprintf("%s%s.%s", SnapshotFilePrefix, id, format)
}

// CurrentSnapshotPath returns the absolute path a freshly registered content
// file is written to.
func (l *Layout) CurrentSnapshotPath(id core.SnapshotID, format core.ContentFormat) string {
	return filepath.Join(l.CurrentDir, SnapshotFileName(id, format))
}

// RelCurrentSnapshotPath returns the index-relative path of a content file in
// the working area. Index paths are kept relative to the base path so the
// whole tree can be relocated.
func (l *Layout) RelCurrentSnapshotPath(id core.SnapshotID, format core.ContentFormat) string {
	return filepath.Join("data", "current", SnapshotFileName(id, format))
}

// RelArchivedSnapshotPath returns the index-relative path of a content file in
// cold storage.
func (l *Layout) RelArchivedSnapshotPath(id core.SnapshotID, format core.ContentFormat) string {
	return filepath.Join("data", "archives", SnapshotFileName(id, format))
}

// Abs resolves an index-relative path against the base path.
func (l *Layout) Abs(rel string) string {
	return filepath.Join(l.BasePath, rel)
}

// AnalysisDirFor maps an analysis kind to its directory.
func (l *Layout) AnalysisDirFor(kind core.AnalysisKind) string {
	switch kind {
	case core.KindDailyDigest:
		return l.DailyDir
	case core.KindWeeklySummary:
		return l.WeeklyDir
	case core.KindMonthlyReport:
		return l.MonthlyDir
	}
	return l.AnalysisDir
}

// PodcastDirFor maps a podcast kind to its directory.
func (l *Layout) PodcastDirFor(kind core.PodcastKind) string {
	if kind == core.PodcastMonthly {
		return l.MonthlyPodcastDir
	}
	return l.WeeklyPodcastDir
}
