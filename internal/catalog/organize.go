package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quantumwatch/internal/layout"
)

// OrganizeResult counts the files moved by one organize pass.
type OrganizeResult struct {
	DataMoved           int
	AnalysisMoved       int
	VisualizationsMoved int
}

// Organize migrates a legacy flat layout into the directory tree: snapshot
// content files loose in data/ move to data/current/, artifact files loose in
// analysis_results/ move to their kind directory, and recognized
// visualization files move to analysis_results/visualizations/. An existing
// destination file is never overwritten. The index is rebuilt afterward so it
// reflects the new locations. Run this before rebuild on a legacy tree.
func (c *Catalog) Organize() (OrganizeResult, error) {
	var result OrganizeResult

	names, err := readDirNames(c.layout.DataDir)
	if err != nil {
		return result, fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, name := range names {
		if !strings.HasPrefix(name, layout.SnapshotFilePrefix) {
			continue
		}
		if c.moveIfAbsent(filepath.Join(c.layout.DataDir, name), filepath.Join(c.layout.CurrentDir, name)) {
			result.DataMoved++
		}
	}

	names, err = readDirNames(c.layout.AnalysisDir)
	if err != nil {
		return result, fmt.Errorf("failed to read analysis directory: %w", err)
	}
	for _, name := range names {
		source := filepath.Join(c.layout.AnalysisDir, name)

		if kind, ok := analysisKind(name); ok {
			if c.moveIfAbsent(source, filepath.Join(c.layout.AnalysisDirFor(kind), name)) {
				result.AnalysisMoved++
			}
			continue
		}

		if isVisualizationFile(name) {
			if c.moveIfAbsent(source, filepath.Join(c.layout.VisualizationsDir, name)) {
				result.VisualizationsMoved++
			}
		}
	}

	if _, err := c.Rebuild(); err != nil {
		return result, fmt.Errorf("organize: %w", err)
	}

	c.log.Info().Int("data", result.DataMoved).Int("analysis", result.AnalysisMoved).
		Int("visualizations", result.VisualizationsMoved).Msg("legacy layout organized")
	return result, nil
}

// moveIfAbsent moves source to dest unless dest already exists. Move failures
// are logged and absorbed; organize is best-effort per file.
func (c *Catalog) moveIfAbsent(source, dest string) bool {
	if _, err := os.Stat(dest); err == nil {
		return false
	}
	if err := os.Rename(source, dest); err != nil {
		c.log.Error().Err(err).Str("from", source).Str("to", dest).Msg("organize: failed to move file")
		return false
	}
	c.log.Debug().Str("from", source).Str("to", dest).Msg("organize: file moved")
	return true
}

// isVisualizationFile recognizes chart images and permanent analysis data
// that belong under visualizations/ rather than a dated artifact directory.
func isVisualizationFile(name string) bool {
	switch {
	case strings.HasPrefix(name, "daily_"),
		strings.HasPrefix(name, "weekly_"),
		strings.HasPrefix(name, "monthly_"),
		strings.HasPrefix(name, "recent_"),
		strings.HasPrefix(name, "index"):
		return false
	}
	switch filepath.Ext(name) {
	case ".png", ".jpg", ".svg", ".csv", ".json":
		return true
	}
	return false
}
