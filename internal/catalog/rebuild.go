package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"quantumwatch/internal/core"
	"quantumwatch/internal/layout"
)

var (
	dateTokenPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	podcastTokenPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{8})$`)
)

// Rebuild discards the in-memory document and reconstructs the whole index
// by scanning the directory tree, treating on-disk filenames as ground truth.
// Any filename that does not match the expected conventions is ignored; a
// per-file parse failure is logged and skipped, never aborting the rebuild.
// The rebuilt document is persisted, overwriting the previous index.
func (c *Catalog) Rebuild() (*core.CatalogDocument, error) {
	doc := core.NewCatalogDocument()

	c.scanSnapshotDir(doc, c.layout.CurrentDir, false)
	c.scanSnapshotDir(doc, c.layout.ArchivesDir, true)
	c.scanAnalysisDirs(doc)
	c.scanPodcastDirs(doc)

	if err := c.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save rebuilt index: %w", err)
	}

	c.doc = doc
	c.log.Info().Int("snapshots", len(doc.Snapshots)).Int("podcasts", len(doc.Podcasts)).
		Msg("index rebuilt from directory tree")
	return doc, nil
}

// scanSnapshotDir walks one content directory and creates or updates snapshot
// entries for every recognized paired content file. For the archive pass only
// the recorded path is updated on an entry already seen in the working area;
// a current status from that pass wins (ids normally never appear in both).
func (c *Catalog) scanSnapshotDir(doc *core.CatalogDocument, dir string, archived bool) {
	names, err := readDirNames(dir)
	if err != nil {
		c.log.Warn().Err(err).Str("dir", dir).Msg("rebuild: cannot read content directory")
		return
	}

	relDir := filepath.Join("data", "current")
	if archived {
		relDir = filepath.Join("data", "archives")
	}

	for _, name := range names {
		format, ok := snapshotFormat(name)
		if !ok {
			continue
		}
		token := strings.TrimSuffix(strings.TrimPrefix(name, layout.SnapshotFilePrefix), "."+string(format))
		id, err := core.ParseSnapshotID(token)
		if err != nil {
			c.log.Error().Err(err).Str("file", name).Msg("rebuild: skipping unparseable content filename")
			continue
		}

		if entry := doc.FindSnapshot(id); entry != nil {
			entry.FilePaths[format] = filepath.Join(relDir, name)
			continue
		}

		status := core.StatusCurrent
		if archived {
			status = core.StatusArchived
		}

		entry := core.SnapshotEntry{
			ID:   id,
			Date: id.Date(),
			Time: id.Clock(),
			FilePaths: map[core.ContentFormat]string{
				core.FormatCSV:  filepath.Join(relDir, layout.SnapshotFileName(id, core.FormatCSV)),
				core.FormatJSON: filepath.Join(relDir, layout.SnapshotFileName(id, core.FormatJSON)),
			},
			Status:          status,
			AnalysisResults: []core.AnalysisResult{},
		}

		// Recompute stats from the JSON twin when it is present and readable.
		jsonPath := filepath.Join(dir, layout.SnapshotFileName(id, core.FormatJSON))
		if items, err := readContentJSON(jsonPath); err == nil {
			entry.Stats = core.ComputeStats(items)
		} else if !os.IsNotExist(err) {
			c.log.Error().Err(err).Str("file", jsonPath).Msg("rebuild: content file unreadable, keeping zero stats")
		}

		doc.Snapshots = append(doc.Snapshots, entry)
	}
}

// scanAnalysisDirs recognizes artifact files by their kind prefix and trailing
// date token. Artifacts carry no snapshot id in their names, so each one is
// attached to the most recent snapshot by id. That attribution is a best
// available signal, not a guaranteed mapping.
func (c *Catalog) scanAnalysisDirs(doc *core.CatalogDocument) {
	dirs := map[string]string{
		c.layout.DailyDir:   filepath.Join("analysis_results", "daily"),
		c.layout.WeeklyDir:  filepath.Join("analysis_results", "weekly"),
		c.layout.MonthlyDir: filepath.Join("analysis_results", "monthly"),
	}

	for dir, relDir := range dirs {
		names, err := readDirNames(dir)
		if err != nil {
			c.log.Warn().Err(err).Str("dir", dir).Msg("rebuild: cannot read analysis directory")
			continue
		}

		for _, name := range names {
			kind, ok := analysisKind(name)
			if !ok {
				continue
			}
			date, ok := trailingDateToken(name)
			if !ok {
				c.log.Error().Str("file", name).Msg("rebuild: analysis filename has no date token, skipping")
				continue
			}

			doc.AnalysisMetrics[kind] = date

			latest := latestSnapshot(doc)
			if latest == nil {
				continue
			}
			upsertAnalysisResult(latest, core.AnalysisResult{
				Type:     kind,
				Date:     date,
				FilePath: filepath.Join(relDir, name),
			})
		}
	}
}

// scanPodcastDirs pairs every recognized audio file with a script file of
// matching date when one exists in the same directory. The podcast producer
// writes compact YYYYMMDD date tokens while registration records dashed
// dates, so both shapes are accepted and the literal token carries through
// to the entry and the script lookup.
func (c *Catalog) scanPodcastDirs(doc *core.CatalogDocument) {
	dirs := map[string]string{
		c.layout.WeeklyPodcastDir:  filepath.Join("podcasts", "weekly"),
		c.layout.MonthlyPodcastDir: filepath.Join("podcasts", "monthly"),
	}

	for dir, relDir := range dirs {
		names, err := readDirNames(dir)
		if err != nil {
			c.log.Warn().Err(err).Str("dir", dir).Msg("rebuild: cannot read podcast directory")
			continue
		}

		for _, name := range names {
			if !strings.HasSuffix(name, ".mp3") {
				continue
			}

			var kind core.PodcastKind
			switch {
			case strings.Contains(name, "Weekly"):
				kind = core.PodcastWeekly
			case strings.Contains(name, "Monthly"):
				kind = core.PodcastMonthly
			default:
				continue
			}

			date, ok := trailingPodcastDate(name)
			if !ok {
				c.log.Error().Str("file", name).Msg("rebuild: podcast filename has no date token, skipping")
				continue
			}

			scriptName := fmt.Sprintf("podcast_script_%s.txt", date)
			scriptPath := ""
			if _, err := os.Stat(filepath.Join(dir, scriptName)); err == nil {
				scriptPath = filepath.Join(relDir, scriptName)
			}

			doc.Podcasts = append(doc.Podcasts, core.PodcastEntry{
				Type:       kind,
				Date:       date,
				ScriptPath: scriptPath,
				AudioPath:  filepath.Join(relDir, name),
			})
		}
	}
}

// snapshotFormat recognizes a paired content filename and reports its format.
func snapshotFormat(name string) (core.ContentFormat, bool) {
	if !strings.HasPrefix(name, layout.SnapshotFilePrefix) {
		return "", false
	}
	switch {
	case strings.HasSuffix(name, ".csv"):
		return core.FormatCSV, true
	case strings.HasSuffix(name, ".json"):
		return core.FormatJSON, true
	}
	return "", false
}

// analysisKind recognizes an artifact filename by its kind prefix.
func analysisKind(name string) (core.AnalysisKind, bool) {
	for _, kind := range core.AnalysisKinds {
		if strings.HasPrefix(name, string(kind)+"_") {
			return kind, true
		}
	}
	return "", false
}

// trailingDateToken extracts the YYYY-MM-DD token before the extension.
func trailingDateToken(name string) (string, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.LastIndex(base, "_")
	if idx < 0 {
		return "", false
	}
	token := base[idx+1:]
	if !dateTokenPattern.MatchString(token) {
		return "", false
	}
	return token, true
}

// trailingPodcastDate extracts the date token before the extension, dashed
// (YYYY-MM-DD) or compact (YYYYMMDD).
func trailingPodcastDate(name string) (string, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.LastIndex(base, "_")
	if idx < 0 {
		return "", false
	}
	token := base[idx+1:]
	if !podcastTokenPattern.MatchString(token) {
		return "", false
	}
	return token, true
}

// latestSnapshot returns the entry with the greatest id, or nil.
func latestSnapshot(doc *core.CatalogDocument) *core.SnapshotEntry {
	var latest *core.SnapshotEntry
	for i := range doc.Snapshots {
		if latest == nil || doc.Snapshots[i].ID > latest.ID {
			latest = &doc.Snapshots[i]
		}
	}
	return latest
}

func readDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
