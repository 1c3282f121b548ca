// Package catalog implements the lifecycle manager for collected data
// snapshots, derived analysis artifacts, and produced podcast episodes. The
// persisted index document is the single source of truth for metadata, while
// the directory tree remains the durable ground truth the index can always be
// rebuilt from.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quantumwatch/internal/core"
	"quantumwatch/internal/index"
	"quantumwatch/internal/layout"
)

var (
	// ErrNoSnapshots is returned by lookups on an empty catalog.
	ErrNoSnapshots = errors.New("no snapshots in catalog")

	// ErrSnapshotNotFound is returned when a referenced snapshot id is absent.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrNoAnalysis is returned when no analysis artifact matches a lookup.
	ErrNoAnalysis = errors.New("no analysis result found")
)

// Catalog owns the loaded index document and performs every read-modify-write
// as one synchronous call. Single process, single writer; concurrent writers
// are out of scope.
type Catalog struct {
	layout *layout.Layout
	store  *index.Store
	log    zerolog.Logger
	doc    *core.CatalogDocument
	now    func() time.Time
}

// New loads the index (or starts an empty one) and returns a ready catalog.
// The layout must already exist; call layout.Ensure once at startup.
func New(l *layout.Layout, store *index.Store, log zerolog.Logger) *Catalog {
	return &Catalog{
		layout: l,
		store:  store,
		log:    log.With().Str("component", "catalog").Logger(),
		doc:    store.Load(),
		now:    time.Now,
	}
}

// Document exposes the in-memory index for read-only inspection.
func (c *Catalog) Document() *core.CatalogDocument {
	return c.doc
}

// RegisterSnapshot writes the paired CSV/JSON content files for one ingestion
// run under the working area, demotes any previously current snapshot, and
// appends the new entry as current. The call is all-or-nothing: a failed
// content write or index save leaves both the document and the working area
// as they were.
func (c *Catalog) RegisterSnapshot(items []core.ContentItem, at time.Time) (*core.SnapshotEntry, error) {
	if at.IsZero() {
		at = c.now()
	}
	id := core.NewSnapshotID(at)

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}

	csvPath := c.layout.CurrentSnapshotPath(id, core.FormatCSV)
	jsonPath := c.layout.CurrentSnapshotPath(id, core.FormatJSON)

	if err := writeContentCSV(csvPath, items); err != nil {
		os.Remove(csvPath)
		return nil, fmt.Errorf("failed to write snapshot csv: %w", err)
	}
	if err := writeContentJSON(jsonPath, items); err != nil {
		os.Remove(csvPath)
		os.Remove(jsonPath)
		return nil, fmt.Errorf("failed to write snapshot json: %w", err)
	}

	entry := core.SnapshotEntry{
		ID:   id,
		Date: id.Date(),
		Time: id.Clock(),
		FilePaths: map[core.ContentFormat]string{
			core.FormatCSV:  c.layout.RelCurrentSnapshotPath(id, core.FormatCSV),
			core.FormatJSON: c.layout.RelCurrentSnapshotPath(id, core.FormatJSON),
		},
		Stats:           core.ComputeStats(items),
		Status:          core.StatusCurrent,
		AnalysisResults: []core.AnalysisResult{},
	}

	demoted := make([]int, 0, 1)
	for i := range c.doc.Snapshots {
		if c.doc.Snapshots[i].Status == core.StatusCurrent {
			c.doc.Snapshots[i].Status = core.StatusArchived
			demoted = append(demoted, i)
		}
	}
	c.doc.Snapshots = append(c.doc.Snapshots, entry)

	if err := c.store.Save(c.doc); err != nil {
		// Roll back so the in-memory document matches the index on disk.
		c.doc.Snapshots = c.doc.Snapshots[:len(c.doc.Snapshots)-1]
		for _, i := range demoted {
			c.doc.Snapshots[i].Status = core.StatusCurrent
		}
		os.Remove(csvPath)
		os.Remove(jsonPath)
		return nil, fmt.Errorf("failed to save index: %w", err)
	}

	c.log.Info().Str("id", id.String()).Int("items", len(items)).
		Str("csv", csvPath).Str("json", jsonPath).Msg("snapshot registered")

	saved := c.doc.FindSnapshot(id)
	return saved, nil
}

// RegisterAnalysisResult attaches a derived artifact to a snapshot. An
// unknown snapshot id is a warning, not an error: the caller proceeds
// best-effort (the tree may have been edited by hand). Re-registering the
// same (kind, date) overwrites the recorded path in place. The per-kind
// metric is last-write-wins by design; an out-of-order date regresses it.
func (c *Catalog) RegisterAnalysisResult(id core.SnapshotID, kind core.AnalysisKind, filePath string, date string) (bool, error) {
	if date == "" {
		date = c.now().Format("2006-01-02")
	}

	entry := c.doc.FindSnapshot(id)
	if entry == nil {
		c.log.Warn().Str("id", id.String()).Str("kind", string(kind)).
			Msg("cannot register analysis result: snapshot id not in index")
		return false, nil
	}

	prevLen := len(entry.AnalysisResults)
	prevPath, overwrote := "", false
	for i := range entry.AnalysisResults {
		if entry.AnalysisResults[i].Type == kind && entry.AnalysisResults[i].Date == date {
			prevPath, overwrote = entry.AnalysisResults[i].FilePath, true
			break
		}
	}
	prevMetric, hadMetric := c.doc.AnalysisMetrics[kind]

	upsertAnalysisResult(entry, core.AnalysisResult{Type: kind, Date: date, FilePath: filePath})

	if kind.Valid() {
		c.doc.AnalysisMetrics[kind] = date
	}

	if err := c.store.Save(c.doc); err != nil {
		// Roll back so the in-memory document matches the index on disk.
		if overwrote {
			upsertAnalysisResult(entry, core.AnalysisResult{Type: kind, Date: date, FilePath: prevPath})
		} else {
			entry.AnalysisResults = entry.AnalysisResults[:prevLen]
		}
		if kind.Valid() {
			if hadMetric {
				c.doc.AnalysisMetrics[kind] = prevMetric
			} else {
				delete(c.doc.AnalysisMetrics, kind)
			}
		}
		return false, fmt.Errorf("failed to save index: %w", err)
	}

	c.log.Debug().Str("id", id.String()).Str("kind", string(kind)).Str("date", date).
		Msg("analysis result registered")
	return true, nil
}

// RegisterPodcast appends an episode record. Duplicates are tolerated; there
// is no uniqueness key for podcasts.
func (c *Catalog) RegisterPodcast(kind core.PodcastKind, scriptPath, audioPath string, date string) error {
	if date == "" {
		date = c.now().Format("2006-01-02")
	}

	c.doc.Podcasts = append(c.doc.Podcasts, core.PodcastEntry{
		Type:       kind,
		Date:       date,
		ScriptPath: scriptPath,
		AudioPath:  audioPath,
	})

	if err := c.store.Save(c.doc); err != nil {
		c.doc.Podcasts = c.doc.Podcasts[:len(c.doc.Podcasts)-1]
		return fmt.Errorf("failed to save index: %w", err)
	}

	c.log.Info().Str("kind", string(kind)).Str("date", date).Str("audio", audioPath).
		Msg("podcast registered")
	return nil
}

// LatestSnapshotPath returns the absolute path of the current snapshot's
// content file in the requested format. If no entry is marked current (which
// normal operation prevents), the most recently inserted entry is used.
func (c *Catalog) LatestSnapshotPath(format core.ContentFormat) (string, error) {
	if len(c.doc.Snapshots) == 0 {
		return "", ErrNoSnapshots
	}

	for i := len(c.doc.Snapshots) - 1; i >= 0; i-- {
		if c.doc.Snapshots[i].Status == core.StatusCurrent {
			return c.layout.Abs(c.doc.Snapshots[i].FilePaths[format]), nil
		}
	}

	last := c.doc.Snapshots[len(c.doc.Snapshots)-1]
	return c.layout.Abs(last.FilePaths[format]), nil
}

// LatestAnalysis returns the absolute path of an analysis artifact. With an
// empty date the artifact with the greatest date wins (first found on ties);
// with a date only an exact match is returned.
func (c *Catalog) LatestAnalysis(kind core.AnalysisKind, date string) (string, error) {
	if date != "" {
		for i := range c.doc.Snapshots {
			for _, result := range c.doc.Snapshots[i].AnalysisResults {
				if result.Type == kind && result.Date == date {
					return c.layout.Abs(result.FilePath), nil
				}
			}
		}
		return "", fmt.Errorf("%w: kind %s date %s", ErrNoAnalysis, kind, date)
	}

	var bestDate, bestPath string
	for i := range c.doc.Snapshots {
		for _, result := range c.doc.Snapshots[i].AnalysisResults {
			if result.Type == kind && result.Date > bestDate {
				bestDate = result.Date
				bestPath = result.FilePath
			}
		}
	}
	if bestPath == "" {
		return "", fmt.Errorf("%w: kind %s", ErrNoAnalysis, kind)
	}
	return c.layout.Abs(bestPath), nil
}

// SearchByKeyword scans every snapshot's JSON content file for a
// case-insensitive substring match in item titles and summaries. Content is
// read from disk, not from the index, which holds only metadata. Snapshots
// whose content file is missing or unreadable are skipped with a logged
// error.
func (c *Catalog) SearchByKeyword(keyword string) []core.SearchResult {
	needle := strings.ToLower(keyword)
	var results []core.SearchResult

	for i := range c.doc.Snapshots {
		entry := &c.doc.Snapshots[i]
		jsonPath := c.layout.Abs(entry.FilePaths[core.FormatJSON])

		items, err := readContentJSON(jsonPath)
		if err != nil {
			c.log.Error().Err(err).Str("id", entry.ID.String()).Str("path", jsonPath).
				Msg("skipping snapshot during keyword search")
			continue
		}

		var matches []core.ContentItem
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), needle) ||
				strings.Contains(strings.ToLower(item.Summary), needle) {
				matches = append(matches, item)
			}
		}
		if len(matches) > 0 {
			results = append(results, core.SearchResult{
				SnapshotID: entry.ID,
				Date:       entry.Date,
				Matches:    matches,
			})
		}
	}

	return results
}

// Stats summarizes the catalog for the info command.
func (c *Catalog) Stats() core.CatalogStats {
	stats := core.CatalogStats{
		TotalSnapshots:  len(c.doc.Snapshots),
		TotalPodcasts:   len(c.doc.Podcasts),
		LastUpdated:     c.doc.LastUpdated,
		AnalysisMetrics: make(map[core.AnalysisKind]string, len(c.doc.AnalysisMetrics)),
	}
	for kind, date := range c.doc.AnalysisMetrics {
		stats.AnalysisMetrics[kind] = date
	}
	for i := range c.doc.Snapshots {
		switch c.doc.Snapshots[i].Status {
		case core.StatusCurrent:
			stats.CurrentSnapshots++
		case core.StatusArchived:
			stats.ArchivedSnapshots++
		}
		stats.TotalAnalysisResults += len(c.doc.Snapshots[i].AnalysisResults)
	}
	return stats
}

// upsertAnalysisResult enforces the at-most-one-per-(type, date) invariant.
func upsertAnalysisResult(entry *core.SnapshotEntry, result core.AnalysisResult) {
	for i := range entry.AnalysisResults {
		if entry.AnalysisResults[i].Type == result.Type && entry.AnalysisResults[i].Date == result.Date {
			entry.AnalysisResults[i].FilePath = result.FilePath
			return
		}
	}
	entry.AnalysisResults = append(entry.AnalysisResults, result)
}

var csvHeader = []string{"id", "title", "source", "url", "date", "summary", "type"}

func writeContentCSV(path string, items []core.ContentItem) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return err
	}
	for _, item := range items {
		record := []string{item.ID, item.Title, item.Source, item.URL, item.Date, item.Summary, item.Type}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeContentJSON(path string, items []core.ContentItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func readContentJSON(path string) ([]core.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []core.ContentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return items, nil
}
