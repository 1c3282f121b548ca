// Package index persists the catalog document as a single human-readable
// JSON file under the data directory. Loading never fails hard: a missing or
// unparseable index yields a fresh empty document so the catalog can always
// start, and a corrupt file is left on disk for manual recovery.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"quantumwatch/internal/core"
	"quantumwatch/internal/layout"
)

// ErrCorrupt reports that the on-disk index failed to parse. Load absorbs it
// internally; it exists so tests and diagnostics can recognize the condition.
var ErrCorrupt = errors.New("index file is corrupt")

// Store reads and writes the catalog document at its fixed path.
type Store struct {
	layout *layout.Layout
	log    zerolog.Logger
	now    func() time.Time
}

// NewStore creates a store bound to the layout's index file location.
func NewStore(l *layout.Layout, log zerolog.Logger) *Store {
	return &Store{
		layout: l,
		log:    log.With().Str("component", "index").Logger(),
		now:    time.Now,
	}
}

// Path returns the absolute path of the index document.
func (s *Store) Path() string {
	return s.layout.IndexFile()
}

// Load reads the index document. A missing file starts a new empty index; a
// file that fails to parse is logged and left untouched on disk, and an empty
// document is returned in its place.
func (s *Store) Load() *core.CatalogDocument {
	path := s.Path()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info().Str("path", path).Msg("index file not found, starting a new index")
		} else {
			s.log.Warn().Err(err).Str("path", path).Msg("index file unreadable, starting a new index")
		}
		return core.NewCatalogDocument()
	}

	doc := core.NewCatalogDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.log.Warn().Err(fmt.Errorf("%w: %w", ErrCorrupt, err)).Str("path", path).
			Msg("index file corrupt, starting a new index (corrupt file kept on disk)")
		return core.NewCatalogDocument()
	}

	normalize(doc)
	return doc
}

// Save stamps LastUpdated and rewrites the whole document. The write goes to
// a temp file in the same directory followed by a rename, so an interrupted
// save never leaves a half-written index behind.
func (s *Store) Save(doc *core.CatalogDocument) error {
	doc.LastUpdated = s.now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}
	data = append(data, '\n')

	path := s.Path()
	tmp, err := os.CreateTemp(s.layout.DataDir, layout.IndexFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp index file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index file: %w", err)
	}

	s.log.Debug().Str("path", path).Int("snapshots", len(doc.Snapshots)).Msg("index saved")
	return nil
}

// normalize repairs nil collections in documents written by older versions or
// edited by hand, so callers can append without nil checks.
func normalize(doc *core.CatalogDocument) {
	if doc.Snapshots == nil {
		doc.Snapshots = []core.SnapshotEntry{}
	}
	if doc.AnalysisMetrics == nil {
		doc.AnalysisMetrics = map[core.AnalysisKind]string{}
	}
	if doc.Podcasts == nil {
		doc.Podcasts = []core.PodcastEntry{}
	}
	for i := range doc.Snapshots {
		if doc.Snapshots[i].AnalysisResults == nil {
			doc.Snapshots[i].AnalysisResults = []core.AnalysisResult{}
		}
		if doc.Snapshots[i].FilePaths == nil {
			doc.Snapshots[i].FilePaths = map[core.ContentFormat]string{}
		}
	}
}
