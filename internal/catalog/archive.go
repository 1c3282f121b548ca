package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"quantumwatch/internal/core"
)

// Archive moves the content files of archived-status snapshots older than the
// threshold from the working area into cold storage and rewrites their
// recorded paths. Files already sitting in the archive directory are left
// alone, so repeated runs are idempotent. A missing source file is logged and
// skipped without failing the sweep. Returns the number of files moved.
func (c *Catalog) Archive(olderThanDays int) (int, error) {
	threshold := c.now().AddDate(0, 0, -olderThanDays).Format("2006-01-02")

	moved := 0
	for i := range c.doc.Snapshots {
		entry := &c.doc.Snapshots[i]
		if entry.Status != core.StatusArchived || entry.Date >= threshold {
			continue
		}

		for format, rel := range entry.FilePaths {
			name := filepath.Base(rel)
			dest := filepath.Join(c.layout.ArchivesDir, name)

			source := c.layout.Abs(rel)
			if source == dest {
				continue // already in cold storage
			}

			if _, err := os.Stat(source); err != nil {
				c.log.Warn().Str("id", entry.ID.String()).Str("path", source).
					Msg("archive: source file missing, skipping")
				continue
			}

			if _, err := os.Stat(dest); err == nil {
				c.log.Debug().Str("id", entry.ID.String()).Str("path", dest).
					Msg("archive: replacing existing file in cold storage")
			}

			if err := os.Rename(source, dest); err != nil {
				c.log.Error().Err(err).Str("id", entry.ID.String()).Str("path", source).
					Msg("archive: failed to move file, skipping")
				continue
			}

			entry.FilePaths[format] = filepath.Join("data", "archives", name)
			moved++
			c.log.Debug().Str("id", entry.ID.String()).Str("from", source).Str("to", dest).
				Msg("archive: file moved")
		}
	}

	if moved > 0 {
		if err := c.store.Save(c.doc); err != nil {
			return moved, fmt.Errorf("failed to save index after archiving: %w", err)
		}
		c.log.Info().Int("moved", moved).Int("older_than_days", olderThanDays).
			Msg("archive sweep complete")
	}

	return moved, nil
}
