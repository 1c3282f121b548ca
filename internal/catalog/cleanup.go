package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quantumwatch/internal/core"
)

// CleanupResult counts the files removed by one cleanup pass.
type CleanupResult struct {
	TempRemoved      int
	ArtifactsRemoved int
}

// Cleanup removes temporary files anywhere under the base path and prunes
// analysis artifacts down to the newest keepPerKind files per kind, ordered
// by the date token in their names. The index is rebuilt afterward so stale
// entries for removed artifacts are dropped. Per-file removal failures are
// logged and absorbed.
func (c *Catalog) Cleanup(keepPerKind int) (CleanupResult, error) {
	var result CleanupResult

	err := filepath.WalkDir(c.layout.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := d.Name()
		if strings.HasSuffix(name, ".tmp") || strings.HasSuffix(name, ".temp") || strings.HasPrefix(name, "temp_") {
			if removeErr := os.Remove(path); removeErr != nil {
				c.log.Error().Err(removeErr).Str("path", path).Msg("cleanup: failed to remove temp file")
				return nil
			}
			result.TempRemoved++
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("cleanup: temp file sweep failed: %w", err)
	}

	for _, kind := range core.AnalysisKinds {
		result.ArtifactsRemoved += c.pruneArtifacts(kind, keepPerKind)
	}

	if _, err := c.Rebuild(); err != nil {
		return result, fmt.Errorf("cleanup: %w", err)
	}

	c.log.Info().Int("temp", result.TempRemoved).Int("artifacts", result.ArtifactsRemoved).
		Msg("cleanup complete")
	return result, nil
}

// pruneArtifacts deletes all but the newest keep artifacts of one kind.
// Newest is decided by the filename date token, which sorts lexicographically.
func (c *Catalog) pruneArtifacts(kind core.AnalysisKind, keep int) int {
	dir := c.layout.AnalysisDirFor(kind)
	names, err := readDirNames(dir)
	if err != nil {
		c.log.Warn().Err(err).Str("dir", dir).Msg("cleanup: cannot read analysis directory")
		return 0
	}

	var artifacts []string
	for _, name := range names {
		if k, ok := analysisKind(name); ok && k == kind {
			if _, ok := trailingDateToken(name); ok {
				artifacts = append(artifacts, name)
			}
		}
	}
	if len(artifacts) <= keep {
		return 0
	}

	sort.Sort(sort.Reverse(sort.StringSlice(artifacts)))

	removed := 0
	for _, name := range artifacts[keep:] {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("cleanup: failed to remove artifact")
			continue
		}
		removed++
		c.log.Debug().Str("path", path).Msg("cleanup: stale artifact removed")
	}
	return removed
}
