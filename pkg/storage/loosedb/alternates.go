package loosedb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
)

// LoadAlternates implements objectdb.AlternateBackend. The chain is read
// from the info/alternates file: one store root per line, relative paths
// resolved against this store's root. Empty lines and lines starting with
// '#' are skipped. A missing file means no alternates.
func (db *DB) LoadAlternates() ([]*objectdb.Database, error) {
	raw, err := os.ReadFile(filepath.Join(db.path, infoDirName, alternatesFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("could not read alternates file: %w", err)
	}

	var alts []*objectdb.Database

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(db.path, line)
		}

		alt := New(
			WithPath(line),
			WithPermissions(db.perm),
			WithLogger(db.log),
			WithCompression(db.compressionEnabled),
		)

		if err := alt.Open(); err != nil {
			return nil, fmt.Errorf("could not open alternate store %s: %w", line, err)
		}

		if err := alt.Init(); err != nil {
			return nil, fmt.Errorf("could not init alternate store %s: %w", line, err)
		}

		alts = append(alts, objectdb.New(alt, objectdb.WithLogger(db.log)))
	}

	return alts, nil
}
