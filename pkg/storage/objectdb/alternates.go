package objectdb

import "go.uber.org/zap"

// Alternates returns the cached list of alternate databases, computing it
// on first access. Concurrent first accesses converge on a single
// LoadAlternates call; callers never observe a partially constructed list.
//
// A load failure is downgraded to "no alternates" so that one broken
// alternate cannot prevent lookups against this database.
func (db *Database) Alternates() []*Database {
	if alts := db.alternates.Load(); alts != nil {
		return *alts
	}

	db.altMtx.Lock()
	defer db.altMtx.Unlock()

	if alts := db.alternates.Load(); alts != nil {
		return *alts
	}

	var alts []*Database

	if ab, ok := db.be.(AlternateBackend); ok {
		var err error

		alts, err = ab.LoadAlternates()
		if err != nil {
			db.log.Warn("could not load alternate object databases",
				zap.Error(err))

			alts = nil
		}
	}

	if alts == nil {
		alts = []*Database{}
	}

	db.alternates.Store(&alts)

	return alts
}

// CloseAlternates invalidates the alternate cache and closes each
// previously cached alternate exactly once. The next Alternates call
// triggers a fresh load.
func (db *Database) CloseAlternates() {
	db.altMtx.Lock()
	alts := db.alternates.Swap(nil)
	db.altMtx.Unlock()

	if alts == nil {
		return
	}

	for _, alt := range *alts {
		if err := alt.Close(); err != nil {
			db.log.Warn("could not close alternate object database",
				zap.Error(err))
		}
	}
}
