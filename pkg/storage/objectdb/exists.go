package objectdb

import (
	"sync"

	"github.com/aniknaemmm/GitSharp/pkg/object"
)

// HasObject checks if the object is present in this database or in any of
// its alternates.
//
// The fast path of this database and of every alternate (depth-first, in
// registration order) is searched first; when the backend opts in via
// RetryBackend, the fast path of this database gets one more pass. Only
// then is the same traversal repeated over the slow paths. The slow path
// is never retried.
//
// Absence is reported as (false, nil). An error is returned only when the
// presence of the object could not be determined.
func (db *Database) HasObject(id object.ID) (bool, error) {
	if db.metrics != nil {
		defer elapsed(db.metrics.AddHasDuration)()
	}

	ok, err := db.hasObjectFast(id)
	if ok || err != nil {
		return ok, err
	}

	return db.hasObjectSlow(id.String())
}

func (db *Database) hasObjectFast(id object.ID) (bool, error) {
	ok, err := db.be.HasFast(id)
	if ok || err != nil {
		return ok, err
	}

	for _, alt := range db.Alternates() {
		ok, err = alt.hasObjectFast(id)
		if ok || err != nil {
			return ok, err
		}
	}

	if r, canRetry := db.be.(RetryBackend); canRetry && r.RetryFast() {
		return db.be.HasFast(id)
	}

	return false, nil
}

func (db *Database) hasObjectSlow(name string) (bool, error) {
	if sb, ok := db.be.(SlowBackend); ok {
		found, err := sb.HasSlow(name)
		if found || err != nil {
			return found, err
		}
	}

	for _, alt := range db.Alternates() {
		found, err := alt.hasObjectSlow(name)
		if found || err != nil {
			return found, err
		}
	}

	return false, nil
}

// HasObjects checks the presence of multiple objects, resolving them
// concurrently on the database's worker pool. The result slice is indexed
// the same way as ids.
func (db *Database) HasObjects(ids []object.ID) ([]bool, error) {
	res := make([]bool, len(ids))

	var (
		wg sync.WaitGroup

		errMtx   sync.Mutex
		firstErr error
	)

	for i := range ids {
		i := i

		wg.Add(1)

		if err := db.pool.Submit(func() {
			defer wg.Done()

			ok, err := db.HasObject(ids[i])
			if err != nil {
				errMtx.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMtx.Unlock()

				return
			}

			res[i] = ok
		}); err != nil {
			wg.Done()
			wg.Wait()

			return nil, err
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return res, nil
}
