package objectdb

import (
	"io"
	"sync"

	"github.com/aniknaemmm/GitSharp/pkg/object"
	"github.com/aniknaemmm/GitSharp/pkg/util"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Backend provides the storage-specific operations of a Database. The
// required methods form the fast path: an indexed lookup that is expected
// to answer cheaply.
//
// Backends extend their capabilities through optional interfaces:
// SlowBackend, RetryBackend, AlternateBackend, PackBackend and io.Closer.
type Backend interface {
	// Exists reports whether the backing location is initialized.
	Exists() bool

	// Create initializes the backing location. Must be a no-op if the
	// location is already created.
	Create() error

	// HasFast checks the indexed fast path for the object.
	HasFast(id object.ID) (bool, error)

	// OpenFast opens the object through the indexed fast path. Returns an
	// error wrapping object.ErrNotFound on a miss.
	OpenFast(cur *Cursor, id object.ID) (*Loader, error)
}

// SlowBackend is implemented by backends that can additionally perform an
// exhaustive lookup. The slow path is keyed by the string form of the
// object id to support storages indexed by name rather than by raw id.
type SlowBackend interface {
	// HasSlow checks the exhaustive slow path for the object.
	HasSlow(name string) (bool, error)

	// OpenSlow opens the object through the exhaustive slow path. Returns
	// an error wrapping object.ErrNotFound on a miss.
	OpenSlow(cur *Cursor, name string) (*Loader, error)
}

// RetryBackend is implemented by backends whose fast path may give a
// transient miss, e.g. because an index snapshot went stale and a rescan
// could turn up the object.
type RetryBackend interface {
	// RetryFast reports whether the fast path is worth one more pass after
	// this database and all its alternates missed.
	RetryFast() bool
}

// AlternateBackend is implemented by backends that chain further object
// databases to be searched after this one.
type AlternateBackend interface {
	// LoadAlternates computes the list of alternate databases. It is
	// invoked at most once per generation (until CloseAlternates).
	LoadAlternates() ([]*Database, error)
}

// PackBackend is implemented by backends holding packed object storage
// where several physical copies of one object may exist.
type PackBackend interface {
	// OpenInPacks returns a loader for every pack of this backend that can
	// produce the object. A backend without a copy returns an empty list.
	OpenInPacks(cur *Cursor, id object.ID) ([]*Loader, error)
}

// Database resolves object existence and contents across a backend and its
// chain of alternate databases.
//
// Database is safe for concurrent lookups. Cursors passed to its methods
// are caller-owned and must not be shared between concurrent calls.
type Database struct {
	*cfg

	be Backend

	altMtx     sync.Mutex
	alternates atomic.Pointer[[]*Database]
}

// Option represents Database constructor option.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	metrics MetricRegister

	pool util.WorkerPool
}

func defaultCfg() *cfg {
	return &cfg{
		log:  zap.L(),
		pool: util.NewPseudoWorkerPool(),
	}
}

// New creates and returns a Database over the given backend.
func New(be Backend, opts ...Option) *Database {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Database{
		cfg: c,
		be:  be,
	}
}

// WithLogger returns option to set Database's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithMetrics returns option to set Database's metrics register.
func WithMetrics(v MetricRegister) Option {
	return func(c *cfg) {
		c.metrics = v
	}
}

// WithWorkerPool returns option to set the pool used by batch operations.
func WithWorkerPool(p util.WorkerPool) Option {
	return func(c *cfg) {
		c.pool = p
	}
}

// Backend returns the backend this database resolves against.
func (db *Database) Backend() Backend {
	return db.be
}

// Exists reports whether the backing location is initialized.
func (db *Database) Exists() bool {
	return db.be.Exists()
}

// Create initializes the backing location; no-op if already created.
func (db *Database) Create() error {
	return db.be.Create()
}

// Close releases the backend's own resources, recursively closes all
// currently cached alternates and clears the alternate cache.
func (db *Database) Close() error {
	var err error

	if c, ok := db.be.(io.Closer); ok {
		err = c.Close()
	}

	db.CloseAlternates()

	return err
}
