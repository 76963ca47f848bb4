// Package loosedb implements a filesystem-backed object database: objects
// are stored one-per-file in a two-level fanout directory tree, compressed
// and framed with their type and size. A bbolt index over the stored ids
// serves as the fast lookup path; probing the file derived from an object's
// name is the slow one. Stores chain further stores through an
// info/alternates file.
package loosedb

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aniknaemmm/GitSharp/pkg/storage/compression"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	indexFileName      = "index.db"
	infoDirName        = "info"
	alternatesFileName = "alternates"

	// fanoutLen is how many hex characters of an object name form the
	// first-level directory.
	fanoutLen = 2
)

// DB represents a loose object store rooted at a single directory.
type DB struct {
	*cfg

	boltDB *bbolt.DB

	compress compression.Config
}

// Option represents DB constructor option.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	path string

	perm fs.FileMode

	compressionEnabled bool
}

func defaultCfg() *cfg {
	return &cfg{
		log:                zap.L(),
		perm:               0o640,
		compressionEnabled: true,
	}
}

// New creates a DB instance over the given options. The returned DB must
// be opened (and initialized, if fresh) before use.
func New(opts ...Option) *DB {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &DB{
		cfg: c,
	}
}

// WithPath returns option to set the root directory of the store.
//
// Option is required.
func WithPath(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// WithPermissions returns option to set permission bits of created files.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = perm
	}
}

// WithLogger returns option to set DB's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithCompression returns option to toggle compression of newly written
// objects. Reading remains format-agnostic either way.
func WithCompression(enabled bool) Option {
	return func(c *cfg) {
		c.compressionEnabled = enabled
	}
}

// Exists reports whether the store's root directory is initialized.
func (db *DB) Exists() bool {
	fi, err := os.Stat(db.path)

	return err == nil && fi.IsDir()
}

// Open opens the store, creating its directory skeleton and index file
// when missing.
func (db *DB) Open() error {
	if err := os.MkdirAll(filepath.Join(db.path, infoDirName), db.perm|0o110); err != nil {
		return fmt.Errorf("could not create store directories: %w", err)
	}

	db.compress.Enabled = db.compressionEnabled
	if err := db.compress.Init(); err != nil {
		return fmt.Errorf("could not init compression: %w", err)
	}

	boltDB, err := bbolt.Open(filepath.Join(db.path, indexFileName), db.perm, nil)
	if err != nil {
		return fmt.Errorf("could not open object index: %w", err)
	}

	db.boltDB = boltDB

	return nil
}

// Init creates the index buckets. Idempotent.
func (db *DB) Init() error {
	return db.boltDB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(objectsBucket)

		return err
	})
}

// Create initializes the backing location, opening it on the way; no-op if
// already created and open.
func (db *DB) Create() error {
	if db.boltDB == nil {
		if err := db.Open(); err != nil {
			return err
		}
	}

	return db.Init()
}

// Close releases the store's own resources.
func (db *DB) Close() error {
	if db.boltDB == nil {
		return nil
	}

	return db.boltDB.Close()
}

// Path returns the root directory of the store.
func (db *DB) Path() string {
	return db.path
}

// objectPath builds the fanout file path of an object from its hex name.
func (db *DB) objectPath(name string) string {
	return filepath.Join(db.path, name[:fanoutLen], name[fanoutLen:])
}
