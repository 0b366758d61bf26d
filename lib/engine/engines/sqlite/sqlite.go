package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pdictdb/pdict/lib/engine"
	"github.com/pdictdb/pdict/lib/errs"
	_ "modernc.org/sqlite"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// InMemory is the special path for a private in-memory database. Useful
	// for tests and scratch dictionaries, the data is gone after Close.
	InMemory = ":memory:"

	// defaultBusyTimeout is how long a writer waits for the file lock
	// before giving up with a busy error.
	defaultBusyTimeout = 10 * time.Second

	driverName = "sqlite"
	tableName  = "entries"
)

// --------------------------------------------------------------------------
// Core sqlite engine structure
// --------------------------------------------------------------------------

// sqliteEngineImpl implements a persistent engine on a single database file.
// All blobs live in one table keyed by the entry key:
//
//	CREATE TABLE entries (key TEXT PRIMARY KEY, blob BLOB NOT NULL)
//
// Concurrency is delegated to sqlite: the file is opened in WAL mode so
// readers never block behind writers, single statements are atomic, and
// writer contention is absorbed by the busy timeout.
type sqliteEngineImpl struct {
	db     *sql.DB
	path   string
	closed atomic.Bool
}

// Options configures the sqlite engine during initialization
type Options struct {
	Path        string        // Database file path, or InMemory for a private in-memory database
	BusyTimeout time.Duration // How long writers wait on the file lock (0 = 10s default)
}

// DefaultOptions returns the default sqlite engine options for a path
func DefaultOptions(path string) *Options {
	return &Options{
		Path:        path,
		BusyTimeout: defaultBusyTimeout,
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewSQLiteEngine opens (creating if necessary) the database file and
// prepares the schema.
//
// Thread-safety: This function is not thread-safe and should only be called
// once per file during initialization. The returned engine is safe for
// concurrent use.
func NewSQLiteEngine(opts *Options) (engine.IEngine, error) {
	if opts == nil || opts.Path == "" {
		return nil, errs.Wrap(errs.KindStorage, "engine.Open", "", fmt.Errorf("no database path configured"))
	}
	busyTimeout := opts.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}

	db, err := sql.Open(driverName, dsn(opts.Path, busyTimeout))
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, "engine.Open", "", err)
	}

	// A private in-memory database exists per connection, so the pool must
	// be pinned to a single connection or every query would see a
	// different empty database.
	if opts.Path == InMemory {
		db.SetMaxOpenConns(1)
	}

	e := &sqliteEngineImpl{db: db, path: opts.Path}
	if err := e.setup(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}

// dsn builds the driver connection string. The pragmas ride along as query
// parameters because the driver replays those on every new pool connection,
// an Exec'd PRAGMA would only reach the one connection it happened to run on.
// WAL keeps readers off the writer lock, the busy timeout absorbs writer
// contention between connections.
func dsn(path string, busyTimeout time.Duration) string {
	if path == InMemory {
		// Private in-memory database, single connection, no file locking.
		return InMemory
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		path, busyTimeout.Milliseconds())
}

// setup creates the schema
func (e *sqliteEngineImpl) setup() error {
	createTable := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		key  TEXT PRIMARY KEY,
		blob BLOB NOT NULL
	)`, tableName)
	if _, err := e.db.Exec(createTable); err != nil {
		return errs.Wrap(errs.KindStorage, "engine.Open", "", err)
	}
	return nil
}

// guard returns a closed error for op if the engine was closed
func (e *sqliteEngineImpl) guard(op, key string) error {
	if e.closed.Load() {
		return errs.New(errs.KindClosed, op, key)
	}
	return nil
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Put inserts or overwrites the blob stored under key. The upsert is a
// single statement and therefore atomic with respect to concurrent calls.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (e *sqliteEngineImpl) Put(key string, blob []byte) error {
	if err := e.guard("engine.Put", key); err != nil {
		return err
	}

	// A nil slice would be bound as SQL NULL and trip the NOT NULL
	// constraint, store the empty blob instead.
	if blob == nil {
		blob = []byte{}
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (key, blob) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET blob = excluded.blob`, tableName)

	if _, err := e.db.Exec(query, key, blob); err != nil {
		return errs.Wrap(errs.KindStorage, "engine.Put", key, err)
	}
	return nil
}

// Delete removes the blob stored under key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (e *sqliteEngineImpl) Delete(key string) (bool, error) {
	if err := e.guard("engine.Delete", key); err != nil {
		return false, err
	}

	res, err := e.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE key = ?", tableName), key)
	if err != nil {
		return false, errs.Wrap(errs.KindStorage, "engine.Delete", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errs.Wrap(errs.KindStorage, "engine.Delete", key, err)
	}
	return affected > 0, nil
}

// Clear removes all entries.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (e *sqliteEngineImpl) Clear() (int64, error) {
	if err := e.guard("engine.Clear", ""); err != nil {
		return 0, err
	}

	res, err := e.db.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	if err != nil {
		return 0, errs.Wrap(errs.KindStorage, "engine.Clear", "", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errs.Wrap(errs.KindStorage, "engine.Clear", "", err)
	}
	return affected, nil
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Query Operations
// --------------------------------------------------------------------------

// Get retrieves the blob for an exact key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (e *sqliteEngineImpl) Get(key string) ([]byte, bool, error) {
	if err := e.guard("engine.Get", key); err != nil {
		return nil, false, err
	}

	var blob []byte
	err := e.db.QueryRow(fmt.Sprintf("SELECT blob FROM %s WHERE key = ?", tableName), key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.KindStorage, "engine.Get", key, err)
	}
	return blob, true, nil
}

// Has checks whether a key exists without loading its blob.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (e *sqliteEngineImpl) Has(key string) (bool, error) {
	if err := e.guard("engine.Has", key); err != nil {
		return false, err
	}

	var one int
	err := e.db.QueryRow(fmt.Sprintf("SELECT 1 FROM %s WHERE key = ?", tableName), key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrap(errs.KindStorage, "engine.Has", key, err)
	}
	return true, nil
}

// Keys returns a snapshot of all keys.
//
// Thread-safety: This method is thread-safe. The snapshot reflects the
// moment the query ran, concurrent writes may or may not be included.
func (e *sqliteEngineImpl) Keys() ([]string, error) {
	if err := e.guard("engine.Keys", ""); err != nil {
		return nil, err
	}

	rows, err := e.db.Query(fmt.Sprintf("SELECT key FROM %s", tableName))
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, "engine.Keys", "", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errs.Wrap(errs.KindStorage, "engine.Keys", "", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindStorage, "engine.Keys", "", err)
	}
	return keys, nil
}

// Len returns the number of stored entries.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (e *sqliteEngineImpl) Len() (int64, error) {
	if err := e.guard("engine.Len", ""); err != nil {
		return 0, err
	}

	var n int64
	if err := e.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)).Scan(&n); err != nil {
		return 0, errs.Wrap(errs.KindStorage, "engine.Len", "", err)
	}
	return n, nil
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Maintenance Operations
// --------------------------------------------------------------------------

// Compact runs VACUUM to rebuild the file without dead pages. Useful after
// deleting many entries, sqlite does not return space to the filesystem on
// its own.
//
// Thread-safety: This method is thread-safe but blocks concurrent writers
// for the duration of the rebuild.
func (e *sqliteEngineImpl) Compact() error {
	if err := e.guard("engine.Compact", ""); err != nil {
		return err
	}

	if _, err := e.db.Exec("VACUUM"); err != nil {
		return errs.Wrap(errs.KindStorage, "engine.Compact", "", err)
	}
	return nil
}

// SupportsFeature checks if this implementation supports a specific engine feature
func (e *sqliteEngineImpl) SupportsFeature(feature engine.Feature) bool {
	supported := engine.FeaturePersistent | engine.FeatureCompaction
	if e.path == InMemory {
		supported = engine.FeatureCompaction
	}
	return supported&feature == feature
}

// GetInfo returns information about the engine, including the current file
// size computed from the sqlite page counters.
func (e *sqliteEngineImpl) GetInfo() (engine.Info, error) {
	if err := e.guard("engine.GetInfo", ""); err != nil {
		return engine.Info{}, err
	}

	var pageCount, pageSize int64
	if err := e.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return engine.Info{}, errs.Wrap(errs.KindStorage, "engine.GetInfo", "", err)
	}
	if err := e.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return engine.Info{}, errs.Wrap(errs.KindStorage, "engine.GetInfo", "", err)
	}

	keys, err := e.Len()
	if err != nil {
		return engine.Info{}, err
	}

	var journalMode string
	if err := e.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		return engine.Info{}, errs.Wrap(errs.KindStorage, "engine.GetInfo", "", err)
	}

	features := []engine.Feature{engine.FeatureCompaction}
	if e.path != InMemory {
		features = append([]engine.Feature{engine.FeaturePersistent}, features...)
	}

	meta := &struct {
		JournalMode string `json:"journal_mode"`
	}{
		JournalMode: journalMode,
	}

	return engine.Info{
		Type:              engine.ImplSQLite,
		Path:              e.path,
		SizeBytes:         pageCount * pageSize,
		Keys:              keys,
		SupportedFeatures: features,
		Metadata:          meta,
	}, nil
}

// Close closes the database file. All subsequent calls return closed
// errors. Close is idempotent.
func (e *sqliteEngineImpl) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := e.db.Close(); err != nil {
		return errs.Wrap(errs.KindStorage, "engine.Close", "", err)
	}
	return nil
}
