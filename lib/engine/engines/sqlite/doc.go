// Package sqlite implements the persistent storage engine of the dictionary
// on top of a single sqlite database file. It provides a complete
// implementation of the engine.IEngine interface with a focus on durability,
// concurrent access and zero operational overhead: there is no server
// process, the file is the database.
//
// The package focuses on:
//   - Durable single-file storage using the pure-Go sqlite driver
//     (modernc.org/sqlite), so builds stay free of cgo
//   - Safe concurrent access through WAL mode, single-statement atomicity
//     and a configurable busy timeout
//   - Space reclamation through Compact (VACUUM)
//
// Schema:
//
//	All entries live in one table:
//
//	    CREATE TABLE IF NOT EXISTS entries (
//	        key  TEXT PRIMARY KEY,
//	        blob BLOB NOT NULL
//	    )
//
//	The blob column holds the packed entry produced by the codec pipeline,
//	the engine never inspects it. Put is an upsert (INSERT .. ON CONFLICT
//	DO UPDATE), which makes every write a single atomic statement.
//
// Concurrency Model:
//
//	The engine leans on sqlite rather than reimplementing locking:
//
//	- WAL journal mode lets readers proceed while a writer commits.
//	- Every mutation is a single statement and therefore atomic.
//	- The busy timeout makes concurrent writers wait for the file lock
//	  instead of failing immediately with a busy error.
//
//	The *sql.DB connection pool is shared and safe for concurrent use. For
//	in-memory databases the pool is pinned to one connection because each
//	connection would otherwise see its own private empty database.
//
// Durability Considerations:
//
//	Committed transactions survive process crashes. The WAL file is
//	checkpointed by sqlite automatically, Close runs a final checkpoint.
//	Deleting entries does not shrink the file, run Compact to rebuild it
//	without dead pages.
package sqlite
