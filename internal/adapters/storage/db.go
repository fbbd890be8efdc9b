package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database. Data lives as long as the process.
const MemoryDSN = ":memory:"

// Open opens a SQLite database at path with WAL, busy timeout and foreign keys.
// An empty path or MemoryDSN yields an in-memory database pinned to one connection.
// PRE: none
// POST: Returns a pinged connection with the schema created
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	inMemory := path == "" || path == MemoryDSN
	if inMemory {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if inMemory {
		// every new connection to :memory: is a fresh, empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created
func InitDB(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS registration (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		department TEXT NOT NULL,
		motivation TEXT NOT NULL DEFAULT '',
		positions TEXT NOT NULL,
		submitted_at TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
