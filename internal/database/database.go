package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and ensures the schema exists.
// For local databases dbPath is the filename (or ":memory:"); when primaryUrl
// is set the remote libsql database is used instead.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, error) {
	if primaryUrl == "" {
		log.Info("Initializing local SQLite database", "path", dbPath)
		db, err := sql.Open("libsql", "file:"+dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if err = createTables(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
		return db, nil
	}
	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err = createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

// createTables is the whole migration story: every statement is idempotent and
// runs on each startup. Foreign keys are declared but deliberately not enforced
// (no PRAGMA): attendance marks against an unknown event must not fail.
func createTables(db *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY,
		name TEXT,
		is_coach INTEGER NOT NULL DEFAULT 0
	);`

	createEventsTable := `
	CREATE TABLE IF NOT EXISTS events (
		event_id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		group_msg_id INTEGER
	);`

	createParticipantsTable := `
	CREATE TABLE IF NOT EXISTS participants (
		event_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		PRIMARY KEY (event_id, user_id),
		FOREIGN KEY (event_id) REFERENCES events(event_id),
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	);`

	createTeamsTable := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		event_id INTEGER NOT NULL,
		color TEXT NOT NULL,
		players TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES events(event_id)
	);`

	for _, stmt := range []string{createUsersTable, createEventsTable, createParticipantsTable, createTeamsTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Info("Database initialized successfully")
	return nil
}
