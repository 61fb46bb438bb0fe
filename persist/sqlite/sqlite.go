// Package sqlite persists grouping and permission polices in SQLite tables.
// Changes are only watched within the process writing them.
package sqlite

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open opens a SQLite database, dsn is a file name or ":memory:"
func Open(dsn string) (*sql.DB, error) {
	db, e := sql.Open("sqlite3", dsn)
	if e != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, e)
	}
	// one writer at a time, and ":memory:" databases live in a single connection
	db.SetMaxOpenConns(1)

	if e := db.Ping(); e != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", dsn, e)
	}
	return db, nil
}

func checkTable(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, e := res.RowsAffected()
	if e != nil {
		return false, e
	}
	return n > 0, nil
}
