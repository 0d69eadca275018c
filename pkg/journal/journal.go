// Package journal records the status mutations this client has issued.
//
// Moving a card on the board is optimistic: the local placement is kept even
// when the PATCH fails. The journal is an append-only local log of what was
// attempted and how it ended. It is never read back into the issue
// collection.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// Journal persists status-change attempts in a local SQLite database.
type Journal struct {
	db *sql.DB
}

// Entry is one recorded status-change attempt.
type Entry struct {
	ID         int64
	IssueID    string
	FromStatus model.Status
	ToStatus   model.Status
	Result     string // "ok" or "failed"
	OccurredAt time.Time
}

// DefaultPath returns ~/.local/share/fieldboard/journal.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "fieldboard", "journal.db")
}

// Open opens or creates the journal database at the given path.
func Open(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS status_changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		issue_id TEXT NOT NULL,
		from_status TEXT NOT NULL,
		to_status TEXT NOT NULL,
		result TEXT NOT NULL,
		occurred_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_status_changes_issue ON status_changes(issue_id);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record appends one status-change attempt.
func (j *Journal) Record(issueID string, from, to model.Status, ok bool) error {
	result := "ok"
	if !ok {
		result = "failed"
	}
	_, err := j.db.Exec(
		`INSERT INTO status_changes (issue_id, from_status, to_status, result, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		issueID, string(from), string(to), result, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record status change: %w", err)
	}
	return nil
}

// Entries returns the most recent attempts, newest first. limit <= 0 means
// no limit.
func (j *Journal) Entries(limit int) ([]Entry, error) {
	q := `SELECT id, issue_id, from_status, to_status, result, occurred_at
	      FROM status_changes ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = j.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = j.db.Query(q)
	}
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var from, to string
		if err := rows.Scan(&e.ID, &e.IssueID, &from, &to, &e.Result, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.FromStatus = model.Status(from)
		e.ToStatus = model.Status(to)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
