package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Source is a registered origin of exercise files.
type Source struct {
	ID         int64
	Kind       string // "local" or "git"
	Path       string
	LastSynced sql.NullTime
}

// InsertSource registers a new source and returns its id.
func (db *DB) InsertSource(kind, path string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (kind, path)
		VALUES (?, ?)
	`, kind, path)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get id for source %s: %w", path, err)
	}
	return id, nil
}

// Sources returns all registered sources.
func (db *DB) Sources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, kind, path, last_synced
		FROM sources
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var (
			s          Source
			lastSynced sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Kind, &s.Path, &lastSynced); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		if lastSynced.Valid {
			t, err := time.Parse(time.RFC3339, lastSynced.String)
			if err != nil {
				return nil, fmt.Errorf("bad last_synced for source %d: %w", s.ID, err)
			}
			s.LastSynced = sql.NullTime{Time: t, Valid: true}
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// TouchSource stamps a source's last_synced time.
func (db *DB) TouchSource(sourceID int64, at time.Time) error {
	_, err := db.conn.Exec(`
		UPDATE sources
		SET last_synced = ?
		WHERE id = ?
	`, at.UTC().Format(time.RFC3339), sourceID)
	if err != nil {
		return fmt.Errorf("failed to touch source %d: %w", sourceID, err)
	}
	return nil
}
