package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/drill/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

const dateLayout = "2006-01-02"

// ErrNoID is returned when an operation needs a saved exercise but the
// given one has never been inserted.
var ErrNoID = errors.New("exercise has no id")

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up
// to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Drop removes the exercises and sources tables.
func (db *DB) Drop() error {
	if _, err := db.conn.Exec(`DROP TABLE IF EXISTS exercises; DROP TABLE IF EXISTS sources;`); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// SchemaIsLoaded reports whether the exercises table exists.
func (db *DB) SchemaIsLoaded() (bool, error) {
	var name string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'exercises'
	`).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check schema: %w", err)
	}
	return true, nil
}

const exerciseColumns = `id, created_at, due_at, description, source, reference_answer,
	update_interval, consecutive_successful_reviews`

func scanExercise(row interface{ Scan(...any) error }) (domain.Exercise, error) {
	var (
		ex        domain.Exercise
		id        int64
		createdAt string
		dueAt     string
	)
	err := row.Scan(
		&id,
		&createdAt,
		&dueAt,
		&ex.Description,
		&ex.Source,
		&ex.ReferenceAnswer,
		&ex.UpdateInterval,
		&ex.ConsecutiveSuccessfulReviews,
	)
	if err != nil {
		return domain.Exercise{}, err
	}

	ex.ID = &id
	if ex.CreatedAt, err = time.Parse(dateLayout, createdAt); err != nil {
		return domain.Exercise{}, fmt.Errorf("bad created_at for exercise %d: %w", id, err)
	}
	if ex.DueAt, err = time.Parse(dateLayout, dueAt); err != nil {
		return domain.Exercise{}, fmt.Errorf("bad due_at for exercise %d: %w", id, err)
	}
	return ex, nil
}

func collectExercises(rows *sql.Rows) ([]domain.Exercise, error) {
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise row: %w", err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// InsertAll saves a batch of new exercises inside a single transaction.
// If any insert fails (e.g. a duplicate description), nothing is saved.
func (db *DB) InsertAll(exercises []domain.Exercise) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range exercises {
		ex := &exercises[i]
		if ex.ID != nil {
			return fmt.Errorf("exercise %q already has id %d", ex.Description, *ex.ID)
		}
		_, err := tx.Exec(`
			INSERT INTO exercises (created_at, due_at, description, source, reference_answer)
			VALUES (?, ?, ?, ?, ?)
		`,
			ex.CreatedAt.Format(dateLayout),
			ex.DueAt.Format(dateLayout),
			ex.Description,
			ex.Source,
			ex.ReferenceAnswer,
		)
		if err != nil {
			return fmt.Errorf("failed to insert exercise %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit exercises: %w", err)
	}
	return nil
}

// Update persists all fields of a saved exercise.
func (db *DB) Update(ex *domain.Exercise) error {
	if ex.ID == nil {
		return ErrNoID
	}

	_, err := db.conn.Exec(`
		UPDATE exercises
		SET created_at = ?, due_at = ?, description = ?, source = ?,
		    reference_answer = ?, update_interval = ?, consecutive_successful_reviews = ?
		WHERE id = ?
	`,
		ex.CreatedAt.Format(dateLayout),
		ex.DueAt.Format(dateLayout),
		ex.Description,
		ex.Source,
		ex.ReferenceAnswer,
		ex.UpdateInterval,
		ex.ConsecutiveSuccessfulReviews,
		*ex.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exercise %d: %w", *ex.ID, err)
	}
	return nil
}

// Due returns the exercises due on or before today, most overdue first
// (descending due date, then descending id).
func (db *DB) Due(today time.Time) ([]domain.Exercise, error) {
	rows, err := db.conn.Query(`
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE due_at <= ?
		ORDER BY due_at DESC, id DESC
	`, domain.DateOf(today).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query due exercises: %w", err)
	}
	return collectExercises(rows)
}

// All returns every stored exercise in due-date order, newest due first.
func (db *DB) All() ([]domain.Exercise, error) {
	rows, err := db.conn.Query(`
		SELECT ` + exerciseColumns + `
		FROM exercises
		ORDER BY due_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	return collectExercises(rows)
}

// ByID retrieves one exercise. Returns nil if no such row exists.
func (db *DB) ByID(id int64) (*domain.Exercise, error) {
	row := db.conn.QueryRow(`
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE id = ?
	`, id)

	ex, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find exercise %d: %w", id, err)
	}
	return &ex, nil
}

// Grep returns exercises whose content or id matches the query string,
// in the same ordering as Due.
func (db *DB) Grep(query string) ([]domain.Exercise, error) {
	rows, err := db.conn.Query(`
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE description LIKE ('%' || ? || '%')
		   OR source LIKE ('%' || ? || '%')
		   OR reference_answer LIKE ('%' || ? || '%')
		   OR CAST(id AS TEXT) LIKE ('%' || ? || '%')
		ORDER BY due_at DESC, id DESC
	`, query, query, query, query)
	if err != nil {
		return nil, fmt.Errorf("failed to grep exercises: %w", err)
	}
	return collectExercises(rows)
}

// Count returns the number of stored exercises.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count exercises: %w", err)
	}
	return n, nil
}

// HasDescription reports whether an exercise with this exact
// description is already stored. The sync path uses it to skip
// exercises that were imported before.
func (db *DB) HasDescription(description string) (bool, error) {
	var id int64
	err := db.conn.QueryRow(`
		SELECT id FROM exercises WHERE description = ?
	`, description).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check description: %w", err)
	}
	return true, nil
}
