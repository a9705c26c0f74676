package storage

const schema = `
-- The 'exercises' table stores each question/answer record together
-- with its scheduling state. Dates are TEXT in YYYY-MM-DD form.
CREATE TABLE IF NOT EXISTS exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    description TEXT UNIQUE NOT NULL,
    source TEXT NOT NULL,
    reference_answer TEXT NOT NULL,
    due_at TEXT NOT NULL,
    update_interval INTEGER NOT NULL DEFAULT 0,
    consecutive_successful_reviews INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS exercises_due_at ON exercises(due_at);

-- The 'sources' table tracks where exercise files come from, either a
-- local directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    path TEXT NOT NULL UNIQUE,
    last_synced TEXT
);
`
