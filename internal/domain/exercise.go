package domain

import "time"

// Exercise is a single question/answer record together with its
// scheduling state. ID is nil until the exercise has been saved.
type Exercise struct {
	ID                           *int64
	CreatedAt                    time.Time
	DueAt                        time.Time
	Description                  string
	Source                       string
	ReferenceAnswer              string
	UpdateInterval               int
	ConsecutiveSuccessfulReviews int
}

// ExerciseUpdate carries edited content for an already-saved exercise,
// as read back from an exported file. Scheduling state is not editable
// this way.
type ExerciseUpdate struct {
	ID              int64  `yaml:"id" validate:"required"`
	Description     string `yaml:"description" validate:"notblank"`
	Source          string `yaml:"source" validate:"notblank"`
	ReferenceAnswer string `yaml:"reference_answer" validate:"notblank"`
}

// NewExercise creates an unsaved exercise due immediately.
func NewExercise(description, source, referenceAnswer string, today time.Time) Exercise {
	today = DateOf(today)
	return Exercise{
		CreatedAt:       today,
		DueAt:           today,
		Description:     description,
		Source:          source,
		ReferenceAnswer: referenceAnswer,
	}
}

// DateOf truncates a timestamp to its calendar date in UTC. All due-date
// arithmetic happens on these normalized values.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Equal reports whether two exercises refer to the same stored row:
// both ids present and identical.
func (e *Exercise) Equal(other *Exercise) bool {
	return e.ID != nil && other.ID != nil && *e.ID == *other.ID
}

// DisplayID returns the stored id, or -1 for an unsaved exercise.
func (e *Exercise) DisplayID() int64 {
	if e.ID == nil {
		return -1
	}
	return *e.ID
}

// ApplyUpdate overwrites the content fields from an edited export.
// Scheduling fields and identity are untouched.
func (e *Exercise) ApplyUpdate(u ExerciseUpdate) {
	e.Description = u.Description
	e.Source = u.Source
	e.ReferenceAnswer = u.ReferenceAnswer
}
