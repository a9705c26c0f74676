package domain

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

func TestNewExercise(t *testing.T) {
	ex := NewExercise("what is a goroutine?", "tour of go", "a lightweight thread", t0)

	if ex.ID != nil {
		t.Errorf("new exercise should have no id, got %d", *ex.ID)
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !ex.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", ex.CreatedAt, want)
	}
	if !ex.DueAt.Equal(want) {
		t.Errorf("DueAt = %v, want %v", ex.DueAt, want)
	}
	if ex.UpdateInterval != 0 || ex.ConsecutiveSuccessfulReviews != 0 {
		t.Errorf("fresh exercise should start with zero scheduling state, got interval=%d streak=%d",
			ex.UpdateInterval, ex.ConsecutiveSuccessfulReviews)
	}
}

func TestEqual(t *testing.T) {
	a := NewExercise("a", "b", "c", t0)
	b := NewExercise("a", "b", "c", t0)

	if a.Equal(&b) {
		t.Error("two unsaved exercises must not be equal")
	}

	one, alsoOne, two := int64(1), int64(1), int64(2)
	a.ID = &one
	if a.Equal(&b) {
		t.Error("saved and unsaved exercises must not be equal")
	}

	b.ID = &alsoOne
	if !a.Equal(&b) {
		t.Error("exercises with the same id must be equal")
	}

	b.ID = &two
	if a.Equal(&b) {
		t.Error("exercises with different ids must not be equal")
	}
}

func TestDisplayID(t *testing.T) {
	ex := NewExercise("a", "b", "c", t0)
	if got := ex.DisplayID(); got != -1 {
		t.Errorf("DisplayID for unsaved exercise = %d, want -1", got)
	}
	id := int64(42)
	ex.ID = &id
	if got := ex.DisplayID(); got != 42 {
		t.Errorf("DisplayID = %d, want 42", got)
	}
}

func TestApplyUpdate(t *testing.T) {
	ex := NewExercise("a", "b", "c", t0)
	ex.UpdateInterval = 8
	ex.ConsecutiveSuccessfulReviews = 4

	ex.ApplyUpdate(ExerciseUpdate{
		ID:              1,
		Description:     "new description",
		Source:          "new source",
		ReferenceAnswer: "new answer",
	})

	if ex.Description != "new description" || ex.Source != "new source" || ex.ReferenceAnswer != "new answer" {
		t.Errorf("content fields not applied: %+v", ex)
	}
	if ex.UpdateInterval != 8 || ex.ConsecutiveSuccessfulReviews != 4 {
		t.Error("ApplyUpdate must not touch scheduling state")
	}
}
