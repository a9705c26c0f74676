package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conorfennell/drill/internal/domain"
)

var t0 = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestParseMultilineExercises(t *testing.T) {
	in := `- description: |
    foo
    more foo
    one more, should be trimmed.
  source: here is a single-line source
  reference_answer: |
    here is some more content
    	a tab in here
- description: single-line here
  source: |
    this is multiple lines
    see, multiple lines
  reference_answer: this is single-line, too
`

	exercises, err := Parse(strings.NewReader(in), t0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(exercises))
	}

	if exercises[0].Description != "foo\nmore foo\none more, should be trimmed." {
		t.Errorf("description = %q", exercises[0].Description)
	}
	if exercises[0].Source != "here is a single-line source" {
		t.Errorf("source = %q", exercises[0].Source)
	}
	if exercises[1].Source != "this is multiple lines\nsee, multiple lines" {
		t.Errorf("source = %q", exercises[1].Source)
	}

	for i, ex := range exercises {
		if ex.ID != nil {
			t.Errorf("exercise %d should be unsaved", i+1)
		}
		if !ex.DueAt.Equal(t0) {
			t.Errorf("exercise %d due = %v, want today", i+1, ex.DueAt)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr string
	}{
		{
			"not a list",
			"blah",
			"invalid exercise file",
		},
		{
			"missing reference answer",
			"- description: foo\n  source: bar\n",
			"exercise 1 has a blank or missing reference answer",
		},
		{
			"second missing source",
			"- description: foo\n  source: bar\n  reference_answer: baz\n- description: foo 2\n  reference_answer: baz 2\n",
			"exercise 2 has a blank or missing source",
		},
		{
			"null description",
			"- description: ~\n  source: bar\n  reference_answer: baz\n",
			"exercise 1 has a blank or missing description",
		},
		{
			"whitespace source",
			"- description: foo\n  source: \"   \"\n  reference_answer: baz\n",
			"exercise 1 has a blank or missing source",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in), t0)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseEmptyList(t *testing.T) {
	exercises, err := Parse(strings.NewReader(""), t0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("got %d exercises from empty input", len(exercises))
	}
}

func TestPadMultiline(t *testing.T) {
	in := "here is a line\nhere is another\nand one more"
	want := "  here is a line\n  here is another\n  and one more"
	if got := padMultiline(in); got != want {
		t.Errorf("padMultiline = %q, want %q", got, want)
	}
}

func TestExportRoundTrip(t *testing.T) {
	ex := newSavedExercise(t)
	path := filepath.Join(t.TempDir(), "export.yaml")

	if err := Export(&ex, path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for _, fragment := range []string{
		"id: 7",
		"description: |+\n  what is a closure?",
		"source: |+\n  the go spec",
		"reference_answer: |+\n  a function value\n  plus its environment",
	} {
		if !strings.Contains(string(data), fragment) {
			t.Errorf("exported file missing %q:\n%s", fragment, data)
		}
	}

	update, err := ParseUpdateFile(path)
	if err != nil {
		t.Fatalf("ParseUpdateFile: %v", err)
	}
	if update.ID != 7 {
		t.Errorf("id = %d, want 7", update.ID)
	}
	if update.Description != ex.Description {
		t.Errorf("description = %q, want %q", update.Description, ex.Description)
	}
	if update.ReferenceAnswer != ex.ReferenceAnswer {
		t.Errorf("reference answer = %q, want %q", update.ReferenceAnswer, ex.ReferenceAnswer)
	}
}

func TestExportOverwrites(t *testing.T) {
	ex := newSavedExercise(t)
	path := filepath.Join(t.TempDir(), "export.yaml")

	if err := Export(&ex, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	ex.Description = "edited question"
	if err := Export(&ex, path); err != nil {
		t.Fatalf("second Export: %v", err)
	}

	update, err := ParseUpdateFile(path)
	if err != nil {
		t.Fatalf("ParseUpdateFile: %v", err)
	}
	if update.Description != "edited question" {
		t.Errorf("description = %q, want the edited value", update.Description)
	}
}

func TestExportUnsaved(t *testing.T) {
	ex := newSavedExercise(t)
	ex.ID = nil
	if err := Export(&ex, filepath.Join(t.TempDir(), "export.yaml")); err != ErrNotSaved {
		t.Errorf("Export of unsaved exercise = %v, want ErrNotSaved", err)
	}
}

func TestParseUpdateErrors(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		in := "description: foo\nsource: bar\nreference_answer: baz\n"
		_, err := ParseUpdate(strings.NewReader(in))
		if err == nil || !strings.Contains(err.Error(), "id") {
			t.Errorf("error = %v, want a missing-id error", err)
		}
	})

	t.Run("blank description", func(t *testing.T) {
		in := "id: 3\ndescription: \"  \"\nsource: bar\nreference_answer: baz\n"
		_, err := ParseUpdate(strings.NewReader(in))
		if err == nil || !strings.Contains(err.Error(), "blank or missing description") {
			t.Errorf("error = %v, want a blank-description error", err)
		}
	})
}

func newSavedExercise(t *testing.T) domain.Exercise {
	t.Helper()
	ex := domain.NewExercise("what is a closure?", "the go spec", "a function value\nplus its environment", t0)
	id := int64(7)
	ex.ID = &id
	return ex
}
