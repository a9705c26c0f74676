// Package parser reads and writes the YAML exercise authoring format.
// An import file is a list of documents with description, source and
// reference_answer fields; an update file is a single document that
// also carries the exercise id.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/conorfennell/drill/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// A field is blank when it is missing, whitespace-only, or an
	// explicit YAML null written as "~".
	must := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimSpace(s) != "" && s != "~"
	})
	if must != nil {
		panic(must)
	}
	return v
}

type importedExercise struct {
	Description     string `yaml:"description" validate:"notblank"`
	Source          string `yaml:"source" validate:"notblank"`
	ReferenceAnswer string `yaml:"reference_answer" validate:"notblank"`
}

// fieldLabels maps struct field names to the wording used in error
// messages.
var fieldLabels = map[string]string{
	"Description":     "description",
	"Source":          "source",
	"ReferenceAnswer": "reference answer",
	"ID":              "id",
}

func blankFieldError(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}
	label, ok := fieldLabels[verrs[0].StructField()]
	if !ok {
		label = strings.ToLower(verrs[0].StructField())
	}
	return label, true
}

// Parse reads a list of exercises from YAML. Every field must be
// present and non-blank; values are trimmed. The returned exercises are
// unsaved and due today.
func Parse(r io.Reader, today time.Time) ([]domain.Exercise, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var imported []importedExercise
	if err := yaml.Unmarshal(content, &imported); err != nil {
		return nil, fmt.Errorf("invalid exercise file: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(imported))
	for i, in := range imported {
		if err := validate.Struct(in); err != nil {
			if label, ok := blankFieldError(err); ok {
				return nil, fmt.Errorf("exercise %d has a blank or missing %s", i+1, label)
			}
			return nil, fmt.Errorf("exercise %d is invalid: %w", i+1, err)
		}
		exercises = append(exercises, domain.NewExercise(
			strings.TrimSpace(in.Description),
			strings.TrimSpace(in.Source),
			strings.TrimSpace(in.ReferenceAnswer),
			today,
		))
	}
	return exercises, nil
}

// ParseFile reads a list of exercises from a YAML file on disk.
func ParseFile(path string, today time.Time) ([]domain.Exercise, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, today)
}

// ParseUpdate reads a single edited exercise, as written by Export.
func ParseUpdate(r io.Reader) (domain.ExerciseUpdate, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return domain.ExerciseUpdate{}, err
	}

	var update domain.ExerciseUpdate
	if err := yaml.Unmarshal(content, &update); err != nil {
		return domain.ExerciseUpdate{}, fmt.Errorf("invalid exercise file: %w", err)
	}

	if err := validate.Struct(update); err != nil {
		if label, ok := blankFieldError(err); ok {
			return domain.ExerciseUpdate{}, fmt.Errorf("exercise has a blank or missing %s", label)
		}
		return domain.ExerciseUpdate{}, fmt.Errorf("exercise is invalid: %w", err)
	}

	update.Description = strings.TrimSpace(update.Description)
	update.Source = strings.TrimSpace(update.Source)
	update.ReferenceAnswer = strings.TrimSpace(update.ReferenceAnswer)
	return update, nil
}

// ParseUpdateFile reads a single edited exercise from disk.
func ParseUpdateFile(path string) (domain.ExerciseUpdate, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.ExerciseUpdate{}, err
	}
	defer file.Close()

	return ParseUpdate(file)
}
