package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conorfennell/drill/internal/domain"
)

// ErrNotSaved is returned when exporting an exercise that has never
// been persisted; there is no id to write into the file.
var ErrNotSaved = errors.New("cannot export an exercise that has not been saved")

func padMultiline(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// Export writes a single exercise to path in the update format that
// ParseUpdate reads back. A YAML library would not print the multiline
// fields as readable literal blocks, so the document is built by hand;
// the data model is simple enough that this is safe.
func Export(ex *domain.Exercise, path string) error {
	if ex.ID == nil {
		return ErrNotSaved
	}

	doc := fmt.Sprintf(`---
id: %d
description: |+
%s
source: |+
%s
reference_answer: |+
%s
`,
		*ex.ID,
		padMultiline(ex.Description),
		padMultiline(ex.Source),
		padMultiline(ex.ReferenceAnswer),
	)

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
