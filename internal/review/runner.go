package review

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/conorfennell/drill/internal/domain"
	"github.com/conorfennell/drill/internal/menu"
	"github.com/conorfennell/drill/internal/scheduler"
)

// Store is the slice of persistence the review loop needs.
type Store interface {
	Due(today time.Time) ([]domain.Exercise, error)
	Update(ex *domain.Exercise) error
}

// Selector presents a menu and returns the chosen index, or ok=false
// when the user cancelled. An error means the terminal is unusable and
// is fatal to the run.
type Selector func(options []menu.Option) (int, bool, error)

// ExportFunc hands an exercise to the export collaborator for
// out-of-band editing.
type ExportFunc func(ex *domain.Exercise, path string) error

// Runner drives one time-boxed review pass over the due set.
type Runner struct {
	Store     Store
	Params    *scheduler.Params
	Select    Selector
	Export    ExportFunc
	ExportDir string
	Out       io.Writer
	Now       Clock
}

const (
	choiceKnowIt = iota
	choiceDontKnowIt
	choiceQuitAndEdit
)

var reviewOptions = []menu.Option{
	{Label: "Know it", Shortcut: 'y'},
	{Label: "Don't know it", Shortcut: 'n'},
	{Label: "Quit & edit", Shortcut: 'q'},
}

var confirmOptions = []menu.Option{
	{Label: "Yes", Shortcut: 'y'},
	{Label: "No", Shortcut: 'n'},
}

// Run reviews every due exercise until the set is exhausted, the time
// box runs out, or the user quits. Menu errors are returned as-is;
// persistence failures are reported inline and the loop continues.
func (r *Runner) Run(timeBoxMinutes int) error {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	today := domain.DateOf(now())

	due, err := r.Store.Due(today)
	if err != nil {
		return fmt.Errorf("failed to load due exercises: %w", err)
	}
	if len(due) == 0 {
		fmt.Fprintln(r.Out, "No exercises are due. Nothing to review.")
		return nil
	}

	session := NewSession(timeBoxMinutes, now)
	reviewed := 0

	for i := range due {
		ex := &due[i]

		if session.HasExceededTimebox() {
			fmt.Fprintf(r.Out, "%s Stopping: %d exercises remain due.\n",
				session, len(due)-i)
			break
		}

		if i > 0 {
			r.clearScreen()
		}

		fmt.Fprintln(r.Out, session.ProgressLine(i, len(due), ex))
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, ex.Description)
		fmt.Fprintln(r.Out)

		choice, ok, err := r.Select(reviewOptions)
		if err != nil {
			return fmt.Errorf("menu interaction failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(r.Out, "Review ended.")
			break
		}

		if choice == choiceQuitAndEdit {
			r.exportForEditing(ex)
			break
		}

		r.reveal(ex)

		correct := false
		if choice == choiceKnowIt {
			fmt.Fprintln(r.Out, "Did your answer match?")
			confirm, ok, err := r.Select(confirmOptions)
			if err != nil {
				return fmt.Errorf("menu interaction failed: %w", err)
			}
			if !ok {
				fmt.Fprintln(r.Out, "Review ended.")
				break
			}
			correct = confirm == 0
		}

		r.Params.Advance(ex, correct, today)
		if err := r.Store.Update(ex); err != nil {
			fmt.Fprintf(r.Out, "Failed to save exercise %d: %v\n", ex.DisplayID(), err)
		}
		r.reportOutcome(ex, correct)
		reviewed++
	}

	fmt.Fprintf(r.Out, "Reviewed %d exercises in %dm.\n",
		reviewed, int(session.Elapsed().Minutes()))
	return nil
}

func (r *Runner) reveal(ex *domain.Exercise) {
	fmt.Fprintln(r.Out, "Reference answer:")
	fmt.Fprintln(r.Out, indent(ex.ReferenceAnswer))
	fmt.Fprintln(r.Out, "Source:")
	fmt.Fprintln(r.Out, indent(ex.Source))
}

func (r *Runner) reportOutcome(ex *domain.Exercise, correct bool) {
	if correct {
		fmt.Fprintf(r.Out, "Correct! Next review in %dd (due %s).\n",
			ex.UpdateInterval, ex.DueAt.Format("2006-01-02"))
	} else {
		fmt.Fprintln(r.Out, "Scheduled for another review today.")
	}
}

func (r *Runner) exportForEditing(ex *domain.Exercise) {
	path := filepath.Join(r.ExportDir, fmt.Sprintf("exercise_%d.yaml", ex.DisplayID()))
	if err := r.Export(ex, path); err != nil {
		fmt.Fprintf(r.Out, "Failed to export exercise %d: %v\n", ex.DisplayID(), err)
		return
	}
	fmt.Fprintf(r.Out, "Exported exercise %d to %s for editing.\n", ex.DisplayID(), path)
}

func (r *Runner) clearScreen() {
	fmt.Fprint(r.Out, "\x1b[2J\x1b[H")
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
