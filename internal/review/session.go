package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/conorfennell/drill/internal/domain"
)

// DefaultTimeBoxMinutes is used when no time box is given.
const DefaultTimeBoxMinutes = 20

const progressLineWidth = 80

// Clock supplies the current time. Production code passes time.Now;
// tests pass a scripted clock.
type Clock func() time.Time

// Session tracks elapsed wall-clock time in one review run against a
// time box. It carries no exercise state.
type Session struct {
	start   time.Time
	timeBox time.Duration
	now     Clock
}

// NewSession captures the start time from the clock. A negative time
// box means "use the default"; zero is a valid (instantly expiring)
// time box.
func NewSession(timeBoxMinutes int, now Clock) *Session {
	if now == nil {
		now = time.Now
	}
	if timeBoxMinutes < 0 {
		timeBoxMinutes = DefaultTimeBoxMinutes
	}
	return &Session{
		start:   now(),
		timeBox: time.Duration(timeBoxMinutes) * time.Minute,
		now:     now,
	}
}

// TimeBoxMinutes returns the configured time box in whole minutes.
func (s *Session) TimeBoxMinutes() int {
	return int(s.timeBox.Minutes())
}

// Elapsed recomputes the time since the session started on every call.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// HasExceededTimebox compares whole elapsed minutes against the whole
// time-box minutes. Reaching the time box exactly is not yet exceeded.
func (s *Session) HasExceededTimebox() bool {
	return int(s.Elapsed().Minutes()) > s.TimeBoxMinutes()
}

// String renders the session progress, e.g. "5m/20m", or
// "<Overtime: 3m>" once the time box is exceeded.
func (s *Session) String() string {
	elapsed := int(s.Elapsed().Minutes())
	box := s.TimeBoxMinutes()
	if s.HasExceededTimebox() {
		return fmt.Sprintf("<Overtime: %dm>", elapsed-box)
	}
	return fmt.Sprintf("%dm/%dm", elapsed, box)
}

// ProgressLine builds the 80-column header for one exercise, with the
// session progress right-aligned. At least one space always separates
// the two parts, even if that pushes past the target width.
func (s *Session) ProgressLine(i, total int, ex *domain.Exercise) string {
	left := fmt.Sprintf("Exercise %d/%d - ID %d", i+1, total, ex.DisplayID())
	right := s.String()

	pad := max(1, progressLineWidth-len(left)-len(right))
	return left + strings.Repeat(" ", pad) + right
}
