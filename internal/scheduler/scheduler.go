package scheduler

import (
	"time"

	"github.com/conorfennell/drill/internal/domain"
)

// Params holds the interval policy constants. They travel as a value so
// tests and future tuning don't have to touch call sites.
type Params struct {
	OneDay         int // interval after the first successful review, in days
	MaxInterval    int // cap on the interval, in days
	EasinessFactor int // growth factor applied on each later success
}

// DefaultParams returns the fixed doubling policy: 1, 2, 4, ... capped
// at 90 days.
func DefaultParams() *Params {
	return &Params{
		OneDay:         1,
		MaxInterval:    90,
		EasinessFactor: 2,
	}
}

// Advance applies one review result to an exercise's scheduling state.
// On a correct review the streak grows and the interval doubles up to
// MaxInterval; on a miss both reset and the exercise is due again today.
// Only the four scheduling fields are touched.
func (p *Params) Advance(ex *domain.Exercise, correct bool, today time.Time) {
	today = domain.DateOf(today)
	ex.DueAt = today

	if !correct {
		ex.ConsecutiveSuccessfulReviews = 0
		ex.UpdateInterval = 0
		return
	}

	ex.ConsecutiveSuccessfulReviews++
	if ex.ConsecutiveSuccessfulReviews == 1 {
		ex.UpdateInterval = p.OneDay
	} else {
		ex.UpdateInterval = min(p.MaxInterval, ex.UpdateInterval*p.EasinessFactor)
	}

	ex.DueAt = today.AddDate(0, 0, ex.UpdateInterval)
}
