// Package availability implements the booking conflict detector: given a
// candidate date range and a resource's existing reservation timeline, it
// decides whether the range is bookable and, if not, enumerates the open
// gaps between reservations so the caller can pick an alternative.
//
// The engine is pure and stateless. It trusts the caller to supply the
// timeline already sorted ascending by start date and never re-sorts it,
// so emitted gaps are monotonically increasing in date by construction.
package availability

import (
	"errors"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

var (
	ErrPastDate      = errors.New("cannot book a past date")
	ErrInvertedRange = errors.New("end date must not precede start date")
)

// Window is the transient interval form of a reservation used during
// conflict computation.
type Window struct {
	Start model.Date
	End   model.Date
}

// Gap is an open interval between two consecutive reservations during which
// the resource is free. Gaps are produced for presentation only and are
// never persisted.
type Gap struct {
	Start model.Date
	End   model.Date
}

// Display renders a gap as a pair of long human-readable dates.
func (g Gap) Display() [2]string {
	return [2]string{g.Start.Display(), g.End.Display()}
}

// Decision is the outcome of evaluating a candidate range against a
// timeline. A conflicted decision is a normal outcome, not an error.
type Decision struct {
	Conflicts int
	Gaps      []Gap
}

// Clear reports whether the candidate range may be committed.
func (d Decision) Clear() bool {
	return d.Conflicts == 0
}

// ValidateRange rejects candidates that start or end before today, and
// candidates whose end precedes their start.
func ValidateRange(candidate Window, today model.Date) error {
	if candidate.Start.Before(today) || candidate.End.Before(today) {
		return ErrPastDate
	}
	if candidate.End.Before(candidate.Start) {
		return ErrInvertedRange
	}
	return nil
}

// Blocks reports whether an existing reservation prevents the candidate
// range from being booked. The rule is half-open containment of either
// candidate endpoint:
//
//	curr.Start <= cand.Start < curr.End  OR  curr.Start <= cand.End < curr.End
//
// Note the asymmetry: a candidate that fully encloses an existing window
// without either endpoint landing inside it is NOT flagged. This mirrors
// the legacy behavior and is kept deliberately until product decides
// otherwise; callers must not "fix" it by symmetrizing the test.
func Blocks(curr, cand Window) bool {
	startInside := !cand.Start.Before(curr.Start) && cand.Start.Before(curr.End)
	endInside := !cand.End.Before(curr.Start) && cand.End.Before(curr.End)
	return startInside || endInside
}

// Evaluate walks the ordered timeline once, counting reservations that block
// the candidate and collecting the free gaps between each adjacent pair.
// Gaps are emitted unconditionally for every adjacent pair with
// curr.End <= next.Start, independent of whether either member conflicts
// with the candidate.
func Evaluate(timeline []Window, candidate Window) Decision {
	var decision Decision

	for i, curr := range timeline {
		if Blocks(curr, candidate) {
			decision.Conflicts++
		}

		if i == len(timeline)-1 {
			continue
		}

		next := timeline[i+1]
		if !next.Start.Before(curr.End) {
			decision.Gaps = append(decision.Gaps, Gap{Start: curr.End, End: next.Start})
		}
	}

	return decision
}
