package availability

import (
	"testing"
	"time"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func window(start, end model.Date) Window {
	return Window{Start: start, End: end}
}

func TestValidateRange(t *testing.T) {
	today := date(2025, time.June, 1)

	tests := []struct {
		name      string
		candidate Window
		wantErr   error
	}{
		{
			name:      "future range is valid",
			candidate: window(date(2025, time.June, 5), date(2025, time.June, 10)),
			wantErr:   nil,
		},
		{
			name:      "range starting today is valid",
			candidate: window(date(2025, time.June, 1), date(2025, time.June, 2)),
			wantErr:   nil,
		},
		{
			name:      "start before today rejected even if otherwise free",
			candidate: window(date(2025, time.May, 30), date(2025, time.June, 10)),
			wantErr:   ErrPastDate,
		},
		{
			name:      "end before today rejected",
			candidate: window(date(2025, time.June, 2), date(2025, time.May, 20)),
			wantErr:   ErrPastDate,
		},
		{
			name:      "end before start rejected",
			candidate: window(date(2025, time.June, 10), date(2025, time.June, 5)),
			wantErr:   ErrInvertedRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.candidate, today)
			if err != tt.wantErr {
				t.Errorf("ValidateRange() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlocks_HalfOpenContainment(t *testing.T) {
	existing := window(date(2025, time.June, 1), date(2025, time.June, 5))

	tests := []struct {
		name      string
		candidate Window
		want      bool
	}{
		{
			name:      "start inside existing interval",
			candidate: window(date(2025, time.June, 4), date(2025, time.June, 10)),
			want:      true,
		},
		{
			name:      "start touching existing end is clear",
			candidate: window(date(2025, time.June, 5), date(2025, time.June, 10)),
			want:      false,
		},
		{
			name:      "end inside existing interval",
			candidate: window(date(2025, time.May, 20), date(2025, time.June, 3)),
			want:      true,
		},
		{
			name:      "start equal to existing start",
			candidate: window(date(2025, time.June, 1), date(2025, time.June, 10)),
			want:      true,
		},
		{
			name: "candidate fully enclosing existing is not flagged (legacy asymmetry)",
			// Neither endpoint falls inside [Jun 1, Jun 5), so the rule
			// does not fire even though the ranges clearly overlap.
			candidate: window(date(2025, time.May, 20), date(2025, time.June, 10)),
			want:      false,
		},
		{
			name:      "fully before existing",
			candidate: window(date(2025, time.May, 10), date(2025, time.May, 20)),
			want:      false,
		},
		{
			name:      "fully after existing",
			candidate: window(date(2025, time.June, 10), date(2025, time.June, 20)),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blocks(existing, tt.candidate); got != tt.want {
				t.Errorf("Blocks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_EmptyTimelineIsClear(t *testing.T) {
	candidate := window(date(2025, time.June, 5), date(2025, time.June, 7))

	decision := Evaluate(nil, candidate)
	if !decision.Clear() {
		t.Errorf("expected clear decision for empty timeline, got %d conflicts", decision.Conflicts)
	}
	if len(decision.Gaps) != 0 {
		t.Errorf("expected no gaps for empty timeline, got %d", len(decision.Gaps))
	}
}

func TestEvaluate_RangeBetweenReservationsIsClear(t *testing.T) {
	timeline := []Window{
		window(date(2025, time.June, 1), date(2025, time.June, 3)),
		window(date(2025, time.June, 10), date(2025, time.June, 12)),
	}
	candidate := window(date(2025, time.June, 5), date(2025, time.June, 7))

	decision := Evaluate(timeline, candidate)
	if !decision.Clear() {
		t.Fatalf("expected clear decision, got %d conflicts", decision.Conflicts)
	}

	// The gap between the adjacent pair is emitted regardless of the
	// candidate being clear.
	if len(decision.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(decision.Gaps))
	}
	gap := decision.Gaps[0]
	if !gap.Start.Equal(date(2025, time.June, 3)) || !gap.End.Equal(date(2025, time.June, 10)) {
		t.Errorf("unexpected gap %s..%s", gap.Start, gap.End)
	}
}

func TestEvaluate_CountsEveryBlockingReservation(t *testing.T) {
	timeline := []Window{
		window(date(2025, time.June, 1), date(2025, time.June, 5)),
		window(date(2025, time.June, 6), date(2025, time.June, 9)),
		window(date(2025, time.June, 20), date(2025, time.June, 25)),
	}
	// Starts inside the first window, ends inside the second.
	candidate := window(date(2025, time.June, 4), date(2025, time.June, 7))

	decision := Evaluate(timeline, candidate)
	if decision.Conflicts != 2 {
		t.Errorf("expected 2 conflicts, got %d", decision.Conflicts)
	}
	if len(decision.Gaps) != 2 {
		t.Errorf("expected 2 gaps, got %d", len(decision.Gaps))
	}
}

func TestEvaluate_GapsPreserveWalkOrder(t *testing.T) {
	timeline := []Window{
		window(date(2025, time.June, 1), date(2025, time.June, 2)),
		window(date(2025, time.June, 4), date(2025, time.June, 5)),
		window(date(2025, time.June, 8), date(2025, time.June, 9)),
		window(date(2025, time.June, 15), date(2025, time.June, 16)),
	}
	candidate := window(date(2025, time.June, 1), date(2025, time.June, 20))

	decision := Evaluate(timeline, candidate)
	if len(decision.Gaps) != 3 {
		t.Fatalf("expected 3 gaps, got %d", len(decision.Gaps))
	}

	for i := 1; i < len(decision.Gaps); i++ {
		prev, curr := decision.Gaps[i-1], decision.Gaps[i]
		if !prev.End.Before(curr.Start) && !prev.End.Equal(curr.Start) {
			t.Errorf("gaps out of order: gap %d ends %s, gap %d starts %s", i-1, prev.End, i, curr.Start)
		}
	}
}

func TestEvaluate_BackToBackReservationsEmitZeroLengthGap(t *testing.T) {
	timeline := []Window{
		window(date(2025, time.June, 1), date(2025, time.June, 5)),
		window(date(2025, time.June, 5), date(2025, time.June, 9)),
	}
	candidate := window(date(2025, time.June, 20), date(2025, time.June, 22))

	// curr.End <= next.Start holds with equality, so the pair still
	// produces a (degenerate) gap, as the walk rule specifies.
	decision := Evaluate(timeline, candidate)
	if len(decision.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(decision.Gaps))
	}
	if !decision.Gaps[0].Start.Equal(decision.Gaps[0].End) {
		t.Errorf("expected zero-length gap, got %s..%s", decision.Gaps[0].Start, decision.Gaps[0].End)
	}
}

func TestGapDisplay(t *testing.T) {
	gap := Gap{Start: date(2025, time.May, 5), End: date(2025, time.May, 12)}
	display := gap.Display()

	if display[0] != "Monday, 05 May, 2025" {
		t.Errorf("unexpected start display %q", display[0])
	}
	if display[1] != "Monday, 12 May, 2025" {
		t.Errorf("unexpected end display %q", display[1])
	}
}
