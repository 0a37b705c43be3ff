//go:build !integration

package milestone

import (
	"math"
	"testing"
	"time"

	"stableCraft/domain"
)

func TestAssignmentCoverage(t *testing.T) {
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 10)

	at := func(day int) time.Time { return windowStart.AddDate(0, 0, day) }
	ptr := func(ts time.Time) *time.Time { return &ts }

	tests := []struct {
		name       string
		assignment domain.GroomAssignment
		want       float64
	}{
		{
			name:       "spans whole window",
			assignment: domain.GroomAssignment{StartedAt: at(-5), EndedAt: nil},
			want:       1.0,
		},
		{
			name:       "open ended from midpoint",
			assignment: domain.GroomAssignment{StartedAt: at(5), EndedAt: nil},
			want:       0.5,
		},
		{
			name:       "ended at midpoint",
			assignment: domain.GroomAssignment{StartedAt: at(-5), EndedAt: ptr(at(5))},
			want:       0.5,
		},
		{
			name:       "inner slice",
			assignment: domain.GroomAssignment{StartedAt: at(2), EndedAt: ptr(at(6))},
			want:       0.4,
		},
		{
			name:       "ended before window",
			assignment: domain.GroomAssignment{StartedAt: at(-10), EndedAt: ptr(at(-1))},
			want:       0,
		},
		{
			name:       "starts after window",
			assignment: domain.GroomAssignment{StartedAt: at(11), EndedAt: nil},
			want:       0,
		},
		{
			name:       "overshoots both sides clamps to one",
			assignment: domain.GroomAssignment{StartedAt: at(-30), EndedAt: ptr(at(30))},
			want:       1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := assignmentCoverage(tc.assignment, windowStart, windowEnd)
			if math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("assignmentCoverage() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAssignmentCoverage_DegenerateWindow(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a := domain.GroomAssignment{StartedAt: ts.AddDate(0, 0, -1)}

	if got := assignmentCoverage(a, ts, ts); got != 0 {
		t.Errorf("zero-length window coverage = %v, want 0", got)
	}
}
