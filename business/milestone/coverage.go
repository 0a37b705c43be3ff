package milestone

import (
	"time"

	"stableCraft/domain"
)

// assignmentCoverage returns the fraction of the milestone window the
// assignment was active for, in [0, 1]. An open-ended assignment counts
// through the window end.
func assignmentCoverage(a domain.GroomAssignment, windowStart, windowEnd time.Time) float64 {
	windowLen := windowEnd.Sub(windowStart)
	if windowLen <= 0 {
		return 0
	}

	from := a.StartedAt
	if from.Before(windowStart) {
		from = windowStart
	}

	to := windowEnd
	if a.EndedAt != nil && a.EndedAt.Before(windowEnd) {
		to = *a.EndedAt
	}

	overlap := to.Sub(from)
	if overlap <= 0 {
		return 0
	}

	ratio := float64(overlap) / float64(windowLen)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}
