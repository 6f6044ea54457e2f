package deadline

import (
	"time"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Offsets are the standard deadline offsets from the anchor time.
type Offsets struct {
	InitialResponse time.Duration
	Investigation   time.Duration
	Resolution      time.Duration
}

var policy = map[domain.Priority]Offsets{
	domain.PriorityUrgent: {2 * time.Hour, 24 * time.Hour, 72 * time.Hour},
	domain.PriorityHigh:   {4 * time.Hour, 48 * time.Hour, 120 * time.Hour},
	domain.PriorityMedium: {8 * time.Hour, 72 * time.Hour, 168 * time.Hour},
	domain.PriorityLow:    {24 * time.Hour, 120 * time.Hour, 240 * time.Hour},
}

// PolicyFor returns the offsets for a priority. Unknown priorities use MEDIUM.
func PolicyFor(p domain.Priority) Offsets {
	return policy[p.OrDefault()]
}

// kinds pairs each standard kind with its offset, in due order.
func (o Offsets) kinds() []struct {
	kind   domain.DeadlineKind
	offset time.Duration
} {
	return []struct {
		kind   domain.DeadlineKind
		offset time.Duration
	}{
		{domain.DeadlineKindInitialResponse, o.InitialResponse},
		{domain.DeadlineKindInvestigation, o.Investigation},
		{domain.DeadlineKindResolution, o.Resolution},
	}
}
