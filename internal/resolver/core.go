package resolver

import (
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

// FindActive locates the record and shift covering an instant. The primary
// pass requires exact shift containment; when nothing matches, a fallback
// accepts the record of the same civil day and reports exact=false. The
// fallback papers over gaps at shift transition edges and is fixed policy,
// not a bug to generalize away.
func FindActive(records []domain.DutyRecord, t time.Time) (record domain.DutyRecord, span domain.TimeSpan, exact bool, found bool) {
	for _, rec := range records {
		for _, s := range sortedSpans(rec.Shifts) {
			if s.ContainsInstant(t, rec.Date) {
				return rec, s, true, true
			}
		}
	}

	for _, rec := range records {
		if rec.Date.SameCivilDay(t) {
			spans := sortedSpans(rec.Shifts)
			if len(spans) == 0 {
				continue
			}
			return rec, spans[0], false, true
		}
	}

	return domain.DutyRecord{}, domain.TimeSpan{}, false, false
}

// FindNext resolves the shift that follows the current one by re-running
// FindActive one minute after the current span ends. The one mechanism covers
// the same-day day-to-night handoff, the midnight-crossing night-to-day
// handoff, and the full-day rollover.
func FindNext(records []domain.DutyRecord, current domain.DutyRecord, span domain.TimeSpan, now time.Time) *NextShift {
	after := span.End(current.Date).Add(time.Minute)

	record, nextSpan, exact, found := FindActive(records, after)
	if !found {
		return nil
	}

	return &NextShift{
		Pharmacies:   record.Shifts[nextSpan],
		Label:        nextSpan.Label(),
		Span:         nextSpan,
		Date:         record.Date,
		MinutesUntil: int(after.Sub(now).Minutes()),
		Gapped:       !exact,
	}
}
