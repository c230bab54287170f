// Package resolver answers "who is on duty" over a list of duty records. It
// is pure: every query is a function of its inputs, nothing is held between
// calls.
package resolver

import (
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

// ResolveCurrent finds the active shift at now and the shift that follows it.
func ResolveCurrent(records []domain.DutyRecord, now time.Time) Resolution {
	if len(records) == 0 {
		return Resolution{Status: StatusNoData}
	}

	record, span, _, found := FindActive(records, now)
	if !found {
		return Resolution{Status: StatusNotFound}
	}

	minutes := MinutesUntilShiftEnd(span, now)

	return Resolution{
		Status:          StatusFound,
		Pharmacies:      record.Shifts[span],
		Span:            span,
		SpanLabel:       span.Label(),
		Date:            record.Date,
		MinutesUntilEnd: minutes,
		EndingSoon:      minutes > 0 && minutes <= TransitionWarningMinutes,
		Next:            FindNext(records, record, span, now),
	}
}

// ResolveForDate looks a record up by calendar date, ignoring "now". Used for
// calendar browsing.
func ResolveForDate(records []domain.DutyRecord, date domain.DutyDate) (domain.DutyRecord, bool) {
	for _, rec := range records {
		if rec.Date.Year == date.Year && rec.Date.Month == date.Month && rec.Date.Day == date.Day {
			return rec, true
		}
	}
	return domain.DutyRecord{}, false
}

// FlattenZones projects zone records into region-level duty records: each
// date becomes one full-day shift listing every zone's pharmacies, in catalog
// zone order. Region queries against the rural calendar resolve over this
// projection.
func FlattenZones(zoneRecords []domain.ZoneDutyRecord) []domain.DutyRecord {
	zoneIDs := domain.ZoneIDs()

	records := make([]domain.DutyRecord, 0, len(zoneRecords))
	for _, zr := range zoneRecords {
		pharmacies := []domain.Pharmacy{}
		for _, zoneID := range zoneIDs {
			pharmacies = append(pharmacies, zr.PharmaciesByZone[zoneID]...)
		}
		records = append(records, domain.DutyRecord{
			Date:   zr.Date,
			Shifts: map[domain.TimeSpan][]domain.Pharmacy{domain.SpanFullDay: pharmacies},
		})
	}
	return records
}

// ResolveZone answers the current-duty question scoped to one healthcare
// zone. Each zone record becomes a full-day shift holding the zone's
// pharmacy list; being outside the zone's nominal opening hours only sets a
// warning, it never empties the result.
func ResolveZone(zoneID string, zoneRecords []domain.ZoneDutyRecord, now time.Time) Resolution {
	if len(zoneRecords) == 0 {
		return Resolution{Status: StatusNoData}
	}

	records := make([]domain.DutyRecord, 0, len(zoneRecords))
	for _, zr := range zoneRecords {
		pharmacies, ok := zr.PharmaciesByZone[zoneID]
		if !ok {
			// The zone-completeness invariant makes this unreachable for
			// known zones; an unknown zone id simply resolves to nothing.
			continue
		}
		records = append(records, domain.DutyRecord{
			Date:   zr.Date,
			Shifts: map[domain.TimeSpan][]domain.Pharmacy{domain.SpanFullDay: pharmacies},
		})
	}

	resolution := ResolveCurrent(records, now)
	if resolution.Status == StatusFound {
		nominal := domain.ZoneNominalSpan(zoneID)
		resolution.OutsideNominalHours = !nominal.ContainsTimeOfDay(now.Hour(), now.Minute())
	}
	return resolution
}
