package resolver

import (
	"sort"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

// MinutesUntilShiftEnd works on wall-clock minutes. In the late portion of a
// midnight-spanning shift the distance runs through midnight; in the early
// portion of the following day it is a plain difference.
func MinutesUntilShiftEnd(span domain.TimeSpan, now time.Time) int {
	nowMinutes := now.Hour()*60 + now.Minute()
	endMinutes := span.EndHour*60 + span.EndMinute

	if !span.SpansMidnight() {
		return endMinutes - nowMinutes
	}

	startMinutes := span.StartHour*60 + span.StartMinute
	if nowMinutes >= startMinutes {
		return (24*60 - nowMinutes) + endMinutes
	}
	return endMinutes - nowMinutes
}

// sortedSpans orders a record's shift keys by start time so iteration over
// the map is deterministic.
func sortedSpans(shifts map[domain.TimeSpan][]domain.Pharmacy) []domain.TimeSpan {
	spans := make([]domain.TimeSpan, 0, len(shifts))
	for s := range shifts {
		spans = append(spans, s)
	}
	sort.Slice(spans, func(i, j int) bool {
		si := spans[i].StartHour*60 + spans[i].StartMinute
		sj := spans[j].StartHour*60 + spans[j].StartMinute
		if si != sj {
			return si < sj
		}
		return spans[i].EndHour*60+spans[i].EndMinute < spans[j].EndHour*60+spans[j].EndMinute
	})
	return spans
}
