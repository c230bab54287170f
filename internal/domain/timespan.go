package domain

import (
	"fmt"
	"time"
)

// TimeSpan is a named duty interval in 24h local time. It only holds the four
// integers so that two spans compare equal exactly when their boundaries do,
// which makes it usable as the shift key of a DutyRecord.
type TimeSpan struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// The set of spans in use is small and closed; new calendars reuse these.
var (
	SpanCapitalDay    = TimeSpan{StartHour: 10, StartMinute: 15, EndHour: 22, EndMinute: 0}
	SpanCapitalNight  = TimeSpan{StartHour: 22, StartMinute: 0, EndHour: 10, EndMinute: 15}
	SpanFullDay       = TimeSpan{StartHour: 0, StartMinute: 0, EndHour: 23, EndMinute: 59}
	SpanRuralExtended = TimeSpan{StartHour: 10, StartMinute: 0, EndHour: 22, EndMinute: 0}
	SpanRuralStandard = TimeSpan{StartHour: 10, StartMinute: 0, EndHour: 20, EndMinute: 0}
)

var spanLabels = map[TimeSpan]string{
	SpanCapitalDay:    "diurno",
	SpanCapitalNight:  "nocturno",
	SpanFullDay:       "24 horas",
	SpanRuralExtended: "guardia ampliada",
	SpanRuralStandard: "guardia diurna",
}

// Label returns the display name of a known span, or the raw boundaries for an
// ad hoc one.
func (s TimeSpan) Label() string {
	if label, ok := spanLabels[s]; ok {
		return label
	}
	return s.String()
}

func (s TimeSpan) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", s.StartHour, s.StartMinute, s.EndHour, s.EndMinute)
}

// MarshalText lets the span act as a JSON object key when records are
// persisted by the schedule store.
func (s TimeSpan) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TimeSpan) UnmarshalText(text []byte) error {
	var parsed TimeSpan
	n, err := fmt.Sscanf(string(text), "%d:%d-%d:%d",
		&parsed.StartHour, &parsed.StartMinute, &parsed.EndHour, &parsed.EndMinute)
	if err != nil || n != 4 {
		return fmt.Errorf("tramo horario inválido: %q", text)
	}
	*s = parsed
	return nil
}

func (s TimeSpan) startMinutes() int { return s.StartHour*60 + s.StartMinute }
func (s TimeSpan) endMinutes() int   { return s.EndHour*60 + s.EndMinute }

// SpansMidnight reports whether the span ends on the day after it starts.
func (s TimeSpan) SpansMidnight() bool {
	return s.endMinutes() < s.startMinutes()
}

// ContainsTimeOfDay checks a wall-clock time against the span, boundaries
// inclusive. For a midnight-spanning span the two conditions are OR-ed: the
// time belongs to the span either late in the starting day or early in the
// following one.
func (s TimeSpan) ContainsTimeOfDay(hour, minute int) bool {
	now := hour*60 + minute
	if s.SpansMidnight() {
		return now >= s.startMinutes() || now <= s.endMinutes()
	}
	return now >= s.startMinutes() && now <= s.endMinutes()
}

// ContainsInstant evaluates the span anchored to a reference date: the span
// runs from the date at its start time until its end time, on the next civil
// day when it spans midnight.
func (s TimeSpan) ContainsInstant(t time.Time, ref DutyDate) bool {
	start := ref.At(s.StartHour, s.StartMinute)
	end := ref.At(s.EndHour, s.EndMinute)
	if s.SpansMidnight() {
		end = end.AddDate(0, 0, 1)
	}
	return !t.Before(start) && !t.After(end)
}

// End returns the instant the span ends when anchored to ref.
func (s TimeSpan) End(ref DutyDate) time.Time {
	end := ref.At(s.EndHour, s.EndMinute)
	if s.SpansMidnight() {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
