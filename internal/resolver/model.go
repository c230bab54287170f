package resolver

import "github.com/farmaguardia/segovia/backend/internal/domain"

// Status is the outcome of one resolution query.
type Status string

const (
	// StatusNoData: no records to search, e.g. the parse came back empty.
	StatusNoData Status = "no_data"
	// StatusNotFound: records exist but none covers the instant, even after
	// the same-day fallback. The caller renders "no pharmacy on duty".
	StatusNotFound Status = "not_found"
	StatusFound    Status = "found"
)

// TransitionWarningMinutes: a shift about to end within this window gets an
// ending-soon warning.
const TransitionWarningMinutes = 30

// NextShift describes the shift that becomes active after the current one.
// Gapped is set when the minute after the current shift's end fell into no
// exact shift and the same-day fallback had to answer.
type NextShift struct {
	Pharmacies   []domain.Pharmacy `json:"pharmacies"`
	Label        string            `json:"label"`
	Span         domain.TimeSpan   `json:"span"`
	Date         domain.DutyDate   `json:"date"`
	MinutesUntil int               `json:"minutesUntil"`
	Gapped       bool              `json:"gapped"`
}

// Resolution answers "who is on duty" for one instant.
type Resolution struct {
	Status          Status            `json:"status"`
	Pharmacies      []domain.Pharmacy `json:"pharmacies,omitempty"`
	Span            domain.TimeSpan   `json:"span,omitempty"`
	SpanLabel       string            `json:"spanLabel,omitempty"`
	Date            domain.DutyDate   `json:"date,omitempty"`
	MinutesUntilEnd int               `json:"minutesUntilEnd,omitempty"`
	EndingSoon      bool              `json:"endingSoon,omitempty"`

	// Zone queries only: whether the instant is outside the zone's nominal
	// opening hours. Informational, the pharmacies stay listed.
	OutsideNominalHours bool `json:"outsideNominalHours,omitempty"`

	Next *NextShift `json:"next,omitempty"`
}
