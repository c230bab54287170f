package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DutyDate is a calendar date as printed in the source PDF. Year is 0 until it
// has been resolved, either from the text itself or by the publication-cadence
// rule in ParseSpanishDate.
type DutyDate struct {
	Weekday string `json:"weekday"`
	Day     int    `json:"day"`
	Month   int    `json:"month"` // 1-12
	Year    int    `json:"year"`
}

var ErrInvalidDate = fmt.Errorf("fecha inválida")

var spanishMonths = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
	"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
	"septiembre": 9, "setiembre": 9, "octubre": 10,
	"noviembre": 11, "diciembre": 12,
}

// spanishMonthAbbrevs covers the compact dd-mon tokens the weekly calendars use.
var spanishMonthAbbrevs = map[string]int{
	"ene": 1, "feb": 2, "mar": 3, "abr": 4, "may": 5, "jun": 6,
	"jul": 7, "ago": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dic": 12,
}

var spanishWeekdays = []string{
	"lunes", "martes", "miércoles", "miercoles", "jueves",
	"viernes", "sábado", "sabado", "domingo",
}

var spanishDatePattern = regexp.MustCompile(`(\d{1,2})\s*de\s*([a-záéíóúñ]+)(?:\s*de\s*(\d{4}))?`)

// ParseSpanishDate extracts a duty date from free text such as
// "lunes, 15 de julio de 2025". When the year is missing it defaults to the
// year of now, except for January 1st and 2nd, which are presumed to belong to
// the following year: the calendars are published in December and wrap into
// January. That rule is fixed policy, keep it as is.
func ParseSpanishDate(text string, now time.Time) (DutyDate, error) {
	lower := strings.ToLower(strings.TrimSpace(text))

	m := spanishDatePattern.FindStringSubmatch(lower)
	if m == nil {
		return DutyDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return DutyDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	month, ok := spanishMonths[m[2]]
	if !ok {
		return DutyDate{}, fmt.Errorf("%w: mes desconocido en %q", ErrInvalidDate, text)
	}

	year := 0
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	} else {
		year = now.Year()
		if month == 1 && (day == 1 || day == 2) {
			year++
		}
	}

	if day < 1 || day > daysInMonth(month, year) {
		return DutyDate{}, fmt.Errorf("%w: día %d fuera de rango para el mes %d", ErrInvalidDate, day, month)
	}

	weekday := ""
	for _, wd := range spanishWeekdays {
		if strings.Contains(lower, wd) {
			weekday = wd
			break
		}
	}

	return DutyDate{Weekday: weekday, Day: day, Month: month, Year: year}, nil
}

// ParseCompactDate parses the dd-mon tokens of the weekly calendars, e.g.
// "15-jul". The year is left at 0; the weekly parsers resolve it with their
// running-year counter.
func ParseCompactDate(token string) (DutyDate, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(token)), "-", 2)
	if len(parts) != 2 {
		return DutyDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DutyDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}

	month, ok := spanishMonthAbbrevs[strings.TrimSpace(parts[1])]
	if !ok {
		return DutyDate{}, fmt.Errorf("%w: mes desconocido en %q", ErrInvalidDate, token)
	}

	if day < 1 || day > daysInMonth(month, 0) {
		return DutyDate{}, fmt.Errorf("%w: día %d fuera de rango para el mes %d", ErrInvalidDate, day, month)
	}

	return DutyDate{Day: day, Month: month}, nil
}

func daysInMonth(month, year int) int {
	switch month {
	case 2:
		if year == 0 {
			// Year still unresolved, accept the leap-year maximum.
			return 29
		}
		return time.Date(year, 3, 0, 0, 0, 0, 0, time.Local).Day()
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// At anchors the date to a time of day in the local civil calendar. The date
// must carry a resolved year.
func (d DutyDate) At(hour, minute int) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, hour, minute, 0, 0, time.Local)
}

// SameCivilDay reports whether t falls on this calendar date.
func (d DutyDate) SameCivilDay(t time.Time) bool {
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// Before orders two resolved dates by (year, month, day).
func (d DutyDate) Before(other DutyDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d DutyDate) String() string {
	if d.Weekday != "" {
		return fmt.Sprintf("%s %02d-%02d-%04d", d.Weekday, d.Day, d.Month, d.Year)
	}
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}
