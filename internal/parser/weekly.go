package parser

import (
	"regexp"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
)

// WeeklyParser reads the two weekly small-town calendars: a compact dd-mon
// date column next to one combined block column. The PDF never states the
// year; a running counter starts at the current year and bumps every time a
// January 1st row is crossed while scanning top to bottom, which is why rows
// must be processed in document order.
type WeeklyParser struct {
	backend  pdfscan.Backend
	location domain.DutyLocation
	cfg      pdfscan.Config
}

var compactDatePattern = regexp.MustCompile(`(?i)^\d{1,2}-[a-z]{3,4}$`)

func NewWeeklyParser(backend pdfscan.Backend, location domain.DutyLocation) *WeeklyParser {
	return &WeeklyParser{
		backend:  backend,
		location: location,
		cfg: pdfscan.Config{
			Columns: []pdfscan.Column{
				{Name: "fecha", X: 40, Width: 90, Index: 0},
				{Name: "bloque", X: 140, Width: 400, Index: 1},
			},
			Step:      8,
			RowMarker: func(line string) bool { return compactDatePattern.MatchString(line) },
		},
	}
}

func (p *WeeklyParser) Parse(pages []pdfscan.Page, now time.Time) Result {
	result := Result{Location: p.location}
	year := now.Year()

	for pageNum, page := range pages {
		cells := p.backend.ScanColumns(page, p.cfg)
		dates := cells["fecha"]
		blocks := cells["bloque"]

		for i, dateCell := range dates {
			date, err := domain.ParseCompactDate(dateCell)
			if err != nil {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: p.location.ID, Page: pageNum, Row: i, Err: err,
				})
				continue
			}

			if date.Day == 1 && date.Month == 1 {
				year++
			}
			date.Year = year

			if i >= len(blocks) {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: p.location.ID, Page: pageNum, Row: i, Err: ErrRaggedRow,
				})
				continue
			}

			pharmacies, err := p.parseBlock(blocks[i])
			if err != nil {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: p.location.ID, Page: pageNum, Row: i, Err: err,
				})
				continue
			}

			result.Records = append(result.Records, domain.DutyRecord{
				Date: date,
				Shifts: map[domain.TimeSpan][]domain.Pharmacy{
					domain.SpanFullDay: pharmacies,
				},
			})
		}
	}

	domain.SortRecords(result.Records)
	return result
}

// parseBlock splits a week's cell into three-line entry groups, falling back
// to one free-text entry when the line count does not divide evenly.
func (p *WeeklyParser) parseBlock(block string) ([]domain.Pharmacy, error) {
	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return []domain.Pharmacy{}, nil
	}

	if len(lines)%3 != 0 {
		pharmacy, err := parseWeeklyFreeText(lines)
		if err != nil {
			return nil, err
		}
		return []domain.Pharmacy{pharmacy}, nil
	}

	pharmacies := make([]domain.Pharmacy, 0, len(lines)/3)
	for start := 0; start < len(lines); start += 3 {
		pharmacy, err := parseWeeklyGroup(lines[start : start+3])
		if err != nil {
			return nil, err
		}
		pharmacies = append(pharmacies, pharmacy)
	}
	return pharmacies, nil
}
