package parser

import (
	"regexp"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
)

// CapitalParser reads the capital calendar: three columns holding the date,
// the day-shift pharmacy block and the night-shift pharmacy block, one
// pharmacy per block per date.
type CapitalParser struct {
	backend pdfscan.Backend
	cfg     pdfscan.Config
}

var longDatePattern = regexp.MustCompile(`(?i)^\D*\d{1,2}\s*de\s*[a-záéíóúñ]+`)

func NewCapitalParser(backend pdfscan.Backend) *CapitalParser {
	return &CapitalParser{
		backend: backend,
		cfg: pdfscan.Config{
			Columns: []pdfscan.Column{
				{Name: "fecha", X: 40, Width: 150, Index: 0},
				{Name: "diurno", X: 200, Width: 180, Index: 1},
				{Name: "nocturno", X: 390, Width: 180, Index: 2},
			},
			Step:         8,
			RowMarker:    func(line string) bool { return longDatePattern.MatchString(line) },
			LinesPerCell: 3,
		},
	}
}

func (p *CapitalParser) Parse(pages []pdfscan.Page, now time.Time) Result {
	location, _ := domain.LocationByID(domain.RegionCapital)
	result := Result{Location: location}

	for pageNum, page := range pages {
		cells := p.backend.ScanColumns(page, p.cfg)
		dates := cells["fecha"]
		dayBlocks := cells["diurno"]
		nightBlocks := cells["nocturno"]

		for i, dateCell := range dates {
			// The three arrays can be ragged after a scan miss; a row
			// missing from any of them is discarded, never fatal.
			if i >= len(dayBlocks) || i >= len(nightBlocks) {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: location.ID, Page: pageNum, Row: i, Err: ErrRaggedRow,
				})
				continue
			}

			date, err := domain.ParseSpanishDate(dateCell, now)
			if err != nil {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: location.ID, Page: pageNum, Row: i, Err: err,
				})
				continue
			}

			day, err := parsePharmacyBlock(dayBlocks[i])
			if err != nil {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: location.ID, Page: pageNum, Row: i, Err: err,
				})
				continue
			}

			night, err := parsePharmacyBlock(nightBlocks[i])
			if err != nil {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: location.ID, Page: pageNum, Row: i, Err: err,
				})
				continue
			}

			result.Records = append(result.Records, domain.DutyRecord{
				Date: date,
				Shifts: map[domain.TimeSpan][]domain.Pharmacy{
					domain.SpanCapitalDay:   {day},
					domain.SpanCapitalNight: {night},
				},
			})
		}
	}

	domain.SortRecords(result.Records)
	return result
}
