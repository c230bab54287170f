package parser

import (
	"strings"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/directory"
	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
)

// RuralParser reads the rural calendar: one date column plus one column per
// healthcare zone, each cell naming the town on duty. Every produced record
// covers every known zone, including La Granja, whose rotation the PDF never
// prints and is injected from the directory override.
type RuralParser struct {
	backend pdfscan.Backend
	cfg     pdfscan.Config
}

// scannedZones is the column order of the PDF; La Granja has no column.
var scannedZones = []string{
	domain.ZoneCantalejo,
	domain.ZoneRiaza,
	domain.ZoneCarbonero,
	domain.ZoneSepulveda,
	domain.ZoneNavafria,
	domain.ZoneVillacastin,
	domain.ZoneFuentiduena,
}

func NewRuralParser(backend pdfscan.Backend) *RuralParser {
	columns := make([]pdfscan.Column, 0, len(scannedZones)+1)
	columns = append(columns, pdfscan.Column{Name: "fecha", X: 30, Width: 95, Index: 0})
	for i, zoneID := range scannedZones {
		columns = append(columns, pdfscan.Column{
			Name:  zoneID,
			X:     130 + float64(i)*95,
			Width: 95,
			Index: i + 1,
		})
	}

	return &RuralParser{
		backend: backend,
		cfg: pdfscan.Config{
			Columns:      columns,
			Step:         8,
			RowMarker:    func(line string) bool { return longDatePattern.MatchString(line) },
			LinesPerCell: 1,
		},
	}
}

func (p *RuralParser) Parse(pages []pdfscan.Page, now time.Time) Result {
	location, _ := domain.LocationByID(domain.RegionRural)
	result := Result{Location: location}

	for pageNum, page := range pages {
		cells := p.backend.ScanColumns(page, p.cfg)
		dates := cells["fecha"]

		for i, dateCell := range dates {
			date, err := domain.ParseSpanishDate(dateCell, now)
			if err != nil {
				result.Skipped = append(result.Skipped, &RowError{
					LocationID: location.ID, Page: pageNum, Row: i, Err: err,
				})
				continue
			}

			record := domain.ZoneDutyRecord{
				Date:             date,
				PharmaciesByZone: make(map[string][]domain.Pharmacy, len(scannedZones)+1),
			}

			for _, zoneID := range scannedZones {
				record.PharmaciesByZone[zoneID] = p.parseZoneCell(&result, zoneID, cellAt(cells[zoneID], i), date)
			}
			record.PharmaciesByZone[domain.ZoneLaGranja] = annotateZone(domain.ZoneLaGranja, directory.LaGranjaPharmacies())

			result.ZoneRecords = append(result.ZoneRecords, record)
		}
	}

	domain.SortZoneRecords(result.ZoneRecords)
	return result
}

// parseZoneCell resolves one zone cell into its pharmacies. An empty cell is
// a valid "nobody on duty" entry, and a directory miss yields a placeholder
// plus a reportable event, never a failure.
func (p *RuralParser) parseZoneCell(result *Result, zoneID, cell string, date domain.DutyDate) []domain.Pharmacy {
	token := strings.TrimSpace(cell)
	if token == "" || token == "-" {
		return []domain.Pharmacy{}
	}

	if specific, ok := directory.ResolveAlternatingEntry(zoneID, date); ok {
		token = specific
	}

	pharmacies := []domain.Pharmacy{}
	for _, key := range directory.ExpandCombinedToken(token) {
		pharmacy, found := directory.Lookup(key, zoneID)
		if !found {
			result.Misses = append(result.Misses, DirectoryMiss{
				LocationID: domain.RegionRural, ZoneID: zoneID, RawToken: key,
			})
		}
		pharmacies = append(pharmacies, pharmacy)
	}

	return annotateZone(zoneID, pharmacies)
}

// annotateZone appends the zone's nominal opening hours to each pharmacy so
// callers can warn when a listed pharmacy is outside them.
func annotateZone(zoneID string, pharmacies []domain.Pharmacy) []domain.Pharmacy {
	label := domain.ZoneNominalSpan(zoneID).Label()
	for i := range pharmacies {
		if pharmacies[i].AdditionalInfo == "" {
			pharmacies[i].AdditionalInfo = label
		} else {
			pharmacies[i].AdditionalInfo += ", " + label
		}
	}
	return pharmacies
}

func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}
