// Package parser turns scanned PDF calendar pages into ordered duty records,
// one layout policy per region family. Parsers are pure: pages in, records
// out, defects collected instead of raised.
package parser

import (
	"fmt"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
)

var (
	ErrMissingMarker = fmt.Errorf("la línea de nombre no contiene marcador de farmacia")
	ErrRaggedRow     = fmt.Errorf("fila incompleta en el escaneo de columnas")
	ErrEmptyBlock    = fmt.Errorf("bloque de farmacia vacío")
)

// RowError records a skipped row. Local defects never abort a document parse.
type RowError struct {
	LocationID string
	Page       int
	Row        int
	Err        error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: página %d fila %d: %v", e.LocationID, e.Page, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// DirectoryMiss is a raw token with no directory entry; a placeholder record
// was synthesized and parsing went on.
type DirectoryMiss struct {
	LocationID string `json:"locationID"`
	ZoneID     string `json:"zoneID,omitempty"`
	RawToken   string `json:"rawToken"`
}

// Result is one region's parse outcome. Records carries the per-shift
// schedules; ZoneRecords is populated instead for the rural region. Skipped
// and Misses document recoverable defects for logging and reporting.
type Result struct {
	Location    domain.DutyLocation
	Records     []domain.DutyRecord
	ZoneRecords []domain.ZoneDutyRecord
	Skipped     []*RowError
	Misses      []DirectoryMiss
}

// Empty reports whether the whole document yielded nothing usable. The caller
// decides whether to retry; it is an empty result, not a failure.
func (r Result) Empty() bool {
	return len(r.Records) == 0 && len(r.ZoneRecords) == 0
}

// Parser is one region-family layout policy.
type Parser interface {
	Parse(pages []pdfscan.Page, now time.Time) Result
}

// Registry maps location ids to parser variants. The scan backend is injected
// once and shared; swapping backends is a construction decision, never a
// parser rewrite.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry(backend pdfscan.Backend) *Registry {
	cuellar, _ := domain.LocationByID(domain.RegionCuellar)
	espinar, _ := domain.LocationByID(domain.RegionEspinar)

	return &Registry{parsers: map[string]Parser{
		domain.RegionCapital: NewCapitalParser(backend),
		domain.RegionCuellar: NewWeeklyParser(backend, cuellar),
		domain.RegionEspinar: NewWeeklyParser(backend, espinar),
		domain.RegionRural:   NewRuralParser(backend),
	}}
}

func (r *Registry) ForLocation(locationID string) (Parser, bool) {
	p, ok := r.parsers[locationID]
	return p, ok
}
