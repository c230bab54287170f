// Package engine orchestrates the schedule resolution pipeline: document
// source to layout parser to resolver, with an explicit cache-consult
// protocol against the schedule store. The engine holds no cache of its own;
// every collaborator is injected at construction.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/parser"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
	"github.com/farmaguardia/segovia/backend/internal/resolver"
)

var (
	ErrUnknownLocation   = fmt.Errorf("localización desconocida")
	ErrRefreshInProgress = fmt.Errorf("ya hay una actualización en curso")
)

// Source provides the scanned pages of one region's PDF. A download or
// extraction failure surfaces as an empty page list plus the error; pages
// that did extract are still usable.
type Source interface {
	Fetch(ctx context.Context, locationID string) ([]pdfscan.Page, error)
}

// StoredSchedule is the unit the store caches: the whole record list for one
// location, replaced atomically on refresh. Records and ZoneRecords are
// mutually exclusive (ZoneRecords for the rural region).
type StoredSchedule struct {
	Records     []domain.DutyRecord     `json:"records,omitempty"`
	ZoneRecords []domain.ZoneDutyRecord `json:"zoneRecords,omitempty"`
	FetchedAt   time.Time               `json:"fetchedAt"`
}

// Store is the schedule cache, keyed by location id. Get returns nil when
// nothing is cached.
type Store interface {
	Get(ctx context.Context, locationID string) (*StoredSchedule, error)
	Put(ctx context.Context, locationID string, schedule *StoredSchedule) error
	IsFresh(ctx context.Context, locationID string) (bool, error)
}

// Locker serializes refreshes per location. Release must always be called
// when acquired.
type Locker interface {
	TryLock(ctx context.Context, locationID string) (release func(), acquired bool, err error)
}

// Reporter receives recoverable data-quality events. Reporting never fails a
// parse; implementations log their own errors.
type Reporter interface {
	ReportMisses(ctx context.Context, misses []parser.DirectoryMiss)
	ReportEmptyDocument(ctx context.Context, locationID string)
}

type Engine struct {
	source   Source
	store    Store
	locker   Locker
	registry *parser.Registry
	reporter Reporter
}

func New(source Source, store Store, locker Locker, registry *parser.Registry, reporter Reporter) *Engine {
	return &Engine{
		source:   source,
		store:    store,
		locker:   locker,
		registry: registry,
		reporter: reporter,
	}
}

// Schedule returns the cached record list for a location, refreshing it from
// the document source when stale, absent, or forced. Zones resolve through
// their owning region's schedule.
func (e *Engine) Schedule(ctx context.Context, locationID string, forceRefresh bool) (*StoredSchedule, error) {
	location, ok := domain.LocationByID(locationID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, locationID)
	}
	regionID := location.OwnerRegionID

	var cached *StoredSchedule
	if !forceRefresh {
		var err error
		cached, err = e.store.Get(ctx, regionID)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			fresh, err := e.store.IsFresh(ctx, regionID)
			if err != nil {
				return nil, err
			}
			if fresh {
				return cached, nil
			}
		}
	}

	refreshed, err := e.refresh(ctx, regionID)
	if err != nil {
		// A stale schedule beats no schedule when the refresh lost the
		// lock race or the source is down.
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}
	return refreshed, nil
}

func (e *Engine) refresh(ctx context.Context, regionID string) (*StoredSchedule, error) {
	release, acquired, err := e.locker.TryLock(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrRefreshInProgress
	}
	defer release()

	p, ok := e.registry.ForLocation(regionID)
	if !ok {
		return nil, fmt.Errorf("%w: sin parser para %s", ErrUnknownLocation, regionID)
	}

	pages, err := e.source.Fetch(ctx, regionID)
	if err != nil {
		return nil, err
	}

	result := p.Parse(pages, time.Now())

	if len(result.Misses) > 0 {
		e.reporter.ReportMisses(ctx, result.Misses)
	}
	if result.Empty() {
		e.reporter.ReportEmptyDocument(ctx, regionID)
	}

	schedule := &StoredSchedule{
		Records:     result.Records,
		ZoneRecords: result.ZoneRecords,
		FetchedAt:   time.Now(),
	}
	if err := validateSchedule(regionID, schedule); err != nil {
		return nil, err
	}

	// An empty parse is served but never cached: a transiently blank PDF
	// must not block retries until the cache expires.
	if result.Empty() {
		return schedule, nil
	}

	if err := e.store.Put(ctx, regionID, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ResolveCurrent answers the on-duty question for a region or zone at now.
func (e *Engine) ResolveCurrent(ctx context.Context, locationID string, now time.Time, forceRefresh bool) (resolver.Resolution, error) {
	location, ok := domain.LocationByID(locationID)
	if !ok {
		return resolver.Resolution{}, fmt.Errorf("%w: %s", ErrUnknownLocation, locationID)
	}

	schedule, err := e.Schedule(ctx, locationID, forceRefresh)
	if err != nil {
		return resolver.Resolution{}, err
	}

	if !location.IsRegion() {
		return resolver.ResolveZone(location.ID, schedule.ZoneRecords, now), nil
	}
	return resolver.ResolveCurrent(regionRecords(schedule), now), nil
}

// regionRecords answers region-level queries for either schedule shape: the
// rural region keeps its data in ZoneRecords and gets flattened, everyone
// else resolves over Records directly.
func regionRecords(schedule *StoredSchedule) []domain.DutyRecord {
	if len(schedule.ZoneRecords) > 0 {
		return resolver.FlattenZones(schedule.ZoneRecords)
	}
	return schedule.Records
}

// ResolveForDate returns the record of one calendar date, for browsing.
func (e *Engine) ResolveForDate(ctx context.Context, locationID string, date domain.DutyDate) (domain.DutyRecord, bool, error) {
	schedule, err := e.Schedule(ctx, locationID, false)
	if err != nil {
		return domain.DutyRecord{}, false, err
	}
	record, found := resolver.ResolveForDate(regionRecords(schedule), date)
	return record, found, nil
}

// RefreshAll refreshes every region concurrently; regions are independent
// documents, so no ordering applies between them. The per-region errors come
// back keyed by region id.
func (e *Engine) RefreshAll(ctx context.Context) map[string]error {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		errors = make(map[string]error)
	)

	for _, region := range domain.Regions() {
		wg.Add(1)
		go func(regionID string) {
			defer wg.Done()
			_, err := e.Schedule(ctx, regionID, true)
			mu.Lock()
			errors[regionID] = err
			mu.Unlock()
		}(region.ID)
	}

	wg.Wait()
	return errors
}
