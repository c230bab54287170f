package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/parser"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
	"github.com/farmaguardia/segovia/backend/internal/resolver"
)

type fakeSource struct {
	mu    sync.Mutex
	pages []pdfscan.Page
	err   error
	calls int
}

func (s *fakeSource) Fetch(ctx context.Context, locationID string) ([]pdfscan.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.pages, s.err
}

type fakeStore struct {
	mu        sync.Mutex
	schedules map[string]*StoredSchedule
	fresh     bool
	puts      int
}

func (s *fakeStore) Get(ctx context.Context, locationID string) (*StoredSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedules[locationID], nil
}

func (s *fakeStore) Put(ctx context.Context, locationID string, schedule *StoredSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedules == nil {
		s.schedules = make(map[string]*StoredSchedule)
	}
	s.schedules[locationID] = schedule
	s.puts++
	return nil
}

func (s *fakeStore) IsFresh(ctx context.Context, locationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fresh, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	acquired bool
	releases int
}

func (l *fakeLocker) TryLock(ctx context.Context, locationID string) (func(), bool, error) {
	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.releases++
	}
	return release, l.acquired, nil
}

type fakeReporter struct {
	mu      sync.Mutex
	misses  []parser.DirectoryMiss
	empties []string
}

func (r *fakeReporter) ReportMisses(ctx context.Context, misses []parser.DirectoryMiss) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses = append(r.misses, misses...)
}

func (r *fakeReporter) ReportEmptyDocument(ctx context.Context, locationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.empties = append(r.empties, locationID)
}

// weeklyPage parses into exactly one record under the Cuéllar layout.
func weeklyPage() []pdfscan.Page {
	return []pdfscan.Page{{Lines: []string{
		"14-jul",
		"FARMACIA LDA. EVA DE PABLOS",
		"921 140 212",
		"Calle Resina 5, Cuéllar",
	}}}
}

func newTestEngine(source *fakeSource, store *fakeStore, locker *fakeLocker, reporter *fakeReporter) *Engine {
	return New(source, store, locker, parser.NewRegistry(pdfscan.StreamBackend{}), reporter)
}

func cachedSchedule() *StoredSchedule {
	return &StoredSchedule{
		Records: []domain.DutyRecord{{
			Date: domain.DutyDate{Day: 15, Month: 7, Year: 2025},
			Shifts: map[domain.TimeSpan][]domain.Pharmacy{
				domain.SpanFullDay: {{Name: "Farmacia Cacheada"}},
			},
		}},
		FetchedAt: time.Now().Add(-time.Hour),
	}
}

func ruralSchedule() *StoredSchedule {
	return &StoredSchedule{
		ZoneRecords: []domain.ZoneDutyRecord{{
			Date: domain.DutyDate{Day: 15, Month: 7, Year: 2025},
			PharmaciesByZone: map[string][]domain.Pharmacy{
				domain.ZoneRiaza: {{Name: "Farmacia Rural"}},
			},
		}},
		FetchedAt: time.Now(),
	}
}

func TestScheduleServesFreshCache(t *testing.T) {
	source := &fakeSource{pages: weeklyPage()}
	store := &fakeStore{
		schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
		fresh:     true,
	}
	eng := newTestEngine(source, store, &fakeLocker{acquired: true}, &fakeReporter{})

	schedule, err := eng.Schedule(context.Background(), domain.RegionCuellar, false)

	assert.NoError(t, err)
	assert.Equal(t, "Farmacia Cacheada", schedule.Records[0].Shifts[domain.SpanFullDay][0].Name)
	assert.Zero(t, source.calls, "una caché fresca no debe tocar la fuente")
	assert.Zero(t, store.puts)
}

func TestScheduleRefreshesWhenStale(t *testing.T) {
	source := &fakeSource{pages: weeklyPage()}
	store := &fakeStore{
		schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
		fresh:     false,
	}
	locker := &fakeLocker{acquired: true}
	eng := newTestEngine(source, store, locker, &fakeReporter{})

	schedule, err := eng.Schedule(context.Background(), domain.RegionCuellar, false)

	assert.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 1, locker.releases)
	assert.Len(t, schedule.Records, 1)
	assert.Equal(t, "FARMACIA LDA. EVA DE PABLOS", schedule.Records[0].Shifts[domain.SpanFullDay][0].Name)
}

func TestScheduleForceRefreshBypassesCache(t *testing.T) {
	source := &fakeSource{pages: weeklyPage()}
	store := &fakeStore{
		schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
		fresh:     true,
	}
	eng := newTestEngine(source, store, &fakeLocker{acquired: true}, &fakeReporter{})

	_, err := eng.Schedule(context.Background(), domain.RegionCuellar, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, store.puts)
}

func TestScheduleStaleFallbacks(t *testing.T) {
	t.Run("refresco bloqueado con caché caducada sirve la caché", func(t *testing.T) {
		source := &fakeSource{pages: weeklyPage()}
		store := &fakeStore{
			schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
			fresh:     false,
		}
		eng := newTestEngine(source, store, &fakeLocker{acquired: false}, &fakeReporter{})

		schedule, err := eng.Schedule(context.Background(), domain.RegionCuellar, false)

		assert.NoError(t, err)
		assert.Equal(t, "Farmacia Cacheada", schedule.Records[0].Shifts[domain.SpanFullDay][0].Name)
	})

	t.Run("refresco bloqueado sin caché devuelve el error", func(t *testing.T) {
		eng := newTestEngine(&fakeSource{pages: weeklyPage()}, &fakeStore{}, &fakeLocker{acquired: false}, &fakeReporter{})

		_, err := eng.Schedule(context.Background(), domain.RegionCuellar, false)

		assert.ErrorIs(t, err, ErrRefreshInProgress)
	})

	t.Run("fuente caída con caché caducada sirve la caché", func(t *testing.T) {
		source := &fakeSource{err: fmt.Errorf("colegio no disponible")}
		store := &fakeStore{
			schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
			fresh:     false,
		}
		eng := newTestEngine(source, store, &fakeLocker{acquired: true}, &fakeReporter{})

		schedule, err := eng.Schedule(context.Background(), domain.RegionCuellar, false)

		assert.NoError(t, err)
		assert.Equal(t, "Farmacia Cacheada", schedule.Records[0].Shifts[domain.SpanFullDay][0].Name)
		assert.Zero(t, store.puts)
	})
}

func TestScheduleUnknownLocation(t *testing.T) {
	eng := newTestEngine(&fakeSource{}, &fakeStore{}, &fakeLocker{acquired: true}, &fakeReporter{})

	_, err := eng.Schedule(context.Background(), "atlantis", false)

	assert.ErrorIs(t, err, ErrUnknownLocation)
}

// A zone id resolves through its owning region's cached schedule.
func TestScheduleRoutesZonesToOwnerRegion(t *testing.T) {
	store := &fakeStore{
		schedules: map[string]*StoredSchedule{domain.RegionRural: ruralSchedule()},
		fresh:     true,
	}
	source := &fakeSource{}
	eng := newTestEngine(source, store, &fakeLocker{acquired: true}, &fakeReporter{})

	schedule, err := eng.Schedule(context.Background(), domain.ZoneRiaza, false)

	assert.NoError(t, err)
	assert.Len(t, schedule.ZoneRecords, 1)
	assert.Zero(t, source.calls)
}

func TestRefreshReportsEmptyDocument(t *testing.T) {
	reporter := &fakeReporter{}
	store := &fakeStore{}
	eng := newTestEngine(&fakeSource{}, store, &fakeLocker{acquired: true}, reporter)

	schedule, err := eng.Schedule(context.Background(), domain.RegionCuellar, false)

	assert.NoError(t, err)
	assert.Empty(t, schedule.Records)
	assert.Equal(t, []string{domain.RegionCuellar}, reporter.empties)
	assert.Zero(t, store.puts, "un documento vacío no se cachea, la siguiente petición reintenta")
}

func TestResolveCurrent(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)

	t.Run("región", func(t *testing.T) {
		store := &fakeStore{
			schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
			fresh:     true,
		}
		eng := newTestEngine(&fakeSource{}, store, &fakeLocker{acquired: true}, &fakeReporter{})

		res, err := eng.ResolveCurrent(context.Background(), domain.RegionCuellar, now, false)

		assert.NoError(t, err)
		assert.Equal(t, resolver.StatusFound, res.Status)
		assert.Equal(t, "Farmacia Cacheada", res.Pharmacies[0].Name)
	})

	t.Run("zona", func(t *testing.T) {
		store := &fakeStore{
			schedules: map[string]*StoredSchedule{domain.RegionRural: ruralSchedule()},
			fresh:     true,
		}
		eng := newTestEngine(&fakeSource{}, store, &fakeLocker{acquired: true}, &fakeReporter{})

		res, err := eng.ResolveCurrent(context.Background(), domain.ZoneRiaza, now, false)

		assert.NoError(t, err)
		assert.Equal(t, resolver.StatusFound, res.Status)
		assert.Equal(t, "Farmacia Rural", res.Pharmacies[0].Name)
	})

	// The rural region's data lives in ZoneRecords; a region-level query
	// still finds it.
	t.Run("región rural agrega sus zonas", func(t *testing.T) {
		store := &fakeStore{
			schedules: map[string]*StoredSchedule{domain.RegionRural: ruralSchedule()},
			fresh:     true,
		}
		eng := newTestEngine(&fakeSource{}, store, &fakeLocker{acquired: true}, &fakeReporter{})

		res, err := eng.ResolveCurrent(context.Background(), domain.RegionRural, now, false)

		assert.NoError(t, err)
		assert.Equal(t, resolver.StatusFound, res.Status)
		assert.Equal(t, "Farmacia Rural", res.Pharmacies[0].Name)
	})
}

func TestResolveForDate(t *testing.T) {
	store := &fakeStore{
		schedules: map[string]*StoredSchedule{domain.RegionCuellar: cachedSchedule()},
		fresh:     true,
	}
	eng := newTestEngine(&fakeSource{}, store, &fakeLocker{acquired: true}, &fakeReporter{})

	record, found, err := eng.ResolveForDate(context.Background(), domain.RegionCuellar, domain.DutyDate{Day: 15, Month: 7, Year: 2025})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 15, record.Date.Day)

	_, found, err = eng.ResolveForDate(context.Background(), domain.RegionCuellar, domain.DutyDate{Day: 20, Month: 7, Year: 2025})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestResolveForDateRuralRegion(t *testing.T) {
	store := &fakeStore{
		schedules: map[string]*StoredSchedule{domain.RegionRural: ruralSchedule()},
		fresh:     true,
	}
	eng := newTestEngine(&fakeSource{}, store, &fakeLocker{acquired: true}, &fakeReporter{})

	record, found, err := eng.ResolveForDate(context.Background(), domain.RegionRural, domain.DutyDate{Day: 15, Month: 7, Year: 2025})

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Farmacia Rural", record.Shifts[domain.SpanFullDay][0].Name)
}

func TestRefreshAll(t *testing.T) {
	source := &fakeSource{pages: weeklyPage()}
	store := &fakeStore{}
	eng := newTestEngine(source, store, &fakeLocker{acquired: true}, &fakeReporter{})

	failures := eng.RefreshAll(context.Background())

	assert.Len(t, failures, len(domain.Regions()))
	for regionID, err := range failures {
		assert.NoError(t, err, regionID)
	}
	// The fixture only parses under the two weekly layouts; the other two
	// regions come back empty and stay uncached.
	assert.Equal(t, 2, store.puts)
}
