package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRecords(t *testing.T) {
	records := []DutyRecord{
		{Date: DutyDate{Day: 2, Month: 1, Year: 2026}},
		{Date: DutyDate{Day: 30, Month: 12, Year: 2025}},
		{Date: DutyDate{Day: 31, Month: 12, Year: 2025}},
	}

	SortRecords(records)

	assert.Equal(t, DutyDate{Day: 30, Month: 12, Year: 2025}, records[0].Date)
	assert.Equal(t, DutyDate{Day: 31, Month: 12, Year: 2025}, records[1].Date)
	assert.Equal(t, DutyDate{Day: 2, Month: 1, Year: 2026}, records[2].Date)
}

func TestZoneCatalog(t *testing.T) {
	assert.Len(t, Regions(), 4)
	assert.Len(t, Zones(), 8)

	// Every zone belongs to the rural region.
	for _, zone := range Zones() {
		assert.False(t, zone.IsRegion())
		assert.Equal(t, RegionRural, zone.OwnerRegionID)
	}

	riaza, ok := LocationByID(ZoneRiaza)
	assert.True(t, ok)
	assert.Equal(t, RegionRural, riaza.OwnerRegionID)

	_, ok = LocationByID("atlantis")
	assert.False(t, ok)
}

func TestZoneNominalSpan(t *testing.T) {
	assert.Equal(t, SpanFullDay, ZoneNominalSpan(ZoneRiaza))
	assert.Equal(t, SpanFullDay, ZoneNominalSpan(ZoneLaGranja))
	assert.Equal(t, SpanRuralExtended, ZoneNominalSpan(ZoneSepulveda))
	assert.Equal(t, SpanRuralStandard, ZoneNominalSpan(ZoneVillacastin))
}
