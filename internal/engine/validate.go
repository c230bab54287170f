package engine

import (
	"fmt"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

// validateSchedule sanity-checks a freshly parsed schedule before it replaces
// the cached one: resolved years, ascending dates, and for the rural region a
// complete zone map on every record.
func validateSchedule(regionID string, schedule *StoredSchedule) error {
	var prev *domain.DutyDate

	checkDate := func(date domain.DutyDate) error {
		if date.Year == 0 {
			return fmt.Errorf("%s: fecha sin año resuelto: %s", regionID, date)
		}
		if prev != nil && date.Before(*prev) {
			return fmt.Errorf("%s: fechas desordenadas: %s tras %s", regionID, date, prev)
		}
		d := date
		prev = &d
		return nil
	}

	for _, rec := range schedule.Records {
		if err := checkDate(rec.Date); err != nil {
			return err
		}
	}

	zoneIDs := domain.ZoneIDs()
	for _, rec := range schedule.ZoneRecords {
		if err := checkDate(rec.Date); err != nil {
			return err
		}
		for _, zoneID := range zoneIDs {
			if _, ok := rec.PharmaciesByZone[zoneID]; !ok {
				return fmt.Errorf("%s: falta la zona %s en la fecha %s", regionID, zoneID, rec.Date)
			}
		}
	}

	return nil
}
