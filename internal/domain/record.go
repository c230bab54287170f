package domain

import "sort"

// DutyRecord is one calendar date of a region's duty schedule. Shifts maps
// each span active that day to its pharmacies; an empty (non-nil) list means
// "nobody on duty for that shift", which is distinct from the span not
// appearing at all.
type DutyRecord struct {
	Date   DutyDate               `json:"date"`
	Shifts map[TimeSpan][]Pharmacy `json:"shifts"`
}

// ZoneDutyRecord is one calendar date of the rural region. PharmaciesByZone
// always carries every known zone id as a key, including the hand-coded zone;
// zones with an empty cell that date map to an empty list.
type ZoneDutyRecord struct {
	Date             DutyDate              `json:"date"`
	PharmaciesByZone map[string][]Pharmacy `json:"pharmaciesByZone"`
}

// SortRecords orders records ascending by (year, month, day), keeping the
// original order of equal dates.
func SortRecords(records []DutyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// SortZoneRecords is SortRecords for the rural record shape.
func SortZoneRecords(records []ZoneDutyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
