package parser

import (
	"regexp"
	"strings"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

// A pharmacy name line must carry one of these markers; anything else is a
// stray table fragment, not an entry.
var markerKeywords = []string{"FARMACIA", "LDO.", "LDA."}

var phonePattern = regexp.MustCompile(`\d{3}[\s.]?\d{2,3}[\s.]?\d{2,3}`)

func hasPharmacyMarker(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range markerKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// parsePharmacyBlock reads a capital-layout cell: a name line with a pharmacy
// marker, an address line, then a line holding a phone number and optional
// free text.
func parsePharmacyBlock(block string) (domain.Pharmacy, error) {
	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return domain.Pharmacy{}, ErrEmptyBlock
	}
	if !hasPharmacyMarker(lines[0]) {
		return domain.Pharmacy{}, ErrMissingMarker
	}

	pharmacy := domain.Pharmacy{
		Name:    lines[0],
		Address: domain.AddressUnavailable,
		Phone:   domain.PhoneUnavailable,
	}
	if len(lines) > 1 {
		pharmacy.Address = lines[1]
	}
	if len(lines) > 2 {
		phone := phonePattern.FindString(lines[2])
		if phone != "" {
			pharmacy.Phone = phone
			if extra := strings.TrimSpace(strings.Replace(lines[2], phone, "", 1)); extra != "" {
				pharmacy.AdditionalInfo = extra
			}
		} else {
			pharmacy.AdditionalInfo = lines[2]
		}
	}

	return pharmacy, nil
}

// parseWeeklyGroup reads one weekly-layout entry. The three lines arrive
// bottom-to-top in the PDF, so top-down they are name, additional info,
// address.
func parseWeeklyGroup(lines []string) (domain.Pharmacy, error) {
	if len(lines) != 3 || !hasPharmacyMarker(lines[0]) {
		return parseWeeklyFreeText(lines)
	}

	pharmacy := domain.Pharmacy{
		Name:           lines[0],
		AdditionalInfo: lines[1],
		Address:        lines[2],
		Phone:          domain.PhoneUnavailable,
	}
	if phone := phonePattern.FindString(lines[1]); phone != "" {
		pharmacy.Phone = phone
	}
	return pharmacy, nil
}

// parseWeeklyFreeText is the fallback when the three-line grouping assumption
// does not hold: the marker line becomes the name and everything else the
// address. No marker anywhere rejects the group.
func parseWeeklyFreeText(lines []string) (domain.Pharmacy, error) {
	nameIdx := -1
	for i, line := range lines {
		if hasPharmacyMarker(line) {
			nameIdx = i
			break
		}
	}
	if nameIdx == -1 {
		return domain.Pharmacy{}, ErrMissingMarker
	}

	rest := make([]string, 0, len(lines)-1)
	rest = append(rest, lines[:nameIdx]...)
	rest = append(rest, lines[nameIdx+1:]...)

	pharmacy := domain.Pharmacy{
		Name:    lines[nameIdx],
		Address: domain.AddressUnavailable,
		Phone:   domain.PhoneUnavailable,
	}
	if len(rest) > 0 {
		pharmacy.Address = strings.Join(rest, ", ")
	}
	if phone := phonePattern.FindString(pharmacy.Address); phone != "" {
		pharmacy.Phone = phone
	}
	return pharmacy, nil
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, raw := range strings.Split(block, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
