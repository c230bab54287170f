// Package directory resolves the raw place tokens of the source PDFs into
// full pharmacy records, including the hand-maintained overrides for
// localities the PDFs omit or under-specify.
package directory

import (
	"strings"
	"time"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

// CombinedTokenSeparator joins two town names sharing one PDF cell. The only
// documented case is PRADENA-ARCONES.
const combinedTokenSeparator = "-"

// alternationReference is the Monday the Navafría rotation is counted from.
var alternationReference = time.Date(2023, 1, 2, 0, 0, 0, 0, time.Local)

// Lookup resolves a raw PDF token, preferring the zone-specific table when a
// zone id is given. On a miss it returns a placeholder record built from the
// token and found=false so the caller can report the gap; a miss never fails
// a parse.
func Lookup(rawToken, zoneID string) (pharmacy domain.Pharmacy, found bool) {
	token := normalizeToken(rawToken)

	if zoneID != "" {
		if byToken, ok := pharmaciesByZoneToken[zoneID]; ok {
			if p, ok := byToken[token]; ok {
				return p, true
			}
		}
	}

	if p, ok := pharmaciesByToken[token]; ok {
		return p, true
	}

	return domain.PlaceholderPharmacy(strings.TrimSpace(rawToken)), false
}

// ExpandCombinedToken splits a combined cell into its individual lookup keys.
// A token is only treated as combined when both halves are known directory
// entries; hyphenated town names that are a single entry pass through intact.
func ExpandCombinedToken(rawToken string) []string {
	token := normalizeToken(rawToken)

	if _, ok := pharmaciesByToken[token]; ok {
		return []string{token}
	}

	parts := strings.SplitN(token, combinedTokenSeparator, 2)
	if len(parts) != 2 {
		return []string{token}
	}

	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])
	_, leftOK := pharmaciesByToken[left]
	_, rightOK := pharmaciesByToken[right]
	if leftOK && rightOK {
		return []string{left, right}
	}

	return []string{token}
}

// ResolveAlternatingEntry picks the pharmacy actually on duty for a zone whose
// PDF cell only names the zone. Whole weeks elapsed since the fixed reference
// Monday decide the even/odd alternation.
func ResolveAlternatingEntry(zoneID string, date domain.DutyDate) (string, bool) {
	if zoneID != domain.ZoneNavafria {
		return "", false
	}

	// Floor division: every day before the reference Monday belongs to a
	// negative week, not to week zero.
	days := int(date.At(0, 0).Sub(alternationReference).Hours() / 24)
	weeks := days / 7
	if days < 0 && days%7 != 0 {
		weeks--
	}
	return navafriaRotation[((weeks%2)+2)%2], true
}

// LaGranjaPharmacies returns the fixed override for the zone missing from the
// PDF.
func LaGranjaPharmacies() []domain.Pharmacy {
	out := make([]domain.Pharmacy, len(laGranjaPharmacies))
	copy(out, laGranjaPharmacies)
	return out
}

func normalizeToken(raw string) string {
	token := strings.ToUpper(strings.TrimSpace(raw))
	token = strings.Join(strings.Fields(token), " ")
	return stripAccents(token)
}

var accentReplacer = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U",
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

func stripAccents(s string) string {
	return accentReplacer.Replace(s)
}
