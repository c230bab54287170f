package domain

// Sentinels for directory misses; the UI shows these literally.
const (
	AddressUnavailable = "dirección no disponible"
	PhoneUnavailable   = "teléfono no disponible"
)

type Pharmacy struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// PlaceholderPharmacy stands in for a raw PDF token with no directory entry.
// A miss is reportable data quality, never a parse failure.
func PlaceholderPharmacy(rawToken string) Pharmacy {
	return Pharmacy{
		Name:    rawToken,
		Address: AddressUnavailable,
		Phone:   PhoneUnavailable,
	}
}
