package domain

// DutyLocation identifies a region (its own PDF calendar) or a healthcare zone
// (ZBS) inside the rural region. A region owns itself; a zone points back to
// its owning region. The ID doubles as parser-routing and cache key.
type DutyLocation struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	Icon          string `json:"icon"`
	Notes         string `json:"notes,omitempty"`
	OwnerRegionID string `json:"ownerRegionID"`
}

func (l DutyLocation) IsRegion() bool {
	return l.OwnerRegionID == l.ID
}

const (
	RegionCapital = "segovia-capital"
	RegionCuellar = "cuellar"
	RegionEspinar = "el-espinar"
	RegionRural   = "segovia-rural"

	ZoneCantalejo   = "zbs-cantalejo"
	ZoneRiaza       = "zbs-riaza"
	ZoneCarbonero   = "zbs-carbonero"
	ZoneSepulveda   = "zbs-sepulveda"
	ZoneNavafria    = "zbs-navafria"
	ZoneVillacastin = "zbs-villacastin"
	ZoneFuentiduena = "zbs-fuentiduena"
	ZoneLaGranja    = "zbs-la-granja"
)

var regions = []DutyLocation{
	{ID: RegionCapital, DisplayName: "Segovia Capital", Icon: "aqueduct", OwnerRegionID: RegionCapital},
	{ID: RegionCuellar, DisplayName: "Cuéllar", Icon: "castle", OwnerRegionID: RegionCuellar},
	{ID: RegionEspinar, DisplayName: "El Espinar / San Rafael", Icon: "mountain", OwnerRegionID: RegionEspinar},
	{ID: RegionRural, DisplayName: "Segovia Rural", Icon: "field", Notes: "guardias por zona básica de salud", OwnerRegionID: RegionRural},
}

var zones = []DutyLocation{
	{ID: ZoneCantalejo, DisplayName: "ZBS Cantalejo", Icon: "field", Notes: "24 horas", OwnerRegionID: RegionRural},
	{ID: ZoneRiaza, DisplayName: "ZBS Riaza", Icon: "field", Notes: "24 horas", OwnerRegionID: RegionRural},
	{ID: ZoneCarbonero, DisplayName: "ZBS Carbonero el Mayor", Icon: "field", Notes: "10:00-22:00", OwnerRegionID: RegionRural},
	{ID: ZoneSepulveda, DisplayName: "ZBS Sepúlveda", Icon: "field", Notes: "10:00-22:00", OwnerRegionID: RegionRural},
	{ID: ZoneNavafria, DisplayName: "ZBS Navafría", Icon: "field", Notes: "10:00-20:00", OwnerRegionID: RegionRural},
	{ID: ZoneVillacastin, DisplayName: "ZBS Villacastín", Icon: "field", Notes: "10:00-20:00", OwnerRegionID: RegionRural},
	{ID: ZoneFuentiduena, DisplayName: "ZBS Fuentidueña", Icon: "field", Notes: "10:00-20:00", OwnerRegionID: RegionRural},
	{ID: ZoneLaGranja, DisplayName: "ZBS La Granja", Icon: "field", Notes: "24 horas, no figura en el PDF", OwnerRegionID: RegionRural},
}

// Regions returns the four top-level regions, each with its own calendar PDF.
func Regions() []DutyLocation {
	out := make([]DutyLocation, len(regions))
	copy(out, regions)
	return out
}

// Zones returns the healthcare zones of the rural region, in column order.
func Zones() []DutyLocation {
	out := make([]DutyLocation, len(zones))
	copy(out, zones)
	return out
}

// ZoneIDs returns every known zone id, including the hand-coded one.
func ZoneIDs() []string {
	ids := make([]string, len(zones))
	for i, z := range zones {
		ids[i] = z.ID
	}
	return ids
}

// ZoneNominalSpan is the nominal opening hours of a zone's duty pharmacy. It
// annotates results only; a pharmacy stays in the active set outside these
// hours, with a warning.
func ZoneNominalSpan(zoneID string) TimeSpan {
	switch zoneID {
	case ZoneCantalejo, ZoneRiaza, ZoneLaGranja:
		return SpanFullDay
	case ZoneCarbonero, ZoneSepulveda:
		return SpanRuralExtended
	default:
		return SpanRuralStandard
	}
}

func LocationByID(id string) (DutyLocation, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r, true
		}
	}
	for _, z := range zones {
		if z.ID == id {
			return z, true
		}
	}
	return DutyLocation{}, false
}
