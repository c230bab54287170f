package directory

import "github.com/farmaguardia/segovia/backend/internal/domain"

// Hand-maintained table mapping raw PDF tokens to pharmacy records. Keys are
// the upper-cased place names exactly as the rural calendar prints them.
// Keep this in sync with the association's directory when a new PDF renames a
// cell.
var pharmaciesByToken = map[string]domain.Pharmacy{
	"CANTALEJO": {
		Name:    "Farmacia Lda. M. Pilar Herrero",
		Address: "Calle Frontón 12, Cantalejo",
		Phone:   "921 520 034",
	},
	"FUENTERREBOLLO": {
		Name:    "Farmacia Ldo. J. Antonio Sanz",
		Address: "Plaza Mayor 3, Fuenterrebollo",
		Phone:   "921 123 456",
	},
	"SEBULCOR": {
		Name:    "Farmacia Lda. Ana Casado",
		Address: "Calle Real 21, Sebúlcor",
		Phone:   "921 521 187",
	},
	"RIAZA": {
		Name:    "Farmacia Lda. Carmen Plaza",
		Address: "Plaza Mayor 14, Riaza",
		Phone:   "921 550 057",
	},
	"AYLLON": {
		Name:    "Farmacia Ldo. Pedro Esteban",
		Address: "Calle Marqués de Villena 2, Ayllón",
		Phone:   "921 553 022",
	},
	"CEREZO DE ABAJO": {
		Name:    "Farmacia Lda. Rosa Municio",
		Address: "Carretera N-110 km 112, Cerezo de Abajo",
		Phone:   "921 557 110",
	},
	"CARBONERO EL MAYOR": {
		Name:    "Farmacia Lda. Teresa Llorente",
		Address: "Plaza de España 9, Carbonero el Mayor",
		Phone:   "921 560 241",
	},
	"ESCALONA DEL PRADO": {
		Name:    "Farmacia Ldo. Luis Galindo",
		Address: "Calle Iglesia 5, Escalona del Prado",
		Phone:   "921 570 361",
	},
	"NAVALMANZANO": {
		Name:    "Farmacia Lda. Beatriz Arranz",
		Address: "Calle Carretera 44, Navalmanzano",
		Phone:   "921 575 038",
	},
	"SEPULVEDA": {
		Name:    "Farmacia Lda. Marta Barrio",
		Address: "Plaza del Trigo 1, Sepúlveda",
		Phone:   "921 540 018",
	},
	"PRADENA": {
		Name:    "Farmacia Ldo. Andrés Cerezo",
		Address: "Calle Mayor 30, Prádena",
		Phone:   "921 507 076",
	},
	"ARCONES": {
		Name:    "Farmacia Lda. Lucía Matesanz",
		Address: "Plaza de la Constitución 2, Arcones",
		Phone:   "921 504 133",
	},
	"NAVAFRIA": {
		Name:    "Farmacia Lda. Elena de Frutos",
		Address: "Calle Reina 8, Navafría",
		Phone:   "921 506 021",
	},
	"TORRE VAL DE SAN PEDRO": {
		Name:    "Farmacia Ldo. Jaime Velasco",
		Address: "Calle Cañada 4, Torre Val de San Pedro",
		Phone:   "921 506 248",
	},
	"VILLACASTIN": {
		Name:    "Farmacia Lda. Gloria Pascual",
		Address: "Plaza Mayor 20, Villacastín",
		Phone:   "921 198 044",
	},
	"ZARZUELA DEL MONTE": {
		Name:    "Farmacia Ldo. Óscar Bermejo",
		Address: "Calle Iglesia 11, Zarzuela del Monte",
		Phone:   "921 198 302",
	},
	"FUENTIDUEÑA": {
		Name:    "Farmacia Lda. Isabel Olmos",
		Address: "Calle Real 17, Fuentidueña",
		Phone:   "921 533 604",
	},
	"SACRAMENIA": {
		Name:    "Farmacia Ldo. Raúl Peña",
		Address: "Plaza del Coso 6, Sacramenia",
		Phone:   "921 527 505",
	},
	"HONTALBILLA": {
		Name:    "Farmacia Lda. Nuria Gilarranz",
		Address: "Calle Larga 2, Hontalbilla",
		Phone:   "921 148 021",
	},
}

// Per-zone overrides: the same token can resolve to a different record
// depending on the column it appears in. This happens when two zones share a
// town name but the duty rotation belongs to different dispensaries.
var pharmaciesByZoneToken = map[string]map[string]domain.Pharmacy{
	domain.ZoneSepulveda: {
		"SAN PEDRO": {
			Name:    "Farmacia Ldo. Jaime Velasco",
			Address: "Calle Cañada 4, Torre Val de San Pedro",
			Phone:   "921 506 248",
		},
	},
	domain.ZoneCarbonero: {
		"SAN PEDRO": {
			Name:    "Farmacia Lda. Sonia Yagüe",
			Address: "Calle Eras 15, San Pedro de Gaíllos",
			Phone:   "921 531 229",
		},
	},
}

// The La Granja zone never appears in the rural PDF; its two pharmacies cover
// every date and are injected verbatim into each zone record.
var laGranjaPharmacies = []domain.Pharmacy{
	{
		Name:    "Farmacia Lda. Mercedes Antón",
		Address: "Calle Valenciana 3, La Granja de San Ildefonso",
		Phone:   "921 470 038",
	},
	{
		Name:    "Farmacia Ldo. Carlos Tejedor",
		Address: "Plaza de los Dolores 7, La Granja de San Ildefonso",
		Phone:   "921 471 133",
	},
}

// Navafría's cell only ever reads "ZBS NAVAFRIA"; the actual duty alternates
// weekly between these two.
var navafriaRotation = [2]string{"NAVAFRIA", "TORRE VAL DE SAN PEDRO"}
