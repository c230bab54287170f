package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSpanishDate(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)

	tests := map[string]struct {
		text    string
		want    DutyDate
		wantErr bool
	}{
		"fecha completa con día de la semana": {
			text: "lunes, 15 de julio de 2025",
			want: DutyDate{Weekday: "lunes", Day: 15, Month: 7, Year: 2025},
		},
		"mayúsculas y espacio irregular": {
			text: "SÁBADO, 1  DE  MARZO DE 2025",
			want: DutyDate{Weekday: "sábado", Day: 1, Month: 3, Year: 2025},
		},
		"sin año toma el año actual": {
			text: "martes, 9 de septiembre",
			want: DutyDate{Weekday: "martes", Day: 9, Month: 9, Year: 2025},
		},
		"uno de enero sin año salta al año siguiente": {
			text: "miércoles, 1 de enero",
			want: DutyDate{Weekday: "miércoles", Day: 1, Month: 1, Year: 2026},
		},
		"dos de enero sin año salta al año siguiente": {
			text: "jueves, 2 de enero",
			want: DutyDate{Weekday: "jueves", Day: 2, Month: 1, Year: 2026},
		},
		"tres de enero sin año queda en el año actual": {
			text: "viernes, 3 de enero",
			want: DutyDate{Weekday: "viernes", Day: 3, Month: 1, Year: 2025},
		},
		"fragmento previo de tabla no molesta": {
			text: "GUARDIAS domingo, 20 de abril de 2025",
			want: DutyDate{Weekday: "domingo", Day: 20, Month: 4, Year: 2025},
		},
		"mes desconocido": {
			text:    "5 de frimario de 2025",
			wantErr: true,
		},
		"día fuera de rango": {
			text:    "30 de febrero de 2025",
			wantErr: true,
		},
		"texto sin fecha": {
			text:    "FARMACIAS DE GUARDIA",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseSpanishDate(tt.text, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCompactDate(t *testing.T) {
	tests := map[string]struct {
		token   string
		want    DutyDate
		wantErr bool
	}{
		"token normal": {
			token: "15-jul",
			want:  DutyDate{Day: 15, Month: 7},
		},
		"primero de enero": {
			token: "1-ene",
			want:  DutyDate{Day: 1, Month: 1},
		},
		"abreviatura larga de septiembre": {
			token: "7-sept",
			want:  DutyDate{Day: 7, Month: 9},
		},
		"bisiesto aceptado sin año": {
			token: "29-feb",
			want:  DutyDate{Day: 29, Month: 2},
		},
		"día fuera de rango": {
			token:   "31-abr",
			wantErr: true,
		},
		"sin guión": {
			token:   "15 jul",
			wantErr: true,
		},
		"día no numérico": {
			token:   "xx-jul",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseCompactDate(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got.Year, "el año debe quedar sin resolver")
		})
	}
}

func TestDutyDateOrdering(t *testing.T) {
	a := DutyDate{Day: 31, Month: 12, Year: 2025}
	b := DutyDate{Day: 1, Month: 1, Year: 2026}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestSameCivilDay(t *testing.T) {
	date := DutyDate{Day: 15, Month: 7, Year: 2025}

	assert.True(t, date.SameCivilDay(time.Date(2025, 7, 15, 23, 59, 0, 0, time.Local)))
	assert.False(t, date.SameCivilDay(time.Date(2025, 7, 16, 0, 0, 0, 0, time.Local)))
}
