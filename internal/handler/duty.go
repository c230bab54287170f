package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/engine"
)

// queryInstant reads the optional ?at=RFC3339 override, used for calendar
// browsing and testing; the default is the server clock.
func (h *Handler) queryInstant(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(time.RFC3339, raw, time.Local)
}

func (h *Handler) GetCurrentDuty(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(domain.DutyLocation)

	at, err := h.queryInstant(r)
	if err != nil {
		h.errorResponse(w, r, "parámetro at no válido")
		return
	}

	resolution, err := h.engine.ResolveCurrent(r.Context(), location.ID, at, false)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrRefreshInProgress):
			h.errorResponse(w, r, "calendario en actualización, inténtelo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "guardia resuelta", resolution)
}

func (h *Handler) GetZoneCurrentDuty(w http.ResponseWriter, r *http.Request) {
	zone := r.Context().Value(ZoneCtx).(domain.DutyLocation)

	at, err := h.queryInstant(r)
	if err != nil {
		h.errorResponse(w, r, "parámetro at no válido")
		return
	}

	resolution, err := h.engine.ResolveCurrent(r.Context(), zone.ID, at, false)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrRefreshInProgress):
			h.errorResponse(w, r, "calendario en actualización, inténtelo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "guardia resuelta", resolution)
}

func (h *Handler) GetDutyForDate(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(domain.DutyLocation)

	dateParam := chi.URLParam(r, "date")
	parsed, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
	if err != nil {
		h.errorResponse(w, r, "fecha no válida, formato esperado AAAA-MM-DD")
		return
	}
	date := domain.DutyDate{Day: parsed.Day(), Month: int(parsed.Month()), Year: parsed.Year()}

	record, found, err := h.engine.ResolveForDate(r.Context(), location.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !found {
		h.successResponse(w, r, "no hay registro para esa fecha", nil)
		return
	}

	h.successResponse(w, r, "registro encontrado", record)
}

func (h *Handler) ForceRefresh(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(domain.DutyLocation)

	schedule, err := h.engine.Schedule(r.Context(), location.ID, true)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrRefreshInProgress):
			h.errorResponse(w, r, "ya hay una actualización en curso")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "calendario actualizado", map[string]any{
		"records":     len(schedule.Records),
		"zoneRecords": len(schedule.ZoneRecords),
		"fetchedAt":   schedule.FetchedAt,
	})
}
