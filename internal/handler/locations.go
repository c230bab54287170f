package handler

import (
	"net/http"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "catálogo de localizaciones", map[string]any{
		"regions": domain.Regions(),
		"zones":   domain.Zones(),
	})
}
