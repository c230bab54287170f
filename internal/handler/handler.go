package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/engine"
)

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	engine            *engine.Engine
	translator        ut.Translator
	adminPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, eng *engine.Engine) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// Only the hash stays in memory; the plain password comes from env once.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		engine:            eng,
		translator:        trans,
		adminPasswordHash: passwordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	h.Mux.Get("/locations", h.GetLocations)

	h.Mux.Route("/duty", func(r chi.Router) {
		r.Route("/zones/{zoneID}", func(r chi.Router) {
			r.Use(h.zone)
			r.Get("/current", h.GetZoneCurrentDuty)
		})

		r.Route("/{locationID}", func(r chi.Router) {
			r.Use(h.location)
			r.Get("/current", h.GetCurrentDuty)
			r.Get("/date/{date}", h.GetDutyForDate)
			// Forcing a refresh bypasses the cache; admin only.
			r.With(h.auth).Post("/refresh", h.ForceRefresh)
		})
	})
}
