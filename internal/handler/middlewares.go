package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farmaguardia/segovia/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("petición atendida", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "sesión no iniciada")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "token no válido")
			return
		}

		ctx := context.WithValue(r.Context(), SubCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// location resolves the {locationID} URL param into the catalog entry; only
// regions are valid here, zones have their own route.
func (h *Handler) location(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locationID := chi.URLParam(r, "locationID")

		location, ok := domain.LocationByID(locationID)
		if !ok || !location.IsRegion() {
			h.errorResponse(w, r, "región desconocida")
			return
		}

		ctx := context.WithValue(r.Context(), LocationCtx, location)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) zone(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zoneID := chi.URLParam(r, "zoneID")

		zone, ok := domain.LocationByID(zoneID)
		if !ok || zone.IsRegion() {
			h.errorResponse(w, r, "zona desconocida")
			return
		}

		ctx := context.WithValue(r.Context(), ZoneCtx, zone)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
