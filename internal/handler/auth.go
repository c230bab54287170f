package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const authCookieName = "__farmaguardia_token"

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Username != h.config.Admin.Username {
		h.errorResponse(w, r, "usuario o contraseña incorrectos")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.adminPasswordHash, []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "usuario o contraseña incorrectos")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiration),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Subject:   h.config.Admin.Username,
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "sesión iniciada", nil)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    authCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "sesión cerrada", nil)
}
