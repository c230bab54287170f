package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/domain"
	"github.com/farmaguardia/segovia/backend/internal/engine"
	"github.com/farmaguardia/segovia/backend/internal/parser"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
)

type stubSource struct{}

func (stubSource) Fetch(ctx context.Context, locationID string) ([]pdfscan.Page, error) {
	return nil, nil
}

type stubStore struct {
	schedules map[string]*engine.StoredSchedule
}

func (s *stubStore) Get(ctx context.Context, locationID string) (*engine.StoredSchedule, error) {
	return s.schedules[locationID], nil
}

func (s *stubStore) Put(ctx context.Context, locationID string, schedule *engine.StoredSchedule) error {
	return nil
}

func (s *stubStore) IsFresh(ctx context.Context, locationID string) (bool, error) {
	return true, nil
}

type stubLocker struct{}

func (stubLocker) TryLock(ctx context.Context, locationID string) (func(), bool, error) {
	return func() {}, true, nil
}

type stubReporter struct{}

func (stubReporter) ReportMisses(ctx context.Context, misses []parser.DirectoryMiss) {}
func (stubReporter) ReportEmptyDocument(ctx context.Context, locationID string)      {}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{Environment: "development"}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "secreto"
	cfg.JWT.Secret = "clave-de-pruebas"
	cfg.JWT.Expiration = 3600

	store := &stubStore{schedules: map[string]*engine.StoredSchedule{
		domain.RegionCuellar: {
			Records: []domain.DutyRecord{{
				Date: domain.DutyDate{Day: 15, Month: 7, Year: 2025},
				Shifts: map[domain.TimeSpan][]domain.Pharmacy{
					domain.SpanFullDay: {{Name: "Farmacia Lda. Eva de Pablos"}},
				},
			}},
			FetchedAt: time.Now(),
		},
	}}

	eng := engine.New(stubSource{}, store, stubLocker{}, parser.NewRegistry(pdfscan.StreamBackend{}), stubReporter{})

	h, err := NewHandler(cfg, eng)
	assert.NoError(t, err)
	h.RegisterRoutes()
	return h
}

func doRequest(h *Handler, req *http.Request) (*httptest.ResponseRecorder, Response) {
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestGetLocations(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := doRequest(h, httptest.NewRequest(http.MethodGet, "/locations", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Len(t, data["regions"], 4)
	assert.Len(t, data["zones"], 8)
}

func TestGetCurrentDuty(t *testing.T) {
	h := newTestHandler(t)

	at := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local).Format(time.RFC3339)
	rec, resp := doRequest(h, httptest.NewRequest(http.MethodGet, "/duty/cuellar/current?at="+at, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "found", data["status"])
}

func TestGetCurrentDutyRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)

	tests := map[string]struct {
		path    string
		wantMsg string
	}{
		"región desconocida": {
			path:    "/duty/atlantis/current",
			wantMsg: "región desconocida",
		},
		"una zona no es una región": {
			path:    "/duty/zbs-riaza/current",
			wantMsg: "región desconocida",
		},
		"una región no es una zona": {
			path:    "/duty/zones/cuellar/current",
			wantMsg: "zona desconocida",
		},
		"instante ilegible": {
			path:    "/duty/cuellar/current?at=ayer",
			wantMsg: "parámetro at no válido",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, resp := doRequest(h, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestGetDutyForDate(t *testing.T) {
	h := newTestHandler(t)

	t.Run("registro existente", func(t *testing.T) {
		_, resp := doRequest(h, httptest.NewRequest(http.MethodGet, "/duty/cuellar/date/2025-07-15", nil))
		assert.True(t, resp.Success)
		assert.Equal(t, "registro encontrado", resp.Message)
	})

	t.Run("fecha sin registro", func(t *testing.T) {
		_, resp := doRequest(h, httptest.NewRequest(http.MethodGet, "/duty/cuellar/date/2025-08-01", nil))
		assert.True(t, resp.Success)
		assert.Equal(t, "no hay registro para esa fecha", resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("fecha mal formada", func(t *testing.T) {
		_, resp := doRequest(h, httptest.NewRequest(http.MethodGet, "/duty/cuellar/date/15-07-2025", nil))
		assert.False(t, resp.Success)
	})
}

func TestForceRefreshRequiresLogin(t *testing.T) {
	h := newTestHandler(t)

	_, resp := doRequest(h, httptest.NewRequest(http.MethodPost, "/duty/cuellar/refresh", nil))

	assert.False(t, resp.Success)
	assert.Equal(t, "sesión no iniciada", resp.Message)
}

func TestLoginAndForceRefresh(t *testing.T) {
	h := newTestHandler(t)

	login := func(username, password string) (*httptest.ResponseRecorder, Response) {
		body, _ := json.Marshal(map[string]string{"username": username, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		return doRequest(h, req)
	}

	t.Run("credenciales incorrectas", func(t *testing.T) {
		_, resp := login("admin", "otra")
		assert.False(t, resp.Success)
		assert.Equal(t, "usuario o contraseña incorrectos", resp.Message)
	})

	t.Run("inicio de sesión y refresco forzado", func(t *testing.T) {
		rec, resp := login("admin", "secreto")
		assert.True(t, resp.Success)

		cookies := rec.Result().Cookies()
		assert.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodPost, "/duty/cuellar/refresh", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		_, refreshResp := doRequest(h, req)
		assert.True(t, refreshResp.Success)
		assert.Equal(t, "calendario actualizado", refreshResp.Message)
	})
}
