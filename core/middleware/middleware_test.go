package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taruf-api/core/cache"
	"taruf-api/core/config"
	"taruf-api/core/constants"
	"taruf-api/core/utils"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T) (*echo.Echo, *cache.MemoryCache) {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "mw-secret", TokenTTL: time.Hour}})

	mc := cache.NewMemoryCache(utils.GenerateLockToken)
	mw := NewMiddleware(mc)

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/any", ok, mw.AuthMiddleware())
	e.GET("/admin", ok, mw.AuthMiddleware(), mw.RequireRoles(constants.RoleAdmin))
	e.GET("/schedule/:registration_id", ok, mw.AuthMiddleware(), mw.RequireSelfOrAdmin("registration_id"))
	return e, mc
}

func mustToken(t *testing.T, id int64, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	e, mc := newTestServer(t)
	candidate := mustToken(t, 7, constants.RoleCandidate)
	admin := mustToken(t, 1, constants.RoleAdmin)
	revoked := mustToken(t, 8, constants.RoleCandidate)
	_ = mc.AddToTokenBlacklist(context.Background(), revoked, time.Hour)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "no header", path: "/any", want: http.StatusUnauthorized},
		{name: "bad scheme", path: "/any", header: "Token x", want: http.StatusUnauthorized},
		{name: "garbage token", path: "/any", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "revoked token", path: "/any", header: "Bearer " + revoked, want: http.StatusUnauthorized},
		{name: "valid candidate", path: "/any", header: "Bearer " + candidate, want: http.StatusNoContent},
		{name: "candidate on admin route", path: "/admin", header: "Bearer " + candidate, want: http.StatusForbidden},
		{name: "admin on admin route", path: "/admin", header: "Bearer " + admin, want: http.StatusNoContent},
		{name: "candidate own schedule", path: "/schedule/7", header: "Bearer " + candidate, want: http.StatusNoContent},
		{name: "candidate other schedule", path: "/schedule/9", header: "Bearer " + candidate, want: http.StatusForbidden},
		{name: "admin any schedule", path: "/schedule/9", header: "Bearer " + admin, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
