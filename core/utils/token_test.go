package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taruf-api/core/config"
	"taruf-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func setTestConfig(ttl time.Duration) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "unit-test-secret", TokenTTL: ttl}})
}

func TestGenerateAndValidateToken(t *testing.T) {
	setTestConfig(time.Hour)

	token, err := GenerateToken(42, constants.RoleCandidate, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("ValidateAndParseToken() error = %v", err)
	}
	if claims.SubjectID != 42 || claims.Role != constants.RoleCandidate {
		t.Errorf("claims = %+v", claims)
	}
	if claims.IsAdmin() {
		t.Errorf("candidate token reported as admin")
	}
	if ttl := TokenRemainingTTL(claims); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TokenRemainingTTL() = %v", ttl)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	setTestConfig(time.Hour)

	claims := TokenClaims{
		SubjectID: 1,
		Role:      constants.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	if _, err := ValidateAndParseToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	setTestConfig(time.Hour)
	token, err := GenerateToken(1, constants.RoleAdmin, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "another-secret"}})
	if _, err := ValidateAndParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestGetTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "missing", header: "", wantErr: ErrMissingToken},
		{name: "no scheme", header: "abc", wantErr: ErrInvalidToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrInvalidToken},
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase bearer", header: "bearer  xyz ", want: "xyz"},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			got, err := GetTokenFromHeader(c)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("GetTokenFromHeader() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestPasswordHelpers(t *testing.T) {
	hashed, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !ComparePassword(hashed, "123456") {
		t.Errorf("ComparePassword() rejected the right pin")
	}
	if ComparePassword(hashed, "654321") {
		t.Errorf("ComparePassword() accepted a wrong pin")
	}
	if ComparePassword("", "123456") {
		t.Errorf("ComparePassword() accepted an empty hash")
	}

	for pin, want := range map[string]bool{"123456": true, "12345": false, "12345a": false, "1234567": false} {
		if got := IsValidPin(pin); got != want {
			t.Errorf("IsValidPin(%q) = %v, want %v", pin, got, want)
		}
	}
}
