package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taruf-api/core/config"
	"taruf-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrMissingToken = errors.New("missing authorization token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenClaims is the signed credential carried by admins and candidates.
// SubjectID is the admin id or the registration id depending on Role.
type TokenClaims struct {
	SubjectID int64  `json:"_id"`
	Role      string `json:"role"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) IsAdmin() bool {
	return c.Role == constants.RoleAdmin
}

func signingConfig() ([]byte, time.Duration, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, 0, errors.New("jwt secret not configured")
	}
	ttl := cfg.JWT.TokenTTL
	if ttl <= 0 {
		ttl = constants.TokenTTL
	}
	return []byte(cfg.JWT.Secret), ttl, nil
}

func GenerateToken(subjectID int64, role string, scope string) (string, error) {
	secret, ttl, err := signingConfig()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := TokenClaims{
		SubjectID: subjectID,
		Role:      role,
		Scope:     scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        GenerateID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, _, err := signingConfig()
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenRemainingTTL is how long the token stays valid, used as the blacklist TTL.
func TokenRemainingTTL(claims *TokenClaims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return constants.TokenTTL
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

func GetTokenFromHeader(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}
