package middleware

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"taruf-api/core/cache"
	"taruf-api/core/constants"
	"taruf-api/core/controller"
	apperrors "taruf-api/core/errors"
	"taruf-api/core/logger"
	"taruf-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	controller.BaseController
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{
		BaseController: controller.NewBaseController(),
		cache:          c,
	}
}

// AuthMiddleware requires a valid, non-revoked bearer token and stores its
// claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				if errors.Is(err, utils.ErrMissingToken) {
					return m.Unauthorized(apperrors.ErrMissingAuthorizationHeader, "missing authorization header")
				}
				return m.Unauthorized(apperrors.ErrInvalidTokenFormat, "invalid authorization header")
			}

			ctx := c.Request().Context()
			blacklisted, err := m.cache.IsTokenBlacklisted(ctx, token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
				return m.InternalServerError(apperrors.ErrInternalServer, "failed to check token")
			}
			if blacklisted {
				return m.Unauthorized(apperrors.ErrUnauthorized, "token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if errors.Is(err, utils.ErrExpiredToken) {
					return m.Unauthorized(apperrors.ErrTokenExpired, "token expired")
				}
				return m.Unauthorized(apperrors.ErrUnauthorized, "invalid token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return m.Unauthorized(apperrors.ErrUnauthorized, "invalid token scope")
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextToken, token)
			return next(c)
		}
	}
}

// RequireRoles must run after AuthMiddleware.
func (m *Middleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
			if !ok || claims == nil {
				return m.Unauthorized(apperrors.ErrUnauthorized, "user not authenticated")
			}
			if !slices.Contains(roles, claims.Role) {
				return m.Forbidden(apperrors.ErrForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin lets admins through and restricts candidates to the
// registration named by the path parameter.
func (m *Middleware) RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
			if !ok || claims == nil {
				return m.Unauthorized(apperrors.ErrUnauthorized, "user not authenticated")
			}
			if claims.IsAdmin() {
				return next(c)
			}
			if strconv.FormatInt(claims.SubjectID, 10) != c.Param(param) {
				return m.Forbidden(apperrors.ErrForbidden, "access to another candidate is not allowed")
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			logger.Info("HTTP:Request",
				"method", req.Method,
				"path", c.Path(),
				"uri", req.RequestURI,
				"status", res.Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}
