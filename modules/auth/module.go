package auth

import (
	"taruf-api/core/cache"
	"taruf-api/core/database"
	"taruf-api/core/middleware"
	"taruf-api/modules/auth/controller"
	"taruf-api/modules/auth/repository"
	"taruf-api/modules/auth/router"
	"taruf-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, cache cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, cache)
	authController := controller.NewAuthController(authService)

	router.NewAuthRouter(authController).Setup(e, mw)
}
