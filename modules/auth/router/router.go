package router

import (
	"taruf-api/core/middleware"
	"taruf-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")

	// Admin
	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", r.AuthController.AdminLogin)
	authRoutes.GET("/verify", r.AuthController.Verify, mw.AuthMiddleware())
	authRoutes.POST("/logout", r.AuthController.Logout, mw.AuthMiddleware())

	// Candidates
	candidateRoutes := api.Group("/candidates")
	candidateRoutes.POST("/check", r.AuthController.CheckCandidate)
	candidateRoutes.POST("/set-password", r.AuthController.SetCandidatePassword)
	candidateRoutes.POST("/login", r.AuthController.CandidateLogin)
}
