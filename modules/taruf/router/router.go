package router

import (
	"taruf-api/core/constants"
	"taruf-api/core/middleware"
	"taruf-api/modules/taruf/controller"

	"github.com/labstack/echo/v4"
)

type TarufRouter struct {
	TarufController *controller.TarufController
}

func NewTarufRouter(tarufController *controller.TarufController) *TarufRouter {
	return &TarufRouter{
		TarufController: tarufController,
	}
}

func (r *TarufRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")

	// Public: candidates pick their taruf before signing in
	api.GET("/tarufs/active", r.TarufController.ListActiveTarufs)

	api.GET("/registrations", r.TarufController.ListRegistrations, mw.AuthMiddleware())
	api.GET("/registrations/:id", r.TarufController.GetRegistration, mw.AuthMiddleware())

	api.GET("/admin/candidates-not-selectors", r.TarufController.ListCandidatesNotSelectors,
		mw.AuthMiddleware(), mw.RequireRoles(constants.RoleAdmin))
}
