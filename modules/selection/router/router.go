package router

import (
	"taruf-api/core/constants"
	"taruf-api/core/middleware"
	"taruf-api/modules/selection/controller"

	"github.com/labstack/echo/v4"
)

type SelectionRouter struct {
	SelectionController *controller.SelectionController
}

// NewSelectionRouter creates a new router
func NewSelectionRouter(selectionController *controller.SelectionController) *SelectionRouter {
	return &SelectionRouter{
		SelectionController: selectionController,
	}
}

func (r *SelectionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")
	auth := mw.AuthMiddleware()
	adminOnly := []echo.MiddlewareFunc{auth, mw.RequireRoles(constants.RoleAdmin)}

	// Round 1
	api.POST("/:taruf_id/round1/submit", r.SelectionController.SubmitRound1, auth)
	api.POST("/:taruf_id/round1_selected", r.SelectionController.AddRound1, auth)
	api.DELETE("/:taruf_id/round1_selected", r.SelectionController.DeleteRound1, adminOnly...)
	api.PATCH("/:taruf_id/round1_selected/first_choice", r.SelectionController.SetFirstChoice, auth)
	api.GET("/round1_selected", r.SelectionController.ListRound1, auth)

	// Round 2
	api.POST("/:taruf_id/round2/submit", r.SelectionController.SubmitRound2, auth)
}
