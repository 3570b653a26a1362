package router

import (
	"taruf-api/core/constants"
	"taruf-api/core/middleware"
	"taruf-api/modules/slot/controller"

	"github.com/labstack/echo/v4"
)

type SlotRouter struct {
	SlotController *controller.SlotController
}

// NewSlotRouter creates a new router
func NewSlotRouter(slotController *controller.SlotController) *SlotRouter {
	return &SlotRouter{
		SlotController: slotController,
	}
}

// Setup registers the slot routes
func (r *SlotRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")
	adminOnly := []echo.MiddlewareFunc{mw.AuthMiddleware(), mw.RequireRoles(constants.RoleAdmin)}

	// Assignment engine
	api.POST("/:taruf_id/round1_slots/auto", r.SlotController.AutoAssign, adminOnly...)
	api.POST("/:taruf_id/round1_slots/clear", r.SlotController.ClearAutoSlots, adminOnly...)
	api.POST("/:taruf_id/round1_slots/timings", r.SlotController.SetTimings, adminOnly...)

	// Admin edits
	api.POST("/round1_slot/manual-update", r.SlotController.ManualUpdate, adminOnly...)
	api.POST("/round1_slot/first-choice-update", r.SlotController.ReplaceFirstChoice, adminOnly...)
	api.GET("/admin/round1_slots", r.SlotController.ListSlots, adminOnly...)

	api.GET("/candidate_schedule/:taruf_id/:registration_id", r.SlotController.CandidateSchedule,
		mw.AuthMiddleware(), mw.RequireSelfOrAdmin("registration_id"))
}
