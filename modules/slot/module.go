package slot

import (
	"taruf-api/core/cache"
	"taruf-api/core/config"
	"taruf-api/core/constants"
	"taruf-api/core/database"
	"taruf-api/core/middleware"
	"taruf-api/core/queue"
	"taruf-api/core/storage"
	"taruf-api/modules/slot/controller"
	"taruf-api/modules/slot/repository"
	"taruf-api/modules/slot/router"
	"taruf-api/modules/slot/service"
	"taruf-api/modules/slot/task"

	"github.com/labstack/echo/v4"
)

// Deps are the shared components the slot module needs besides the database.
type Deps struct {
	Cache      cache.Cache
	Enqueuer   queue.Enqueuer
	Signer     storage.URLSigner
	Assignment config.AssignmentConfig
}

// Init wires the slot module, registers its routes and returns the service
// so the queue worker can share it.
func Init(e *echo.Echo, db database.Database, deps Deps, mw *middleware.Middleware) service.SlotServiceInterface {
	repo := repository.NewSlotRepository(db)
	svc := service.NewSlotService(repo, deps.Cache, deps.Enqueuer, deps.Signer, service.Options{
		RoomCapacity:  deps.Assignment.RoomCapacity,
		MaxSlotSearch: deps.Assignment.MaxSlotSearch,
		LockTTL:       deps.Assignment.LockTTL,
	})
	ctrl := controller.NewSlotController(svc)
	rtr := router.NewSlotRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}

// RegisterTasks attaches the slot background handlers to w.
func RegisterTasks(w *queue.Worker, svc service.SlotServiceInterface) {
	w.Handle(constants.TaskTypeAutoAssign, task.NewAutoAssignHandler(svc))
}
