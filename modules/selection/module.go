package selection

import (
	"taruf-api/core/database"
	"taruf-api/core/middleware"
	"taruf-api/core/storage"
	"taruf-api/modules/selection/controller"
	"taruf-api/modules/selection/repository"
	"taruf-api/modules/selection/router"
	"taruf-api/modules/selection/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the selection module and registers routes
func Init(e *echo.Echo, db database.Database, signer storage.URLSigner, mw *middleware.Middleware) {
	repo := repository.NewSelectionRepository(db)
	svc := service.NewSelectionService(repo, signer)
	ctrl := controller.NewSelectionController(svc)
	rtr := router.NewSelectionRouter(ctrl)

	rtr.Setup(e, mw)
}
