package taruf

import (
	"taruf-api/core/database"
	"taruf-api/core/middleware"
	"taruf-api/core/storage"
	"taruf-api/modules/taruf/controller"
	"taruf-api/modules/taruf/repository"
	"taruf-api/modules/taruf/router"
	"taruf-api/modules/taruf/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the taruf module and registers routes
func Init(e *echo.Echo, db database.Database, signer storage.URLSigner, mw *middleware.Middleware) {
	repo := repository.NewTarufRepository(db)
	svc := service.NewTarufService(repo, signer)
	ctrl := controller.NewTarufController(svc)
	rtr := router.NewTarufRouter(ctrl)

	rtr.Setup(e, mw)
}
