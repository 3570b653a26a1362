package controller

import (
	"strings"

	"taruf-api/core/controller"
	"taruf-api/core/errors"
	"taruf-api/core/params"
	"taruf-api/modules/taruf/dto"
	"taruf-api/modules/taruf/service"

	"github.com/labstack/echo/v4"
)

type TarufController struct {
	controller.BaseController
	TarufService service.TarufServiceInterface
}

func NewTarufController(svc service.TarufServiceInterface) *TarufController {
	return &TarufController{
		BaseController: controller.NewBaseController(),
		TarufService:   svc,
	}
}

func (controller *TarufController) ListActiveTarufs(c echo.Context) error {
	tarufs, appErr := controller.TarufService.ListActiveTarufs(c.Request().Context())
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, tarufs, "Success")
}

// ListRegistrations handles GET /api/registrations?taruf_id=&group=&search=&page_number=&page_size=.
func (controller *TarufController) ListRegistrations(c echo.Context) error {
	tarufID, ok := params.QueryInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Missing taruf_id query param")
	}

	filter := dto.RegistrationFilter{
		TarufID: tarufID,
		Group:   strings.TrimSpace(c.QueryParam("group")),
	}
	page, appErr := controller.TarufService.ListRegistrations(c.Request().Context(), filter, *params.NewQueryParams(c))
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, page, "Success")
}

func (controller *TarufController) GetRegistration(c echo.Context) error {
	id, ok := params.PathInt64(c, "id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid registration id")
	}

	registration, appErr := controller.TarufService.GetRegistration(c.Request().Context(), id)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, registration, "Success")
}

func (controller *TarufController) ListCandidatesNotSelectors(c echo.Context) error {
	tarufID, ok := params.QueryInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "taruf_id required")
	}

	registrations, appErr := controller.TarufService.ListCandidatesNotSelectors(c.Request().Context(), tarufID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, registrations, "Success")
}
