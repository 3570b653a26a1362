package controller

import (
	"taruf-api/core/constants"
	"taruf-api/core/controller"
	"taruf-api/core/errors"
	"taruf-api/core/params"
	"taruf-api/core/utils"
	"taruf-api/modules/selection/dto"
	"taruf-api/modules/selection/service"
	"taruf-api/modules/selection/validator"

	"github.com/labstack/echo/v4"
)

type SelectionController struct {
	controller.BaseController
	SelectionService service.SelectionServiceInterface
}

// NewSelectionController creates a new controller
func NewSelectionController(svc service.SelectionServiceInterface) *SelectionController {
	return &SelectionController{
		BaseController:   controller.NewBaseController(),
		SelectionService: svc,
	}
}

// resolveSelector returns the registration the caller acts for. Candidates
// always act as themselves; admins name the selector explicitly.
func (controller *SelectionController) resolveSelector(c echo.Context, requested int64) (int64, error) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return 0, controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	if claims.IsAdmin() {
		if requested <= 0 {
			return 0, controller.BadRequest(errors.ErrInvalidInput, "selector_id is required")
		}
		return requested, nil
	}
	if requested > 0 && requested != claims.SubjectID {
		return 0, controller.Forbidden(errors.ErrForbidden, "Candidates can only manage their own selections")
	}
	return claims.SubjectID, nil
}

// SubmitRound1 handles POST /api/:taruf_id/round1/submit.
func (controller *SelectionController) SubmitRound1(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}

	requestData := new(dto.SubmitRound1Request)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateSubmitRound1Request(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	selectorID, err := controller.resolveSelector(c, requestData.SelectorID)
	if err != nil {
		return err
	}

	result, appErr := controller.SelectionService.SubmitRound1(c.Request().Context(), tarufID, selectorID, requestData.Selections)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, "Round 1 selections submitted")
}

func (controller *SelectionController) AddRound1(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}

	requestData := new(dto.AddRound1Request)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateAddRound1Request(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	selectorID, err := controller.resolveSelector(c, requestData.SelectorID)
	if err != nil {
		return err
	}

	created, appErr := controller.SelectionService.AddRound1(c.Request().Context(), tarufID, selectorID, requestData.SelectedRegistrationID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, created, "Selection added")
}

// DeleteRound1 handles DELETE /api/:taruf_id/round1_selected. Admin only.
func (controller *SelectionController) DeleteRound1(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}
	selectorID, ok := params.QueryInt64(c, "selector_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "selector_id is required")
	}
	selectedID, ok := params.QueryInt64(c, "selected_registration_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "selected_registration_id is required")
	}

	result, appErr := controller.SelectionService.DeleteRound1(c.Request().Context(), tarufID, selectorID, selectedID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, "Selection deleted")
}

func (controller *SelectionController) SetFirstChoice(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}

	requestData := new(dto.SetFirstChoiceRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	selectorID, err := controller.resolveSelector(c, requestData.SelectorID)
	if err != nil {
		return err
	}

	result, appErr := controller.SelectionService.SetFirstChoice(c.Request().Context(), tarufID, selectorID, requestData.FirstChoice)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, "First choice updated")
}

// ListRound1 handles GET /api/round1_selected. Candidates only see their
// own rows whatever selector_id they pass.
func (controller *SelectionController) ListRound1(c echo.Context) error {
	tarufID, ok := params.QueryInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "taruf_id is required")
	}

	filter := dto.Round1Filter{
		TarufID:    tarufID,
		SelectorID: utils.ToInt64(c.QueryParam("selector_id")),
		Counsellor: c.QueryParam("counsellor"),
	}
	if claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims); ok && !claims.IsAdmin() {
		filter.SelectorID = claims.SubjectID
		filter.Counsellor = ""
	}

	rows, appErr := controller.SelectionService.ListRound1(c.Request().Context(), filter)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, rows, "Success")
}

func (controller *SelectionController) SubmitRound2(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}

	requestData := new(dto.SubmitRound2Request)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateSubmitRound2Request(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	selectorID, err := controller.resolveSelector(c, requestData.SelectorID)
	if err != nil {
		return err
	}

	created, appErr := controller.SelectionService.SubmitRound2(c.Request().Context(), tarufID, selectorID, requestData.SelectedRegistrationID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, created, "Round 2 selection submitted")
}
