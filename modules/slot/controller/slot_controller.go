package controller

import (
	"strconv"

	"taruf-api/core/controller"
	"taruf-api/core/errors"
	"taruf-api/core/params"
	"taruf-api/modules/slot/dto"
	"taruf-api/modules/slot/service"
	"taruf-api/modules/slot/validator"

	"github.com/labstack/echo/v4"
)

type SlotController struct {
	controller.BaseController
	SlotService service.SlotServiceInterface
}

// NewSlotController creates a new controller
func NewSlotController(svc service.SlotServiceInterface) *SlotController {
	return &SlotController{
		BaseController: controller.NewBaseController(),
		SlotService:    svc,
	}
}

// AutoAssign handles POST /api/:taruf_id/round1_slots/auto.
// With ?async=true the run is queued and 202 is returned.
func (controller *SlotController) AutoAssign(c echo.Context) error {
	ctx := c.Request().Context()

	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}

	if async, _ := strconv.ParseBool(c.QueryParam("async")); async {
		queued, appErr := controller.SlotService.EnqueueAutoAssignment(ctx, tarufID)
		if appErr != nil {
			return controller.ErrorResponse(c, appErr)
		}
		return controller.AcceptedResponse(c, queued, "Auto-assignment queued")
	}

	result, appErr := controller.SlotService.RunAutoAssignment(ctx, tarufID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, result.Message)
}

// ClearAutoSlots handles POST /api/:taruf_id/round1_slots/clear?slot=N.
func (controller *SlotController) ClearAutoSlots(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}
	slot, ok := params.QueryInt64(c, "slot")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "slot must be a positive number")
	}

	result, appErr := controller.SlotService.ClearAutoSlots(c.Request().Context(), tarufID, int(slot))
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, "Auto slots cleared")
}

func (controller *SlotController) ManualUpdate(c echo.Context) error {
	requestData := new(dto.ManualSlotUpdateRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateManualSlotUpdateRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	updated, appErr := controller.SlotService.ManualSlotUpdate(c.Request().Context(), requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, updated, "Slot updated")
}

func (controller *SlotController) SetTimings(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}

	requestData := new(dto.SetTimingsRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateSetTimingsRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	result, appErr := controller.SlotService.SetTimings(c.Request().Context(), tarufID, requestData.Timings)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	message := "Timings updated"
	if len(result.FailedSlots) > 0 {
		message = "Timings updated with failures"
	}
	return controller.SuccessResponse(c, result, message)
}

func (controller *SlotController) ReplaceFirstChoice(c echo.Context) error {
	requestData := new(dto.ReplaceFirstChoiceRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateReplaceFirstChoiceRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	updated, appErr := controller.SlotService.ReplaceFirstChoice(
		c.Request().Context(),
		requestData.TarufID,
		requestData.SelectorRegistrationID,
		requestData.NewSelectedID,
	)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, updated, "First choice replaced")
}

// CandidateSchedule handles GET /api/candidate_schedule/:taruf_id/:registration_id.
// Access is checked by RequireSelfOrAdmin on the route.
func (controller *SlotController) CandidateSchedule(c echo.Context) error {
	tarufID, ok := params.PathInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid taruf_id")
	}
	registrationID, ok := params.PathInt64(c, "registration_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid registration_id")
	}

	schedule, appErr := controller.SlotService.GetCandidateSchedule(c.Request().Context(), tarufID, registrationID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, schedule, "Success")
}

func (controller *SlotController) ListSlots(c echo.Context) error {
	tarufID, ok := params.QueryInt64(c, "taruf_id")
	if !ok {
		return controller.BadRequest(errors.ErrInvalidInput, "taruf_id is required")
	}

	items, appErr := controller.SlotService.ListSlots(c.Request().Context(), tarufID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, items, "Success")
}
