package controller

import (
	"taruf-api/core/constants"
	"taruf-api/core/controller"
	"taruf-api/core/errors"
	"taruf-api/core/utils"
	"taruf-api/modules/auth/dto"
	"taruf-api/modules/auth/service"
	"taruf-api/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (controller *AuthController) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.AdminLoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateAdminLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, appErr := controller.AuthService.AdminLogin(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, loginResponse, "Login success")
}

func (controller *AuthController) CheckCandidate(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.CandidateCheckRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateCandidateCheckRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	result, appErr := controller.AuthService.CheckCandidate(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, "Success")
}

func (controller *AuthController) SetCandidatePassword(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.CandidatePasswordRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateSetPasswordRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, appErr := controller.AuthService.SetCandidatePassword(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, loginResponse, "Password set")
}

func (controller *AuthController) CandidateLogin(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.CandidatePasswordRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateCandidateLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, appErr := controller.AuthService.CandidateLogin(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, loginResponse, "Login success")
}

func (controller *AuthController) Verify(c echo.Context) error {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	return controller.SuccessResponse(c, controller.AuthService.Verify(claims), "Token valid")
}

func (controller *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	claims, _ := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	token, _ := c.Get(constants.ContextToken).(string)
	if token == "" {
		return controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := controller.AuthService.Logout(ctx, token, claims); appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, nil, "Logout success")
}
