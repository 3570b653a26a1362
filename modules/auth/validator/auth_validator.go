package validator

import (
	"strings"

	"taruf-api/core/utils"
	"taruf-api/core/validator"
	"taruf-api/modules/auth/dto"
)

func ValidateAdminLoginRequest(req *dto.AdminLoginRequest) *validator.ValidationResult {
	result := validator.New()
	email := strings.TrimSpace(req.Email)
	result.Require(email != "", "email")
	if email != "" && !strings.Contains(email, "@") {
		result.AddError("email", "email is invalid")
	}
	result.Require(req.Password != "", "password")
	return result
}

func ValidateCandidateCheckRequest(req *dto.CandidateCheckRequest) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.TarufID > 0, "taruf_id")
	result.Require(utils.NormalizeITS(utils.ToString(req.ITSNumber)) != "", "its_number")
	return result
}

func ValidateSetPasswordRequest(req *dto.CandidatePasswordRequest) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.RegistrationID > 0, "registration_id")
	if !utils.IsValidPin(req.Password) {
		result.AddError("password", "password must be exactly 6 digits")
	}
	return result
}

func ValidateCandidateLoginRequest(req *dto.CandidatePasswordRequest) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.RegistrationID > 0, "registration_id")
	result.Require(req.Password != "", "password")
	return result
}
