package validator

import (
	"fmt"

	"taruf-api/core/constants"
	"taruf-api/core/validator"
	"taruf-api/modules/selection/dto"
)

func ValidateSubmitRound1Request(req *dto.SubmitRound1Request) *validator.ValidationResult {
	result := validator.New()
	if len(req.Selections) == 0 || len(req.Selections) > constants.MaxRound1Selections {
		result.AddError("selections", fmt.Sprintf("between 1 and %d selections are required", constants.MaxRound1Selections))
	}
	for i, item := range req.Selections {
		if item.RegistrationID <= 0 {
			result.AddError(fmt.Sprintf("selections[%d].registration_id", i), "registration_id is required")
		}
	}
	return result
}

func ValidateAddRound1Request(req *dto.AddRound1Request) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.SelectedRegistrationID > 0, "selected_registration_id")
	return result
}

func ValidateSubmitRound2Request(req *dto.SubmitRound2Request) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.SelectedRegistrationID > 0, "selected_registration_id")
	return result
}
