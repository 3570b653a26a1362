package validator

import (
	"taruf-api/core/validator"
	"taruf-api/modules/slot/dto"
)

func ValidateManualSlotUpdateRequest(req *dto.ManualSlotUpdateRequest) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.TarufID > 0, "taruf_id")
	result.Require(req.SelectorRegistrationID > 0, "selector_registration_id")
	result.Require(req.SelectedRegistrationID > 0, "selected_registration_id")
	return result
}

func ValidateSetTimingsRequest(req *dto.SetTimingsRequest) *validator.ValidationResult {
	result := validator.New()
	if len(req.Timings) == 0 {
		result.AddError("timings", "at least one slot timing is required")
	}
	return result
}

func ValidateReplaceFirstChoiceRequest(req *dto.ReplaceFirstChoiceRequest) *validator.ValidationResult {
	result := validator.New()
	result.Require(req.TarufID > 0, "taruf_id")
	result.Require(req.SelectorRegistrationID > 0, "selector_registration_id")
	result.Require(req.NewSelectedID > 0, "new_selected_registration_id")
	return result
}
