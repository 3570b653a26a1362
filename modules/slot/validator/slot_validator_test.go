package validator

import (
	"testing"

	"taruf-api/modules/slot/dto"
)

func TestValidateManualSlotUpdateRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.ManualSlotUpdateRequest
		wantFields int
	}{
		{name: "complete", req: dto.ManualSlotUpdateRequest{TarufID: 1, SelectorRegistrationID: 2, SelectedRegistrationID: 3}},
		{name: "missing ids", req: dto.ManualSlotUpdateRequest{TarufID: 1}, wantFields: 2},
		{name: "empty", wantFields: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateManualSlotUpdateRequest(&tt.req)
			if len(got.Errors) != tt.wantFields {
				t.Errorf("errors = %v, want %d", got.Errors, tt.wantFields)
			}
		})
	}
}

func TestValidateReplaceFirstChoiceRequest(t *testing.T) {
	ok := ValidateReplaceFirstChoiceRequest(&dto.ReplaceFirstChoiceRequest{TarufID: 1, SelectorRegistrationID: 2, NewSelectedID: 3})
	if ok.HasError() {
		t.Errorf("unexpected errors: %v", ok.Errors)
	}
	bad := ValidateReplaceFirstChoiceRequest(&dto.ReplaceFirstChoiceRequest{TarufID: 1, SelectorRegistrationID: 2})
	if !bad.HasError() || bad.Errors[0].Field != "new_selected_registration_id" {
		t.Errorf("errors = %v", bad.Errors)
	}
}

func TestValidateSetTimingsRequest(t *testing.T) {
	if !ValidateSetTimingsRequest(&dto.SetTimingsRequest{}).HasError() {
		t.Error("empty timings accepted")
	}
	if ValidateSetTimingsRequest(&dto.SetTimingsRequest{Timings: []dto.SlotTiming{{Slot: 1, Timings: "10:00"}}}).HasError() {
		t.Error("valid timings rejected")
	}
}
