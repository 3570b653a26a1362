package dto

// ===================== Request DTOs =====================

type SelectionItem struct {
	RegistrationID int64 `json:"registration_id"`
}

// SubmitRound1Request and the other selection requests carry SelectorID for
// admin callers only. Candidates always act as themselves.
type SubmitRound1Request struct {
	SelectorID int64           `json:"selector_id"`
	Selections []SelectionItem `json:"selections"`
}

type AddRound1Request struct {
	SelectorID             int64 `json:"selector_id"`
	SelectedRegistrationID int64 `json:"selected_registration_id"`
}

// SetFirstChoiceRequest takes the chosen candidate's ITS number as a string
// or number. An empty value clears the first choice.
type SetFirstChoiceRequest struct {
	SelectorID  int64 `json:"selector_id"`
	FirstChoice any   `json:"first_choice"`
}

type SubmitRound2Request struct {
	SelectorID             int64 `json:"selector_id"`
	SelectedRegistrationID int64 `json:"selected_registration_id"`
}

type Round1Filter struct {
	TarufID    int64
	SelectorID int64
	Counsellor string
}

// ===================== Response DTOs =====================

type SubmitRound1Response struct {
	InsertedCount int `json:"inserted_count"`
	SkippedCount  int `json:"skipped_count"`
}

type DeleteSelectionResponse struct {
	Deleted int64 `json:"deleted"`
}

type SetFirstChoiceResponse struct {
	Updated int64 `json:"updated"`
}
