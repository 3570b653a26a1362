package dto

// ===================== Request DTOs =====================

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CandidateCheckRequest accepts its_number as a JSON string or number.
type CandidateCheckRequest struct {
	TarufID   int64 `json:"taruf_id"`
	ITSNumber any   `json:"its_number"`
}

type CandidatePasswordRequest struct {
	RegistrationID int64  `json:"registration_id"`
	Password       string `json:"password"`
}

// ===================== Response DTOs =====================

type UserInfo struct {
	ID   int64   `json:"_id"`
	Name *string `json:"name,omitempty"`
	Role string  `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type CandidateSummary struct {
	ID          int64  `json:"id"`
	TarufID     int64  `json:"taruf_id"`
	ITSNumber   string `json:"its_number"`
	Name        string `json:"name"`
	HasPassword bool   `json:"has_password"`
}

type CandidateCheckResponse struct {
	Found        bool              `json:"found"`
	Registration *CandidateSummary `json:"registration,omitempty"`
}

type VerifyResponse struct {
	Valid     bool   `json:"valid"`
	SubjectID int64  `json:"_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}
