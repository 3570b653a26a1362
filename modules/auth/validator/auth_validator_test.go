package validator

import (
	"testing"

	"taruf-api/modules/auth/dto"
)

func TestValidateAdminLoginRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.AdminLoginRequest
		wantErr bool
	}{
		{name: "valid", req: dto.AdminLoginRequest{Email: "a@b.test", Password: "x"}},
		{name: "missing email", req: dto.AdminLoginRequest{Password: "x"}, wantErr: true},
		{name: "not an email", req: dto.AdminLoginRequest{Email: "admin", Password: "x"}, wantErr: true},
		{name: "missing password", req: dto.AdminLoginRequest{Email: "a@b.test"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAdminLoginRequest(&tt.req).HasError(); got != tt.wantErr {
				t.Errorf("HasError() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateSetPasswordRequest(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"123456", false},
		{"12345", true},
		{"1234567", true},
		{"12a456", true},
		{"", true},
	}
	for _, tt := range tests {
		got := ValidateSetPasswordRequest(&dto.CandidatePasswordRequest{RegistrationID: 1, Password: tt.password}).HasError()
		if got != tt.wantErr {
			t.Errorf("password %q: HasError() = %v, want %v", tt.password, got, tt.wantErr)
		}
	}
}

func TestValidateCandidateCheckRequest(t *testing.T) {
	if ValidateCandidateCheckRequest(&dto.CandidateCheckRequest{TarufID: 1, ITSNumber: float64(123)}).HasError() {
		t.Error("numeric its rejected")
	}
	if !ValidateCandidateCheckRequest(&dto.CandidateCheckRequest{TarufID: 1}).HasError() {
		t.Error("missing its accepted")
	}
}
