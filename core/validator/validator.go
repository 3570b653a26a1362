package validator

// FieldError names one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func New() *ValidationResult {
	return &ValidationResult{}
}

func (v *ValidationResult) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// Require records field as missing when ok is false.
func (v *ValidationResult) Require(ok bool, field string) {
	if !ok {
		v.AddError(field, field+" is required")
	}
}

func (v *ValidationResult) HasError() bool {
	return len(v.Errors) > 0
}
