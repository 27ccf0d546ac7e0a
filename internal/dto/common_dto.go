package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries one reason per offending field.
type ValidationErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidationError(fields map[string]string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Error:   true,
		Message: "Validation failed",
		Fields:  fields,
	}
}

type RootResponse struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	DB      string `json:"db"`
}
