package dto

// Response is the envelope every endpoint answers with. Data is set on
// success, Error on failure.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty" example:"transcript is required"`
	Message string `json:"message,omitempty" example:"Content generated successfully!"`
}

// ErrorResponseDTO documents the failure shape of Response for swagger.
type ErrorResponseDTO struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"content not found"`
}

func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

func Fail(err string) Response {
	return Response{Success: false, Error: err}
}
