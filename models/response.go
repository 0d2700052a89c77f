package models

type AuthSuccessResponse struct {
	Message string    `json:"message" example:"Login successful"`
	Token   string    `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	User    *Employee `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Logged out. Discard the token on the client."`
}

type IDResponse struct {
	Message string `json:"message" example:"Employee created"`
	ID      string `json:"id" example:"507f1f77bcf86cd799439011"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type ValidationErrorResponse struct {
	Error  string      `json:"error" example:"Validation failed"`
	Errors interface{} `json:"errors"`
}

type QRCodeResponse struct {
	Code      string `json:"code" example:"0b8f3c1e-2f7a-4e4c-9a51-0d6b1f6d9c11"`
	ImageB64  string `json:"qr_code_image" example:"iVBORw0KGgoAAAANSUhEUgAA..."`
	ExpiresAt string `json:"expires_at" example:"2024-03-01T23:59:59+07:00"`
}

type ScanResponse struct {
	Action     string      `json:"action" example:"check_in"`
	Attendance *Attendance `json:"attendance"`
}
