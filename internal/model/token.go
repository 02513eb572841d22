package model

// TokenBundle : результат регистрации или входа
// swagger:model
type TokenBundle struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	Token string `json:"token"`

	AccountID int `json:"account_id"`

	Message string `json:"message"`
}
