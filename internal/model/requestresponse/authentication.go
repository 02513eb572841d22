package requestresponse

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"pw1"`
}

// LogoutResponse : подтверждение выхода.
// Серверное состояние не меняется, токен остаётся валидным.
type LogoutResponse struct {
	Response struct {
		Message string `json:"message" example:"logged out"`
	} `json:"response"`
}

// CurrentUserResponse : информация о текущем пользователе из claims токена
type CurrentUserResponse struct {
	Response struct {
		AccountID int    `json:"account_id" example:"1"`
		Email     string `json:"email" example:"alice@example.com"`
		Role      string `json:"role" example:"user"`
	} `json:"response"`
}

// DeleteResponse : подтверждение удаления
type DeleteResponse struct {
	Response struct {
		Message string `json:"message" example:"deleted"`
	} `json:"response"`
}

// ErrorDetail : код и текст ошибки
type ErrorDetail struct {
	Code int    `json:"code" example:"403"`
	Text string `json:"text" example:"forbidden"`
}

// ErrorResponse : стандартный ответ об ошибке
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
