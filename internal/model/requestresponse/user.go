package requestresponse

import "vulnshare/internal/model"

// CreateUserRequest : тело запроса на создание учётной записи администратором
type CreateUserRequest struct {
	Email    string `json:"email" example:"bob@example.com"`
	Username string `json:"username" example:"bob"`
	Password string `json:"password" example:"pw2"`
	Role     string `json:"role,omitempty" example:"user"`
}

// UpdateUserRequest : тело запроса на обновление профиля
type UpdateUserRequest struct {
	Email    string `json:"email" example:"bob@example.com"`
	Username string `json:"username" example:"bobby"`
}

// UserResponse : данные одной учётной записи
type UserResponse struct {
	Data *model.Account `json:"data"`
}

// ListUsersResponse : все учётные записи, без пагинации
type ListUsersResponse struct {
	Data struct {
		Users []*model.Account `json:"users"`
	} `json:"data"`
}

// EscalateResponse : результат повышения роли
type EscalateResponse struct {
	Data *model.Account `json:"data"`
}
