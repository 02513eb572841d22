package handler

import (
	"net/http"

	"vulnshare/internal/model/requestresponse"
	"vulnshare/internal/ports"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// ListUsers godoc
// @Summary Список всех учётных записей
// @Description Возвращает все записи целиком, без пагинации. Требуется роль admin в токене.
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.UserService.ListAccounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Data.Users = accounts

	writeJSON(w, http.StatusOK, resp)
}

// CreateUser godoc
// @Summary Создание учётной записи администратором
// @Description Создаёт запись с заданной ролью. Требуется роль admin в токене.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	account, err := h.UserService.CreateAccount(r.Context(), req.Email, req.Username, req.Password, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.UserResponse{Data: account})
}

// GetUser godoc
// @Summary Чтение учётной записи
// @Description Возвращает запись по id. Требуется роль admin в токене; владелец не сверяется.
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.UserService.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.UserResponse{Data: account})
}

// UpdateUser godoc
// @Summary Обновление учётной записи
// @Description Обновляет email и username. Требуется роль admin в токене.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	account, err := h.UserService.UpdateAccount(r.Context(), id, req.Email, req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.UserResponse{Data: account})
}

// DeleteUser godoc
// @Summary Удаление учётной записи
// @Description Удаляет любую запись. На этой операции роль не объявлена: достаточно любого валидного токена, владелец не сверяется.
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.UserService.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.DeleteResponse{}
	resp.Response.Message = "account deleted"
	writeJSON(w, http.StatusOK, resp)
}
