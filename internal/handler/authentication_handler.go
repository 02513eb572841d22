package handler

import (
	"net/http"

	"vulnshare/internal/apperror"
	"vulnshare/internal/model/requestresponse"
	"vulnshare/internal/ports"
	"vulnshare/internal/security"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authService}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создаёт учётную запись и сразу выдаёт токен. Пароль сохраняется как есть.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} model.TokenBundle
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	bundle, err := h.AuthenticationService.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

// Login godoc
// @Summary Аутентификация
// @Description Сверяет пароль и выдаёт токен. Тексты отказов для неизвестного email и неверного пароля различаются.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} model.TokenBundle
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	bundle, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Возвращает подтверждение. Состояние на сервере не меняется, токен остаётся валидным.
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// хранилища токенов нет, отзывать нечего — только подтверждение
	resp := requestresponse.LogoutResponse{}
	resp.Response.Message = "logged out"

	writeJSON(w, http.StatusOK, resp)
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает идентичность из claims токена, без обращения к БД.
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, apperror.Authenticationf("unauthorized"))
		return
	}

	accountID, err := claims.AccountID()
	if err != nil {
		writeError(w, apperror.Authenticationf("invalid or expired token"))
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.AccountID = accountID
	resp.Response.Email = claims.Email
	resp.Response.Role = claims.Role

	writeJSON(w, http.StatusOK, resp)
}
