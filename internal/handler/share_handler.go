package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vulnshare/internal/apperror"
	"vulnshare/internal/model/requestresponse"
	"vulnshare/internal/ports"
	"vulnshare/internal/security"
)

type ShareHandler struct {
	ports.ShareService
}

func NewShareHandler(shareService ports.ShareService) *ShareHandler {
	return &ShareHandler{shareService}
}

// CreateShare godoc
// @Summary Создание расшаривания
// @Description Владельцем записывается вызывающий. Принадлежность файла вызывающему не проверяется.
// @Tags Shares
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateShareRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ShareResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shares [post]
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, apperror.Authenticationf("unauthorized"))
		return
	}

	ownerID, err := claims.AccountID()
	if err != nil {
		writeError(w, apperror.Authenticationf("invalid or expired token"))
		return
	}

	var req requestresponse.CreateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	share, err := h.ShareService.Create(r.Context(), ownerID, req.FileID, req.IsPublic, req.ExpiresAt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.ShareResponse{Data: share})
}

// ListShares godoc
// @Summary Список расшариваний
// @Description Возвращает записи всех владельцев целиком, без фильтра по вызывающему.
// @Tags Shares
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListSharesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shares [get]
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.ShareService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.ListSharesResponse{}
	resp.Data.Shares = shares

	writeJSON(w, http.StatusOK, resp)
}

// UpdateShare godoc
// @Summary Изменение расшаривания
// @Description Меняет видимость и срок действия. Владелец не сверяется.
// @Tags Shares
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param body body requestresponse.UpdateShareRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ShareResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shares/{id} [put]
func (h *ShareHandler) UpdateShare(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req requestresponse.UpdateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	share, err := h.ShareService.Update(r.Context(), id, req.IsPublic, req.ExpiresAt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.ShareResponse{Data: share})
}

// DeleteShare godoc
// @Summary Удаление расшаривания
// @Description Доступно любому аутентифицированному вызывающему.
// @Tags Shares
// @Produce json
// @Param id path int true "ID записи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shares/{id} [delete]
func (h *ShareHandler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.ShareService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.DeleteResponse{}
	resp.Response.Message = "share deleted"
	writeJSON(w, http.StatusOK, resp)
}

// ResolvePublicToken godoc
// @Summary Разрешение публичной ссылки
// @Description Отдаёт ссылку на содержимое по токену расшаривания без аутентификации. Срок действия записи не проверяется.
// @Tags Shares
// @Produce json
// @Param token path string true "Токен расшаривания"
// @Success 200 {object} requestresponse.DownloadResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /public/shares/{token} [get]
func (h *ShareHandler) ResolvePublicToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, apperror.Validationf("invalid token"))
		return
	}

	locator, err := h.ShareService.ResolveByPublicToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.DownloadResponse{}
	resp.Data.URL = locator.GetURL
	resp.Data.ContentType = locator.File.ContentType
	resp.Data.Filename = locator.File.Filename

	writeJSON(w, http.StatusOK, resp)
}
