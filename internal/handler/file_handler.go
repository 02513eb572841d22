package handler

import (
	"net/http"

	"vulnshare/internal/apperror"
	"vulnshare/internal/model/requestresponse"
	"vulnshare/internal/ports"
	"vulnshare/internal/security"
)

// максимальный размер формы в памяти при загрузке
const maxUploadMemory = 32 << 20

type FileHandler struct {
	ports.FileService
}

func NewFileHandler(fileService ports.FileService) *FileHandler {
	return &FileHandler{fileService}
}

// UploadFile godoc
// @Summary Загрузка файла
// @Description Принимает multipart-форму с полями file и description. Имя файла и content-type берутся от клиента как есть.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param description formData string false "Описание"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, apperror.Validationf("invalid multipart form"))
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperror.Validationf("file field is required"))
		return
	}
	defer part.Close()

	// имя и content-type — дословно со слов клиента
	contentType := header.Header.Get("Content-Type")
	description := r.FormValue("description")

	file, err := h.FileService.Upload(r.Context(), ownerID, header.Filename, contentType, description, header.Size, part)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.FileResponse{Data: file})
}

// ListFiles godoc
// @Summary Список всех файлов
// @Description Возвращает файлы всех владельцев целиком, без пагинации.
// @Tags Files
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.FileService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.ListFilesResponse{}
	resp.Data.Files = files

	writeJSON(w, http.StatusOK, resp)
}

// GetFile godoc
// @Summary Чтение метаданных файла
// @Description Возвращает запись любому аутентифицированному вызывающему, владелец не сверяется.
// @Tags Files
// @Produce json
// @Param id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{id} [get]
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	file, err := h.FileService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.FileResponse{Data: file})
}

// DownloadFile godoc
// @Summary Скачивание файла
// @Description Возвращает pre-signed ссылку на содержимое. Владелец не сверяется.
// @Tags Files
// @Produce json
// @Param id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DownloadResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{id}/download [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	locator, err := h.FileService.Download(r.Context(), id)
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

// SetFileStatus godoc
// @Summary Смена статуса модерации
// @Description Требуется роль moderator или admin в токене. Текущий статус не сверяется, владелец не сверяется, последняя запись побеждает.
// @Tags Files
// @Accept json
// @Produce json
// @Param id path int true "ID файла"
// @Param body body requestresponse.SetStatusRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{id}/status [put]
func (h *FileHandler) SetFileStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req requestresponse.SetStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	file, err := h.FileService.SetApprovalStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.FileResponse{Data: file})
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Удаляет запись и содержимое. Доступно любому аутентифицированному вызывающему независимо от владельца.
// @Tags Files
// @Produce json
// @Param id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{id} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.FileService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	resp := requestresponse.DeleteResponse{}
	resp.Response.Message = "file deleted"
	writeJSON(w, http.StatusOK, resp)
}
