package handler

import (
	"net/http"

	"vulnshare/internal/model/requestresponse"
	"vulnshare/internal/ports"
)

type AdminHandler struct {
	ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService}
}

// EscalateRole godoc
// @Summary Повышение учётной записи до moderator
// @Description Безусловно ставит роль moderator, в том числе повторно. Guard смотрит только на роль в токене вызывающего, ограничения глубины цепочки нет.
// @Tags Admin
// @Produce json
// @Param id path int true "ID целевой учётной записи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.EscalateResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{id}/escalate [post]
func (h *AdminHandler) EscalateRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.AdminService.EscalateToModerator(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.EscalateResponse{Data: account})
}
