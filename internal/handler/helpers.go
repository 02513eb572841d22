package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vulnshare/internal/apperror"
	"vulnshare/internal/model/requestresponse"
)

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке, если декодирование не удалось.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
			Error: requestresponse.ErrorDetail{
				Code: http.StatusBadRequest,
				Text: "invalid request body",
			},
		})
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// writeError классифицирует ошибку и отправляет клиенту её клиентский
// текст. Полная причина (включая детали БД) остаётся в серверном логе.
func writeError(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	log.Println(err)

	writeJSON(w, appErr.Kind.HTTPStatus(), requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: appErr.Kind.HTTPStatus(),
			Text: appErr.ClientMessage(),
		},
	})
}

// idParam разбирает числовой идентификатор из пути
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, apperror.Validationf("invalid %s", name)
	}
	return id, nil
}
