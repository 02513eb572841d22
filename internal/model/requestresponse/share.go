package requestresponse

import (
	"time"

	"vulnshare/internal/model"
)

// CreateShareRequest : тело запроса на создание расшаривания
type CreateShareRequest struct {
	FileID    int        `json:"file_id" example:"1"`
	IsPublic  bool       `json:"is_public" example:"true"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UpdateShareRequest : изменение видимости и срока действия.
// Поля-указатели: nil — не менять.
type UpdateShareRequest struct {
	IsPublic  *bool      `json:"is_public,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ShareResponse : одна запись о расшаривании
type ShareResponse struct {
	Data *model.SharingRecord `json:"data"`
}

// ListSharesResponse : все записи о расшаривании, без пагинации
type ListSharesResponse struct {
	Data struct {
		Shares []*model.SharingRecord `json:"shares"`
	} `json:"data"`
}
