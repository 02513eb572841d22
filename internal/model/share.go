package model

import "time"

// SharingRecord : запись о расшаривании файла.
// FileID не связан внешним ключом с files: запись может ссылаться
// на несуществующий файл. ExpiresAt сохраняется, но при разрешении
// публичного токена не проверяется.
type SharingRecord struct {
	ID         int        `db:"id" json:"id"`
	OwnerID    int        `db:"owner_id" json:"owner_id"`
	FileID     int        `db:"file_id" json:"file_id"`
	IsPublic   bool       `db:"is_public" json:"is_public"`
	ShareToken *string    `db:"share_token" json:"share_token,omitempty"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
