package model

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus : true, если status одно из трёх допустимых значений
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// FileRecord : метаданные загруженного файла.
// Filename используется как ключ в хранилище без нормализации,
// ContentType сохраняется со слов клиента и не проверяется по содержимому.
type FileRecord struct {
	ID          int       `db:"id" json:"id"`
	OwnerID     int       `db:"owner_id" json:"owner_id"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"content_type"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// FileLocator : результат разрешения файла на скачивание
type FileLocator struct {
	File   *FileRecord
	GetURL string // pre-signed URL на содержимое
}
