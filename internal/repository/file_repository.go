package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"vulnshare/config"
	"vulnshare/internal/model"
	"vulnshare/internal/util"
)

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет метаданные файла с заранее вычисленным id
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.FileRecord) (*model.FileRecord, error) {
	query := `
		INSERT INTO files (id, owner_id, filename, content_type, storage_path, size_bytes, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, owner_id, filename, content_type, storage_path, size_bytes, description, status, uploaded_at
	`
	created := &model.FileRecord{}
	err := sqlx.GetContext(ctx, exec, created, query,
		file.ID, file.OwnerID, file.Filename, file.ContentType,
		file.StoragePath, file.SizeBytes, file.Description, file.Status)
	if err != nil {
		return nil, util.LogError("[FileRepo] ошибка вставки данных в БД", err)
	}
	return created, nil
}

// GetByID : возвращает запись без сравнения владельца с вызывающим
func (r *FileRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.FileRecord, error) {
	query := `
		SELECT id, owner_id, filename, content_type, storage_path, size_bytes, description, status, uploaded_at
		FROM files WHERE id = $1
	`
	var file model.FileRecord
	err := sqlx.GetContext(ctx, exec, &file, query, id)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// List : все файлы всех владельцев без пагинации
func (r *FileRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]*model.FileRecord, error) {
	query := `
		SELECT id, owner_id, filename, content_type, storage_path, size_bytes, description, status, uploaded_at
		FROM files ORDER BY id
	`
	var files []*model.FileRecord
	err := sqlx.SelectContext(ctx, exec, &files, query)
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить список файлов", err)
	}
	return files, nil
}

// UpdateStatus : перезаписывает статус модерации без проверки текущего
// значения. Две конкурирующие модерации — последняя запись побеждает.
func (r *FileRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int, status string) (*model.FileRecord, error) {
	query := `
		UPDATE files
		SET status = $2
		WHERE id = $1
		RETURNING id, owner_id, filename, content_type, storage_path, size_bytes, description, status, uploaded_at
	`
	updated := &model.FileRecord{}
	err := sqlx.GetContext(ctx, exec, updated, query, id, status)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete : удаляет запись и возвращает storage_path для очистки хранилища
func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) (string, error) {
	query := `DELETE FROM files WHERE id = $1 RETURNING storage_path`
	var storagePath string
	err := sqlx.GetContext(ctx, exec, &storagePath, query, id)
	if err != nil {
		return "", err
	}
	return storagePath, nil
}
