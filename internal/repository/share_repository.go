package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"vulnshare/config"
	"vulnshare/internal/model"
	"vulnshare/internal/util"
)

type ShareRepository struct {
	*config.Database
}

func NewShareRepository(database *config.Database) *ShareRepository {
	return &ShareRepository{database}
}

// Create : сохраняет запись о расшаривании. file_id не проверяется
// на существование — внешнего ключа нет.
func (r *ShareRepository) Create(ctx context.Context, exec sqlx.ExtContext, share *model.SharingRecord) (*model.SharingRecord, error) {
	query := `
		INSERT INTO shares (id, owner_id, file_id, is_public, share_token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, file_id, is_public, share_token, expires_at, created_at
	`
	created := &model.SharingRecord{}
	err := sqlx.GetContext(ctx, exec, created, query,
		share.ID, share.OwnerID, share.FileID, share.IsPublic, share.ShareToken, share.ExpiresAt)
	if err != nil {
		return nil, util.LogError("[ShareRepo] ошибка вставки данных в БД", err)
	}
	return created, nil
}

// GetByID : возвращает запись без сравнения владельца
func (r *ShareRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.SharingRecord, error) {
	query := `SELECT id, owner_id, file_id, is_public, share_token, expires_at, created_at FROM shares WHERE id = $1`
	var share model.SharingRecord
	err := sqlx.GetContext(ctx, exec, &share, query, id)
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// FindByToken : ищет запись по публичному токену.
// expires_at здесь не участвует в выборке.
func (r *ShareRepository) FindByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.SharingRecord, error) {
	query := `SELECT id, owner_id, file_id, is_public, share_token, expires_at, created_at FROM shares WHERE share_token = $1`
	var share model.SharingRecord
	err := sqlx.GetContext(ctx, exec, &share, query, token)
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// List : все записи всех владельцев без пагинации
func (r *ShareRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]*model.SharingRecord, error) {
	query := `SELECT id, owner_id, file_id, is_public, share_token, expires_at, created_at FROM shares ORDER BY id`
	var shares []*model.SharingRecord
	err := sqlx.SelectContext(ctx, exec, &shares, query)
	if err != nil {
		return nil, util.LogError("[ShareRepo] не удалось получить список расшариваний", err)
	}
	return shares, nil
}

// Update : перезаписывает видимость, токен и срок действия
func (r *ShareRepository) Update(ctx context.Context, exec sqlx.ExtContext, share *model.SharingRecord) (*model.SharingRecord, error) {
	query := `
		UPDATE shares
		SET is_public = $2, share_token = $3, expires_at = $4
		WHERE id = $1
		RETURNING id, owner_id, file_id, is_public, share_token, expires_at, created_at
	`
	updated := &model.SharingRecord{}
	err := sqlx.GetContext(ctx, exec, updated, query,
		share.ID, share.IsPublic, share.ShareToken, share.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete : удаляет запись по id
func (r *ShareRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) error {
	query := `DELETE FROM shares WHERE id = $1`
	_, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[ShareRepo] не удалось удалить расшаривание", err)
	}
	return nil
}
