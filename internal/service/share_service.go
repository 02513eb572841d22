package service

import (
	"context"
	"fmt"
	"time"

	"vulnshare/config"
	"vulnshare/internal/apperror"
	"vulnshare/internal/model"
	"vulnshare/internal/ports"
	"vulnshare/internal/repository"
)

type ShareService struct {
	shareRepository ports.ShareRepository
	fileRepository  ports.FileRepository
	sequences       ports.SequenceRepository
	s3Storage       ports.S3Storage
	urlTTL          time.Duration
}

func NewShareService(
	shareRepository ports.ShareRepository,
	fileRepository ports.FileRepository,
	sequences ports.SequenceRepository,
	s3Storage ports.S3Storage,
	urlTTL time.Duration,
) *ShareService {
	return &ShareService{
		shareRepository: shareRepository,
		fileRepository:  fileRepository,
		sequences:       sequences,
		s3Storage:       s3Storage,
		urlTTL:          urlTTL,
	}
}

// Create создаёт расшаривание. Существование file_id не проверяется.
// Публичный токен — детерминированная функция счётчика записей:
// "share-" + (count+1), без какой-либо случайности.
func (s *ShareService) Create(ctx context.Context, ownerID, fileID int, isPublic bool, expiresAt *time.Time) (*model.SharingRecord, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[ShareService] database connection не найден в context", nil)
	}

	id, err := s.sequences.NextSequentialID(ctx, db, tableShares)
	if err != nil {
		return nil, apperror.Storage("[ShareService] ошибка выдачи идентификатора", err)
	}

	share := &model.SharingRecord{
		ID:        id,
		OwnerID:   ownerID,
		FileID:    fileID,
		IsPublic:  isPublic,
		ExpiresAt: expiresAt,
	}

	if isPublic {
		token := fmt.Sprintf("share-%d", id)
		share.ShareToken = &token
	}

	created, err := s.shareRepository.Create(ctx, db, share)
	if err != nil {
		return nil, apperror.Storage("[ShareService] ошибка создания расшаривания", err)
	}

	return created, nil
}

// List : все расшаривания всех владельцев
func (s *ShareService) List(ctx context.Context) ([]*model.SharingRecord, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[ShareService] database connection не найден в context", nil)
	}

	shares, err := s.shareRepository.List(ctx, db)
	if err != nil {
		return nil, apperror.Storage("[ShareService] ошибка получения списка", err)
	}

	return shares, nil
}

// Update меняет видимость и срок действия без сравнения владельца.
// Переключение в public на записи без токена выпускает новый токен
// по тому же правилу count+1.
func (s *ShareService) Update(ctx context.Context, id int, isPublic *bool, expiresAt *time.Time) (*model.SharingRecord, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[ShareService] database connection не найден в context", nil)
	}

	share, err := s.shareRepository.GetByID(ctx, db, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("share not found")
		}
		return nil, apperror.Storage("[ShareService] ошибка поиска расшаривания", err)
	}

	if isPublic != nil {
		share.IsPublic = *isPublic
	}
	if expiresAt != nil {
		share.ExpiresAt = expiresAt
	}

	if share.IsPublic && share.ShareToken == nil {
		seq, err := s.sequences.NextSequentialID(ctx, db, tableShares)
		if err != nil {
			return nil, apperror.Storage("[ShareService] ошибка выдачи идентификатора", err)
		}
		token := fmt.Sprintf("share-%d", seq)
		share.ShareToken = &token
	}

	updated, err := s.shareRepository.Update(ctx, db, share)
	if err != nil {
		return nil, apperror.Storage("[ShareService] ошибка обновления расшаривания", err)
	}

	return updated, nil
}

// Delete : удаление без сравнения владельца
func (s *ShareService) Delete(ctx context.Context, id int) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return apperror.Storage("[ShareService] database connection не найден в context", nil)
	}

	if err := s.shareRepository.Delete(ctx, db, id); err != nil {
		return apperror.Storage("[ShareService] ошибка удаления расшаривания", err)
	}

	return nil
}

// ResolveByPublicToken — единственный неаутентифицированный путь чтения.
// Сохранённый expires_at намеренно не сверяется с текущим временем:
// просроченная запись разрешается так же, как действующая.
func (s *ShareService) ResolveByPublicToken(ctx context.Context, token string) (*model.FileLocator, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[ShareService] database connection не найден в context", nil)
	}

	share, err := s.shareRepository.FindByToken(ctx, db, token)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("share not found")
		}
		return nil, apperror.Storage("[ShareService] ошибка поиска по токену", err)
	}

	file, err := s.fileRepository.GetByID(ctx, db, share.FileID)
	if err != nil {
		// запись могла ссылаться на уже удалённый файл — FK нет
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("file not found")
		}
		return nil, apperror.Storage("[ShareService] ошибка поиска файла", err)
	}

	url, err := s.s3Storage.GeneratePresignedGetURL(ctx, file.StoragePath, s.urlTTL)
	if err != nil {
		return nil, apperror.Storage("[ShareService] ошибка генерации ссылки", err)
	}

	return &model.FileLocator{File: file, GetURL: url}, nil
}
