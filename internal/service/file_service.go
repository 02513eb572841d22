package service

import (
	"context"
	"io"
	"log"
	"time"

	"vulnshare/config"
	"vulnshare/internal/apperror"
	"vulnshare/internal/model"
	"vulnshare/internal/ports"
	"vulnshare/internal/repository"
)

type FileService struct {
	fileRepository  ports.FileRepository
	cacheRepository ports.CacheRepository
	sequences       ports.SequenceRepository
	s3Storage       ports.S3Storage
	urlTTL          time.Duration
}

func NewFileService(
	fileRepository ports.FileRepository,
	cacheRepository ports.CacheRepository,
	sequences ports.SequenceRepository,
	s3Storage ports.S3Storage,
	urlTTL time.Duration,
) *FileService {
	return &FileService{
		fileRepository:  fileRepository,
		cacheRepository: cacheRepository,
		sequences:       sequences,
		s3Storage:       s3Storage,
		urlTTL:          urlTTL,
	}
}

// Upload сохраняет содержимое и метаданные нового файла.
// Имя файла от клиента становится ключом хранилища как есть,
// content-type записывается со слов клиента и не проверяется
// по содержимому. Статус модерации всегда стартует с pending.
func (s *FileService) Upload(ctx context.Context, ownerID int, filename, contentType, description string, size int64, content io.Reader) (*model.FileRecord, error) {
	if filename == "" {
		return nil, apperror.Validationf("filename is required")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[FileService] database connection не найден в context", nil)
	}

	id, err := s.sequences.NextSequentialID(ctx, db, tableFiles)
	if err != nil {
		return nil, apperror.Storage("[FileService] ошибка выдачи идентификатора", err)
	}

	if err := s.s3Storage.UploadObject(ctx, filename, contentType, content); err != nil {
		return nil, apperror.Storage("[FileService] ошибка загрузки в хранилище", err)
	}

	created, err := s.fileRepository.Create(ctx, db, &model.FileRecord{
		ID:          id,
		OwnerID:     ownerID,
		Filename:    filename,
		ContentType: contentType,
		StoragePath: filename,
		SizeBytes:   size,
		Description: description,
		Status:      model.StatusPending,
	})
	if err != nil {
		return nil, apperror.Storage("[FileService] ошибка сохранения метаданных", err)
	}

	return created, nil
}

// List : все файлы всех владельцев
func (s *FileService) List(ctx context.Context) ([]*model.FileRecord, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[FileService] database connection не найден в context", nil)
	}

	files, err := s.fileRepository.List(ctx, db)
	if err != nil {
		return nil, apperror.Storage("[FileService] ошибка получения списка файлов", err)
	}

	return files, nil
}

// Get возвращает запись любому аутентифицированному вызывающему,
// сравнение owner_id с вызывающим не выполняется. Кэш — первый.
func (s *FileService) Get(ctx context.Context, id int) (*model.FileRecord, error) {
	if cached, err := s.cacheRepository.GetFile(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("[FileService] кэш недоступен: %v", err)
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[FileService] database connection не найден в context", nil)
	}

	file, err := s.fileRepository.GetByID(ctx, db, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("file not found")
		}
		return nil, apperror.Storage("[FileService] ошибка поиска файла", err)
	}

	if err := s.cacheRepository.SetFile(ctx, file); err != nil {
		log.Printf("[FileService] не удалось закэшировать файл: %v", err)
	}

	return file, nil
}

// Download : pre-signed ссылка на содержимое, владелец не проверяется
func (s *FileService) Download(ctx context.Context, id int) (*model.FileLocator, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.s3Storage.GeneratePresignedGetURL(ctx, file.StoragePath, s.urlTTL)
	if err != nil {
		return nil, apperror.Storage("[FileService] ошибка генерации ссылки", err)
	}

	return &model.FileLocator{File: file, GetURL: url}, nil
}

// SetApprovalStatus переводит файл в новый статус модерации.
// Текущий статус не читается и не сверяется: approved можно увести
// обратно в rejected другим модератором, следа предыдущего решения
// не остаётся, последняя запись побеждает.
func (s *FileService) SetApprovalStatus(ctx context.Context, id int, status string) (*model.FileRecord, error) {
	if !model.ValidStatus(status) {
		return nil, apperror.Validationf("status must be one of pending, approved, rejected")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[FileService] database connection не найден в context", nil)
	}

	updated, err := s.fileRepository.UpdateStatus(ctx, db, id, status)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("file not found")
		}
		return nil, apperror.Storage("[FileService] ошибка обновления статуса", err)
	}

	if err := s.cacheRepository.DeleteFile(ctx, id); err != nil {
		log.Printf("[FileService] не удалось инвалидировать кэш: %v", err)
	}

	return updated, nil
}

// Delete удаляет запись и содержимое. Доступно любому
// аутентифицированному вызывающему независимо от владельца.
func (s *FileService) Delete(ctx context.Context, id int) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return apperror.Storage("[FileService] database connection не найден в context", nil)
	}

	storagePath, err := s.fileRepository.Delete(ctx, db, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return apperror.NotFoundf("file not found")
		}
		return apperror.Storage("[FileService] ошибка удаления файла", err)
	}

	if err := s.s3Storage.DeleteObject(ctx, storagePath); err != nil {
		log.Printf("[FileService] не удалось удалить объект из хранилища: %v", err)
	}

	if err := s.cacheRepository.DeleteFile(ctx, id); err != nil {
		log.Printf("[FileService] не удалось инвалидировать кэш: %v", err)
	}

	return nil
}
