package ports

import (
	"context"
	"io"

	"github.com/jmoiron/sqlx"

	"vulnshare/internal/model"
)

// FileRepository : SQL слой
type FileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.FileRecord) (*model.FileRecord, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.FileRecord, error)
	List(ctx context.Context, exec sqlx.ExtContext) ([]*model.FileRecord, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int, status string) (*model.FileRecord, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id int) (string, error)
}

// CacheRepository : Redis слой
type CacheRepository interface {
	SetFile(ctx context.Context, file *model.FileRecord) error
	GetFile(ctx context.Context, id int) (*model.FileRecord, error)
	DeleteFile(ctx context.Context, id int) error
}

type FileService interface {
	Upload(ctx context.Context, ownerID int, filename, contentType, description string, size int64, content io.Reader) (*model.FileRecord, error)
	List(ctx context.Context) ([]*model.FileRecord, error)
	Get(ctx context.Context, id int) (*model.FileRecord, error)
	Download(ctx context.Context, id int) (*model.FileLocator, error)
	SetApprovalStatus(ctx context.Context, id int, status string) (*model.FileRecord, error)
	Delete(ctx context.Context, id int) error
}
