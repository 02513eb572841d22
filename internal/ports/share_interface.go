package ports

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"vulnshare/internal/model"
)

type ShareRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, share *model.SharingRecord) (*model.SharingRecord, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.SharingRecord, error)
	FindByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.SharingRecord, error)
	List(ctx context.Context, exec sqlx.ExtContext) ([]*model.SharingRecord, error)
	Update(ctx context.Context, exec sqlx.ExtContext, share *model.SharingRecord) (*model.SharingRecord, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id int) error
}

type ShareService interface {
	Create(ctx context.Context, ownerID, fileID int, isPublic bool, expiresAt *time.Time) (*model.SharingRecord, error)
	List(ctx context.Context) ([]*model.SharingRecord, error)
	Update(ctx context.Context, id int, isPublic *bool, expiresAt *time.Time) (*model.SharingRecord, error)
	Delete(ctx context.Context, id int) error
	ResolveByPublicToken(ctx context.Context, token string) (*model.FileLocator, error)
}
