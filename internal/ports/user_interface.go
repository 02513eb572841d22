package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"vulnshare/internal/model"
)

type UserRepository interface {
	CreateAccount(ctx context.Context, exec sqlx.ExtContext, account *model.Account) (*model.Account, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Account, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.Account, error)
	UpdateAccount(ctx context.Context, exec sqlx.ExtContext, account *model.Account) (*model.Account, error)
	UpdateRole(ctx context.Context, exec sqlx.ExtContext, id int, role string) (*model.Account, error)
	DeleteAccount(ctx context.Context, exec sqlx.ExtContext, id int) error
	ListAccounts(ctx context.Context, exec sqlx.ExtContext) ([]*model.Account, error)
}

type UserService interface {
	CreateAccount(ctx context.Context, email, username, password, role string) (*model.Account, error)
	GetAccount(ctx context.Context, id int) (*model.Account, error)
	UpdateAccount(ctx context.Context, id int, email, username string) (*model.Account, error)
	DeleteAccount(ctx context.Context, id int) error
	ListAccounts(ctx context.Context) ([]*model.Account, error)
}

type AdminService interface {
	EscalateToModerator(ctx context.Context, targetID int) (*model.Account, error)
}
