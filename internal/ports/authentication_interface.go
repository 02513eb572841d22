package ports

import (
	"context"

	"vulnshare/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, email, username, password string) (*model.TokenBundle, error)
	Login(ctx context.Context, email, password string) (*model.TokenBundle, error)
}
