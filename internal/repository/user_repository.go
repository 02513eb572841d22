package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"vulnshare/config"
	"vulnshare/internal/model"
	"vulnshare/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateAccount : сохраняет учётную запись с заранее вычисленным id.
// Пароль уходит в БД ровно в том виде, в котором пришёл.
func (r *UserRepository) CreateAccount(ctx context.Context, exec sqlx.ExtContext, account *model.Account) (*model.Account, error) {
	query := `
	INSERT INTO users (id, email, username, password, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, email, username, password, role, created_at, updated_at
	`

	created := &model.Account{}
	err := sqlx.GetContext(ctx, exec, created, query,
		account.ID, account.Email, account.Username, account.Password, account.Role)
	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// FindByID : ищет учётную запись по id
func (r *UserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Account, error) {
	query := `SELECT id, email, username, password, role, created_at, updated_at FROM users WHERE id = $1`
	var account model.Account
	err := sqlx.GetContext(ctx, exec, &account, query, id)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &account, nil
}

// FindByEmail : ищет учётную запись по email.
// UNIQUE-индекса на email нет, при дубликатах вернётся первая запись.
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.Account, error) {
	query := `SELECT id, email, username, password, role, created_at, updated_at FROM users WHERE email = $1 ORDER BY id LIMIT 1`
	var account model.Account
	err := sqlx.GetContext(ctx, exec, &account, query, email)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &account, nil
}

// UpdateAccount : обновляет email и username
func (r *UserRepository) UpdateAccount(ctx context.Context, exec sqlx.ExtContext, account *model.Account) (*model.Account, error) {
	query := `
		UPDATE users
		SET email = $2, username = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, username, password, role, created_at, updated_at
	`
	updated := &model.Account{}
	err := sqlx.GetContext(ctx, exec, updated, query, account.ID, account.Email, account.Username)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}
	return updated, nil
}

// UpdateRole : меняет сохранённую роль. Уже выданные токены этого
// не почувствуют — guard читает роль только из claims.
func (r *UserRepository) UpdateRole(ctx context.Context, exec sqlx.ExtContext, id int, role string) (*model.Account, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, username, password, role, created_at, updated_at
	`
	updated := &model.Account{}
	err := sqlx.GetContext(ctx, exec, updated, query, id, role)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось обновить роль", err)
	}
	return updated, nil
}

// DeleteAccount : удаляет учётную запись по id
func (r *UserRepository) DeleteAccount(ctx context.Context, exec sqlx.ExtContext, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}
	return nil
}

// ListAccounts : все учётные записи без пагинации
func (r *UserRepository) ListAccounts(ctx context.Context, exec sqlx.ExtContext) ([]*model.Account, error) {
	query := `SELECT id, email, username, password, role, created_at, updated_at FROM users ORDER BY id`
	var accounts []*model.Account
	err := sqlx.SelectContext(ctx, exec, &accounts, query)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}
	return accounts, nil
}
