package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"vulnshare/internal/model"
	"vulnshare/internal/repository"
)

var accountColumns = []string{"id", "email", "username", "password", "role", "created_at", "updated_at"}

func accountRow(id int, email, username, password, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(accountColumns).AddRow(id, email, username, password, role, now, now)
}

// Пароль вставляется ровно в том виде, в котором пришёл от клиента.
func TestUserRepository_CreateAccount(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, email, username, password, role)`)).
		WithArgs(3, "bob@example.com", "bob", "pw2", "user").
		WillReturnRows(accountRow(3, "bob@example.com", "bob", "pw2", "user"))

	created, err := repo.CreateAccount(context.Background(), db, &model.Account{
		ID:       3,
		Email:    "bob@example.com",
		Username: "bob",
		Password: "pw2",
		Role:     "user",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pw2", created.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Коллизия заранее вычисленного id всплывает из БД как нарушение PK.
func TestUserRepository_CreateAccount_DuplicateID(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, email, username, password, role)`)).
		WithArgs(3, "bob@example.com", "bob", "pw2", "user").
		WillReturnError(&pq.Error{Code: "23505"})

	created, err := repo.CreateAccount(context.Background(), db, &model.Account{
		ID:       3,
		Email:    "bob@example.com",
		Username: "bob",
		Password: "pw2",
		Role:     "user",
	})

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, repository.IsDuplicateKey(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// При дубликатах email запрос возвращает первую запись по id.
func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1 ORDER BY id LIMIT 1`)).
		WithArgs("alice@example.com").
		WillReturnRows(accountRow(1, "alice@example.com", "alice", "pw1", "user"))

	account, err := repo.FindByEmail(context.Background(), db, "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 1, account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NoRows(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1 ORDER BY id LIMIT 1`)).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	account, err := repo.FindByEmail(context.Background(), db, "ghost@example.com")

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, repository.IsNoRows(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SET role = $2, updated_at = NOW()`)).
		WithArgs(2, "moderator").
		WillReturnRows(accountRow(2, "bob@example.com", "bob", "pw2", "moderator"))

	updated, err := repo.UpdateRole(context.Background(), db, 2, "moderator")

	assert.NoError(t, err)
	assert.Equal(t, "moderator", updated.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteAccount(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteAccount(context.Background(), db, 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
