package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"vulnshare/internal/repository"
)

var shareColumns = []string{"id", "owner_id", "file_id", "is_public", "share_token", "expires_at", "created_at"}

// Выборка по токену не фильтрует по expires_at: просроченные записи
// находятся наравне с действующими.
func TestShareRepository_FindByToken(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewShareRepository(db)

	expired := time.Now().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM shares WHERE share_token = $1`)).
		WithArgs("share-6").
		WillReturnRows(sqlmock.NewRows(shareColumns).
			AddRow(6, 1, 2, true, "share-6", expired, time.Now()))

	share, err := repo.FindByToken(context.Background(), db, "share-6")

	assert.NoError(t, err)
	assert.Equal(t, 6, share.ID)
	assert.NotNil(t, share.ExpiresAt)
	assert.True(t, share.ExpiresAt.Before(time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepository_FindByToken_NoRows(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewShareRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shares WHERE share_token = $1`)).
		WithArgs("share-999").
		WillReturnError(sql.ErrNoRows)

	share, err := repo.FindByToken(context.Background(), db, "share-999")

	assert.Error(t, err)
	assert.Nil(t, share)
	assert.True(t, repository.IsNoRows(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
