package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vulnshare/config"
	"vulnshare/internal/model"
	srv "vulnshare/internal/service"
)

func TestUserService_CreateAccount(t *testing.T) {
	db := &config.Database{}

	tests := []struct {
		name        string
		email       string
		username    string
		password    string
		role        string
		setupMocks  func(u *MockUserRepository, s *MockSequenceRepository)
		expectRole  string
		expectError string
	}{
		{
			name:        "missing fields",
			email:       "bob@example.com",
			username:    "",
			password:    "pw2",
			expectError: "missing required fields",
		},
		{
			name:        "unknown role",
			email:       "bob@example.com",
			username:    "bob",
			password:    "pw2",
			role:        "superuser",
			expectError: "role must be one of user, moderator, admin",
		},
		{
			name:     "empty role defaults to user",
			email:    "bob@example.com",
			username: "bob",
			password: "pw2",
			setupMocks: func(u *MockUserRepository, s *MockSequenceRepository) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "bob@example.com").
					Return(nil, sql.ErrNoRows)
				s.On("NextSequentialID", mock.Anything, mock.Anything, "users").Return(2, nil)
				u.On("CreateAccount", mock.Anything, mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
					return a.Role == model.RoleUser
				})).Return(&model.Account{ID: 2, Email: "bob@example.com", Role: model.RoleUser}, nil)
			},
			expectRole: model.RoleUser,
		},
		{
			name:     "admin role accepted verbatim",
			email:    "root@example.com",
			username: "root",
			password: "pw3",
			role:     model.RoleAdmin,
			setupMocks: func(u *MockUserRepository, s *MockSequenceRepository) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "root@example.com").
					Return(nil, sql.ErrNoRows)
				s.On("NextSequentialID", mock.Anything, mock.Anything, "users").Return(3, nil)
				u.On("CreateAccount", mock.Anything, mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
					return a.Role == model.RoleAdmin
				})).Return(&model.Account{ID: 3, Email: "root@example.com", Role: model.RoleAdmin}, nil)
			},
			expectRole: model.RoleAdmin,
		},
		{
			name:     "duplicate email",
			email:    "alice@example.com",
			username: "alice",
			password: "pw1",
			setupMocks: func(u *MockUserRepository, s *MockSequenceRepository) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "alice@example.com").
					Return(&model.Account{ID: 1, Email: "alice@example.com"}, nil)
			},
			expectError: "user with email alice@example.com already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockSeqRepo := new(MockSequenceRepository)
			service := srv.NewUserService(mockUserRepo, mockSeqRepo)

			if tt.setupMocks != nil {
				tt.setupMocks(mockUserRepo, mockSeqRepo)
			}

			ctx := context.WithValue(context.Background(), "db", db)
			account, err := service.CreateAccount(ctx, tt.email, tt.username, tt.password, tt.role)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, tt.expectRole, account.Role)
			}

			mockUserRepo.AssertExpectations(t)
			mockSeqRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetAccount(t *testing.T) {
	db := &config.Database{}

	tests := []struct {
		name        string
		id          int
		setupMocks  func(u *MockUserRepository)
		expectError string
	}{
		{
			name: "not found",
			id:   99,
			setupMocks: func(u *MockUserRepository) {
				u.On("FindByID", mock.Anything, mock.Anything, 99).Return(nil, sql.ErrNoRows)
			},
			expectError: "user not found",
		},
		{
			name: "found",
			id:   1,
			setupMocks: func(u *MockUserRepository) {
				u.On("FindByID", mock.Anything, mock.Anything, 1).
					Return(&model.Account{ID: 1, Email: "alice@example.com"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			service := srv.NewUserService(mockUserRepo, new(MockSequenceRepository))

			if tt.setupMocks != nil {
				tt.setupMocks(mockUserRepo)
			}

			ctx := context.WithValue(context.Background(), "db", db)
			account, err := service.GetAccount(ctx, tt.id)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, tt.id, account.ID)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}

// DeleteAccount не смотрит ни на роль, ни на то, чья это запись:
// сервис выполняет удаление для любого вызывающего с валидным токеном.
func TestUserService_DeleteAccount(t *testing.T) {
	db := &config.Database{}
	ctx := context.WithValue(context.Background(), "db", db)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("DeleteAccount", mock.Anything, mock.Anything, 5).Return(nil)

	service := srv.NewUserService(mockUserRepo, new(MockSequenceRepository))

	err := service.DeleteAccount(ctx, 5)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_ListAccounts(t *testing.T) {
	db := &config.Database{}
	ctx := context.WithValue(context.Background(), "db", db)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("ListAccounts", mock.Anything, mock.Anything).Return(
		[]*model.Account{
			{ID: 1, Email: "alice@example.com"},
			{ID: 2, Email: "bob@example.com"},
		}, nil)

	service := srv.NewUserService(mockUserRepo, new(MockSequenceRepository))

	accounts, err := service.ListAccounts(ctx)

	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	mockUserRepo.AssertExpectations(t)
}
