package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vulnshare/config"
	"vulnshare/internal/model"
	"vulnshare/internal/notifier"
	"vulnshare/internal/security"
	srv "vulnshare/internal/service"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateAccount(ctx context.Context, exec sqlx.ExtContext, account *model.Account) (*model.Account, error) {
	args := m.Called(ctx, exec, account)
	var created *model.Account
	if args.Get(0) != nil {
		created = args.Get(0).(*model.Account)
	}
	return created, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Account, error) {
	args := m.Called(ctx, exec, id)
	var account *model.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*model.Account)
	}
	return account, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.Account, error) {
	args := m.Called(ctx, exec, email)
	var account *model.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*model.Account)
	}
	return account, args.Error(1)
}

func (m *MockUserRepository) UpdateAccount(ctx context.Context, exec sqlx.ExtContext, account *model.Account) (*model.Account, error) {
	args := m.Called(ctx, exec, account)
	var updated *model.Account
	if args.Get(0) != nil {
		updated = args.Get(0).(*model.Account)
	}
	return updated, args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, exec sqlx.ExtContext, id int, role string) (*model.Account, error) {
	args := m.Called(ctx, exec, id, role)
	var updated *model.Account
	if args.Get(0) != nil {
		updated = args.Get(0).(*model.Account)
	}
	return updated, args.Error(1)
}

func (m *MockUserRepository) DeleteAccount(ctx context.Context, exec sqlx.ExtContext, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListAccounts(ctx context.Context, exec sqlx.ExtContext) ([]*model.Account, error) {
	args := m.Called(ctx, exec)
	var accounts []*model.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]*model.Account)
	}
	return accounts, args.Error(1)
}

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextSequentialID(ctx context.Context, exec sqlx.ExtContext, table string) (int, error) {
	args := m.Called(ctx, exec, table)
	return args.Int(0), args.Error(1)
}

type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) Sign(accountID int, email, role string) (string, error) {
	args := m.Called(accountID, email, role)
	return args.String(0), args.Error(1)
}

func (m *MockTokenProvider) Verify(tokenStr string) (*security.Claims, error) {
	args := m.Called(tokenStr)
	var claims *security.Claims
	if args.Get(0) != nil {
		claims = args.Get(0).(*security.Claims)
	}
	return claims, args.Error(1)
}

func TestAuthenticationService_Register(t *testing.T) {
	db := &config.Database{}

	tests := []struct {
		name        string
		email       string
		username    string
		password    string
		setupMocks  func(u *MockUserRepository, s *MockSequenceRepository, p *MockTokenProvider)
		expectError string
	}{
		{
			name:        "missing fields",
			email:       "",
			username:    "alice",
			password:    "pw1",
			expectError: "missing required fields",
		},
		{
			name:     "duplicate email",
			email:    "alice@example.com",
			username: "alice",
			password: "pw1",
			setupMocks: func(u *MockUserRepository, s *MockSequenceRepository, p *MockTokenProvider) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "alice@example.com").
					Return(&model.Account{ID: 1, Email: "alice@example.com"}, nil)
			},
			expectError: "user with email alice@example.com already exists",
		},
		{
			name:     "id collision surfaces as storage error",
			email:    "bob@example.com",
			username: "bob",
			password: "pw2",
			setupMocks: func(u *MockUserRepository, s *MockSequenceRepository, p *MockTokenProvider) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "bob@example.com").
					Return(nil, sql.ErrNoRows)
				s.On("NextSequentialID", mock.Anything, mock.Anything, "users").Return(3, nil)
				u.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New(`pq: duplicate key value violates unique constraint "users_pkey"`))
			},
			expectError: "ошибка создания пользователя",
		},
		{
			name:     "success",
			email:    "bob@example.com",
			username: "bob",
			password: "pw2",
			setupMocks: func(u *MockUserRepository, s *MockSequenceRepository, p *MockTokenProvider) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "bob@example.com").
					Return(nil, sql.ErrNoRows)
				s.On("NextSequentialID", mock.Anything, mock.Anything, "users").Return(3, nil)
				u.On("CreateAccount", mock.Anything, mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
					// пароль уходит в хранилище дословно, роль всегда user
					return a.ID == 3 && a.Password == "pw2" && a.Role == model.RoleUser
				})).Return(&model.Account{ID: 3, Email: "bob@example.com", Username: "bob", Role: model.RoleUser}, nil)
				p.On("Sign", 3, "bob@example.com", model.RoleUser).Return("signed-token", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockSeqRepo := new(MockSequenceRepository)
			mockProvider := new(MockTokenProvider)
			service := srv.NewAuthenticationService(mockUserRepo, mockSeqRepo, mockProvider, notifier.New(&config.WebhookConfig{}))

			if tt.setupMocks != nil {
				tt.setupMocks(mockUserRepo, mockSeqRepo, mockProvider)
			}

			ctx := context.WithValue(context.Background(), "db", db)
			bundle, err := service.Register(ctx, tt.email, tt.username, tt.password)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, bundle)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, bundle)
				assert.Equal(t, "signed-token", bundle.Token)
				assert.Equal(t, 3, bundle.AccountID)
			}

			mockUserRepo.AssertExpectations(t)
			mockSeqRepo.AssertExpectations(t)
			mockProvider.AssertExpectations(t)
		})
	}
}

// Тексты отказов входа намеренно различимы: по ответу видно, существует
// ли email в системе.
func TestAuthenticationService_Login(t *testing.T) {
	db := &config.Database{}

	tests := []struct {
		name        string
		email       string
		password    string
		setupMocks  func(u *MockUserRepository, p *MockTokenProvider)
		expectError string
	}{
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "pw1",
			setupMocks: func(u *MockUserRepository, p *MockTokenProvider) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "ghost@example.com").
					Return(nil, sql.ErrNoRows)
			},
			expectError: "No user found with this email",
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrong",
			setupMocks: func(u *MockUserRepository, p *MockTokenProvider) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "alice@example.com").
					Return(&model.Account{ID: 1, Email: "alice@example.com", Password: "pw1", Role: model.RoleUser}, nil)
			},
			expectError: "Incorrect password",
		},
		{
			name:     "success",
			email:    "alice@example.com",
			password: "pw1",
			setupMocks: func(u *MockUserRepository, p *MockTokenProvider) {
				u.On("FindByEmail", mock.Anything, mock.Anything, "alice@example.com").
					Return(&model.Account{ID: 1, Email: "alice@example.com", Password: "pw1", Role: model.RoleUser}, nil)
				p.On("Sign", 1, "alice@example.com", model.RoleUser).Return("signed-token", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockProvider := new(MockTokenProvider)
			service := srv.NewAuthenticationService(mockUserRepo, new(MockSequenceRepository), mockProvider, notifier.New(&config.WebhookConfig{}))

			if tt.setupMocks != nil {
				tt.setupMocks(mockUserRepo, mockProvider)
			}

			ctx := context.WithValue(context.Background(), "db", db)
			bundle, err := service.Login(ctx, tt.email, tt.password)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, bundle)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, bundle)
				assert.Equal(t, "signed-token", bundle.Token)
			}

			mockUserRepo.AssertExpectations(t)
			mockProvider.AssertExpectations(t)
		})
	}
}

// Два разных неверных входа должны давать разные тексты отказа.
func TestAuthenticationService_LoginMessagesDiffer(t *testing.T) {
	db := &config.Database{}
	ctx := context.WithValue(context.Background(), "db", db)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "ghost@example.com").
		Return(nil, sql.ErrNoRows)
	mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "alice@example.com").
		Return(&model.Account{ID: 1, Email: "alice@example.com", Password: "pw1"}, nil)

	service := srv.NewAuthenticationService(mockUserRepo, new(MockSequenceRepository), new(MockTokenProvider), notifier.New(&config.WebhookConfig{}))

	_, errUnknown := service.Login(ctx, "ghost@example.com", "pw1")
	_, errWrongPass := service.Login(ctx, "alice@example.com", "wrong")

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPass)
	assert.NotEqual(t, errUnknown.Error(), errWrongPass.Error())
}
