package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vulnshare/config"
	"vulnshare/internal/model"
	"vulnshare/internal/notifier"
	"vulnshare/internal/security"
	srv "vulnshare/internal/service"
)

// Повышение безусловно: сервис не читает текущую роль цели и ставит
// moderator даже записи, которая уже moderator или admin.
func TestAdminService_EscalateToModerator(t *testing.T) {
	db := &config.Database{}

	tests := []struct {
		name        string
		targetID    int
		setupMocks  func(u *MockUserRepository)
		expectError string
	}{
		{
			name:     "target not found",
			targetID: 99,
			setupMocks: func(u *MockUserRepository) {
				u.On("UpdateRole", mock.Anything, mock.Anything, 99, model.RoleModerator).
					Return(nil, sql.ErrNoRows)
			},
			expectError: "user not found",
		},
		{
			name:     "plain user promoted",
			targetID: 2,
			setupMocks: func(u *MockUserRepository) {
				u.On("UpdateRole", mock.Anything, mock.Anything, 2, model.RoleModerator).
					Return(&model.Account{ID: 2, Email: "bob@example.com", Role: model.RoleModerator}, nil)
			},
		},
		{
			name:     "admin target is demoted to moderator",
			targetID: 1,
			setupMocks: func(u *MockUserRepository) {
				u.On("UpdateRole", mock.Anything, mock.Anything, 1, model.RoleModerator).
					Return(&model.Account{ID: 1, Email: "root@example.com", Role: model.RoleModerator}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			// webhook без URL молча пропускает отправку
			service := srv.NewAdminService(mockUserRepo, notifier.New(&config.WebhookConfig{}))

			if tt.setupMocks != nil {
				tt.setupMocks(mockUserRepo)
			}

			ctx := context.WithValue(context.Background(), "db", db)
			account, err := service.EscalateToModerator(ctx, tt.targetID)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, model.RoleModerator, account.Role)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}

// Цепочка повышений не ограничена: admin повышает B, свежий токен B
// проходит тот же guard и повышает C, токен C повышает D. Каждый шаг
// проверяется новым токеном с ролью из предыдущего шага.
func TestEscalationChainUnbounded(t *testing.T) {
	db := &config.Database{}
	jwtService := security.NewJWTService(&config.JWTConfig{SecretKey: "chain-secret"})
	guard := security.Guard(security.PolicyRoles(model.RoleModerator, model.RoleAdmin))

	passesGuard := func(token string) bool {
		claims, err := jwtService.Verify(token)
		if err != nil {
			return false
		}
		allowed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed = true
		})
		req := httptest.NewRequest(http.MethodPost, "/api/users/0/escalate", nil)
		req = req.WithContext(context.WithValue(req.Context(), security.UserContextKey, claims))
		guard(next).ServeHTTP(httptest.NewRecorder(), req)
		return allowed
	}

	mockUserRepo := new(MockUserRepository)
	for _, id := range []int{2, 3, 4} {
		mockUserRepo.On("UpdateRole", mock.Anything, mock.Anything, id, model.RoleModerator).
			Return(&model.Account{ID: id, Email: fmt.Sprintf("u%d@example.com", id), Role: model.RoleModerator}, nil)
	}
	adminService := srv.NewAdminService(mockUserRepo, notifier.New(&config.WebhookConfig{}))
	ctx := context.WithValue(context.Background(), "db", db)

	// до повышения обычный пользователь guard не проходит
	userToken, err := jwtService.Sign(2, "u2@example.com", model.RoleUser)
	assert.NoError(t, err)
	assert.False(t, passesGuard(userToken))

	adminToken, err := jwtService.Sign(1, "root@example.com", model.RoleAdmin)
	assert.NoError(t, err)
	assert.True(t, passesGuard(adminToken))
	b, err := adminService.EscalateToModerator(ctx, 2)
	assert.NoError(t, err)

	bToken, err := jwtService.Sign(b.ID, b.Email, b.Role)
	assert.NoError(t, err)
	assert.True(t, passesGuard(bToken))
	c, err := adminService.EscalateToModerator(ctx, 3)
	assert.NoError(t, err)

	cToken, err := jwtService.Sign(c.ID, c.Email, c.Role)
	assert.NoError(t, err)
	assert.True(t, passesGuard(cToken))
	d, err := adminService.EscalateToModerator(ctx, 4)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleModerator, d.Role)

	mockUserRepo.AssertExpectations(t)
}
