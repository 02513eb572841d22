package security_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"vulnshare/internal/security"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name          string
		policy        security.Policy
		claims        *security.Claims
		expectStatus  int
		expectMessage string
	}{
		{
			name:         "no auth required passes without claims",
			policy:       security.PolicyNone,
			claims:       nil,
			expectStatus: http.StatusOK,
		},
		{
			name:          "auth required without claims",
			policy:        security.PolicyAnyAuthenticated,
			claims:        nil,
			expectStatus:  http.StatusUnauthorized,
			expectMessage: "missing Authorization header",
		},
		{
			name:         "any authenticated passes regardless of role",
			policy:       security.PolicyAnyAuthenticated,
			claims:       claimsWithRole("1", "user"),
			expectStatus: http.StatusOK,
		},
		{
			name:          "role mismatch",
			policy:        security.PolicyRoles("admin"),
			claims:        claimsWithRole("1", "user"),
			expectStatus:  http.StatusForbidden,
			expectMessage: `operation requires role admin, token presents role "user"`,
		},
		{
			name:          "token without role claim",
			policy:        security.PolicyRoles("admin"),
			claims:        claimsWithRole("1", ""),
			expectStatus:  http.StatusForbidden,
			expectMessage: "token carries no role claim",
		},
		{
			name:         "moderator allowed in moderator|admin set",
			policy:       security.PolicyRoles("moderator", "admin"),
			claims:       claimsWithRole("2", "moderator"),
			expectStatus: http.StatusOK,
		},
		{
			name:         "admin allowed in moderator|admin set",
			policy:       security.PolicyRoles("moderator", "admin"),
			claims:       claimsWithRole("3", "admin"),
			expectStatus: http.StatusOK,
		},
		{
			name:          "role mismatch names the full allowed set",
			policy:        security.PolicyRoles("moderator", "admin"),
			claims:        claimsWithRole("4", "user"),
			expectStatus:  http.StatusForbidden,
			expectMessage: `operation requires role moderator|admin, token presents role "user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.claims != nil {
				ctx := context.WithValue(req.Context(), security.UserContextKey, tt.claims)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			security.Guard(tt.policy)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			if tt.expectMessage != "" {
				var body struct {
					Error struct {
						Code int    `json:"code"`
						Text string `json:"text"`
					} `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.expectMessage, body.Error.Text)
			}
		})
	}
}

// Guard смотрит только на роль из claims токена: даже если сохранённая
// в БД роль уже другая, допуск определяет токен.
func TestGuard_TrustsTokenRoleOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// токен выпущен, когда учётная запись была admin
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := context.WithValue(req.Context(), security.UserContextKey, claimsWithRole("9", "admin"))
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	security.Guard(security.PolicyRoles("admin"))(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func claimsWithRole(subject, role string) *security.Claims {
	return &security.Claims{
		Email: "someone@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	}
}
