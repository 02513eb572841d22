package security

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"vulnshare/internal/model/requestresponse"
)

// Policy : требование доступа, объявляемое на каждой операции явно.
// Асимметрии между эндпоинтами (например, удаление учётной записи без
// требования роли при admin-only списке) — видимая конфигурация,
// а не следствие общего умолчания.
type Policy struct {
	RequireAuth  bool
	AllowedRoles []string
}

var (
	// PolicyNone : без аутентификации
	PolicyNone = Policy{}

	// PolicyAnyAuthenticated : достаточно валидной подписи токена
	PolicyAnyAuthenticated = Policy{RequireAuth: true}
)

// PolicyRoles : роль из claims токена должна входить в набор
func PolicyRoles(roles ...string) Policy {
	return Policy{RequireAuth: true, AllowedRoles: roles}
}

// Guard — чистый предикат над {объявленные роли, роль из claims}.
// Читает только роль из токена; сохранённая в БД роль никогда
// не перепроверяется, токен авторитетен весь срок своей жизни.
func Guard(policy Policy) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !policy.RequireAuth {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := GetClaimsFromContext(request.Context())
			if err != nil {
				writeUnauthorized(writer, "missing Authorization header")
				return
			}

			if len(policy.AllowedRoles) == 0 {
				next.ServeHTTP(writer, request)
				return
			}

			if claims.Role == "" {
				writeForbidden(writer, "token carries no role claim")
				return
			}

			for _, role := range policy.AllowedRoles {
				if claims.Role == role {
					next.ServeHTTP(writer, request)
					return
				}
			}

			writeForbidden(writer, fmt.Sprintf(
				"operation requires role %s, token presents role %q",
				strings.Join(policy.AllowedRoles, "|"), claims.Role,
			))
		})
	}
}

func writeForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: http.StatusForbidden,
			Text: message,
		},
	})
}
