package security

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vulnshare/config"
	"vulnshare/internal/model/requestresponse"
	"vulnshare/internal/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// Claims : полезная нагрузка токена {sub, email, role, iat}.
// exp/aud/iss не выставляются: токен живёт, пока не сменится секрет,
// отзыв не предусмотрен.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AccountID : числовой идентификатор учётной записи из sub
func (c *Claims) AccountID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("некорректный sub в токене: %w", err)
	}
	return id, nil
}

// TokenProvider выдаёт и проверяет токены. Интерфейс, чтобы тесты могли
// подменить поставщика подписи, не трогая вызывающий код.
type TokenProvider interface {
	Sign(accountID int, email, role string) (string, error)
	Verify(tokenStr string) (*Claims, error)
}

// JWTService : боевой TokenProvider с одним статическим секретом
type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// Sign кодирует и подписывает claims детерминированно, без exp
func (service *JWTService) Sign(accountID int, email, role string) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.Itoa(accountID),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return signed, nil
}

// Verify проверяет подпись и возвращает claims как есть.
// Существование учётной записи в БД не перепроверяется.
func (service *JWTService) Verify(tokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

// JWTMiddleware снимает Bearer-токен, проверяет подпись и кладёт claims
// в контекст запроса. Никаких обращений к хранилищу здесь нет.
func JWTMiddleware(provider TokenProvider) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if authorizationHeader == "" {
				writeUnauthorized(writer, "missing Authorization header")
				return
			}

			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				writeUnauthorized(writer, "Authorization header must use Bearer scheme")
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			claims, err := provider.Verify(token)
			if err != nil {
				log.Printf("невалидный токен: %v", err)
				writeUnauthorized(writer, "invalid or expired token")
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: http.StatusUnauthorized,
			Text: message,
		},
	})
}
