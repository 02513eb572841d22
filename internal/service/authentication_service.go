package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"vulnshare/config"
	"vulnshare/internal/apperror"
	"vulnshare/internal/model"
	"vulnshare/internal/notifier"
	"vulnshare/internal/ports"
	"vulnshare/internal/repository"
	"vulnshare/internal/security"
)

const (
	tableUsers  = "users"
	tableShares = "shares"
	tableFiles  = "files"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	sequences      ports.SequenceRepository
	tokenProvider  security.TokenProvider
	auditNotifier  *notifier.Notifier
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	sequences ports.SequenceRepository,
	tokenProvider security.TokenProvider,
	auditNotifier *notifier.Notifier,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		sequences:      sequences,
		tokenProvider:  tokenProvider,
		auditNotifier:  auditNotifier,
	}
}

// Register создаёт учётную запись и сразу выдаёт токен.
// Пароль сохраняется дословно. Дубликат email отсекается только
// проверкой здесь — в БД ограничения нет, гонка двух регистраций
// создаст две записи.
func (s *AuthenticationService) Register(ctx context.Context, email, username, password string) (*model.TokenBundle, error) {
	if err := (validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"username": validation.Validate(username, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}).Filter(); err != nil {
		return nil, apperror.Validationf("missing required fields: %v", err)
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[AuthService] database connection не найден в context", nil)
	}

	existing, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil && !repository.IsNoRows(err) {
		return nil, apperror.Storage("[AuthService] ошибка проверки email", err)
	}
	if existing != nil {
		return nil, apperror.Conflictf("user with email %s already exists", email)
	}

	id, err := s.sequences.NextSequentialID(ctx, db, tableUsers)
	if err != nil {
		return nil, apperror.Storage("[AuthService] ошибка выдачи идентификатора", err)
	}

	account := &model.Account{
		ID:       id,
		Email:    email,
		Username: username,
		Password: password,
		Role:     model.RoleUser,
	}

	created, err := s.userRepository.CreateAccount(ctx, db, account)
	if err != nil {
		// коллизия id после удалений всплывает отсюда как 23505
		if repository.IsDuplicateKey(err) {
			s.auditNotifier.StorageConstraint(fmt.Sprintf("duplicate key on users insert, id=%d", id))
		}
		return nil, apperror.Storage("[AuthService] ошибка создания пользователя", err)
	}

	token, err := s.tokenProvider.Sign(created.ID, created.Email, created.Role)
	if err != nil {
		return nil, apperror.Storage("[AuthService] ошибка выпуска токена", err)
	}

	return &model.TokenBundle{
		Token:     token,
		AccountID: created.ID,
		Message:   fmt.Sprintf("user %s registered", created.Username),
	}, nil
}

// Login сверяет пароль простым сравнением строк.
// Тексты отказов различимы намеренно: "No user found with this email"
// и "Incorrect password" — это проверяемое свойство сервиса.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokenBundle, error) {
	if err := (validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}).Filter(); err != nil {
		return nil, apperror.Validationf("missing required fields: %v", err)
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[AuthService] database connection не найден в context", nil)
	}

	account, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.Authenticationf("No user found with this email")
		}
		return nil, apperror.Storage("[AuthService] ошибка поиска пользователя", err)
	}

	if account.Password != password {
		return nil, apperror.Authenticationf("Incorrect password")
	}

	token, err := s.tokenProvider.Sign(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, apperror.Storage("[AuthService] ошибка выпуска токена", err)
	}

	return &model.TokenBundle{
		Token:     token,
		AccountID: account.ID,
		Message:   "login successful",
	}, nil
}
