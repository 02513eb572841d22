package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"vulnshare/config"
	"vulnshare/internal/apperror"
	"vulnshare/internal/model"
	"vulnshare/internal/ports"
	"vulnshare/internal/repository"
)

type UserService struct {
	userRepository ports.UserRepository
	sequences      ports.SequenceRepository
}

func NewUserService(userRepository ports.UserRepository, sequences ports.SequenceRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
		sequences:      sequences,
	}
}

// CreateAccount : создание учётной записи администратором,
// роль можно задать сразу
func (s *UserService) CreateAccount(ctx context.Context, email, username, password, role string) (*model.Account, error) {
	if err := (validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"username": validation.Validate(username, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}).Filter(); err != nil {
		return nil, apperror.Validationf("missing required fields: %v", err)
	}

	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, apperror.Validationf("role must be one of user, moderator, admin")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[UserService] database connection не найден в context", nil)
	}

	existing, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil && !repository.IsNoRows(err) {
		return nil, apperror.Storage("[UserService] ошибка проверки email", err)
	}
	if existing != nil {
		return nil, apperror.Conflictf("user with email %s already exists", email)
	}

	id, err := s.sequences.NextSequentialID(ctx, db, tableUsers)
	if err != nil {
		return nil, apperror.Storage("[UserService] ошибка выдачи идентификатора", err)
	}

	created, err := s.userRepository.CreateAccount(ctx, db, &model.Account{
		ID:       id,
		Email:    email,
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return nil, apperror.Storage("[UserService] ошибка создания пользователя", err)
	}

	return created, nil
}

func (s *UserService) GetAccount(ctx context.Context, id int) (*model.Account, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[UserService] database connection не найден в context", nil)
	}

	account, err := s.userRepository.FindByID(ctx, db, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("user not found")
		}
		return nil, apperror.Storage("[UserService] ошибка поиска пользователя", err)
	}

	return account, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, id int, email, username string) (*model.Account, error) {
	if err := (validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"username": validation.Validate(username, validation.Required),
	}).Filter(); err != nil {
		return nil, apperror.Validationf("missing required fields: %v", err)
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[UserService] database connection не найден в context", nil)
	}

	updated, err := s.userRepository.UpdateAccount(ctx, db, &model.Account{
		ID:       id,
		Email:    email,
		Username: username,
	})
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("user not found")
		}
		return nil, apperror.Storage("[UserService] ошибка обновления пользователя", err)
	}

	return updated, nil
}

// DeleteAccount удаляет любую учётную запись. Ни роли, ни сравнения
// с вызывающим здесь нет — только валидный токен на входе.
func (s *UserService) DeleteAccount(ctx context.Context, id int) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return apperror.Storage("[UserService] database connection не найден в context", nil)
	}

	if err := s.userRepository.DeleteAccount(ctx, db, id); err != nil {
		return apperror.Storage("[UserService] ошибка удаления пользователя", err)
	}

	return nil
}

// ListAccounts : все учётные записи целиком, без пагинации
func (s *UserService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[UserService] database connection не найден в context", nil)
	}

	accounts, err := s.userRepository.ListAccounts(ctx, db)
	if err != nil {
		return nil, apperror.Storage("[UserService] ошибка получения списка пользователей", err)
	}

	return accounts, nil
}
