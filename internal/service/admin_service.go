package service

import (
	"context"

	"vulnshare/config"
	"vulnshare/internal/apperror"
	"vulnshare/internal/model"
	"vulnshare/internal/notifier"
	"vulnshare/internal/ports"
	"vulnshare/internal/repository"
)

type AdminService struct {
	userRepository ports.UserRepository
	auditNotifier  *notifier.Notifier
}

func NewAdminService(userRepository ports.UserRepository, auditNotifier *notifier.Notifier) *AdminService {
	return &AdminService{
		userRepository: userRepository,
		auditNotifier:  auditNotifier,
	}
}

// EscalateToModerator безусловно ставит сохранённую роль moderator —
// в том числе когда цель уже moderator или admin. Ограничений на
// глубину цепочки нет: свежеповышенная учётная запись может повышать
// следующие, guard смотрит только на роль в токене вызывающего.
func (s *AdminService) EscalateToModerator(ctx context.Context, targetID int) (*model.Account, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Storage("[AdminService] database connection не найден в context", nil)
	}

	updated, err := s.userRepository.UpdateRole(ctx, db, targetID, model.RoleModerator)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperror.NotFoundf("user not found")
		}
		return nil, apperror.Storage("[AdminService] ошибка повышения роли", err)
	}

	s.auditNotifier.RoleEscalated(updated.ID, updated.Email)

	return updated, nil
}
