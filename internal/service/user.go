package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/model"
	"MovieKeeper/internal/repo"
)

// UserService инкапсулирует бизнес-логику работы с пользователями.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// EnsureUser создаёт пользователя при первом обращении и возвращает его.
// Идемпотентен: повторный вызов с тем же username отдаёт тот же id.
func (s *UserService) EnsureUser(ctx context.Context, username string) (*model.User, error) {
	trimmed := strings.TrimSpace(username)
	// считаем руны, не байты: кириллица не должна проходить мимо лимита
	if utf8.RuneCountInString(trimmed) < 3 {
		return nil, apperr.BadRequest("username must be at least 3 characters")
	}
	u, err := s.repo.Upsert(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	return u, nil
}
