package service

import (
	"context"
	"strings"

	"MovieKeeper/internal/cli/api"
	"MovieKeeper/internal/cli/session"
)

type ensureUserBody struct {
	Username string `json:"username"`
}

type ensureUserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// EnsureUser регистрирует/находит пользователя на сервере и сохраняет
// сессию локально.
func EnsureUser(ctx context.Context, apiClient *api.Client, username string) (session.Session, error) {
	trimmed := strings.TrimSpace(username)

	var resp ensureUserResponse
	if err := apiClient.PostJSON(ctx, "/api/session/ensure-user", ensureUserBody{Username: trimmed}, &resp); err != nil {
		return session.Session{}, err
	}

	s := session.Session{UserID: resp.UserID, Username: resp.Username}
	if err := (session.Store{}).Save(s); err != nil {
		return session.Session{}, err
	}
	return s, nil
}
