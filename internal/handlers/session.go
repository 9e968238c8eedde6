package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/service"
)

// SessionHandler обрабатывает выбор пользователя (никакой настоящей
// аутентификации здесь нет: username — единственный признак).
type SessionHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewSessionHandler(userService *service.UserService, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{UserService: userService, Logger: logger}
}

type ensureUserRequest struct {
	Username string `json:"username"`
}

type ensureUserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// EnsureUser upsert пользователя по username.
func (h *SessionHandler) EnsureUser(w http.ResponseWriter, r *http.Request) {
	var req ensureUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("EnsureUser: invalid request body", "error", err)
		writeError(w, apperr.BadRequest("username must be a string"))
		return
	}

	u, err := h.UserService.EnsureUser(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ensureUserResponse{UserID: u.ID, Username: u.Username})
}
