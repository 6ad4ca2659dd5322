package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/credadmin/internal/server/storage"
	"github.com/iudanet/credadmin/pkg/api"
)

// UserHandler отдает список пользователей для выбора владельца credential
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUserHandler создает новый handler для пользователей
func NewUserHandler(logger *slog.Logger, users storage.UserStorage) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// List обрабатывает GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list users", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.UserDTO, 0, len(users))
	for _, u := range users {
		resp = append(resp, api.UserDTO{ID: u.ID, Login: u.Login})
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
