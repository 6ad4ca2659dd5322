package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/internal/server/storage"
	"github.com/iudanet/credadmin/internal/validation"
	"github.com/iudanet/credadmin/pkg/api"
)

const entityCredential = "credential"

// CredentialHandler обрабатывает REST запросы к ресурсу credentials
type CredentialHandler struct {
	logger      *slog.Logger
	credentials storage.CredentialStorage
	users       storage.UserStorage
}

// NewCredentialHandler создает новый handler для credentials
func NewCredentialHandler(logger *slog.Logger, credentials storage.CredentialStorage, users storage.UserStorage) *CredentialHandler {
	return &CredentialHandler{
		logger:      logger,
		credentials: credentials,
		users:       users,
	}
}

// Create обрабатывает POST /api/credentials
func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}

	if dto.ID != nil {
		h.logger.WarnContext(r.Context(), "create with existing id", slog.Int64("id", *dto.ID))
		sendFailure(h.logger, w, entityCredential, "idexists", "A new credential cannot already have an ID")
		return
	}

	h.create(w, r, dto)
}

// Update обрабатывает PUT /api/credentials
// Запрос без id создает новую запись
func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dto, ok := h.decode(w, r)
	if !ok {
		return
	}

	if dto.ID == nil {
		h.create(w, r, dto)
		return
	}

	cred, ok := h.prepare(w, r, dto)
	if !ok {
		return
	}

	if err := h.credentials.UpdateCredential(ctx, cred); err != nil {
		h.storageError(w, r, err, "failed to update credential")
		return
	}

	h.logger.InfoContext(ctx, "credential updated", slog.Int64("id", cred.IDValue()))
	h.respondSaved(w, r, cred.IDValue(), "updated", http.StatusOK)
}

// Get обрабатывает GET /api/credentials/{id}
func (h *CredentialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cred, err := h.credentials.GetCredential(r.Context(), id)
	if err != nil {
		h.storageError(w, r, err, "failed to get credential")
		return
	}

	sendJSON(h.logger, w, cred.ToWire(), http.StatusOK)
}

// List обрабатывает GET /api/credentials
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parsePageable(r.URL.Query())
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	h.list(w, r, q)
}

// Search обрабатывает GET /api/_search/credentials?query=
// Подстрока ищется в логине credential и в логине владельца
func (h *CredentialHandler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if !values.Has("query") {
		sendError(h.logger, w, "query parameter is required", http.StatusBadRequest)
		return
	}

	q, err := parsePageable(values)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	q.Text = values.Get("query")

	h.list(w, r, q)
}

// Delete обрабатывает DELETE /api/credentials/{id}
func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.credentials.DeleteCredential(ctx, id); err != nil {
		h.storageError(w, r, err, "failed to delete credential")
		return
	}

	h.logger.InfoContext(ctx, "credential deleted", slog.Int64("id", id))
	setEntityAlert(w, entityCredential, "deleted", strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}

func (h *CredentialHandler) create(w http.ResponseWriter, r *http.Request, dto api.CredentialDTO) {
	ctx := r.Context()

	cred, ok := h.prepare(w, r, dto)
	if !ok {
		return
	}

	if err := h.credentials.CreateCredential(ctx, cred); err != nil {
		h.storageError(w, r, err, "failed to create credential")
		return
	}

	h.logger.InfoContext(ctx, "credential created", slog.Int64("id", cred.IDValue()))
	w.Header().Set("Location", fmt.Sprintf("/api/credentials/%d", cred.IDValue()))
	h.respondSaved(w, r, cred.IDValue(), "created", http.StatusCreated)
}

// respondSaved перечитывает запись, чтобы вернуть логин владельца
func (h *CredentialHandler) respondSaved(w http.ResponseWriter, r *http.Request, id int64, action string, status int) {
	saved, err := h.credentials.GetCredential(r.Context(), id)
	if err != nil {
		h.storageError(w, r, err, "failed to reload credential")
		return
	}

	setEntityAlert(w, entityCredential, action, strconv.FormatInt(id, 10))
	sendJSON(h.logger, w, saved.ToWire(), status)
}

func (h *CredentialHandler) list(w http.ResponseWriter, r *http.Request, q storage.Query) {
	creds, total, err := h.credentials.ListCredentials(r.Context(), q)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidSort) {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to list credentials", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.CredentialDTO, 0, len(creds))
	for _, c := range creds {
		resp = append(resp, c.ToWire())
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	sendJSON(h.logger, w, resp, http.StatusOK)
}

func (h *CredentialHandler) decode(w http.ResponseWriter, r *http.Request) (api.CredentialDTO, bool) {
	var dto api.CredentialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode credential", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return dto, false
	}
	return dto, true
}

// prepare переводит DTO в модель, проверяет поля и владельца
func (h *CredentialHandler) prepare(w http.ResponseWriter, r *http.Request, dto api.CredentialDTO) (*models.Credential, bool) {
	cred, err := models.CredentialFromWire(dto)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if err := validation.ValidateCredential(cred); err != nil {
		h.logger.WarnContext(r.Context(), "invalid credential", slog.Any("error", err))
		sendFailure(h.logger, w, entityCredential, "validation", err.Error())
		return nil, false
	}

	if err := h.resolveOwner(r.Context(), cred); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendFailure(h.logger, w, entityCredential, "usernotfound", "Owner does not exist")
			return nil, false
		}
		h.logger.ErrorContext(r.Context(), "failed to resolve owner", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	return cred, true
}

// resolveOwner заполняет UserID по id или логину владельца; владелец необязателен
func (h *CredentialHandler) resolveOwner(ctx context.Context, cred *models.Credential) error {
	var (
		user *models.User
		err  error
	)
	switch {
	case cred.UserID != nil:
		user, err = h.users.GetUserByID(ctx, *cred.UserID)
	case cred.UserLogin != "":
		user, err = h.users.GetUserByLogin(ctx, cred.UserLogin)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	cred.UserID = &user.ID
	cred.UserLogin = user.Login
	return nil
}

func (h *CredentialHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		sendError(h.logger, w, fmt.Sprintf("invalid credential id %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *CredentialHandler) storageError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrCredentialNotFound):
		h.logger.WarnContext(r.Context(), "credential not found", slog.String("path", r.URL.Path))
		sendError(h.logger, w, "credential not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrUserNotFound):
		sendFailure(h.logger, w, entityCredential, "usernotfound", "Owner does not exist")
	default:
		h.logger.ErrorContext(r.Context(), msg, slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
	}
}
