package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/credadmin/pkg/api"
)

// ApplicationName префикс заголовков уведомлений
const ApplicationName = "credadminApp"

const (
	headerAlert  = "X-" + ApplicationName + "-alert"
	headerError  = "X-" + ApplicationName + "-error"
	headerParams = "X-" + ApplicationName + "-params"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendFailure отправляет 400 с ключом ошибки и заголовками уведомления о сбое
func sendFailure(logger *slog.Logger, w http.ResponseWriter, entity, errorKey, message string) {
	w.Header().Set(headerError, "error."+errorKey)
	w.Header().Set(headerParams, entity)
	resp := api.ErrorResponse{
		Error:    http.StatusText(http.StatusBadRequest),
		Message:  message,
		ErrorKey: errorKey,
		Entity:   entity,
	}
	sendJSON(logger, w, resp, http.StatusBadRequest)
}

// setEntityAlert выставляет заголовки уведомления, например credadminApp.credential.created
func setEntityAlert(w http.ResponseWriter, entity, action, param string) {
	w.Header().Set(headerAlert, ApplicationName+"."+entity+"."+action)
	w.Header().Set(headerParams, param)
}
