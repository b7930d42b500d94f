// Пакет errors — единый формат JSON-ошибок API.
// Внутренние детали ошибок наружу не выходят — только код и общее сообщение.
package errors

import (
	"encoding/json"
	"net/http"
)

// errorBody — тело ошибки API.
type errorBody struct {
	Error errorDetail `json:"error"`
}

// errorDetail — код и сообщение ошибки.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает JSON-ошибку с указанным статусом и кодом.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{Code: code, Message: message},
	})
}

// ValidationError — 400 Bad Request (некорректные параметры запроса).
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// Forbidden — 403 Forbidden (запрос не прошёл access gate).
func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound — 404 Not Found.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// InternalError — 500 Internal Server Error (общее сообщение без деталей).
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
