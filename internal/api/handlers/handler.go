// handler.go — основной обработчик API сервиса newhires.
// Объединяет health и бизнес-обработчики, делегируя запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hrportal/newhires/internal/service"
)

// APIHandler — основной обработчик API.
type APIHandler struct {
	health    *HealthHandler
	directory *service.DirectoryService
	refs      *service.ReferenceService
	logger    *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	directory *service.DirectoryService,
	refs *service.ReferenceService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:    health,
		directory: directory,
		refs:      refs,
		logger:    logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Бизнес-обработчики ---

// GetEmployees — список сотрудников и справочники дашборда.
func (h *APIHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	h.handleGetEmployees(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
